package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-booking/services"
	"hotel-booking/utils"
)

// parseID reads a positive numeric path parameter. On failure it writes a
// 400 response and returns ok=false.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// queryUint reads an optional numeric query parameter; absent means 0.
func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidQuery", name+" must be a non-negative integer")
		return 0, false
	}
	return uint(v), true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Invalid request payload", err.Error())
		return false
	}
	return true
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, resource string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "error."+resource+"NotFound", resource+" not found")
	case errors.Is(err, services.ErrDuplicate):
		utils.JSONError(c, http.StatusConflict, "error.duplicate", "a "+resource+" with the same unique value already exists", err.Error())
	case errors.Is(err, services.ErrInvalidReference):
		utils.JSONError(c, http.StatusUnprocessableEntity, "error.invalidReference", "referenced record does not exist", err.Error())
	case errors.Is(err, services.ErrInvalidValue):
		utils.JSONError(c, http.StatusUnprocessableEntity, "error.invalidValue", err.Error())
	default:
		log.Printf("❌ %s: %v", resource, err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Database error", err.Error())
	}
}

func respondDeleted(c *gin.Context, resource string) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": resource + " deleted successfully",
	})
}
