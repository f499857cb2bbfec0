package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-booking/models"
	"hotel-booking/services"
)

type createUserRequest struct {
	Name    string          `json:"name" binding:"required"`
	Email   string          `json:"email" binding:"required,email"`
	Phone   *string         `json:"phone"`
	Role    models.UserRole `json:"role" binding:"omitempty,oneof=admin manager customer"`
	HotelID *uint           `json:"hotelId"`
}

type UserController struct {
	UserSvc    *services.UserService
	BookingSvc *services.BookingService
}

func NewUserController(us *services.UserService, bs *services.BookingService) *UserController {
	return &UserController{UserSvc: us, BookingSvc: bs}
}

// GET /api/users?role=&hotelId=
func (ctrl *UserController) GetUsers(c *gin.Context) {
	hotelID, ok := queryUint(c, "hotelId")
	if !ok {
		return
	}
	users, err := ctrl.UserSvc.List(services.UserFilter{
		Role:    models.UserRole(c.Query("role")),
		HotelID: hotelID,
	})
	if err != nil {
		respondError(c, "user", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctrl *UserController) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := ctrl.UserSvc.GetByID(id)
	if err != nil {
		respondError(c, "user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user := models.User{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Role:    req.Role,
		HotelID: req.HotelID,
	}
	if err := ctrl.UserSvc.Create(&user); err != nil {
		respondError(c, "user", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch services.UserPatch
	if !bindJSON(c, &patch) {
		return
	}
	user, err := ctrl.UserSvc.Update(id, patch)
	if err != nil {
		respondError(c, "user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.UserSvc.Delete(id); err != nil {
		respondError(c, "user", err)
		return
	}
	respondDeleted(c, "User")
}

func (ctrl *UserController) GetUserBookings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := ctrl.UserSvc.GetByID(id); err != nil {
		respondError(c, "user", err)
		return
	}
	bookings, err := ctrl.BookingSvc.List(services.BookingFilter{UserID: id})
	if err != nil {
		respondError(c, "booking", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
