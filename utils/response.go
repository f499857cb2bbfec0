package utils

import "github.com/gin-gonic/gin"

// JSONError writes the structured error body used by every handler:
// {"error": {"code": "error.x", "message": "...", "details": "..."}}.
func JSONError(c *gin.Context, status int, code, message string, details ...string) {
	body := gin.H{
		"code":    code,
		"message": message,
	}
	if len(details) > 0 && details[0] != "" {
		body["details"] = details[0]
	}
	c.AbortWithStatusJSON(status, gin.H{"error": body})
}
