package utils

import "github.com/gin-gonic/gin"

// Response is the uniform JSON envelope for all endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
	})
}

// ErrorResponseWithDetails attaches structured detail (field violations,
// conflict info) to an error envelope.
func ErrorResponseWithDetails(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
		Errors:  details,
	})
}
