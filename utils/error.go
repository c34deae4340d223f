package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "Internal Server Error",
					Message: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, errMsg string, message string) {
	if status >= http.StatusInternalServerError {
		GetLogger().Error(errMsg, zap.Int("status", status), zap.String("path", c.Request.URL.Path), zap.String("details", message))
	} else {
		GetLogger().Warn(errMsg, zap.Int("status", status), zap.String("path", c.Request.URL.Path), zap.String("details", message))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: errMsg, Message: message})
}
