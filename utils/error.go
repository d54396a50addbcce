package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Code:    CodeUpstream,
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RespondAppError writes a domain error as a JSON response. Upstream causes
// are logged, not exposed.
func RespondAppError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	logger := GetLogger()
	if appErr.Code == CodeUpstream {
		logger.Error(appErr.Message, zap.Error(appErr.Err))
	} else {
		logger.Debug(appErr.Message, zap.String("code", appErr.Code))
	}
	c.JSON(appErr.HTTPStatus, ErrorResponse{Code: appErr.Code, Message: appErr.Message})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	logger := GetLogger()
	logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
