package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientsapi/internal/api/dto"
)

// ErrorHandlerMiddleware logs the errors handlers record with c.Error and
// turns panics and unanswered errors into JSON 500s
func ErrorHandlerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic while handling request",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"panic", err,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error:   "Internal Server Error",
					Message: "An unexpected error occurred",
					Code:    http.StatusInternalServerError,
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		if !c.Writer.Written() {
			err := c.Errors.Last()
			message := "An unexpected error occurred"
			if m, ok := err.Meta.(string); ok {
				message = m
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal Server Error",
				Message: message,
				Detail:  err.Error(),
				Code:    http.StatusInternalServerError,
			})
		}

		for _, e := range c.Errors {
			logger.Error("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"error", e.Err,
			)
		}
	}
}

// NotFoundHandler answers unknown routes with a JSON body
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{
		Error:   "Not Found",
		Message: "Route not found: " + c.Request.Method + " " + c.Request.URL.Path,
		Code:    http.StatusNotFound,
	})
}
