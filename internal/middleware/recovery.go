package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/models"
)

// Recovery turns a panic in a handler into the generic 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rv any) {
		zerolog.Ctx(c.Request.Context()).Error().
			Interface("panic", rv).
			Str("path", c.Request.URL.Path).
			Msg("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Internal server error",
			Message: "Please try again later",
		})
	})
}
