// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/handlers"
	"github.com/Shimizu-Technology/yt-transcript-api/internal/metrics"
	"github.com/Shimizu-Technology/yt-transcript-api/internal/middleware"
)

// Options holds the cross-cutting settings for Setup.
type Options struct {
	AllowedOrigins []string
	// RateLimiter is applied to the transcript and proxy endpoints when
	// non-nil.
	RateLimiter *middleware.RateLimiter
	Logger      zerolog.Logger
}

// Setup creates and configures the Gin router with all routes.
func Setup(h *handlers.Handler, opts Options) *gin.Engine {
	handlers.RegisterFieldNames()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.Recovery())
	r.Use(metrics.Instrument())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.SetHTMLTemplate(handlers.Templates())
	r.NoRoute(handlers.NotFound)

	// --- Service information ---
	r.GET("/", h.Root)
	r.GET("/health", h.HealthCheck)
	r.GET("/docs", h.ServeSwaggerUI)
	r.GET("/openapi.yaml", h.ServeOpenAPI)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Provider-backed routes ---
	api := r.Group("/")
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.RateLimit())
	}
	{
		api.POST("/transcript", h.PostTranscript)
		api.GET("/transcript", h.GetTranscript)
		api.GET("/transcript/export", h.ExportTranscript)

		api.POST("/available-languages", h.PostAvailableLanguages)
		api.GET("/available-languages", h.GetAvailableLanguages)

		api.POST("/configure-proxy", h.ConfigureProxy)

		// Interactive form
		api.GET("/ui", h.ShowForm)
		api.POST("/ui", h.SubmitForm)
		api.POST("/ui/download", h.DownloadText)
	}

	return r
}
