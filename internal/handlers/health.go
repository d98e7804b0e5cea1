// Package handlers contains HTTP handler functions for the API.
//
// Go Pattern: Handlers in Gin receive a *gin.Context which provides:
// - Request data (params, query, body, headers)
// - Response methods (JSON, String, Data, HTML)
// - Middleware data (c.Get/c.Set)
//
// We group related handlers into a struct (Handler) that holds shared
// dependencies, so tests can build a Handler around a fake provider.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/models"
	"github.com/Shimizu-Technology/yt-transcript-api/internal/services/transcript"
)

// ServiceName is reported by the health check.
const ServiceName = "YouTube Transcript API"

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	Gateway *transcript.Gateway
	Version string
}

// NewHandler creates a new handler with all dependencies.
func NewHandler(gw *transcript.Gateway, version string) *Handler {
	return &Handler{
		Gateway: gw,
		Version: version,
	}
}

// HealthCheck returns the API health status.
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Service: ServiceName,
	})
}

// Root describes what the API can do and how to call it.
// GET /
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "YouTube Transcript API Server is running",
		"version": h.Version,
		"endpoints": gin.H{
			"POST /transcript":          "Main transcript endpoint with full options",
			"GET /transcript":           "Simple transcript fetch with query parameters",
			"GET /transcript/export":    "Download a transcript as txt, md, srt or json",
			"POST /available-languages": "Get available transcript languages",
			"GET /available-languages":  "Get available languages with query parameters",
			"POST /configure-proxy":     "Configure proxy settings",
			"GET /health":               "Health check endpoint",
			"GET /ui":                   "Interactive transcript form",
			"GET /docs":                 "Interactive API documentation",
			"GET /metrics":              "Prometheus metrics",
		},
		"example_usage": gin.H{
			"simple_transcript": gin.H{
				"method": "GET",
				"url":    "/transcript?video_id=VIDEO_ID&languages=en,es",
			},
			"advanced_transcript": gin.H{
				"method": "POST",
				"url":    "/transcript",
				"body": gin.H{
					"video_id":            "VIDEO_ID",
					"languages":           []string{"en", "es", "fr"},
					"preserve_formatting": false,
				},
			},
			"available_languages": gin.H{
				"method": "GET",
				"url":    "/available-languages?video_id=VIDEO_ID",
			},
		},
		"supported_formats": gin.H{
			"video_id":  "11-character YouTube video ID",
			"video_url": "Full YouTube URL (youtube.com/watch?v=... or youtu.be/...)",
			"embed_url": "YouTube embed URL (youtube.com/embed/...)",
		},
	})
}
