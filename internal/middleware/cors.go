// cors.go configures Cross-Origin Resource Sharing (CORS).
//
// The API is called directly from browser frontends on other origins, so
// every response carries CORS headers for the configured origins.
package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns configured CORS middleware. An empty list or a "*" entry
// allows every origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Length", "Content-Disposition", RequestIDHeader},
		MaxAge:        12 * time.Hour, // Cache preflight responses
	}

	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
		cfg.AllowCredentials = true
	}

	return cors.New(cfg)
}
