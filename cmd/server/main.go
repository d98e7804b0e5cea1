// Package main is the entry point for the YouTube Transcript API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/config"
	"github.com/Shimizu-Technology/yt-transcript-api/internal/handlers"
	"github.com/Shimizu-Technology/yt-transcript-api/internal/middleware"
	"github.com/Shimizu-Technology/yt-transcript-api/internal/router"
	"github.com/Shimizu-Technology/yt-transcript-api/internal/services/transcript"
	"github.com/Shimizu-Technology/yt-transcript-api/internal/services/youtube"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	var overrides config.Overrides
	flag.StringVar(&overrides.EnvFile, "env-file", "", "path to .env file (default .env)")
	flag.StringVar(&overrides.Port, "port", "", "HTTP port (overrides PORT)")
	flag.StringVar(&overrides.LogLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	flag.StringVar(&overrides.GinMode, "gin-mode", "", "debug, release or test (overrides GIN_MODE)")
	flag.Parse()

	// Step 1: Load Configuration
	cfg, err := config.Load(overrides)
	if err != nil {
		early := zerolog.New(os.Stderr).With().Timestamp().Logger()
		early.Fatal().Err(err).Msg("❌ Failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	log.Info().Str("version", Version).Msg("🚀 YouTube Transcript API starting...")
	log.Info().Str("port", cfg.Port).Str("gin_mode", cfg.GinMode).Msg("📋 Config loaded")

	gin.SetMode(cfg.GinMode)
	if cfg.GinMode == gin.ReleaseMode && cfg.AllowsAllOrigins() {
		log.Warn().Msg("⚠️  CORS allows every origin (set CORS_ORIGINS in production)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Step 2: Create Services
	yt := youtube.New(youtube.Options{
		BaseURL:     cfg.YouTubeBaseURL,
		Timeout:     cfg.YouTubeTimeout,
		ProxyDomain: cfg.ProxyDomain,
		ProxyPort:   cfg.ProxyPort,
		Logger:      log.With().Str("component", "youtube").Logger(),
	})

	var initial *transcript.ProxyConfig
	if cfg.ProxyConfigured() {
		initial = &transcript.ProxyConfig{Username: cfg.ProxyUsername, Password: cfg.ProxyPassword}
		if err := yt.CheckProxy(*initial); err != nil {
			log.Fatal().Err(err).Msg("❌ Invalid Webshare proxy credentials")
		}
		log.Info().Str("domain", cfg.ProxyDomain).Msg("✅ Webshare proxy configured")
	} else {
		log.Info().Msg("⚠️  No proxy configured (set WEBSHARE_PROXY_USERNAME/PASSWORD or POST /configure-proxy)")
	}

	gw := transcript.NewGateway(yt, transcript.NewProxyStore(initial), log.With().Str("component", "gateway").Logger())
	gw.SetCallTimeout(cfg.GatewayTimeout)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(ctx, cfg.RateLimitPerMinute, cfg.RateLimitBurst)
		log.Info().Int("per_minute", cfg.RateLimitPerMinute).Int("burst", cfg.RateLimitBurst).Msg("✅ Rate limiting enabled")
	} else {
		log.Info().Msg("⚠️  Rate limiting disabled")
	}

	// Step 3: Setup HTTP Router
	h := handlers.NewHandler(gw, Version)
	r := router.Setup(h, router.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimiter:    limiter,
		Logger:         log.With().Str("component", "http").Logger(),
	})

	// Step 4: Start the HTTP Server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Info().Msgf("🌐 Server listening on http://localhost:%s", cfg.Port)
		log.Info().Msgf("📖 Docs: http://localhost:%s/docs  UI: http://localhost:%s/ui", cfg.Port, cfg.Port)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("❌ Server failed")
		}
	}()

	// Step 5: Graceful Shutdown
	<-ctx.Done()
	log.Info().Msg("🛑 Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Server forced to shutdown")
	}

	log.Info().Msg("👋 Server stopped. Goodbye!")
}
