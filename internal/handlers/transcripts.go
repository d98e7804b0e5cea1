// transcripts.go handles the transcript, language and proxy endpoints.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/models"
	"github.com/Shimizu-Technology/yt-transcript-api/internal/services/transcript"
)

// defaultLanguages is used when a request does not name any languages.
var defaultLanguages = []string{"en"}

// PostTranscript fetches a transcript.
// POST /transcript
//
// Request body:
//
//	{"video_id": "https://youtu.be/dQw4w9WgXcQ", "languages": ["en", "es"]}
//
// Gateway failures are reported in the body with status 200:
//
//	{"success": false, "video_id": "dQw4w9WgXcQ", "error": "Video is unavailable"}
func (h *Handler) PostTranscript(c *gin.Context) {
	var req models.TranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	videoID, err := transcript.NormalizeVideoID(req.VideoID)
	if err != nil {
		validationError(c, err)
		return
	}

	languages := req.Languages
	if languages == nil {
		languages = defaultLanguages
	}

	h.respondTranscript(c, videoID, languages)
}

// GetTranscript is the query-string form of PostTranscript.
// GET /transcript?video_id=dQw4w9WgXcQ&languages=en,es&preserve_formatting=false
func (h *Handler) GetTranscript(c *gin.Context) {
	var q models.TranscriptQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationError(c, err)
		return
	}

	videoID, err := transcript.NormalizeVideoID(q.VideoID)
	if err != nil {
		validationError(c, err)
		return
	}

	// DefaultQuery only applies when the parameter is absent; an explicit
	// empty value means an empty preference list.
	languages := ParseLanguages(c.DefaultQuery("languages", "en"))

	h.respondTranscript(c, videoID, languages)
}

func (h *Handler) respondTranscript(c *gin.Context, videoID string, languages []string) {
	out := h.Gateway.Fetch(c.Request.Context(), videoID, languages)
	if !out.OK() {
		c.JSON(http.StatusOK, failure(videoID, out.Message()))
		return
	}
	c.JSON(http.StatusOK, transcriptResponse(out))
}

// transcriptResponse shapes a successful fetch.
func transcriptResponse(out transcript.FetchOutcome) models.TranscriptResponse {
	stats := transcript.Summarize(out.Segments)

	var language *string
	if out.Language != "" {
		language = &out.Language
	}

	// Ensure we return empty arrays, not null
	segments := out.Segments
	if segments == nil {
		segments = []transcript.Segment{}
	}
	available := out.AvailableLanguages
	if available == nil {
		available = []string{}
	}

	return models.TranscriptResponse{
		Success:            true,
		VideoID:            out.VideoID,
		Language:           language,
		AvailableLanguages: available,
		Transcript:         segments,
		FormattedText:      stats.Text,
		TotalDuration:      stats.TotalDuration,
		WordCount:          stats.WordCount,
	}
}

// PostAvailableLanguages lists the transcript tracks of a video.
// POST /available-languages
//
// Request body:
//
//	{"video_id": "dQw4w9WgXcQ"}
func (h *Handler) PostAvailableLanguages(c *gin.Context) {
	var req models.LanguageListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	h.respondLanguages(c, req.VideoID)
}

// GetAvailableLanguages is the query-string form of PostAvailableLanguages.
// GET /available-languages?video_id=dQw4w9WgXcQ
func (h *Handler) GetAvailableLanguages(c *gin.Context) {
	var req models.LanguageListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		validationError(c, err)
		return
	}
	h.respondLanguages(c, req.VideoID)
}

func (h *Handler) respondLanguages(c *gin.Context, raw string) {
	videoID, err := transcript.NormalizeVideoID(raw)
	if err != nil {
		validationError(c, err)
		return
	}

	out := h.Gateway.Languages(c.Request.Context(), videoID)
	if !out.OK() {
		c.JSON(http.StatusOK, failure(videoID, out.Message()))
		return
	}

	c.JSON(http.StatusOK, models.LanguageListResponse{
		Success:            true,
		VideoID:            videoID,
		AvailableLanguages: out.Transcripts,
	})
}

// ConfigureProxy replaces the proxy used for all later provider calls.
// POST /configure-proxy
//
// Request body:
//
//	{"proxy_username": "user", "proxy_password": "secret"}
//
// Unlike the other endpoints, a rejected configuration is a 500.
func (h *Handler) ConfigureProxy(c *gin.Context) {
	var req models.ProxyConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	err := h.Gateway.ConfigureProxy(transcript.ProxyConfig{
		Username: req.ProxyUsername,
		Password: req.ProxyPassword,
	})
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to configure proxy")
		c.JSON(http.StatusInternalServerError, models.DetailResponse{
			Detail: "Failed to configure proxy: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ProxyConfigResponse{
		Success: true,
		Message: "Proxy configured successfully",
	})
}

// ParseLanguages splits a comma-separated list, trimming entries and
// dropping empty ones.
func ParseLanguages(s string) []string {
	languages := []string{}
	for _, l := range strings.Split(s, ",") {
		if l = strings.TrimSpace(l); l != "" {
			languages = append(languages, l)
		}
	}
	return languages
}

func failure(videoID, message string) models.FailureResponse {
	return models.FailureResponse{
		Success: false,
		VideoID: videoID,
		Error:   message,
	}
}
