// Package models defines the request and response shapes of the HTTP API.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// Separate structs for API input/output keep the wire contract independent
// of the transcript package's internal types.
package models

import "github.com/Shimizu-Technology/yt-transcript-api/internal/services/transcript"

// TranscriptRequest is the JSON body for POST /transcript.
type TranscriptRequest struct {
	VideoID            string   `json:"video_id" form:"video_id" binding:"required"`
	Languages          []string `json:"languages,omitempty"`
	PreserveFormatting bool     `json:"preserve_formatting,omitempty" form:"preserve_formatting"` // accepted, no effect
}

// TranscriptQuery holds the query parameters for GET /transcript.
// Languages is comma-separated, e.g. "en,es".
type TranscriptQuery struct {
	VideoID            string `form:"video_id" binding:"required"`
	Languages          string `form:"languages"`
	PreserveFormatting bool   `form:"preserve_formatting"`
}

// TranscriptResponse is the success body of both transcript endpoints.
// Language is null when no listed track matched the request.
type TranscriptResponse struct {
	Success            bool                 `json:"success"`
	VideoID            string               `json:"video_id"`
	Language           *string              `json:"language"`
	AvailableLanguages []string             `json:"available_languages"`
	Transcript         []transcript.Segment `json:"transcript"`
	FormattedText      string               `json:"formatted_text"`
	TotalDuration      float64              `json:"total_duration"`
	WordCount          int                  `json:"word_count"`
}

// FailureResponse is the body of every gateway failure, for both the
// transcript and the available-languages endpoints.
type FailureResponse struct {
	Success bool   `json:"success"`
	VideoID string `json:"video_id"`
	Error   string `json:"error"`
}

// LanguageListRequest is the JSON body for POST /available-languages and
// the query for its GET variant.
type LanguageListRequest struct {
	VideoID string `json:"video_id" form:"video_id" binding:"required"`
}

// LanguageListResponse is the success body of the available-languages
// endpoints.
type LanguageListResponse struct {
	Success            bool                        `json:"success"`
	VideoID            string                      `json:"video_id"`
	AvailableLanguages []transcript.TranscriptInfo `json:"available_languages"`
}

// ProxyConfigRequest is the JSON body for POST /configure-proxy.
type ProxyConfigRequest struct {
	ProxyUsername string `json:"proxy_username" binding:"required"`
	ProxyPassword string `json:"proxy_password" binding:"required"`
}

// ProxyConfigResponse is the success body for POST /configure-proxy.
type ProxyConfigResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DetailResponse carries a failure detail string. Only /configure-proxy
// uses it, with a 500 status.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ErrorResponse is the fixed shape for not-found and internal errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the fixed shape for rejected input (422).
type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details []ValidationIssue `json:"details"`
	Message string            `json:"message"`
}

// ValidationIssue names one offending field.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Input   string `json:"input,omitempty"`
}

// ExportFormat is a supported download format.
type ExportFormat string

const (
	FormatTXT      ExportFormat = "txt"
	FormatMarkdown ExportFormat = "md"
	FormatSRT      ExportFormat = "srt"
	FormatJSON     ExportFormat = "json"
)

// ExportQuery holds the query parameters for GET /transcript/export.
type ExportQuery struct {
	VideoID   string       `form:"video_id" binding:"required"`
	Languages string       `form:"languages"`
	Format    ExportFormat `form:"format"`
}
