// export.go handles transcript downloads in multiple formats.
//
// Supported formats:
//   - txt: plain text transcript
//   - md: Markdown with a metadata table
//   - srt: SubRip subtitles with the provider's segment timings
//   - json: the same body GET /transcript returns
//
// Go Pattern: Each export format is its own function, selected by a switch
// on the format query parameter.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/models"
	"github.com/Shimizu-Technology/yt-transcript-api/internal/services/transcript"
)

// ExportTranscript fetches a transcript and returns it as a file download.
// GET /transcript/export?video_id=VIDEO_ID&languages=en,es&format=txt|md|srt|json
//
// Response headers are set for file download:
//   - Content-Type: appropriate MIME type
//   - Content-Disposition: attachment; filename="<video_id>_transcript.<ext>"
func (h *Handler) ExportTranscript(c *gin.Context) {
	var q models.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationError(c, err)
		return
	}
	if q.Format == "" {
		q.Format = models.FormatTXT
	}

	// Validate format before doing any provider work
	validFormats := map[models.ExportFormat]bool{
		models.FormatTXT: true, models.FormatMarkdown: true, models.FormatSRT: true, models.FormatJSON: true,
	}
	if !validFormats[q.Format] {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_format",
			Message: "Supported formats: txt, md, srt, json",
		})
		return
	}

	videoID, err := transcript.NormalizeVideoID(q.VideoID)
	if err != nil {
		validationError(c, err)
		return
	}

	out := h.Gateway.Fetch(c.Request.Context(), videoID, ParseLanguages(c.DefaultQuery("languages", "en")))
	if !out.OK() {
		c.JSON(http.StatusOK, failure(videoID, out.Message()))
		return
	}

	switch q.Format {
	case models.FormatTXT:
		exportTXT(c, out)
	case models.FormatMarkdown:
		exportMarkdown(c, out)
	case models.FormatSRT:
		exportSRT(c, out)
	case models.FormatJSON:
		exportJSON(c, out)
	}
}

// exportFilename is the download name for a video's transcript.
func exportFilename(videoID string, format models.ExportFormat) string {
	return fmt.Sprintf("%s_transcript.%s", videoID, format)
}

func attach(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, body)
}

// exportTXT returns the transcript as plain text.
func exportTXT(c *gin.Context, out transcript.FetchOutcome) {
	attach(c, "text/plain; charset=utf-8", exportFilename(out.VideoID, models.FormatTXT),
		[]byte(transcript.FormatText(out.Segments)))
}

// exportMarkdown returns the transcript as Markdown with a metadata header.
func exportMarkdown(c *gin.Context, out transcript.FetchOutcome) {
	stats := transcript.Summarize(out.Segments)
	language := out.Language
	if language == "" {
		language = "unknown"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Transcript: %s\n\n", out.VideoID))
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", formatDuration(int(stats.TotalDuration))))
	sb.WriteString(fmt.Sprintf("| Words | %d |\n", stats.WordCount))
	sb.WriteString(fmt.Sprintf("| Language | %s |\n", language))
	sb.WriteString(fmt.Sprintf("| URL | %s |\n", transcript.WatchURL(out.VideoID)))
	sb.WriteString("\n---\n\n")
	sb.WriteString("## Transcript\n\n")
	sb.WriteString(stats.Text)
	sb.WriteString("\n")

	attach(c, "text/markdown; charset=utf-8", exportFilename(out.VideoID, models.FormatMarkdown), []byte(sb.String()))
}

// exportSRT returns the transcript in SubRip subtitle format, one cue per
// segment.
func exportSRT(c *gin.Context, out transcript.FetchOutcome) {
	attach(c, "text/srt; charset=utf-8", exportFilename(out.VideoID, models.FormatSRT), []byte(buildSRT(out.Segments)))
}

func buildSRT(segments []transcript.Segment) string {
	if len(segments) == 0 {
		return "1\n00:00:00,000 --> 00:00:01,000\n(empty transcript)\n\n"
	}

	var sb strings.Builder
	for i, s := range segments {
		// SRT format: index, timestamp range, text, blank line
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatSRTTime(s.Start), formatSRTTime(s.Start+s.Duration)))
		sb.WriteString(s.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// exportJSON returns the full transcript response as an indented file.
func exportJSON(c *gin.Context, out transcript.FetchOutcome) {
	jsonBytes, err := json.MarshalIndent(transcriptResponse(out), "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "export_error",
			Message: "Failed to generate JSON export",
		})
		return
	}
	attach(c, "application/json; charset=utf-8", exportFilename(out.VideoID, models.FormatJSON), jsonBytes)
}

// --- Helper Functions ---

// formatSRTTime converts seconds to SRT timestamp format: HH:MM:SS,mmm
func formatSRTTime(seconds float64) string {
	totalMs := int(seconds*1000 + 0.5)
	h := totalMs / 3600000
	m := (totalMs % 3600000) / 60000
	s := (totalMs % 60000) / 1000
	ms := totalMs % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// formatDuration converts seconds to a human-readable duration string.
func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
