// ui.go serves the interactive transcript form.
//
// Go Pattern: Embedding static files. The template is compiled into the
// binary with `embed`, then parsed once at startup with html/template,
// which escapes every value it renders.
package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/models"
	"github.com/Shimizu-Technology/yt-transcript-api/internal/services/transcript"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded HTML templates. Pass the result to
// (*gin.Engine).SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// uiPage is the data rendered by ui.html.
type uiPage struct {
	Video     string
	Languages string
	Error     string

	Success   bool
	VideoID   string
	WordCount int
	Duration  string
	Text      string
}

// ShowForm renders the empty form.
// GET /ui
func (h *Handler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "ui.html", uiPage{Languages: "en"})
}

// SubmitForm runs the same normalize → fetch → format steps as the JSON
// API and renders the result inline.
// POST /ui
func (h *Handler) SubmitForm(c *gin.Context) {
	page := uiPage{
		Video:     c.PostForm("video"),
		Languages: c.DefaultPostForm("languages", "en"),
	}

	if page.Video == "" {
		page.Error = "Please enter a YouTube video URL or ID."
		c.HTML(http.StatusOK, "ui.html", page)
		return
	}

	videoID, err := transcript.NormalizeVideoID(page.Video)
	if err != nil {
		page.Error = "Error: " + err.Error()
		c.HTML(http.StatusOK, "ui.html", page)
		return
	}

	languages := ParseLanguages(page.Languages)
	out := h.Gateway.Fetch(c.Request.Context(), videoID, languages)
	if !out.OK() {
		page.Error = uiFailureMessage(out)
		c.HTML(http.StatusOK, "ui.html", page)
		return
	}

	stats := transcript.Summarize(out.Segments)
	page.Success = true
	page.VideoID = videoID
	page.WordCount = stats.WordCount
	page.Duration = fmt.Sprintf("%.2f", stats.TotalDuration)
	page.Text = stats.Text
	c.HTML(http.StatusOK, "ui.html", page)
}

// DownloadText returns the transcript text shown on the form as a file.
// POST /ui/download
func (h *Handler) DownloadText(c *gin.Context) {
	videoID, err := transcript.NormalizeVideoID(c.PostForm("video_id"))
	if err != nil {
		validationError(c, err)
		return
	}
	attach(c, "text/plain; charset=utf-8", exportFilename(videoID, models.FormatTXT), []byte(c.PostForm("text")))
}

// uiFailureMessage is the sentence shown on the form for a failed fetch.
func uiFailureMessage(out transcript.FetchOutcome) string {
	switch out.Kind {
	case transcript.OutcomeTranscriptsDisabled, transcript.OutcomeVideoUnavailable:
		return strings.TrimSuffix(out.Message(), ".") + "."
	default:
		return out.Message()
	}
}
