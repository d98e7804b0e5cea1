package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/services/transcript"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterFieldNames()
}

// fakeProvider returns canned results and records what it was asked for.
type fakeProvider struct {
	mu sync.Mutex

	segments []transcript.Segment
	fetchErr error
	listed   []transcript.TranscriptInfo
	listErr  error
	checkErr error

	fetchCalls    int
	lastLanguages []string
	lastVideoID   string
	lastProxy     *transcript.ProxyConfig
}

func (f *fakeProvider) FetchTranscript(_ context.Context, videoID string, languages []string, proxy *transcript.ProxyConfig) ([]transcript.Segment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	f.lastVideoID = videoID
	f.lastLanguages = languages
	f.lastProxy = proxy
	return f.segments, f.fetchErr
}

func (f *fakeProvider) ListTranscripts(_ context.Context, videoID string, proxy *transcript.ProxyConfig) ([]transcript.TranscriptInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastVideoID = videoID
	f.lastProxy = proxy
	return f.listed, f.listErr
}

func (f *fakeProvider) CheckProxy(transcript.ProxyConfig) error {
	return f.checkErr
}

// successProvider serves a two-segment English transcript.
func successProvider() *fakeProvider {
	return &fakeProvider{
		segments: []transcript.Segment{
			{Text: "Hello world", Start: 0, Duration: 1.5},
			{Text: "again", Start: 1.5, Duration: 2.0},
		},
		listed: []transcript.TranscriptInfo{
			{LanguageCode: "en", Language: "English", IsTranslatable: true},
			{LanguageCode: "es", Language: "Spanish (auto-generated)", IsGenerated: true},
		},
	}
}

// newTestEngine wires the handlers the same way the router does, minus
// the middleware.
func newTestEngine(p transcript.Provider) *gin.Engine {
	gw := transcript.NewGateway(p, nil, zerolog.Nop())
	h := NewHandler(gw, "test")

	r := gin.New()
	r.SetHTMLTemplate(Templates())
	r.NoRoute(NotFound)

	r.GET("/", h.Root)
	r.GET("/health", h.HealthCheck)
	r.GET("/docs", h.ServeSwaggerUI)
	r.GET("/openapi.yaml", h.ServeOpenAPI)
	r.POST("/transcript", h.PostTranscript)
	r.GET("/transcript", h.GetTranscript)
	r.GET("/transcript/export", h.ExportTranscript)
	r.POST("/available-languages", h.PostAvailableLanguages)
	r.GET("/available-languages", h.GetAvailableLanguages)
	r.POST("/configure-proxy", h.ConfigureProxy)
	r.GET("/ui", h.ShowForm)
	r.POST("/ui", h.SubmitForm)
	r.POST("/ui/download", h.DownloadText)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			if err := json.NewEncoder(&buf).Encode(b); err != nil {
				t.Fatalf("encode body: %v", err)
			}
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doGet(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body
}
