package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/services/transcript"
)

func TestShowForm(t *testing.T) {
	w := doGet(newTestEngine(successProvider()), "/ui")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "YouTube Transcript Fetcher")
	assert.Contains(t, w.Body.String(), `name="languages" value="en"`)
}

func TestSubmitForm(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		form     url.Values
		contains []string
		absent   []string
	}{
		{
			name:     "empty input",
			provider: successProvider(),
			form:     url.Values{"video": {""}, "languages": {"en"}},
			contains: []string{"Please enter a YouTube video URL or ID."},
			absent:   []string{"Transcript fetched successfully!"},
		},
		{
			name:     "invalid input",
			provider: successProvider(),
			form:     url.Values{"video": {"https://vimeo.com/1"}, "languages": {"en"}},
			contains: []string{"Error: Invalid YouTube video ID format"},
		},
		{
			name:     "success",
			provider: successProvider(),
			form:     url.Values{"video": {"https://youtu.be/dQw4w9WgXcQ"}, "languages": {"en, es"}},
			contains: []string{
				"Transcript fetched successfully!",
				"<strong>Word Count:</strong> 3",
				"<strong>Total Duration:</strong> 3.50 seconds",
				"Hello world again",
				`action="/ui/download"`,
				`name="video_id" value="dQw4w9WgXcQ"`,
			},
		},
		{
			name:     "transcripts disabled",
			provider: &fakeProvider{fetchErr: transcript.ErrTranscriptsDisabled},
			form:     url.Values{"video": {"dQw4w9WgXcQ"}},
			contains: []string{"Transcripts are disabled for this video."},
		},
		{
			name:     "no transcript found",
			provider: &fakeProvider{fetchErr: transcript.ErrNoTranscriptFound},
			form:     url.Values{"video": {"dQw4w9WgXcQ"}, "languages": {"de"}},
			contains: []string{"No transcript found for languages: [&#39;de&#39;]"},
		},
		{
			name:     "video unavailable",
			provider: &fakeProvider{fetchErr: transcript.ErrVideoUnavailable},
			form:     url.Values{"video": {"dQw4w9WgXcQ"}},
			contains: []string{"Video is unavailable."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doForm(newTestEngine(tt.provider), "/ui", tt.form)

			require.Equal(t, http.StatusOK, w.Code)
			for _, want := range tt.contains {
				assert.Contains(t, w.Body.String(), want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, w.Body.String(), unwanted)
			}
		})
	}
}

func TestSubmitFormEscapesInput(t *testing.T) {
	w := doForm(newTestEngine(successProvider()), "/ui", url.Values{"video": {`"><script>alert(1)</script>`}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>alert(1)</script>")
}

func TestDownloadText(t *testing.T) {
	t.Run("attachment", func(t *testing.T) {
		w := doForm(newTestEngine(successProvider()), "/ui/download", url.Values{
			"video_id": {"dQw4w9WgXcQ"},
			"text":     {"Hello world again"},
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="dQw4w9WgXcQ_transcript.txt"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "Hello world again", w.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		w := doForm(newTestEngine(successProvider()), "/ui/download", url.Values{
			"video_id": {"../../etc/passwd"},
			"text":     {"x"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

// hiddenFields collects the hidden inputs of the form posting to action.
func hiddenFields(t *testing.T, page, action string) url.Values {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)

	attr := func(n *html.Node, key string) string {
		for _, a := range n.Attr {
			if a.Key == key {
				return a.Val
			}
		}
		return ""
	}

	fields := url.Values{}
	var walk func(n *html.Node, inForm bool)
	walk = func(n *html.Node, inForm bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "form":
				inForm = attr(n, "action") == action
			case "input":
				if inForm && attr(n, "type") == "hidden" {
					fields.Add(attr(n, "name"), attr(n, "value"))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inForm)
		}
	}
	walk(doc, false)
	return fields
}

func TestSubmitFormThenDownload(t *testing.T) {
	p := &fakeProvider{segments: []transcript.Segment{
		{Text: `Tom & "Jerry" <live>`, Start: 0, Duration: 1},
		{Text: "again", Start: 1, Duration: 1},
	}}
	r := newTestEngine(p)

	page := doForm(r, "/ui", url.Values{"video": {"https://youtu.be/dQw4w9WgXcQ"}, "languages": {"en"}})
	require.Equal(t, http.StatusOK, page.Code)

	fields := hiddenFields(t, page.Body.String(), "/ui/download")
	require.Equal(t, "dQw4w9WgXcQ", fields.Get("video_id"))

	w := doForm(r, "/ui/download", fields)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `Tom & "Jerry" <live> again`, w.Body.String())
	assert.Equal(t, 1, p.fetchCalls, "download must not fetch again")
}
