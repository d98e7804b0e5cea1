// Package youtube adapts github.com/kkdai/youtube/v2 to transcript.Provider.
// The library does the innertube player request, consent cookie and
// transcript request; this package picks the caption track, maps library
// errors onto the transcript sentinels and routes calls through the
// configured proxy.
//
// Go Pattern: Client satisfies transcript.Provider implicitly. Nothing in
// this package knows about HTTP handlers or response shapes.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	kkdai "github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/services/transcript"
)

// DefaultBaseURL is the origin the library talks to.
const DefaultBaseURL = "https://www.youtube.com"

// ErrRequestBlocked means YouTube answered 429. The gateway reports it as
// an unexpected error.
var ErrRequestBlocked = errors.New("YouTube is blocking requests from this IP")

// Options configures a Client.
type Options struct {
	BaseURL     string        // scheme and host replacing DefaultBaseURL; defaults to DefaultBaseURL
	Timeout     time.Duration // per HTTP request; defaults to 30s
	ProxyDomain string        // Webshare rotating proxy host; defaults to p.webshare.io
	ProxyPort   int           // defaults to 80
	Logger      zerolog.Logger
}

// Client fetches caption tracks and transcripts through the library.
type Client struct {
	origin      *url.URL // nil when requests go to YouTube unchanged
	timeout     time.Duration
	proxyDomain string
	proxyPort   int
	httpClient  *http.Client // used when no proxy is configured
	log         zerolog.Logger
}

// New creates a YouTube client.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.ProxyDomain == "" {
		opts.ProxyDomain = defaultProxyDomain
	}
	if opts.ProxyPort == 0 {
		opts.ProxyPort = defaultProxyPort
	}

	c := &Client{
		timeout:     opts.Timeout,
		proxyDomain: opts.ProxyDomain,
		proxyPort:   opts.ProxyPort,
		log:         opts.Logger,
	}
	if opts.BaseURL != "" && opts.BaseURL != DefaultBaseURL {
		u, err := url.Parse(opts.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			c.log.Warn().Str("base_url", opts.BaseURL).Msg("ignoring invalid YouTube base URL")
		} else {
			c.origin = u
		}
	}

	// Go Pattern: Always configure timeouts on HTTP clients.
	c.httpClient = &http.Client{Timeout: opts.Timeout, Transport: c.transport(http.DefaultTransport)}
	return c
}

// FetchTranscript downloads the transcript of videoID in the first
// language from languages that has a track. Manually created tracks win
// over generated ones within the same language.
func (c *Client) FetchTranscript(ctx context.Context, videoID string, languages []string, proxy *transcript.ProxyConfig) ([]transcript.Segment, error) {
	yc, err := c.libraryClient(proxy)
	if err != nil {
		return nil, err
	}

	video, err := c.video(ctx, yc, videoID)
	if err != nil {
		return nil, err
	}

	track, err := findTrack(video.CaptionTracks, languages)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("video_id", videoID).Str("language", track.LanguageCode).
		Bool("generated", isGenerated(*track)).Msg("fetching transcript")

	parts, err := yc.GetTranscriptCtx(ctx, video, track.LanguageCode)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", mapError(err))
	}

	segments := make([]transcript.Segment, 0, len(parts))
	for _, p := range parts {
		segments = append(segments, transcript.Segment{
			Text:     p.Text,
			Start:    float64(p.StartMs) / 1000,
			Duration: float64(p.Duration) / 1000,
		})
	}
	return segments, nil
}

// ListTranscripts returns every caption track of videoID, manual tracks
// first, in the order YouTube lists them.
func (c *Client) ListTranscripts(ctx context.Context, videoID string, proxy *transcript.ProxyConfig) ([]transcript.TranscriptInfo, error) {
	yc, err := c.libraryClient(proxy)
	if err != nil {
		return nil, err
	}

	video, err := c.video(ctx, yc, videoID)
	if err != nil {
		return nil, err
	}

	infos := make([]transcript.TranscriptInfo, 0, len(video.CaptionTracks))
	for _, generated := range []bool{false, true} {
		for _, t := range video.CaptionTracks {
			if isGenerated(t) != generated {
				continue
			}
			infos = append(infos, transcript.TranscriptInfo{
				LanguageCode:   t.LanguageCode,
				Language:       t.Name.SimpleText,
				IsGenerated:    generated,
				IsTranslatable: t.IsTranslatable,
			})
		}
	}
	return infos, nil
}

// libraryClient builds a fresh library client for one provider call. The
// library mutates its client while falling back to the embedded player,
// so instances are never shared between calls.
func (c *Client) libraryClient(proxy *transcript.ProxyConfig) (*kkdai.Client, error) {
	hc, err := c.clientFor(proxy)
	if err != nil {
		return nil, err
	}
	return &kkdai.Client{HTTPClient: hc}, nil
}

// video loads the player response of videoID and requires at least one
// caption track.
func (c *Client) video(ctx context.Context, yc *kkdai.Client, videoID string) (*kkdai.Video, error) {
	video, err := yc.GetVideoContext(ctx, videoID)
	if err != nil {
		// Caption tracks are read before stream formats, so a response
		// without formats still carries usable tracks.
		if video == nil || len(video.CaptionTracks) == 0 {
			return nil, mapError(err)
		}
		c.log.Debug().Err(err).Str("video_id", videoID).Msg("player response incomplete, using caption tracks")
	}

	if len(video.CaptionTracks) == 0 {
		return nil, fmt.Errorf("%w: no caption tracks for %s", transcript.ErrTranscriptsDisabled, videoID)
	}
	return video, nil
}

// mapError translates library errors into the transcript sentinels.
// Anything unmapped stays an unexpected error.
func mapError(err error) error {
	var playability *kkdai.ErrPlayabiltyStatus
	var status kkdai.ErrUnexpectedStatusCode

	switch {
	case errors.Is(err, kkdai.ErrTranscriptDisabled):
		return fmt.Errorf("%w: %w", transcript.ErrTranscriptsDisabled, err)
	case errors.Is(err, kkdai.ErrVideoPrivate), errors.As(err, &playability):
		return fmt.Errorf("%w: %w", transcript.ErrVideoUnavailable, err)
	case errors.As(err, &status) && int(status) == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRequestBlocked, err)
	default:
		return err
	}
}

func isGenerated(t kkdai.CaptionTrack) bool {
	return t.Kind == "asr"
}

// findTrack checks each requested language in order, taking a manual track
// before a generated one.
func findTrack(tracks []kkdai.CaptionTrack, languages []string) (*kkdai.CaptionTrack, error) {
	for _, lang := range languages {
		for _, generated := range []bool{false, true} {
			for i := range tracks {
				if tracks[i].LanguageCode == lang && isGenerated(tracks[i]) == generated {
					return &tracks[i], nil
				}
			}
		}
	}

	available := make([]string, 0, len(tracks))
	for _, t := range tracks {
		available = append(available, t.LanguageCode)
	}
	return nil, fmt.Errorf("%w: requested %v, available %v", transcript.ErrNoTranscriptFound, languages, available)
}
