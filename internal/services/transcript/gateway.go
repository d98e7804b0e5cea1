// Package transcript wraps a YouTube transcript provider behind a small,
// typed gateway.
//
// Go Pattern: This package defines a Provider interface at the point of
// use. The concrete YouTube client lives in its own package and satisfies
// the interface implicitly, so handlers and tests can swap it for a fake.
//
// The gateway never returns raw provider errors to callers. Every call
// produces an outcome value tagged with one of a fixed set of kinds, and
// handlers switch on the kind instead of inspecting error types.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/metrics"
)

// Provider errors. Implementations wrap these with %w so the gateway can
// classify failures with errors.Is.
var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscriptFound   = errors.New("no transcript found for the requested languages")
	ErrVideoUnavailable    = errors.New("video is unavailable")
)

// TranscriptInfo describes one transcript track a video offers.
type TranscriptInfo struct {
	LanguageCode   string `json:"language_code"`
	Language       string `json:"language"`
	IsGenerated    bool   `json:"is_generated"`
	IsTranslatable bool   `json:"is_translatable"`
}

// Provider is the external transcript capability: fetch, list, and proxy
// configuration. proxy may be nil, meaning a direct connection.
type Provider interface {
	FetchTranscript(ctx context.Context, videoID string, languages []string, proxy *ProxyConfig) ([]Segment, error)
	ListTranscripts(ctx context.Context, videoID string, proxy *ProxyConfig) ([]TranscriptInfo, error)
	CheckProxy(proxy ProxyConfig) error
}

// OutcomeKind tags the result of a gateway call.
// Go Pattern: String constants instead of enums, same as the status types
// in the models package.
type OutcomeKind string

const (
	OutcomeSuccess             OutcomeKind = "success"
	OutcomeInvalidVideoID      OutcomeKind = "invalid_video_id"
	OutcomeTranscriptsDisabled OutcomeKind = "transcripts_disabled"
	OutcomeNoTranscriptFound   OutcomeKind = "no_transcript_found"
	OutcomeVideoUnavailable    OutcomeKind = "video_unavailable"
	OutcomeUnexpected          OutcomeKind = "unexpected"
)

// FetchOutcome is the result of Gateway.Fetch.
type FetchOutcome struct {
	Kind      OutcomeKind
	VideoID   string
	Languages []string // as requested, in preference order

	Segments           []Segment
	Language           string // best effort, may be empty
	AvailableLanguages []string

	Err error // set for every kind except OutcomeSuccess
}

// OK reports whether the fetch succeeded.
func (o FetchOutcome) OK() bool { return o.Kind == OutcomeSuccess }

// Message returns the client-facing error text for a failed fetch.
func (o FetchOutcome) Message() string {
	return failureMessage(o.Kind, o.Languages, o.Err)
}

// LanguagesOutcome is the result of Gateway.Languages.
type LanguagesOutcome struct {
	Kind        OutcomeKind
	VideoID     string
	Transcripts []TranscriptInfo
	Err         error
}

// OK reports whether the listing succeeded.
func (o LanguagesOutcome) OK() bool { return o.Kind == OutcomeSuccess }

// Message returns the client-facing error text for a failed listing.
func (o LanguagesOutcome) Message() string {
	return failureMessage(o.Kind, nil, o.Err)
}

// Gateway calls the Provider with the current proxy snapshot and turns
// its errors into outcomes.
type Gateway struct {
	provider    Provider
	proxies     *ProxyStore
	callTimeout time.Duration
	log         zerolog.Logger
}

// NewGateway creates a gateway. proxies may be nil.
func NewGateway(p Provider, proxies *ProxyStore, log zerolog.Logger) *Gateway {
	if proxies == nil {
		proxies = NewProxyStore(nil)
	}
	return &Gateway{provider: p, proxies: proxies, log: log}
}

// SetCallTimeout bounds every Fetch and Languages call, provider requests
// included. Zero means no bound. Call it before the gateway serves requests.
func (g *Gateway) SetCallTimeout(d time.Duration) {
	g.callTimeout = d
}

func (g *Gateway) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.callTimeout)
}

// Fetch retrieves the transcript of videoID in the first available
// language from languages.
//
// The provider does not report which language it used, so after a
// successful fetch the track list is queried once: the first language in
// preference order that has a listed track is reported. If that lookup
// fails, the first requested language is reported instead. Callers must
// treat Language as approximate.
func (g *Gateway) Fetch(ctx context.Context, videoID string, languages []string) FetchOutcome {
	out := FetchOutcome{VideoID: videoID, Languages: languages}
	if !IsValidVideoID(videoID) {
		out.Kind, out.Err = OutcomeInvalidVideoID, &ValidationError{Input: videoID}
		return out
	}

	ctx, cancel := g.withDeadline(ctx)
	defer cancel()
	proxy := g.proxies.Load()

	start := time.Now()
	segments, err := g.provider.FetchTranscript(ctx, videoID, languages, proxy)
	out.Kind = classify(err)
	metrics.ObserveProviderCall("fetch", string(out.Kind), time.Since(start))
	if err != nil {
		out.Err = err
		g.logFailure("fetch", videoID, out.Kind, err)
		return out
	}
	out.Segments = segments

	start = time.Now()
	listed, err := g.provider.ListTranscripts(ctx, videoID, proxy)
	metrics.ObserveProviderCall("list", string(classify(err)), time.Since(start))
	if err != nil {
		g.log.Debug().Err(err).Str("video_id", videoID).Msg("language lookup failed, guessing from request")
		out.AvailableLanguages = []string{}
		if len(segments) > 0 {
			out.Language = "unknown"
			if len(languages) > 0 {
				out.Language = languages[0]
			}
		}
		return out
	}

	out.AvailableLanguages = make([]string, 0, len(listed))
	for _, t := range listed {
		out.AvailableLanguages = append(out.AvailableLanguages, t.LanguageCode)
	}
	if len(segments) > 0 {
		out.Language = resolveLanguage(listed, languages)
	}
	return out
}

// Languages lists the transcript tracks available for videoID.
func (g *Gateway) Languages(ctx context.Context, videoID string) LanguagesOutcome {
	out := LanguagesOutcome{VideoID: videoID}
	if !IsValidVideoID(videoID) {
		out.Kind, out.Err = OutcomeInvalidVideoID, &ValidationError{Input: videoID}
		return out
	}

	ctx, cancel := g.withDeadline(ctx)
	defer cancel()

	start := time.Now()
	listed, err := g.provider.ListTranscripts(ctx, videoID, g.proxies.Load())
	out.Kind = classify(err)
	metrics.ObserveProviderCall("list", string(out.Kind), time.Since(start))
	if err != nil {
		out.Err = err
		g.logFailure("list", videoID, out.Kind, err)
		return out
	}
	if listed == nil {
		listed = []TranscriptInfo{}
	}
	out.Transcripts = listed
	return out
}

// ConfigureProxy validates cfg with the provider and makes it the proxy
// for every call that starts afterwards.
func (g *Gateway) ConfigureProxy(cfg ProxyConfig) error {
	if err := g.provider.CheckProxy(cfg); err != nil {
		return fmt.Errorf("invalid proxy configuration: %w", err)
	}
	g.proxies.Set(cfg)
	metrics.ProxyUpdatesTotal.Inc()
	g.log.Info().Str("proxy_username", cfg.Username).Msg("proxy configuration replaced")
	return nil
}

// Proxy returns the current proxy snapshot (nil when none is set).
func (g *Gateway) Proxy() *ProxyConfig {
	return g.proxies.Load()
}

func (g *Gateway) logFailure(op, videoID string, kind OutcomeKind, err error) {
	ev := g.log.Info()
	if kind == OutcomeUnexpected {
		ev = g.log.Error()
	}
	ev.Err(err).Str("op", op).Str("video_id", videoID).Str("outcome", string(kind)).Msg("provider call failed")
}

// resolveLanguage returns the first requested language that has a listed
// track, or "" when none do.
func resolveLanguage(listed []TranscriptInfo, languages []string) string {
	available := make(map[string]bool, len(listed))
	for _, t := range listed {
		available[t.LanguageCode] = true
	}
	for _, l := range languages {
		if available[l] {
			return l
		}
	}
	return ""
}

func classify(err error) OutcomeKind {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrInvalidVideoID):
		return OutcomeInvalidVideoID
	case errors.Is(err, ErrTranscriptsDisabled):
		return OutcomeTranscriptsDisabled
	case errors.Is(err, ErrNoTranscriptFound):
		return OutcomeNoTranscriptFound
	case errors.Is(err, ErrVideoUnavailable):
		return OutcomeVideoUnavailable
	default:
		return OutcomeUnexpected
	}
}

func failureMessage(kind OutcomeKind, languages []string, err error) string {
	switch kind {
	case OutcomeSuccess:
		return ""
	case OutcomeInvalidVideoID:
		return InvalidVideoIDMessage
	case OutcomeTranscriptsDisabled:
		return "Transcripts are disabled for this video"
	case OutcomeNoTranscriptFound:
		return "No transcript found for languages: " + FormatLanguageList(languages)
	case OutcomeVideoUnavailable:
		return "Video is unavailable"
	default:
		msg := "unknown error"
		if err != nil {
			msg = err.Error()
		}
		return "Unexpected error: " + msg
	}
}

// FormatLanguageList renders languages as a bracketed, quoted list, e.g.
// ['en', 'es'], which is how clients of this API have always seen it.
func FormatLanguageList(languages []string) string {
	quoted := make([]string, len(languages))
	for i, l := range languages {
		quoted[i] = "'" + l + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
