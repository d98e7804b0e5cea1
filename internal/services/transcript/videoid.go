package transcript

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// InvalidVideoIDMessage is the user-facing text for a rejected reference.
const InvalidVideoIDMessage = "Invalid YouTube video ID format"

// ErrInvalidVideoID is matched by every *ValidationError via errors.Is.
var ErrInvalidVideoID = errors.New("invalid YouTube video ID format")

// ValidationError reports a video reference that did not yield an
// 11-character identifier.
type ValidationError struct {
	Input string
}

func (e *ValidationError) Error() string {
	return InvalidVideoIDMessage
}

// Is lets callers use errors.Is(err, ErrInvalidVideoID).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidVideoID
}

var videoIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// NormalizeVideoID extracts the video ID from a YouTube URL or returns the
// input itself, then checks it has the 11-character ID shape.
// Supports:
//   - https://youtu.be/VIDEO_ID
//   - https://www.youtube.com/watch?v=VIDEO_ID&t=10
//   - https://www.youtube.com/embed/VIDEO_ID
//   - Just the video ID itself
func NormalizeVideoID(raw string) (string, error) {
	candidate := extractVideoID(raw)
	if !videoIDRegex.MatchString(candidate) {
		return "", &ValidationError{Input: raw}
	}
	return candidate, nil
}

// IsValidVideoID reports whether s already has the identifier shape.
func IsValidVideoID(s string) bool {
	return videoIDRegex.MatchString(s)
}

// extractVideoID returns the candidate identifier without validating it.
// Markers are checked in a fixed order; the first one present wins.
func extractVideoID(raw string) string {
	switch {
	case strings.Contains(raw, "youtu.be/"):
		return afterLast(raw, "youtu.be/")
	case strings.Contains(raw, "youtube.com/watch"):
		return queryParam(raw, "v")
	case strings.Contains(raw, "youtube.com/embed/"):
		return afterLast(raw, "embed/")
	default:
		return raw
	}
}

// queryParam reads key from the text after the first '?', up to any '#'.
// Only the query is parsed, so a host with a port and no scheme or a bad
// escape in the path still yields the parameter. Malformed pairs are
// skipped.
func queryParam(raw, key string) string {
	_, query, ok := strings.Cut(raw, "?")
	if !ok {
		return ""
	}
	query, _, _ = strings.Cut(query, "#")
	values, _ := url.ParseQuery(query)
	return values.Get(key)
}

// afterLast returns the text after the last marker, cut at the first '?'.
func afterLast(s, marker string) string {
	rest := s[strings.LastIndex(s, marker)+len(marker):]
	if i := strings.Index(rest, "?"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// WatchURL returns the canonical watch URL for a validated ID.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
