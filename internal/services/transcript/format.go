package transcript

import "strings"

// Segment is one timed unit of transcript text as returned by a Provider.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`    // seconds
	Duration float64 `json:"duration"` // seconds
}

// FormatText joins segment texts with single spaces, in order.
// Text is not trimmed or otherwise normalized.
func FormatText(segments []Segment) string {
	texts := make([]string, len(segments))
	for i, s := range segments {
		texts[i] = s.Text
	}
	return strings.Join(texts, " ")
}

// TotalDuration is the end of the last segment (start + duration).
// It approximates the timeline span; gaps and overlaps earlier in the
// sequence are ignored.
func TotalDuration(segments []Segment) float64 {
	if len(segments) == 0 {
		return 0
	}
	last := segments[len(segments)-1]
	return last.Start + last.Duration
}

// CountWords counts whitespace-delimited tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Stats bundles the values derived from a segment list.
type Stats struct {
	Text          string
	TotalDuration float64
	WordCount     int
}

// Summarize computes FormatText, TotalDuration and CountWords in one pass
// over the caller's segments.
func Summarize(segments []Segment) Stats {
	text := FormatText(segments)
	return Stats{
		Text:          text,
		TotalDuration: TotalDuration(segments),
		WordCount:     CountWords(text),
	}
}
