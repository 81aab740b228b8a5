package dictation

import "errors"

var (
	// ErrInvalidURL means no video ID could be extracted from the input.
	ErrInvalidURL = errors.New("invalid youtube url")

	// ErrTranscriptUnavailable means the provider yielded no usable
	// English transcript for the video.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
)

// Fetch failure kinds, machine readable, as surfaced to API clients.
const (
	KindInvalidURL            = "invalid_url"
	KindTranscriptUnavailable = "transcript_unavailable"
)

// Kind maps a FetchAndLoad error to its taxonomy kind, or "" for
// unknown errors.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidURL):
		return KindInvalidURL
	case errors.Is(err, ErrTranscriptUnavailable):
		return KindTranscriptUnavailable
	default:
		return ""
	}
}
