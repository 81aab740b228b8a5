package youtube

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Track is one caption track from the watch page's player response.
// Kind "asr" marks an auto-generated track.
type Track struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

func (t Track) generated() bool { return t.Kind == "asr" }

func (t Track) english() bool {
	return strings.HasPrefix(strings.ToLower(t.LanguageCode), "en")
}

// SelectEnglishTrack applies the caption selection policy: a manually
// authored English track wins over an auto-generated one, regardless
// of list order. No English track at all returns false.
func SelectEnglishTrack(tracks []Track) (Track, bool) {
	var generatedEnglish *Track
	for i, t := range tracks {
		if !t.english() {
			continue
		}
		if !t.generated() {
			return t, true
		}
		if generatedEnglish == nil {
			generatedEnglish = &tracks[i]
		}
	}
	if generatedEnglish != nil {
		return *generatedEnglish, true
	}
	return Track{}, false
}

const captionTracksMarker = `"captionTracks":`

// extractCaptionTracks locates the captionTracks array embedded in the
// watch page HTML and decodes it. The decoder stops at the end of the
// array, so the surrounding player response does not need parsing.
func extractCaptionTracks(page []byte) ([]Track, error) {
	i := strings.Index(string(page), captionTracksMarker)
	if i < 0 {
		return nil, fmt.Errorf("no caption tracks on watch page")
	}
	dec := json.NewDecoder(strings.NewReader(string(page[i+len(captionTracksMarker):])))
	var tracks []Track
	if err := dec.Decode(&tracks); err != nil {
		return nil, fmt.Errorf("decode caption tracks: %w", err)
	}
	return tracks, nil
}
