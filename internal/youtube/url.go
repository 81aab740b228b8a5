// Package youtube resolves a pasted video URL to its English caption
// transcript.
package youtube

import (
	"net/url"
	"strings"
)

// ExtractVideoID pulls the video identifier out of the watch?v= and
// youtu.be URL shapes. Unknown hosts and shapes return false.
func ExtractVideoID(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	switch u.Hostname() {
	case "www.youtube.com", "youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v, true
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return id, true
		}
	}
	return "", false
}
