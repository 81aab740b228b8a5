package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	watchURLPrefix = "https://www.youtube.com/watch?v="
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 20_000_000
	userAgent      = "Mozilla/5.0 (compatible; dictation-bot/1.0)"
)

var (
	// ErrNoEnglishTrack means the video has captions, but none in English.
	ErrNoEnglishTrack = errors.New("no english caption track")
	// ErrNoCaptions means the video exposes no caption tracks at all.
	ErrNoCaptions = errors.New("no captions for video")
)

// Client fetches the full English transcript for a video ID. It
// implements the transcript provider contract of the dictation
// controller.
type Client struct {
	httpc     *http.Client
	watchBase string
}

func NewClient() *Client {
	return &Client{
		httpc:     &http.Client{Timeout: defaultTimeout},
		watchBase: watchURLPrefix,
	}
}

// Fetch returns the caption cues of the best English track joined with
// single spaces, in time order.
func (c *Client) Fetch(ctx context.Context, videoID string) (string, error) {
	page, err := c.get(ctx, c.watchBase+videoID)
	if err != nil {
		return "", fmt.Errorf("watch page for %s: %w", videoID, err)
	}

	tracks, err := extractCaptionTracks(page)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoCaptions, err)
	}
	track, ok := SelectEnglishTrack(tracks)
	if !ok {
		return "", ErrNoEnglishTrack
	}

	body, err := c.get(ctx, track.BaseURL+"&fmt=json3")
	if err != nil {
		return "", fmt.Errorf("captions for %s: %w", videoID, err)
	}
	return flattenJSON3(body)
}

// get downloads a URL with exponential backoff on transient failures.
// Client-side HTTP errors are not retried.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := c.httpc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(fmt.Errorf("unexpected HTTP status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
		}
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return body, nil
}

type json3Doc struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// flattenJSON3 joins the cue texts of a json3 caption document with
// single spaces, keeping time order.
func flattenJSON3(b []byte) (string, error) {
	var doc json3Doc
	if err := json.Unmarshal(b, &doc); err != nil {
		return "", fmt.Errorf("decode json3 captions: %w", err)
	}
	var cues []string
	for _, ev := range doc.Events {
		var sb strings.Builder
		for _, seg := range ev.Segs {
			sb.WriteString(seg.UTF8)
		}
		if cue := strings.TrimSpace(sb.String()); cue != "" {
			cues = append(cues, cue)
		}
	}
	return strings.Join(cues, " "), nil
}
