package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestClient serves the given watch page, with "{{base}}" replaced
// by the test server's URL, plus a json3 caption endpoint.
func newTestClient(t *testing.T, page string) *Client {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.ReplaceAll(page, "{{base}}", srv.URL))
	})
	mux.HandleFunc("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fmt") != "json3" {
			http.Error(w, "want fmt=json3", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"events":[
			{"segs":[{"utf8":"Hello "},{"utf8":"world."}]},
			{"segs":[{"utf8":"Second cue!"}]}
		]}`)
	})

	return &Client{httpc: srv.Client(), watchBase: srv.URL + "/watch?v="}
}

func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, `<html>"captionTracks":[{"baseUrl":"{{base}}/timedtext?lang=en","languageCode":"en","kind":"asr"}]</html>`)

	got, err := c.Fetch(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if want := "Hello world. Second cue!"; got != want {
		t.Errorf("Fetch = %q, want %q", got, want)
	}
}

func TestClient_Fetch_NoCaptions(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "<html>a page with no caption data</html>")

	_, err := c.Fetch(context.Background(), "abc123")
	if !errors.Is(err, ErrNoCaptions) {
		t.Fatalf("err = %v, want ErrNoCaptions", err)
	}
}

func TestClient_Fetch_NoEnglishTrack(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, `<html>"captionTracks":[{"baseUrl":"{{base}}/timedtext?lang=de","languageCode":"de"}]</html>`)

	_, err := c.Fetch(context.Background(), "abc123")
	if !errors.Is(err, ErrNoEnglishTrack) {
		t.Fatalf("err = %v, want ErrNoEnglishTrack", err)
	}
}
