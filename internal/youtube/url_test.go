package youtube_test

import (
	"testing"

	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/youtube"
)

func TestExtractVideoID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{
			name:   "standard watch url",
			url:    "https://www.youtube.com/watch?v=M-y14-3Y6gE",
			wantID: "M-y14-3Y6gE",
			wantOK: true,
		},
		{
			name:   "short url",
			url:    "https://youtu.be/M-y14-3Y6gE",
			wantID: "M-y14-3Y6gE",
			wantOK: true,
		},
		{
			name:   "extra query parameters",
			url:    "https://www.youtube.com/watch?v=M-y14-3Y6gE&t=120s",
			wantID: "M-y14-3Y6gE",
			wantOK: true,
		},
		{
			name:   "bare host without www",
			url:    "https://youtube.com/watch?v=abc123",
			wantID: "abc123",
			wantOK: true,
		},
		{
			name:   "unrelated host",
			url:    "https://www.google.com",
			wantOK: false,
		},
		{
			name:   "watch url without v parameter",
			url:    "https://www.youtube.com/watch?t=120s",
			wantOK: false,
		},
		{
			name:   "empty short url path",
			url:    "https://youtu.be/",
			wantOK: false,
		},
		{
			name:   "empty string",
			url:    "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, ok := youtube.ExtractVideoID(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ExtractVideoID(%q): ok=%v, want %v", tt.url, ok, tt.wantOK)
			}
			if ok && id != tt.wantID {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, id, tt.wantID)
			}
		})
	}
}
