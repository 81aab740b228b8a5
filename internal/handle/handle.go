// Package handle exposes the dictation session state machine as a
// JSON API: one session per ID, driven by fetch/navigate/input/submit.
package handle

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/dictation"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/session"
)

type Handle struct {
	provider dictation.TranscriptProvider
	scorers  map[string]score.Engine
	def      string
	sessions *session.Manager[string]
	log      *zap.Logger
}

func New(provider dictation.TranscriptProvider, scorers map[string]score.Engine, defaultScorer string, log *zap.Logger) *Handle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handle{
		provider: provider,
		scorers:  scorers,
		def:      defaultScorer,
		sessions: session.NewManager[string](),
		log:      log,
	}
}

// Register wires all session routes onto the mux.
func (h *Handle) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/sessions", h.CreateSession)
	mux.HandleFunc("GET /v1/sessions/{id}", h.GetSession)
	mux.HandleFunc("POST /v1/sessions/{id}/fetch", h.Fetch)
	mux.HandleFunc("POST /v1/sessions/{id}/navigate", h.Navigate)
	mux.HandleFunc("POST /v1/sessions/{id}/input", h.Input)
	mux.HandleFunc("POST /v1/sessions/{id}/submit", h.Submit)
}

func (h *Handle) engine(name string) (score.Engine, bool) {
	if name == "" {
		name = h.def
	}
	e, ok := h.scorers[name]
	return e, ok
}

func (h *Handle) state(w http.ResponseWriter, r *http.Request) (*session.State, bool) {
	st, ok := h.sessions.Peek(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_session", "no session with that id")
		return nil, false
	}
	return st, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, kind, details string) {
	writeJSON(w, code, map[string]string{"error": kind, "details": details})
}
