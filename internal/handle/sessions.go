package handle

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/dictation"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/session"
)

type sentenceView struct {
	Index  int           `json:"index"`
	Text   string        `json:"text"`
	Input  string        `json:"input"`
	Result *score.Result `json:"result,omitempty"`
}

type stateView struct {
	SessionID       string         `json:"session_id"`
	Active          bool           `json:"active"`
	SentenceCount   int            `json:"sentence_count"`
	CurrentIndex    int            `json:"current_index"`
	CurrentSentence string         `json:"current_sentence"`
	Sentences       []sentenceView `json:"sentences"`
}

func viewOf(id string, st *session.State) stateView {
	v := stateView{
		SessionID:       id,
		Active:          st.Active(),
		SentenceCount:   st.Len(),
		CurrentIndex:    st.Current(),
		CurrentSentence: st.CurrentSentence(),
		Sentences:       make([]sentenceView, 0, st.Len()),
	}
	for i := 0; i < st.Len(); i++ {
		text, _ := st.Sentence(i)
		v.Sentences = append(v.Sentences, sentenceView{
			Index:  i,
			Text:   text,
			Input:  st.Input(i),
			Result: st.Result(i),
		})
	}
	return v
}

func (h *Handle) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	h.sessions.Get(id)
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

func (h *Handle) GetSession(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(r.PathValue("id"), st))
}

type fetchReq struct {
	URL string `json:"url"`
}

func (h *Handle) Fetch(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r)
	if !ok {
		return
	}
	var req fetchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}

	ctrl := dictation.NewController(h.provider, nil, st)
	n, err := ctrl.FetchAndLoad(r.Context(), req.URL)
	if err != nil {
		kind := dictation.Kind(err)
		if kind == "" {
			kind = "fetch_failed"
		}
		h.log.Warn("fetch failed", zap.String("session_id", r.PathValue("id")), zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, kind, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"sentence_count": n})
}

type navigateReq struct {
	Direction string `json:"direction"`
}

func (h *Handle) Navigate(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r)
	if !ok {
		return
	}
	var req navigateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	switch strings.ToLower(req.Direction) {
	case "prev", "previous":
		st.Navigate(session.Previous)
	case "next":
		st.Navigate(session.Next)
	default:
		writeError(w, http.StatusBadRequest, "bad_request", `direction must be "prev" or "next"`)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(r.PathValue("id"), st))
}

type inputReq struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

func (h *Handle) Input(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r)
	if !ok {
		return
	}
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	st.RecordInput(req.Index, req.Text)
	w.WriteHeader(http.StatusNoContent)
}

type submitReq struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Engine string `json:"engine,omitempty"`
}

func (h *Handle) Submit(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r)
	if !ok {
		return
	}
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "bad json: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "empty_input", "type the sentence before submitting")
		return
	}
	if _, ok := st.Sentence(req.Index); !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "index out of range")
		return
	}
	eng, ok := h.engine(req.Engine)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "unknown engine: "+req.Engine)
		return
	}

	st.RecordInput(req.Index, req.Text)
	ctrl := dictation.NewController(h.provider, eng, st)
	ctrl.SubmitForScoring(r.Context(), req.Index, req.Text)

	writeJSON(w, http.StatusOK, map[string]any{
		"index":  req.Index,
		"result": st.Result(req.Index),
	})
}
