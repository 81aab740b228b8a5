package score

import (
	"context"
	"sync"
)

// Improvement is one correction item from the scorer, in source order.
type Improvement struct {
	Original   string `json:"original"`
	UserInput  string `json:"user_input"`
	Suggestion string `json:"suggestion"`
}

// Evaluation is the structured grading of one dictation attempt.
type Evaluation struct {
	Score            int           `json:"score"`
	PositiveFeedback string        `json:"positive_feedback"`
	Improvements     []Improvement `json:"points_for_improvement"`
}

// Clamp forces the score into the 0..100 range the prompt asks for.
// Model output is normalized rather than rejected.
func (ev *Evaluation) Clamp() {
	if ev.Score < 0 {
		ev.Score = 0
	}
	if ev.Score > 100 {
		ev.Score = 100
	}
}

// Failure kinds recorded for a sentence when scoring did not produce an
// evaluation.
const (
	KindParseError = "scoring_parse_error"
	KindOtherError = "scoring_other_error"
)

// NoRawResponse is stored when a failure has no model output to show.
const NoRawResponse = "no raw response available for this failure"

type Failure struct {
	Kind        string `json:"error"`
	Details     string `json:"details"`
	RawResponse string `json:"raw_response"`
}

// Result is a tagged union: exactly one of Eval or Fail is set.
type Result struct {
	Eval *Evaluation `json:"evaluation,omitempty"`
	Fail *Failure    `json:"failure,omitempty"`
}

func Success(ev Evaluation) Result { return Result{Eval: &ev} }

func Failed(kind, details, raw string) Result {
	return Result{Fail: &Failure{Kind: kind, Details: details, RawResponse: raw}}
}

func (r Result) OK() bool { return r.Eval != nil }

// Engine grades a dictation attempt against the original sentence.
type Engine interface {
	Name() string
	GetModel() string
	Evaluate(ctx context.Context, original, userText string) (Evaluation, error)
}

// Manager holds the default engine plus per-chat overrides.
type Manager struct {
	def Engine
	m   sync.Map // chatID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(chatID int64) Engine {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.m.Store(chatID, e)
}

func (m *Manager) Default() Engine { return m.def }
