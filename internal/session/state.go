// Package session holds the mutable state of one dictation drill: the
// sentence list, the learner's position, and per-sentence inputs and
// scoring results.
package session

import (
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score"
)

type Direction int

const (
	Previous Direction = iota
	Next
)

// State is the single aggregate for one learner session. It is owned
// by exactly one controller at a time and is not safe for concurrent
// mutation.
type State struct {
	sentences []string
	current   int
	inputs    []string
	results   []*score.Result // nil entry = not yet scored
}

func New() *State { return &State{} }

// Load replaces the sentence set in full. Position, inputs and results
// are reset; nothing carries over from a previous video.
func (s *State) Load(sentences []string) {
	s.sentences = make([]string, len(sentences))
	copy(s.sentences, sentences)
	s.current = 0
	s.inputs = make([]string, len(sentences))
	s.results = make([]*score.Result, len(sentences))
}

// Navigate moves the position one step, clamped at both ends.
func (s *State) Navigate(dir Direction) {
	switch dir {
	case Previous:
		if s.current > 0 {
			s.current--
		}
	case Next:
		if s.current < len(s.sentences)-1 {
			s.current++
		}
	}
}

// RecordInput stores the learner's typing verbatim, surrounding
// whitespace included. Out-of-range indexes are ignored.
func (s *State) RecordInput(index int, text string) {
	if index < 0 || index >= len(s.inputs) {
		return
	}
	s.inputs[index] = text
}

// RecordResult overwrites any previous result for the index.
func (s *State) RecordResult(index int, res score.Result) {
	if index < 0 || index >= len(s.results) {
		return
	}
	s.results[index] = &res
}

func (s *State) Active() bool { return len(s.sentences) > 0 }
func (s *State) Len() int     { return len(s.sentences) }
func (s *State) Current() int { return s.current }

func (s *State) CurrentSentence() string {
	if !s.Active() {
		return ""
	}
	return s.sentences[s.current]
}

func (s *State) Sentence(index int) (string, bool) {
	if index < 0 || index >= len(s.sentences) {
		return "", false
	}
	return s.sentences[index], true
}

func (s *State) Input(index int) string {
	if index < 0 || index >= len(s.inputs) {
		return ""
	}
	return s.inputs[index]
}

// Result returns the stored scoring result for the index, or nil when
// the sentence has not been submitted yet.
func (s *State) Result(index int) *score.Result {
	if index < 0 || index >= len(s.results) {
		return nil
	}
	return s.results[index]
}
