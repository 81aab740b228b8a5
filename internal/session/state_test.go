package session_test

import (
	"testing"

	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/session"
)

func loaded(t *testing.T, sentences ...string) *session.State {
	t.Helper()
	st := session.New()
	st.Load(sentences)
	return st
}

func TestState_LoadResetsEverything(t *testing.T) {
	t.Parallel()

	st := loaded(t, "One.", "Two.", "Three.")
	st.Navigate(session.Next)
	st.RecordInput(1, "two")
	st.RecordResult(1, score.Success(score.Evaluation{Score: 90}))

	st.Load([]string{"Fresh.", "Start."})

	if got := st.Current(); got != 0 {
		t.Errorf("current after reload = %d, want 0", got)
	}
	if got := st.Len(); got != 2 {
		t.Errorf("len after reload = %d, want 2", got)
	}
	for i := 0; i < st.Len(); i++ {
		if in := st.Input(i); in != "" {
			t.Errorf("inputs[%d] = %q after reload, want empty", i, in)
		}
		if res := st.Result(i); res != nil {
			t.Errorf("results[%d] = %+v after reload, want nil", i, res)
		}
	}
}

func TestState_LoadEmptyIsInactive(t *testing.T) {
	t.Parallel()

	st := loaded(t)
	if st.Active() {
		t.Error("empty session reports active")
	}
	if got := st.CurrentSentence(); got != "" {
		t.Errorf("CurrentSentence on empty session = %q, want empty", got)
	}
	// None of these may panic on an empty session.
	st.Navigate(session.Next)
	st.Navigate(session.Previous)
	st.RecordInput(0, "x")
	st.RecordResult(0, score.Success(score.Evaluation{}))
}

func TestState_NavigateClampsAtBothEnds(t *testing.T) {
	t.Parallel()

	st := loaded(t, "a.", "b.", "c.")

	st.Navigate(session.Previous)
	if got := st.Current(); got != 0 {
		t.Errorf("previous at start moved to %d, want 0", got)
	}

	for i := 0; i < st.Len()-1; i++ {
		st.Navigate(session.Next)
	}
	if got := st.Current(); got != st.Len()-1 {
		t.Fatalf("after %d nexts current = %d, want %d", st.Len()-1, got, st.Len()-1)
	}

	st.Navigate(session.Next)
	if got := st.Current(); got != st.Len()-1 {
		t.Errorf("next at end moved to %d, want %d", got, st.Len()-1)
	}
}

func TestState_InputSurvivesNavigation(t *testing.T) {
	t.Parallel()

	st := loaded(t, "a.", "b.")
	st.RecordInput(0, "  typed with spaces  ")

	st.Navigate(session.Next)
	st.Navigate(session.Previous)

	if got := st.Input(0); got != "  typed with spaces  " {
		t.Errorf("input after round trip = %q, want verbatim text", got)
	}
}

func TestState_RecordResultOverwrites(t *testing.T) {
	t.Parallel()

	st := loaded(t, "a.")
	st.RecordResult(0, score.Failed(score.KindOtherError, "boom", score.NoRawResponse))
	st.RecordResult(0, score.Success(score.Evaluation{Score: 100}))

	res := st.Result(0)
	if res == nil {
		t.Fatal("result missing after overwrite")
	}
	if !res.OK() {
		t.Errorf("result = %+v, want success only", res)
	}
	if res.Fail != nil {
		t.Errorf("failure still present after overwrite: %+v", res.Fail)
	}
}

func TestState_OutOfRangeIgnored(t *testing.T) {
	t.Parallel()

	st := loaded(t, "a.")
	st.RecordInput(5, "x")
	st.RecordResult(-1, score.Success(score.Evaluation{}))

	if got := st.Input(5); got != "" {
		t.Errorf("out-of-range input stored: %q", got)
	}
	if res := st.Result(-1); res != nil {
		t.Errorf("out-of-range result stored: %+v", res)
	}
}

func TestManager_PerKeyStates(t *testing.T) {
	t.Parallel()

	m := session.NewManager[int64]()
	a := m.Get(1)
	b := m.Get(2)
	if a == b {
		t.Fatal("distinct keys share a state")
	}
	if again := m.Get(1); again != a {
		t.Error("same key returned a different state")
	}

	if _, ok := m.Peek(3); ok {
		t.Error("Peek created a state")
	}
	m.Delete(1)
	if _, ok := m.Peek(1); ok {
		t.Error("state survived Delete")
	}
}
