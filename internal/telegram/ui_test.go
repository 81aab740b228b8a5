package telegram

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/dictation"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/session"
)

func threeSentences(t *testing.T) *session.State {
	t.Helper()
	st := session.New()
	st.Load([]string{"First one.", "Second one.", "Third one."})
	return st
}

func TestMakeNavKeyboard(t *testing.T) {
	t.Parallel()

	st := threeSentences(t)

	kb, ok := makeNavKeyboard(st)
	if !ok {
		t.Fatal("no keyboard at the first sentence")
	}
	if got := len(kb.InlineKeyboard[0]); got != 1 {
		t.Errorf("first sentence: %d buttons, want Next only", got)
	}
	if kb.InlineKeyboard[0][0].CallbackData == nil || *kb.InlineKeyboard[0][0].CallbackData != "nav_next" {
		t.Error("first sentence keyboard is not the Next button")
	}

	st.Navigate(session.Next)
	kb, ok = makeNavKeyboard(st)
	if !ok || len(kb.InlineKeyboard[0]) != 2 {
		t.Errorf("middle sentence: want both buttons, got %+v ok=%v", kb.InlineKeyboard, ok)
	}

	st.Navigate(session.Next)
	kb, ok = makeNavKeyboard(st)
	if !ok || len(kb.InlineKeyboard[0]) != 1 {
		t.Fatalf("last sentence: want Previous only, got %+v ok=%v", kb.InlineKeyboard, ok)
	}
	if *kb.InlineKeyboard[0][0].CallbackData != "nav_prev" {
		t.Error("last sentence keyboard is not the Previous button")
	}
}

func TestMakeNavKeyboard_SingleSentence(t *testing.T) {
	t.Parallel()

	st := session.New()
	st.Load([]string{"Only one."})
	if _, ok := makeNavKeyboard(st); ok {
		t.Error("single-sentence session produced a nav keyboard")
	}
}

func TestFormatSentence(t *testing.T) {
	t.Parallel()

	st := threeSentences(t)
	st.Navigate(session.Next)

	got := formatSentence(st)
	if !strings.HasPrefix(got, "Sentence 2/3:") {
		t.Errorf("missing position header: %q", got)
	}
	if !strings.Contains(got, "Second one.") {
		t.Errorf("missing sentence text: %q", got)
	}
	if strings.Contains(got, "last attempt") {
		t.Errorf("attempt section shown with no input: %q", got)
	}

	st.RecordInput(1, "secnd one")
	got = formatSentence(st)
	if !strings.Contains(got, "Your last attempt:\nsecnd one") {
		t.Errorf("missing recorded attempt: %q", got)
	}
}

func TestFormatResult_Success(t *testing.T) {
	t.Parallel()

	res := score.Success(score.Evaluation{
		Score:            85,
		PositiveFeedback: "Great rhythm.",
		Improvements: []score.Improvement{
			{Original: "Hello world.", UserInput: "Helo world.", Suggestion: "Hello has two l's."},
		},
	})

	got := formatResult(res)
	for _, want := range []string{"85/100", "Great rhythm.", "Hello world.", "Helo world.", "two l's"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatResult missing %q in:\n%s", want, got)
		}
	}
}

func TestFormatResult_ParseFailureShowsTruncatedRaw(t *testing.T) {
	t.Parallel()

	raw := strings.Repeat("x", 2000)
	res := score.Failed(score.KindParseError, "invalid character", raw)

	got := formatResult(res)
	if !strings.Contains(got, "couldn't parse") {
		t.Errorf("missing parse failure text: %q", got)
	}
	if strings.Contains(got, raw) {
		t.Error("raw reply not truncated")
	}
	if !strings.Contains(got, strings.Repeat("x", 1500)) {
		t.Error("truncated raw reply missing")
	}
}

func TestFormatResult_OtherFailure(t *testing.T) {
	t.Parallel()

	res := score.Failed(score.KindOtherError, "connection refused", score.NoRawResponse)
	got := formatResult(res)
	if !strings.Contains(got, "connection refused") {
		t.Errorf("missing failure details: %q", got)
	}
}

func TestFetchErrorText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: %q", dictation.ErrInvalidURL, "x"), "YouTube link"},
		{fmt.Errorf("%w: no track", dictation.ErrTranscriptUnavailable), "English captions"},
		{errors.New("timeout"), "went wrong"},
	}
	for _, tt := range tests {
		if got := fetchErrorText(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("fetchErrorText(%v) = %q, want substring %q", tt.err, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	t.Parallel()

	if got := plural(1, "%d sentence", "%d sentences"); got != "1 sentence" {
		t.Errorf("plural(1) = %q", got)
	}
	if got := plural(5, "%d sentence", "%d sentences"); got != "5 sentences" {
		t.Errorf("plural(5) = %q", got)
	}
}
