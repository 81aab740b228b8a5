package telegram

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/dictation"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/session"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/util"
)

// makeNavKeyboard builds the Prev/Next row. The boundary side is
// omitted entirely; the state clamps anyway if a stale button fires.
func makeNavKeyboard(st *session.State) (tgbotapi.InlineKeyboardMarkup, bool) {
	var row []tgbotapi.InlineKeyboardButton
	if st.Current() > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Previous", "nav_prev"))
	}
	if st.Current() < st.Len()-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ➡️", "nav_next"))
	}
	if len(row) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...)), true
}

func makeNextKeyboard() tgbotapi.InlineKeyboardMarkup {
	btn := tgbotapi.NewInlineKeyboardButtonData("Next sentence ➡️", "nav_next")
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(btn))
}

func formatSentence(st *session.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sentence %d/%d:\n\n%s", st.Current()+1, st.Len(), st.CurrentSentence())
	if in := strings.TrimSpace(st.Input(st.Current())); in != "" {
		b.WriteString("\n\nYour last attempt:\n")
		b.WriteString(in)
	}
	return b.String()
}

func formatResult(res score.Result) string {
	if res.Fail != nil {
		return formatFailure(*res.Fail)
	}

	ev := res.Eval
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 Score: %d/100\n\n", ev.Score)
	if fb := strings.TrimSpace(ev.PositiveFeedback); fb != "" {
		b.WriteString("👍 " + fb + "\n")
	}
	if len(ev.Improvements) > 0 {
		b.WriteString("\nPoints for improvement:\n")
		for i, imp := range ev.Improvements {
			fmt.Fprintf(&b, "%d. Original: %s\n   You wrote: %s\n   %s\n", i+1, imp.Original, imp.UserInput, imp.Suggestion)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatFailure(f score.Failure) string {
	switch f.Kind {
	case score.KindParseError:
		return "⚠️ The scorer replied with something I couldn't parse. Try submitting again.\n\nRaw reply:\n" +
			util.Truncate(f.RawResponse, 1500)
	default:
		return "⚠️ Scoring failed: " + f.Details + "\nYour attempt is saved. Try submitting again."
	}
}

func fetchErrorText(err error) string {
	switch {
	case errors.Is(err, dictation.ErrInvalidURL):
		return "That doesn't look like a YouTube link I can read. Send a www.youtube.com/watch?v=… or youtu.be/… URL."
	case errors.Is(err, dictation.ErrTranscriptUnavailable):
		return "I couldn't find English captions for that video. Try one with an English caption track."
	default:
		return "Something went wrong while fetching the transcript. Please try again."
	}
}

func plural(n int, singular, pluralFmt string) string {
	if n == 1 {
		return fmt.Sprintf(singular, n)
	}
	return fmt.Sprintf(pluralFmt, n)
}
