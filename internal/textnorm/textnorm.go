// Package textnorm turns a raw caption transcript into the ordered list
// of sentences used as dictation units.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	// Non-greedy, single level only. A '[' with no ']' after it on the
	// same line is left untouched.
	bracketRe = regexp.MustCompile(`\[.*?\]`)

	sentenceEndRe = regexp.MustCompile(`[.?!]\s+`)
)

// Clean strips bracketed noise markers like [Music], replaces newlines
// with spaces and collapses whitespace runs. Total over all inputs and
// idempotent.
func Clean(raw string) string {
	s := bracketRe.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.Join(strings.Fields(s), " ")
}

// SplitSentences splits after each '.', '?' or '!' that is followed by
// whitespace. The punctuation stays with the preceding sentence, the
// separating whitespace is consumed. Segments are trimmed and empty
// ones dropped; text without terminal punctuation comes back as a
// single sentence.
func SplitSentences(clean string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(clean, -1) {
		if seg := strings.TrimSpace(clean[start : loc[0]+1]); seg != "" {
			out = append(out, seg)
		}
		start = loc[1]
	}
	if seg := strings.TrimSpace(clean[start:]); seg != "" {
		out = append(out, seg)
	}
	return out
}
