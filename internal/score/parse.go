package score

import (
	"encoding/json"
	"fmt"

	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/util"
)

// ParseError reports that the model answered, but not with valid
// evaluation JSON. Raw keeps the unparsed output for debugging.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("bad evaluation JSON: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// DecodeEvaluation parses a model reply into an Evaluation. Markdown
// code fences around the JSON are tolerated. On malformed JSON the
// returned error is a *ParseError carrying the raw reply.
func DecodeEvaluation(reply string) (Evaluation, error) {
	txt := util.StripCodeFences(reply)

	var ev Evaluation
	if err := json.Unmarshal([]byte(txt), &ev); err != nil {
		return Evaluation{}, &ParseError{Raw: reply, Err: err}
	}
	ev.Clamp()
	return ev, nil
}
