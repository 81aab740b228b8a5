// Package dictation orchestrates one learner session: transcript fetch
// and normalization on one side, dictation scoring on the other.
package dictation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/session"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/textnorm"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/youtube"
)

// TranscriptProvider yields the full English transcript for a video ID.
type TranscriptProvider interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// Scorer grades one dictation attempt. score.Engine satisfies it.
type Scorer interface {
	Evaluate(ctx context.Context, original, userText string) (score.Evaluation, error)
}

// Controller drives a single session's state machine. It is cheap to
// construct, so hosts build one per interaction around the session
// state they own.
type Controller struct {
	provider TranscriptProvider
	scorer   Scorer
	state    *session.State
}

func NewController(provider TranscriptProvider, scorer Scorer, state *session.State) *Controller {
	return &Controller{provider: provider, scorer: scorer, state: state}
}

func (c *Controller) State() *session.State { return c.state }

// FetchAndLoad resolves the URL, fetches and normalizes the transcript
// and replaces the session's sentence set. On any failure the session
// state is left untouched. Returns the number of sentences loaded.
func (c *Controller) FetchAndLoad(ctx context.Context, rawURL string) (int, error) {
	videoID, ok := youtube.ExtractVideoID(rawURL)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	raw, err := c.provider.Fetch(ctx, videoID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTranscriptUnavailable, err)
	}

	sentences := textnorm.SplitSentences(textnorm.Clean(raw))
	c.state.Load(sentences)
	return len(sentences), nil
}

// SubmitForScoring grades the given sentence against the learner's
// text and records the outcome. Empty input is rejected before any
// remote call. Scorer failures are recorded as a failure result for
// the one index and never propagate.
func (c *Controller) SubmitForScoring(ctx context.Context, index int, userText string) {
	if strings.TrimSpace(userText) == "" {
		return
	}
	sentence, ok := c.state.Sentence(index)
	if !ok {
		return
	}

	ev, err := c.scorer.Evaluate(ctx, sentence, userText)
	if err != nil {
		var pe *score.ParseError
		if errors.As(err, &pe) {
			c.state.RecordResult(index, score.Failed(score.KindParseError, err.Error(), pe.Raw))
		} else {
			c.state.RecordResult(index, score.Failed(score.KindOtherError, err.Error(), score.NoRawResponse))
		}
		return
	}
	c.state.RecordResult(index, score.Success(ev))
}
