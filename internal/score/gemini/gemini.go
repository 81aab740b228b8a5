package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string      { return "gemini" }
func (e *Engine) GetModel() string  { return e.Model }
func (e *Engine) SetModel(m string) { e.Model = strings.TrimSpace(m) }

// Evaluate grades one dictation attempt. The model is forced into JSON
// output mode; transient transport errors are retried a few times.
func (e *Engine) Evaluate(ctx context.Context, original, userText string) (score.Evaluation, error) {
	if e.APIKey == "" {
		return score.Evaluation{}, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return score.Evaluation{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(strings.TrimSpace(e.Model))
	if m == nil {
		return score.Evaluation{}, fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(score.SystemPrompt)},
	}

	parts := []genai.Part{genai.Text(score.UserPrompt(original, userText))}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		txt := firstText(resp)
		if txt == "" {
			return score.Evaluation{}, fmt.Errorf("gemini evaluate: empty response")
		}
		return score.DecodeEvaluation(txt)
	}
	return score.Evaluation{}, lastErr
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok && strings.TrimSpace(string(t)) != "" {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(f float32) *float32 { return &f }
