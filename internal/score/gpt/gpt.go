package gpt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score"
)

const chatCompletionsURL = "https://api.openai.com/v1/chat/completions"

type Engine struct {
	APIKey string
	Model  string
	httpc  *http.Client
}

func New(key, model string) *Engine {
	return &Engine{
		APIKey: key,
		Model:  model,
		httpc:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string      { return "gpt" }
func (e *Engine) GetModel() string  { return e.Model }
func (e *Engine) SetModel(m string) { e.Model = strings.TrimSpace(m) }

func (e *Engine) Evaluate(ctx context.Context, original, userText string) (score.Evaluation, error) {
	if e.APIKey == "" {
		return score.Evaluation{}, fmt.Errorf("OPENAI_API_KEY is empty")
	}

	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": score.SystemPrompt},
			map[string]any{"role": "user", "content": score.UserPrompt(original, userText)},
		},
		"temperature":     0,
		"response_format": map[string]any{"type": "json_object"},
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, chatCompletionsURL, bytes.NewReader(payload))
	if err != nil {
		return score.Evaluation{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return score.Evaluation{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return score.Evaluation{}, fmt.Errorf("openai evaluate %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return score.Evaluation{}, err
	}
	if len(raw.Choices) == 0 {
		return score.Evaluation{}, fmt.Errorf("openai evaluate: empty response")
	}
	return score.DecodeEvaluation(raw.Choices[0].Message.Content)
}
