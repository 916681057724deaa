package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// systemPrompt frames the model as a documentation maintainer; the formatted
// change report arrives as the user message.
const systemPrompt = "You are a documentation maintainer. Given a prioritized report of code " +
	"changes and the documentation sections they affect, propose concrete edits " +
	"to keep the documentation accurate. Only suggest edits justified by the " +
	"reported changes."

type openAIProvider struct {
	model   string
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAI constructs an OpenAI-compatible chat provider.
//
// It uses the REST endpoint:
//   POST {baseURL}/chat/completions
func NewOpenAI(cfg *Config) Provider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	return &openAIProvider{
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *openAIProvider) ModelID() string {
	return "openai:" + p.model
}

func (p *openAIProvider) Suggest(ctx context.Context, prompt string) (string, error) {
	if p.model == "" {
		return "", fmt.Errorf("llm model is not configured (set DRIFT_LLM_MODEL)")
	}
	if p.apiKey == "" {
		return "", fmt.Errorf("llm API key is not configured (set DRIFT_LLM_API_KEY)")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("cannot request suggestions for an empty report")
	}

	reqBody := map[string]any{
		"model": p.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("suggestion request failed: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("cannot parse suggestion response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("suggestion response missing content")
	}
	return parsed.Choices[0].Message.Content, nil
}
