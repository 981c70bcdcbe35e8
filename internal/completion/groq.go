package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient calls Groq's OpenAI-compatible chat completions endpoint
type GroqClient struct {
	apiKey string
	model  string
	client *resty.Client
}

type groqChatRequest struct {
	Model    string        `json:"model"`
	Messages []groqMessage `json:"messages"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Ensure GroqClient implements Completer
var _ Completer = (*GroqClient)(nil)

// NewGroqClient creates a new Groq completion client
func NewGroqClient(apiKey, model string, timeout time.Duration) *GroqClient {
	return &GroqClient{
		apiKey: apiKey,
		model:  model,
		client: resty.New().SetTimeout(timeout).SetBaseURL(groqBaseURL),
	}
}

// Complete sends a single-message chat completion request and returns the
// generated text. Transport and API failures are returned unwrapped into the
// caller's retry loop.
func (g *GroqClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+g.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(groqChatRequest{
			Model: g.model,
			Messages: []groqMessage{
				{Role: "user", Content: prompt},
			},
		}).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("groq API returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var chatResp groqChatResponse
	if err := json.Unmarshal(resp.Body(), &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse groq response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("groq response contained no choices")
	}

	logrus.Debugf("Groq completion returned %d characters", len(chatResp.Choices[0].Message.Content))
	return chatResp.Choices[0].Message.Content, nil
}
