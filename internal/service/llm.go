package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/pageza/fitbuddy/backend/internal/errors"
)

const (
	defaultLLMBaseURL = "https://api.openai.com/v1"
	defaultLLMModel   = "gpt-4"
)

// LLMConfig describes how to reach the chat completions API
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMService handles interactions with the chat completions API
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	log    logrus.FieldLogger
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg LLMConfig, log logrus.FieldLogger) (*LLMService, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("LLM API key must be set")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultLLMBaseURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultLLMModel
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: baseURL + "/chat/completions",
		model:  model,
		client: newHTTPClient(cfg.Timeout),
		log:    orStandardLogger(log),
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the chat completions API
type Request struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

// Complete sends messages to the model and returns the text of the first choice
func (s *LLMService) Complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	reqBody := Request{
		Model:     s.model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return "", transportError(err, "failed to send request to LLM")
	}
	defer resp.Body.Close()

	log := s.log.WithFields(logrus.Fields{
		"upstream": "llm",
		"model":    s.model,
		"status":   resp.StatusCode,
		"latency":  time.Since(start).String(),
	})

	if resp.StatusCode >= http.StatusBadRequest {
		body := readErrorBody(resp.Body)
		log.WithField("body", body).Warn("LLM request failed")
		return "", apperrors.New(apperrors.CodeUpstreamFailure,
			fmt.Sprintf("LLM request failed with status %d: %s", resp.StatusCode, body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", apperrors.Wrap(apperrors.CodeUpstreamMalformed, err, "failed to decode LLM response")
	}

	if len(result.Choices) == 0 {
		return "", apperrors.New(apperrors.CodeUpstreamMalformed, "no choices in LLM response")
	}

	log.Debug("LLM request completed")
	return result.Choices[0].Message.Content, nil
}
