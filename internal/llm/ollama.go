// Package llm provides an Ollama-backed implementation of the summarizer's
// invoke collaborator. The core never imports this package; it is wired in
// by the CLI.
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

	"github.com/google/uuid"

	"codemap/internal/errors"
	"codemap/internal/logging"
	"codemap/internal/model"
)

// Client calls a local Ollama server for directory summaries.
type Client struct {
	Endpoint string
	Model    string
	client   *http.Client
	logger   *logging.Logger
}

// NewClient builds a new Ollama client.
func NewClient(endpoint, modelName string, logger *logging.Logger) *Client {
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Client{
		Endpoint: endpoint,
		Model:    modelName,
		client: &http.Client{
			Timeout: 3 * time.Minute,
		},
		logger: logger,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

// Invoke implements summary.InvokeFunc: one prompt, one summary plus token
// usage. Failures are returned as-is; retry policy belongs to the caller.
func (c *Client) Invoke(ctx context.Context, prompt string) (string, model.TokenUsage, error) {
	requestID := uuid.NewString()
	c.logger.Debug("llm request", map[string]interface{}{
		"requestId": requestID,
		"model":     c.Model,
		"promptLen": len(prompt),
	})

	body, err := json.Marshal(generateRequest{
		Model:  c.Model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", model.TokenUsage{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", model.TokenUsage{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", model.TokenUsage{}, errors.NewMapError(errors.InvocationFailed,
			"AI invocation request failed", err, errors.GetSuggestedFixes(errors.InvocationFailed))
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort cleanup

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", model.TokenUsage{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return "", model.TokenUsage{}, errors.NewMapError(errors.InvocationFailed,
			fmt.Sprintf("AI invocation returned status %d", resp.StatusCode), nil,
			errors.GetSuggestedFixes(errors.InvocationFailed)).WithDetails(string(data))
	}

	var gen generateResponse
	if err := json.Unmarshal(data, &gen); err != nil {
		return "", model.TokenUsage{}, errors.NewMapError(errors.InvocationFailed,
			"AI invocation returned malformed JSON", err, nil)
	}

	usage := model.TokenUsage{
		InputTokens:  gen.PromptEvalCount,
		OutputTokens: gen.EvalCount,
		TotalTokens:  gen.PromptEvalCount + gen.EvalCount,
	}

	c.logger.Debug("llm response", map[string]interface{}{
		"requestId": requestID,
		"tokens":    usage.TotalTokens,
	})

	return strings.TrimSpace(gen.Response), usage, nil
}
