package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bz888/gemchat/internal/logger"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 4 << 10

// GenerateContent posts req to the generateContent endpoint. Transport
// failures, non-2xx statuses and undecodable bodies are all errors.
func (c *Client) GenerateContent(ctx context.Context, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	localLogger := logger.NewLogger("gemini client")

	bts, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GetGenerateURL(), bytes.NewReader(bts))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	localLogger.Info("POST generateContent model=", c.model)
	response, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			localLogger.Error("Failed to close response body: ", err)
		}
	}()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: response.StatusCode,
			Status:     response.Status,
			Body:       string(bytes.TrimSpace(body)),
		}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp GenerateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

// Generate sends prompt as a single-turn request and returns the first
// candidate's text. A response without that text yields "" and a nil error.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.GenerateContent(ctx, NewTextRequest(prompt))
	if err != nil {
		return "", err
	}

	localLogger := logger.NewLogger("gemini client")
	if usage := resp.UsageMetadata; usage != nil {
		localLogger.Info("Token usage: prompt=", usage.PromptTokenCount,
			" candidates=", usage.CandidatesTokenCount, " total=", usage.TotalTokenCount)
	}

	text, ok := resp.Text()
	if !ok {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			localLogger.Warn("Prompt blocked: ", resp.PromptFeedback.BlockReason)
		} else {
			localLogger.Warn("Response carried no candidate text")
		}
		return "", nil
	}
	return text, nil
}
