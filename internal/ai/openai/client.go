package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/thomas-vilte/codescore/internal/ai"
	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/httpclient"
	"github.com/thomas-vilte/codescore/internal/logger"
	"github.com/thomas-vilte/codescore/internal/models"
)

var _ ai.CompletionClient = (*Client)(nil)

const providerName = "openai"

// maxErrorBody bounds how much of a failed response is kept for diagnostics.
const maxErrorBody = 64 * 1024

// Client talks to any OpenAI-compatible chat completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient httpclient.HTTPClient
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	TopP        float32       `json:"top_p"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient builds a client for baseURL (e.g. https://api.openai.com/v1).
// httpClient may be nil, in which case http.DefaultClient is used.
func NewClient(baseURL, apiKey, model string, httpClient httpclient.HTTPClient) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

func (c *Client) ModelName() string {
	return c.model
}

func (c *Client) ProviderName() string {
	return providerName
}

func (c *Client) Complete(ctx context.Context, prompt models.PromptPair) (models.Completion, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature: ai.Temperature,
		TopP:        ai.TopP,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.Completion{}, domainErrors.NewAppError(domainErrors.TypeInternal, "could not encode completion request", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return models.Completion{}, domainErrors.ErrAITransport.WithError(err).WithContext("url", endpoint)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debug("calling chat completions",
		"model", c.model,
		"url", endpoint,
		"system_length", len(prompt.System),
		"user_length", len(prompt.User))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("completion request failed", "error", err, "model", c.model)
		return models.Completion{}, domainErrors.ErrAITransport.WithError(err).WithContext("url", endpoint)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Completion{}, domainErrors.ErrAITransport.WithError(err).WithContext("url", endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Completion{}, statusError(resp.StatusCode, respBody)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return models.Completion{}, domainErrors.ErrAIMalformedResponse.
			WithError(err).
			WithContext("status_code", resp.StatusCode).
			WithContext("response", truncateBody(respBody))
	}

	if len(parsed.Choices) == 0 {
		return models.Completion{}, domainErrors.ErrAIMalformedResponse.
			WithError(fmt.Errorf("response contains no choices")).
			WithContext("status_code", resp.StatusCode).
			WithContext("response", truncateBody(respBody))
	}

	completion := models.Completion{
		Text:  parsed.Choices[0].Message.Content,
		Model: c.model,
	}
	if parsed.Model != "" {
		completion.Model = parsed.Model
	}
	if parsed.Usage != nil {
		completion.Usage = &models.TokenUsage{
			InputTokens:  parsed.Usage.PromptTokens,
			OutputTokens: parsed.Usage.CompletionTokens,
			TotalTokens:  parsed.Usage.TotalTokens,
			Model:        completion.Model,
			DurationMs:   time.Since(start).Milliseconds(),
		}
	}

	log.Info("completion received",
		"model", completion.Model,
		"completion_length", len(completion.Text),
		"duration_ms", time.Since(start).Milliseconds())

	return completion, nil
}

func statusError(status int, body []byte) error {
	var apiErr errorResponse
	message := http.StatusText(status)
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		message = apiErr.Error.Message
	}

	base := domainErrors.ErrAIMalformedResponse
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		base = domainErrors.ErrAIAuth
	}

	return base.
		WithError(fmt.Errorf("HTTP %d: %s", status, message)).
		WithContext("status_code", status).
		WithContext("response", truncateBody(body))
}

func truncateBody(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
