package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thomas-vilte/codescore/internal/ai"
	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/logger"
	"github.com/thomas-vilte/codescore/internal/models"
	"google.golang.org/genai"
)

var _ ai.CompletionClient = (*Client)(nil)

const providerName = "gemini"

// generateFunc matches genai's Models.GenerateContent so tests can swap it out.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

type Client struct {
	model      string
	generateFn generateFunc
}

// NewClient creates a Gemini client. baseURL overrides the default Gemini API
// root when non-empty.
func NewClient(ctx context.Context, apiKey, model, baseURL string) (*Client, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, classifyError(err)
	}

	return &Client{
		model:      model,
		generateFn: client.Models.GenerateContent,
	}, nil
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

	log.Debug("calling gemini API",
		"model", c.model,
		"system_length", len(prompt.System),
		"user_length", len(prompt.User))

	resp, err := c.generateFn(ctx, c.model, genai.Text(prompt.User), generateConfig(prompt.System))
	if err != nil {
		log.Error("gemini API call failed",
			"error", err,
			"model", c.model)
		return models.Completion{}, classifyError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		reason := "response contains no candidates"
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			reason = fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return models.Completion{}, domainErrors.ErrAIMalformedResponse.
			WithError(fmt.Errorf("%s", reason))
	}

	completion := models.Completion{
		Text:  responseText(resp),
		Model: c.model,
	}
	if usage := extractUsage(resp); usage != nil {
		usage.Model = c.model
		usage.DurationMs = time.Since(start).Milliseconds()
		completion.Usage = usage
	}

	log.Info("completion received via gemini",
		"model", c.model,
		"completion_length", len(completion.Text),
		"duration_ms", time.Since(start).Milliseconds())

	return completion, nil
}

func generateConfig(system string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: float32Ptr(ai.Temperature),
		TopP:        float32Ptr(ai.TopP),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	return cfg
}

// responseText concatenates the text parts of the first candidate, skipping
// thought summaries.
func responseText(resp *genai.GenerateContentResponse) string {
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func extractUsage(resp *genai.GenerateContentResponse) *models.TokenUsage {
	if resp == nil || resp.UsageMetadata == nil {
		return nil
	}
	return &models.TokenUsage{
		InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
		OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
	}
}

// classifyError maps SDK errors onto the AI error kinds. The SDK only exposes
// the HTTP status through the message text.
func classifyError(err error) error {
	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "api key") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "unauthenticated") ||
		strings.Contains(msg, "permission_denied") ||
		strings.Contains(msg, "error 401") ||
		strings.Contains(msg, "error 403") {
		return domainErrors.ErrAIAuth.WithError(err)
	}

	if strings.Contains(msg, "error 4") ||
		strings.Contains(msg, "error 5") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "resource_exhausted") {
		return domainErrors.ErrAIMalformedResponse.WithError(err).WithContext("response", err.Error())
	}

	return domainErrors.ErrAITransport.WithError(err)
}

func float32Ptr(f float32) *float32 {
	return &f
}
