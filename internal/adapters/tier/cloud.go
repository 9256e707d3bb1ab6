package tier

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/example/sentinel/internal/config"
	"github.com/example/sentinel/internal/models"
	"github.com/example/sentinel/internal/ports/secondary"
)

// CloudClient is the tier-2 adapter for the OpenAI-compatible cloud
// endpoint. Every repair reports its monetary cost, derived from token
// usage, so the executor can enforce the per-run budget.
type CloudClient struct {
	client              *openai.Client
	model               string
	promptCostPer1K     float64
	completionCostPer1K float64
	logger              *zap.Logger
}

// NewCloudClient creates the tier-2 client from configuration. The API
// key comes from OPENAI_API_KEY; it is a credential, not configuration.
func NewCloudClient(cfg config.CloudTierConfig, logger *zap.Logger) (*CloudClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CloudClient{
		client:              openai.NewClient(apiKey),
		model:               cfg.Model,
		promptCostPer1K:     cfg.PromptCostPer1K,
		completionCostPer1K: cfg.CompletionCostPer1K,
		logger:              logger,
	}, nil
}

// Tier returns the escalation level this client serves.
func (c *CloudClient) Tier() int { return models.TierCloud }

// Repair asks the cloud model for a fix to a failing check.
func (c *CloudClient) Repair(ctx context.Context, req secondary.RepairRequest) (*secondary.RepairResult, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: repairSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: repairPrompt(req)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("cloud tier call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("cloud tier returned no choices")
	}

	cost := float64(resp.Usage.PromptTokens)/1000*c.promptCostPer1K +
		float64(resp.Usage.CompletionTokens)/1000*c.completionCostPer1K

	c.logger.Debug("cloud tier repair produced",
		zap.String("task_id", req.Task.ID),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Float64("cost_usd", cost),
	)

	return &secondary.RepairResult{
		Patch:   extractPatch(resp.Choices[0].Message.Content),
		CostUSD: cost,
	}, nil
}

// Ensure CloudClient implements the interface
var _ secondary.TierClient = (*CloudClient)(nil)
