package tier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/sentinel/internal/config"
	"github.com/example/sentinel/internal/models"
	"github.com/example/sentinel/internal/ports/secondary"
)

// probeTimeout is the fixed liveness-check deadline for the local tier.
const probeTimeout = 5 * time.Second

// LocalClient is the tier-1 adapter for an Ollama-compatible endpoint.
// Local inference is free; repairs report zero cost.
type LocalClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	logger     *zap.Logger
}

// NewLocalClient creates the tier-1 client from configuration.
func NewLocalClient(cfg config.LocalTierConfig, logger *zap.Logger) *LocalClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		model:      cfg.Model,
		logger:     logger,
	}
}

// Tier returns the escalation level this client serves.
func (c *LocalClient) Tier() int { return models.TierLocal }

// Available reports local tier liveness. It never returns an error:
// network failure, DNS failure, and timeout all read as unavailable.
// Results are never cached; the endpoint may come and go between runs.
func (c *LocalClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := (&http.Client{Timeout: probeTimeout}).Do(req)
	if err != nil {
		c.logger.Debug("local tier probe failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Ollama generate API shapes.
type generateRequest struct {
	Model   string         `json:"model"`
	System  string         `json:"system,omitempty"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Repair asks the local model for a fix to a failing check.
func (c *LocalClient) Repair(ctx context.Context, req secondary.RepairRequest) (*secondary.RepairResult, error) {
	payload := generateRequest{
		Model:  c.model,
		System: repairSystemPrompt,
		Prompt: repairPrompt(req),
		Stream: false,
		Options: map[string]any{
			"temperature": 0.2,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("local tier call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("local tier returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var gen generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return nil, fmt.Errorf("failed to decode generate response: %w", err)
	}

	c.logger.Debug("local tier repair produced",
		zap.String("task_id", req.Task.ID),
		zap.Int("response_bytes", len(gen.Response)),
	)

	return &secondary.RepairResult{Patch: extractPatch(gen.Response)}, nil
}

// Ensure LocalClient implements both interfaces
var (
	_ secondary.TierClient        = (*LocalClient)(nil)
	_ secondary.AvailabilityProbe = (*LocalClient)(nil)
)
