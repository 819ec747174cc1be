package llm

import (
	"context"

	"github.com/subtrail/subtrail/internal/model"
)

// Client defines the interface for AI analysis providers.
type Client interface {
	// ProposeCandidates asks the model to turn per-sender billing evidence
	// into subscription candidates. The returned candidates carry only the
	// model's opinion; local validation and lifecycle resolution happen in
	// the engine.
	ProposeCandidates(ctx context.Context, senders []model.SenderSummary) ([]model.SubscriptionCandidate, error)
}

// Config holds LLM client configuration.
type Config struct {
	Provider          string
	APIKey            string
	Model             string
	BaseURL           string
	Temperature       float64
	MaxTokens         int
	RequestsPerMinute int
}
