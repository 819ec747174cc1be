package engine

import (
	"context"

	"github.com/subtrail/subtrail/internal/model"
)

// MailClient defines the contract for the mail-search collaborator. The
// engine never talks to the mail provider directly.
type MailClient interface {
	// FetchSenderGroups issues the bounded search-query set for the given
	// lookback window and returns emails grouped by sending address.
	FetchSenderGroups(ctx context.Context, lookbackMonths int) (map[string][]model.EmailMetadata, error)
	// FetchBody retrieves the plain-text body of one message.
	FetchBody(ctx context.Context, messageID string) (string, error)
}

// AIClient defines the contract for the external analysis collaborator.
type AIClient interface {
	ProposeCandidates(ctx context.Context, senders []model.SenderSummary) ([]model.SubscriptionCandidate, error)
}

// Storage defines the persistence contract the engine depends on.
type Storage interface {
	SubscriptionNames(ctx context.Context) ([]string, error)
}
