package engine

import (
	"context"
	"sync"

	"github.com/subtrail/subtrail/internal/model"
)

// MockMailClient is a test implementation of the MailClient interface.
type MockMailClient struct {
	Groups    map[string][]model.EmailMetadata
	Bodies    map[string]string
	FetchErr  error
	bodyCalls []string
	mu        sync.Mutex
}

// FetchSenderGroups returns the configured groups.
func (m *MockMailClient) FetchSenderGroups(_ context.Context, _ int) (map[string][]model.EmailMetadata, error) {
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	return m.Groups, nil
}

// FetchBody returns the configured body for a message ID.
func (m *MockMailClient) FetchBody(_ context.Context, messageID string) (string, error) {
	m.mu.Lock()
	m.bodyCalls = append(m.bodyCalls, messageID)
	m.mu.Unlock()
	return m.Bodies[messageID], nil
}

// BodyCalls returns the message IDs bodies were fetched for.
func (m *MockMailClient) BodyCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.bodyCalls...)
}

// MockAIClient is a test implementation of the AIClient interface.
type MockAIClient struct {
	Candidates []model.SubscriptionCandidate
	Err        error
	seen       []model.SenderSummary
	mu         sync.Mutex
}

// ProposeCandidates records the senders it saw and returns the configured
// candidates.
func (m *MockAIClient) ProposeCandidates(_ context.Context, senders []model.SenderSummary) ([]model.SubscriptionCandidate, error) {
	m.mu.Lock()
	m.seen = append(m.seen, senders...)
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Candidates, nil
}

// SeenSenders returns every sender passed to the AI.
func (m *MockAIClient) SeenSenders() []model.SenderSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.SenderSummary(nil), m.seen...)
}

// MockStorage is a test implementation of the Storage interface.
type MockStorage struct {
	Names []string
	Err   error
}

// SubscriptionNames returns the configured known-subscription names.
func (m *MockStorage) SubscriptionNames(_ context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Names, nil
}
