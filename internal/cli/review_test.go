package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrail/subtrail/internal/model"
)

func testCandidates() []model.SubscriptionCandidate {
	return []model.SubscriptionCandidate{
		{
			Name:               "Netflix",
			Cost:               decimal.RequireFromString("15.99"),
			BillingCycle:       "monthly",
			SubscriptionStatus: model.StatusActive,
			Confidence:         0.9,
			SourceEmailCount:   6,
		},
		{
			Name:               "Dropbox",
			Cost:               decimal.RequireFromString("11.99"),
			BillingCycle:       "monthly",
			SubscriptionStatus: model.StatusActive,
			Confidence:         0.8,
			SourceEmailCount:   3,
		},
	}
}

func TestReviewAcceptAndSkip(t *testing.T) {
	input := strings.NewReader("a\ns\n")
	var output bytes.Buffer

	reviewer := NewReviewer(input, &output)
	decisions, err := reviewer.ReviewCandidates(context.Background(), testCandidates())
	require.NoError(t, err)

	require.Len(t, decisions, 2)
	assert.True(t, decisions[0].Accepted)
	assert.Equal(t, "Netflix", decisions[0].Candidate.Name)
	assert.False(t, decisions[1].Accepted)
}

func TestReviewEditCost(t *testing.T) {
	input := strings.NewReader("e\n$19.99\ns\n")
	var output bytes.Buffer

	reviewer := NewReviewer(input, &output)
	decisions, err := reviewer.ReviewCandidates(context.Background(), testCandidates())
	require.NoError(t, err)

	require.Len(t, decisions, 2)
	assert.True(t, decisions[0].Accepted)
	assert.True(t, decisions[0].Candidate.Cost.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, model.CostExtracted, decisions[0].Candidate.CostSource)
	assert.False(t, decisions[0].Candidate.IsEstimated)
}

func TestReviewQuitSkipsRemaining(t *testing.T) {
	input := strings.NewReader("q\n")
	var output bytes.Buffer

	reviewer := NewReviewer(input, &output)
	decisions, err := reviewer.ReviewCandidates(context.Background(), testCandidates())
	require.NoError(t, err)

	require.Len(t, decisions, 2)
	assert.False(t, decisions[0].Accepted)
	assert.False(t, decisions[1].Accepted)
}

func TestReviewRejectsInvalidChoice(t *testing.T) {
	input := strings.NewReader("x\na\nq\n")
	var output bytes.Buffer

	reviewer := NewReviewer(input, &output)
	decisions, err := reviewer.ReviewCandidates(context.Background(), testCandidates())
	require.NoError(t, err)

	require.Len(t, decisions, 2)
	assert.True(t, decisions[0].Accepted)
	assert.Contains(t, output.String(), "Please enter one of")
}

func TestReviewCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reviewer := NewReviewer(strings.NewReader("a\n"), &bytes.Buffer{})
	_, err := reviewer.ReviewCandidates(ctx, testCandidates())
	assert.Error(t, err)
}

func TestFormatCandidateShowsEstimatedAndCanceled(t *testing.T) {
	reviewer := NewReviewer(strings.NewReader(""), &bytes.Buffer{})

	c := testCandidates()[0]
	c.MarkEstimated()
	c.SubscriptionStatus = model.StatusCanceled

	out := reviewer.formatCandidate(c)
	assert.Contains(t, out, "estimated")
	assert.Contains(t, out, "canceled")
}
