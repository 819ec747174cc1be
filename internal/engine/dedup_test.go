package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrail/subtrail/internal/model"
)

func candidate(name string, cost float64, status model.SubscriptionStatus) model.SubscriptionCandidate {
	return model.SubscriptionCandidate{
		Name:               name,
		Cost:               decimal.NewFromFloat(cost),
		SubscriptionStatus: status,
		Confidence:         0.8,
	}
}

func TestDeduplicateCandidates(t *testing.T) {
	t.Run("merges matching names", func(t *testing.T) {
		got := DeduplicateCandidates([]model.SubscriptionCandidate{
			candidate("OpenAI, Inc.", 20, model.StatusActive),
			candidate("openai", 0, model.StatusActive),
		}, nil)

		require.Len(t, got, 1)
		assert.Equal(t, "20", got[0].Cost.String())
	})

	t.Run("active known subscription filtered out", func(t *testing.T) {
		got := DeduplicateCandidates([]model.SubscriptionCandidate{
			candidate("Netflix", 15.49, model.StatusActive),
			candidate("Figma", 12, model.StatusActive),
		}, []string{"Netflix"})

		require.Len(t, got, 1)
		assert.Equal(t, "Figma", got[0].Name)
	})

	t.Run("canceled known subscription always retained", func(t *testing.T) {
		got := DeduplicateCandidates([]model.SubscriptionCandidate{
			candidate("Netflix", 15.49, model.StatusCanceled),
		}, []string{"Netflix"})

		require.Len(t, got, 1)
		assert.Equal(t, model.StatusCanceled, got[0].SubscriptionStatus)
	})

	t.Run("merge prefers higher lifecycle confidence", func(t *testing.T) {
		weak := candidate("Spotify", 0, model.StatusActive)
		weak.Confidence = 0.5

		strong := candidate("Spotify Premium", 10.99, model.StatusCanceled)
		resolved := 0.9
		strong.LifecycleConfidence = &resolved

		got := DeduplicateCandidates([]model.SubscriptionCandidate{weak, strong}, nil)

		require.Len(t, got, 1)
		assert.Equal(t, model.StatusCanceled, got[0].SubscriptionStatus)
		assert.Equal(t, "Spotify Premium", got[0].Name)
	})

	t.Run("merge sums source email counts", func(t *testing.T) {
		a := candidate("Notion", 8, model.StatusActive)
		a.SourceEmailCount = 3
		b := candidate("Notion", 8, model.StatusActive)
		b.SourceEmailCount = 2

		got := DeduplicateCandidates([]model.SubscriptionCandidate{a, b}, nil)

		require.Len(t, got, 1)
		assert.Equal(t, 5, got[0].SourceEmailCount)
	})
}

func TestFilterActionable(t *testing.T) {
	got := FilterActionable([]model.SubscriptionCandidate{
		candidate("paid and active", 9.99, model.StatusActive),
		candidate("zero-cost canceled", 0, model.StatusCanceled),
		candidate("zero-cost active", 0, model.StatusActive),
	})

	require.Len(t, got, 2)
	assert.Equal(t, "paid and active", got[0].Name)
	assert.Equal(t, "zero-cost canceled", got[1].Name)
}
