package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrail/subtrail/internal/model"
)

func sender(name string, emailCount int, latest time.Time) model.SenderSummary {
	return model.SenderSummary{
		SenderName:    name,
		SenderDomain:  name + ".com",
		EmailCount:    emailCount,
		LatestDate:    latest,
		LatestSubject: "hello",
	}
}

func TestSenderLifecycleScore(t *testing.T) {
	t.Run("latest email signal", func(t *testing.T) {
		s := model.SenderSummary{
			LatestSubject: "Your subscription has been canceled",
		}
		assert.GreaterOrEqual(t, SenderLifecycleScore(&s), 0.9)
	})

	t.Run("timeline body-only signal beats quiet latest email", func(t *testing.T) {
		s := model.SenderSummary{
			LatestSubject: "Your March newsletter",
			RecentEmails: []model.EmailSummary{
				{Subject: "An update", BodyExcerpt: "your membership canceled effective today"},
			},
		}
		assert.GreaterOrEqual(t, SenderLifecycleScore(&s), 0.9)
	})

	t.Run("no signal anywhere", func(t *testing.T) {
		s := model.SenderSummary{LatestSubject: "Weekly digest"}
		assert.Zero(t, SenderLifecycleScore(&s))
	})
}

func TestRankSenders(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("lifecycle-significant sender outranks high volume", func(t *testing.T) {
		marketing := sender("megastore", 80, now)
		canceled := sender("smallsaas", 1, now.AddDate(0, -2, 0))
		canceled.LatestSubject = "Your subscription has been canceled"

		got := RankSenders([]model.SenderSummary{marketing, canceled})

		require.Len(t, got, 2)
		assert.Equal(t, "smallsaas", got[0].SenderName)
	})

	t.Run("volume breaks ties within a bucket", func(t *testing.T) {
		few := sender("few", 2, now)
		many := sender("many", 9, now.AddDate(0, -1, 0))

		got := RankSenders([]model.SenderSummary{few, many})
		assert.Equal(t, "many", got[0].SenderName)
	})

	t.Run("recency breaks equal volume", func(t *testing.T) {
		older := sender("older", 3, now.AddDate(0, -3, 0))
		newer := sender("newer", 3, now)

		got := RankSenders([]model.SenderSummary{older, newer})
		assert.Equal(t, "newer", got[0].SenderName)
	})

	t.Run("input slice unchanged", func(t *testing.T) {
		in := []model.SenderSummary{sender("b", 1, now), sender("a", 5, now)}
		_ = RankSenders(in)
		assert.Equal(t, "b", in[0].SenderName)
	})
}
