package engine

import (
	"sort"

	"github.com/subtrail/subtrail/internal/model"
	"github.com/subtrail/subtrail/internal/signal"
)

// LifecycleSignificanceThreshold marks a sender whose cancellation
// evidence must not be crowded out of the bounded AI pass, no matter how
// few emails it sent.
const LifecycleSignificanceThreshold = 0.80

// SenderLifecycleScore is the stronger of the sender's latest-email
// cancellation score and the maximum across its recent-email timeline.
// The timeline sweep covers body-only signals invisible in the latest
// subject and snippet.
func SenderLifecycleScore(sender *model.SenderSummary) float64 {
	best := signal.DetectCancellationSignal(sender.LatestSubject, sender.LatestSnippet, sender.BodyText)
	for _, e := range sender.RecentEmails {
		if score := signal.DetectCancellationSignal(e.Subject, e.Snippet, e.BodyExcerpt); score > best {
			best = score
		}
	}
	return best
}

// RankSenders orders senders for the bounded downstream AI pass:
// lifecycle-significant senders first regardless of volume, then higher
// email count, then more recent activity. Sorting is stable on the input
// order beyond those keys. The input slice is not modified.
func RankSenders(senders []model.SenderSummary) []model.SenderSummary {
	type rankedSender struct {
		sender      model.SenderSummary
		significant bool
	}

	ranked := make([]rankedSender, len(senders))
	for i := range senders {
		ranked[i] = rankedSender{
			sender:      senders[i],
			significant: SenderLifecycleScore(&senders[i]) >= LifecycleSignificanceThreshold,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].significant != ranked[j].significant {
			return ranked[i].significant
		}
		if ranked[i].sender.EmailCount != ranked[j].sender.EmailCount {
			return ranked[i].sender.EmailCount > ranked[j].sender.EmailCount
		}
		return ranked[i].sender.LatestDate.After(ranked[j].sender.LatestDate)
	})

	result := make([]model.SenderSummary, len(ranked))
	for i := range ranked {
		result[i] = ranked[i].sender
	}
	return result
}
