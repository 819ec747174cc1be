package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrail/subtrail/internal/model"
)

func daysAgo(n int) time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -n)
}

func chargeEmail(date time.Time) model.EmailSummary {
	return model.EmailSummary{
		Date:    date,
		Subject: "Your receipt for $9.99",
		Snippet: "Thanks for your payment",
	}
}

func cancelEmail(date time.Time) model.EmailSummary {
	return model.EmailSummary{
		Date:    date,
		Subject: "Your subscription has been canceled",
		Snippet: "We're sorry to see you go",
	}
}

func TestResolveEmptyTimelineDefersToAI(t *testing.T) {
	aiDate := daysAgo(5)

	got, effective := Resolve(nil, model.StatusCanceled, &aiDate)

	assert.Equal(t, model.StatusCanceled, got.Status)
	assert.InDelta(t, 0.5, got.Confidence, 1e-9)
	require.NotNil(t, effective)
	assert.Equal(t, aiDate, *effective)
}

func TestResolveSignalFreeTimelineDefersToAI(t *testing.T) {
	emails := []model.EmailSummary{
		{Date: daysAgo(10), Subject: "Weekly digest", Snippet: "what's new"},
		{Date: daysAgo(3), Subject: "Try Premium — cancel anytime", Snippet: ""},
	}

	got, effective := Resolve(emails, model.StatusActive, nil)

	assert.Equal(t, model.StatusActive, got.Status)
	assert.InDelta(t, 0.5, got.Confidence, 1e-9)
	assert.Nil(t, effective)
}

func TestResolveCancellationAfterCharge(t *testing.T) {
	emails := []model.EmailSummary{
		chargeEmail(daysAgo(60)),
		cancelEmail(daysAgo(30)),
	}

	got, effective := Resolve(emails, model.StatusActive, nil)

	assert.Equal(t, model.StatusCanceled, got.Status)
	assert.GreaterOrEqual(t, got.Confidence, 0.85)
	require.NotNil(t, effective)
	assert.Equal(t, daysAgo(30), *effective)
}

func TestResolveChargeAfterCancellationReactivates(t *testing.T) {
	emails := []model.EmailSummary{
		cancelEmail(daysAgo(60)),
		chargeEmail(daysAgo(10)),
	}

	got, effective := Resolve(emails, model.StatusCanceled, nil)

	assert.Equal(t, model.StatusActive, got.Status)
	assert.GreaterOrEqual(t, got.Confidence, 0.85)
	require.NotNil(t, effective)
	assert.Equal(t, daysAgo(10), *effective)
}

func TestResolveInputOrderDoesNotMatter(t *testing.T) {
	// Newest-first input, as mail APIs typically return it.
	emails := []model.EmailSummary{
		cancelEmail(daysAgo(30)),
		chargeEmail(daysAgo(60)),
		chargeEmail(daysAgo(90)),
	}

	got, _ := Resolve(emails, model.StatusActive, nil)
	assert.Equal(t, model.StatusCanceled, got.Status)
}

func TestResolveNeutralizedCancellationIgnored(t *testing.T) {
	// The cancellation phrase is defused by a false-positive phrase, so
	// the older charge remains the most recent real signal.
	emails := []model.EmailSummary{
		chargeEmail(daysAgo(40)),
		{
			Date:        daysAgo(5),
			Subject:     "About your account",
			Snippet:     "You can cancel and rejoin anytime",
			BodyExcerpt: "your membership canceled at your request",
		},
	}

	got, effective := Resolve(emails, model.StatusCanceled, nil)

	assert.Equal(t, model.StatusActive, got.Status)
	require.NotNil(t, effective)
	assert.Equal(t, daysAgo(40), *effective)
}

func TestResolveRefundIsNotACharge(t *testing.T) {
	emails := []model.EmailSummary{
		cancelEmail(daysAgo(30)),
		{
			Date:    daysAgo(10),
			Subject: "Your refund receipt",
			Snippet: "we refunded $9.99",
		},
	}

	got, _ := Resolve(emails, model.StatusActive, nil)
	assert.Equal(t, model.StatusCanceled, got.Status)
}

func TestResolveBodyOnlyCancellation(t *testing.T) {
	emails := []model.EmailSummary{
		chargeEmail(daysAgo(50)),
		{
			Date:        daysAgo(2),
			Subject:     "An update on your account",
			Snippet:     "",
			BodyExcerpt: "your membership canceled effective immediately",
		},
	}

	got, _ := Resolve(emails, model.StatusActive, nil)
	assert.Equal(t, model.StatusCanceled, got.Status)
	assert.GreaterOrEqual(t, got.Confidence, 0.85)
}
