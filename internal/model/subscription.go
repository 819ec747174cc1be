package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Subscription is a confirmed subscription as persisted by storage. It is
// the durable counterpart of an accepted SubscriptionCandidate.
type Subscription struct {
	CreatedAt           time.Time
	UpdatedAt           time.Time
	RenewalDate         *time.Time
	StatusEffectiveDate *time.Time
	Name                string
	BillingCycle        string
	Category            string
	Notes               string
	Status              SubscriptionStatus
	ID                  uuid.UUID
	Cost                decimal.Decimal
}

// FromCandidate builds a persistable Subscription from an accepted candidate.
func FromCandidate(c *SubscriptionCandidate, now time.Time) Subscription {
	return Subscription{
		ID:                  uuid.New(),
		Name:                c.Name,
		Cost:                c.Cost,
		BillingCycle:        c.BillingCycle,
		Category:            c.Category,
		Notes:               c.Notes,
		Status:              c.SubscriptionStatus,
		RenewalDate:         c.RenewalDate,
		StatusEffectiveDate: c.StatusEffectiveDate,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
