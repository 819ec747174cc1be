// Package model defines the core domain models used throughout the application.
package model

import "time"

// EmailMetadata is a single email as returned by the mail provider's
// metadata fetch. It is produced by the mail client and consumed read-only.
type EmailMetadata struct {
	Date    time.Time
	ID      string
	From    string
	Subject string
	Snippet string
}

// MaxBodyExcerptLen caps the amount of body text carried on an EmailSummary.
const MaxBodyExcerptLen = 500

// MaxRecentEmails caps the per-sender timeline kept on a SenderSummary.
const MaxRecentEmails = 10

// EmailSummary is one entry in a sender's recent-email timeline. BodyExcerpt
// is only populated when a body fetch was warranted for the sender.
type EmailSummary struct {
	Date        time.Time
	Subject     string
	Snippet     string
	BodyExcerpt string
}

// NewEmailSummary builds a summary, truncating the body excerpt to
// MaxBodyExcerptLen.
func NewEmailSummary(date time.Time, subject, snippet, body string) EmailSummary {
	if len(body) > MaxBodyExcerptLen {
		body = body[:MaxBodyExcerptLen]
	}
	return EmailSummary{
		Date:        date,
		Subject:     subject,
		Snippet:     snippet,
		BodyExcerpt: body,
	}
}
