package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrail/subtrail/internal/model"
)

// ErrSubscriptionNotFound is returned when a lookup matches no subscription.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// SaveSubscription inserts a subscription, or updates the existing row with
// the same name. Updates preserve CreatedAt and refresh UpdatedAt.
func (s *SQLiteStorage) SaveSubscription(ctx context.Context, sub model.Subscription) error {
	if sub.Name == "" {
		return fmt.Errorf("subscription name cannot be empty")
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}

	now := time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (id, name, cost, billing_cycle, category, status, renewal_date, status_effective_date, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			cost = excluded.cost,
			billing_cycle = excluded.billing_cycle,
			category = excluded.category,
			status = excluded.status,
			renewal_date = excluded.renewal_date,
			status_effective_date = excluded.status_effective_date,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		sub.ID.String(), sub.Name, sub.Cost.String(), sub.BillingCycle, sub.Category,
		string(sub.Status), nullableTime(sub.RenewalDate), nullableTime(sub.StatusEffectiveDate),
		sub.Notes, now, now)
	if err != nil {
		return fmt.Errorf("failed to save subscription %q: %w", sub.Name, err)
	}
	return nil
}

// GetSubscription fetches a subscription by name.
func (s *SQLiteStorage) GetSubscription(ctx context.Context, name string) (*model.Subscription, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, cost, billing_cycle, category, status, renewal_date, status_effective_date, notes, created_at, updated_at
		FROM subscriptions WHERE name = ?`, name)

	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription %q: %w", name, err)
	}
	return sub, nil
}

// ListSubscriptions returns all subscriptions ordered by name.
func (s *SQLiteStorage) ListSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, cost, billing_cycle, category, status, renewal_date, status_effective_date, notes, created_at, updated_at
		FROM subscriptions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subs []model.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	return subs, nil
}

// SubscriptionNames returns the names of all stored subscriptions. The scan
// engine uses these to drop candidates that are already tracked.
func (s *SQLiteStorage) SubscriptionNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM subscriptions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscription names: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan subscription name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscription names: %w", err)
	}
	return names, nil
}

// UpdateSubscriptionStatus sets the status of a named subscription together
// with the date the status took effect.
func (s *SQLiteStorage) UpdateSubscriptionStatus(ctx context.Context, name string, status model.SubscriptionStatus, effective *time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE subscriptions SET status = ?, status_effective_date = ?, updated_at = ? WHERE name = ?`,
		string(status), nullableTime(effective), time.Now(), name)
	if err != nil {
		return fmt.Errorf("failed to update status for %q: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// DeleteSubscription removes a subscription by name.
func (s *SQLiteStorage) DeleteSubscription(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete subscription %q: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// RecordScanRun persists summary stats for a completed scan.
func (s *SQLiteStorage) RecordScanRun(ctx context.Context, run model.ScanRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scan_runs (id, started_at, lookback_months, emails_scanned, senders_analyzed, candidates_found)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.StartedAt, run.LookbackMonths, run.EmailsScanned, run.SendersAnalyzed, run.CandidatesFound)
	if err != nil {
		return fmt.Errorf("failed to record scan run: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*model.Subscription, error) {
	var (
		sub       model.Subscription
		id        string
		cost      string
		status    string
		renewal   sql.NullTime
		effective sql.NullTime
	)
	if err := row.Scan(&id, &sub.Name, &cost, &sub.BillingCycle, &sub.Category, &status,
		&renewal, &effective, &sub.Notes, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid subscription id %q: %w", id, err)
	}
	sub.ID = parsed

	sub.Cost, err = decimal.NewFromString(cost)
	if err != nil {
		return nil, fmt.Errorf("invalid subscription cost %q: %w", cost, err)
	}

	sub.Status = model.SubscriptionStatus(status)
	if renewal.Valid {
		t := renewal.Time
		sub.RenewalDate = &t
	}
	if effective.Valid {
		t := effective.Time
		sub.StatusEffectiveDate = &t
	}
	return &sub, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
