package repository

import (
	"context"
	"fmt"

	"github.com/insyte-io/linktrack/internal/model"
)

// InsertPayment records a closed/charged transaction. Called by the
// external payment collaborator's ingest path and by tests.
func (r *Repository) InsertPayment(ctx context.Context, payment *model.Payment) error {
	currency := payment.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}

	query := `
		INSERT INTO payments (id, slug, email, amount, currency, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		payment.ID,
		payment.Slug,
		payment.Email,
		payment.Amount,
		currency,
		payment.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// PaymentTotals returns the closed-deal count and summed revenue for a
// slug inside the window. Revenue is 0.0 when no rows match.
func (r *Repository) PaymentTotals(ctx context.Context, slug string, w model.Window) (int64, float64, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM payments WHERE slug = $1`
	args := []any{slug}
	query, args = appendWindow(query, "timestamp", w, args)

	var count int64
	var revenue float64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count, &revenue); err != nil {
		return 0, 0, fmt.Errorf("failed to total payments: %w", err)
	}

	return count, revenue, nil
}

// QueryPayments returns payment rows for a slug inside the window,
// ordered by timestamp.
func (r *Repository) QueryPayments(ctx context.Context, slug string, w model.Window) ([]*model.Payment, error) {
	query := `SELECT id, slug, email, amount, currency, timestamp FROM payments WHERE slug = $1`
	args := []any{slug}
	query, args = appendWindow(query, "timestamp", w, args)
	query += ` ORDER BY timestamp ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []*model.Payment
	for rows.Next() {
		var payment model.Payment
		if err := rows.Scan(&payment.ID, &payment.Slug, &payment.Email, &payment.Amount, &payment.Currency, &payment.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, &payment)
	}

	return payments, rows.Err()
}
