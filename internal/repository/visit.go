package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// visitCounterID is the fixed id of the singleton visit-counter row.
const visitCounterID = "visit_counter_singleton"

// IncrementVisits bumps the visit counter, creating the row on first use,
// and returns the new total.
func (r *Repository) IncrementVisits(ctx context.Context) (int64, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO visits (id, total_visits, last_updated) VALUES (?, 1, ?)
		 ON CONFLICT (id) DO UPDATE SET total_visits = total_visits + 1, last_updated = excluded.last_updated`,
		visitCounterID, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return r.VisitCount(ctx)
}

// VisitCount returns the current visit total. A missing counter row counts
// as zero.
func (r *Repository) VisitCount(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT total_visits FROM visits WHERE id = ?`, visitCounterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return total, nil
}
