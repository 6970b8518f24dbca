package models

import "time"

// Visit holds the page-visit counter. A single row with a fixed id is
// upserted on every tracked visit.
type Visit struct {
	ID          string    `db:"id" json:"id"`
	TotalVisits int64     `db:"total_visits" json:"totalVisits"`
	LastUpdated time.Time `db:"last_updated" json:"lastUpdated"`
}
