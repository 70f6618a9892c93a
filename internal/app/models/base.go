package models

import "time"

// RecentWindow is how far back a created/updated timestamp may lie for the
// derived is_recently_created / is_recently_updated flags to be true.
const RecentWindow = 7 * 24 * time.Hour

// Base carries the store-managed part of every entity: the assigned id and
// the creation/update timestamps. The recency flags are derived on read and
// never persisted.
type Base struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	RecentlyCreated bool `db:"-" json:"is_recently_created"`
	RecentlyUpdated bool `db:"-" json:"is_recently_updated"`
}

// Meta satisfies Record for every entity embedding Base.
func (b *Base) Meta() *Base { return b }

// Stamp marks a freshly created record: both timestamps are set to now.
func (b *Base) Stamp(now time.Time) {
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Touch refreshes updated_at on mutation, leaving created_at alone.
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now
}

// RefreshFlags recomputes the derived recency flags against now.
func (b *Base) RefreshFlags(now time.Time) {
	b.RecentlyCreated = now.Sub(b.CreatedAt) <= RecentWindow
	b.RecentlyUpdated = now.Sub(b.UpdatedAt) <= RecentWindow
}
