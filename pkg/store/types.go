package store

import "time"

// Entry is a whitelisted hostname persisted in SQLite
type Entry struct {
	ID        int64 // Assigned by the store, stable for the row's lifetime
	Hostname  string
	Enabled   bool
	CreatedAt time.Time
}
