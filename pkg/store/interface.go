package store

import "errors"

// Sentinel error for a hostname that is already whitelisted
var ErrHostnameExists = errors.New("hostname is already whitelisted")

// WhitelistStore defines the operations the whitelist needs from its storage
type WhitelistStore interface {
	FetchAll() ([]Entry, error)
	Insert(hostname string) (int64, error)
	Delete(id int64) error
	UpdateStatus(id int64, enabled bool) error
	UpdateHostname(id int64, hostname string) error
	Close() error
}
