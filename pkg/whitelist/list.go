package whitelist

import (
	"errors"
	"fmt"

	"github.com/xlttj/whitelist/pkg/logging"
	"github.com/xlttj/whitelist/pkg/store"
	"github.com/xlttj/whitelist/pkg/validation"
)

var (
	// ErrInvalidHostname is returned when input fails hostname validation.
	// Nothing is written to the store in that case.
	ErrInvalidHostname = errors.New("invalid hostname")

	// ErrEntryNotFound is returned when an id is not part of the current snapshot.
	ErrEntryNotFound = errors.New("whitelist entry not found")
)

// List applies user actions to a WhitelistStore and keeps a read-only snapshot
// of its rows for display. The snapshot only changes on Refresh, except for
// Toggle which flips the affected entry immediately.
type List struct {
	store     store.WhitelistStore
	valid     validation.Validator
	entries   []store.Entry
	onRefresh func([]store.Entry)
}

// New builds a List and loads the initial snapshot.
func New(s store.WhitelistStore, valid validation.Validator) (*List, error) {
	if valid == nil {
		valid = validation.Default
	}
	l := &List{store: s, valid: valid}
	if err := l.Refresh(); err != nil {
		return nil, err
	}
	return l, nil
}

// OnRefresh registers fn to be called with the new snapshot after every refresh.
func (l *List) OnRefresh(fn func([]store.Entry)) {
	l.onRefresh = fn
}

// Entries returns a copy of the current snapshot.
func (l *List) Entries() []store.Entry {
	out := make([]store.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Get looks an entry up in the current snapshot.
func (l *List) Get(id int64) (store.Entry, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.entries[i], true
	}
	return store.Entry{}, false
}

// Refresh re-reads every row from the store and notifies the listener.
func (l *List) Refresh() error {
	entries, err := l.store.FetchAll()
	if err != nil {
		return fmt.Errorf("failed to refresh whitelist: %w", err)
	}
	l.entries = entries
	if l.onRefresh != nil {
		l.onRefresh(l.Entries())
	}
	return nil
}

// Add stores hostname as a new enabled entry.
func (l *List) Add(hostname string) error {
	if !l.valid(hostname) {
		return fmt.Errorf("%w: %q", ErrInvalidHostname, hostname)
	}
	if _, err := l.store.Insert(hostname); err != nil {
		return err
	}
	return l.Refresh()
}

// Edit replaces the hostname of entry id. Its status is kept.
func (l *List) Edit(id int64, hostname string) error {
	if !l.valid(hostname) {
		return fmt.Errorf("%w: %q", ErrInvalidHostname, hostname)
	}
	if err := l.store.UpdateHostname(id, hostname); err != nil {
		return err
	}
	return l.Refresh()
}

// Delete removes entry id. Unknown ids are not an error.
func (l *List) Delete(id int64) error {
	if err := l.store.Delete(id); err != nil {
		return err
	}
	return l.Refresh()
}

// Toggle flips the status of entry id and returns the new status.
// The snapshot is updated before the store so the view can redraw at once.
func (l *List) Toggle(id int64) (bool, error) {
	i := l.indexOf(id)
	if i < 0 {
		logging.LogError("Whitelist entry %d could not be found in the current list", id)
		return false, fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}

	enabled := !l.entries[i].Enabled
	l.entries[i].Enabled = enabled

	if err := l.store.UpdateStatus(id, enabled); err != nil {
		l.entries[i].Enabled = !enabled
		return !enabled, err
	}
	return enabled, nil
}

// Prune deletes every disabled entry and returns how many were removed.
func (l *List) Prune() (int, error) {
	removed := 0
	for _, e := range l.Entries() {
		if e.Enabled {
			continue
		}
		if err := l.store.Delete(e.ID); err != nil {
			return removed, err
		}
		removed++
	}
	logging.LogDebug("Pruned %d disabled whitelist entries", removed)
	return removed, l.Refresh()
}

// ImportResult counts the outcome of Import.
type ImportResult struct {
	Imported int
	Skipped  []string
}

// Import adds entries that validate and are not yet present, keeping their status.
func (l *List) Import(entries []store.Entry) (ImportResult, error) {
	var result ImportResult

	for _, e := range entries {
		if !l.valid(e.Hostname) {
			result.Skipped = append(result.Skipped, e.Hostname)
			continue
		}
		id, err := l.store.Insert(e.Hostname)
		if errors.Is(err, store.ErrHostnameExists) {
			result.Skipped = append(result.Skipped, e.Hostname)
			continue
		}
		if err != nil {
			return result, err
		}
		if !e.Enabled {
			if err := l.store.UpdateStatus(id, false); err != nil {
				// Never leave an entry enabled that the file disabled
				if delErr := l.store.Delete(id); delErr != nil {
					logging.LogError("Failed to remove half-imported entry %s: %v", e.Hostname, delErr)
				}
				return result, fmt.Errorf("failed to import %s as disabled: %w", e.Hostname, err)
			}
		}
		result.Imported++
	}

	logging.LogDebug("Imported %d whitelist entries, skipped %d", result.Imported, len(result.Skipped))
	return result, l.Refresh()
}

func (l *List) indexOf(id int64) int {
	for i := range l.entries {
		if l.entries[i].ID == id {
			return i
		}
	}
	return -1
}
