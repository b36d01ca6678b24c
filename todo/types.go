// Package todo implements a small task list with a soft-delete trash.
//
// Tasks are kept newest-first in a Store, which optionally mirrors the whole
// collection to a key/value Persister under a single key. The Editor layers
// the interaction rules (filter selection, disabled rows, the trash) on top
// of a Store and is shared by the CLI, terminal and browser surfaces.
//
// The public API mirrors the user gestures:
//   - Create, Apply, UpdateField, Purge for collection changes
//   - View and Filter for the derived list
//   - Load, Flush, Close for persistence
package todo

import (
	"fmt"
	"strings"

	"github.com/amonks/tasklist/internal/validation"
)

// Filter selects which todos are visible.
type Filter string

const (
	// FilterAll shows every todo that is not in the trash.
	FilterAll Filter = "all"

	// FilterCompleted shows completed todos that are not in the trash.
	FilterCompleted Filter = "completed"

	// FilterUnchecked shows open todos that are not in the trash.
	FilterUnchecked Filter = "unchecked"

	// FilterDeleted shows only the trash.
	FilterDeleted Filter = "deleted"
)

// ValidFilters returns all valid filter values in display order.
func ValidFilters() []Filter {
	return []Filter{FilterAll, FilterCompleted, FilterUnchecked, FilterDeleted}
}

// IsValid returns true if the filter is a known value.
func (f Filter) IsValid() bool {
	for _, valid := range ValidFilters() {
		if f == valid {
			return true
		}
	}
	return false
}

// Label returns the human-readable name shown in filter selectors.
func (f Filter) Label() string {
	switch f {
	case FilterCompleted:
		return "Completed tasks"
	case FilterUnchecked:
		return "Current tasks"
	case FilterDeleted:
		return "Trash"
	default:
		return "All tasks"
	}
}

// Keep reports whether t is visible under the filter.
// Unknown filters behave like FilterAll.
func (f Filter) Keep(t Todo) bool {
	switch f {
	case FilterCompleted:
		return t.Completed && !t.Deleted
	case FilterUnchecked:
		return !t.Completed && !t.Deleted
	case FilterDeleted:
		return t.Deleted
	default:
		return !t.Deleted
	}
}

// ParseFilter normalizes user input into a Filter.
// "delete" and "trash" are accepted as spellings of FilterDeleted.
func ParseFilter(value string) (Filter, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "":
		return FilterAll, nil
	case "delete", "trash":
		return FilterDeleted, nil
	}
	f := Filter(normalized)
	if !f.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidFilter, Filter(value), ValidFilters())
	}
	return f, nil
}

// Version is the capability level of an Editor and its store.
type Version int

const (
	// Version1 supports creating and editing titles only.
	Version1 Version = 1

	// Version2 adds completion, the trash and filters.
	Version2 Version = 2

	// Version3 adds persistence and the generic field updater.
	Version3 Version = 3

	// DefaultVersion is used when no version is configured.
	DefaultVersion = Version3
)

// ValidVersions returns all valid versions.
func ValidVersions() []Version {
	return []Version{Version1, Version2, Version3}
}

// IsValid returns true if the version is known.
func (v Version) IsValid() bool {
	return v >= Version1 && v <= Version3
}

// HasFlags reports whether completion and the trash are available.
func (v Version) HasFlags() bool {
	return v >= Version2
}

// Persists reports whether the collection is mirrored to a Persister.
func (v Version) Persists() bool {
	return v >= Version3
}

func (v Version) String() string {
	return fmt.Sprintf("v%d", int(v))
}

// ParseVersion accepts "1", "v1", "2", "v2", "3", "v3".
func ParseVersion(value string) (Version, error) {
	normalized := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(value)), "v")
	if normalized == "" {
		return DefaultVersion, nil
	}
	for _, v := range ValidVersions() {
		if normalized == fmt.Sprint(int(v)) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, value)
}

// Field names a todo field addressable by UpdateField.
type Field string

const (
	// FieldTitle is the todo title.
	FieldTitle Field = "title"

	// FieldCompleted is the completion flag.
	FieldCompleted Field = "completed"

	// FieldDeleted is the soft-delete flag.
	FieldDeleted Field = "deleted"
)

// ValidFields returns all fields accepted by UpdateField.
func ValidFields() []Field {
	return []Field{FieldTitle, FieldCompleted, FieldDeleted}
}

// DefaultKey is the persistence key used when none is configured.
const DefaultKey = "todos-v3"
