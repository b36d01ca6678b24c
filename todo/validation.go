package todo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amonks/tasklist/internal/validation"
)

var (
	// ErrInvalidFilter is returned when an unknown filter is provided.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrInvalidVersion is returned when an unknown version is provided.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrInvalidField is returned when UpdateField names an unknown field.
	ErrInvalidField = errors.New("invalid field")

	// ErrInvalidFieldValue is returned when a value cannot be assigned to a field.
	ErrInvalidFieldValue = errors.New("invalid field value")

	// ErrInvalidID is returned when a todo ID cannot be parsed.
	ErrInvalidID = errors.New("invalid todo ID")

	// ErrDuplicateID is returned when a persisted collection repeats an ID.
	ErrDuplicateID = errors.New("duplicate todo ID")

	// ErrPersistenceDisabled is returned when a persistent operation is
	// requested below Version3.
	ErrPersistenceDisabled = errors.New("persistence requires version 3")
)

// ParseID parses a user-provided todo ID.
func ParseID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, value)
	}
	return id, nil
}

// ParseField normalizes a field name.
func ParseField(value string) (Field, error) {
	normalized := Field(strings.ToLower(strings.TrimSpace(value)))
	for _, valid := range ValidFields() {
		if normalized == valid {
			return normalized, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidField, Field(value), ValidFields())
}

// mutationFor converts a field assignment into a Mutation.
func mutationFor(id int, field Field, value string) (Mutation, error) {
	switch field {
	case FieldTitle:
		return SetTitle{ID: id, Title: value}, nil
	case FieldCompleted, FieldDeleted:
		flag, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidFieldValue, field, value)
		}
		if field == FieldCompleted {
			return SetCompleted{ID: id, Completed: flag}, nil
		}
		return SetDeleted{ID: id, Deleted: flag}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
}

// validateTodos checks invariants of a decoded collection.
func validateTodos(todos []Todo) error {
	seen := make(map[int]struct{}, len(todos))
	for _, t := range todos {
		if t.ID < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidID, t.ID)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
