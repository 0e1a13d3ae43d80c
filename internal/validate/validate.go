// Package validate holds the input rules applied before data reaches the
// repository. The repository itself accepts anything.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/meltforce/gymlog/internal/models"
)

// Error is a rule violation on a single field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Exercise requires a name that is not blank.
func Exercise(ex models.Exercise) error {
	if strings.TrimSpace(ex.Name) == "" {
		return &Error{Field: "name", Message: "is required"}
	}
	if ex.Sets < 0 || ex.Reps < 0 {
		return &Error{Field: "sets", Message: "sets and reps must not be negative"}
	}
	return nil
}

// NewSession requires at least one entry, each with at least one set.
func NewSession(s models.Session) error {
	if len(s.Entries) == 0 {
		return &Error{Field: "entries", Message: "add at least one exercise"}
	}
	if err := date(s.Date); err != nil {
		return err
	}
	return entries(s.Entries)
}

// EditedSession only checks that no entry was left without sets. Removing
// every entry while editing is allowed.
func EditedSession(s models.Session) error {
	if err := date(s.Date); err != nil {
		return err
	}
	return entries(s.Entries)
}

// date accepts an empty date (stamped on save) or an RFC 3339 timestamp.
func date(d string) error {
	if d == "" {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, d); err != nil {
		return &Error{Field: "date", Message: "must be an RFC 3339 timestamp"}
	}
	return nil
}

func entries(list []models.WorkoutEntry) error {
	for i, e := range list {
		if len(e.Sets) == 0 {
			name := e.Name
			if name == "" {
				name = fmt.Sprintf("exercise %d", e.ExerciseID)
			}
			return &Error{
				Field:   fmt.Sprintf("entries[%d].sets", i),
				Message: fmt.Sprintf("%s has no sets", name),
			}
		}
	}
	return nil
}
