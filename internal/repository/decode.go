package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/meltforce/gymlog/internal/models"
)

// decodeList parses a stored collection. It reports false when raw is not
// JSON or its top level is not an array (null counts as an empty array).
//
// Number inputs in the browser could store fractions such as "reps": 8.5
// where the models hold ints. Such lists are decoded a second time through
// the loose mirror types and rounded, rather than being discarded. Any other
// element that does not decode yields an error wrapping ErrIncompatibleData.
func decodeList[T, L any](raw string, tighten func(L) T, log *slog.Logger) ([]T, bool, error) {
	data := bytes.TrimSpace([]byte(raw))
	if !json.Valid(data) || (data[0] != '[' && !bytes.Equal(data, []byte("null"))) {
		return nil, false, nil
	}

	var items []T
	err := json.Unmarshal(data, &items)
	if err == nil {
		return items, true, nil
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || !strings.HasPrefix(typeErr.Value, "number") {
		return nil, false, fmt.Errorf("%w: %v", ErrIncompatibleData, err)
	}

	var loose []L
	if err := json.Unmarshal(data, &loose); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrIncompatibleData, err)
	}
	items = make([]T, len(loose))
	for i, l := range loose {
		items[i] = tighten(l)
	}
	log.Warn("stored list has fractional counts, rounded to whole numbers", "field", typeErr.Field)
	return items, true, nil
}

var errMalformed = errors.New("not a JSON array")

// DecodeExercises parses an exercise list with the rounding rules New applies.
// Unlike New it reports malformed text as an error.
func DecodeExercises(raw string, log *slog.Logger) ([]models.Exercise, error) {
	return decodeStrict(raw, looseExercise.exercise, log)
}

// DecodeSessions is DecodeExercises for the session log.
func DecodeSessions(raw string, log *slog.Logger) ([]models.Session, error) {
	return decodeStrict(raw, looseSession.session, log)
}

func decodeStrict[T, L any](raw string, tighten func(L) T, log *slog.Logger) ([]T, error) {
	items, ok, err := decodeList(raw, tighten, log)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errMalformed
	}
	return items, nil
}

type looseExercise struct {
	models.Exercise
	ID   float64 `json:"id"`
	Sets float64 `json:"sets"`
	Reps float64 `json:"reps"`
}

func (l looseExercise) exercise() models.Exercise {
	e := l.Exercise
	e.ID = whole(l.ID)
	e.Sets = whole(l.Sets)
	e.Reps = whole(l.Reps)
	return e
}

type looseSet struct {
	models.Set
	Reps        float64  `json:"reps"`
	RestSeconds *float64 `json:"restSeconds"`
}

type looseEntry struct {
	models.WorkoutEntry
	ExerciseID float64    `json:"exerciseId"`
	Sets       []looseSet `json:"sets"`
}

type looseSession struct {
	models.Session
	ID              float64      `json:"id"`
	Entries         []looseEntry `json:"entries"`
	DurationMinutes *float64     `json:"durationMinutes"`
}

func (l looseSession) session() models.Session {
	s := l.Session
	s.ID = whole(l.ID)
	s.DurationMinutes = wholePtr(l.DurationMinutes)
	s.Entries = nil
	if l.Entries != nil {
		s.Entries = make([]models.WorkoutEntry, len(l.Entries))
	}
	for i, le := range l.Entries {
		e := le.WorkoutEntry
		e.ExerciseID = whole(le.ExerciseID)
		e.Sets = nil
		if le.Sets != nil {
			e.Sets = make([]models.Set, len(le.Sets))
		}
		for j, ls := range le.Sets {
			set := ls.Set
			set.Reps = whole(ls.Reps)
			set.RestSeconds = wholePtr(ls.RestSeconds)
			e.Sets[j] = set
		}
		s.Entries[i] = e
	}
	return s
}

func whole(f float64) int {
	return int(math.Round(f))
}

func wholePtr(f *float64) *int {
	if f == nil {
		return nil
	}
	return models.Ptr(whole(*f))
}
