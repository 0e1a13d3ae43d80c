// Package workout builds and edits workout entries the way the session
// editor does: entries start from the exercise's prescription and sets are
// added by repeating the last one.
package workout

import (
	"errors"
	"slices"

	"github.com/meltforce/gymlog/internal/models"
)

// DefaultReps is used when an exercise or the previous set has no reps.
const DefaultReps = 8

// ErrLastSet is returned when removing a set would leave an entry empty.
var ErrLastSet = errors.New("an entry must keep at least one set")

// ErrNoSet is returned for a set index outside the entry.
var ErrNoSet = errors.New("set index out of range")

// NewEntry returns an entry for ex with a single set taken from the
// exercise's prescribed reps and weight.
func NewEntry(ex models.Exercise) models.WorkoutEntry {
	return models.WorkoutEntry{
		ExerciseID:  ex.ID,
		Name:        ex.Name,
		MuscleGroup: ex.MuscleGroup,
		Sets:        []models.Set{defaultSet(ex)},
	}
}

// ApplyExercise points entry at the exercise with entry.ExerciseID and
// copies its name and muscle group. An entry with no sets gets a default
// one. Nothing changes when the exercise is not in the list.
func ApplyExercise(entry *models.WorkoutEntry, exercises []models.Exercise) bool {
	i := slices.IndexFunc(exercises, func(e models.Exercise) bool { return e.ID == entry.ExerciseID })
	if i < 0 {
		return false
	}
	ex := exercises[i]
	entry.Name = ex.Name
	entry.MuscleGroup = ex.MuscleGroup
	if len(entry.Sets) == 0 {
		entry.Sets = []models.Set{defaultSet(ex)}
	}
	return true
}

// AddSet appends a set repeating the last set's reps and weight.
func AddSet(entry *models.WorkoutEntry) {
	next := models.Set{Reps: DefaultReps}
	if n := len(entry.Sets); n > 0 {
		last := entry.Sets[n-1]
		if last.Reps != 0 {
			next.Reps = last.Reps
		}
		if last.WeightKg != nil {
			next.WeightKg = models.Ptr(*last.WeightKg)
		}
	}
	entry.Sets = append(entry.Sets, next)
}

// RemoveSet deletes the set at index i.
func RemoveSet(entry *models.WorkoutEntry, i int) error {
	if i < 0 || i >= len(entry.Sets) {
		return ErrNoSet
	}
	if len(entry.Sets) <= 1 {
		return ErrLastSet
	}
	entry.Sets = slices.Delete(entry.Sets, i, i+1)
	return nil
}

// NewSession returns an unsaved session holding copies of entries. A zero
// duration is left unset.
func NewSession(entries []models.WorkoutEntry, notes string, durationMinutes int) models.Session {
	s := models.Session{
		Entries: make([]models.WorkoutEntry, len(entries)),
		Notes:   notes,
	}
	for i, e := range entries {
		s.Entries[i] = e.Clone()
	}
	if durationMinutes > 0 {
		s.DurationMinutes = models.Ptr(durationMinutes)
	}
	return s
}

func defaultSet(ex models.Exercise) models.Set {
	set := models.Set{Reps: ex.Reps}
	if set.Reps == 0 {
		set.Reps = DefaultReps
	}
	if ex.WeightKg != nil {
		set.WeightKg = models.Ptr(*ex.WeightKg)
	}
	return set
}
