package validate

import (
	"errors"
	"testing"

	"github.com/meltforce/gymlog/internal/models"
)

// TestExercise verifies name and count rules for exercises.
func TestExercise(t *testing.T) {
	tests := []struct {
		name    string
		ex      models.Exercise
		wantErr string
	}{
		{"valid", models.Exercise{Name: "Row", Sets: 3, Reps: 10}, ""},
		{"empty name", models.Exercise{}, "name"},
		{"blank name", models.Exercise{Name: "  \t"}, "name"},
		{"negative reps", models.Exercise{Name: "Row", Reps: -1}, "sets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Exercise(tt.ex)
			checkField(t, err, tt.wantErr)
		})
	}
}

// TestNewSession verifies a new session needs entries and every entry needs sets.
func TestNewSession(t *testing.T) {
	ok := models.WorkoutEntry{ExerciseID: 1, Name: "Plank", Sets: []models.Set{{Reps: 30}}}
	empty := models.WorkoutEntry{ExerciseID: 2, Name: "Row"}

	tests := []struct {
		name    string
		s       models.Session
		wantErr string
	}{
		{"valid", models.Session{Entries: []models.WorkoutEntry{ok}}, ""},
		{"no entries", models.Session{}, "entries"},
		{"entry without sets", models.Session{Entries: []models.WorkoutEntry{ok, empty}}, "entries[1].sets"},
		{"stored date", models.Session{Date: "2025-03-04T18:30:00.000Z", Entries: []models.WorkoutEntry{ok}}, ""},
		{"bad date", models.Session{Date: "04/03/2025", Entries: []models.WorkoutEntry{ok}}, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkField(t, NewSession(tt.s), tt.wantErr)
		})
	}
}

// TestEditedSession verifies an edited session may have no entries but no
// entry may be empty.
func TestEditedSession(t *testing.T) {
	if err := EditedSession(models.Session{ID: 1}); err != nil {
		t.Errorf("session without entries: %v", err)
	}
	err := EditedSession(models.Session{ID: 1, Entries: []models.WorkoutEntry{{ExerciseID: 4}}})
	checkField(t, err, "entries[0].sets")
	if err.Error() != "entries[0].sets: exercise 4 has no sets" {
		t.Errorf("message = %q", err.Error())
	}
}

func checkField(t *testing.T, err error, field string) {
	t.Helper()
	if field == "" {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if verr.Field != field {
		t.Errorf("field = %q, want %q", verr.Field, field)
	}
}
