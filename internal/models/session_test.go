package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// storedSessions is a blob in the exact shape the browser version of the app
// wrote to local storage. Decoding it must keep working unchanged.
const storedSessions = `[
  {"id":2,"date":"2025-03-04T18:30:00.000Z","entries":[
    {"exerciseId":1,"name":"Panca piana con bilanciere","muscleGroup":"petto","sets":[{"reps":8,"weightKg":50},{"reps":6,"weightKg":52.5,"restSeconds":90}],"notes":""}
  ],"notes":"buona","durationMinutes":45},
  {"id":1,"date":"2025-03-01T18:00:00.000Z","entries":[
    {"exerciseId":6,"name":"Plank","sets":[{"reps":30}]}
  ]}
]`

// TestDecodeStoredSessions verifies the JSON field names and optional fields
// match the data written by the original application.
func TestDecodeStoredSessions(t *testing.T) {
	var sessions []Session
	if err := json.Unmarshal([]byte(storedSessions), &sessions); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []Session{
		{
			ID:   2,
			Date: "2025-03-04T18:30:00.000Z",
			Entries: []WorkoutEntry{{
				ExerciseID:  1,
				Name:        "Panca piana con bilanciere",
				MuscleGroup: "petto",
				Sets: []Set{
					{Reps: 8, WeightKg: Ptr(50.0)},
					{Reps: 6, WeightKg: Ptr(52.5), RestSeconds: Ptr(90)},
				},
			}},
			Notes:           "buona",
			DurationMinutes: Ptr(45),
		},
		{
			ID:      1,
			Date:    "2025-03-01T18:00:00.000Z",
			Entries: []WorkoutEntry{{ExerciseID: 6, Name: "Plank", Sets: []Set{{Reps: 30}}}},
		},
	}
	if diff := cmp.Diff(want, sessions); diff != "" {
		t.Errorf("decoded sessions mismatch (-want +got):\n%s", diff)
	}
}

// TestEncodeOmitsUnsetOptionals verifies optional fields are left out of the
// stored JSON rather than written as null or zero.
func TestEncodeOmitsUnsetOptionals(t *testing.T) {
	b, err := json.Marshal(Set{Reps: 5})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `{"reps":5}`; got != want {
		t.Errorf("Set JSON = %s, want %s", got, want)
	}

	b, err = json.Marshal(Exercise{ID: 3, Name: "Squat", MuscleGroup: "gambe", Sets: 4, Reps: 8})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `{"id":3,"name":"Squat","muscleGroup":"gambe","sets":4,"reps":8}`; got != want {
		t.Errorf("Exercise JSON = %s, want %s", got, want)
	}
}

// TestSessionCloneIsDeep verifies that mutating a clone at any depth leaves
// the original untouched.
func TestSessionCloneIsDeep(t *testing.T) {
	orig := Session{
		ID:              1,
		Entries:         []WorkoutEntry{{ExerciseID: 1, Sets: []Set{{Reps: 5, WeightKg: Ptr(100.0)}}}},
		DurationMinutes: Ptr(60),
	}
	c := orig.Clone()
	c.Entries[0].Sets[0].Reps = 1
	*c.Entries[0].Sets[0].WeightKg = 1
	c.Entries[0].Name = "changed"
	*c.DurationMinutes = 1

	if orig.Entries[0].Sets[0].Reps != 5 {
		t.Errorf("reps leaked into original: %d", orig.Entries[0].Sets[0].Reps)
	}
	if *orig.Entries[0].Sets[0].WeightKg != 100 {
		t.Errorf("weight leaked into original: %v", *orig.Entries[0].Sets[0].WeightKg)
	}
	if orig.Entries[0].Name != "" {
		t.Errorf("name leaked into original: %q", orig.Entries[0].Name)
	}
	if *orig.DurationMinutes != 60 {
		t.Errorf("duration leaked into original: %d", *orig.DurationMinutes)
	}
}

// TestCloneKeepsNil verifies nil slices stay nil so cloned values compare
// equal to their source.
func TestCloneKeepsNil(t *testing.T) {
	s := Session{ID: 1}
	if diff := cmp.Diff(s, s.Clone()); diff != "" {
		t.Errorf("clone differs (-orig +clone):\n%s", diff)
	}
	if CloneSets(nil) != nil {
		t.Error("CloneSets(nil) should be nil")
	}
}

// TestTotals verifies set counting and volume, where sets without a weight
// or with zero reps contribute nothing.
func TestTotals(t *testing.T) {
	s := Session{Entries: []WorkoutEntry{
		{Sets: []Set{{Reps: 10, WeightKg: Ptr(20.0)}, {Reps: 8, WeightKg: Ptr(22.5)}}},
		{Sets: []Set{{Reps: 30}, {Reps: 0, WeightKg: Ptr(40.0)}, {Reps: 5, WeightKg: Ptr(0.0)}}},
	}}
	if got := s.TotalSets(); got != 5 {
		t.Errorf("TotalSets = %d, want 5", got)
	}
	if got, want := s.TotalVolume(), 10*20.0+8*22.5; got != want {
		t.Errorf("TotalVolume = %v, want %v", got, want)
	}
}
