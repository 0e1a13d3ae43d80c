package models

// ISODate is the layout of Session.Date: UTC with millisecond precision,
// the same shape browsers produce for Date.toISOString.
const ISODate = "2006-01-02T15:04:05.000Z"

// Set is one performed set inside a workout entry.
type Set struct {
	Reps        int      `json:"reps"`
	WeightKg    *float64 `json:"weightKg,omitempty"`
	RestSeconds *int     `json:"restSeconds,omitempty"`
}

// Volume returns weight × reps, or 0 when either is missing or zero.
func (s Set) Volume() float64 {
	if s.WeightKg == nil || *s.WeightKg == 0 || s.Reps == 0 {
		return 0
	}
	return *s.WeightKg * float64(s.Reps)
}

func (s Set) clone() Set {
	s.WeightKg = clonePtr(s.WeightKg)
	s.RestSeconds = clonePtr(s.RestSeconds)
	return s
}

// WorkoutEntry is one exercise's performance within a session. Name and
// MuscleGroup are copies taken when the entry was created or edited, they are
// not kept in sync with the exercise library.
type WorkoutEntry struct {
	ExerciseID  int    `json:"exerciseId"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup,omitempty"`
	Sets        []Set  `json:"sets"`
	Notes       string `json:"notes,omitempty"`
}

// Clone returns a deep copy of the entry.
func (e WorkoutEntry) Clone() WorkoutEntry {
	e.Sets = CloneSets(e.Sets)
	return e
}

// Session is a full workout occasion. ID 0 marks an unsaved session.
type Session struct {
	ID              int            `json:"id"`
	Date            string         `json:"date"`
	Entries         []WorkoutEntry `json:"entries"`
	Notes           string         `json:"notes,omitempty"`
	DurationMinutes *int           `json:"durationMinutes,omitempty"`
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	if s.Entries != nil {
		entries := make([]WorkoutEntry, len(s.Entries))
		for i, e := range s.Entries {
			entries[i] = e.Clone()
		}
		s.Entries = entries
	}
	s.DurationMinutes = clonePtr(s.DurationMinutes)
	return s
}

// TotalSets counts the sets across all entries.
func (s Session) TotalSets() int {
	n := 0
	for _, e := range s.Entries {
		n += len(e.Sets)
	}
	return n
}

// TotalVolume sums Set.Volume across all entries.
func (s Session) TotalVolume() float64 {
	var total float64
	for _, e := range s.Entries {
		total += SetsVolume(e.Sets)
	}
	return total
}

// ExerciseHistory pairs a session date with the sets performed for one
// exercise in that session.
type ExerciseHistory struct {
	Date string `json:"date"`
	Sets []Set  `json:"sets"`
}

// SetsVolume sums Set.Volume over sets.
func SetsVolume(sets []Set) float64 {
	var total float64
	for _, s := range sets {
		total += s.Volume()
	}
	return total
}

// CloneSets deep-copies a set slice, keeping nil as nil.
func CloneSets(sets []Set) []Set {
	if sets == nil {
		return nil
	}
	out := make([]Set, len(sets))
	for i, s := range sets {
		out[i] = s.clone()
	}
	return out
}
