package models

// Exercise is a movement in the user's library together with its prescribed
// defaults. ID 0 marks an exercise that has not been saved yet.
type Exercise struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	MuscleGroup string   `json:"muscleGroup"`
	Sets        int      `json:"sets"`
	Reps        int      `json:"reps"`
	WeightKg    *float64 `json:"weightKg,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// Clone returns a copy that shares no memory with e.
func (e Exercise) Clone() Exercise {
	e.WeightKg = clonePtr(e.WeightKg)
	return e
}

// Ptr returns a pointer to v. Used for the optional numeric fields.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
