package repository

import "github.com/meltforce/gymlog/internal/models"

// DefaultExercises returns the built-in exercise library used when no valid
// exercise list is stored. A fresh slice is returned on every call.
func DefaultExercises() []models.Exercise {
	return []models.Exercise{
		{
			ID:          1,
			Name:        "Panca piana con bilanciere",
			MuscleGroup: "petto",
			Sets:        3,
			Reps:        8,
			WeightKg:    models.Ptr(50.0),
			Notes:       "Focus sulla tecnica, niente rimbalzi",
		},
		{
			ID:          2,
			Name:        "Lat machine avanti",
			MuscleGroup: "schiena",
			Sets:        3,
			Reps:        10,
			WeightKg:    models.Ptr(40.0),
			Notes:       "Tirare al petto senza slanci",
		},
		{
			ID:          3,
			Name:        "Squat al multipower",
			MuscleGroup: "gambe",
			Sets:        4,
			Reps:        8,
			WeightKg:    models.Ptr(60.0),
			Notes:       "Scendere almeno a parallelo",
		},
		{
			ID:          4,
			Name:        "Curl manubri in piedi",
			MuscleGroup: "bicipiti",
			Sets:        3,
			Reps:        12,
			WeightKg:    models.Ptr(10.0),
		},
		{
			ID:          5,
			Name:        "French press bilanciere EZ",
			MuscleGroup: "tricipiti",
			Sets:        3,
			Reps:        10,
			WeightKg:    models.Ptr(25.0),
		},
		{
			ID:          6,
			Name:        "Plank",
			MuscleGroup: "core",
			Sets:        3,
			Reps:        30,
			Notes:       "30 secondi a serie",
		},
	}
}
