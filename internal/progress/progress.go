// Package progress turns an exercise's history into chart series and
// summary figures.
package progress

import (
	"slices"

	"github.com/meltforce/gymlog/internal/models"
)

// Point summarizes one history item.
type Point struct {
	Date        string   `json:"date"`
	Sets        int      `json:"sets"`
	TotalReps   int      `json:"total_reps"`
	AvgReps     float64  `json:"avg_reps"`
	AvgWeightKg *float64 `json:"avg_weight_kg"`
	MaxWeightKg *float64 `json:"max_weight_kg"`
	VolumeKg    float64  `json:"volume_kg"`
}

// Report is the progress of one exercise.
type Report struct {
	Points        []Point  `json:"points"`
	MaxWeightKg   *float64 `json:"max_weight_kg"`
	TotalVolumeKg float64  `json:"total_volume_kg"`
}

// Build expects history most recent first, as the repository returns it,
// and produces points oldest first. Sets without a weight are left out of
// the weight figures but still count for reps.
func Build(history []models.ExerciseHistory) Report {
	r := Report{Points: make([]Point, 0, len(history))}
	for _, h := range slices.Backward(history) {
		p := point(h)
		r.Points = append(r.Points, p)
		r.TotalVolumeKg += p.VolumeKg
		if p.MaxWeightKg != nil && (r.MaxWeightKg == nil || *p.MaxWeightKg > *r.MaxWeightKg) {
			r.MaxWeightKg = models.Ptr(*p.MaxWeightKg)
		}
	}
	return r
}

func point(h models.ExerciseHistory) Point {
	p := Point{
		Date:     h.Date,
		Sets:     len(h.Sets),
		VolumeKg: models.SetsVolume(h.Sets),
	}
	var weighted int
	var weightSum float64
	for _, s := range h.Sets {
		p.TotalReps += s.Reps
		if s.WeightKg == nil {
			continue
		}
		weighted++
		weightSum += *s.WeightKg
		if p.MaxWeightKg == nil || *s.WeightKg > *p.MaxWeightKg {
			p.MaxWeightKg = models.Ptr(*s.WeightKg)
		}
	}
	if p.Sets > 0 {
		p.AvgReps = float64(p.TotalReps) / float64(p.Sets)
	}
	if weighted > 0 {
		p.AvgWeightKg = models.Ptr(weightSum / float64(weighted))
	}
	return p
}
