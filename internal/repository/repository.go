// Package repository owns the exercise library and the session log. Both
// collections live in memory for the lifetime of the process and every
// mutation rewrites the whole collection to the key-value store.
//
// Every value handed out is a deep copy and every value accepted is copied
// before it is stored, so callers can freely edit what they hold without
// affecting the repository until they save it back.
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/storage"
)

// Storage keys. The names match what the browser version wrote so an
// exported local storage dump can be loaded as is.
const (
	SessionsKey  = "gym.sessions.v1"
	ExercisesKey = "gym.exercises.v1"
)

// ErrIncompatibleData is returned by New when a stored collection is valid
// JSON of the right overall shape but cannot be represented in memory, for
// example a string where a number belongs. The stored value is left as is.
var ErrIncompatibleData = errors.New("stored data has an incompatible shape")

// Repository is safe for concurrent use.
type Repository struct {
	store storage.Store
	log   *slog.Logger
	now   func() time.Time

	mu        sync.RWMutex
	exercises []models.Exercise
	sessions  []models.Session
}

// New loads both collections from store.
//
// A missing or malformed session list starts empty. A missing or malformed
// exercise list is replaced by DefaultExercises, which is written back
// immediately. Malformed means the value is not JSON or its top level is not
// an array. Fractional numbers where whole ones belong are rounded. Lists
// that parse but still hold values of the wrong type are never replaced: New
// fails with ErrIncompatibleData instead, as it does for read or write
// failures of the store itself.
func New(store storage.Store, log *slog.Logger) (*Repository, error) {
	r := &Repository{
		store: store,
		log:   log,
		now:   time.Now,
	}
	if err := r.loadSessions(); err != nil {
		return nil, err
	}
	if err := r.loadExercises(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) loadSessions() error {
	raw, ok, err := r.store.Get(SessionsKey)
	if err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}
	if !ok || raw == "" {
		return nil
	}
	sessions, ok, err := decodeList(raw, looseSession.session, r.log.With("key", SessionsKey))
	if err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}
	if !ok {
		r.log.Warn("stored sessions are malformed, starting with none", "key", SessionsKey)
		return nil
	}
	r.sessions = sessions
	return nil
}

func (r *Repository) loadExercises() error {
	raw, ok, err := r.store.Get(ExercisesKey)
	if err != nil {
		return fmt.Errorf("loading exercises: %w", err)
	}
	if ok && raw != "" {
		exercises, valid, err := decodeList(raw, looseExercise.exercise, r.log.With("key", ExercisesKey))
		if err != nil {
			return fmt.Errorf("loading exercises: %w", err)
		}
		if valid {
			r.exercises = exercises
			return nil
		}
		r.log.Warn("stored exercises are malformed, restoring defaults", "key", ExercisesKey)
	}

	r.exercises = DefaultExercises()
	if err := r.persistExercises(); err != nil {
		return fmt.Errorf("seeding exercises: %w", err)
	}
	r.log.Info("seeded default exercises", "count", len(r.exercises))
	return nil
}

// Exercises returns a copy of the exercise library in stored order.
func (r *Repository) Exercises() []models.Exercise {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Exercise, len(r.exercises))
	for i, e := range r.exercises {
		out[i] = e.Clone()
	}
	return out
}

// ExerciseByID returns a copy of the first exercise with the given id.
func (r *Repository) ExerciseByID(id int) (models.Exercise, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.exerciseIndex(id); i >= 0 {
		return r.exercises[i].Clone(), true
	}
	return models.Exercise{}, false
}

// SaveExercise inserts ex when ex.ID is 0, assigning the next id into ex and
// appending it to the library. Otherwise it replaces the exercise with the
// same id in place; an unknown id changes nothing.
func (r *Repository) SaveExercise(ex *models.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ex.ID == 0 {
		ex.ID = nextExerciseID(r.exercises)
		r.exercises = append(r.exercises, ex.Clone())
		r.log.Debug("exercise created", "id", ex.ID, "name", ex.Name)
	} else if i := r.exerciseIndex(ex.ID); i >= 0 {
		r.exercises[i] = ex.Clone()
		r.log.Debug("exercise updated", "id", ex.ID)
	}
	return r.persistExercises()
}

// UpdateExercise replaces an existing exercise in place. It never inserts:
// it reports false and writes nothing when ex.ID is 0 or unknown.
func (r *Repository) UpdateExercise(ex models.Exercise) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ex.ID == 0 {
		return false, nil
	}
	i := r.exerciseIndex(ex.ID)
	if i < 0 {
		return false, nil
	}
	r.exercises[i] = ex.Clone()
	r.log.Debug("exercise updated", "id", ex.ID)
	return true, r.persistExercises()
}

// DeleteExercise removes every exercise with the given id. Sessions that
// reference it are left alone.
func (r *Repository) DeleteExercise(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.exercises = slices.DeleteFunc(r.exercises, func(e models.Exercise) bool { return e.ID == id })
	return r.persistExercises()
}

// Sessions returns a copy of the session log, most recent first.
func (r *Repository) Sessions() []models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Session, len(r.sessions))
	for i, s := range r.sessions {
		out[i] = s.Clone()
	}
	return out
}

// SessionByID returns a copy of the first session with the given id.
func (r *Repository) SessionByID(id int) (models.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.sessionIndex(id); i >= 0 {
		return r.sessions[i].Clone(), true
	}
	return models.Session{}, false
}

// SaveSession inserts s at the front of the log when s.ID is 0, assigning the
// next id (and the current time when s.Date is empty) into s. Otherwise it
// replaces the session with the same id at its current position; an unknown
// id changes nothing.
func (r *Repository) SaveSession(s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == 0 {
		s.ID = nextSessionID(r.sessions)
		if s.Date == "" {
			s.Date = r.now().UTC().Format(models.ISODate)
		}
		r.sessions = slices.Insert(r.sessions, 0, s.Clone())
		r.log.Debug("session created", "id", s.ID, "entries", len(s.Entries))
	} else if i := r.sessionIndex(s.ID); i >= 0 {
		r.sessions[i] = s.Clone()
		r.log.Debug("session replaced", "id", s.ID)
	}
	return r.persistSessions()
}

// UpdateSession replaces an existing session in place. It never inserts:
// it reports false and writes nothing when s.ID is 0 or unknown.
func (r *Repository) UpdateSession(s models.Session) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == 0 {
		return false, nil
	}
	i := r.sessionIndex(s.ID)
	if i < 0 {
		return false, nil
	}
	r.sessions[i] = s.Clone()
	r.log.Debug("session updated", "id", s.ID)
	return true, r.persistSessions()
}

// DeleteSession removes every session with the given id.
func (r *Repository) DeleteSession(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions = slices.DeleteFunc(r.sessions, func(s models.Session) bool { return s.ID == id })
	return r.persistSessions()
}

// SessionsForExercise returns, for every entry that references exerciseID,
// the session date and a copy of the entry's sets. Results follow the log
// order (most recent first) and are not sorted by date.
func (r *Repository) SessionsForExercise(exerciseID int) []models.ExerciseHistory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.ExerciseHistory{}
	for _, s := range r.sessions {
		for _, e := range s.Entries {
			if e.ExerciseID == exerciseID {
				out = append(out, models.ExerciseHistory{Date: s.Date, Sets: models.CloneSets(e.Sets)})
			}
		}
	}
	return out
}

func (r *Repository) exerciseIndex(id int) int {
	return slices.IndexFunc(r.exercises, func(e models.Exercise) bool { return e.ID == id })
}

func (r *Repository) sessionIndex(id int) int {
	return slices.IndexFunc(r.sessions, func(s models.Session) bool { return s.ID == id })
}

func nextExerciseID(exercises []models.Exercise) int {
	maxID := 0
	for _, e := range exercises {
		maxID = max(maxID, e.ID)
	}
	return maxID + 1
}

func nextSessionID(sessions []models.Session) int {
	maxID := 0
	for _, s := range sessions {
		maxID = max(maxID, s.ID)
	}
	return maxID + 1
}

func (r *Repository) persistExercises() error {
	return r.persist(ExercisesKey, orEmpty(r.exercises))
}

func (r *Repository) persistSessions() error {
	return r.persist(SessionsKey, orEmpty(r.sessions))
}

// orEmpty keeps a nil collection from being written as JSON null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// persist writes the full collection under key.
func (r *Repository) persist(key string, items any) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := r.store.Set(key, string(data)); err != nil {
		return fmt.Errorf("persisting %s: %w", key, err)
	}
	return nil
}
