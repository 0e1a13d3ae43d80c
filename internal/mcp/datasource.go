package mcp

import (
	"context"

	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/repository"
)

// DataSource abstracts the data layer for MCP tools. LocalSource (in-process
// repository) and HTTPClient (remote via REST API) satisfy this interface.
// Lookups return nil without an error when the id does not exist.
type DataSource interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	GetExercise(ctx context.Context, id int) (*models.Exercise, error)
	ListSessions(ctx context.Context, limit int) ([]models.Session, error)
	GetSession(ctx context.Context, id int) (*models.Session, error)
	ExerciseHistory(ctx context.Context, exerciseID int) ([]models.ExerciseHistory, error)
}

// LocalSource serves MCP tools straight from a repository.
type LocalSource struct {
	repo *repository.Repository
}

// Compile-time check: LocalSource satisfies DataSource.
var _ DataSource = (*LocalSource)(nil)

// NewLocalSource wraps repo.
func NewLocalSource(repo *repository.Repository) *LocalSource {
	return &LocalSource{repo: repo}
}

func (l *LocalSource) ListExercises(context.Context) ([]models.Exercise, error) {
	return l.repo.Exercises(), nil
}

func (l *LocalSource) GetExercise(_ context.Context, id int) (*models.Exercise, error) {
	ex, ok := l.repo.ExerciseByID(id)
	if !ok {
		return nil, nil
	}
	return &ex, nil
}

// ListSessions returns sessions most recent first; limit 0 means all.
func (l *LocalSource) ListSessions(_ context.Context, limit int) ([]models.Session, error) {
	sessions := l.repo.Sessions()
	if limit > 0 && limit < len(sessions) {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (l *LocalSource) GetSession(_ context.Context, id int) (*models.Session, error) {
	s, ok := l.repo.SessionByID(id)
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (l *LocalSource) ExerciseHistory(_ context.Context, exerciseID int) ([]models.ExerciseHistory, error) {
	return l.repo.SessionsForExercise(exerciseID), nil
}
