package server

import (
	"net/http"

	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/progress"
	"github.com/meltforce/gymlog/internal/validate"
	"github.com/meltforce/gymlog/internal/workout"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.repo.Exercises())
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ex, ok := s.repo.ExerciseByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var ex models.Exercise
	if err := decodeBody(r, &ex); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Exercise(ex); err != nil {
		writeInvalid(w, err)
		return
	}

	ex.ID = 0
	if err := s.repo.SaveExercise(&ex); err != nil {
		s.writeStoreError(w, "save exercise", err)
		return
	}
	s.log.Info("exercise created", "id", ex.ID, "name", ex.Name)
	writeJSON(w, http.StatusCreated, ex)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var ex models.Exercise
	if err := decodeBody(r, &ex); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Exercise(ex); err != nil {
		writeInvalid(w, err)
		return
	}

	ex.ID = id
	updated, err := s.repo.UpdateExercise(ex)
	if err != nil {
		s.writeStoreError(w, "update exercise", err)
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.repo.DeleteExercise(id); err != nil {
		s.writeStoreError(w, "delete exercise", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.repo.SessionsForExercise(id))
}

func (s *Server) handleExerciseProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, progress.Build(s.repo.SessionsForExercise(id)))
}

// handleEntryTemplate returns a new workout entry pre-filled from the
// exercise, ready to be added to a session.
func (s *Server) handleEntryTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ex, ok := s.repo.ExerciseByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	writeJSON(w, http.StatusOK, workout.NewEntry(ex))
}
