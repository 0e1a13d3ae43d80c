package server

import (
	"net/http"
	"strconv"

	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/validate"
	"github.com/meltforce/gymlog/internal/workout"
)

// handleListSessions returns sessions most recent first. An optional
// ?limit=N keeps only the first N.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.repo.Sessions()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		if n < len(sessions) {
			sessions = sessions[:n]
		}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, ok := s.repo.SessionByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var sess models.Session
	if err := decodeBody(r, &sess); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.NewSession(sess); err != nil {
		writeInvalid(w, err)
		return
	}

	sess.ID = 0
	s.denormalize(&sess)
	if err := s.repo.SaveSession(&sess); err != nil {
		s.writeStoreError(w, "save session", err)
		return
	}
	s.log.Info("session logged", "id", sess.ID, "entries", len(sess.Entries), "volume_kg", sess.TotalVolume())
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var sess models.Session
	if err := decodeBody(r, &sess); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.EditedSession(sess); err != nil {
		writeInvalid(w, err)
		return
	}

	existing, ok := s.repo.SessionByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	// A body without a date keeps the one already stored.
	if sess.Date == "" {
		sess.Date = existing.Date
	}
	sess.ID = id
	s.denormalizeEdited(&sess, existing)
	updated, err := s.repo.UpdateSession(sess)
	if err != nil {
		s.writeStoreError(w, "update session", err)
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.repo.DeleteSession(id); err != nil {
		s.writeStoreError(w, "delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// denormalize refreshes each entry's name and muscle group from the current
// library. Entries whose exercise was deleted keep what the client sent.
func (s *Server) denormalize(sess *models.Session) {
	exercises := s.repo.Exercises()
	for i := range sess.Entries {
		workout.ApplyExercise(&sess.Entries[i], exercises)
	}
}

// denormalizeEdited refreshes only entries that are new or whose exercise
// changed. The others keep the name and muscle group stored with them.
func (s *Server) denormalizeEdited(sess *models.Session, stored models.Session) {
	exercises := s.repo.Exercises()
	for i := range sess.Entries {
		e := &sess.Entries[i]
		if i < len(stored.Entries) && stored.Entries[i].ExerciseID == e.ExerciseID {
			e.Name = stored.Entries[i].Name
			e.MuscleGroup = stored.Entries[i].MuscleGroup
			continue
		}
		workout.ApplyExercise(e, exercises)
	}
}
