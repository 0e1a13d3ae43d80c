package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/progress"
	"github.com/meltforce/gymlog/internal/repository"
	"github.com/meltforce/gymlog/internal/storage"
)

func newHandlers(t *testing.T) (*handlers, *repository.Repository) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo, err := repository.New(storage.NewMemory(), log)
	if err != nil {
		t.Fatal(err)
	}
	return &handlers{ds: NewLocalSource(repo), log: log}, repo
}

func logSession(t *testing.T, repo *repository.Repository, date string, exerciseID int, sets ...models.Set) {
	t.Helper()
	s := &models.Session{
		Date:    date,
		Entries: []models.WorkoutEntry{{ExerciseID: exerciseID, Name: "x", Sets: sets}},
	}
	if err := repo.SaveSession(s); err != nil {
		t.Fatal(err)
	}
}

func call(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func resultJSON[T any](t *testing.T, res *mcp.CallToolResult, err error) T {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool returned error: %v", res.Content)
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	var v T
	if err := json.Unmarshal([]byte(text.Text), &v); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return v
}

// TestListExercisesFilter verifies the muscle group filter is case-insensitive.
func TestListExercisesFilter(t *testing.T) {
	h, _ := newHandlers(t)
	ctx := context.Background()

	res, err := h.listExercises(ctx, call(nil))
	if all := resultJSON[[]models.Exercise](t, res, err); len(all) != 6 {
		t.Errorf("got %d exercises, want 6", len(all))
	}

	res, err = h.listExercises(ctx, call(map[string]any{"muscle_group": "GAMBE"}))
	got := resultJSON[[]models.Exercise](t, res, err)
	if len(got) != 1 || got[0].Name != "Squat al multipower" {
		t.Errorf("filtered = %+v", got)
	}
}

// TestGetExerciseTool verifies lookups and the not-found and missing-id errors.
func TestGetExerciseTool(t *testing.T) {
	h, _ := newHandlers(t)
	ctx := context.Background()

	res, err := h.getExercise(ctx, call(map[string]any{"id": float64(6)}))
	if ex := resultJSON[models.Exercise](t, res, err); ex.Name != "Plank" {
		t.Errorf("exercise = %+v, want Plank", ex)
	}

	for _, args := range []map[string]any{{"id": float64(60)}, nil} {
		res, err := h.getExercise(ctx, call(args))
		if err != nil {
			t.Fatal(err)
		}
		if !res.IsError {
			t.Errorf("args %v: expected tool error", args)
		}
	}
}

// TestListSessionsTool verifies ordering, the since filter and the limit.
func TestListSessionsTool(t *testing.T) {
	h, repo := newHandlers(t)
	ctx := context.Background()
	logSession(t, repo, "2025-02-20T18:00:00.000Z", 1, models.Set{Reps: 8})
	logSession(t, repo, "2025-03-01T18:00:00.000Z", 1, models.Set{Reps: 8})
	logSession(t, repo, "2025-03-05T18:00:00.000Z", 2, models.Set{Reps: 10})

	res, err := h.listSessions(ctx, call(map[string]any{"since": "2025-03-01"}))
	got := resultJSON[[]models.Session](t, res, err)
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 2 {
		t.Errorf("since filter = %+v, want ids 3,2", got)
	}

	res, err = h.listSessions(ctx, call(map[string]any{"limit": float64(1)}))
	if got := resultJSON[[]models.Session](t, res, err); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("limit 1 = %+v", got)
	}

	res, err = h.listSessions(ctx, call(map[string]any{"since": "last week"}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected error for invalid date")
	}
}

// TestGetSessionTool verifies a session is returned with its entries.
func TestGetSessionTool(t *testing.T) {
	h, repo := newHandlers(t)
	logSession(t, repo, "2025-03-01T18:00:00.000Z", 4, models.Set{Reps: 12, WeightKg: models.Ptr(10.0)})

	res, err := h.getSession(context.Background(), call(map[string]any{"id": float64(1)}))
	s := resultJSON[models.Session](t, res, err)
	if len(s.Entries) != 1 || s.Entries[0].Sets[0].Reps != 12 {
		t.Errorf("session = %+v", s)
	}

	res, err = h.getSession(context.Background(), call(map[string]any{"id": float64(2)}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected not-found error")
	}
}

// TestExerciseProgressTool verifies history and progress share the filter
// and progress is oldest first.
func TestExerciseProgressTool(t *testing.T) {
	h, repo := newHandlers(t)
	ctx := context.Background()
	logSession(t, repo, "2025-02-01T18:00:00.000Z", 3, models.Set{Reps: 8, WeightKg: models.Ptr(50.0)})
	logSession(t, repo, "2025-03-01T18:00:00.000Z", 3, models.Set{Reps: 8, WeightKg: models.Ptr(60.0)})
	logSession(t, repo, "2025-03-08T18:00:00.000Z", 3, models.Set{Reps: 6, WeightKg: models.Ptr(70.0)})

	res, err := h.getExerciseHistory(ctx, call(map[string]any{"id": float64(3)}))
	if hist := resultJSON[[]models.ExerciseHistory](t, res, err); len(hist) != 3 || hist[0].Date != "2025-03-08T18:00:00.000Z" {
		t.Errorf("history = %+v", hist)
	}

	res, err = h.getExerciseProgress(ctx, call(map[string]any{"id": float64(3), "since": "2025-03-01"}))
	report := resultJSON[progress.Report](t, res, err)
	if len(report.Points) != 2 || report.Points[0].Date != "2025-03-01T18:00:00.000Z" {
		t.Fatalf("points = %+v", report.Points)
	}
	if *report.MaxWeightKg != 70 || report.TotalVolumeKg != 900 {
		t.Errorf("report = %+v", report)
	}
}

// TestRecentSessionsResource verifies the resource caps at ten sessions.
func TestRecentSessionsResource(t *testing.T) {
	h, repo := newHandlers(t)
	for range 12 {
		logSession(t, repo, "", 1, models.Set{Reps: 8})
	}

	req := mcp.ReadResourceRequest{Params: mcp.ReadResourceParams{URI: "gymlog://recent_sessions"}}
	contents, err := h.recentSessions(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text := contents[0].(mcp.TextResourceContents)
	if text.URI != "gymlog://recent_sessions" || text.MIMEType != "application/json" {
		t.Errorf("contents = %+v", text)
	}
	var sessions []models.Session
	if err := json.Unmarshal([]byte(text.Text), &sessions); err != nil {
		t.Fatal(err)
	}
	if len(sessions) != recentSessionCount || sessions[0].ID != 12 {
		t.Errorf("got %d sessions starting at %d", len(sessions), sessions[0].ID)
	}
}

// TestSinceFilter verifies date-only and RFC3339 bounds and that
// unparseable stored dates are dropped.
func TestSinceFilter(t *testing.T) {
	keep, err := sinceFilter("2025-03-01")
	if err != nil {
		t.Fatal(err)
	}
	tests := map[string]bool{
		"2025-03-01T00:00:00.000Z": true,
		"2025-02-28T23:59:59.999Z": false,
		"2025-03-02T10:00:00Z":     true,
		"garbage":                  false,
	}
	for date, want := range tests {
		if got := keep(date); got != want {
			t.Errorf("keep(%q) = %v, want %v", date, got, want)
		}
	}

	keepAll, _ := sinceFilter("")
	if !keepAll("garbage") {
		t.Error("empty since dropped a date")
	}
	if _, err := sinceFilter("not-a-date"); err == nil {
		t.Error("expected error for invalid since")
	}
}

// TestNewRegistersTools verifies tools/list advertises every tool.
func TestNewRegistersTools(t *testing.T) {
	h, _ := newHandlers(t)
	s := New(h.ds, "test", h.log)

	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"list_exercises", "get_exercise", "list_sessions", "get_session", "get_exercise_history", "get_exercise_progress"} {
		if !strings.Contains(string(data), `"`+name+`"`) {
			t.Errorf("tool %q not listed in %s", name, data)
		}
	}
}
