package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/progress"
)

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// sinceFilter returns a predicate keeping dates at or after since. An empty
// since keeps everything. Dates that do not parse are dropped.
func sinceFilter(since string) (func(date string) bool, error) {
	if since == "" {
		return func(string) bool { return true }, nil
	}
	from, err := parseFlexTime(since)
	if err != nil {
		return nil, err
	}
	return func(date string) bool {
		t, err := time.Parse(time.RFC3339, date)
		return err == nil && !t.Before(from)
	}, nil
}

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the exercise library: id, name, muscle group and the prescribed sets, reps and weight (kg)."),
	mcp.WithString("muscle_group", mcp.Description("Only exercises for this muscle group (case-insensitive, e.g. 'petto', 'gambe')")),
)

var toolGetExercise = mcp.NewTool("get_exercise",
	mcp.WithDescription("Get one exercise from the library by id."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Exercise id")),
)

var toolListSessions = mcp.NewTool("list_sessions",
	mcp.WithDescription("List logged training sessions, most recent first. Each session has its entries (exercise, sets with reps, weight and rest) plus notes and duration."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions to return. Defaults to all.")),
	mcp.WithString("since", mcp.Description("Only sessions on or after this date (ISO 8601 or YYYY-MM-DD)")),
)

var toolGetSession = mcp.NewTool("get_session",
	mcp.WithDescription("Get one training session by id."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Session id")),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Every time an exercise was performed: session date and the sets done, most recent first."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Exercise id")),
	mcp.WithString("since", mcp.Description("Only sessions on or after this date (ISO 8601 or YYYY-MM-DD)")),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Progress of one exercise over time, oldest first: per session average reps, average and max weight, volume (kg x reps); plus the overall max weight and total volume."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Exercise id")),
	mcp.WithString("since", mcp.Description("Only sessions on or after this date (ISO 8601 or YYYY-MM-DD)")),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if group := req.GetString("muscle_group", ""); group != "" {
		filtered := []models.Exercise{}
		for _, ex := range exercises {
			if strings.EqualFold(ex.MuscleGroup, group) {
				filtered = append(filtered, ex)
			}
		}
		exercises = filtered
	}

	return jsonResult(exercises)
}

func (h *handlers) getExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireID(req)
	if errResult != nil {
		return errResult, nil
	}

	ex, err := h.ds.GetExercise(ctx, id)
	if err != nil {
		h.log.Error("mcp get_exercise", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if ex == nil {
		return mcp.NewToolResultError(fmt.Sprintf("exercise %d not found", id)), nil
	}
	return jsonResult(ex)
}

func (h *handlers) listSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}
	keep, err := sinceFilter(req.GetString("since", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	// The date filter runs before the limit, so fetch everything.
	sessions, err := h.ds.ListSessions(ctx, 0)
	if err != nil {
		h.log.Error("mcp list_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	out := []models.Session{}
	for _, s := range sessions {
		if limit > 0 && len(out) == limit {
			break
		}
		if keep(s.Date) {
			out = append(out, s)
		}
	}
	return jsonResult(out)
}

func (h *handlers) getSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireID(req)
	if errResult != nil {
		return errResult, nil
	}

	s, err := h.ds.GetSession(ctx, id)
	if err != nil {
		h.log.Error("mcp get_session", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if s == nil {
		return mcp.NewToolResultError(fmt.Sprintf("session %d not found", id)), nil
	}
	return jsonResult(s)
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	history, errResult := h.history(ctx, req, "get_exercise_history")
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(history)
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	history, errResult := h.history(ctx, req, "get_exercise_progress")
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(progress.Build(history))
}

// history loads and date-filters an exercise's history. A non-nil result is
// the error to hand back to the caller.
func (h *handlers) history(ctx context.Context, req mcp.CallToolRequest, tool string) ([]models.ExerciseHistory, *mcp.CallToolResult) {
	id, errResult := requireID(req)
	if errResult != nil {
		return nil, errResult
	}
	keep, err := sinceFilter(req.GetString("since", ""))
	if err != nil {
		return nil, mcp.NewToolResultError("invalid date format: " + err.Error())
	}

	history, err := h.ds.ExerciseHistory(ctx, id)
	if err != nil {
		h.log.Error("mcp "+tool, "error", err)
		return nil, mcp.NewToolResultError("query failed: " + err.Error())
	}

	out := []models.ExerciseHistory{}
	for _, item := range history {
		if keep(item.Date) {
			out = append(out, item)
		}
	}
	return out, nil
}

// requireID reads the id argument. Stored ids start at 1, so anything lower
// is rejected here rather than by the data source.
func requireID(req mcp.CallToolRequest) (int, *mcp.CallToolResult) {
	id, err := req.RequireInt("id")
	if err != nil {
		return 0, mcp.NewToolResultError("id parameter is required")
	}
	if id <= 0 {
		return 0, mcp.NewToolResultError("id must be a positive integer")
	}
	return id, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
