// Package importer moves workout data between a key-value store and a
// browser local storage dump: a JSON object mapping storage keys to their
// values. Values may be the JSON text local storage holds or the decoded
// arrays themselves; the dump may be gzip-compressed.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/klauspost/compress/gzip"
	"github.com/meltforce/gymlog/internal/repository"
	"github.com/meltforce/gymlog/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	Exercises   int
	Sessions    int
	SkippedKeys []string
}

// Importer writes dumps into a store.
type Importer struct {
	store  storage.Store
	log    *slog.Logger
	dryRun bool
}

// New creates a new Importer. With dryRun set the dump is checked but
// nothing is written.
func New(store storage.Store, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{store: store, log: log, dryRun: dryRun}
}

// Import reads a dump from r and replaces each collection it contains.
// Both collections are decoded before anything is written, so a dump with
// one bad value leaves the store untouched. Unknown keys are skipped.
func (imp *Importer) Import(r io.Reader) (*Stats, error) {
	data, err := maybeDecompress(r)
	if err != nil {
		return nil, err
	}

	var dump map[string]json.RawMessage
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("parsing dump: %w", err)
	}

	stats := &Stats{}
	writes := map[string]string{}
	for key, raw := range dump {
		text, err := valueText(raw)
		if err != nil {
			return stats, fmt.Errorf("key %s: %w", key, err)
		}
		switch {
		case text == "" && (key == repository.ExercisesKey || key == repository.SessionsKey):
			// Stored as is; the repository reads an empty value as absent.
		case key == repository.ExercisesKey:
			exercises, err := repository.DecodeExercises(text, imp.log)
			if err != nil {
				return stats, fmt.Errorf("decoding exercises: %w", err)
			}
			stats.Exercises = len(exercises)
		case key == repository.SessionsKey:
			sessions, err := repository.DecodeSessions(text, imp.log)
			if err != nil {
				return stats, fmt.Errorf("decoding sessions: %w", err)
			}
			stats.Sessions = len(sessions)
		default:
			stats.SkippedKeys = append(stats.SkippedKeys, key)
			continue
		}
		writes[key] = text
	}
	slices.Sort(stats.SkippedKeys)

	if imp.dryRun {
		imp.log.Info("dry run: nothing written", "keys", len(writes))
		return stats, nil
	}
	for _, key := range []string{repository.ExercisesKey, repository.SessionsKey} {
		text, ok := writes[key]
		if !ok {
			continue
		}
		if err := imp.store.Set(key, text); err != nil {
			return stats, fmt.Errorf("writing %s: %w", key, err)
		}
		imp.log.Info("imported", "key", key, "bytes", len(text))
	}
	return stats, nil
}

// valueText accepts either a JSON string holding the value or the value
// itself, and returns the text to store.
func valueText(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	if !json.Valid(raw) {
		return "", fmt.Errorf("invalid JSON value")
	}
	return string(raw), nil
}

// Export writes the stored collections to w in the dump format, with
// values as JSON text the way local storage holds them. Absent keys are
// left out. With compress set the output is gzipped.
func Export(store storage.Store, w io.Writer, compress bool) error {
	dump := map[string]string{}
	for _, key := range []string{repository.ExercisesKey, repository.SessionsKey} {
		v, ok, err := store.Get(key)
		if err != nil {
			return fmt.Errorf("reading %s: %w", key, err)
		}
		if ok {
			dump[key] = v
		}
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dump: %w", err)
	}

	if !compress {
		_, err := w.Write(data)
		return err
	}
	zw := gzip.NewWriter(w)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("gzip encode: %w", err)
	}
	return zw.Close()
}
