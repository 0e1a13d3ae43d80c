package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/meltforce/gymlog/internal/config"
	"github.com/meltforce/gymlog/internal/importer"
	"github.com/meltforce/gymlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	file := flag.String("file", "", "local storage dump to import (.json or .json.gz, - for stdin)")
	export := flag.String("export", "", "write the stored data to this file instead of importing (.gz to compress, - for stdout)")
	dryRun := flag.Bool("dry-run", false, "check the dump without writing to storage")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if (*file == "") == (*export == "") {
		fmt.Fprintf(os.Stderr, "Usage: gymlog-import [-config config.yaml] (-file dump.json [-dry-run] | -export dump.json.gz)\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Storage.Driver == storage.DriverMemory {
		log.Error("the memory driver does not persist; configure sqlite storage")
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if *export != "" {
		if err := runExport(store, *export); err != nil {
			log.Error("export failed", "error", err)
			os.Exit(1)
		}
		log.Info("export complete", "file", *export)
		return
	}

	if *dryRun {
		log.Info("DRY RUN mode: no data will be written to storage")
	}

	var in io.Reader = os.Stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			log.Error("failed to open dump", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	stats, err := importer.New(store, log, *dryRun).Import(in)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}
	log.Info("import complete",
		"exercises", stats.Exercises,
		"sessions", stats.Sessions,
		"skipped_keys", strings.Join(stats.SkippedKeys, ","),
	)
}

func runExport(store storage.Store, path string) error {
	if path == "-" {
		return importer.Export(store, os.Stdout, false)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := importer.Export(store, f, strings.HasSuffix(path, ".gz")); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
