package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/gymlog/internal/config"
	gymmcp "github.com/meltforce/gymlog/internal/mcp"
	"github.com/meltforce/gymlog/internal/repository"
	"github.com/meltforce/gymlog/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file for local mode")
	remote := flag.String("remote", "", "gymlog server URL for remote mode (e.g. http://gymlog.tail1234.ts.net)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymlog-mcp", Version)
		return
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds gymmcp.DataSource
	if *remote != "" {
		ds = gymmcp.NewHTTPClient(*remote)
		log.Info("remote mode", "server", *remote)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))

		store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
		if err != nil {
			log.Error("failed to open storage", "error", err)
			os.Exit(1)
		}
		defer store.Close()

		repo, err := repository.New(store, log)
		if err != nil {
			log.Error("failed to load workout data", "error", err)
			os.Exit(1)
		}
		ds = gymmcp.NewLocalSource(repo)
		log.Info("local mode", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)
	}

	if err := mcpserver.ServeStdio(gymmcp.New(ds, Version, log)); err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
