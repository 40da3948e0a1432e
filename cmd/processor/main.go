package main

import (
	"flag"
	"log/slog"
	"os"

	"pomet/internal/app"
	"pomet/internal/config"
	"pomet/internal/infrastructure"
)

func main() {
	inDir := flag.String("in", "", "source directory for .xlsx/.xls files (defaults to raw/ next to the executable)")
	outDir := flag.String("out", "", "output directory (defaults to output/ next to the executable)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *inDir != "" {
		cfg.Paths.SourceDir = *inDir
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	if err := app.New(cfg, logger).Run(); err != nil {
		logger.Error("process failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
