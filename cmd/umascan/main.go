// Command umascan extracts a character record from a detail-screen
// screenshot and prints it as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"uma-scanner/internal/calibrate"
	"uma-scanner/internal/config"
	"uma-scanner/internal/imaging"
	"uma-scanner/internal/ocr"
	"uma-scanner/internal/roster"
	"uma-scanner/internal/scan"
	"uma-scanner/internal/skills"
)

func main() {
	imagePath := flag.String("i", "", "Path to screenshot image")
	templateDir := flag.String("t", "", "Anchor template directory (overrides config)")
	verbose := flag.Bool("v", false, "Print progress stages")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: umascan -i <screenshot> [-t <template dir>] [-v]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *templateDir != "" {
		cfg.TemplateDir = *templateDir
	}

	log := newLogger(cfg.LogLevel)

	if err := run(cfg, *imagePath, *verbose, log); err != nil {
		if errors.Is(err, scan.ErrCalibration) {
			fmt.Fprintln(os.Stderr, "Could not locate known landmarks in the screenshot.")
		} else {
			fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config, imagePath string, verbose bool, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src, err := imaging.LoadMat(imagePath)
	if err != nil {
		return err
	}
	defer src.Close()

	templates, err := calibrate.LoadTemplates(cfg.TemplateDir)
	if err != nil {
		return err
	}
	defer func() {
		for i := range templates {
			templates[i].Close()
		}
	}()

	skillCatalog, err := skills.Load(cfg.SkillCatalog)
	if err != nil {
		return err
	}
	ros, err := roster.Load(cfg.RosterCatalog)
	if err != nil {
		return err
	}
	log.Info("catalogs loaded", "skills", skillCatalog.Len(), "characters", ros.Len())

	engine, err := ocr.NewEngine(cfg.Languages...)
	if err != nil {
		return err
	}
	defer engine.Close()

	resolver := skills.NewResolver(skillCatalog, skills.Params{
		Threshold:       cfg.SkillThreshold,
		ExactBonus:      cfg.TierExactBonus,
		CompatBonus:     cfg.TierCompatBonus,
		MismatchPenalty: cfg.TierMismatchPenalty,
	}, log)

	calibrator := &scan.TemplateCalibrator{
		Templates: templates,
		Options: calibrate.SearchOptions{
			MinScale:   cfg.ScaleMin,
			MaxScale:   cfg.ScaleMax,
			Iterations: cfg.ScaleIterations,
			Threshold:  cfg.MatchThreshold,
		},
	}

	scanner := scan.New(calibrator, engine, resolver, ros, cfg.OutfitThreshold, log)
	if verbose {
		scanner.SetProgress(func(stage string, pct int) {
			fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", pct, stage)
		})
	}

	record, err := scanner.Scan(ctx, src)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
