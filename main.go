package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/lgu-hrmd/pds-screener/internal/config"
	"github.com/lgu-hrmd/pds-screener/internal/embedding"
	"github.com/lgu-hrmd/pds-screener/internal/export"
	"github.com/lgu-hrmd/pds-screener/internal/logger"
	"github.com/lgu-hrmd/pds-screener/internal/models"
	"github.com/lgu-hrmd/pds-screener/internal/screener"
	"github.com/lgu-hrmd/pds-screener/internal/scoring"
)

func main() {
	jobPath := flag.String("job", "", "path to the job requirement profile JSON")
	dir := flag.String("dir", ".", "directory of PDS files (xlsx, xls, pdf)")
	out := flag.String("out", "screening-report.xlsx", "output report path")
	flag.Parse()

	if *jobPath == "" {
		fmt.Fprintln(os.Stderr, "usage: pds-screener -job job.json -dir ./applications -out report.xlsx")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.JSONLogs, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg, log, *jobPath, *dir, *out); err != nil {
		log.Error("screening failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	log.Sync()
}

func run(cfg *config.Config, log *zap.Logger, jobPath, dir, out string) error {
	ctx := context.Background()

	jobData, err := os.ReadFile(jobPath)
	if err != nil {
		return fmt.Errorf("read job profile: %w", err)
	}
	var job models.JobRequirementProfile
	if err := json.Unmarshal(jobData, &job); err != nil {
		return fmt.Errorf("parse job profile: %w", err)
	}

	// The embedder is optional: with no API key the screener runs rule-only.
	var embedder scoring.Embedder
	if cfg.GeminiAPIKey != "" {
		gem, err := embedding.NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
		if err != nil {
			log.Warn("embedding backend unavailable, scoring rule-only", zap.Error(err))
		} else {
			embedder = gem
		}
	}

	inputs, err := loadInputs(dir)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no PDS files found in %s", dir)
	}
	log.Info("screening batch", zap.Int("documents", len(inputs)), zap.String("position", job.Title))

	s := screener.New(scoring.NewAssessor(embedder, log), nil, log, cfg.Workers)
	results := s.Screen(ctx, inputs, &job)
	report := screener.BuildReport(job.Title, results)

	if err := export.ExportToExcel(report, out); err != nil {
		return err
	}
	log.Info("report written", zap.String("path", out),
		zap.Int("screened", report.Screened), zap.Int("rejected", report.Rejected))
	return nil
}

func loadInputs(dir string) ([]screener.Input, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var inputs []screener.Input
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(e.Name())), ".")
		switch ext {
		case "xlsx", "xls", "pdf":
		default:
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		inputs = append(inputs, screener.Input{Name: e.Name(), Ext: ext, Data: data})
	}
	return inputs, nil
}
