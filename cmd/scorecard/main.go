package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"vitalens/app"
	"vitalens/domain/health"
	"vitalens/internal"
	"vitalens/internal/report"
)

// scorecard scores a snapshot JSON file and writes the report artifacts:
// report.md, report.html, and report.xlsx.
//
// Usage: scorecard -snapshot snapshot.json [-vitals vitals.json] [-out dir]
func main() {
	snapshotPath := flag.String("snapshot", "", "path to UserHealthSnapshot JSON (required)")
	vitalsPath := flag.String("vitals", "", "optional path to HealthDataPoint array JSON")
	outDir := flag.String("out", ".", "output directory")
	flag.Parse()

	// .env is optional; flags and environment still apply without one.
	_ = godotenv.Load()
	logger := internal.NewDefaultLogger()

	if *snapshotPath == "" {
		fmt.Fprintln(os.Stderr, "scorecard: -snapshot is required")
		flag.Usage()
		os.Exit(2)
	}

	snapshot, err := loadSnapshot(*snapshotPath)
	if err != nil {
		logger.Error("load snapshot: %v", err)
		os.Exit(1)
	}

	var vitals []health.HealthDataPoint
	if *vitalsPath != "" {
		vitals, err = loadVitals(*vitalsPath)
		if err != nil {
			logger.Error("load vitals: %v", err)
			os.Exit(1)
		}
	}

	service := app.NewAssessmentService(logger)
	result, err := service.Run(context.Background(), app.AssessmentRequest{
		Snapshot:    snapshot,
		VitalPoints: vitals,
	})
	if err != nil {
		logger.Error("assessment failed: %v", err)
		os.Exit(1)
	}

	if err := writeArtifacts(result, *outDir); err != nil {
		logger.Error("write artifacts: %v", err)
		os.Exit(1)
	}

	logger.Info("report written to %s (overall score %d)", *outDir, result.Report.OverallRiskScore)
}

func loadSnapshot(path string) (*health.UserHealthSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snapshot health.UserHealthSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if snapshot.UserID == "" {
		return nil, fmt.Errorf("%s: user_id is required", path)
	}
	return &snapshot, nil
}

func loadVitals(path string) ([]health.HealthDataPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var points []health.HealthDataPoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return points, nil
}

func writeArtifacts(result *app.AssessmentResult, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	md := report.Markdown(result.Report)
	if err := os.WriteFile(filepath.Join(dir, "report.md"), []byte(md), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "report.html"), report.HTML(result.Report), 0o644); err != nil {
		return err
	}
	return report.WriteWorkbook(result.Report, filepath.Join(dir, "report.xlsx"))
}
