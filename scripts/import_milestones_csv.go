// scripts/import_milestones_csv.go
package main

import (
	"BabyTracker/config"
	"BabyTracker/models"
	"BabyTracker/repositories/impl"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Expected header: category,title,description,expected_age_months,min_age_months,max_age_months
func main() {
	path := flag.String("file", "", "CSV file with reference milestones")
	update := flag.Bool("update", true, "overwrite milestones whose title already exists")
	flag.Parse()

	cfg := config.Load()
	logger := config.NewLogger(cfg)

	file, csvPath, err := openCSV(*path)
	if err != nil {
		logger.Error("milestones CSV not found", "error", err)
		os.Exit(1)
	}
	defer file.Close()
	logger.Info("reading milestones", "path", csvPath)

	milestones, err := parseMilestones(file, logger)
	if err != nil {
		logger.Error("failed to parse CSV", "error", err)
		os.Exit(1)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	repo := impl.NewMilestoneRepository(db)
	ctx := context.Background()
	if *update {
		err = repo.Upsert(ctx, milestones)
	} else {
		err = repo.Seed(ctx, milestones)
	}
	if err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}
	logger.Info("import finished", "rows", len(milestones), "update", *update)
}

// openCSV tries the given path, then milestones.csv in the working directory
// and in scripts/.
func openCSV(path string) (*os.File, string, error) {
	candidates := []string{path}
	if path == "" {
		dir, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		candidates = []string{
			filepath.Join(dir, "milestones.csv"),
			filepath.Join(dir, "scripts", "milestones.csv"),
		}
	}
	for _, p := range candidates {
		if f, err := os.Open(p); err == nil {
			return f, p, nil
		}
	}
	return nil, "", fmt.Errorf("tried %s", strings.Join(candidates, ", "))
}

// parseMilestones skips the header and any malformed row.
func parseMilestones(r io.Reader, logger *slog.Logger) ([]models.Milestone, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var out []models.Milestone
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		m, err := parseRow(record)
		if err != nil {
			logger.Warn("skipping row", "line", line, "error", err)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func parseRow(record []string) (models.Milestone, error) {
	if len(record) < 6 {
		return models.Milestone{}, fmt.Errorf("want 6 columns, got %d", len(record))
	}
	category := strings.ToLower(strings.TrimSpace(record[0]))
	switch category {
	case models.MilestoneMotor, models.MilestoneCognitive, models.MilestoneSocial, models.MilestoneLanguage, models.MilestonePhysical:
	default:
		return models.Milestone{}, fmt.Errorf("unknown category %q", record[0])
	}
	title := strings.TrimSpace(record[1])
	if title == "" {
		return models.Milestone{}, errors.New("empty title")
	}

	ages := make([]int, 3)
	for i := range ages {
		n, err := strconv.Atoi(strings.TrimSpace(record[3+i]))
		if err != nil || n < 0 {
			return models.Milestone{}, fmt.Errorf("bad age %q", record[3+i])
		}
		ages[i] = n
	}
	if ages[1] > ages[2] {
		return models.Milestone{}, fmt.Errorf("min age %d above max age %d", ages[1], ages[2])
	}

	return models.Milestone{
		Category:          category,
		Title:             title,
		Description:       strings.TrimSpace(record[2]),
		ExpectedAgeMonths: ages[0],
		MinAgeMonths:      ages[1],
		MaxAgeMonths:      ages[2],
	}, nil
}
