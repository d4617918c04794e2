package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/config"
	"github.com/wanjala/cdf-tracker/internal/db"
	"github.com/wanjala/cdf-tracker/internal/logger"
	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/repository"
)

func main() {
	file := flag.String("file", "", "CSV file path (required)")
	update := flag.Bool("update", false, "update rows that already exist")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: import-projects -file data/projects.csv [-update]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("cannot open file")
	}
	defer f.Close()

	projects := repository.NewProjectRepository(database)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	created, updated, skipped, err := importCSV(ctx, projects, f, *update)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	total, err := projects.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count projects")
	}

	log.Info().
		Int("created", created).
		Int("updated", updated).
		Int("skipped", skipped).
		Int64("total", total).
		Msg("import complete")
}

// importCSV reads the register rows and upserts them. A row is identified by
// title + constituency_code + source_doc_ref; matches are updated only when
// updateExisting is set.
func importCSV(ctx context.Context, projects *repository.ProjectRepository, r io.Reader, updateExisting bool) (created, updated, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("read header: %w", err)
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))] = i
	}
	for _, required := range []string{"title", "constituency_code"} {
		if _, ok := columns[required]; !ok {
			return 0, 0, 0, fmt.Errorf("missing required column %q", required)
		}
	}

	lineNo := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return created, updated, skipped, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		lineNo++

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		title := field("title")
		code := field("constituency_code")
		if title == "" || code == "" {
			skipped++
			continue
		}

		project, err := rowToProject(field, title, code)
		if err != nil {
			return created, updated, skipped, fmt.Errorf("line %d: %w", lineNo, err)
		}

		existing, err := projects.FindByImportKey(ctx, title, code, project.SourceDocRef)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, updated, skipped, fmt.Errorf("line %d: %w", lineNo, err)
		}

		switch {
		case existing == nil || errors.Is(err, gorm.ErrRecordNotFound):
			if _, err := projects.Create(ctx, *project); err != nil {
				return created, updated, skipped, fmt.Errorf("line %d: %w", lineNo, err)
			}
			created++
		case updateExisting:
			project.ID = existing.ID
			if _, err := projects.Update(ctx, *project); err != nil {
				return created, updated, skipped, fmt.Errorf("line %d: %w", lineNo, err)
			}
			updated++
		default:
			skipped++
		}
	}
	return created, updated, skipped, nil
}

func rowToProject(field func(string) string, title, code string) (*model.Project, error) {
	category := field("category")
	if category == "" {
		category = string(model.CategoryOther)
	}
	if !model.ValidCategory(category) {
		return nil, fmt.Errorf("invalid category %q", category)
	}

	status := field("status")
	if status == "" {
		status = string(model.StatusPlanned)
	}
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	budget, err := parseFloat(field("budget"))
	if err != nil {
		return nil, fmt.Errorf("invalid budget: %w", err)
	}

	spent, err := parseOptionalFloat(field("spent"))
	if err != nil {
		return nil, fmt.Errorf("invalid spent: %w", err)
	}
	progress, err := parseOptionalFloat(field("progress"))
	if err != nil {
		return nil, fmt.Errorf("invalid progress: %w", err)
	}

	startDate, err := parseOptionalDate(field("start_date"))
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	completionDate, err := parseOptionalDate(field("completion_date"))
	if err != nil {
		return nil, fmt.Errorf("invalid completion_date: %w", err)
	}

	return &model.Project{
		Title:            title,
		Description:      optional(field("description")),
		Category:         model.ProjectCategory(category),
		Status:           model.ProjectStatus(status),
		Budget:           budget,
		Spent:            spent,
		Progress:         progress,
		ConstituencyCode: code,
		StartDate:        startDate,
		CompletionDate:   completionDate,
		IsMock:           parseBool(field("is_mock")),
		SourceName:       optional(field("source_name")),
		SourceURL:        optional(field("source_url")),
		SourceDocRef:     optional(field("source_doc_ref")),
	}, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func parseFloat(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}

func parseOptionalFloat(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
