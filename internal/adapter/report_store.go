package adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

const (
	reportFilePrefix = "run-"
	reportFileSuffix = ".yaml"
	reportTimeLayout = "20060102-150405"

	reportDirPerm = 0o750
)

// ReportStore persists run reports and loads them back for viewing.
type ReportStore interface {
	// SaveReport writes one run report into dir and returns the path of
	// the file it created. The directory is created when missing.
	SaveReport(ctx context.Context, dir m.Path, report m.RunReport) (m.Path, error)

	// LoadReports reads every run report in dir, oldest first. A missing
	// directory yields no reports rather than an error.
	LoadReports(ctx context.Context, dir m.Path) ([]m.RunReport, error)
}

// LocalReportStore stores reports as YAML files on the local filesystem.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveReport writes the report as a timestamped YAML file.
func (s *LocalReportStore) SaveReport(ctx context.Context, dir m.Path, report m.RunReport) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(string(dir), reportDirPerm); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("marshal run report: %w", err)
	}

	// CreateTemp keeps concurrent runs in the same second from colliding.
	pattern := reportFilePrefix + report.StartedAt.Format(reportTimeLayout) + "-*" + reportFileSuffix

	f, err := os.CreateTemp(string(dir), pattern)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()

		return "", fmt.Errorf("write report file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report file: %w", err)
	}

	return m.Path(f.Name()), nil
}

// LoadReports reads every report file in dir.
func (s *LocalReportStore) LoadReports(ctx context.Context, dir m.Path) ([]m.RunReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(string(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read reports directory: %w", err)
	}

	var reports []m.RunReport

	for _, entry := range entries {
		if entry.IsDir() || !isReportFile(entry.Name()) {
			continue
		}

		path := filepath.Join(string(dir), entry.Name())

		// #nosec G304 - path comes from the reports directory listing
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read report %s: %w", entry.Name(), err)
		}

		var report m.RunReport
		if err := yaml.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("parse report %s: %w", entry.Name(), err)
		}

		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].StartedAt.Before(reports[j].StartedAt)
	})

	return reports, nil
}

func isReportFile(name string) bool {
	return strings.HasPrefix(name, reportFilePrefix) && strings.HasSuffix(name, reportFileSuffix)
}
