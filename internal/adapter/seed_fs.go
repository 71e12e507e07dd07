// Package adapter contains filesystem and persistence adapters for the
// seedstrip CLI.
package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

// SeedFSAdapter abstracts the filesystem operations the workflow relies on
// when locating and rewriting seed files. It intentionally hides direct os
// access so the workflow logic can be tested against fixture trees.
type SeedFSAdapter interface {
	// Discover walks the provided roots and returns seed files whose base
	// name matches any of the glob patterns. Paths matching an exclude
	// expression are dropped. A root naming a file directly is taken
	// as-is. Results are deduplicated and sorted.
	Discover(ctx context.Context, roots []m.Path, globs []string, exclude ...string) ([]m.SeedFile, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm fs.FileMode) error

	// FileInfo returns metadata for a path so the workflow can distinguish
	// files from directories when necessary.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// LocalSeedFSAdapter backs SeedFSAdapter with the local filesystem.
type LocalSeedFSAdapter struct{}

// NewLocalSeedFSAdapter constructs a LocalSeedFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSeedFSAdapter() *LocalSeedFSAdapter {
	return &LocalSeedFSAdapter{}
}

// Discover walks roots and collects files whose base name matches a glob.
func (a *LocalSeedFSAdapter) Discover(
	ctx context.Context,
	roots []m.Path,
	globs []string,
	exclude ...string,
) ([]m.SeedFile, error) {
	patterns, err := basePatterns(globs)
	if err != nil {
		return nil, err
	}

	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]m.SeedFile)

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(string(root))
		if err != nil {
			return nil, fmt.Errorf("stat root %s: %w", root, err)
		}

		if !info.IsDir() {
			collect(seen, string(root), info.Mode(), excludes, nil)
			continue
		}

		walkErr := filepath.WalkDir(string(root), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if cErr := ctx.Err(); cErr != nil {
				return cErr
			}

			if d.IsDir() {
				if skipDirName(filepath.Base(path)) {
					return filepath.SkipDir
				}

				return nil
			}

			info, infoErr := d.Info()
			if infoErr != nil {
				return infoErr
			}

			collect(seen, path, info.Mode(), excludes, patterns)

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk %s: %w", root, walkErr)
		}
	}

	files := make([]m.SeedFile, 0, len(seen))
	for _, file := range seen {
		files = append(files, file)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Origin < files[j].Origin })

	return files, nil
}

// ReadFile loads file contents from disk.
func (a *LocalSeedFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSeedFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte, perm fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSeedFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// collect adds path to seen unless an exclude expression rejects it or the
// base name misses every pattern. A nil pattern list admits any base name,
// which is how directly named files bypass matching.
func collect(seen map[string]m.SeedFile, path string, mode fs.FileMode, excludes []*regexp.Regexp, patterns []string) {
	if matchesAny(excludes, path) {
		return
	}

	base := filepath.Base(path)
	if patterns != nil && !baseMatches(patterns, base) {
		return
	}

	clean := filepath.Clean(path)
	seen[clean] = m.SeedFile{Origin: m.Path(clean), Mode: mode.Perm()}
}

// basePatterns reduces globs to their base-name component and validates
// them. Directory prefixes are redundant because discovery already walks
// the whole tree.
func basePatterns(globs []string) ([]string, error) {
	patterns := make([]string, 0, len(globs))

	for _, glob := range globs {
		base := filepath.Base(glob)
		if _, err := filepath.Match(base, "probe"); err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", glob, err)
		}

		patterns = append(patterns, base)
	}

	return patterns, nil
}

func baseMatches(patterns []string, base string) bool {
	for _, pattern := range patterns {
		// Patterns are validated up front, so the error is unreachable.
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}

	return false
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	excludes := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", expr, err)
		}

		excludes = append(excludes, re)
	}

	return excludes, nil
}

func matchesAny(excludes []*regexp.Regexp, path string) bool {
	for _, re := range excludes {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// skipDirName filters directories that never hold seed files.
func skipDirName(name string) bool {
	return name == ".git" || name == "vendor" || name == "node_modules"
}
