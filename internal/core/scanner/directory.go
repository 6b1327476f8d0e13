package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core"
	"github.com/Lin-Jiong-HDU/skillscan/internal/core/security"
)

// ErrUnreadableRoot is recorded when the scan root cannot be walked.
var ErrUnreadableRoot = errors.New("cannot read scan root")

// scanExtensions are the file extensions eligible for scanning.
var scanExtensions = map[string]bool{
	".md": true, ".txt": true,
	".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".sh": true, ".bash": true, ".zsh": true, ".fish": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true,
	".html": true, ".css": true, ".scss": true,
	".rb": true, ".go": true, ".rs": true, ".java": true, ".php": true,
	".env": true, ".cfg": true, ".ini": true, ".conf": true,
}

// scanFileNames are extension-less files that are always scanned.
var scanFileNames = map[string]bool{
	"Makefile":    true,
	"Dockerfile":  true,
	"Vagrantfile": true,
	"Gemfile":     true,
	"Rakefile":    true,
	"Procfile":    true,
	".env":        true,
}

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"__pycache__":   true,
	"node_modules":  true,
	".git":          true,
	".venv":         true,
	"venv":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
	"dist":          true,
	"build":         true,
}

// ShouldScanFile reports whether a file name is eligible for scanning.
func ShouldScanFile(name string) bool {
	ext := filepath.Ext(name)
	if scanExtensions[strings.ToLower(ext)] {
		return true
	}
	return ext == "" && scanFileNames[name]
}

// ScanDirectory scans every eligible file under root.
func (s *Scanner) ScanDirectory(root string) *core.ScanResult {
	result := core.NewScanResult(root)
	if err := s.walk(root, result); err != nil {
		result.Fail(err)
		return result
	}
	result.Finalize()
	return result
}

// walk accumulates counts, findings and per-file errors into result.
// Only a failure to read root itself is returned.
func (s *Scanner) walk(root string, result *core.ScanResult) error {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadableRoot, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadableRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrUnreadableRoot, root)
	}

	checker, err := security.NewPathChecker(resolved)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadableRoot, err)
	}

	return filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == resolved {
				return fmt.Errorf("%w: %v", ErrUnreadableRoot, err)
			}
			s.log.Debugw("walk error", "path", path, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", relativePath(resolved, path), err))
			return nil
		}

		if d.IsDir() {
			if path != resolved && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		if !ShouldScanFile(d.Name()) {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if !checker.Contains(path) {
				s.log.Debugw("skipping symlink leaving scan root", "path", path)
				return nil
			}
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		result.FileCount++
		findings, lines := s.ScanFile(path, resolved)
		result.TotalLines += lines
		result.Findings = append(result.Findings, findings...)
		return nil
	})
}
