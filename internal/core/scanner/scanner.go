// Package scanner applies the rule registry to files, directory trees and
// zip archives and aggregates the findings into a ScanResult.
package scanner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core"
	"github.com/Lin-Jiong-HDU/skillscan/internal/core/rules"
	"github.com/Lin-Jiong-HDU/skillscan/internal/core/security"
)

var (
	// ErrPathNotFound is returned by ScanPath when the target does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrUnsupportedInput is returned by ScanPath for files that are not archives.
	ErrUnsupportedInput = errors.New("unsupported input")
)

// Scanner coordinates file, directory and archive scans. It holds no
// per-scan state and may be reused.
type Scanner struct {
	registry *rules.Registry
	policy   *security.ScanPolicy
	log      *zap.SugaredLogger
}

// New creates a scanner. Nil arguments select the defaults.
func New(registry *rules.Registry, policy *security.ScanPolicy, log *zap.SugaredLogger) *Scanner {
	if registry == nil {
		registry = rules.Default()
	}
	if policy == nil {
		policy = security.DefaultPolicy()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Scanner{
		registry: registry,
		policy:   policy,
		log:      log,
	}
}

// ScanPath dispatches target to ScanDirectory or ScanArchive.
func (s *Scanner) ScanPath(target string) (*core.ScanResult, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, target)
	}

	if info.IsDir() {
		return s.ScanDirectory(target), nil
	}
	if IsArchive(target) {
		return s.ScanArchive(target), nil
	}
	return nil, fmt.Errorf("%w: %s is neither a directory nor a .zip/.skill archive", ErrUnsupportedInput, target)
}

// IsArchive reports whether path names a zip archive, by extension or by
// its magic bytes.
func IsArchive(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".skill":
		return true
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false
	}
	return filetype.Is(head[:n], "zip")
}
