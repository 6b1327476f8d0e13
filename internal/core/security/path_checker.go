package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathEscapesRoot is returned when a path resolves outside its root.
var ErrPathEscapesRoot = errors.New("path escapes root")

// PathChecker confines paths to a root directory.
type PathChecker struct {
	root string
}

// NewPathChecker creates a checker for root. The root is canonicalized once.
func NewPathChecker(root string) (*PathChecker, error) {
	canonical, err := canonicalizePath(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	return &PathChecker{root: canonical}, nil
}

// Root returns the canonical root.
func (pc *PathChecker) Root() string {
	return pc.root
}

// Contains reports whether checkPath is the root or lies under it after
// symlink resolution.
func (pc *PathChecker) Contains(checkPath string) bool {
	canonicalPath, err := canonicalizePath(checkPath)
	if err != nil {
		return false
	}

	return canonicalPath == pc.root ||
		strings.HasPrefix(canonicalPath, pc.root+string(filepath.Separator))
}

// Join resolves a relative name (archive entry, skill name) under the root.
// Absolute names and names that climb out of the root are rejected.
func (pc *PathChecker) Join(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrPathEscapesRoot)
	}

	slashed := filepath.ToSlash(name)
	if strings.HasPrefix(slashed, "/") || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("%w: %s is absolute", ErrPathEscapesRoot, name)
	}

	cleaned := filepath.Clean(filepath.FromSlash(slashed))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapesRoot, name)
	}

	joined := filepath.Join(pc.root, cleaned)
	if !pc.Contains(joined) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapesRoot, name)
	}
	return joined, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// canonicalizePath expands home directory, converts to absolute path,
// and resolves symlinks to prevent bypass via symlink attacks.
func canonicalizePath(path string) (string, error) {
	expandedPath, err := ExpandHome(path)
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(expandedPath)
	if err != nil {
		return "", err
	}

	// Walk up the path until we find a directory that exists
	canonicalPath, err := resolveSymlinksWalkUp(absPath)
	if err != nil {
		return absPath, nil
	}

	return canonicalPath, nil
}

// resolveSymlinksWalkUp walks up the directory tree resolving symlinks
// until we find a path that exists, then rebuilds the path.
func resolveSymlinksWalkUp(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}

	parent := filepath.Dir(path)
	base := filepath.Base(path)

	if parent == path {
		return path, nil
	}

	resolvedParent, err := resolveSymlinksWalkUp(parent)
	if err != nil {
		return "", err
	}

	return filepath.Join(resolvedParent, base), nil
}
