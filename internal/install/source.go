// Package install copies a scanned skill into the skills directory once it
// has passed the scan gate.
package install

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core/scanner"
	"github.com/Lin-Jiong-HDU/skillscan/internal/core/security"
)

// Source is a skill directory ready to be installed. Archive sources live
// in a temporary directory that Close removes.
type Source struct {
	// Dir is the directory holding SKILL.md, or the best candidate for it.
	Dir string
	// FallbackName is used when the manifest does not name the skill.
	FallbackName string

	tmpDir string
	log    *zap.SugaredLogger
}

// ResolveSource prepares target for installation. Directories are used in
// place. Archives are extracted with the same limits as a scan into a
// temporary directory owned by the returned Source.
func ResolveSource(target string, policy *security.ScanPolicy, log *zap.SugaredLogger) (*Source, error) {
	if policy == nil {
		policy = security.DefaultPolicy()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("cannot access install source: %w", err)
	}
	if info.IsDir() {
		return &Source{Dir: target, FallbackName: filepath.Base(target), log: log}, nil
	}

	src := &Source{
		FallbackName: strings.TrimSuffix(filepath.Base(target), filepath.Ext(target)),
		log:          log,
	}
	if err := src.extract(target, policy); err != nil {
		src.Close()
		return nil, err
	}
	return src, nil
}

func (s *Source) extract(archive string, policy *security.ScanPolicy) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("%w: %v", scanner.ErrCorruptArchive, err)
	}
	defer zr.Close()

	s.tmpDir, err = os.MkdirTemp(policy.TempDir, "skill_install_")
	if err != nil {
		return fmt.Errorf("failed to create extraction directory: %w", err)
	}
	if err := scanner.Extract(&zr.Reader, s.tmpDir, policy.ArchiveLimit()); err != nil {
		return err
	}

	s.Dir = s.tmpDir
	if sub, ok := singleSkillDir(s.tmpDir); ok {
		s.Dir = sub
		s.FallbackName = filepath.Base(sub)
	}
	return nil
}

// singleSkillDir finds the common layout where the archive wraps the skill
// in one top-level directory.
func singleSkillDir(root string) (string, bool) {
	if _, err := os.Stat(filepath.Join(root, ManifestFile)); err == nil {
		return "", false
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != "__MACOSX" {
			dirs = append(dirs, e.Name())
		}
	}
	if len(dirs) != 1 {
		return "", false
	}

	sub := filepath.Join(root, dirs[0])
	if _, err := os.Stat(filepath.Join(sub, ManifestFile)); err != nil {
		return "", false
	}
	return sub, true
}

// Close removes the temporary extraction directory, if any.
func (s *Source) Close() error {
	if s.tmpDir == "" {
		return nil
	}
	dir := s.tmpDir
	s.tmpDir = ""
	if err := os.RemoveAll(dir); err != nil {
		s.log.Errorw("failed to remove extraction directory", "path", dir, "error", err)
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	return nil
}
