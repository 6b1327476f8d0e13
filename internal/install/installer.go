package install

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core/security"
)

// ErrInvalidName is returned for skill names that do not map to a single
// directory inside the skills directory.
var ErrInvalidName = errors.New("invalid skill name")

// ExcludePatterns are base-name globs left out of an installed skill.
var ExcludePatterns = []string{".DS_Store", "__pycache__", "*.pyc"}

var excludeGlobs = compileGlobs(ExcludePatterns)

func compileGlobs(patterns []string) []glob.Glob {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		globs = append(globs, glob.MustCompile(p))
	}
	return globs
}

// Excluded reports whether a file or directory is left out of the copy.
func Excluded(name string) bool {
	for _, g := range excludeGlobs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Installer copies skills into the skills directory
type Installer struct {
	skillsDir string
	log       *zap.SugaredLogger
}

// NewInstaller creates an installer targeting skillsDir
func NewInstaller(skillsDir string, log *zap.SugaredLogger) *Installer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Installer{skillsDir: skillsDir, log: log}
}

// Install copies sourceDir to <skillsDir>/<name>, replacing any previous
// installation, and returns the destination. The tree is staged next to
// the destination first so a failed copy leaves the old install intact.
func (i *Installer) Install(sourceDir, name string) (string, error) {
	if err := os.MkdirAll(i.skillsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create skills directory: %w", err)
	}

	checker, err := security.NewPathChecker(i.skillsDir)
	if err != nil {
		return "", err
	}
	dest, err := checker.Join(name)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidName, name, err)
	}
	if filepath.Dir(dest) != checker.Root() {
		return "", fmt.Errorf("%w %q: must be a single path element", ErrInvalidName, name)
	}

	staging := filepath.Join(checker.Root(), ".staging-"+uuid.NewString())
	if err := copyTree(sourceDir, staging, i.log); err != nil {
		i.discard(staging)
		return "", err
	}

	var backup string
	if _, err := os.Lstat(dest); err == nil {
		backup = filepath.Join(checker.Root(), ".old-"+uuid.NewString())
		if err := os.Rename(dest, backup); err != nil {
			i.discard(staging)
			return "", fmt.Errorf("failed to replace existing skill: %w", err)
		}
	}

	if err := os.Rename(staging, dest); err != nil {
		i.discard(staging)
		if backup != "" {
			i.restore(backup, dest)
		}
		return "", fmt.Errorf("failed to install skill: %w", err)
	}

	if backup != "" {
		if err := os.RemoveAll(backup); err != nil {
			i.log.Warnw("failed to remove previous installation", "path", backup, "error", err)
		}
	}

	i.log.Debugw("skill installed", "name", name, "dest", dest)
	return dest, nil
}

func (i *Installer) discard(staging string) {
	if err := os.RemoveAll(staging); err != nil {
		i.log.Errorw("failed to remove staging directory", "path", staging, "error", err)
	}
}

// restore moves a previous installation back after a failed swap.
func (i *Installer) restore(backup, dest string) {
	if err := os.Rename(backup, dest); err != nil {
		i.log.Errorw("failed to restore previous installation", "backup", backup, "dest", dest, "error", err)
	}
}

// copyTree copies regular files and directories from src to dst. Symlinks
// and excluded names are skipped.
func copyTree(src, dst string, log *zap.SugaredLogger) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if rel != "." && Excluded(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case d.IsDir():
			return os.MkdirAll(target, 0755)
		case d.Type()&os.ModeSymlink != 0:
			log.Debugw("skipping symlink", "path", path)
			return nil
		case !d.Type().IsRegular():
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(src, dst string, perm os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to write %s: %w", dst, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}
