package scanner

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core/security"
)

// Extract writes the regular files and directories of zr under dest.
// Entries that would land outside dest are rejected, symlinks are skipped,
// and no more than limit bytes are written in total.
func Extract(zr *zip.Reader, dest string, limit int64) error {
	checker, err := security.NewPathChecker(dest)
	if err != nil {
		return err
	}

	var written int64
	for _, f := range zr.File {
		target, err := checker.Join(f.Name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsafeArchiveEntry, err)
		}

		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", f.Name, err)
			}
			continue
		case !mode.IsRegular():
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(f.Name), err)
		}

		n, err := extractFile(f, target, limit-written)
		written += n
		if err != nil {
			return err
		}
	}

	return nil
}

func extractFile(f *zip.File, target string, budget int64) (n int64, err error) {
	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrCorruptArchive, f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", f.Name, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to write %s: %w", f.Name, cerr)
		}
	}()

	n, err = io.Copy(out, io.LimitReader(rc, budget+1))
	if err != nil {
		if errors.Is(err, zip.ErrChecksum) || errors.Is(err, zip.ErrFormat) {
			return n, fmt.Errorf("%w: %s: %v", ErrCorruptArchive, f.Name, err)
		}
		return n, fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	if n > budget {
		return n, fmt.Errorf("%w: extracted content exceeds the size limit", ErrDecompressionBomb)
	}
	return n, nil
}
