package scanner

import (
	"archive/zip"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core"
)

var (
	ErrArchiveTooLarge    = errors.New("archive exceeds size limit")
	ErrDecompressionBomb  = errors.New("possible decompression bomb")
	ErrCorruptArchive     = errors.New("invalid zip archive")
	ErrUnsafeArchiveEntry = errors.New("unsafe archive entry")
)

const mib = 1024 * 1024

// ScanArchive validates, extracts and scans a zip archive. Guard failures
// and structural errors force a DANGER verdict without extraction.
func (s *Scanner) ScanArchive(path string) *core.ScanResult {
	result := core.NewScanResult(path)
	if err := s.scanArchive(path, result); err != nil {
		s.log.Debugw("archive rejected", "path", path, "error", err)
		result.Fail(err)
		return result
	}
	result.Finalize()
	return result
}

func (s *Scanner) scanArchive(path string, result *core.ScanResult) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access archive: %w", err)
	}

	limit := s.policy.ArchiveLimit()
	if info.Size() > limit {
		return fmt.Errorf("%w (%s): %s", ErrArchiveTooLarge, formatMiB(limit), formatMiB(info.Size()))
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}
	defer zr.Close()

	if err := CheckDeclaredSize(&zr.Reader, info.Size(), limit); err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp(s.policy.TempDir, "skill_scan_")
	if err != nil {
		return fmt.Errorf("failed to create extraction directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			s.log.Errorw("failed to remove extraction directory", "path", tmpDir, "error", err)
		}
	}()

	if err := Extract(&zr.Reader, tmpDir, limit); err != nil {
		return err
	}

	extracted := core.NewScanResult(tmpDir)
	if err := s.walk(tmpDir, extracted); err != nil {
		return err
	}

	result.FileCount = extracted.FileCount
	result.TotalLines = extracted.TotalLines
	result.Findings = extracted.Findings
	result.Errors = extracted.Errors
	return nil
}

// CheckDeclaredSize sums the uncompressed sizes in the central directory
// and rejects archives whose total exceeds limit.
func CheckDeclaredSize(zr *zip.Reader, compressedSize, limit int64) error {
	var total uint64
	for _, f := range zr.File {
		// saturate so forged sizes cannot wrap the sum below the limit
		if f.UncompressedSize64 > math.MaxUint64-total {
			total = math.MaxUint64
			break
		}
		total += f.UncompressedSize64
	}
	if total <= uint64(limit) {
		return nil
	}

	ratio := float64(total) / float64(max(compressedSize, 1))
	return fmt.Errorf("%w: declared uncompressed size %s (expansion ratio %.0fx)",
		ErrDecompressionBomb, formatMiB(int64(min(total, uint64(1<<62)))), ratio)
}

func formatMiB(n int64) string {
	return fmt.Sprintf("%.1f MiB", float64(n)/mib)
}
