package security

// DefaultMaxArchiveSize is the ceiling for both the compressed archive size
// and the declared uncompressed size of its contents.
const DefaultMaxArchiveSize int64 = 100 * 1024 * 1024

// ScanPolicy defines the resource limits of a scan.
type ScanPolicy struct {
	// MaxArchiveSize bounds the on-disk archive size and the sum of the
	// uncompressed entry sizes, in bytes.
	MaxArchiveSize int64 `mapstructure:"max_archive_size"`

	// TempDir is the parent directory for extraction. Empty means the
	// system temporary directory.
	TempDir string `mapstructure:"temp_dir"`
}

// DefaultPolicy returns the default scan policy.
func DefaultPolicy() *ScanPolicy {
	return &ScanPolicy{
		MaxArchiveSize: DefaultMaxArchiveSize,
	}
}

// ArchiveLimit returns the effective archive ceiling.
func (p *ScanPolicy) ArchiveLimit() int64 {
	if p == nil || p.MaxArchiveSize <= 0 {
		return DefaultMaxArchiveSize
	}
	return p.MaxArchiveSize
}
