package security

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPathChecker_Contains(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "scripts"), 0755); err != nil {
		t.Fatal(err)
	}
	checker, err := NewPathChecker(root)
	if err != nil {
		t.Fatalf("NewPathChecker failed: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		contains bool
	}{
		{"root itself", root, true},
		{"existing subdir", filepath.Join(root, "scripts"), true},
		{"missing file under root", filepath.Join(root, "scripts", "new.sh"), true},
		{"parent of root", filepath.Dir(root), false},
		{"sibling with shared prefix", root + "-other", false},
		{"system path", "/etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checker.Contains(tt.path)
			if result != tt.contains {
				t.Errorf("Contains(%s) = %v, want %v", tt.path, result, tt.contains)
			}
		})
	}
}

func TestPathChecker_ContainsSymlinkEscape(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	secret := filepath.Join(outside, "id_rsa")
	if err := os.WriteFile(secret, []byte("key"), 0600); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "innocent.md")
	if err := os.Symlink(secret, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	checker, err := NewPathChecker(root)
	if err != nil {
		t.Fatal(err)
	}
	if checker.Contains(link) {
		t.Errorf("Contains(%s) = true, want false for symlink leaving root", link)
	}
}

func TestPathChecker_Join(t *testing.T) {
	root := t.TempDir()
	checker, err := NewPathChecker(root)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		entry   string
		wantErr bool
	}{
		{"plain file", "SKILL.md", false},
		{"nested file", "scripts/run.sh", false},
		{"dot segments inside root", "scripts/../SKILL.md", false},
		{"parent escape", "../evil.sh", true},
		{"deep escape", "a/../../evil.sh", true},
		{"absolute path", "/etc/cron.d/evil", true},
		{"bare parent", "..", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.Join(tt.entry)
			if tt.wantErr {
				if !errors.Is(err, ErrPathEscapesRoot) {
					t.Errorf("Join(%q) error = %v, want ErrPathEscapesRoot", tt.entry, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Join(%q) unexpected error: %v", tt.entry, err)
			}
			if !checker.Contains(got) {
				t.Errorf("Join(%q) = %s, not under root %s", tt.entry, got, checker.Root())
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandHome("~/.claude/skills")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".claude", "skills"); got != want {
		t.Errorf("ExpandHome = %s, want %s", got, want)
	}

	got, err = ExpandHome("/opt/skills")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/opt/skills" {
		t.Errorf("ExpandHome changed absolute path: %s", got)
	}
}

func TestScanPolicy_ArchiveLimit(t *testing.T) {
	if got := DefaultPolicy().ArchiveLimit(); got != DefaultMaxArchiveSize {
		t.Errorf("ArchiveLimit() = %d, want %d", got, DefaultMaxArchiveSize)
	}
	if got := (&ScanPolicy{}).ArchiveLimit(); got != DefaultMaxArchiveSize {
		t.Errorf("zero policy ArchiveLimit() = %d, want default", got)
	}
	if got := (&ScanPolicy{MaxArchiveSize: 10}).ArchiveLimit(); got != 10 {
		t.Errorf("ArchiveLimit() = %d, want 10", got)
	}
	var nilPolicy *ScanPolicy
	if got := nilPolicy.ArchiveLimit(); got != DefaultMaxArchiveSize {
		t.Errorf("nil policy ArchiveLimit() = %d, want default", got)
	}
}
