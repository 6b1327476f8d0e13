package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core/security"
)

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir failed: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("Failed to get home dir: %v", err)
	}

	expected := filepath.Join(home, AppDirName)
	if dir != expected {
		t.Errorf("Expected %s, got %s", expected, dir)
	}
}

func TestInitConfig_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	testChdir(t, tmpDir)

	cfg, err := InitConfig("")
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	if cfg.Scan.MaxArchiveSize != security.DefaultMaxArchiveSize {
		t.Errorf("Expected max archive size %d, got %d", security.DefaultMaxArchiveSize, cfg.Scan.MaxArchiveSize)
	}
	if want := filepath.Join(tmpDir, ".claude", "skills"); cfg.Install.SkillsDir != want {
		t.Errorf("Expected skills dir %s, got %s", want, cfg.Install.SkillsDir)
	}
	if cfg.Report.Format != "text" {
		t.Errorf("Expected report format 'text', got '%s'", cfg.Report.Format)
	}
	if !cfg.Report.RenderMarkdown {
		t.Error("Expected render_markdown to default to true")
	}
	if cfg.Log.Debug {
		t.Error("Expected debug logging to be off by default")
	}
	if GetConfig() != cfg {
		t.Error("Expected GetConfig to return the loaded config")
	}
}

func TestInitConfig_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configPath := filepath.Join(tmpDir, "custom.yaml")
	content := "scan:\n  max_archive_size: 2048\ninstall:\n  skills_dir: /opt/skills\nreport:\n  format: sarif\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	if cfg.Scan.MaxArchiveSize != 2048 {
		t.Errorf("Expected max archive size 2048, got %d", cfg.Scan.MaxArchiveSize)
	}
	if cfg.Install.SkillsDir != "/opt/skills" {
		t.Errorf("Expected skills dir /opt/skills, got %s", cfg.Install.SkillsDir)
	}
	if cfg.Report.Format != "sarif" {
		t.Errorf("Expected report format 'sarif', got '%s'", cfg.Report.Format)
	}
}

func TestInitConfig_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	testChdir(t, tmpDir)
	t.Setenv("SKILLSCAN_INSTALL_SKILLS_DIR", "/srv/skills")

	cfg, err := InitConfig("")
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	if cfg.Install.SkillsDir != "/srv/skills" {
		t.Errorf("Expected env override /srv/skills, got %s", cfg.Install.SkillsDir)
	}
}

func TestInitConfig_MissingExplicitFile(t *testing.T) {
	_, err := InitConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing explicit config file")
	}
}

// testChdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir for Go < 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}
