package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core/security"
)

const (
	ConfigFileName = "config"
	ConfigFileType = "yaml"
	AppDirName     = ".skillscan"
	EnvPrefix      = "SKILLSCAN"
)

var config *Config

// Config holds the application configuration
type Config struct {
	Scan    security.ScanPolicy `mapstructure:"scan"`
	Install InstallConfig       `mapstructure:"install"`
	Report  ReportConfig        `mapstructure:"report"`
	Log     LogConfig           `mapstructure:"log"`
}

// InstallConfig holds install-gate configuration
type InstallConfig struct {
	SkillsDir string `mapstructure:"skills_dir"`
}

// ReportConfig holds report rendering configuration
type ReportConfig struct {
	Format         string `mapstructure:"format"`
	RenderMarkdown bool   `mapstructure:"render_markdown"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// GetConfigDir returns the skillscan config directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, AppDirName), nil
}

// InitConfig loads configuration from configPath, or from config.yaml in
// the config directory or the working directory when configPath is empty.
// A missing default config file is not an error.
func InitConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileType)
		if configDir, err := GetConfigDir(); err == nil {
			v.AddConfigPath(configDir)
		}
		v.AddConfigPath(".")
	}

	// SKILLSCAN_INSTALL_SKILLS_DIR overrides install.skills_dir
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	skillsDir, err := security.ExpandHome(cfg.Install.SkillsDir)
	if err != nil {
		return nil, err
	}
	cfg.Install.SkillsDir = skillsDir

	config = &cfg
	return config, nil
}

// GetConfig returns the loaded config
func GetConfig() *Config {
	return config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scan.max_archive_size", security.DefaultMaxArchiveSize)
	v.SetDefault("scan.temp_dir", "")

	v.SetDefault("install.skills_dir", "~/.claude/skills")

	v.SetDefault("report.format", "text")
	v.SetDefault("report.render_markdown", true)

	v.SetDefault("log.debug", false)
}
