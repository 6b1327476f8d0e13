package install

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the file every skill must carry at its root.
const ManifestFile = "SKILL.md"

// ErrMissingManifest is returned when the source has no SKILL.md.
var ErrMissingManifest = errors.New("SKILL.md not found")

// Metadata is the YAML front matter of SKILL.md
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// DetectName returns the skill name from the SKILL.md front matter in dir,
// or fallback when the front matter is absent or does not set a name.
func DetectName(dir, fallback string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w in %s", ErrMissingManifest, dir)
		}
		return "", fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	}

	if meta, ok := parseFrontMatter(data); ok {
		if name := strings.TrimSpace(meta.Name); name != "" {
			return name, nil
		}
	}

	if fallback == "" || fallback == "." || fallback == string(filepath.Separator) {
		return "", fmt.Errorf("cannot determine skill name for %s", dir)
	}
	return fallback, nil
}

// parseFrontMatter decodes the block between the leading "---" lines.
func parseFrontMatter(data []byte) (Metadata, bool) {
	var meta Metadata

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return meta, false
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		return meta, false
	}

	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &meta); err != nil {
		return meta, false
	}
	return meta, true
}
