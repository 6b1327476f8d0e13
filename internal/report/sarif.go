package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core"
	"github.com/Lin-Jiong-HDU/skillscan/internal/core/rules"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
)

type SarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []SarifRun `json:"runs"`
}

type SarifRun struct {
	Tool        SarifTool         `json:"tool"`
	Results     []SarifResult     `json:"results"`
	Invocations []SarifInvocation `json:"invocations,omitempty"`
}

type SarifTool struct {
	Driver SarifDriver `json:"driver"`
}

type SarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []SarifRule `json:"rules,omitempty"`
}

type SarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription SarifMessage `json:"shortDescription"`
}

type SarifResult struct {
	RuleID    string          `json:"ruleId"`
	Message   SarifMessage    `json:"message"`
	Level     string          `json:"level"` // error, warning, note
	Locations []SarifLocation `json:"locations"`
}

type SarifMessage struct {
	Text string `json:"text"`
}

type SarifLocation struct {
	PhysicalLocation SarifPhysicalLocation `json:"physicalLocation"`
}

type SarifPhysicalLocation struct {
	ArtifactLocation SarifArtifactLocation `json:"artifactLocation"`
	Region           SarifRegion           `json:"region"`
}

type SarifArtifactLocation struct {
	URI string `json:"uri"`
}

type SarifRegion struct {
	StartLine int `json:"startLine"`
}

// SarifInvocation carries structural scan errors as tool notifications.
type SarifInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []SarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type SarifNotification struct {
	Level   string       `json:"level"`
	Message SarifMessage `json:"message"`
}

// NewSarifLog converts a result into a SARIF 2.1.0 log. Only rules that
// produced a result are listed in the driver.
func NewSarifLog(result *core.ScanResult, registry *rules.Registry, toolName, toolVersion string) SarifLog {
	findings := make([]core.Finding, len(result.Findings))
	copy(findings, result.Findings)
	SortFindings(findings)

	used := map[string]bool{}
	results := make([]SarifResult, 0, len(findings))
	for _, f := range findings {
		used[f.RuleID] = true

		fileURI := toURI(f.File)
		if fileURI == "" {
			fileURI = "UNKNOWN"
		}
		start := f.Line
		if start <= 0 {
			start = 1
		}

		results = append(results, SarifResult{
			RuleID:  f.RuleID,
			Level:   sevToLevel(f.Severity),
			Message: SarifMessage{Text: strings.TrimSpace(f.Message + codeBlockNote(f))},
			Locations: []SarifLocation{{
				PhysicalLocation: SarifPhysicalLocation{
					ArtifactLocation: SarifArtifactLocation{URI: fileURI},
					Region:           SarifRegion{StartLine: start},
				},
			}},
		})
	}

	var descriptors []SarifRule
	if registry != nil {
		for _, rule := range registry.Rules() {
			if !used[rule.ID] {
				continue
			}
			descriptors = append(descriptors, SarifRule{
				ID:               rule.ID,
				Name:             string(rule.Category),
				ShortDescription: SarifMessage{Text: rule.Message},
			})
		}
	}

	run := SarifRun{
		Tool: SarifTool{Driver: SarifDriver{
			Name:    toolName,
			Version: toolVersion,
			Rules:   descriptors,
		}},
		Results: results,
	}
	if len(result.Errors) > 0 {
		inv := SarifInvocation{ExecutionSuccessful: false}
		for _, e := range result.Errors {
			inv.Notifications = append(inv.Notifications, SarifNotification{
				Level:   "error",
				Message: SarifMessage{Text: e},
			})
		}
		run.Invocations = []SarifInvocation{inv}
	}

	return SarifLog{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs:    []SarifRun{run},
	}
}

// WriteSARIF writes the SARIF log for result to w.
func WriteSARIF(w io.Writer, result *core.ScanResult, registry *rules.Registry, toolName, toolVersion string) error {
	data, err := json.MarshalIndent(NewSarifLog(result, registry, toolName, toolVersion), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sarif: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write sarif: %w", err)
	}
	return nil
}

// SortFindings orders findings by file, line and rule ID.
func SortFindings(fs []core.Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].File == fs[j].File {
			if fs[i].Line == fs[j].Line {
				return fs[i].RuleID < fs[j].RuleID
			}
			return fs[i].Line < fs[j].Line
		}
		return fs[i].File < fs[j].File
	})
}

func sevToLevel(s core.Severity) string {
	switch s {
	case core.SeverityCritical, core.SeverityHigh:
		return "error"
	case core.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

func toURI(p string) string {
	p = strings.TrimSpace(p)
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}
	return strings.TrimPrefix(p, "./")
}
