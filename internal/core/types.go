package core

import "fmt"

// Severity is the ordered risk level of a finding. Higher is worse.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityLabels = [...]string{"INFO", "LOW", "MEDIUM", "HIGH", "CRITICAL"}

// String returns the upper-case label used in reports.
func (s Severity) String() string {
	if s < SeverityInfo || s > SeverityCritical {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityLabels[s]
}

// Downgrade lowers the severity by one step, never below INFO.
func (s Severity) Downgrade() Severity {
	if s <= SeverityInfo {
		return SeverityInfo
	}
	return s - 1
}

// Severities lists every level from most to least severe.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// Category tags the kind of risk a rule detects.
type Category string

const (
	CategoryCredentialExposure Category = "credential_exposure"
	CategoryDangerousCommand   Category = "dangerous_command"
	CategoryDataExfiltration   Category = "data_exfiltration"
	CategoryPathTraversal      Category = "path_traversal"
	CategoryPermissionBypass   Category = "permission_bypass"
	CategoryPromptInjection    Category = "prompt_injection"
	CategoryObfuscation        Category = "obfuscation"
	CategorySupplyChain        Category = "supply_chain"
)

// Categories returns the fixed set of categories in catalog order.
func Categories() []Category {
	return []Category{
		CategoryCredentialExposure,
		CategoryDangerousCommand,
		CategoryDataExfiltration,
		CategoryPathTraversal,
		CategoryPermissionBypass,
		CategoryPromptInjection,
		CategoryObfuscation,
		CategorySupplyChain,
	}
}

// Label returns a human-readable name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryCredentialExposure:
		return "Credential exposure"
	case CategoryDangerousCommand:
		return "Dangerous command"
	case CategoryDataExfiltration:
		return "Data exfiltration"
	case CategoryPathTraversal:
		return "Path traversal"
	case CategoryPermissionBypass:
		return "Permission bypass"
	case CategoryPromptInjection:
		return "Prompt injection"
	case CategoryObfuscation:
		return "Obfuscation"
	case CategorySupplyChain:
		return "Supply chain"
	default:
		return string(c)
	}
}

// Verdict is the overall classification of one scan.
type Verdict string

const (
	VerdictSafe    Verdict = "SAFE"
	VerdictWarning Verdict = "WARNING"
	VerdictDanger  Verdict = "DANGER"
)

// ExitCode maps the verdict to the process exit status of the CLI.
func (v Verdict) ExitCode() int {
	switch v {
	case VerdictSafe:
		return 0
	case VerdictWarning:
		return 1
	default:
		return 2
	}
}

// Finding is one rule match on one line of one file.
type Finding struct {
	RuleID      string
	Category    Category
	Severity    Severity
	Message     string
	File        string // relative to the scan root, slash separated
	Line        int    // 1-based
	MatchedText string
	InCodeBlock bool
}

// ScanResult accumulates the outcome of scanning a directory or archive.
type ScanResult struct {
	Path       string
	FileCount  int
	TotalLines int
	Findings   []Finding
	Errors     []string
	Verdict    Verdict
}

// NewScanResult returns an empty result for path.
func NewScanResult(path string) *ScanResult {
	return &ScanResult{
		Path:     path,
		Findings: []Finding{},
		Errors:   []string{},
		Verdict:  VerdictSafe,
	}
}

// Finalize computes the verdict from the accumulated findings.
func (r *ScanResult) Finalize() {
	r.Verdict = DetermineVerdict(r.Findings)
}

// Fail records a structural error and forces DANGER, bypassing the
// finding-based verdict.
func (r *ScanResult) Fail(err error) {
	r.Errors = append(r.Errors, err.Error())
	r.Verdict = VerdictDanger
}

// Summary counts findings per severity.
func (r *ScanResult) Summary() map[Severity]int {
	counts := make(map[Severity]int, len(severityLabels))
	for _, s := range Severities() {
		counts[s] = 0
	}
	for _, f := range r.Findings {
		counts[f.Severity]++
	}
	return counts
}
