package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func findingsAt(severities ...Severity) []Finding {
	out := make([]Finding, 0, len(severities))
	for i, s := range severities {
		out = append(out, Finding{Severity: s, File: "SKILL.md", Line: i + 1})
	}
	return out
}

func TestDetermineVerdict(t *testing.T) {
	tests := []struct {
		name     string
		findings []Finding
		want     Verdict
	}{
		{"no findings", nil, VerdictSafe},
		{"info only", findingsAt(SeverityInfo, SeverityInfo, SeverityInfo, SeverityInfo), VerdictSafe},
		{"single low", findingsAt(SeverityLow), VerdictSafe},
		{"two low", findingsAt(SeverityLow, SeverityLow), VerdictSafe},
		{"three low escalates", findingsAt(SeverityLow, SeverityLow, SeverityLow), VerdictWarning},
		{"two low plus info", findingsAt(SeverityLow, SeverityLow, SeverityInfo), VerdictSafe},
		{"medium", findingsAt(SeverityMedium), VerdictWarning},
		{"medium with low", findingsAt(SeverityLow, SeverityMedium), VerdictWarning},
		{"high", findingsAt(SeverityHigh), VerdictDanger},
		{"critical among low", findingsAt(SeverityLow, SeverityCritical), VerdictDanger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineVerdict(tt.findings))
			// same input, same verdict
			assert.Equal(t, DetermineVerdict(tt.findings), DetermineVerdict(tt.findings))
		})
	}
}

func TestSeverity_Downgrade(t *testing.T) {
	assert.Equal(t, SeverityHigh, SeverityCritical.Downgrade())
	assert.Equal(t, SeverityMedium, SeverityHigh.Downgrade())
	assert.Equal(t, SeverityLow, SeverityMedium.Downgrade())
	assert.Equal(t, SeverityInfo, SeverityLow.Downgrade())
	assert.Equal(t, SeverityInfo, SeverityInfo.Downgrade())
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "CRITICAL", SeverityCritical.String())
	assert.Equal(t, "INFO", SeverityInfo.String())
	assert.Equal(t, "Severity(9)", Severity(9).String())
}

func TestVerdict_ExitCode(t *testing.T) {
	assert.Equal(t, 0, VerdictSafe.ExitCode())
	assert.Equal(t, 1, VerdictWarning.ExitCode())
	assert.Equal(t, 2, VerdictDanger.ExitCode())
}

func TestScanResult_FailOverridesFindings(t *testing.T) {
	r := NewScanResult("skill.zip")
	r.Fail(errors.New("invalid zip archive"))

	assert.Equal(t, VerdictDanger, r.Verdict)
	assert.Equal(t, []string{"invalid zip archive"}, r.Errors)
	assert.Empty(t, r.Findings)
}

func TestScanResult_Summary(t *testing.T) {
	r := NewScanResult("dir")
	r.Findings = findingsAt(SeverityCritical, SeverityLow, SeverityLow)
	r.Finalize()

	summary := r.Summary()
	assert.Equal(t, 1, summary[SeverityCritical])
	assert.Equal(t, 0, summary[SeverityHigh])
	assert.Equal(t, 2, summary[SeverityLow])
	assert.Equal(t, VerdictDanger, r.Verdict)
}
