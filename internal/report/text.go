package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core"
)

const ruleWidth = 60

// StyleConfig defines the colors of the text report
type StyleConfig struct {
	TitleColor    lipgloss.Color
	SubtleColor   lipgloss.Color
	DangerColor   lipgloss.Color
	WarningColor  lipgloss.Color
	SafeColor     lipgloss.Color
	CriticalColor lipgloss.Color
	BorderColor   lipgloss.Color
}

// DefaultStyleConfig returns the default style configuration
func DefaultStyleConfig() *StyleConfig {
	return &StyleConfig{
		TitleColor:    lipgloss.Color("12"),  // Blue
		SubtleColor:   lipgloss.Color("241"), // Grey
		DangerColor:   lipgloss.Color("9"),   // Red
		WarningColor:  lipgloss.Color("11"),  // Yellow
		SafeColor:     lipgloss.Color("10"),  // Green
		CriticalColor: lipgloss.Color("13"),  // Magenta
		BorderColor:   lipgloss.Color("8"),   // Dark grey
	}
}

// TextRenderer renders the human-readable terminal report
type TextRenderer struct {
	style *StyleConfig
}

// NewTextRenderer creates a text renderer with the default styles
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{style: DefaultStyleConfig()}
}

// Render renders the full report
func (r *TextRenderer) Render(result *core.ScanResult) string {
	var b strings.Builder
	heavy := r.border("=")

	b.WriteString(heavy + "\n")
	b.WriteString("  " + lipgloss.NewStyle().Foreground(r.style.TitleColor).Bold(true).Render("Skill Security Scanner - Scan Result") + "\n")
	b.WriteString(heavy + "\n\n")

	fmt.Fprintf(&b, "  Target:      %s\n", result.Path)
	fmt.Fprintf(&b, "  Files:       %d\n", result.FileCount)
	fmt.Fprintf(&b, "  Total lines: %d\n\n", result.TotalLines)
	fmt.Fprintf(&b, "  Verdict: %s\n\n", r.verdictStyle(result.Verdict).Bold(true).Render(string(result.Verdict)))

	if len(result.Errors) > 0 {
		b.WriteString("  Errors:\n")
		errStyle := lipgloss.NewStyle().Foreground(r.style.DangerColor)
		for _, e := range result.Errors {
			b.WriteString("    " + errStyle.Render("x "+e) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("  Summary:\n")
	counts := result.Summary()
	for _, sev := range core.Severities() {
		label := fmt.Sprintf("%-9s", sev.String()+":")
		fmt.Fprintf(&b, "    %s %d\n", r.severityStyle(sev).Render(label), counts[sev])
	}
	b.WriteString("\n")

	if len(result.Findings) == 0 {
		b.WriteString("  No findings - no known dangerous patterns were detected.\n\n")
	} else {
		b.WriteString(r.renderFindings(result.Findings))
	}

	b.WriteString(heavy + "\n")
	for _, line := range Guidance(result.Verdict) {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString(heavy)

	return b.String()
}

func (r *TextRenderer) renderFindings(findings []core.Finding) string {
	var b strings.Builder
	light := r.border("-")
	subtle := lipgloss.NewStyle().Foreground(r.style.SubtleColor)

	b.WriteString(light + "\n")
	b.WriteString("  Findings\n")
	b.WriteString(light + "\n\n")

	for _, group := range groupByCategory(findings) {
		b.WriteString("  " + lipgloss.NewStyle().Bold(true).Render("["+group.category.Label()+"]") + "\n")
		for _, f := range group.findings {
			sev := r.severityStyle(f.Severity).Render(f.Severity.String())
			fmt.Fprintf(&b, "    %s | %s:%d [%s]\n", sev, f.File, f.Line, f.RuleID)
			fmt.Fprintf(&b, "       %s%s\n", f.Message, codeBlockNote(f))
			b.WriteString("       " + subtle.Render("> "+f.MatchedText) + "\n\n")
		}
	}
	return b.String()
}

func (r *TextRenderer) border(ch string) string {
	return lipgloss.NewStyle().Foreground(r.style.BorderColor).Render(strings.Repeat(ch, ruleWidth))
}

func (r *TextRenderer) verdictStyle(v core.Verdict) lipgloss.Style {
	switch v {
	case core.VerdictSafe:
		return lipgloss.NewStyle().Foreground(r.style.SafeColor)
	case core.VerdictWarning:
		return lipgloss.NewStyle().Foreground(r.style.WarningColor)
	default:
		return lipgloss.NewStyle().Foreground(r.style.DangerColor)
	}
}

func (r *TextRenderer) severityStyle(s core.Severity) lipgloss.Style {
	switch s {
	case core.SeverityCritical:
		return lipgloss.NewStyle().Foreground(r.style.CriticalColor).Bold(true)
	case core.SeverityHigh:
		return lipgloss.NewStyle().Foreground(r.style.DangerColor)
	case core.SeverityMedium:
		return lipgloss.NewStyle().Foreground(r.style.WarningColor)
	default:
		return lipgloss.NewStyle().Foreground(r.style.SubtleColor)
	}
}

func codeBlockNote(f core.Finding) string {
	if f.InCodeBlock {
		return " (in code block)"
	}
	return ""
}

// Guidance returns the closing advice printed for a verdict.
func Guidance(v core.Verdict) []string {
	switch v {
	case core.VerdictSafe:
		return []string{
			"The automated scan found no problems.",
			"A semantic review of the skill is still recommended.",
		}
	case core.VerdictWarning:
		return []string{
			"Some items need attention.",
			"Review the findings before installing this skill.",
		}
	default:
		return []string{
			"Dangerous items were detected.",
			"Installing this skill is not recommended.",
		}
	}
}
