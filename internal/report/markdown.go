package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core"
)

// Markdown builds the report as a markdown document.
func Markdown(result *core.ScanResult) string {
	var b strings.Builder

	b.WriteString("# Skill Security Scan\n\n")
	fmt.Fprintf(&b, "- **Target:** `%s`\n", result.Path)
	fmt.Fprintf(&b, "- **Files:** %d\n", result.FileCount)
	fmt.Fprintf(&b, "- **Total lines:** %d\n", result.TotalLines)
	fmt.Fprintf(&b, "- **Verdict:** **%s**\n\n", result.Verdict)

	if len(result.Errors) > 0 {
		b.WriteString("## Errors\n\n")
		for _, e := range result.Errors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Summary\n\n| Severity | Count |\n|---|---|\n")
	counts := result.Summary()
	for _, sev := range core.Severities() {
		fmt.Fprintf(&b, "| %s | %d |\n", sev, counts[sev])
	}
	b.WriteString("\n")

	if len(result.Findings) == 0 {
		b.WriteString("No known dangerous patterns were detected.\n\n")
	} else {
		b.WriteString("## Findings\n\n")
		for _, group := range groupByCategory(result.Findings) {
			fmt.Fprintf(&b, "### %s\n\n", group.category.Label())
			for _, f := range group.findings {
				fmt.Fprintf(&b, "- **%s** `%s:%d` (%s): %s%s\n", f.Severity, f.File, f.Line, f.RuleID, f.Message, codeBlockNote(f))
				fmt.Fprintf(&b, "  `%s`\n", inlineCode(f.MatchedText))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("---\n\n")
	b.WriteString(strings.Join(Guidance(result.Verdict), " "))
	b.WriteString("\n")

	return b.String()
}

// inlineCode keeps matched text from closing its code span.
func inlineCode(s string) string {
	return strings.ReplaceAll(s, "`", "'")
}

// MarkdownRenderer renders markdown for the terminal
type MarkdownRenderer struct {
	term *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer that wraps at width
func NewMarkdownRenderer(width int) (*MarkdownRenderer, error) {
	term, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	return &MarkdownRenderer{term: term}, nil
}

// Render renders markdown, falling back to the raw text on failure
func (r *MarkdownRenderer) Render(markdown string) string {
	out, err := r.term.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
