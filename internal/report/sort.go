package report

import (
	"sort"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core"
)

// displayOrder returns a copy of findings sorted by severity (highest
// first) and then category, keeping discovery order within ties.
func displayOrder(findings []core.Finding) []core.Finding {
	out := make([]core.Finding, len(findings))
	copy(out, findings)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		return out[i].Category < out[j].Category
	})
	return out
}

type categoryGroup struct {
	category core.Category
	findings []core.Finding
}

// groupByCategory groups display-ordered findings, categories appearing
// in the order of their first finding.
func groupByCategory(findings []core.Finding) []categoryGroup {
	var groups []categoryGroup
	index := map[core.Category]int{}
	for _, f := range displayOrder(findings) {
		i, ok := index[f.Category]
		if !ok {
			i = len(groups)
			index[f.Category] = i
			groups = append(groups, categoryGroup{category: f.Category})
		}
		groups[i].findings = append(groups[i].findings, f)
	}
	return groups
}
