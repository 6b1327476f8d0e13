package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core"
	"github.com/Lin-Jiong-HDU/skillscan/internal/core/rules"
)

// getRulesCommand returns the rules command
func getRulesCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the detection rules",
		Long:  "List every detection rule with its ID, category, base severity and description.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, category)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list rules of this category")

	return cmd
}

func runRules(cmd *cobra.Command, category string) error {
	var selected []*rules.Rule
	for _, rule := range rules.Default().Rules() {
		if category != "" && string(rule.Category) != category {
			continue
		}
		selected = append(selected, rule)
	}
	if len(selected) == 0 {
		return &exitError{code: 2, err: fmt.Errorf("unknown category %q (valid: %s)", category, categoryList())}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderRuleTable(selected))
	return nil
}

func renderRuleTable(list []*rules.Rule) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("ID", "CATEGORY", "SEVERITY", "DESCRIPTION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, rule := range list {
		t.Row(rule.ID, string(rule.Category), rule.Severity.String(), rule.Message)
	}
	return t.Render()
}

func categoryList() string {
	names := make([]string, 0, len(core.Categories()))
	for _, c := range core.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
