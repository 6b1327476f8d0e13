// Package rules holds the catalog of line-oriented detection rules.
package rules

import (
	"regexp"
	"strings"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core"
)

// Rule is one detection pattern. Rules are immutable once compiled.
type Rule struct {
	ID       string
	Category core.Category
	Severity core.Severity
	Message  string

	pattern *regexp.Regexp
	except  *regexp.Regexp
}

// Pattern returns the source of the compiled match expression.
func (r *Rule) Pattern() string {
	return r.pattern.String()
}

// Find returns the first match of the rule in line, skipping matches
// rejected by the rule's exclusion pattern.
func (r *Rule) Find(line string) (string, bool) {
	if r.except == nil {
		loc := r.pattern.FindStringIndex(line)
		if loc == nil {
			return "", false
		}
		return line[loc[0]:loc[1]], true
	}

	for _, loc := range r.pattern.FindAllStringIndex(line, -1) {
		text := line[loc[0]:loc[1]]
		if !r.except.MatchString(text) {
			return text, true
		}
	}
	return "", false
}

// Registry is an ordered, read-only set of rules safe for concurrent use.
type Registry struct {
	rules []*Rule
}

// Rules returns the rules in catalog order. Callers must not modify them.
func (r *Registry) Rules() []*Rule {
	return r.rules
}

// Len returns the number of rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

type definition struct {
	id       string
	category core.Category
	pattern  string
	except   string
	severity core.Severity
	message  string
}

func compile(defs []definition) *Registry {
	reg := &Registry{rules: make([]*Rule, 0, len(defs))}
	for _, d := range defs {
		rule := &Rule{
			ID:       d.id,
			Category: d.category,
			Severity: d.severity,
			Message:  d.message,
			pattern:  regexp.MustCompile("(?i)" + unicodeSpaces(d.pattern)),
		}
		if d.except != "" {
			rule.except = regexp.MustCompile("(?i)" + unicodeSpaces(d.except))
		}
		reg.rules = append(reg.rules, rule)
	}
	return reg
}

// unicodeSpaces widens \s and \S to cover Unicode space separators such as
// U+3000, which RE2 does not include in its ASCII-only \s class.
func unicodeSpaces(pattern string) string {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			next := pattern[i+1]
			i++
			switch {
			case next == 's' && inClass:
				b.WriteString(`\s\p{Zs}`)
			case next == 's':
				b.WriteString(`[\s\p{Zs}]`)
			case next == 'S' && !inClass:
				b.WriteString(`[^\s\p{Zs}]`)
			default:
				b.WriteByte(c)
				b.WriteByte(next)
			}
		case c == '[' && !inClass:
			inClass = true
			b.WriteByte(c)
			// a leading ] or ^] is literal
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
				b.WriteByte('^')
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				i++
				b.WriteByte(']')
			}
		case c == ']' && inClass:
			inClass = false
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

var defaultRegistry = compile(catalog)

// Default returns the process-wide built-in registry.
func Default() *Registry {
	return defaultRegistry
}
