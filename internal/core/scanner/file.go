package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core"
)

// MaxMatchedText bounds the length of Finding.MatchedText in characters.
const MaxMatchedText = 120

const ellipsis = "..."

// documentExtensions get fenced code block detection.
var documentExtensions = map[string]bool{
	".md":  true,
	".txt": true,
}

// ScanFile applies every rule to every line of path. Unreadable files
// yield no findings and zero lines.
func (s *Scanner) ScanFile(path, root string) ([]core.Finding, int) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Debugw("skipping unreadable file", "path", path, "error", err)
		return nil, 0
	}

	lines := splitLines(decodeText(data))

	var codeBlock map[int]bool
	if documentExtensions[strings.ToLower(filepath.Ext(path))] {
		codeBlock = CodeBlockLines(lines)
	}

	relPath := relativePath(root, path)

	var findings []core.Finding
	for i, line := range lines {
		for _, rule := range s.registry.Rules() {
			matched, ok := rule.Find(line)
			if !ok {
				continue
			}

			inCodeBlock := codeBlock[i]
			severity := rule.Severity
			if inCodeBlock {
				severity = severity.Downgrade()
			}

			findings = append(findings, core.Finding{
				RuleID:      rule.ID,
				Category:    rule.Category,
				Severity:    severity,
				Message:     rule.Message,
				File:        relPath,
				Line:        i + 1,
				MatchedText: truncate(matched),
				InCodeBlock: inCodeBlock,
			})
		}
	}

	return findings, len(lines)
}

// decodeText decodes data as UTF-8 (or UTF-16 when a BOM says so),
// replacing invalid sequences with U+FFFD.
func decodeText(data []byte) string {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return string(decoded)
}

// splitLines splits on \n, \r\n and \r. A trailing line break does not
// produce an empty final line.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func truncate(text string) string {
	if utf8.RuneCountInString(text) <= MaxMatchedText {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxMatchedText-len(ellipsis)]) + ellipsis
}

func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
