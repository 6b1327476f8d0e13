package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func blockIndices(doc string) []int {
	lines := strings.Split(doc, "\n")
	block := CodeBlockLines(lines)
	var out []int
	for i := range lines {
		if block[i] {
			out = append(out, i)
		}
	}
	return out
}

func TestCodeBlockLines(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []int
	}{
		{
			name: "no fences",
			doc:  "# Title\ntext\nmore",
			want: nil,
		},
		{
			name: "backtick block",
			doc:  "intro\n```bash\nsudo make install\n```\noutro",
			want: []int{1, 2, 3},
		},
		{
			name: "tilde block",
			doc:  "~~~\ncode\n~~~\nafter",
			want: []int{0, 1, 2},
		},
		{
			name: "indented fence",
			doc:  "- step\n  ```\n  run\n  ```\n",
			want: []int{1, 2, 3},
		},
		{
			name: "different char does not close",
			doc:  "```\n~~~\nstill code\n```\nprose",
			want: []int{0, 1, 2, 3},
		},
		{
			name: "shorter run does not close",
			doc:  "````\n```\nnested\n```\n````\nprose",
			want: []int{0, 1, 2, 3, 4},
		},
		{
			name: "longer run closes",
			doc:  "```\ncode\n`````\nprose",
			want: []int{0, 1, 2},
		},
		{
			name: "two backticks are not a fence",
			doc:  "``inline``\ntext",
			want: nil,
		},
		{
			name: "unterminated block runs to end",
			doc:  "text\n```\na\nb",
			want: []int{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blockIndices(tt.doc))
		})
	}
}
