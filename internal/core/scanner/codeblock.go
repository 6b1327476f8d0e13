package scanner

import "strings"

// CodeBlockLines returns the 0-based indices of lines inside fenced code
// blocks, fence delimiters included. A fence opened with a run of N
// backticks or tildes is closed only by a run of at least N of the same
// character.
func CodeBlockLines(lines []string) map[int]bool {
	block := make(map[int]bool)

	inBlock := false
	var fenceChar byte
	fenceLen := 0

	for i, line := range lines {
		char, length, ok := parseFence(line)
		switch {
		case ok && !inBlock:
			inBlock = true
			fenceChar = char
			fenceLen = length
			block[i] = true
		case ok && char == fenceChar && length >= fenceLen:
			block[i] = true
			inBlock = false
			fenceChar = 0
			fenceLen = 0
		case inBlock:
			block[i] = true
		}
	}

	return block
}

// parseFence reports whether line opens or closes a fence, and with what.
func parseFence(line string) (byte, int, bool) {
	stripped := strings.TrimSpace(line)
	if stripped == "" {
		return 0, 0, false
	}

	char := stripped[0]
	if char != '`' && char != '~' {
		return 0, 0, false
	}

	n := 0
	for n < len(stripped) && stripped[n] == char {
		n++
	}
	if n < 3 {
		return 0, 0, false
	}
	return char, n, true
}
