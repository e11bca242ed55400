package convert

import (
	"strings"
)

// Reassemble joins the physical lines of a clause that the upstream formatter split over several indented
// continuation lines, so that every returned line holds exactly one clause. Lines that are already complete
// are returned unchanged
func Reassemble(lines []Line, options Options) ([]Line, error) {
	continued, err := markContinuations(lines, options)
	if err != nil {
		return nil, err
	}

	logical := make([]Line, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if !continued[i] {
			logical = append(logical, lines[i])
			continue
		}

		// Absorb every continued line plus the one closing the clause
		start := lines[i]
		var builder strings.Builder
		builder.WriteString(strings.TrimRight(start.Text, " \t"))
		for continued[i] {
			i++
			builder.WriteByte(' ')
			builder.WriteString(strings.TrimSpace(lines[i].Text))
		}
		logical = append(logical, Line{No: start.No, Text: builder.String()})
	}
	return logical, nil
}

// markContinuations flags the lines after which the current clause is still open
func markContinuations(lines []Line, options Options) ([]bool, error) {
	continued := make([]bool, len(lines))
	depth := 0
	open := 0 // Index of the line opening the current clause
	for i, line := range lines {
		if depth == 0 {
			if strings.HasPrefix(line.Text, " ") || strings.HasPrefix(line.Text, "\t") {
				return nil, structuralError(line, "continuation line outside of a clause")
			}
			open = i
		}

		depth += Balance(line.Text, options)
		if depth < 0 {
			return nil, structuralError(line, "unbalanced ')'")
		}
		continued[i] = depth > 0
	}

	if depth > 0 {
		return nil, continuationError(lines[open], "clause is never closed (%d unclosed '(')", depth)
	}
	return continued, nil
}
