package convert

import (
	"strings"

	"github.com/samber/lo"
)

// Line is a line of goal text together with the 1-based number of the physical input line it starts at
type Line struct {
	No   int
	Text string
}

// Load normalizes raw goal text: it strips the optional goal wrapper (whose closing parenthesis is then
// mandatory), drops blank lines and goal attribute lines, and removes the indentation prefix of every line
func Load(input string, options Options) ([]Line, error) {
	physical := strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
	lines := make([]Line, 0, len(physical))
	for i, text := range physical {
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, Line{No: i + 1, Text: strings.TrimRight(text, " \t\r")})
	}
	if len(lines) == 0 {
		return nil, &LineError{Kind: ErrStructuralFormat, Reason: "empty input"}
	}

	indent := strings.Repeat(" ", options.Indent)
	strip := func(line Line, _ int) Line {
		line.Text = strings.TrimPrefix(line.Text, indent)
		return line
	}

	head := strings.TrimSpace(lines[0].Text)
	if !isGoalMarker(head, options.GoalMarker) {
		return lo.Map(lines, strip), nil
	}

	//** Unwrap goal
	body := lo.Map(lines[1:], strip)
	// Material following the marker on its own line belongs to the body
	if rest := strings.TrimSpace(head[len(options.GoalMarker):]); rest != "" {
		body = append([]Line{{No: lines[0].No, Text: rest}}, body...)
	}
	if len(body) == 0 {
		return nil, structuralError(lines[0], "goal marker without end marker")
	}

	last := body[len(body)-1]
	balance := lo.SumBy(body, func(line Line) int { return Balance(line.Text, options) })
	switch {
	case balance >= 0:
		return nil, structuralError(last, "missing end marker")
	case balance < -1:
		return nil, structuralError(last, "unbalanced end marker")
	case !strings.HasSuffix(last.Text, ")"):
		return nil, structuralError(last, "unexpected text after end marker")
	}
	last.Text = strings.TrimRight(last.Text[:len(last.Text)-1], " \t")
	body[len(body)-1] = last

	// Goal attributes (":precision precise :depth 3") and the now empty closing line carry no clauses
	body = lo.Filter(body, func(line Line, _ int) bool {
		trimmed := strings.TrimSpace(line.Text)
		return trimmed != "" && !strings.HasPrefix(trimmed, ":")
	})
	if len(body) == 0 {
		return nil, structuralError(lines[0], "empty goal")
	}
	return body, nil
}

func isGoalMarker(head, marker string) bool {
	if marker == "" || !strings.HasPrefix(head, marker) {
		return false
	}
	if len(head) == len(marker) {
		return true
	}
	next := head[len(marker)]
	return isSpace(next) || next == '(' || next == ')'
}
