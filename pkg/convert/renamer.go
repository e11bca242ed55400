package convert

import (
	"fmt"
	"math"
	"strings"
)

// Renaming records the internal atom a caller-named atom was rewritten into
type Renaming struct {
	Name  string
	Atom  string
	Found bool // Whether the name occurred in the text and was actually rewritten
}

// MaxAtom returns the greatest numeric suffix among the internal atoms of lines, or 0 when there is none
func MaxAtom(lines []Line, options Options) uint64 {
	max, _ := maxAtom(lines, options)
	return max
}

// maxAtom also returns the line holding the greatest internal atom
func maxAtom(lines []Line, options Options) (uint64, Line) {
	var (
		max uint64
		at  Line
	)
	for _, line := range lines {
		for _, token := range Tokenize(line.Text, options) {
			if token.Type != TAtom {
				continue
			}
			if suffix, _ := atomSuffix(token.Text, options.AtomPrefix); suffix > max {
				max, at = suffix, line
			}
		}
	}
	return max, at
}

// Rename rewrites every occurrence of each named atom into a fresh internal atom numbered above all the
// internal atoms of lines. Names are processed in the given order and every name consumes a number, even
// when it does not occur in lines. A structural error is returned when the numbers would overflow
func Rename(lines []Line, named []string, options Options) ([]Line, []Renaming, error) {
	max, at := maxAtom(lines, options)
	if uint64(len(named)) > math.MaxUint64-max {
		return nil, nil, structuralError(at, "no room to number %d named atoms above %v%d", len(named), options.AtomPrefix, max)
	}
	next := max + 1
	renamings := make([]Renaming, 0, len(named))
	replacements := make(map[string]string, len(named))
	for _, name := range named {
		atom := fmt.Sprintf("%v%d", options.AtomPrefix, next)
		next++
		renamings = append(renamings, Renaming{Name: name, Atom: atom})
		// A repeated name keeps its first replacement; later occurrences have nothing left to rewrite
		if _, ok := replacements[name]; !ok {
			replacements[name] = atom
		}
	}
	if len(replacements) == 0 {
		return lines, renamings, nil
	}

	hits := make(map[string]int, len(replacements))
	renamed := make([]Line, len(lines))
	for i, line := range lines {
		renamed[i] = Line{No: line.No, Text: replaceSymbols(line.Text, replacements, hits, options)}
	}
	for i := range renamings {
		renaming := &renamings[i]
		renaming.Found = hits[renaming.Name] > 0 && replacements[renaming.Name] == renaming.Atom
	}
	return renamed, renamings, nil
}

// replaceSymbols substitutes whole symbols only, keeping the rest of the text untouched
func replaceSymbols(text string, replacements map[string]string, hits map[string]int, options Options) string {
	var builder strings.Builder
	last := 0
	for _, token := range Tokenize(text, options) {
		if token.Type != TSymbol && token.Type != TAtom {
			continue
		}
		replacement, ok := replacements[token.Text]
		if !ok {
			continue
		}
		hits[token.Text]++
		builder.WriteString(text[last:token.Offset])
		builder.WriteString(replacement)
		last = token.Offset + len(token.Text)
	}
	if builder.Len() == 0 {
		return text
	}
	builder.WriteString(text[last:])
	return builder.String()
}
