package convert

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadAtomList reads a newline-separated list of caller-named atoms, keeping their order and skipping blank lines
func ReadAtomList(r io.Reader) ([]string, error) {
	atoms := make([]string, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		atom := strings.TrimSpace(scanner.Text())
		if atom != "" {
			atoms = append(atoms, atom)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read atom list: %w", err)
	}
	return atoms, nil
}
