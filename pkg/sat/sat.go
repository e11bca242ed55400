package sat

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// SAT is a CNF instance: a conjunction of clauses over variables 1..Variables
type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	s.writeTo(&builder)
	return builder.String()
}

// WriteDIMACS writes the instance into w using the DIMACS-CNF format
func (s SAT) WriteDIMACS(w io.Writer) error {
	buffered := bufio.NewWriter(w)
	s.writeTo(buffered)
	return buffered.Flush()
}

func (s SAT) writeTo(w io.Writer) {
	fmt.Fprintf(w, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(w, "%d ", literal)
		}
		io.WriteString(w, "0\n")
	}
}
