package sat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-air/gini/dimacs"
	"github.com/go-air/gini/z"
	"github.com/samber/lo"
)

var ErrMalformedDIMACS = errors.New("malformed DIMACS")

// Header is the problem line of a DIMACS-CNF file
type Header struct {
	Variables uint64
	Clauses   int
}

// collector is a dimacs.CnfVis gathering the clauses of an instance
type collector struct {
	header  Header
	clauses [][]int64
	clause  []int64
	dangled bool
}

func (c *collector) Init(variables, clauses int) {
	c.header = Header{Variables: uint64(max(variables, 0)), Clauses: clauses}
	c.clauses = make([][]int64, 0, max(clauses, 0))
}

func (c *collector) Add(m z.Lit) {
	if m == z.LitNull {
		c.clauses = append(c.clauses, c.clause)
		c.clause = nil
		return
	}
	c.clause = append(c.clause, int64(m.Dimacs()))
}

func (c *collector) Eof() {
	c.dangled = len(c.clause) > 0
}

// ParseDIMACS reads a DIMACS-CNF instance. Comment lines are skipped, clauses may span several lines as long
// as each one is terminated by 0, and the header must agree with the body on both the greatest variable and
// the number of clauses
func ParseDIMACS(r io.Reader) (SAT, error) {
	var vis collector
	if err := dimacs.ReadCnfStrict(r, &vis, true); err != nil {
		return SAT{}, fmt.Errorf("%w: %v", ErrMalformedDIMACS, strings.TrimSpace(err.Error()))
	}
	if vis.dangled {
		return SAT{}, fmt.Errorf("%w: clause missing terminating 0", ErrMalformedDIMACS)
	}
	return SAT{Variables: vis.header.Variables, Clauses: vis.clauses}, nil
}

// ValidateDIMACS checks that r holds a consistent DIMACS-CNF instance: a well formed header, zero-terminated
// clauses, exactly as many clauses as the header declares and every variable of 1..Variables in use
func ValidateDIMACS(r io.Reader) error {
	instance, err := ParseDIMACS(r)
	if err != nil {
		return err
	}
	used := lo.Uniq(lo.Map(lo.Flatten(instance.Clauses), func(literal int64, _ int) int64 {
		if literal < 0 {
			return -literal
		}
		return literal
	}))
	if uint64(len(used)) != instance.Variables {
		return fmt.Errorf("%w: header declares %d variables, body uses %d", ErrMalformedDIMACS, instance.Variables, len(used))
	}
	return nil
}

// ReadHeader returns the header of a DIMACS-CNF instance without reading its clauses
func ReadHeader(r io.Reader) (Header, error) {
	reader := bufio.NewReader(dimacs.NewCommentFilter(r))
	for {
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if strings.HasPrefix(line, "p") {
				return parseHeader(line)
			}
			return Header{}, fmt.Errorf("%w: clause found before header", ErrMalformedDIMACS)
		}
		if err == io.EOF {
			return Header{}, fmt.Errorf("%w: missing 'p cnf' header", ErrMalformedDIMACS)
		}
		if err != nil {
			return Header{}, fmt.Errorf("error reading DIMACS: %w", err)
		}
	}
}

func parseHeader(line string) (Header, error) {
	parts := strings.Fields(line)
	if len(parts) != 4 || parts[0] != "p" || parts[1] != "cnf" {
		return Header{}, fmt.Errorf("%w: expected 'p cnf <vars> <clauses>', got %q", ErrMalformedDIMACS, line)
	}
	variables, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return Header{}, fmt.Errorf("%w: invalid variable count %q", ErrMalformedDIMACS, parts[2])
	}
	clauses, err := strconv.Atoi(parts[3])
	if err != nil || clauses < 0 {
		return Header{}, fmt.Errorf("%w: invalid clause count %q", ErrMalformedDIMACS, parts[3])
	}
	return Header{Variables: variables, Clauses: clauses}, nil
}
