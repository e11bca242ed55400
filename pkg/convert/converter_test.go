package convert

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/limaJavier/goalcnf/pkg/sat"
	. "github.com/onsi/gomega"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

func newTestConverter(t *testing.T) *Converter {
	converter, err := NewConverter(DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("cannot build converter: %v", err)
	}
	return converter
}

func TestConvertScenarios(t *testing.T) {
	scenarios := []struct {
		name     string
		input    string
		named    []string
		expected string
	}{
		{
			name:     "Disjunction and bare atom",
			input:    "(or (k!1) (not k!2))\nk!3\n",
			expected: "p cnf 3 2\n1 -2 0\n3 0\n",
		},
		{
			name:     "Negation only",
			input:    "(not k!5)",
			expected: "p cnf 1 1\n-1 0\n",
		},
		{
			name:     "Disjunction split over three lines",
			input:    "(goal\n  (or k!1 k!2\n      (not k!3) k!4\n      k!5)\n  k!6)",
			expected: "p cnf 6 2\n1 2 -3 4 5 0\n6 0\n",
		},
		{
			name:     "Wrapped goal with named atoms",
			input:    "(goal\n  (or k!4 (not main_var_3_0))\n  main_var_9_0\n  (not k!0)\n  :precision precise :depth 3)\n",
			named:    []string{"main_var_3_0", "main_var_9_0"},
			expected: "p cnf 4 3\n1 -2 0\n3 0\n-4 0\n",
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			g := NewWithT(t)
			converter := newTestConverter(t)

			//** Act
			result, err := converter.Convert(scenario.input, scenario.named)

			//** Assert
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(result.DIMACS()).To(Equal(scenario.expected))
		})
	}
}

func TestConvertSymbolMap(t *testing.T) {
	g := NewWithT(t)
	converter := newTestConverter(t)
	input := "(goal\n  (or k!4 (not main_var_3_0))\n  main_var_9_0\n  :precision precise :depth 3)"

	result, err := converter.Convert(input, []string{"main_var_3_0", "unused", "main_var_9_0"})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Atoms).To(Equal([]string{"k!4", "k!5", "k!7"}))
	g.Expect(result.SymbolMap()).To(Equal(SymbolMap{
		Variables: map[string]string{"1": "k!4", "2": "k!5", "3": "k!7"},
		Named:     map[string]string{"main_var_3_0": "k!5", "main_var_9_0": "k!7"},
	}))
}

func TestConvertFailures(t *testing.T) {
	scenarios := []struct {
		name  string
		input string
		kind  error
		line  int
	}{
		{"Missing end marker", "(goal\n  k!1\n  (not k!2)\n", ErrStructuralFormat, 3},
		{"Empty goal", "(goal\n  :precision precise :depth 0)", ErrStructuralFormat, 1},
		{"Unclosed disjunction", "k!1\n(or k!2\n    k!3\n", ErrUnresolvedContinuation, 2},
		{"Unknown connective", "k!1\n(and k!1 k!2)\n", ErrUnrecognizedLine, 2},
		{"Unlisted named atom", "(goal\n  (or k!1 flag)\n  k!2)", ErrUnrecognizedLine, 2},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			g := NewWithT(t)
			converter := newTestConverter(t)

			//** Act
			result, err := converter.Convert(scenario.input, nil)

			//** Assert
			g.Expect(result).To(BeNil())
			g.Expect(err).To(MatchError(scenario.kind))
			var lineErr *LineError
			g.Expect(errors.As(err, &lineErr)).To(BeTrue())
			g.Expect(lineErr.Line).To(Equal(scenario.line))
		})
	}
}

func TestConvertRejectsExhaustedNumbering(t *testing.T) {
	g := NewWithT(t)

	//** Act
	result, err := newTestConverter(t).Convert("(or k!18446744073709551615 k!0)\n(not x)", []string{"x"})

	//** Assert
	g.Expect(result).To(BeNil())
	g.Expect(err).To(MatchError(ErrStructuralFormat))
}

func TestConvertHeaderConsistency(t *testing.T) {
	g := NewWithT(t)
	converter := newTestConverter(t)
	input := strings.Join([]string{
		"(goal",
		"  (or k!10 k!11 (not k!12))",
		"  (or (not k!10) k!13",
		"      (not k!14)",
		"      k!11)",
		"  k!12",
		"  (not k!15)",
		"  (or k!15 (not k!16) named)",
		"  :precision precise :depth 3)",
	}, "\n")

	//** Act
	result, err := converter.Convert(input, []string{"named"})
	g.Expect(err).NotTo(HaveOccurred())
	dimacs := result.DIMACS()

	//** Assert
	g.Expect(sat.ValidateDIMACS(strings.NewReader(dimacs))).To(Succeed())
	header, err := sat.ReadHeader(strings.NewReader(dimacs))
	g.Expect(err).NotTo(HaveOccurred())

	body := strings.Fields(strings.SplitN(dimacs, "\n", 2)[1])
	terminators := 0
	referenced := make(map[string]bool)
	for _, field := range body {
		if field == "0" {
			terminators++
			continue
		}
		referenced[strings.TrimPrefix(field, "-")] = true
	}
	g.Expect(header.Clauses).To(Equal(terminators))
	g.Expect(header.Variables).To(Equal(uint64(len(referenced))))
	g.Expect(header).To(Equal(sat.Header{Variables: 8, Clauses: 5}))
}

func TestConvertIsDeterministic(t *testing.T) {
	g := NewWithT(t)
	converter := newTestConverter(t)
	input := "(goal\n  (or c (not b) k!2)\n  (or a (not k!1))\n  b)"
	named := []string{"b", "a", "c"}

	first, err := converter.Convert(input, named)
	g.Expect(err).NotTo(HaveOccurred())

	// Conversions share no state, so concurrent runs must agree byte for byte
	var wg sync.WaitGroup
	outputs := make([]string, 16)
	for i := range outputs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := converter.Convert(input, named)
			if err == nil {
				outputs[i] = result.DIMACS()
			}
		}()
	}
	wg.Wait()

	for _, output := range outputs {
		g.Expect(output).To(Equal(first.DIMACS()))
	}
}

func TestConvertPreservesSatisfiability(t *testing.T) {
	scenarios := []struct {
		name   string
		input  string
		result int
	}{
		{"Satisfiable", "(or k!1 k!2)\n(not k!1)", satisfiable},
		{"Unsatisfiable", "(or k!1 k!2)\n(not k!1)\n(not k!2)", unsatisfiable},
		{"Contradicting units", "(goal\n  k!3\n  (not k!3))", unsatisfiable},
		{"Split clause", "(or (not k!1)\n    (not k!2)\n    k!3)\nk!1\nk!2", satisfiable},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			g := NewWithT(t)
			result, err := newTestConverter(t).Convert(scenario.input, nil)
			g.Expect(err).NotTo(HaveOccurred())

			//** Act
			solver := gini.New()
			for _, clause := range result.SAT.Clauses {
				for _, literal := range clause {
					solver.Add(z.Dimacs2Lit(int(literal)))
				}
				solver.Add(z.LitNull)
			}

			//** Assert
			g.Expect(solver.Solve()).To(Equal(scenario.result))
		})
	}
}

func TestSplitClauseModel(t *testing.T) {
	g := NewWithT(t)
	result, err := newTestConverter(t).Convert("(or (not k!1)\n    (not k!2)\n    k!3)\nk!1\nk!2", nil)
	g.Expect(err).NotTo(HaveOccurred())

	solver := gini.New()
	for _, clause := range result.SAT.Clauses {
		for _, literal := range clause {
			solver.Add(z.Dimacs2Lit(int(literal)))
		}
		solver.Add(z.LitNull)
	}

	// k!1 and k!2 hold, so the split clause forces k!3
	g.Expect(solver.Solve()).To(Equal(satisfiable))
	g.Expect(result.Atoms).To(Equal([]string{"k!1", "k!2", "k!3"}))
	g.Expect(solver.Value(z.Dimacs2Lit(3))).To(BeTrue())
}

func TestReadAtomList(t *testing.T) {
	g := NewWithT(t)

	atoms, err := ReadAtomList(strings.NewReader("main_var_3_0\n\n  main_var_9_0  \r\nflag\n"))

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(atoms).To(Equal([]string{"main_var_3_0", "main_var_9_0", "flag"}))
}

func BenchmarkConvert(b *testing.B) {
	var builder strings.Builder
	builder.WriteString("(goal\n")
	for i := 0; i < 5000; i++ {
		if i%10 == 0 {
			fmt.Fprintf(&builder, "  (or k!%d (not k!%d)\n      k!%d\n      (not k!%d))\n", i, i+1, i+2, i+3)
			continue
		}
		fmt.Fprintf(&builder, "  (or k!%d (not k!%d) named%d)\n", i, i+1, i%7)
	}
	builder.WriteString("  :precision precise :depth 3)\n")
	input := builder.String()
	named := []string{"named0", "named1", "named2", "named3", "named4", "named5", "named6"}

	converter, err := NewConverter(DefaultOptions(), nil)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if _, err := converter.Convert(input, named); err != nil {
			b.Fatal(err)
		}
	}
}
