package convert

import (
	"github.com/limaJavier/goalcnf/pkg/sat"
)

// Literal is a possibly negated reference to an atom
type Literal struct {
	Atom    string
	Negated bool
}

// Parse transcribes logical lines into a CNF instance, one clause per line, resolving atoms through registry
func Parse(lines []Line, registry Registry, options Options) (sat.SAT, error) {
	clauses := make([][]int64, 0, len(lines))
	for _, line := range lines {
		literals, err := ParseClause(line, options)
		if err != nil {
			return sat.SAT{}, err
		}

		clause := make([]int64, len(literals))
		for i, literal := range literals {
			variable := registry.Resolve(literal.Atom)
			if literal.Negated {
				variable = -variable
			}
			clause[i] = variable
		}
		clauses = append(clauses, clause)
	}

	return sat.SAT{
		Variables: uint64(registry.Len()),
		Clauses:   clauses,
	}, nil
}

// ParseClause recognizes a single logical line, which is either a disjunction of literals, a negated atom or
// a bare atom, and returns its literals in discovery order
func ParseClause(line Line, options Options) ([]Literal, error) {
	p := &parser{
		line:   line,
		tokens: Tokenize(line.Text, options),
	}

	var literals []Literal
	var err error
	if p.peek(0, TLParen) && p.peek(1, TOr) {
		literals, err = p.disjunction()
	} else {
		var literal Literal
		literal, err = p.literal()
		literals = []Literal{literal}
	}
	if err != nil {
		return nil, err
	}

	if p.pos < len(p.tokens) {
		return nil, p.unexpected("end of clause")
	}
	return literals, nil
}

type parser struct {
	line   Line
	tokens []Token
	pos    int
}

// disjunction := "(" OR literal+ ")"
func (p *parser) disjunction() ([]Literal, error) {
	p.pos += 2
	literals := make([]Literal, 0)
	for !p.peek(0, TRParen) {
		if p.pos >= len(p.tokens) {
			return nil, p.unexpected("')'")
		}
		literal, err := p.literal()
		if err != nil {
			return nil, err
		}
		literals = append(literals, literal)
	}
	p.pos++

	if len(literals) == 0 {
		return nil, unrecognizedError(p.line, "empty disjunction")
	}
	return literals, nil
}

// literal := ATOM | "(" ATOM ")" | "(" NOT ref ")"
func (p *parser) literal() (Literal, error) {
	if p.peek(0, TLParen) && p.peek(1, TNot) {
		p.pos += 2
		atom, err := p.ref()
		if err != nil {
			return Literal{}, err
		}
		if err := p.expect(TRParen); err != nil {
			return Literal{}, err
		}
		return Literal{Atom: atom, Negated: true}, nil
	}

	atom, err := p.ref()
	if err != nil {
		return Literal{}, err
	}
	return Literal{Atom: atom}, nil
}

// ref := ATOM | "(" ATOM ")"
func (p *parser) ref() (string, error) {
	if p.peek(0, TLParen) {
		p.pos++
		atom, err := p.ref()
		if err != nil {
			return "", err
		}
		return atom, p.expect(TRParen)
	}

	if !p.peek(0, TAtom) {
		return "", p.unexpected("atom")
	}
	atom := p.tokens[p.pos].Text
	p.pos++
	return atom, nil
}

func (p *parser) peek(ahead int, tokenType TokenType) bool {
	i := p.pos + ahead
	return i < len(p.tokens) && p.tokens[i].Type == tokenType
}

func (p *parser) expect(tokenType TokenType) error {
	if !p.peek(0, tokenType) {
		return p.unexpected(tokenType.String())
	}
	p.pos++
	return nil
}

func (p *parser) unexpected(expected string) error {
	if p.pos >= len(p.tokens) {
		return unrecognizedError(p.line, "expected %v, found end of line", expected)
	}
	token := p.tokens[p.pos]
	return unrecognizedError(p.line, "expected %v, found %v %q at column %d", expected, token.Type, token.Text, token.Offset+1)
}
