package convert

import (
	"strconv"
	"strings"
)

type TokenType int

const (
	TLParen TokenType = iota
	TRParen
	TOr
	TNot
	TAtom
	TSymbol
)

func (t TokenType) String() string {
	switch t {
	case TLParen:
		return "'('"
	case TRParen:
		return "')'"
	case TOr:
		return "disjunction"
	case TNot:
		return "negation"
	case TAtom:
		return "atom"
	default:
		return "symbol"
	}
}

// Token is a lexical unit of a goal line. Offset is the byte offset of Text within the tokenized line
type Token struct {
	Type   TokenType
	Text   string
	Offset int
}

// Tokenize splits a line into parentheses, keywords, internal atoms and other symbols. Symbols are
// delimited by whitespace and parentheses; a |quoted| symbol is a single token
func Tokenize(text string, options Options) []Token {
	tokens := make([]Token, 0, len(text)/4)
	for i := 0; i < len(text); {
		switch c := text[i]; {
		case c == '(':
			tokens = append(tokens, Token{Type: TLParen, Text: "(", Offset: i})
			i++
		case c == ')':
			tokens = append(tokens, Token{Type: TRParen, Text: ")", Offset: i})
			i++
		case isSpace(c):
			i++
		default:
			end := symbolEnd(text, i)
			tokens = append(tokens, classify(text[i:end], i, options))
			i = end
		}
	}
	return tokens
}

// Balance returns the number of opening minus closing parentheses of a line
func Balance(text string, options Options) int {
	balance := 0
	for _, token := range Tokenize(text, options) {
		switch token.Type {
		case TLParen:
			balance++
		case TRParen:
			balance--
		}
	}
	return balance
}

// atomSuffix reports whether symbol is an internal atom and returns its numeric suffix
func atomSuffix(symbol, prefix string) (uint64, bool) {
	digits, ok := strings.CutPrefix(symbol, prefix)
	if !ok || digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	suffix, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return suffix, true
}

func classify(symbol string, offset int, options Options) Token {
	token := Token{Type: TSymbol, Text: symbol, Offset: offset}
	switch {
	case symbol == options.Disjunction:
		token.Type = TOr
	case symbol == options.Negation:
		token.Type = TNot
	default:
		if _, ok := atomSuffix(symbol, options.AtomPrefix); ok {
			token.Type = TAtom
		}
	}
	return token
}

func symbolEnd(text string, start int) int {
	i := start
	for i < len(text) {
		c := text[i]
		if c == '|' {
			// Quoted symbols run up to the closing bar, whatever they contain
			closing := strings.IndexByte(text[i+1:], '|')
			if closing < 0 {
				return len(text)
			}
			i += closing + 2
			continue
		}
		if c == '(' || c == ')' || isSpace(c) {
			break
		}
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
