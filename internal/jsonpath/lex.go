package jsonpath

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokRoot          // $
	tokCurrent       // @
	tokDot           // .
	tokDescend       // ..
	tokOpen          // [
	tokClose         // ]
	tokLParen        // (
	tokRParen        // )
	tokStar          // *
	tokFilter        // ?
	tokAnd           // &&
	tokOr            // ||
	tokCompare       // == != < <= > >=
	tokWord          // unquoted name, index, or true/false/null
	tokString        // quoted string, unescaped
	tokNumber        // numeric literal after a comparison operator
)

var tokenNames = map[tokenKind]string{
	tokEOF: "end of expression", tokRoot: "'$'", tokCurrent: "'@'",
	tokDot: "'.'", tokDescend: "'..'", tokOpen: "'['", tokClose: "']'",
	tokLParen: "'('", tokRParen: "')'", tokStar: "'*'", tokFilter: "'?'",
	tokAnd: "'&&'", tokOr: "'||'", tokCompare: "operator",
	tokWord: "name", tokString: "string", tokNumber: "number",
}

func (k tokenKind) String() string { return tokenNames[k] }

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits expr into tokens. Whitespace between tokens is ignored.
// Numeric literals are only recognized right after a comparison operator,
// so keys such as "200" or "x-1" inside paths stay words.
func lex(expr string) ([]token, error) {
	var toks []token
	prev := tokEOF
	for i := 0; i < len(expr); {
		ch := expr[i]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i++
			continue
		}

		start := i
		tok := token{pos: start}
		switch {
		case prev == tokCompare && (ch == '-' || isDigit(ch)):
			i = scanNumber(expr, i)
			if i == start || (ch == '-' && i == start+1) {
				return nil, fmt.Errorf("jsonpath: invalid number at position %d", start)
			}
			tok.kind, tok.text = tokNumber, expr[start:i]

		case ch == '\'' || ch == '"':
			s, end, err := scanQuoted(expr, i)
			if err != nil {
				return nil, err
			}
			i = end
			tok.kind, tok.text = tokString, s

		case isIdentChar(ch):
			for i < len(expr) && isIdentChar(expr[i]) {
				i++
			}
			tok.kind, tok.text = tokWord, expr[start:i]

		default:
			kind, width := punct(expr[i:])
			if width == 0 {
				return nil, fmt.Errorf("jsonpath: unexpected character %q at position %d", ch, i)
			}
			i += width
			tok.kind, tok.text = kind, expr[start:i]
		}
		toks = append(toks, tok)
		prev = tok.kind
	}
	return append(toks, token{kind: tokEOF, pos: len(expr)}), nil
}

// punct matches the punctuation token at the start of s. A width of 0
// means s does not start with one.
func punct(s string) (tokenKind, int) {
	for _, op := range []string{"==", "!=", "<=", ">="} {
		if strings.HasPrefix(s, op) {
			return tokCompare, 2
		}
	}
	switch {
	case strings.HasPrefix(s, ".."):
		return tokDescend, 2
	case strings.HasPrefix(s, "&&"):
		return tokAnd, 2
	case strings.HasPrefix(s, "||"):
		return tokOr, 2
	}
	switch s[0] {
	case '<', '>':
		return tokCompare, 1
	case '$':
		return tokRoot, 1
	case '@':
		return tokCurrent, 1
	case '.':
		return tokDot, 1
	case '[':
		return tokOpen, 1
	case ']':
		return tokClose, 1
	case '(':
		return tokLParen, 1
	case ')':
		return tokRParen, 1
	case '*':
		return tokStar, 1
	case '?':
		return tokFilter, 1
	}
	return tokEOF, 0
}

// scanNumber returns the end of the number starting at i: an optional sign,
// digits, an optional fraction and an optional exponent.
func scanNumber(s string, i int) int {
	digits := func(i int) int {
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		return i
	}
	if s[i] == '-' {
		i++
	}
	i = digits(i)
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i = digits(i + 1)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			i = digits(j)
		}
	}
	return i
}

// scanQuoted reads the quoted string opening at s[i] and returns its
// unescaped value and the index just past the closing quote.
func scanQuoted(s string, i int) (string, int, error) {
	quote := s[i]
	var b strings.Builder
	for i++; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == quote:
			return b.String(), i + 1, nil
		case ch == '\\' && i+1 < len(s):
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(s[i])
			}
		default:
			b.WriteByte(ch)
		}
	}
	return "", 0, fmt.Errorf("jsonpath: unterminated string at position %d", len(s))
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

// isIdentChar accepts bytes of unquoted member names. Hyphens are allowed
// since header-like keys are common; bytes >= 0x80 admit UTF-8 names.
func isIdentChar(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || isDigit(ch) ||
		ch == '_' || ch == '-' || ch >= 0x80
}
