// Package jsonpath implements the subset of RFC 9535 JSONPath used to select
// parts of a transformed document from the CLI and the MCP server.
//
// Supported syntax:
//   - $ (root)
//   - .field or ['field'] (child access)
//   - .* or [*] (all children)
//   - [0], [-1] (array index, negative counts from the end)
//   - ..field, ..*, ..[0] (recursive descent)
//   - [?@.field] (existence) and [?@.a.b==value] comparisons with
//     ==, !=, <, <=, >, >=, combined with && and ||
//
// Queries are read-only and operate on node trees; object members are
// visited in document order.
package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is a parsed JSONPath expression. A Path is immutable and safe for
// concurrent use.
type Path struct {
	raw      string
	segments []Segment
}

// String returns the expression the Path was parsed from.
func (p *Path) String() string {
	return p.raw
}

// Segment is one selector step of a Path.
type Segment interface {
	segment()
}

// ChildSegment selects an object member by name.
type ChildSegment struct {
	Key string
}

// WildcardSegment selects every member of an object or element of an array.
type WildcardSegment struct{}

// IndexSegment selects an array element.
type IndexSegment struct {
	Index int
}

// RecursiveSegment applies Child to the current value and every descendant.
type RecursiveSegment struct {
	Child Segment
}

// FilterSegment selects the children of a collection that satisfy Expr.
type FilterSegment struct {
	Expr Filter
}

func (ChildSegment) segment()     {}
func (WildcardSegment) segment()  {}
func (IndexSegment) segment()     {}
func (RecursiveSegment) segment() {}
func (FilterSegment) segment()    {}

// Parse parses a JSONPath expression.
//
//	Parse("$.SecondaryRatings")
//	Parse("$['first name']")
//	Parse("$.items[?@.price>=10 && @.tags]")
//	Parse("$..Value")
func Parse(expr string) (*Path, error) {
	if expr == "" {
		return nil, fmt.Errorf("jsonpath: empty expression")
	}
	toks, err := lex(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	segments, err := p.path()
	if err != nil {
		return nil, err
	}
	return &Path{raw: expr, segments: segments}, nil
}

// parser is a recursive-descent parser over the token stream. The stream
// always ends with tokEOF, so peek never runs off the end.
type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) accept(kind tokenKind) bool {
	if p.peek().kind == kind {
		p.i++
		return true
	}
	return false
}

func (p *parser) expect(kind tokenKind, context string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, fmt.Errorf("jsonpath: expected %s %s at position %d, found %s", kind, context, t.pos, t.kind)
	}
	return t, nil
}

func (p *parser) path() ([]Segment, error) {
	if !p.accept(tokRoot) {
		return nil, fmt.Errorf("jsonpath: expression must start with '$'")
	}

	buf := segmentScratch.borrow()
	defer segmentScratch.release(buf)

	for {
		var (
			seg Segment
			err error
		)
		switch t := p.next(); t.kind {
		case tokEOF:
			return detach(*buf), nil
		case tokDot:
			seg, err = p.member()
		case tokOpen:
			seg, err = p.bracket()
		case tokDescend:
			if p.accept(tokOpen) {
				seg, err = p.bracket()
			} else {
				seg, err = p.member()
			}
			seg = RecursiveSegment{Child: seg}
		default:
			return nil, fmt.Errorf("jsonpath: unexpected %s at position %d", t.kind, t.pos)
		}
		if err != nil {
			return nil, err
		}
		*buf = append(*buf, seg)
	}
}

// member parses what follows a '.' or '..': a name or '*'.
func (p *parser) member() (Segment, error) {
	if p.accept(tokStar) {
		return WildcardSegment{}, nil
	}
	t, err := p.expect(tokWord, "after '.'")
	if err != nil {
		return nil, err
	}
	return ChildSegment{Key: t.text}, nil
}

// bracket parses the inside of [...] after the opening bracket.
func (p *parser) bracket() (Segment, error) {
	var seg Segment
	switch t := p.next(); t.kind {
	case tokStar:
		seg = WildcardSegment{}
	case tokString:
		seg = ChildSegment{Key: t.text}
	case tokWord:
		idx, err := strconv.Atoi(t.text)
		if err != nil {
			return nil, fmt.Errorf("jsonpath: invalid index %q at position %d", t.text, t.pos)
		}
		seg = IndexSegment{Index: idx}
	case tokFilter:
		f, err := p.filter()
		if err != nil {
			return nil, err
		}
		seg = FilterSegment{Expr: f}
	default:
		return nil, fmt.Errorf("jsonpath: unexpected %s in brackets at position %d", t.kind, t.pos)
	}
	if _, err := p.expect(tokClose, "to close brackets"); err != nil {
		return nil, err
	}
	return seg, nil
}

// filter parses a filter expression, optionally wrapped in parentheses.
func (p *parser) filter() (Filter, error) {
	paren := p.accept(tokLParen)
	f, err := p.or()
	if err != nil {
		return nil, err
	}
	if paren {
		if _, err := p.expect(tokRParen, "to close filter"); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (p *parser) or() (Filter, error) {
	left, err := p.and()
	for err == nil && p.accept(tokOr) {
		var right Filter
		if right, err = p.and(); err == nil {
			left = OrFilter{Left: left, Right: right}
		}
	}
	return left, err
}

func (p *parser) and() (Filter, error) {
	left, err := p.test()
	for err == nil && p.accept(tokAnd) {
		var right Filter
		if right, err = p.test(); err == nil {
			left = AndFilter{Left: left, Right: right}
		}
	}
	return left, err
}

// test parses @.a.b alone (existence) or followed by an operator and value.
func (p *parser) test() (Filter, error) {
	if _, err := p.expect(tokCurrent, "in filter"); err != nil {
		return nil, err
	}
	var field []string
	for p.accept(tokDot) {
		t, err := p.expect(tokWord, "as filter field")
		if err != nil {
			return nil, err
		}
		field = append(field, t.text)
	}
	if len(field) == 0 {
		return nil, fmt.Errorf("jsonpath: expected '@.' followed by a field name at position %d", p.peek().pos)
	}

	op := p.peek()
	if op.kind != tokCompare {
		return ExistsFilter{Field: field}, nil
	}
	p.next()
	value, err := p.literal()
	if err != nil {
		return nil, err
	}
	return Comparison{Field: field, Operator: op.text, Value: value}, nil
}

// literal parses the right-hand side of a comparison.
func (p *parser) literal() (any, error) {
	t := p.next()
	switch t.kind {
	case tokString:
		return t.text, nil
	case tokNumber:
		if strings.ContainsAny(t.text, ".eE") {
			f, err := strconv.ParseFloat(t.text, 64)
			if err != nil {
				return nil, fmt.Errorf("jsonpath: invalid number %q: %w", t.text, err)
			}
			return f, nil
		}
		i, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("jsonpath: invalid number %q: %w", t.text, err)
		}
		return i, nil
	case tokWord:
		switch t.text {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		}
	}
	return nil, fmt.Errorf("jsonpath: expected a string, number, true, false or null at position %d", t.pos)
}
