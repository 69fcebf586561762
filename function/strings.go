package function

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/jolt/node"
)

const maxPadWidth = 500

// splitTimeout bounds the regular expression scan of split.
const splitTimeout = time.Second

func stringFunc(f func(string) string) singleApply {
	return func(arg any) (any, bool) {
		s, ok := arg.(string)
		if !ok {
			return nil, false
		}
		return f(s), true
	}
}

func toLower(s string) string { return cases.Lower(language.Und).String(s) }
func toUpper(s string) string { return cases.Upper(language.Und).String(s) }
func trim(s string) string    { return strings.TrimSpace(s) }

// concat joins the text of every non-null argument.
func concat(items []any) (any, bool) {
	var b strings.Builder
	for _, item := range items {
		if item != nil {
			b.WriteString(node.String(item))
		}
	}
	return b.String(), true
}

// join joins the text of the non-null, non-empty arguments with sep.
func join(sep string, items []any) (any, bool) {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if s := node.String(item); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep), true
}

// split splits a string around the matches of a regular expression
// separator. Empty matches do not split.
func split(sep string, arg any) (any, bool) {
	s, ok := arg.(string)
	if !ok {
		return nil, false
	}
	re, err := regexp2.Compile(sep, regexp2.None)
	if err != nil {
		return nil, false
	}
	re.MatchTimeout = splitTimeout
	runes := []rune(s)
	out := node.NewArray()
	start := 0
	m, err := re.FindRunesMatch(runes)
	for ; m != nil && err == nil; m, err = re.FindNextMatch(m) {
		if m.Length == 0 {
			continue
		}
		out.Append(string(runes[start:m.Index]))
		start = m.Index + m.Length
	}
	if err != nil {
		return nil, false
	}
	out.Append(string(runes[start:]))
	return out, true
}

// substring returns the characters of a string in [start, end).
func substring(items []any) (any, bool) {
	if len(items) != 3 {
		return nil, false
	}
	s, ok := items[0].(string)
	start, sok := items[1].(int64)
	end, eok := items[2].(int64)
	if !ok || !sok || !eok {
		return nil, false
	}
	runes := []rune(s)
	if start >= end || start < 0 || end < 1 || end > int64(len(runes)) {
		return nil, false
	}
	return string(runes[start:end]), true
}

func leftPad(source string, args []any) (any, bool)  { return pad(true, source, args) }
func rightPad(source string, args []any) (any, bool) { return pad(false, source, args) }

// pad pads source to width runes with a single-character filler.
func pad(left bool, source string, args []any) (any, bool) {
	if len(args) < 2 {
		return nil, false
	}
	width, wok := args[0].(int64)
	filler, fok := args[1].(string)
	if !wok || !fok {
		return nil, false
	}
	if width <= 0 || width > maxPadWidth || utf8.RuneCountInString(filler) != 1 {
		return nil, false
	}
	n := int(width) - utf8.RuneCountInString(source)
	if n <= 0 {
		return source, true
	}
	padding := strings.Repeat(filler, n)
	if left {
		return padding + source, true
	}
	return source + padding, true
}
