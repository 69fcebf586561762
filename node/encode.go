package node

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// Marshal renders v as compact JSON.
func Marshal(v any) ([]byte, error) {
	e := &encoder{}
	if err := e.value(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// MarshalIndent renders v as JSON with each element on its own line,
// beginning with prefix and indented by indent per nesting level.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	e := &encoder{prefix: prefix, indent: indent, pretty: true}
	if err := e.value(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder struct {
	buf    bytes.Buffer
	prefix string
	indent string
	pretty bool
}

func (e *encoder) newline(depth int) {
	if !e.pretty {
		return
	}
	e.buf.WriteByte('\n')
	e.buf.WriteString(e.prefix)
	for range depth {
		e.buf.WriteString(e.indent)
	}
}

func (e *encoder) value(v any, depth int) error {
	switch t := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		e.buf.WriteString(strconv.FormatBool(t))
	case int64:
		e.buf.WriteString(strconv.FormatInt(t, 10))
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return fmt.Errorf("node: unsupported float value %v", t)
		}
		e.buf.WriteString(FormatFloat(t))
	case string:
		writeString(&e.buf, t)
	case *Array:
		if t.Len() == 0 {
			e.buf.WriteString("[]")
			return nil
		}
		e.buf.WriteByte('[')
		for i, item := range t.items {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.newline(depth + 1)
			if err := e.value(item, depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.buf.WriteByte(']')
	case *Object:
		if t.Len() == 0 {
			e.buf.WriteString("{}")
			return nil
		}
		e.buf.WriteByte('{')
		first := true
		for p := t.m.Oldest(); p != nil; p = p.Next() {
			if !first {
				e.buf.WriteByte(',')
			}
			first = false
			e.newline(depth + 1)
			writeString(&e.buf, p.Key)
			e.buf.WriteByte(':')
			if e.pretty {
				e.buf.WriteByte(' ')
			}
			if err := e.value(p.Value, depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.buf.WriteByte('}')
	default:
		return fmt.Errorf("node: unsupported type %T", v)
	}
	return nil
}

const hexDigits = "0123456789abcdef"

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				buf.WriteByte('\\')
				buf.WriteByte(c)
			case c == '\n':
				buf.WriteString(`\n`)
			case c == '\r':
				buf.WriteString(`\r`)
			case c == '\t':
				buf.WriteString(`\t`)
			case c < 0x20:
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[c>>4])
				buf.WriteByte(hexDigits[c&0xF])
			default:
				buf.WriteByte(c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			buf.WriteString(`�`)
		case r == ' ' || r == ' ':
			buf.WriteString(`\u202`)
			buf.WriteByte(hexDigits[r&0xF])
		default:
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
	buf.WriteByte('"')
}
