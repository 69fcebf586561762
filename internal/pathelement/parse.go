package pathelement

import (
	"strconv"
	"strings"

	"github.com/erraggy/jolt/jolterrors"
)

// ParseKey parses a spec key into one matcher per "|" alternative.
func ParseKey(key string) ([]Matcher, error) {
	alternatives := splitUnescaped(key, '|')
	out := make([]Matcher, 0, len(alternatives))
	for _, alt := range alternatives {
		m, err := parseSingleKey(alt)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func parseSingleKey(key string) (Matcher, error) {
	meta := unescaped(key)
	switch {
	case key == "@":
		return &At{}, nil
	case key == "*":
		return &StarAll{}, nil
	case strings.HasPrefix(key, "["):
		return parseArrayKey(key)
	case strings.HasPrefix(key, "@") || strings.Contains(meta, "@("):
		return parseTranspose(key)
	case strings.Contains(meta, "@"):
		return nil, jolterrors.NewSpecError(key, "@ is only valid at the start of a key")
	case strings.Contains(meta, "$"):
		return parseDollar(key)
	case strings.Contains(meta, "&"):
		if strings.Contains(meta, "*") {
			return nil, jolterrors.NewSpecError(key, "* and & can not be mixed in one key")
		}
		return parseReference(key)
	case strings.Contains(meta, "*"):
		return parseStar(key), nil
	case strings.HasPrefix(key, "#"):
		return &Hash{value: unescape(key[1:])}, nil
	}
	return &Literal{key: unescape(key)}, nil
}

func parseArrayKey(key string) (Matcher, error) {
	if !strings.HasSuffix(key, "]") || strings.Count(key, "[") != 1 || strings.Count(key, "]") != 1 {
		return nil, jolterrors.NewSpecError(key, "malformed array key")
	}
	inner := key[1 : len(key)-1]
	switch {
	case inner == "*":
		return &StarAll{Array: true}, nil
	case strings.HasPrefix(inner, "&"):
		return parseReference(inner)
	case isDigits(inner):
		idx, err := strconv.Atoi(inner)
		if err != nil {
			return nil, jolterrors.NewSpecError(key, "array index out of range")
		}
		return &ArrayIndex{index: idx, text: strconv.Itoa(idx)}, nil
	}
	return nil, jolterrors.NewSpecError(key, "array key must be [N], [*] or [&...]")
}

func parseStar(key string) *Star {
	raw := splitUnescaped(key, '*')
	parts := make([]string, len(raw))
	for i, p := range raw {
		parts[i] = unescape(p)
	}
	return &Star{canonical: key, parts: parts}
}

func parseDollar(key string) (Matcher, error) {
	if !strings.HasPrefix(key, "$") {
		return nil, jolterrors.NewSpecError(key, "$ is only valid at the start of a key")
	}
	ref, rest, err := parseRefToken(key[1:])
	if err != nil {
		return nil, jolterrors.NewSpecError(key, "%s", err.Error())
	}
	if rest != "" {
		return nil, jolterrors.NewSpecError(key, "unexpected text %q after $ reference", rest)
	}
	return &Dollar{ref: ref}, nil
}

// parseReference parses literal text mixed with & references.
func parseReference(s string) (*Reference, error) {
	var tokens []token
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{text: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			lit.WriteByte(s[i])
			continue
		}
		if c != '&' {
			lit.WriteByte(c)
			continue
		}
		ref, rest, err := parseRefToken(s[i+1:])
		if err != nil {
			return nil, jolterrors.NewSpecError(s, "%s", err.Error())
		}
		flush()
		tokens = append(tokens, token{ref: ref, isRef: true})
		i = len(s) - len(rest) - 1
	}
	flush()
	return &Reference{tokens: tokens}, nil
}

// parseRefToken parses what follows a '&' or '$': nothing, digits, or a
// parenthesized "N" or "N,M". It returns the unconsumed remainder.
func parseRefToken(s string) (Ref, string, error) {
	if strings.HasPrefix(s, "(") {
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return Ref{}, "", errUnclosed
		}
		inner := s[1:end]
		upText, groupText, hasGroup := strings.Cut(inner, ",")
		up, err := parseLevel(strings.TrimSpace(upText))
		if err != nil {
			return Ref{}, "", err
		}
		group := 0
		if hasGroup {
			group, err = parseLevel(strings.TrimSpace(groupText))
			if err != nil {
				return Ref{}, "", err
			}
		}
		return Ref{Up: up, Group: group}, s[end+1:], nil
	}
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return Ref{}, s, nil
	}
	up, err := parseLevel(s[:n])
	if err != nil {
		return Ref{}, "", err
	}
	return Ref{Up: up}, s[n:], nil
}

type refError string

func (e refError) Error() string { return string(e) }

const (
	errUnclosed = refError("reference is missing a closing ')'")
	errLevel    = refError("reference levels must be non-negative integers")
)

func parseLevel(s string) (int, error) {
	if !isDigits(s) {
		return 0, errLevel
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errLevel
	}
	return n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseTranspose parses a standalone "@" lookup such as "@(1,name)".
func ParseTranspose(s string) (*Transpose, error) {
	return parseTranspose(s)
}

// parseTranspose parses "@", "@N", "@path", "@(N)", "@(path)" and
// "@(N,path)".
func parseTranspose(key string) (*Transpose, error) {
	if !strings.HasPrefix(key, "@") {
		return nil, jolterrors.NewSpecError(key, "@ is only valid at the start of a key")
	}
	meat := key[1:]
	if meat == "" {
		return &Transpose{}, nil
	}
	if strings.Contains(meat, "@") {
		return nil, jolterrors.NewSpecError(key, "@ can not be nested")
	}
	if strings.Contains(unescaped(meat), "*") || strings.Contains(meat, "[]") {
		return nil, jolterrors.NewSpecError(key, "@ can not contain * or []")
	}
	if strings.HasPrefix(meat, "(") {
		if !strings.HasSuffix(meat, ")") {
			return nil, jolterrors.NewSpecError(key, "@( is missing a closing ')'")
		}
		meat = meat[1 : len(meat)-1]
		if meat == "" {
			return nil, jolterrors.NewSpecError(key, "@() is empty")
		}
	}
	if meat[0] < '0' || meat[0] > '9' {
		path, err := parseReadPath(key, meat)
		if err != nil {
			return nil, err
		}
		return &Transpose{path: path}, nil
	}
	upText, pathText, hasPath := strings.Cut(meat, ",")
	up, err := parseLevel(upText)
	if err != nil {
		return nil, jolterrors.NewSpecError(key, "@ level must be a non-negative integer")
	}
	if !hasPath {
		return &Transpose{up: up}, nil
	}
	path, err := parseReadPath(key, pathText)
	if err != nil {
		return nil, err
	}
	return &Transpose{up: up, path: path}, nil
}

// parsePathElement parses one element of a write or read path.
func parsePathElement(s string) (Evaluator, error) {
	meta := unescaped(s)
	switch {
	case strings.HasPrefix(s, "@"):
		return parseTranspose(s)
	case strings.HasPrefix(s, "["):
		return parseArrayElement(s)
	case strings.Contains(meta, "*"):
		return nil, jolterrors.NewSpecError(s, "* is not valid in an output path")
	case strings.Contains(meta, "$"):
		return nil, jolterrors.NewSpecError(s, "$ is not valid in an output path")
	case strings.Contains(meta, "@"):
		return nil, jolterrors.NewSpecError(s, "@ is only valid at the start of a path element")
	case strings.Contains(meta, "&"):
		return parseReference(s)
	}
	return &Literal{key: unescape(s)}, nil
}

func parseArrayElement(s string) (*ArrayElement, error) {
	if !strings.HasSuffix(s, "]") {
		return nil, jolterrors.NewSpecError(s, "malformed array element")
	}
	inner := s[1 : len(s)-1]
	switch {
	case inner == "":
		return &ArrayElement{kind: arrayAppend}, nil
	case isDigits(inner):
		idx, err := strconv.Atoi(inner)
		if err != nil {
			return nil, jolterrors.NewSpecError(s, "array index out of range")
		}
		return &ArrayElement{kind: arrayIndex, index: strconv.Itoa(idx)}, nil
	case strings.HasPrefix(inner, "&"):
		ref, err := parseReference(inner)
		if err != nil {
			return nil, err
		}
		return &ArrayElement{kind: arrayRef, ref: ref}, nil
	case strings.HasPrefix(inner, "#"):
		up, err := parseLevel(inner[1:])
		if err != nil {
			return nil, jolterrors.NewSpecError(s, "[#N] needs a non-negative level")
		}
		return &ArrayElement{kind: arrayHash, hashUp: up}, nil
	case strings.HasPrefix(inner, "@"):
		t, err := parseTranspose(inner)
		if err != nil {
			return nil, err
		}
		return &ArrayElement{kind: arrayTranspose, transpose: t}, nil
	}
	return nil, jolterrors.NewSpecError(s, "array element must be [], [N], [&...], [#N] or [@...]")
}

// splitBrackets splits "key[0][&1]" into "key", "[0]", "[&1]".
func splitBrackets(s string) ([]string, error) {
	var parts []string
	start := 0
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
		case '[':
			if depth > 0 {
				continue
			}
			if i > start {
				parts = append(parts, s[start:i])
			}
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, jolterrors.NewSpecError(s, "missing closing ']'")
			}
			parts = append(parts, s[i:i+end+1])
			i += end
			start = i + 1
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts, nil
}
