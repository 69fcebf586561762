package pathelement

// MatchedElement is the result of matching one input key: the key itself,
// the wildcard captures, and a count of how many children of this level
// have matched so far.
type MatchedElement struct {
	raw       string
	captures  []string
	hashCount int
}

// NewMatchedElement returns a match with no wildcard captures.
func NewMatchedElement(key string) *MatchedElement {
	return &MatchedElement{raw: key, captures: []string{key}}
}

func newCapturedElement(key string, groups []string) *MatchedElement {
	captures := make([]string, 0, len(groups)+1)
	captures = append(captures, key)
	captures = append(captures, groups...)
	return &MatchedElement{raw: key, captures: captures}
}

// RawKey returns the key that matched.
func (m *MatchedElement) RawKey() string {
	return m.raw
}

// Capture returns capture group i. Group 0 is the whole key.
func (m *MatchedElement) Capture(i int) (string, bool) {
	if i < 0 || i >= len(m.captures) {
		return "", false
	}
	return m.captures[i], true
}

// Captures returns the number of capture groups including group 0.
func (m *MatchedElement) Captures() int {
	return len(m.captures)
}

// HashCount returns how many children have matched under this level.
func (m *MatchedElement) HashCount() int {
	return m.hashCount
}

// IncrementHashCount records one more matched child.
func (m *MatchedElement) IncrementHashCount() {
	m.hashCount++
}
