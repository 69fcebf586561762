package pathelement

// Frame is one level of a walk: the input value at that level and the
// match that led there. Levels that walk an array remember the array's
// length before any expansion.
type Frame struct {
	TreeRef     any
	Match       *MatchedElement
	OrigSize    int
	HasOrigSize bool
}

// WalkedPath is the stack of frames from the root of a walk to the level
// being processed. A WalkedPath belongs to one walk and is not safe for
// concurrent use.
type WalkedPath struct {
	frames []Frame
}

// NewWalkedPath returns a path holding a single root frame.
func NewWalkedPath(tree any, key string) *WalkedPath {
	wp := &WalkedPath{frames: make([]Frame, 0, 8)}
	wp.frames = append(wp.frames, Frame{TreeRef: tree, Match: NewMatchedElement(key)})
	return wp
}

// Push adds a frame and returns the function that removes it. Callers
// defer the returned function so every exit path restores the stack.
func (wp *WalkedPath) Push(tree any, m *MatchedElement) func() {
	return wp.push(Frame{TreeRef: tree, Match: m})
}

// PushList adds a frame for an array whose length before expansion was
// origSize.
func (wp *WalkedPath) PushList(tree any, m *MatchedElement, origSize int) func() {
	return wp.push(Frame{TreeRef: tree, Match: m, OrigSize: origSize, HasOrigSize: true})
}

func (wp *WalkedPath) push(f Frame) func() {
	depth := len(wp.frames)
	wp.frames = append(wp.frames, f)
	return func() {
		wp.frames = wp.frames[:depth]
	}
}

// Len returns the number of frames.
func (wp *WalkedPath) Len() int {
	return len(wp.frames)
}

// Last returns the innermost frame. It panics on an empty path.
func (wp *WalkedPath) Last() Frame {
	return wp.frames[len(wp.frames)-1]
}

// FromEnd returns the frame up levels above the innermost one.
func (wp *WalkedPath) FromEnd(up int) (Frame, bool) {
	if up < 0 || up >= len(wp.frames) {
		return Frame{}, false
	}
	return wp.frames[len(wp.frames)-1-up], true
}
