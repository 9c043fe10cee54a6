// Package nav tracks the path of visited product views so a single back
// affordance can retrace it. Frames live only for the session.
package nav

// FrameKind tags the two frame variants.
type FrameKind string

const (
	FrameCategory FrameKind = "category"
	FrameProduct  FrameKind = "product"
)

// Frame is one step of the navigation history: either a product list
// (category) or a product detail view.
type Frame struct {
	Kind       FrameKind
	CategoryID int64
	ProductID  int64
}

// CategoryFrame marks a visit to a category's product list.
func CategoryFrame(categoryID int64) Frame {
	return Frame{Kind: FrameCategory, CategoryID: categoryID}
}

// ProductFrame marks a visit to a product's detail view.
func ProductFrame(productID, categoryID int64) Frame {
	return Frame{Kind: FrameProduct, ProductID: productID, CategoryID: categoryID}
}

// Stack is an append/pop-at-tail frame history. The zero value is usable.
type Stack struct {
	frames []Frame
}

// Push appends a frame.
func (s *Stack) Push(f Frame) {
	s.frames = append(s.frames, f)
}

// Pop removes and returns the most recent frame. It reports false on an
// empty stack instead of underflowing.
func (s *Stack) Pop() (Frame, bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top, true
}

// Peek returns the most recent frame without removing it.
func (s *Stack) Peek() (Frame, bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// Len returns the current depth.
func (s *Stack) Len() int {
	return len(s.frames)
}

// Reset drops all frames. Entering the category list always starts from
// an empty history.
func (s *Stack) Reset() {
	s.frames = nil
}
