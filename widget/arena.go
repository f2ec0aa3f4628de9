// Package widget implements the declarative widget tree: a per-frame
// immutable tree of layout and drawing nodes allocated from a frame
// arena, rendered by recursive descent that drives the layout solver
// and the cell buffer.
package widget

// Arena is a bump-allocated region holding one frame's widget nodes.
// A frame boundary (Begin) swaps in a fresh slab and resets the offset
// to zero; every widget built in a prior frame becomes invalid the
// moment the next frame begins.
//
// Each widget is stamped with the arena's generation counter at
// allocation time. Dereference in a debug build can compare a
// widget's generation against the arena's current one to catch a
// stale reference (Design Notes, "arena lifetimes").
type Arena struct {
	slab []Widget
	next int
	gen  uint32
}

// NewArena allocates an arena with room for capacity widgets per
// frame. A typical full-screen frame needs on the order of a few
// dozen to a few hundred nodes.
func NewArena(capacity int) *Arena {
	return &Arena{slab: make([]Widget, capacity)}
}

// Begin starts a new frame: the arena takes a fresh slab of the same
// capacity, its bump offset resets to zero and its generation
// advances, invalidating every widget built in the previous frame.
// Prior-frame widgets keep their old generation stamp, so stale
// reports them. It returns a Frame whose constructor methods allocate
// from this arena.
func (a *Arena) Begin() *Frame {
	a.slab = make([]Widget, len(a.slab))
	a.next = 0
	a.gen++
	return &Frame{arena: a}
}

// End is the frame's closing boundary. It does no work today — arena
// state is fully owned by the next Begin's reset — but callers should
// still bracket a frame with it, both to mark intent and in case a
// future revision needs a hook here (e.g. leak counters in a debug
// build).
func (f *Frame) End() {}

// alloc returns a fresh zero-valued Widget slot, or nil if the arena
// is exhausted. A nil widget propagates as a missing node: Render
// treats it as a no-op, per spec's rendering-error degradation policy.
func (a *Arena) alloc() *Widget {
	if a.next >= len(a.slab) {
		return nil
	}
	w := &a.slab[a.next]
	*w = Widget{}
	w.gen = a.gen
	a.next++
	return w
}

// stale reports whether w was allocated in an earlier generation than
// the arena currently holds, i.e. it comes from a frame that has
// since been reset.
func (a *Arena) stale(w *Widget) bool {
	return w != nil && w.gen != a.gen
}
