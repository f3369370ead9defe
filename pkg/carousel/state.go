package carousel

import (
	"github.com/go-drift/carousel/pkg/loop"
	"github.com/go-drift/carousel/pkg/transition"
)

// State is a point-in-time view of a carousel, published after every event
// the loop handles.
type State struct {
	// Index is the selected padded index. It may be a padding slot while a
	// correction is pending.
	Index int `json:"index"`
	// RealIndex is the caller-list index of the item being shown.
	RealIndex int `json:"real_index"`
	// Slot classifies Index.
	Slot loop.Slot `json:"-"`
	// SlotName is Slot.String(), for serialisation.
	SlotName string `json:"slot"`
	// Count is the number of caller items.
	Count int `json:"count"`
	// Looping is false when the carousel has no items.
	Looping bool `json:"looping"`
	// Running reports whether the autoplay timer is live.
	Running bool `json:"running"`
	// Dragging reports whether the last offset sample was non-zero.
	Dragging bool `json:"dragging"`
	// Offset is the last offset sample of the focused page.
	Offset float64 `json:"offset"`
	// ScaleEnabled reports whether the scale transition is applied.
	ScaleEnabled bool `json:"scale_enabled"`
	// Pending reports whether a padding correction is scheduled.
	Pending bool `json:"pending"`
}

// Page is one padded page ready for rendering.
type Page[R any] struct {
	// Index is the padded index; it is the page's identity.
	Index int
	// RealIndex is the caller-list index the page shows.
	RealIndex int
	// Padding is true for the two duplicate pages.
	Padding bool
	// Content is the rendered item.
	Content R
	// Offset is the page's horizontal displacement from the resting
	// position.
	Offset float64
	// Visual holds the transition properties for Offset.
	Visual transition.Visual
}

// Snapshot returns the most recently published state. It is safe to call
// from any goroutine.
func (c *Carousel[T, R]) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Subscribe registers fn to receive every published state that differs from
// the previous one. fn runs on the event loop and must not block.
// Returns an unsubscribe function.
func (c *Carousel[T, R]) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Pages returns every padded page positioned relative to the latest
// published state. The focused page carries the live offset; its neighbours
// are one screen width apart.
func (c *Carousel[T, R]) Pages() []Page[R] {
	st := c.Snapshot()
	pages := make([]Page[R], len(c.contents))
	for i, content := range c.contents {
		offset := float64(i-st.Index)*c.cfg.ScreenWidth + st.Offset
		pages[i] = Page[R]{
			Index:     i,
			RealIndex: c.seq.Real(i),
			Padding:   c.seq.IsPadding(i),
			Content:   content,
			Offset:    offset,
			Visual:    transition.Render(offset, c.cfg.ScreenWidth, c.cfg.Transition, st.ScaleEnabled),
		}
	}
	return pages
}

// Current returns the rendered content of the page being shown.
func (c *Carousel[T, R]) Current() (R, bool) {
	st := c.Snapshot()
	if st.Index < 0 || st.Index >= len(c.contents) {
		var zero R
		return zero, false
	}
	return c.contents[st.Index], true
}

func (c *Carousel[T, R]) snapshot() State {
	slot := c.remap.Slot()
	return State{
		Index:        c.remap.Index(),
		RealIndex:    c.remap.RealIndex(),
		Slot:         slot,
		SlotName:     slot.String(),
		Count:        c.seq.RealLen(),
		Looping:      c.seq.Looping(),
		Running:      c.timer.Running(),
		Dragging:     c.observer.Dragging(),
		Offset:       c.offset,
		ScaleEnabled: c.scale,
		Pending:      c.pending != nil,
	}
}

func (c *Carousel[T, R]) publish() {
	next := c.snapshot()

	c.mu.Lock()
	changed := next != c.state
	c.state = next
	var listeners []func(State)
	if changed {
		listeners = make([]func(State), 0, len(c.listeners))
		for _, fn := range c.listeners {
			listeners = append(listeners, fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}
