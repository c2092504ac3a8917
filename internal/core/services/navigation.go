package services

import (
	"sync"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"
)

// Swipe classification thresholds, in surface coordinates. A gesture is
// vertical navigation only when the vertical travel dominates.
const (
	swipeMinVertical   = 50.0
	swipeMaxHorizontal = 100.0
)

// NavigationController moves across the ordered list of eligible
// streams. A transition guard blocks navigation commands while a prior
// transition is in flight.
type NavigationController struct {
	mu sync.Mutex

	streams       []domain.Stream
	index         int
	transitioning bool

	debounce time.Duration
	sched    ports.Scheduler
	guard    ports.TimerHandle

	onChange func(domain.Stream)
}

func NewNavigationController(sched ports.Scheduler, debounce time.Duration, onChange func(domain.Stream)) *NavigationController {
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	return &NavigationController{
		sched:    sched,
		debounce: debounce,
		onChange: onChange,
	}
}

// SetStreams replaces the eligible list and re-anchors the index on the
// given current stream. Unknown or empty current pins the index to 0.
func (n *NavigationController) SetStreams(streams []domain.Stream, currentID domain.StreamID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.streams = streams
	n.index = 0
	for i, s := range streams {
		if s.ID == currentID {
			n.index = i
			break
		}
	}
}

// Index returns the current navigation index.
func (n *NavigationController) Index() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.index
}

// Len returns the eligible list length.
func (n *NavigationController) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.streams)
}

// Next advances to the following stream. No-op at the end of the list
// or while a transition is in flight.
func (n *NavigationController) Next() bool {
	return n.step(1)
}

// Prev moves to the previous stream. No-op at index 0 or while a
// transition is in flight.
func (n *NavigationController) Prev() bool {
	return n.step(-1)
}

func (n *NavigationController) step(delta int) bool {
	n.mu.Lock()

	target := n.index + delta
	if n.transitioning || target < 0 || target >= len(n.streams) {
		n.mu.Unlock()
		return false
	}

	n.index = target
	n.transitioning = true
	selected := n.streams[target]

	if n.guard != nil {
		n.guard.Cancel()
	}
	n.guard = n.sched.After(n.debounce, func() {
		n.mu.Lock()
		n.transitioning = false
		n.mu.Unlock()
	})
	n.mu.Unlock()

	if n.onChange != nil {
		n.onChange(selected)
	}
	return true
}

// Swipe classifies a directional gesture from its start and end points
// and navigates when it qualifies as vertical. Swipe up (end above
// start) means next; swipe down means previous.
func (n *NavigationController) Swipe(startX, startY, endX, endY float64) bool {
	deltaY := startY - endY
	deltaX := endX - startX
	if deltaX < 0 {
		deltaX = -deltaX
	}

	absY := deltaY
	if absY < 0 {
		absY = -absY
	}
	if absY <= swipeMinVertical || deltaX >= swipeMaxHorizontal {
		return false
	}

	if deltaY > 0 {
		return n.Next()
	}
	return n.Prev()
}

// Reset cancels the transition guard and clears the list. Called on
// session close.
func (n *NavigationController) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.guard != nil {
		n.guard.Cancel()
		n.guard = nil
	}
	n.transitioning = false
	n.streams = nil
	n.index = 0
}
