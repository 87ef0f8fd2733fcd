package input

import "github.com/Carmen-Shannon/dust-bunny/common"

// Queue collects events between polls. It is not safe for concurrent use; GLFW delivers callbacks on the
// thread that polls, which is also the thread that drains.
type Queue struct {
	events []Event

	panButton MouseButton
	dragging  bool
	last      common.Vector2
}

// NewQueue creates an empty queue that turns pointer moves into Drag events while panButton is held.
func NewQueue(panButton MouseButton) *Queue {
	return &Queue{panButton: panButton}
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Drain returns every queued event in arrival order and empties the queue.
//
// Returns:
//   - []Event: the pending events, nil if there were none
func (q *Queue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Button records a press or release. Only the pan button is tracked.
//
// Parameters:
//   - button: the button that changed
//   - pressed: true on press, false on release
//   - pos: the pointer position in screen pixels
func (q *Queue) Button(button MouseButton, pressed bool, pos common.Vector2) {
	if button != q.panButton {
		return
	}
	q.dragging = pressed
	q.last = pos
}

// Move records a pointer move, queueing a Drag if the pan button is held and the pointer actually moved.
func (q *Queue) Move(pos common.Vector2) {
	if !q.dragging {
		q.last = pos
		return
	}
	delta := pos.Sub(q.last)
	q.last = pos
	if delta.X == 0 && delta.Y == 0 {
		return
	}
	q.Push(Drag{Delta: delta, Position: pos})
}

// Scroll queues a Scroll at the last known pointer position.
func (q *Queue) Scroll(yoff float32) {
	if yoff == 0 {
		return
	}
	q.Push(Scroll{Delta: yoff, Cursor: q.last})
}

// Cursor returns the last known pointer position.
func (q *Queue) Cursor() common.Vector2 {
	return q.last
}
