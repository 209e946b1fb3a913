// Package ringbuf keeps the most recent values in a fixed-size ring. Once
// the ring is full each Push overwrites the oldest value. It backs the
// calculator tape.
//
// A Ring is not safe for concurrent use.
package ringbuf

// Ring holds at most Cap values, oldest first.
type Ring[T any] struct {
	buf   []T
	start int // index of the oldest value
	n     int
}

// New creates a ring holding up to capacity values. A capacity below 1
// means 1.
func New[T any](capacity int) *Ring[T] {
	return &Ring[T]{buf: make([]T, max(capacity, 1))}
}

// Push appends v. When the ring is full the oldest value is dropped and
// returned with evicted set.
func (r *Ring[T]) Push(v T) (old T, evicted bool) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = v
		r.n++
		return old, false
	}
	old = r.buf[r.start]
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
	return old, true
}

// Items copies the held values, oldest first.
func (r *Ring[T]) Items() []T {
	out := make([]T, r.n)
	for i := range out {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// Len returns how many values are held.
func (r *Ring[T]) Len() int { return r.n }

// Cap returns the most values the ring can hold.
func (r *Ring[T]) Cap() int { return len(r.buf) }
