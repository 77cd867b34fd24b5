// Package ring provides a fixed-capacity FIFO buffer.
//
// Eviction is strict oldest-first and implemented with index arithmetic, so
// appends stay O(1) regardless of capacity.
package ring

// Buffer is a bounded FIFO buffer over values of type T.
// The zero value is not usable; call New.
type Buffer[T any] struct {
	buf  []T
	head int // index of the oldest element
	size int
}

// New creates a buffer holding at most capacity elements.
// A capacity below 1 is treated as 1.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{buf: make([]T, capacity)}
}

// Push appends v, evicting the oldest element when full.
func (b *Buffer[T]) Push(v T) {
	tail := (b.head + b.size) % len(b.buf)
	b.buf[tail] = v
	if b.size < len(b.buf) {
		b.size++
	} else {
		b.head = (b.head + 1) % len(b.buf)
	}
}

// Len returns the number of stored elements.
func (b *Buffer[T]) Len() int { return b.size }

// Cap returns the buffer capacity.
func (b *Buffer[T]) Cap() int { return len(b.buf) }

// At returns the element at position i, where 0 is the oldest.
// Panics if i is out of range, matching slice semantics.
func (b *Buffer[T]) At(i int) T {
	if i < 0 || i >= b.size {
		panic("ring: index out of range")
	}
	return b.buf[(b.head+i)%len(b.buf)]
}

// Newest returns the most recently pushed element.
func (b *Buffer[T]) Newest() (T, bool) {
	var zero T
	if b.size == 0 {
		return zero, false
	}
	return b.At(b.size - 1), true
}

// Snapshot returns a copy of the contents in oldest-to-newest order.
func (b *Buffer[T]) Snapshot() []T {
	out := make([]T, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.At(i)
	}
	return out
}

// Clear empties the buffer without releasing its backing storage.
func (b *Buffer[T]) Clear() {
	var zero T
	for i := range b.buf {
		b.buf[i] = zero
	}
	b.head = 0
	b.size = 0
}
