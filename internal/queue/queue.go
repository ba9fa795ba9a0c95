/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package queue

import "sync"

// minCapacity is the smallest capacity of the ring.
// Must be a power of 2 for bitwise modulus: x % n == x & (n - 1).
const minCapacity = 16

// Queue is an unbounded FIFO queue backed by a growable ring buffer.
// It is safe for concurrent use.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	head   int
	tail   int
	count  int
	closed bool
}

// New creates an empty Queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{items: make([]T, minCapacity)}
}

// Push appends the item at the back of the queue.
// It returns false and drops the item when the queue is closed.
func (q *Queue[T]) Push(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	if q.count == len(q.items) {
		q.resize(q.count << 1)
	}
	q.items[q.tail] = item
	q.tail = (q.tail + 1) & (len(q.items) - 1)
	q.count++
	return true
}

// Pop removes the item at the front of the queue.
// It returns false when the queue is empty or closed.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if q.count == 0 {
		return zero, false
	}
	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) & (len(q.items) - 1)
	q.count--
	// shrink when a quarter full
	if len(q.items) > minCapacity && (q.count<<2) == len(q.items) {
		q.resize(len(q.items) >> 1)
	}
	return item, true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Close drops every queued item and rejects further pushes.
// It returns the items that were still queued, in FIFO order.
func (q *Queue[T]) Close() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	remaining := make([]T, 0, q.count)
	for q.count > 0 {
		remaining = append(remaining, q.items[q.head])
		q.head = (q.head + 1) & (len(q.items) - 1)
		q.count--
	}
	q.closed = true
	q.items = nil
	q.head, q.tail = 0, 0
	return remaining
}

func (q *Queue[T]) resize(size int) {
	if size < minCapacity {
		size = minCapacity
	}
	items := make([]T, size)
	if q.count > 0 {
		if q.tail > q.head {
			copy(items, q.items[q.head:q.tail])
		} else {
			n := copy(items, q.items[q.head:])
			copy(items[n:], q.items[:q.tail])
		}
	}
	q.head = 0
	q.tail = q.count & (size - 1)
	q.items = items
}
