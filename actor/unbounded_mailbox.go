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

package actor

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// cacheLinePadding prevents false sharing between the producer and consumer ends.
type cacheLinePadding [64]byte

type node struct {
	value atomic.Pointer[delivery]
	next  unsafe.Pointer
}

var nodePool = sync.Pool{New: func() any { return new(node) }}

// UnboundedMailbox is the default Mailbox: a lock-free multi-producer,
// single-consumer linked queue. Nodes are pooled.
//
// Reference: https://concurrencyfreaks.blogspot.com/2014/04/multi-producer-single-consumer-queue.html
type UnboundedMailbox struct {
	head unsafe.Pointer // *node, consumer side
	_    cacheLinePadding
	tail unsafe.Pointer // *node, producer side
	_    cacheLinePadding
	size atomic.Int64
}

var _ Mailbox = (*UnboundedMailbox)(nil)

// NewUnboundedMailbox creates an UnboundedMailbox.
func NewUnboundedMailbox() *UnboundedMailbox {
	stub := new(node)
	return &UnboundedMailbox{
		head: unsafe.Pointer(stub),
		tail: unsafe.Pointer(stub),
	}
}

// Enqueue appends the delivery. It never fails.
func (m *UnboundedMailbox) Enqueue(d *delivery) error {
	n := nodePool.Get().(*node)
	n.value.Store(d)
	atomic.StorePointer(&n.next, nil)

	prev := (*node)(atomic.SwapPointer(&m.tail, unsafe.Pointer(n)))
	m.size.Add(1)
	atomic.StorePointer(&prev.next, unsafe.Pointer(n))
	return nil
}

// Dequeue removes the oldest delivery. It must only be called by the consumer.
func (m *UnboundedMailbox) Dequeue() *delivery {
	head := (*node)(atomic.LoadPointer(&m.head))
	next := (*node)(atomic.LoadPointer(&head.next))
	if next == nil {
		return nil
	}

	atomic.StorePointer(&m.head, unsafe.Pointer(next))
	d := next.value.Swap(nil)
	m.size.Add(-1)
	nodePool.Put(head)
	return d
}

// IsEmpty reports whether there is no delivery to dequeue.
func (m *UnboundedMailbox) IsEmpty() bool {
	head := (*node)(atomic.LoadPointer(&m.head))
	return atomic.LoadPointer(&head.next) == nil
}

// Len returns the number of enqueued deliveries, including ones whose link is in flight.
func (m *UnboundedMailbox) Len() int64 {
	return m.size.Load()
}

// Dispose is a no-op.
func (m *UnboundedMailbox) Dispose() {}
