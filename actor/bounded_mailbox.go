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
	gods "github.com/Workiva/go-datastructures/queue"

	gerrors "github.com/tochemey/ergon/errors"
)

const minBoundedCapacity = 2

// BoundedMailbox is a fixed capacity Mailbox backed by a ring buffer.
// Enqueue on a full mailbox fails with errors.ErrMailboxFull instead of blocking.
type BoundedMailbox struct {
	underlying *gods.RingBuffer
}

var _ Mailbox = (*BoundedMailbox)(nil)

// NewBoundedMailbox creates a BoundedMailbox. The ring buffer rounds the capacity
// up to the next power of two, with a minimum of two.
func NewBoundedMailbox(capacity int) *BoundedMailbox {
	if capacity < minBoundedCapacity {
		capacity = minBoundedCapacity
	}
	return &BoundedMailbox{underlying: gods.NewRingBuffer(uint64(capacity))}
}

// Enqueue inserts the delivery without blocking.
func (mailbox *BoundedMailbox) Enqueue(d *delivery) error {
	ok, err := mailbox.underlying.Offer(d)
	if err != nil {
		return gerrors.ErrMailboxDisposed
	}
	if !ok {
		return gerrors.ErrMailboxFull
	}
	return nil
}

// Dequeue removes the oldest delivery or returns nil when empty.
func (mailbox *BoundedMailbox) Dequeue() *delivery {
	if mailbox.underlying.Len() == 0 {
		return nil
	}
	item, err := mailbox.underlying.Get()
	if err != nil {
		return nil
	}
	d, _ := item.(*delivery)
	return d
}

// IsEmpty reports whether the mailbox has no delivery.
func (mailbox *BoundedMailbox) IsEmpty() bool {
	return mailbox.underlying.Len() == 0
}

// Len returns the number of deliveries.
func (mailbox *BoundedMailbox) Len() int64 {
	return int64(mailbox.underlying.Len())
}

// Dispose releases the ring buffer. Further enqueues fail.
func (mailbox *BoundedMailbox) Dispose() {
	mailbox.underlying.Dispose()
}
