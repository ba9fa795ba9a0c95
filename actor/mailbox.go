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

// Mailbox is the FIFO queue of an actor.
//
// Many goroutines enqueue concurrently while exactly one goroutine, the actor's
// processing loop, dequeues. Writes made by a producer before Enqueue must be
// visible to the consumer after Dequeue.
//
// Enqueue must not block: bounded implementations return an error when full.
// Dequeue returns nil when the mailbox is empty.
// After Dispose the mailbox is not used anymore.
//
// Deliveries are private to the runtime so only the mailboxes of this package
// implement Mailbox: pass NewUnboundedMailbox or NewBoundedMailbox to WithMailbox
// and WithDefaultMailbox.
type Mailbox interface {
	// Enqueue pushes a delivery into the mailbox.
	Enqueue(d *delivery) error
	// Dequeue fetches the oldest delivery or nil.
	Dequeue() *delivery
	// IsEmpty reports whether the mailbox currently has no delivery.
	IsEmpty() bool
	// Len returns a snapshot of the number of deliveries.
	Len() int64
	// Dispose releases the mailbox resources.
	Dispose()
}
