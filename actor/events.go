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
	"context"
	"time"
)

// ActorStarted is published once an actor finished its initialization
// and starts handling messages.
type ActorStarted struct {
	Actor     Ref
	StartedAt time.Time
}

// ActorStopped is published once an actor terminated and ran its teardown.
// Reason is nil for a requested stop.
type ActorStopped struct {
	Actor     Ref
	Reason    error
	StoppedAt time.Time
}

// Deadletter describes a told message its receiver has no handler for.
type Deadletter struct {
	Receiver Ref
	Message  any
	SentAt   time.Time
}

// DeadletterHandler is called on the receiver's processing goroutine with
// every deadletter. It must not block.
type DeadletterHandler func(ctx context.Context, deadletter *Deadletter)
