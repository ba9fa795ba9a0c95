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

// Actor is implemented by every actor type. T is the actor type itself,
// usually a pointer to a struct holding the actor state:
//
//	type Counter struct{ total int }
//
//	func (c *Counter) Handlers() []actor.Handler[*Counter] {
//		return []actor.Handler[*Counter]{
//			actor.Handle(func(c *Counter, n int, _ *actor.Context[*Counter]) actor.Outcome[int, error] {
//				c.total += n
//				return actor.Ok[int, error](c.total)
//			}),
//		}
//	}
//
// Handlers is called once per actor type to build its dispatch table.
// Every handler of the returned slice must accept a distinct message type.
type Actor[T any] interface {
	Handlers() []Handler[T]
}

// PreStarter is implemented by actors that need to initialize before
// handling any message. A returned error terminates the actor.
//
// The whole initialization is bounded by the init timeout, DefaultInitTimeout
// unless the actor is spawned WithInitTimeout: ctx.Context() expires with it and
// a PreStart still waiting on it then fails with context.DeadlineExceeded.
type PreStarter[T any] interface {
	PreStart(ctx *Context[T]) error
}

// PostStopper is implemented by actors that need to release resources on termination.
// PostStop runs exactly once, after the last handled message, with the termination
// reason: nil for a requested stop, the init error or the panic otherwise.
type PostStopper[T any] interface {
	PostStop(ctx *Context[T], reason error) error
}

// Subscriber is implemented by actors that subscribe to other actors' broadcasts
// when they start. Subscriptions runs right after a successful PreStart.
type Subscriber[T any] interface {
	Subscriptions(ctx *Context[T]) error
}
