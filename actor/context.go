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
	"reflect"

	gerrors "github.com/tochemey/ergon/errors"
	"github.com/tochemey/ergon/log"
)

// Context is handed to the hooks and handlers of an actor of type T.
// It is only valid for the duration of the call it is passed to and must not
// be retained or used from another goroutine.
type Context[T any] struct {
	cell *cell[T]
	ctx  context.Context
}

// Self returns the address of the running actor.
func (c *Context[T]) Self() Address[T] {
	return c.cell.self()
}

// Node returns the node hosting the actor.
func (c *Context[T]) Node() *Node {
	return c.cell.node
}

// Logger returns the actor logger.
func (c *Context[T]) Logger() log.Logger {
	return c.cell.logger
}

// Context returns the context of the call. During PreStart it expires with the
// init timeout; otherwise it is cancelled when the node shuts down.
func (c *Context[T]) Context() context.Context {
	return c.ctx
}

// Stop terminates the actor once the current hook or handler returns.
// Messages still in the mailbox are not handled and pending asks fail with
// errors.ErrDeliveryFailed.
func (c *Context[T]) Stop() {
	c.cell.stopRequested.Store(true)
}

// Broadcast tells message to every actor subscribed to its type and returns
// how many subscribers it was delivered to. Subscribers that terminated are removed.
func (c *Context[T]) Broadcast(message any) int {
	return c.cell.broadcast(message)
}

// SubscribersCount returns the number of subscribers of messages of type M.
func SubscribersCount[M, T any](ctx *Context[T]) int {
	set, ok := ctx.cell.subscriptions[reflect.TypeFor[M]()]
	if !ok {
		return 0
	}
	return set.Cardinality()
}

// SpawnChild spawns child on the node of the running actor and ties its lifetime
// to the parent: the child is asked to stop when the parent terminates and the
// parent's termination completes once the child's has.
func SpawnChild[C Actor[C], T any](ctx *Context[T], child C, opts ...SpawnOption) Address[C] {
	address := Spawn(ctx.cell.node, child, opts...)
	if address.IsAlive() {
		ctx.cell.addChild(address)
	}
	return address
}

// Children returns the live children of the running actor.
func (c *Context[T]) Children() []Ref {
	children := make([]Ref, 0, len(c.cell.children))
	for _, child := range c.cell.children {
		if child.IsAlive() {
			children = append(children, child)
		}
	}
	return children
}

// Subscribe registers the running actor to receive the messages of type M the
// publisher broadcasts. The registration is processed by the publisher in its
// mailbox order.
func Subscribe[M, T any](ctx *Context[T], publisher Ref) error {
	return sendSystem(publisher, &subscribe{messageType: reflect.TypeFor[M](), subscriber: ctx.Self()})
}

// Unsubscribe reverts Subscribe.
func Unsubscribe[M, T any](ctx *Context[T], publisher Ref) error {
	return sendSystem(publisher, &unsubscribe{messageType: reflect.TypeFor[M](), subscriber: ctx.Self()})
}

func sendSystem(to Ref, message any) error {
	if to == nil {
		return gerrors.ErrUndefinedActor
	}
	target := to.process()
	if target == nil {
		return gerrors.ErrUndefinedActor
	}
	return target.deliver(newTell(message))
}
