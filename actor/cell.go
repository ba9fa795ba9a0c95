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
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/flowchartsman/retry"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/ergon/errors"
	"github.com/tochemey/ergon/internal/chain"
	"github.com/tochemey/ergon/log"
)

const (
	idle int32 = iota
	busy
)

// cell owns one actor: its state, mailbox, subscriptions and children.
// Everything but the mailbox and the flags is only touched by the goroutine
// currently processing the cell, so at most one handler or hook runs at a time.
type cell[T any] struct {
	id    string
	name  string
	node  *Node
	actor T

	dispatch map[reflect.Type]Handler[T]
	mailbox  Mailbox
	logger   log.Logger
	context  *Context[T]

	initMaxRetries int
	initTimeout    time.Duration

	// gate orders enqueues against termination: senders hold the read lock
	// while checking alive and enqueuing, termination takes the write lock to flip alive.
	gate  sync.RWMutex
	alive *atomic.Bool

	processing    *atomic.Int32
	stopRequested *atomic.Bool
	processed     *atomic.Int64
	done          chan struct{}

	subscriptions map[reflect.Type]mapset.Set[Ref]
	children      []Ref
}

var _ process = (*cell[any])(nil)

func newCell[T any](node *Node, actor T, dispatch map[reflect.Type]Handler[T], config *spawnConfig, id string) *cell[T] {
	c := &cell[T]{
		id:             id,
		name:           config.name,
		node:           node,
		actor:          actor,
		dispatch:       dispatch,
		mailbox:        config.mailbox,
		initMaxRetries: config.initMaxRetries,
		initTimeout:    config.initTimeout,
		alive:          atomic.NewBool(true),
		processing:     atomic.NewInt32(busy),
		stopRequested:  atomic.NewBool(false),
		processed:      atomic.NewInt64(0),
		done:           make(chan struct{}),
		subscriptions:  make(map[reflect.Type]mapset.Set[Ref]),
	}
	c.logger = node.logger.With("actor", c.name, "id", c.id)
	c.context = &Context[T]{cell: c, ctx: node.ctx}
	return c
}

// self returns the address of the cell.
func (c *cell[T]) self() Address[T] {
	return Address[T]{cell: c}
}

func (c *cell[T]) actorType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (c *cell[T]) lookup(messageType reflect.Type) (entry, bool) {
	handler, ok := c.dispatch[messageType]
	if !ok {
		return nil, false
	}
	return handler, true
}

func (c *cell[T]) terminated() <-chan struct{} {
	return c.done
}

// deliver enqueues the delivery and wakes the cell up.
func (c *cell[T]) deliver(d *delivery) error {
	c.gate.RLock()
	if !c.alive.Load() {
		c.gate.RUnlock()
		return gerrors.ErrDeliveryFailed
	}
	err := c.mailbox.Enqueue(d)
	c.gate.RUnlock()
	if err != nil {
		return err
	}
	c.process()
	return nil
}

// requestStop makes the cell terminate once its current handler, if any, returns.
func (c *cell[T]) requestStop() {
	c.stopRequested.Store(true)
	c.process()
}

// start initializes the actor then processes its mailbox.
// The cell is busy from creation so no other goroutine processes it meanwhile.
func (c *cell[T]) start() {
	if err := c.init(); err != nil {
		c.terminate(err)
		return
	}
	c.node.publish(&ActorStarted{Actor: c.self(), StartedAt: time.Now().UTC()})
	c.run()
}

// process starts a processing goroutine when the cell is idle.
func (c *cell[T]) process() {
	if !c.processing.CompareAndSwap(idle, busy) {
		return
	}
	go c.run()
}

// run handles deliveries one at a time until the mailbox is empty or the cell terminates.
func (c *cell[T]) run() {
	for {
		if c.stopRequested.Load() {
			c.terminate(nil)
			return
		}

		if d := c.mailbox.Dequeue(); d != nil {
			if fault := c.handle(d); fault != nil {
				c.terminate(fault)
				return
			}
			continue
		}

		c.processing.Store(idle)

		// a delivery or a stop request may have raced with the idle transition
		if (c.stopRequested.Load() || !c.mailbox.IsEmpty()) && c.processing.CompareAndSwap(idle, busy) {
			continue
		}
		return
	}
}

// handle processes a single delivery. It returns the panic error when the handler panicked.
func (c *cell[T]) handle(d *delivery) (fault error) {
	switch msg := d.message.(type) {
	case *subscribe:
		c.addSubscriber(msg.messageType, msg.subscriber)
		return nil
	case *unsubscribe:
		c.removeSubscriber(msg.messageType, msg.subscriber)
		return nil
	}

	handler, ok := c.dispatch[reflect.TypeOf(d.message)]
	if !ok {
		if d.reply != nil {
			d.respond(nil, gerrors.NewErrHandlerNotFound(reflect.TypeOf(d.message).String()))
			return nil
		}
		c.node.toDeadletter(c.self(), d.message)
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			fault = c.recovery(r)
			d.respond(nil, gerrors.NewErrDeliveryFailed(fault))
		}
	}()

	reply := handler.invoke(c.actor, d.message, c.context)
	c.processed.Inc()
	c.node.processedCount.Inc()
	d.respond(reply, nil)
	return nil
}

// recovery turns a recovered panic value into a PanicError enriched with its location.
func (c *cell[T]) recovery(r any) error {
	var pe *gerrors.PanicError
	if err, ok := r.(error); ok && errors.As(err, &pe) {
		c.logger.Error(pe)
		return pe
	}

	pc, fn, line, _ := runtime.Caller(3)
	location := fmt.Sprintf("%s[%s:%d]", runtime.FuncForPC(pc).Name(), fn, line)

	var cause error
	if err, ok := r.(error); ok {
		cause = fmt.Errorf("%w at %s", err, location)
	} else {
		cause = fmt.Errorf("%#v at %s", r, location)
	}

	pe = gerrors.NewPanicError(cause)
	c.logger.Errorf("Actor %s panicked: %v", c.name, pe)
	return pe
}

// init runs PreStart, with retries, then Subscriptions.
func (c *cell[T]) init() error {
	c.logger.Debugf("Initialization process started for Actor %s ...", c.name)

	ctx, cancel := context.WithTimeout(c.node.ctx, c.initTimeout)
	defer cancel()

	c.context.ctx = ctx
	defer func() { c.context.ctx = c.node.ctx }()

	if starter, ok := any(c.actor).(PreStarter[T]); ok {
		retrier := retry.NewRetrier(c.initMaxRetries, time.Millisecond, c.initTimeout)
		if err := retrier.RunContext(ctx, func(context.Context) error {
			return c.guard(func() error { return starter.PreStart(c.context) })
		}); err != nil {
			c.logger.Errorf("Failed to initialize Actor %s: %v", c.name, err)
			return gerrors.NewErrInitFailure(err)
		}
	}

	if subscriber, ok := any(c.actor).(Subscriber[T]); ok {
		if err := c.guard(func() error { return subscriber.Subscriptions(c.context) }); err != nil {
			c.logger.Errorf("Failed to subscribe Actor %s: %v", c.name, err)
			return gerrors.NewErrInitFailure(err)
		}
	}

	c.logger.Debugf("Actor %s initialization is successful.", c.name)
	return nil
}

// guard runs a lifecycle hook, converting a panic into an error.
func (c *cell[T]) guard(hook func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = c.recovery(r)
		}
	}()
	return hook()
}

// terminate runs the teardown sequence. It is called exactly once, by the goroutine
// processing the cell, which keeps the cell busy so no other goroutine starts.
//
// Children are asked to stop first but only awaited once the mailbox is drained:
// a child blocked on an ask to this cell gets its failure instead of stalling the teardown.
func (c *cell[T]) terminate(reason error) {
	c.logger.Debugf("Shutdown process has started for Actor %s...", c.name)

	c.gate.Lock()
	c.alive.Store(false)
	c.gate.Unlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.node.ctx), c.node.shutdownTimeout)
	defer cancel()

	if err := chain.New().
		Add(c.stopChildren).
		Add(func(context.Context) error { return c.postStop(reason) }).
		Run(ctx); err != nil {
		c.logger.Errorf("Actor %s teardown failed: %v", c.name, err)
	}

	c.failPending(reason)
	c.mailbox.Dispose()
	clear(c.subscriptions)

	if err := c.awaitChildren(ctx); err != nil {
		c.logger.Errorf("Actor %s teardown failed: %v", c.name, err)
	}
	c.children = nil

	c.node.deregister(c.id)
	c.node.publish(&ActorStopped{Actor: c.self(), Reason: reason, StoppedAt: time.Now().UTC()})
	close(c.done)

	c.logger.Debugf("Shutdown process completed for Actor %s...", c.name)
}

func (c *cell[T]) postStop(reason error) error {
	stopper, ok := any(c.actor).(PostStopper[T])
	if !ok {
		return nil
	}
	return c.guard(func() error { return stopper.PostStop(c.context, reason) })
}

// failPending fails every ask still queued. The cell is dead so nothing new arrives.
func (c *cell[T]) failPending(reason error) {
	for _, d := range drain(c.mailbox) {
		switch d.message.(type) {
		case *subscribe, *unsubscribe:
			continue
		}
		c.node.deliveryFailures.Inc()
		d.respond(nil, gerrors.NewErrDeliveryFailed(reason))
	}
}

// stopChildren asks every child to stop without waiting.
func (c *cell[T]) stopChildren(context.Context) error {
	if len(c.children) == 0 {
		return nil
	}

	c.logger.Debugf("Actor %s freeing all descendant actors...", c.name)
	for _, child := range c.children {
		if target := child.process(); target != nil {
			target.requestStop()
		}
	}
	return nil
}

// awaitChildren waits for the termination of every child.
func (c *cell[T]) awaitChildren(ctx context.Context) error {
	if len(c.children) == 0 {
		return nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, child := range c.children {
		eg.Go(func() error {
			if err := c.node.Stop(ctx, child); err != nil {
				return fmt.Errorf("parent %s failed to stop child %s: %w", c.name, child.Name(), err)
			}
			return nil
		})
	}
	return eg.Wait()
}

// addChild records a child, dropping the ones that already terminated.
func (c *cell[T]) addChild(child Ref) {
	live := c.children[:0]
	for _, existing := range c.children {
		if existing.IsAlive() {
			live = append(live, existing)
		}
	}
	c.children = append(live, child)
}

func (c *cell[T]) addSubscriber(messageType reflect.Type, subscriber Ref) {
	set, ok := c.subscriptions[messageType]
	if !ok {
		set = mapset.NewThreadUnsafeSet[Ref]()
		c.subscriptions[messageType] = set
	}
	set.Add(subscriber)
}

func (c *cell[T]) removeSubscriber(messageType reflect.Type, subscriber Ref) {
	set, ok := c.subscriptions[messageType]
	if !ok {
		return
	}
	set.Remove(subscriber)
	if set.Cardinality() == 0 {
		delete(c.subscriptions, messageType)
	}
}

// broadcast tells message to every subscriber of its type and prunes the dead ones.
func (c *cell[T]) broadcast(message any) int {
	messageType := reflect.TypeOf(message)
	set, ok := c.subscriptions[messageType]
	if !ok {
		return 0
	}

	ctx := context.WithoutCancel(c.context.ctx)
	sent := 0
	for _, subscriber := range set.ToSlice() {
		if err := c.node.Tell(ctx, subscriber, message); err != nil {
			if errors.Is(err, gerrors.ErrDeliveryFailed) {
				c.logger.Debugf("Actor %s pruning dead subscriber %s", c.name, subscriber)
				set.Remove(subscriber)
				continue
			}
			c.logger.Warnf("Actor %s failed to broadcast to %s: %v", c.name, subscriber, err)
			continue
		}
		sent++
	}

	if set.Cardinality() == 0 {
		delete(c.subscriptions, messageType)
	}
	return sent
}
