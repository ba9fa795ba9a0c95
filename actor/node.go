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
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/ergon/errors"
	"github.com/tochemey/ergon/eventstream"
	"github.com/tochemey/ergon/internal/metric"
	"github.com/tochemey/ergon/internal/registry"
	"github.com/tochemey/ergon/internal/xsync"
	"github.com/tochemey/ergon/log"
)

// Node hosts actors. It spawns them, routes the messages told or asked to them
// and stops them on shutdown. A Node is safe for concurrent use.
type Node struct {
	ctx    context.Context
	cancel context.CancelFunc

	logger            log.Logger
	shutdownTimeout   time.Duration
	deadletterHandler DeadletterHandler
	mailboxFactory    func() Mailbox

	// lifecycle guards spawning against shutdown
	lifecycle sync.RWMutex
	stopped   *atomic.Bool

	actors       *xsync.Map[string, Ref]
	eventsStream *eventstream.EventsStream
	scheduler    *scheduler

	metricEnabled    *atomic.Bool
	meterProvider    otelmetric.MeterProvider
	processedCount   *atomic.Int64
	deadlettersCount *atomic.Int64
	deliveryFailures *atomic.Int64
}

// NewNode creates a running Node.
func NewNode(opts ...Option) *Node {
	ctx, cancel := context.WithCancel(context.Background())
	node := &Node{
		ctx:              ctx,
		cancel:           cancel,
		logger:           log.DefaultLogger,
		shutdownTimeout:  DefaultShutdownTimeout,
		mailboxFactory:   func() Mailbox { return NewUnboundedMailbox() },
		stopped:          atomic.NewBool(false),
		actors:           xsync.NewMap[string, Ref](),
		eventsStream:     eventstream.New(),
		metricEnabled:    atomic.NewBool(false),
		processedCount:   atomic.NewInt64(0),
		deadlettersCount: atomic.NewInt64(0),
		deliveryFailures: atomic.NewInt64(0),
	}
	node.deadletterHandler = node.logDeadletter

	for _, opt := range opts {
		opt.Apply(node)
	}

	if node.metricEnabled.Load() {
		if err := node.registerMetrics(); err != nil {
			node.logger.Warnf("failed to register node metrics: %v", err)
		}
	}

	node.scheduler = newScheduler(node, node.logger, node.shutdownTimeout)
	node.scheduler.Start(ctx)
	return node
}

// Spawn creates an actor on the node and returns its address right away.
// The actor is initialized asynchronously: messages sent meanwhile are queued
// and handled once PreStart succeeded.
//
// Spawn panics when T declares two handlers for the same message type.
// Spawning on a node that has been shut down returns the address of a
// terminated actor.
func Spawn[T Actor[T]](node *Node, actor T, opts ...SpawnOption) Address[T] {
	dispatch := dispatchTable(actor)
	config := newSpawnConfig(opts...)
	if config.name == "" {
		config.name = registry.ShortName(actor)
	}
	if config.mailbox == nil {
		config.mailbox = node.mailboxFactory()
	}

	c := newCell(node, actor, dispatch, config, newID())

	node.lifecycle.RLock()
	defer node.lifecycle.RUnlock()
	if node.stopped.Load() {
		c.alive.Store(false)
		c.mailbox.Dispose()
		close(c.done)
		node.logger.Warnf("node is stopped; actor %s not started", c.name)
		return c.self()
	}

	node.actors.Set(c.id, c.self())
	node.logger.Debugf("Actor %s spawned", c.self())
	go c.start()
	return c.self()
}

// Tell enqueues message to the actor to and returns once it is enqueued,
// without waiting for it to be handled. A message the actor has no handler for
// is passed to the deadletter handler.
func (x *Node) Tell(ctx context.Context, to Ref, message any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := x.resolve(to)
	if err != nil {
		return err
	}
	if err := target.deliver(newTell(message)); err != nil {
		x.deliveryFailures.Inc()
		return err
	}
	return nil
}

// Ask enqueues message to the actor to and waits for the outcome of its handler.
// Cancel ctx to stop waiting; the message may still be handled.
func (x *Node) Ask(ctx context.Context, to Ref, message any) (Reply, error) {
	target, err := x.resolve(to)
	if err != nil {
		return nil, err
	}
	if _, ok := target.lookup(typeOf(message)); !ok {
		return nil, gerrors.NewErrHandlerNotFound(typeName(message))
	}
	return x.ask(ctx, target, message)
}

func (x *Node) ask(ctx context.Context, target process, message any) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(gerrors.ErrRequestCanceled, err)
	}

	request := newAsk(message)
	if err := target.deliver(request); err != nil {
		x.deliveryFailures.Inc()
		return nil, err
	}

	select {
	case res := <-request.reply:
		return res.reply, res.err
	case <-ctx.Done():
		return nil, errors.Join(gerrors.ErrRequestCanceled, ctx.Err())
	}
}

// Stop terminates the actor once its current handler returns and waits until
// its teardown completed. Stopping a terminated actor is a no-op.
// An actor must use Context.Stop to stop itself.
func (x *Node) Stop(ctx context.Context, ref Ref) error {
	target, err := x.resolve(ref)
	if err != nil {
		return err
	}
	target.requestStop()
	select {
	case <-target.terminated():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops every actor in parallel, stops the scheduler and closes the event stream.
// Afterwards Spawn returns terminated actors and every send fails.
func (x *Node) Shutdown(ctx context.Context) error {
	x.lifecycle.Lock()
	if !x.stopped.CompareAndSwap(false, true) {
		x.lifecycle.Unlock()
		return nil
	}
	x.lifecycle.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.shutdownTimeout)
		defer cancel()
	}

	x.logger.Info("Shutdown process has started...")
	x.scheduler.Stop(ctx)

	// let cooperative handlers observe the shutdown
	x.cancel()

	eg, egCtx := errgroup.WithContext(ctx)
	for _, ref := range x.actors.Values() {
		eg.Go(func() error {
			if err := x.Stop(egCtx, ref); err != nil {
				return fmt.Errorf("failed to stop actor %s: %w", ref, err)
			}
			return nil
		})
	}
	err := eg.Wait()
	x.eventsStream.Close()

	if err != nil {
		x.logger.Errorf("Shutdown process failed: %v", err)
		return err
	}
	x.logger.Info("Shutdown process completed")
	return nil
}

// Actors returns the live actors of the node.
func (x *Node) Actors() []Ref {
	return x.actors.Values()
}

// ActorOf returns the live actor with the given identifier.
func (x *Node) ActorOf(id string) (Ref, bool) {
	return x.actors.Get(id)
}

// Logger returns the node logger.
func (x *Node) Logger() log.Logger {
	return x.logger
}

// Subscribe creates a subscriber to the node events: ActorStarted, ActorStopped and Deadletter.
func (x *Node) Subscribe() (eventstream.Subscriber, error) {
	if x.stopped.Load() {
		return nil, gerrors.ErrNodeStopped
	}
	subscriber := x.eventsStream.AddSubscriber()
	x.eventsStream.Subscribe(subscriber, eventsTopic)
	return subscriber, nil
}

// Unsubscribe removes a subscriber created with Subscribe.
func (x *Node) Unsubscribe(subscriber eventstream.Subscriber) error {
	if x.stopped.Load() {
		return gerrors.ErrNodeStopped
	}
	x.eventsStream.RemoveSubscriber(subscriber)
	return nil
}

// Metric returns a snapshot of the node counters.
func (x *Node) Metric() Metric {
	return Metric{
		actorsCount:           int64(x.actors.Len()),
		processedCount:        x.processedCount.Load(),
		deadlettersCount:      x.deadlettersCount.Load(),
		deliveryFailuresCount: x.deliveryFailures.Load(),
	}
}

func (x *Node) resolve(ref Ref) (process, error) {
	if ref == nil {
		return nil, gerrors.ErrUndefinedActor
	}
	target := ref.process()
	if target == nil {
		return nil, gerrors.ErrUndefinedActor
	}
	return target, nil
}

func (x *Node) deregister(id string) {
	x.actors.Delete(id)
}

func (x *Node) publish(event any) {
	x.eventsStream.Publish(eventsTopic, event)
}

func (x *Node) toDeadletter(receiver Ref, message any) {
	x.deadlettersCount.Inc()
	deadletter := &Deadletter{Receiver: receiver, Message: message, SentAt: time.Now().UTC()}
	x.publish(deadletter)
	x.deadletterHandler(x.ctx, deadletter)
}

func (x *Node) logDeadletter(_ context.Context, deadletter *Deadletter) {
	x.logger.Warnf("Actor %s has no handler for message %s", deadletter.Receiver, typeName(deadletter.Message))
}

// registerMetrics registers the node instruments with OpenTelemetry.
func (x *Node) registerMetrics() error {
	meter := metric.NewProvider(metric.WithMeterProvider(x.meterProvider)).Meter()
	metrics, err := metric.NewNodeMetric(meter)
	if err != nil {
		return err
	}

	observeOptions := []otelmetric.ObserveOption{
		otelmetric.WithAttributes(attribute.String("node.id", newID())),
	}

	_, err = meter.RegisterCallback(func(_ context.Context, observer otelmetric.Observer) error {
		snapshot := x.Metric()
		observer.ObserveInt64(metrics.ActorsCount(), snapshot.ActorsCount(), observeOptions...)
		observer.ObserveInt64(metrics.ProcessedCount(), snapshot.ProcessedCount(), observeOptions...)
		observer.ObserveInt64(metrics.DeadlettersCount(), snapshot.DeadlettersCount(), observeOptions...)
		observer.ObserveInt64(metrics.DeliveryFailuresCount(), snapshot.DeliveryFailuresCount(), observeOptions...)
		return nil
	}, metrics.Instruments()...)
	return err
}
