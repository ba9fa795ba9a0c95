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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	gerrors "github.com/tochemey/ergon/errors"
	"github.com/tochemey/ergon/internal/pause"
	"github.com/tochemey/ergon/log"
)

func TestTell(t *testing.T) {
	t.Run("With FIFO order across a suspended handler", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		address := Spawn(node, new(bag))

		require.NoError(t, node.Tell(ctx, address, wait{value: 0}))
		require.NoError(t, Tell(ctx, node, address, immediate{value: 1}))

		outcome, err := Ask[[]int, error](ctx, node, address, getValues{})
		require.NoError(t, err)
		values, ok := outcome.Value()
		require.True(t, ok)
		assert.Equal(t, []int{0, 1}, values)
	})
	t.Run("With tell returning before the handler completes", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		address := Spawn(node, new(counter))

		start := time.Now()
		require.NoError(t, node.Tell(ctx, address, slow{d: time.Second}))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})
	t.Run("With a terminated actor", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		address := Spawn(node, new(counter))
		require.NoError(t, node.Stop(ctx, address))

		assert.False(t, address.IsAlive())
		err := node.Tell(ctx, address, increment{})
		require.ErrorIs(t, err, gerrors.ErrDeliveryFailed)
		assert.EqualValues(t, 1, node.Metric().DeliveryFailuresCount())
	})
	t.Run("With an undefined actor", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)

		require.ErrorIs(t, node.Tell(ctx, nil, increment{}), gerrors.ErrUndefinedActor)
		require.ErrorIs(t, node.Tell(ctx, Address[*counter]{}, increment{}), gerrors.ErrUndefinedActor)
	})
	t.Run("With a cancelled context", func(t *testing.T) {
		node := newTestNode(t)
		address := Spawn(node, new(counter))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.ErrorIs(t, node.Tell(ctx, address, increment{}), context.Canceled)
	})
	t.Run("With no handler for the message", func(t *testing.T) {
		ctx := context.Background()
		deadletters := make(chan *Deadletter, 1)
		node := newTestNode(t, WithDeadletterHandler(func(_ context.Context, deadletter *Deadletter) {
			deadletters <- deadletter
		}))
		address := Spawn(node, new(counter))

		require.NoError(t, node.Tell(ctx, address, "unexpected"))

		select {
		case deadletter := <-deadletters:
			assert.Equal(t, "unexpected", deadletter.Message)
			assert.Equal(t, address.Ref(), deadletter.Receiver)
		case <-time.After(time.Second):
			t.Fatal("deadletter handler not called")
		}
		assert.EqualValues(t, 1, node.Metric().DeadlettersCount())

		// the actor keeps running
		outcome, err := Ask[int, error](ctx, node, address, total{})
		require.NoError(t, err)
		assert.True(t, outcome.IsOk())
	})
	t.Run("With no concurrent mutation under concurrent senders", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		state := new(counter)
		address := Spawn(node, state)

		const senders, perSender = 16, 50
		var wg sync.WaitGroup
		for range senders {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range perSender {
					if i%5 == 0 {
						_, err := Ask[int, error](ctx, node, address, increment{})
						assert.NoError(t, err)
						continue
					}
					assert.NoError(t, node.Tell(ctx, address, increment{}))
				}
			}()
		}
		wg.Wait()

		outcome, err := Ask[int, error](ctx, node, address, total{})
		require.NoError(t, err)
		count, _ := outcome.Value()
		assert.Equal(t, senders*perSender, count)
		assert.EqualValues(t, 1, state.maxSeen.Load())
	})
}

func TestAsk(t *testing.T) {
	t.Run("With outcomes correlated to their requests", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		address := Spawn(node, new(counter))

		var wg sync.WaitGroup
		for id := range 32 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				outcome, err := Ask[int, string](ctx, node, address, echo{id: id})
				if !assert.NoError(t, err) {
					return
				}
				if id%2 == 1 {
					failure, ok := outcome.Failure()
					assert.True(t, ok)
					assert.Equal(t, "odd", failure)
					return
				}
				value, ok := outcome.Value()
				assert.True(t, ok)
				assert.Equal(t, id, value)
			}()
		}
		wg.Wait()
	})
	t.Run("With a failure outcome as data", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		address := Spawn(node, new(counter))

		outcome, err := Ask[int, error](ctx, node, address, divide{by: 0})
		require.NoError(t, err)
		require.False(t, outcome.IsOk())
		failure, _ := outcome.Failure()
		require.ErrorIs(t, failure, errBoom)

		assert.True(t, address.IsAlive())
		outcome, err = Ask[int, error](ctx, node, address, increment{})
		require.NoError(t, err)
		assert.True(t, outcome.IsOk())
	})
	t.Run("With the untyped ask", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		address := Spawn(node, new(counter))

		reply, err := node.Ask(ctx, address, echo{id: 4})
		require.NoError(t, err)
		require.True(t, reply.IsOk())
		assert.Equal(t, 4, reply.Result())

		_, err = node.Ask(ctx, address, 3.14)
		require.ErrorIs(t, err, gerrors.ErrHandlerNotFound)
	})
	t.Run("With no handler for the message", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		address := Spawn(node, new(counter))

		_, err := Ask[int, error](ctx, node, address, "unexpected")
		require.ErrorIs(t, err, gerrors.ErrHandlerNotFound)
		assert.Contains(t, err.Error(), "string")
	})
	t.Run("With mismatched outcome types", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		address := Spawn(node, new(counter))

		_, err := Ask[string, error](ctx, node, address, total{})
		require.ErrorIs(t, err, gerrors.ErrOutcomeTypeMismatch)

		_, err = Ask[int, string](ctx, node, address, total{})
		require.ErrorIs(t, err, gerrors.ErrOutcomeTypeMismatch)
	})
	t.Run("With a terminated actor", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		address := Spawn(node, new(counter))
		require.NoError(t, node.Stop(ctx, address))

		_, err := Ask[int, error](ctx, node, address, total{})
		require.ErrorIs(t, err, gerrors.ErrDeliveryFailed)
	})
	t.Run("With the caller giving up", func(t *testing.T) {
		node := newTestNode(t)
		address := Spawn(node, new(counter))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := Ask[int, error](ctx, node, address, slow{d: 300 * time.Millisecond})
		require.ErrorIs(t, err, gerrors.ErrRequestCanceled)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		// the abandoned outcome does not block the actor
		outcome, err := Ask[int, error](context.Background(), node, address, total{})
		require.NoError(t, err)
		assert.True(t, outcome.IsOk())
	})
	t.Run("With the actor stopping before the outcome", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		address := Spawn(node, new(counter))

		require.NoError(t, node.Tell(ctx, address, slow{d: 50 * time.Millisecond}))
		require.NoError(t, node.Tell(ctx, address, stopSelf{}))

		_, err := Ask[int, error](ctx, node, address, total{})
		require.ErrorIs(t, err, gerrors.ErrDeliveryFailed)
		require.True(t, pause.Until(func() bool { return !address.IsAlive() }, time.Second, 5*time.Millisecond))
	})
	t.Run("With the handler panicking", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		address := Spawn(node, new(counter))

		_, err := Ask[int, error](ctx, node, address, explode{})
		require.ErrorIs(t, err, gerrors.ErrDeliveryFailed)
		var panicErr *gerrors.PanicError
		require.True(t, errors.As(err, &panicErr))
		assert.Contains(t, panicErr.Error(), "exploded")

		require.True(t, pause.Until(func() bool { return !address.IsAlive() }, time.Second, 5*time.Millisecond))
	})
	t.Run("With queued asks failing after a panic", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		address := Spawn(node, new(counter))

		require.NoError(t, node.Tell(ctx, address, slow{d: 50 * time.Millisecond}))
		require.NoError(t, node.Tell(ctx, address, explode{}))

		_, err := Ask[int, error](ctx, node, address, total{})
		require.ErrorIs(t, err, gerrors.ErrDeliveryFailed)
		var panicErr *gerrors.PanicError
		assert.True(t, errors.As(err, &panicErr))
	})
}

func TestSpawn(t *testing.T) {
	t.Run("With spawn not waiting for initialization", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)

		start := time.Now()
		address := Spawn(node, &sleepyStarter{delay: 200 * time.Millisecond})
		assert.Less(t, time.Since(start), 100*time.Millisecond)
		assert.True(t, address.IsAlive())

		outcome, err := Ask[bool, error](ctx, node, address, total{})
		require.NoError(t, err)
		started, _ := outcome.Value()
		assert.True(t, started)
	})
	t.Run("With names and identifiers", func(t *testing.T) {
		node := newTestNode(t)
		named := Spawn(node, new(counter), WithName("counter-1"))
		unnamed := Spawn(node, new(counter))

		assert.Equal(t, "counter-1", named.Name())
		assert.Equal(t, "counter", unnamed.Name())
		assert.NotEqual(t, named.ID(), unnamed.ID())
		assert.NotEqual(t, named.Ref(), unnamed.Ref())
		assert.Contains(t, named.String(), "counter-1@")
	})
	t.Run("With the live registry", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		first := Spawn(node, new(counter))
		second := Spawn(node, new(bag))

		assert.Len(t, node.Actors(), 2)
		ref, ok := node.ActorOf(second.ID())
		require.True(t, ok)
		typed, ok := AddressOf[*bag](ref)
		require.True(t, ok)
		assert.Equal(t, second, typed)
		_, ok = AddressOf[*counter](ref)
		assert.False(t, ok)

		require.NoError(t, node.Stop(ctx, first))
		_, ok = node.ActorOf(first.ID())
		assert.False(t, ok)
		assert.EqualValues(t, 1, node.Metric().ActorsCount())
	})
	t.Run("With duplicate handlers", func(t *testing.T) {
		node := newTestNode(t)
		assert.Panics(t, func() { Spawn(node, new(duplicated)) })
	})
	t.Run("With a bounded mailbox", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		mailbox := NewBoundedMailbox(2)
		address := Spawn(node, new(counter), WithMailbox(mailbox))

		require.NoError(t, node.Tell(ctx, address, slow{d: 200 * time.Millisecond}))
		require.True(t, pause.Until(mailbox.IsEmpty, time.Second, time.Millisecond))

		require.NoError(t, node.Tell(ctx, address, increment{}))
		require.NoError(t, node.Tell(ctx, address, increment{}))
		require.ErrorIs(t, node.Tell(ctx, address, increment{}), gerrors.ErrMailboxFull)
		_, err := Ask[int, error](ctx, node, address, total{})
		require.ErrorIs(t, err, gerrors.ErrMailboxFull)

		require.True(t, pause.Until(mailbox.IsEmpty, time.Second, time.Millisecond))
		outcome, err := Ask[int, error](ctx, node, address, total{})
		require.NoError(t, err)
		count, _ := outcome.Value()
		assert.Equal(t, 2, count)
	})
	t.Run("With a default mailbox factory", func(t *testing.T) {
		ctx := context.Background()
		var created int
		node := newTestNode(t, WithDefaultMailbox(func() Mailbox {
			created++
			return NewBoundedMailbox(8)
		}))
		address := Spawn(node, new(counter))
		_, err := Ask[int, error](ctx, node, address, increment{})
		require.NoError(t, err)
		assert.Equal(t, 1, created)
	})
	t.Run("With Accepts", func(t *testing.T) {
		assert.True(t, Accepts[*counter](increment{}))
		assert.False(t, Accepts[*counter](&increment{}))
		assert.False(t, Accepts[*counter]("text"))
	})
}

func TestStop(t *testing.T) {
	t.Run("With stop waiting for the running handler", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		state := newLifecycle()
		address := Spawn(node, state)

		require.NoError(t, node.Tell(ctx, address, slow{d: 100 * time.Millisecond}))
		require.True(t, pause.Until(func() bool { return state.preStarts.Load() == 1 }, time.Second, time.Millisecond))

		start := time.Now()
		require.NoError(t, node.Stop(ctx, address))
		assert.False(t, address.IsAlive())
		assert.EqualValues(t, 1, state.postStops.Load())
		assert.Less(t, time.Since(start), time.Second)
	})
	t.Run("With stop being idempotent", func(t *testing.T) {
		ctx := context.Background()
		node := newTestNode(t)
		state := newLifecycle()
		address := Spawn(node, state)

		require.NoError(t, node.Stop(ctx, address))
		require.NoError(t, node.Stop(ctx, address))
		assert.EqualValues(t, 1, state.postStops.Load())
		assert.Equal(t, []error{nil}, state.stopReasons())
	})
	t.Run("With an undefined actor", func(t *testing.T) {
		node := newTestNode(t)
		require.ErrorIs(t, node.Stop(context.Background(), nil), gerrors.ErrUndefinedActor)
	})
	t.Run("With the caller giving up", func(t *testing.T) {
		node := newTestNode(t)
		address := Spawn(node, new(counter))
		require.NoError(t, node.Tell(context.Background(), address, slow{d: 200 * time.Millisecond}))
		require.True(t, pause.Until(func() bool { return address.cell.mailbox.IsEmpty() }, time.Second, time.Millisecond))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		require.ErrorIs(t, node.Stop(ctx, address), context.DeadlineExceeded)
	})
}

func TestShutdown(t *testing.T) {
	ctx := context.Background()
	node := NewNode(WithLogger(log.DiscardLogger), WithShutdownTimeout(5*time.Second))

	states := make([]*lifecycle, 0, 5)
	addresses := make([]Address[*lifecycle], 0, 5)
	for range 5 {
		state := newLifecycle()
		states = append(states, state)
		addresses = append(addresses, Spawn(node, state))
	}

	require.NoError(t, node.Shutdown(ctx))
	for i, address := range addresses {
		assert.False(t, address.IsAlive())
		assert.EqualValues(t, 1, states[i].postStops.Load())
	}
	assert.Empty(t, node.Actors())

	late := Spawn(node, new(counter))
	assert.False(t, late.IsAlive())
	require.ErrorIs(t, node.Tell(ctx, late, increment{}), gerrors.ErrDeliveryFailed)
	_, err := Ask[int, error](ctx, node, late, total{})
	require.ErrorIs(t, err, gerrors.ErrDeliveryFailed)

	_, err = node.Subscribe()
	require.ErrorIs(t, err, gerrors.ErrNodeStopped)
	require.NoError(t, node.Shutdown(ctx))
}

func TestEvents(t *testing.T) {
	ctx := context.Background()
	node := newTestNode(t)
	subscriber, err := node.Subscribe()
	require.NoError(t, err)

	address := Spawn(node, new(counter))
	require.NoError(t, node.Tell(ctx, address, "unexpected"))
	// a stop request skips queued messages, so wait for the tell to be handled
	require.True(t, pause.Until(func() bool { return node.Metric().DeadlettersCount() == 1 }, time.Second, 5*time.Millisecond))
	require.NoError(t, node.Stop(ctx, address))

	var (
		started     *ActorStarted
		stopped     *ActorStopped
		deadletters int
	)
	require.True(t, pause.Until(func() bool {
		for message := range subscriber.Iterator() {
			switch event := message.Payload().(type) {
			case *ActorStarted:
				started = event
			case *ActorStopped:
				stopped = event
			case *Deadletter:
				deadletters++
			}
		}
		return started != nil && stopped != nil && deadletters == 1
	}, time.Second, 5*time.Millisecond))

	assert.Equal(t, address.Ref(), started.Actor)
	assert.Equal(t, address.Ref(), stopped.Actor)
	assert.NoError(t, stopped.Reason)

	require.NoError(t, node.Unsubscribe(subscriber))
	assert.False(t, subscriber.Active())
}

func TestMetric(t *testing.T) {
	ctx := context.Background()
	node := newTestNode(t, WithMetric())
	address := Spawn(node, new(counter))

	for range 3 {
		_, err := Ask[int, error](ctx, node, address, increment{})
		require.NoError(t, err)
	}

	snapshot := node.Metric()
	assert.EqualValues(t, 1, snapshot.ActorsCount())
	assert.EqualValues(t, 3, snapshot.ProcessedCount())
	assert.Zero(t, snapshot.DeadlettersCount())
	assert.Zero(t, snapshot.DeliveryFailuresCount())
}

func TestMeterProvider(t *testing.T) {
	ctx := context.Background()
	provider := new(meterRecorder)
	node := newTestNode(t, WithMeterProvider(provider))

	require.Equal(t, []string{"github.com/tochemey/ergon"}, provider.meters)

	address := Spawn(node, new(counter))
	_, err := Ask[int, error](ctx, node, address, increment{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, node.Metric().ProcessedCount())
}

// meterRecorder records the meters the node asks for.
type meterRecorder struct {
	noop.MeterProvider
	meters []string
}

func (r *meterRecorder) Meter(name string, opts ...otelmetric.MeterOption) otelmetric.Meter {
	r.meters = append(r.meters, name)
	return r.MeterProvider.Meter(name, opts...)
}

// sleepyStarter takes its time to initialize.
type sleepyStarter struct {
	delay   time.Duration
	started bool
}

func (s *sleepyStarter) PreStart(*Context[*sleepyStarter]) error {
	pause.For(s.delay)
	s.started = true
	return nil
}

func (s *sleepyStarter) Handlers() []Handler[*sleepyStarter] {
	return []Handler[*sleepyStarter]{
		Handle(func(s *sleepyStarter, _ total, _ *Context[*sleepyStarter]) Outcome[bool, error] {
			return Ok[bool, error](s.started)
		}),
	}
}

// duplicated declares two handlers for the same message type.
type duplicated struct{}

func (d *duplicated) Handlers() []Handler[*duplicated] {
	return []Handler[*duplicated]{
		Handle(func(_ *duplicated, _ total, _ *Context[*duplicated]) Outcome[int, error] {
			return Ok[int, error](1)
		}),
		Handle(func(_ *duplicated, _ total, _ *Context[*duplicated]) Outcome[string, error] {
			return Ok[string, error]("1")
		}),
	}
}
