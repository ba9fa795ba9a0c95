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
	"time"

	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/ergon/log"
)

// Option is the interface that applies a node configuration option.
type Option interface {
	// Apply sets the Option value of a node.
	Apply(node *Node)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Node)

// Apply sets the Option value of a node.
func (f OptionFunc) Apply(node *Node) {
	f(node)
}

// WithLogger sets the node logger. Every actor logs through a child of it.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(node *Node) {
		if logger != nil {
			node.logger = logger
		}
	})
}

// WithMetric enables the OpenTelemetry instruments of the node.
// The instruments are created from the global meter provider.
func WithMetric() Option {
	return OptionFunc(func(node *Node) {
		node.metricEnabled.Store(true)
	})
}

// WithMeterProvider enables the OpenTelemetry instruments of the node and
// creates them from the given meter provider instead of the global one.
func WithMeterProvider(provider otelmetric.MeterProvider) Option {
	return OptionFunc(func(node *Node) {
		node.metricEnabled.Store(true)
		node.meterProvider = provider
	})
}

// WithDeadletterHandler sets the function called with every told message
// no handler exists for. By default such messages are logged at warn level.
func WithDeadletterHandler(handler DeadletterHandler) Option {
	return OptionFunc(func(node *Node) {
		if handler != nil {
			node.deadletterHandler = handler
		}
	})
}

// WithShutdownTimeout sets the time budget of Shutdown when the caller context has no deadline.
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(node *Node) {
		if timeout > 0 {
			node.shutdownTimeout = timeout
		}
	})
}

// WithDefaultMailbox sets the factory of the mailbox given to actors spawned
// without WithMailbox. The factory is called once per actor.
func WithDefaultMailbox(factory func() Mailbox) Option {
	return OptionFunc(func(node *Node) {
		if factory != nil {
			node.mailboxFactory = factory
		}
	})
}
