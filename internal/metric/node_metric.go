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

package metric

import "go.opentelemetry.io/otel/metric"

// NodeMetric groups the observable instruments of a node.
//
// Instruments:
//   - node_actors_count             (Int64ObservableGauge)
//   - node_processed_count          (Int64ObservableCounter)
//   - node_deadletters_count        (Int64ObservableCounter)
//   - node_delivery_failures_count  (Int64ObservableCounter)
type NodeMetric struct {
	actorsCount           metric.Int64ObservableGauge
	processedCount        metric.Int64ObservableCounter
	deadlettersCount      metric.Int64ObservableCounter
	deliveryFailuresCount metric.Int64ObservableCounter
}

// NewNodeMetric creates the node instruments with the given meter.
func NewNodeMetric(meter metric.Meter) (*NodeMetric, error) {
	var (
		instruments NodeMetric
		err         error
	)

	if instruments.actorsCount, err = meter.Int64ObservableGauge(
		"node_actors_count",
		metric.WithDescription("Number of live actors on the node"),
	); err != nil {
		return nil, err
	}

	if instruments.processedCount, err = meter.Int64ObservableCounter(
		"node_processed_count",
		metric.WithDescription("Total number of messages handled by the actors of the node"),
	); err != nil {
		return nil, err
	}

	if instruments.deadlettersCount, err = meter.Int64ObservableCounter(
		"node_deadletters_count",
		metric.WithDescription("Total number of messages that found no handler"),
	); err != nil {
		return nil, err
	}

	if instruments.deliveryFailuresCount, err = meter.Int64ObservableCounter(
		"node_delivery_failures_count",
		metric.WithDescription("Total number of messages that could not be delivered to a live actor"),
	); err != nil {
		return nil, err
	}

	return &instruments, nil
}

// ActorsCount returns the gauge of live actors.
func (x *NodeMetric) ActorsCount() metric.Int64ObservableGauge {
	return x.actorsCount
}

// ProcessedCount returns the counter of handled messages.
func (x *NodeMetric) ProcessedCount() metric.Int64ObservableCounter {
	return x.processedCount
}

// DeadlettersCount returns the counter of unhandled messages.
func (x *NodeMetric) DeadlettersCount() metric.Int64ObservableCounter {
	return x.deadlettersCount
}

// DeliveryFailuresCount returns the counter of failed deliveries.
func (x *NodeMetric) DeliveryFailuresCount() metric.Int64ObservableCounter {
	return x.deliveryFailuresCount
}

// Instruments returns every instrument, ready to be passed to Meter.RegisterCallback.
func (x *NodeMetric) Instruments() []metric.Observable {
	return []metric.Observable{
		x.actorsCount,
		x.processedCount,
		x.deadlettersCount,
		x.deliveryFailuresCount,
	}
}
