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

// Metric is a snapshot of the node counters.
type Metric struct {
	actorsCount           int64
	processedCount        int64
	deadlettersCount      int64
	deliveryFailuresCount int64
}

// ActorsCount returns the number of live actors.
func (m Metric) ActorsCount() int64 {
	return m.actorsCount
}

// ProcessedCount returns the number of messages handled since the node started.
func (m Metric) ProcessedCount() int64 {
	return m.processedCount
}

// DeadlettersCount returns the number of told messages that found no handler.
func (m Metric) DeadlettersCount() int64 {
	return m.deadlettersCount
}

// DeliveryFailuresCount returns the number of messages rejected or dropped
// because their receiver was not alive or its mailbox was full.
func (m Metric) DeliveryFailuresCount() int64 {
	return m.deliveryFailuresCount
}
