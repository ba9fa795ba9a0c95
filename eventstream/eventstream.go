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

package eventstream

import "sync"

// Stream is a topic based publish/subscribe broker.
type Stream interface {
	// AddSubscriber creates and registers a subscriber.
	AddSubscriber() Subscriber
	// RemoveSubscriber unsubscribes the subscriber from every topic and shuts it down.
	RemoveSubscriber(sub Subscriber)
	// Subscribe adds the subscriber to the topic.
	Subscribe(sub Subscriber, topic string)
	// Unsubscribe removes the subscriber from the topic.
	Unsubscribe(sub Subscriber, topic string)
	// Publish delivers the payload to every active subscriber of the topic.
	Publish(topic string, payload any)
	// Close shuts every subscriber down and removes all topics.
	Close()
}

// EventsStream is the default Stream implementation.
type EventsStream struct {
	mu          sync.RWMutex
	subscribers map[string]Subscriber
	topics      map[string]map[string]Subscriber
}

var _ Stream = (*EventsStream)(nil)

// New creates an EventsStream.
func New() *EventsStream {
	return &EventsStream{
		subscribers: make(map[string]Subscriber),
		topics:      make(map[string]map[string]Subscriber),
	}
}

func (x *EventsStream) AddSubscriber() Subscriber {
	sub := newSubscriber()
	x.mu.Lock()
	x.subscribers[sub.ID()] = sub
	x.mu.Unlock()
	return sub
}

func (x *EventsStream) RemoveSubscriber(sub Subscriber) {
	if sub == nil {
		return
	}
	for _, topic := range sub.Topics() {
		x.Unsubscribe(sub, topic)
	}

	x.mu.Lock()
	delete(x.subscribers, sub.ID())
	x.mu.Unlock()
	sub.Shutdown()
}

func (x *EventsStream) Subscribe(sub Subscriber, topic string) {
	if sub == nil || !sub.Active() {
		return
	}
	sub.subscribe(topic)

	x.mu.Lock()
	subs, ok := x.topics[topic]
	if !ok {
		subs = make(map[string]Subscriber)
		x.topics[topic] = subs
	}
	subs[sub.ID()] = sub
	x.mu.Unlock()
}

func (x *EventsStream) Unsubscribe(sub Subscriber, topic string) {
	if sub == nil {
		return
	}
	sub.unsubscribe(topic)

	x.mu.Lock()
	if subs, ok := x.topics[topic]; ok {
		delete(subs, sub.ID())
		if len(subs) == 0 {
			delete(x.topics, topic)
		}
	}
	x.mu.Unlock()
}

func (x *EventsStream) Publish(topic string, payload any) {
	x.mu.RLock()
	subs := x.topics[topic]
	snapshot := make([]Subscriber, 0, len(subs))
	for _, sub := range subs {
		snapshot = append(snapshot, sub)
	}
	x.mu.RUnlock()

	if len(snapshot) == 0 {
		return
	}

	message := NewMessage(topic, payload)
	for _, sub := range snapshot {
		sub.signal(message)
	}
}

func (x *EventsStream) Close() {
	x.mu.Lock()
	subs := x.subscribers
	x.subscribers = make(map[string]Subscriber)
	x.topics = make(map[string]map[string]Subscriber)
	x.mu.Unlock()

	for _, sub := range subs {
		sub.Shutdown()
	}
}
