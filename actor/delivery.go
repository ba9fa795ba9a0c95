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

import "reflect"

// delivery is a mailbox entry: a message and, for an ask, the one-shot channel
// the outcome is relayed on.
type delivery struct {
	message  any
	reply    chan response
	answered bool
}

// response carries the outcome of an ask or the reason it has none.
type response struct {
	reply Reply
	err   error
}

func newTell(message any) *delivery {
	return &delivery{message: message}
}

func newAsk(message any) *delivery {
	return &delivery{message: message, reply: make(chan response, 1)}
}

// respond relays the result to the asker. Only the first call has an effect
// and it never blocks because the reply channel is buffered.
func (d *delivery) respond(reply Reply, err error) {
	if d.reply == nil || d.answered {
		return
	}
	d.answered = true
	d.reply <- response{reply: reply, err: err}
}

// subscribe asks the receiving actor to broadcast messages of messageType to subscriber.
type subscribe struct {
	messageType reflect.Type
	subscriber  Ref
}

// unsubscribe reverts a subscribe.
type unsubscribe struct {
	messageType reflect.Type
	subscriber  Ref
}

// drain pops every delivery left in the mailbox.
func drain(mailbox Mailbox) []*delivery {
	var pending []*delivery
	for d := mailbox.Dequeue(); d != nil; d = mailbox.Dequeue() {
		pending = append(pending, d)
	}
	return pending
}
