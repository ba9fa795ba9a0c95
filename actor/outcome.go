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

import "fmt"

// Reply is the untyped view of an Outcome.
type Reply interface {
	// IsOk reports whether the reply carries a success value.
	IsOk() bool
	// Result returns the success value or the failure value.
	Result() any
}

// Outcome is the result a handler produces for a message: either a success
// value of type O or a failure value of type E. A failure is ordinary data
// relayed to the asker; it never stops the actor.
type Outcome[O, E any] struct {
	value   O
	failure E
	ok      bool
}

var _ Reply = Outcome[int, error]{}

// Ok creates a successful Outcome.
func Ok[O, E any](value O) Outcome[O, E] {
	return Outcome[O, E]{value: value, ok: true}
}

// Err creates a failed Outcome.
func Err[O, E any](failure E) Outcome[O, E] {
	return Outcome[O, E]{failure: failure}
}

// IsOk reports whether the outcome is a success.
func (o Outcome[O, E]) IsOk() bool {
	return o.ok
}

// Value returns the success value and true, or the zero value and false.
func (o Outcome[O, E]) Value() (O, bool) {
	return o.value, o.ok
}

// Failure returns the failure value and true, or the zero value and false.
func (o Outcome[O, E]) Failure() (E, bool) {
	return o.failure, !o.ok
}

// Result returns the success value or the failure value.
func (o Outcome[O, E]) Result() any {
	if o.ok {
		return o.value
	}
	return o.failure
}

// String returns a readable form of the outcome.
func (o Outcome[O, E]) String() string {
	if o.ok {
		return fmt.Sprintf("Ok(%v)", o.value)
	}
	return fmt.Sprintf("Err(%v)", o.failure)
}
