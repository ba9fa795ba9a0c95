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
	"fmt"
	"reflect"
)

// Ref is the untyped view of an Address. It allows addresses of different
// actor types to be stored together, as subscriber sets do.
// Refs are comparable: two refs are equal when they designate the same actor.
type Ref interface {
	// ID returns the unique identifier of the actor.
	ID() string
	// Name returns the actor name.
	Name() string
	// IsAlive reports whether the actor still accepts messages.
	IsAlive() bool
	// String returns a readable form of the reference.
	String() string

	process() process
}

// process is the part of a cell senders interact with.
type process interface {
	deliver(d *delivery) error
	lookup(messageType reflect.Type) (entry, bool)
	requestStop()
	terminated() <-chan struct{}
	actorType() reflect.Type
}

// Address designates one actor spawned as type T. It is a small comparable
// value: copies compare equal and can be used as map keys.
// The zero Address designates no actor and every send to it fails.
// An Address stays valid after the actor terminates; sends then fail with
// errors.ErrDeliveryFailed.
type Address[T any] struct {
	cell *cell[T]
}

var _ Ref = Address[any]{}

// ID returns the unique identifier of the actor.
func (a Address[T]) ID() string {
	if a.cell == nil {
		return ""
	}
	return a.cell.id
}

// Name returns the actor name.
func (a Address[T]) Name() string {
	if a.cell == nil {
		return ""
	}
	return a.cell.name
}

// IsAlive reports whether the actor still accepts messages.
func (a Address[T]) IsAlive() bool {
	return a.cell != nil && a.cell.alive.Load()
}

// IsZero reports whether the address designates no actor.
func (a Address[T]) IsZero() bool {
	return a.cell == nil
}

// Ref returns the untyped view of the address.
func (a Address[T]) Ref() Ref {
	return a
}

// String returns the actor name and identifier.
func (a Address[T]) String() string {
	if a.cell == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s@%s", a.cell.name, a.cell.id)
}

func (a Address[T]) process() process {
	if a.cell == nil {
		return nil
	}
	return a.cell
}

// AddressOf narrows an untyped reference to the Address of actor type T.
// It returns false when ref designates an actor of another type.
func AddressOf[T any](ref Ref) (Address[T], bool) {
	address, ok := ref.(Address[T])
	return address, ok
}
