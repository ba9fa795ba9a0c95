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

	"github.com/tochemey/ergon/internal/registry"
	"github.com/tochemey/ergon/internal/xsync"
)

// Handler is a dispatch entry of actor type T: it binds one message type to the
// function handling it and records the outcome types that function produces.
// Handlers are built with Handle.
type Handler[T any] struct {
	messageType reflect.Type
	okType      reflect.Type
	errType     reflect.Type
	invoke      func(actor T, message any, ctx *Context[T]) Reply
}

// Handle creates the dispatch entry for messages of type M.
// The message type is matched exactly: M and *M are distinct entries.
func Handle[T, M, O, E any](fn func(actor T, message M, ctx *Context[T]) Outcome[O, E]) Handler[T] {
	return Handler[T]{
		messageType: reflect.TypeFor[M](),
		okType:      reflect.TypeFor[O](),
		errType:     reflect.TypeFor[E](),
		invoke: func(actor T, message any, ctx *Context[T]) Reply {
			return fn(actor, message.(M), ctx)
		},
	}
}

// MessageType returns the type of message the handler accepts.
func (h Handler[T]) MessageType() reflect.Type {
	return h.messageType
}

// OkType returns the success type of the handler outcome.
func (h Handler[T]) OkType() reflect.Type {
	return h.okType
}

// ErrType returns the failure type of the handler outcome.
func (h Handler[T]) ErrType() reflect.Type {
	return h.errType
}

// entry is the untyped view of a Handler used by callers that do not know T.
type entry interface {
	MessageType() reflect.Type
	OkType() reflect.Type
	ErrType() reflect.Type
}

// dispatchTables caches the dispatch table of every spawned actor type.
var dispatchTables = xsync.NewMap[reflect.Type, any]()

// dispatchTable returns the dispatch table of actor type T, building it on first use.
// It panics when two handlers accept the same message type.
func dispatchTable[T Actor[T]](actor T) map[reflect.Type]Handler[T] {
	table, _ := dispatchTables.GetOrSet(reflect.TypeFor[T](), func() any {
		return buildDispatch(actor)
	})
	return table.(map[reflect.Type]Handler[T])
}

func buildDispatch[T Actor[T]](actor T) map[reflect.Type]Handler[T] {
	handlers := actor.Handlers()
	table := make(map[reflect.Type]Handler[T], len(handlers))
	for _, handler := range handlers {
		if handler.invoke == nil {
			panic(fmt.Sprintf("actor %s: handler built without actor.Handle", registry.Name(reflect.TypeFor[T]())))
		}
		if _, ok := table[handler.messageType]; ok {
			panic(fmt.Sprintf("actor %s: duplicate handler for message %s",
				registry.Name(reflect.TypeFor[T]()), registry.Name(handler.messageType)))
		}
		table[handler.messageType] = handler
	}
	return table
}

// Accepts reports whether actor type T has a handler for the dynamic type of message.
func Accepts[T Actor[T]](message any) bool {
	var zero T
	_, ok := dispatchTable(zero)[reflect.TypeOf(message)]
	return ok
}
