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
	"reflect"

	"github.com/google/uuid"

	gerrors "github.com/tochemey/ergon/errors"
)

// Tell enqueues message to the actor to. See Node.Tell.
func Tell(ctx context.Context, node *Node, to Ref, message any) error {
	return node.Tell(ctx, to, message)
}

// Ask sends message to the actor to and waits for the Outcome of its handler.
//
// It fails with
//   - errors.ErrHandlerNotFound when the actor has no handler for the message type,
//   - errors.ErrOutcomeTypeMismatch when the handler outcome is not Outcome[O, E],
//   - errors.ErrDeliveryFailed when the actor terminated before producing an outcome,
//   - errors.ErrRequestCanceled joined with the context error when ctx is done first.
//
// There is no built-in timeout: give ctx a deadline to bound the wait.
func Ask[O, E any](ctx context.Context, node *Node, to Ref, message any) (Outcome[O, E], error) {
	var zero Outcome[O, E]

	target, err := node.resolve(to)
	if err != nil {
		return zero, err
	}

	handler, ok := target.lookup(typeOf(message))
	if !ok {
		return zero, gerrors.NewErrHandlerNotFound(typeName(message))
	}

	okType, errType := reflect.TypeFor[O](), reflect.TypeFor[E]()
	if handler.OkType() != okType || handler.ErrType() != errType {
		return zero, gerrors.NewErrOutcomeTypeMismatch(
			outcomeName(okType, errType),
			outcomeName(handler.OkType(), handler.ErrType()))
	}

	reply, err := node.ask(ctx, target, message)
	if err != nil {
		return zero, err
	}

	outcome, ok := reply.(Outcome[O, E])
	if !ok {
		return zero, gerrors.NewErrOutcomeTypeMismatch(outcomeName(okType, errType), typeName(reply))
	}
	return outcome, nil
}

func newID() string {
	return uuid.NewString()
}

func typeOf(message any) reflect.Type {
	return reflect.TypeOf(message)
}

func typeName(message any) string {
	if message == nil {
		return "<nil>"
	}
	return reflect.TypeOf(message).String()
}

func outcomeName(okType, errType reflect.Type) string {
	return "Outcome[" + okType.String() + ", " + errType.String() + "]"
}
