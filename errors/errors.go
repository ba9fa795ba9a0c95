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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrDeliveryFailed is returned when a message cannot be delivered to an actor
	// because the actor is terminated or terminates before handling the message.
	ErrDeliveryFailed = errors.New("delivery failed: actor is not alive")

	// ErrHandlerNotFound is returned when an actor receives a message it has no handler for.
	ErrHandlerNotFound = errors.New("handler not found")

	// ErrInitFailure is returned when the actor's PreStart hook fails during initialization.
	ErrInitFailure = errors.New("preStart failed")

	// ErrMailboxFull is returned when a bounded mailbox has reached its capacity.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrMailboxDisposed is returned when operations are attempted on a disposed mailbox.
	ErrMailboxDisposed = errors.New("mailbox has been disposed")

	// ErrOutcomeTypeMismatch is returned when an ask expects an outcome type
	// different from the one the handler produces.
	ErrOutcomeTypeMismatch = errors.New("outcome type mismatch")

	// ErrRequestCanceled indicates that the asker stopped waiting before an outcome was produced.
	ErrRequestCanceled = errors.New("request canceled")

	// ErrNodeStopped is returned when an operation is attempted on a node that has been shut down.
	ErrNodeStopped = errors.New("node is stopped")

	// ErrUndefinedActor is returned when an actor reference is undefined.
	ErrUndefinedActor = errors.New("actor is not defined")

	// ErrSchedulerNotStarted is returned when attempting to use the scheduler before it has started.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")

	// ErrInvalidInterval is returned when a schedule interval is less than or equal to zero.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrScheduledReferenceNotFound is returned when a reference to a scheduled job cannot be found.
	ErrScheduledReferenceNotFound = errors.New("scheduled reference not found")
)

// NewErrInitFailure wraps a base error with ErrInitFailure to indicate a startup failure.
func NewErrInitFailure(err error) error {
	return errors.Join(ErrInitFailure, err)
}

// NewErrHandlerNotFound formats an ErrHandlerNotFound with the given message type name.
func NewErrHandlerNotFound(messageType string) error {
	return fmt.Errorf("message=(%s) %w", messageType, ErrHandlerNotFound)
}

// NewErrDeliveryFailed joins ErrDeliveryFailed with the reason the actor terminated.
// When reason is nil ErrDeliveryFailed is returned as is.
func NewErrDeliveryFailed(reason error) error {
	if reason == nil {
		return ErrDeliveryFailed
	}
	return errors.Join(ErrDeliveryFailed, reason)
}

// NewErrOutcomeTypeMismatch formats an ErrOutcomeTypeMismatch with the expected and actual outcome types.
func NewErrOutcomeTypeMismatch(expected, actual string) error {
	return fmt.Errorf("expected=(%s) actual=(%s) %w", expected, actual, ErrOutcomeTypeMismatch)
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}
