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

package chain

import (
	"context"

	"go.uber.org/multierr"
)

// Step is a unit of work in a Chain.
type Step func(ctx context.Context) error

// Chain runs a sequence of steps in insertion order and collects their errors.
// Steps are only executed when Run is called.
type Chain struct {
	steps []Step
}

// New creates a Chain. Every step runs and all errors are combined.
func New() *Chain {
	return &Chain{steps: make([]Step, 0, 4)}
}

// Add appends steps to the chain.
func (c *Chain) Add(steps ...Step) *Chain {
	c.steps = append(c.steps, steps...)
	return c
}

// Run executes the steps in order and returns the combined error.
// A cancelled context stops the remaining steps and its error is recorded.
func (c *Chain) Run(ctx context.Context) error {
	var err error
	for _, step := range c.steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return multierr.Append(err, ctxErr)
		}

		err = multierr.Append(err, step(ctx))
	}
	return err
}
