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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	t.Run("With Ok", func(t *testing.T) {
		outcome := Ok[int, string](42)
		assert.True(t, outcome.IsOk())

		value, ok := outcome.Value()
		assert.True(t, ok)
		assert.Equal(t, 42, value)

		failure, ok := outcome.Failure()
		assert.False(t, ok)
		assert.Empty(t, failure)

		assert.Equal(t, 42, outcome.Result())
		assert.Equal(t, "Ok(42)", outcome.String())
	})
	t.Run("With Err", func(t *testing.T) {
		outcome := Err[int, string]("bad input")
		assert.False(t, outcome.IsOk())

		value, ok := outcome.Value()
		assert.False(t, ok)
		assert.Zero(t, value)

		failure, ok := outcome.Failure()
		assert.True(t, ok)
		assert.Equal(t, "bad input", failure)

		assert.Equal(t, "bad input", outcome.Result())
		assert.Equal(t, "Err(bad input)", outcome.String())
	})
	t.Run("With the zero value being a failure", func(t *testing.T) {
		var outcome Outcome[int, error]
		assert.False(t, outcome.IsOk())
	})
}

func TestHandle(t *testing.T) {
	handler := Handle(func(c *counter, msg divide, _ *Context[*counter]) Outcome[int, error] {
		return Ok[int, error](c.count / msg.by)
	})

	assert.Equal(t, reflect.TypeOf(divide{}), handler.MessageType())
	assert.Equal(t, reflect.TypeOf(0), handler.OkType())
	assert.Equal(t, reflect.TypeFor[error](), handler.ErrType())

	reply := handler.invoke(&counter{count: 10}, divide{by: 2}, nil)
	assert.True(t, reply.IsOk())
	assert.Equal(t, 5, reply.Result())
}

func TestDispatchTable(t *testing.T) {
	table := dispatchTable(new(counter))
	assert.Len(t, table, 7)

	_, ok := table[reflect.TypeOf(increment{})]
	assert.True(t, ok)
	_, ok = table[reflect.TypeOf(&increment{})]
	assert.False(t, ok)

	// the table is built once per actor type
	again := dispatchTable(new(counter))
	assert.Equal(t, reflect.ValueOf(table).Pointer(), reflect.ValueOf(again).Pointer())
}
