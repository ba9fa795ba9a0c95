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

package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	t.Run("With FIFO order across growth and shrink", func(t *testing.T) {
		q := New[int]()
		for i := range 100 {
			require.True(t, q.Push(i))
		}
		assert.Equal(t, 100, q.Len())

		for i := range 100 {
			v, ok := q.Pop()
			require.True(t, ok)
			require.Equal(t, i, v)
		}
		assert.Zero(t, q.Len())

		_, ok := q.Pop()
		assert.False(t, ok)
	})
	t.Run("With interleaved push and pop around the ring", func(t *testing.T) {
		q := New[int]()
		next := 0
		for i := range 200 {
			q.Push(i)
			if i%3 == 0 {
				v, ok := q.Pop()
				require.True(t, ok)
				require.Equal(t, next, v)
				next++
			}
		}
		for q.Len() > 0 {
			v, _ := q.Pop()
			require.Equal(t, next, v)
			next++
		}
		assert.Equal(t, 200, next)
	})
	t.Run("With Close returning remaining items", func(t *testing.T) {
		q := New[string]()
		q.Push("a")
		q.Push("b")
		_, _ = q.Pop()
		q.Push("c")

		assert.Equal(t, []string{"b", "c"}, q.Close())
		assert.False(t, q.Push("d"))
		assert.Nil(t, q.Close())

		_, ok := q.Pop()
		assert.False(t, ok)
	})
	t.Run("With concurrent producers", func(t *testing.T) {
		q := New[int]()
		var wg sync.WaitGroup
		for p := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range 100 {
					q.Push(p*100 + i)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 800, q.Len())
	})
}
