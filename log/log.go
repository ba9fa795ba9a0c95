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


package log

import (
	"io"
	golog "log"
)

// Logger is the logging facade of the runtime. The node, its actors and the
// event stream only log through it, so any backend can be plugged in with
// actor.WithLogger.
//
// The f variants format their arguments like fmt.Sprintf.
// Fatal entries exit the process and Panic entries panic once written.
type Logger interface {
	Debug(...any)
	Debugf(string, ...any)
	Info(...any)
	Infof(string, ...any)
	Warn(...any)
	Warnf(string, ...any)
	Error(...any)
	Errorf(string, ...any)
	Fatal(...any)
	Fatalf(string, ...any)
	Panic(...any)
	Panicf(string, ...any)

	// Enabled reports whether entries at level are written.
	Enabled(level Level) bool
	// With derives a Logger adding the key/value pairs to every entry.
	// Actors use it to tag their entries with their name and id.
	With(keyValues ...any) Logger
	// LogLevel returns the minimum level written.
	LogLevel() Level
	// LogOutput returns the writers entries go to.
	LogOutput() []io.Writer
	// StdLogger bridges the logger to the standard library logger.
	StdLogger() *golog.Logger
	// Flush writes buffered entries out.
	Flush() error
}
