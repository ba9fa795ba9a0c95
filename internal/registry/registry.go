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

package registry

import (
	"reflect"
	"strings"
)

// TypeOf returns the dynamic type of v.
// A reflect.Type argument is returned as is. A nil interface yields nil.
func TypeOf(v any) reflect.Type {
	switch t := v.(type) {
	case nil:
		return nil
	case reflect.Type:
		return t
	default:
		return reflect.TypeOf(v)
	}
}

// Name returns the fully qualified, lower cased name of the type of v.
// Pointer types keep their leading star.
func Name(v any) string {
	rtype := TypeOf(v)
	if rtype == nil {
		return "<nil>"
	}
	return lowTrim(qualified(rtype))
}

// ShortName returns the unqualified name of the type of v without pointer markers.
func ShortName(v any) string {
	rtype := TypeOf(v)
	if rtype == nil {
		return "<nil>"
	}
	for rtype.Kind() == reflect.Pointer {
		rtype = rtype.Elem()
	}
	if name := rtype.Name(); name != "" {
		return name
	}
	return rtype.String()
}

func qualified(rtype reflect.Type) string {
	if rtype.Kind() == reflect.Pointer {
		return "*" + qualified(rtype.Elem())
	}
	if rtype.PkgPath() == "" || rtype.Name() == "" {
		return rtype.String()
	}
	return rtype.PkgPath() + "." + rtype.Name()
}

func lowTrim(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
