/*
 * Copyright (c) 2024 The skipgram authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 */

package skipgram

import "errors"

var (
	// ErrNotFitted is returned by SampledReader.Read when CountWords has
	// not completed yet.
	ErrNotFitted = errors.New("skipgram: reader is not fitted, call CountWords first")

	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("skipgram: invalid configuration")

	// ErrIndexOutOfRange is returned by parameter lookups for indices
	// outside [0, vocab size).
	ErrIndexOutOfRange = errors.New("skipgram: vocabulary index out of range")
)
