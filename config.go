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

import "fmt"

// Config collects every training hyperparameter. A Config is passed by
// value at construction and never mutated afterwards.
type Config struct {
	// WindowSize is the window radius: the maximum distance between a
	// center word and a context word.
	WindowSize int

	// Subsample is the frequent-word subsampling threshold t. Zero
	// disables subsampling.
	Subsample real

	// NegSample is the number of negative samples drawn per batch.
	NegSample int

	// HiddenDim is the embedding dimensionality.
	HiddenDim int

	// BatchSize is the number of pairs per training batch.
	BatchSize int

	// Epochs is the number of full passes over the corpus.
	Epochs int

	// Alpha is the learning rate.
	Alpha real

	// ReportEvery emits a progress line every N batches. Zero silences
	// progress reporting.
	ReportEvery int
}

// DefaultConfig returns the defaults from the word2vec paper setup.
func DefaultConfig() Config {
	return Config{
		WindowSize:  5,
		Subsample:   1e-3,
		NegSample:   5,
		HiddenDim:   300,
		BatchSize:   1000,
		Epochs:      10,
		Alpha:       0.001,
		ReportEvery: 500,
	}
}

// Validate reports the first invalid field, wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.WindowSize < 1:
		return fmt.Errorf("%w: window size %d, must be at least 1", ErrInvalidConfig, c.WindowSize)
	case c.Subsample < 0 || c.Subsample >= 1:
		return fmt.Errorf("%w: subsample threshold %g, must be in [0, 1)", ErrInvalidConfig, c.Subsample)
	case c.NegSample < 0:
		return fmt.Errorf("%w: negative sample count %d, must not be negative", ErrInvalidConfig, c.NegSample)
	case c.HiddenDim < 1:
		return fmt.Errorf("%w: hidden dimension %d, must be at least 1", ErrInvalidConfig, c.HiddenDim)
	case c.BatchSize < 1:
		return fmt.Errorf("%w: batch size %d, must be at least 1", ErrInvalidConfig, c.BatchSize)
	case c.Epochs < 0:
		return fmt.Errorf("%w: epochs %d, must not be negative", ErrInvalidConfig, c.Epochs)
	case c.Alpha <= 0:
		return fmt.Errorf("%w: learning rate %g, must be positive", ErrInvalidConfig, c.Alpha)
	}
	return nil
}
