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

// Package skipgram trains word-embedding vectors with the skip-gram model
// and negative sampling (Mikolov et al., 2013).
//
// The pipeline is a chain of lazy, pull-based stages:
//
//	Corpus -> SampledReader -> Pairs -> Batches -> Stepper
//
// Each stage buffers at most one window or one batch, so memory stays
// bounded regardless of corpus size. All stages run single-threaded;
// an update must complete before the next batch is pulled.
package skipgram

type (
	idxUint   = uint32
	countUint = uint32
	real      = float64
)

// A Pair is a single training example: a center word and one word from
// its surrounding window. The two always come from distinct positions of
// the same document.
type Pair struct {
	Center  string
	Context string
}
