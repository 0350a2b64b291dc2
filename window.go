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

import "iter"

// window is a fixed-capacity sliding buffer over one document. It is the
// only state the pair generator retains: pushing into a full window
// evicts the oldest word, and no allocation happens after construction.
type window struct {
	buf  []string
	head int
	n    int
}

func newWindow(capacity int) *window {
	return &window{buf: make([]string, capacity)}
}

// push appends w, evicting the oldest word when full.
func (b *window) push(w string) {
	if b.n < len(b.buf) {
		b.buf[(b.head+b.n)%len(b.buf)] = w
		b.n++
		return
	}
	b.buf[b.head] = w
	b.head = (b.head + 1) % len(b.buf)
}

// at returns the i-th oldest word, 0 <= i < len.
func (b *window) at(i int) string {
	return b.buf[(b.head+i)%len(b.buf)]
}

func (b *window) len() int { return b.n }

// Pairs produces the lazy stream of (center, context) training pairs for
// every document in docs, with context words at most span positions from
// the center. Every ordered pair of distinct positions within span of
// each other is emitted exactly once, centers in document order and
// contexts left to right. The window never crosses a document boundary.
// span must be at least 1; Config.Validate enforces that for the
// training pipeline.
func Pairs(docs iter.Seq[Document], span int) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for doc := range docs {
			if !docPairs(doc, span, yield) {
				return
			}
		}
	}
}

func docPairs(doc Document, span int, yield func(Pair) bool) bool {
	winSize := 2*span + 1
	win := newWindow(winSize)
	next, stop := iter.Pull(doc)
	defer stop()

	// Prime the window with the first winSize words.
	for win.len() < winSize {
		w, ok := next()
		if !ok {
			break
		}
		win.push(w)
	}

	// A document shorter than the window fits in it whole, so all its
	// valid pairs come from a single scan of the buffer.
	if n := win.len(); n < winSize {
		for i := 0; i < n; i++ {
			lo := max(i-span, 0)
			hi := min(i+span+1, n)
			for j := lo; j < hi; j++ {
				if j == i {
					continue
				}
				if !yield(Pair{win.at(i), win.at(j)}) {
					return false
				}
			}
		}
		return true
	}

	// Leading edge: the first span words never reach the center slot, so
	// emit their pairs against the contexts already in the window.
	for i := 0; i < span; i++ {
		for j := 0; j < i+span+1; j++ {
			if j == i {
				continue
			}
			if !yield(Pair{win.at(i), win.at(j)}) {
				return false
			}
		}
	}

	// Steady state: the middle slot is the center; emit its pairs, then
	// slide the window one word forward.
	for {
		center := win.at(span)
		for j := 0; j < winSize; j++ {
			if j == span {
				continue
			}
			if !yield(Pair{center, win.at(j)}) {
				return false
			}
		}
		w, ok := next()
		if !ok {
			break
		}
		win.push(w)
	}

	// Trailing edge: words whose window ran off the end of the document.
	for i := span + 1; i < winSize; i++ {
		for j := i - span; j < winSize; j++ {
			if j == i {
				continue
			}
			if !yield(Pair{win.at(i), win.at(j)}) {
				return false
			}
		}
	}
	return true
}
