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

import (
	"bufio"
	"io"
	"iter"
	"os"
	"unicode/utf8"
)

// A Document is a lazy forward pass over the tokens of one document.
type Document = iter.Seq[string]

// A Corpus is a re-iterable sequence of documents. Every call to
// Documents starts a fresh pass over the same documents, which is what
// lets the training loop run multiple epochs. Err reports the first
// error of the most recent pass, in the bufio.Scanner idiom; it must be
// checked after the pass has been consumed.
type Corpus interface {
	Documents() iter.Seq[Document]
	Err() error
}

// Documents longer than this are split, bounding per-document state.
const maxDocLen = 1000

// docBreakRune ends a document in a text corpus.
const docBreakRune = '\n'

func sliceDoc(words []string) Document {
	return func(yield func(string) bool) {
		for _, w := range words {
			if !yield(w) {
				return
			}
		}
	}
}

// SliceCorpus is an in-memory corpus, mainly for tests and small inputs.
type SliceCorpus [][]string

func (c SliceCorpus) Documents() iter.Seq[Document] {
	return func(yield func(Document) bool) {
		for _, doc := range c {
			if !yield(sliceDoc(doc)) {
				return
			}
		}
	}
}

func (c SliceCorpus) Err() error { return nil }

// TextCorpus reads whitespace-separated tokens from a file. Newlines end
// a document; periods do too unless PeriodIsSpace is set, in which case
// they are plain whitespace.
type TextCorpus struct {
	Path          string
	PeriodIsSpace bool

	err error
}

func (c *TextCorpus) Documents() iter.Seq[Document] {
	return func(yield func(Document) bool) {
		c.err = nil
		f, err := os.Open(c.Path)
		if err != nil {
			c.err = err
			return
		}
		defer f.Close()
		s := c.scanner(f)
		var doc []string
		flush := func() bool {
			if len(doc) == 0 {
				return true
			}
			ok := yield(sliceDoc(doc))
			doc = nil
			return ok
		}
		for s.Scan() {
			tok := s.Text()
			if tok == "" {
				// Document break emitted by the split function.
				if !flush() {
					return
				}
				continue
			}
			doc = append(doc, tok)
			if len(doc) == maxDocLen {
				if !flush() {
					return
				}
			}
		}
		if !flush() {
			return
		}
		c.err = s.Err()
	}
}

func (c *TextCorpus) Err() error { return c.err }

func (c *TextCorpus) scanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(bufio.NewReader(r))
	s.Split(c.scanTokens)
	return s
}

// scanTokens is a bufio.SplitFunc yielding one word per token and an
// empty token at each document break.
func (c *TextCorpus) scanTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	// Skip leading spaces, stopping at a document break.
	start := 0
	for width := 0; start < len(data); start += width {
		var r rune
		r, width = utf8.DecodeRune(data[start:])
		if c.isBreak(r) {
			return start + width, []byte{}, nil
		}
		if !c.isSpace(r) {
			break
		}
	}
	// Scan until space, marking end of word.
	for width, i := 0, start; i < len(data); i += width {
		var r rune
		r, width = utf8.DecodeRune(data[i:])
		if c.isSpace(r) || c.isBreak(r) {
			if c.isBreak(r) {
				// Leave the break in place so the next call emits it.
				width = 0
			}
			return i + width, data[start:i], nil
		}
	}
	// At EOF with a final, non-terminated word: return it.
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	// Request more data.
	return start, nil, nil
}

func (c *TextCorpus) isBreak(r rune) bool {
	return r == docBreakRune || (r == '.' && !c.PeriodIsSpace)
}

// Identical to the stdlib space set but optionally treating periods as
// whitespace.
func (c *TextCorpus) isSpace(r rune) bool {
	if r <= '\u00FF' {
		if c.PeriodIsSpace && r == '.' {
			return true
		}
		switch r {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			return true
		case '\u0085', '\u00A0':
			return true
		}
		return false
	}
	if '\u2000' <= r && r <= '\u200a' {
		return true
	}
	switch r {
	case '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000':
		return true
	}
	return false
}
