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
	"iter"
	"math"
	"math/rand"
)

// A SampledReader filters a corpus stream, stochastically dropping
// frequent words before they reach the pair generator. It must be
// fitted with corpus-wide counts (CountWords or UseVocab) before Read.
type SampledReader struct {
	subsample real
	rng       *rand.Rand
	vocab     *Vocab
}

// NewSampledReader returns a reader with subsampling threshold t. A
// threshold of zero disables dropping.
func NewSampledReader(t real, rng *rand.Rand) *SampledReader {
	return &SampledReader{subsample: t, rng: rng}
}

// CountWords fits the reader by counting word frequencies in one full
// pass over c.
func (r *SampledReader) CountWords(c Corpus) error {
	v, err := BuildVocab(c, 1, 0)
	if err != nil {
		return err
	}
	r.vocab = v
	return nil
}

// UseVocab fits the reader with an already-built vocabulary.
func (r *SampledReader) UseVocab(v *Vocab) { r.vocab = v }

// Vocab returns the fitted vocabulary, nil before fitting.
func (r *SampledReader) Vocab() *Vocab { return r.vocab }

// keepP is the probability of keeping one occurrence of a word with
// corpus-relative frequency f = count/total:
//
//	p = sqrt(f/t + 1) * t/f
//
// clamped to 1. The probability decreases monotonically in f, so stop
// words are dropped often while rare words always pass. Words outside
// the vocabulary count as a single occurrence and are always kept.
func (r *SampledReader) keepP(w string) real {
	if r.subsample <= 0 {
		return 1
	}
	c, ok := r.vocab.CountOf(w)
	if !ok || c == 0 {
		c = 1
	}
	total := r.vocab.Total()
	if total == 0 {
		return 1
	}
	f := real(c) / real(total)
	p := math.Sqrt(f/r.subsample+1) * r.subsample / f
	if p > 1 {
		p = 1
	}
	return p
}

// Read returns the filtered document stream of c. Each occurrence is
// kept independently with probability keepP; nothing is cached between
// occurrences. Read fails with ErrNotFitted before CountWords/UseVocab.
func (r *SampledReader) Read(c Corpus) (iter.Seq[Document], error) {
	if r.vocab == nil {
		return nil, ErrNotFitted
	}
	return func(yield func(Document) bool) {
		for doc := range c.Documents() {
			filtered := func(yieldWord func(string) bool) {
				for w := range doc {
					if r.rng.Float64() >= r.keepP(w) {
						continue
					}
					if !yieldWord(w) {
						return
					}
				}
			}
			if !yield(filtered) {
				return
			}
		}
	}, nil
}
