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
	"fmt"
	"math"
	"math/rand"
)

const (
	// UnigramPower flattens the frequency skew of the noise
	// distribution, favoring moderate-frequency words.
	UnigramPower = 0.75

	defaultUnigramTableSize = 1e8
)

// UnigramDist draws word indices proportionally to count^power via a
// precomputed table. Ported from word2vec.
type UnigramDist struct {
	table []idxUint
	size  idxUint
}

// NewUnigramDist builds the sampling table for v. tableSize trades
// memory for sampling resolution; zero selects the word2vec default of
// 1e8 entries.
func NewUnigramDist(v *Vocab, tableSize int, power real) *UnigramDist {
	if tableSize <= 0 {
		tableSize = defaultUnigramTableSize
	}
	vocabSize := int(v.Size())
	table := make([]idxUint, tableSize)
	if vocabSize == 0 {
		return &UnigramDist{table: table}
	}
	var trainWordsPow real
	for i := 0; i < vocabSize; i++ {
		trainWordsPow += math.Pow(real(v.Count(idxUint(i))), power)
	}
	var i int
	d1 := math.Pow(real(v.Count(0)), power) / trainWordsPow
	for a := 0; a < tableSize; a++ {
		table[a] = idxUint(i)
		if real(a)/real(tableSize) > d1 {
			i++
			if i >= vocabSize {
				i = vocabSize - 1
			}
			d1 += math.Pow(real(v.Count(idxUint(i))), power) / trainWordsPow
		}
	}
	return &UnigramDist{table: table, size: idxUint(vocabSize)}
}

// Sample draws one index from the distorted unigram distribution.
func (d *UnigramDist) Sample(r *rand.Rand) idxUint {
	return d.table[r.Intn(len(d.table))]
}

// SampleUnique draws k distinct indices by rejection. The caller shares
// one draw across a whole batch. k must be smaller than the vocabulary
// size or no k distinct indices exist.
func (d *UnigramDist) SampleUnique(r *rand.Rand, k int) ([]idxUint, error) {
	if k < 0 || idxUint(k) >= d.size && k > 0 {
		return nil, fmt.Errorf("%w: %d negative samples need a vocabulary larger than %d", ErrInvalidConfig, k, k)
	}
	if k == 0 {
		return nil, nil
	}
	drawn := make(map[idxUint]struct{}, k)
	out := make([]idxUint, 0, k)
	for len(out) < k {
		idx := d.Sample(r)
		if _, dup := drawn[idx]; dup {
			continue
		}
		drawn[idx] = struct{}{}
		out = append(out, idx)
	}
	return out, nil
}
