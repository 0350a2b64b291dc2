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
	"fmt"
	"io"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SGDModel is the reference trainable collaborator: two dense embedding
// tables (input and output) plus an output bias vector, updated by
// plain stochastic gradient descent on the negative-sampling objective.
// It exposes its parameters through ParamSource and performs fused
// loss-and-update steps, one batch at a time.
type SGDModel struct {
	vecs  *mat.Dense // input table, vocab x dim
	ctxs  *mat.Dense // output table, vocab x dim
	bias  []real
	dim   int
	vsize idxUint

	dist  *UnigramDist
	k     int
	alpha real
	rng   *rand.Rand

	grad []real // gradient scratch, reused across steps
}

// NewSGDModel initializes both tables with small uniform noise, the way
// word2vec does, and builds the noise distribution from the vocabulary
// counts. cfg must validate and cfg.NegSample must be smaller than the
// vocabulary size.
func NewSGDModel(v *Vocab, cfg Config, rng *rand.Rand) (*SGDModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	vsize := v.Size()
	if cfg.NegSample > 0 && idxUint(cfg.NegSample) >= vsize {
		return nil, fmt.Errorf("%w: %d negative samples with vocabulary size %d",
			ErrInvalidConfig, cfg.NegSample, vsize)
	}
	m := &SGDModel{
		vecs:  mat.NewDense(int(vsize), cfg.HiddenDim, nil),
		ctxs:  mat.NewDense(int(vsize), cfg.HiddenDim, nil),
		bias:  make([]real, vsize),
		dim:   cfg.HiddenDim,
		vsize: vsize,
		dist:  NewUnigramDist(v, unigramTableSizeFor(vsize), UnigramPower),
		k:     cfg.NegSample,
		alpha: cfg.Alpha,
		rng:   rng,
		grad:  make([]real, cfg.HiddenDim),
	}
	for _, table := range []*mat.Dense{m.vecs, m.ctxs} {
		raw := table.RawMatrix().Data
		for i := range raw {
			raw[i] = (rng.Float64() - 0.5) / real(cfg.HiddenDim)
		}
	}
	return m, nil
}

// unigramTableSizeFor keeps the noise table proportionate for tiny
// vocabularies instead of always paying the full 1e8 entries.
func unigramTableSizeFor(vsize idxUint) int {
	size := int(vsize) * 1000
	if size > defaultUnigramTableSize {
		size = defaultUnigramTableSize
	}
	return size
}

// Lookup implements ParamSource.
func (m *SGDModel) Lookup(t Table, idx idxUint) ([]real, error) {
	if idx >= m.vsize {
		return nil, fmt.Errorf("%w: index %d with vocabulary size %d", ErrIndexOutOfRange, idx, m.vsize)
	}
	if t == TableInput {
		return m.vecs.RawRowView(int(idx)), nil
	}
	return m.ctxs.RawRowView(int(idx)), nil
}

// Bias implements ParamSource.
func (m *SGDModel) Bias(idx idxUint) (real, error) {
	if idx >= m.vsize {
		return 0, fmt.Errorf("%w: index %d with vocabulary size %d", ErrIndexOutOfRange, idx, m.vsize)
	}
	return m.bias[idx], nil
}

// VocabSize implements ParamSource.
func (m *SGDModel) VocabSize() idxUint { return m.vsize }

// Step applies one SGD update for the batch and returns the realized
// negative-sampling loss. The k negative indices are drawn once and
// shared by every example in the batch; a negative colliding with an
// example's true label is skipped for that example.
func (m *SGDModel) Step(b *Batch) (real, error) {
	if b.Size() == 0 {
		return 0, nil
	}
	negs, err := m.dist.SampleUnique(m.rng, m.k)
	if err != nil {
		return 0, err
	}

	var loss real
	for i, in := range b.Inputs {
		label := b.Labels[i]
		if in >= m.vsize || label >= m.vsize {
			return 0, fmt.Errorf("%w: pair (%d, %d) with vocabulary size %d",
				ErrIndexOutOfRange, in, label, m.vsize)
		}
		x := m.vecs.RawRowView(int(in))
		for j := range m.grad {
			m.grad[j] = 0
		}

		// True pair, target 1.
		wl := m.ctxs.RawRowView(int(label))
		logit := floats.Dot(x, wl) + m.bias[label]
		loss -= logSigmoid(logit)
		g := sigmoid(logit) - 1
		floats.AddScaled(m.grad, g, wl)
		floats.AddScaled(wl, -m.alpha*g, x)
		m.bias[label] -= m.alpha * g

		// Shared negatives, target 0.
		for _, neg := range negs {
			if neg == label {
				continue
			}
			wn := m.ctxs.RawRowView(int(neg))
			logit := floats.Dot(x, wn) + m.bias[neg]
			loss -= logSigmoid(-logit)
			g := sigmoid(logit)
			floats.AddScaled(m.grad, g, wn)
			floats.AddScaled(wn, -m.alpha*g, x)
			m.bias[neg] -= m.alpha * g
		}

		floats.AddScaled(x, -m.alpha, m.grad)
	}
	loss /= real(b.Size())
	if math.IsNaN(loss) {
		return loss, fmt.Errorf("skipgram: loss diverged to NaN")
	}
	return loss, nil
}

// SaveVectors writes the chosen table as text: a "vocabsize dim" header
// line, then one "word v0 v1 ..." line per vocabulary word.
func (m *SGDModel) SaveVectors(w io.Writer, v *Vocab, t Table) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "%d %d\n", m.vsize, m.dim)
	for i := idxUint(0); i < m.vsize; i++ {
		token, ok := v.Word(i)
		if !ok {
			return fmt.Errorf("%w: index %d with vocabulary size %d", ErrIndexOutOfRange, i, v.Size())
		}
		out.WriteString(token)
		row, err := m.Lookup(t, i)
		if err != nil {
			return err
		}
		for _, x := range row {
			fmt.Fprintf(out, " %f", x)
		}
		out.WriteString("\n")
	}
	return out.Flush()
}

func sigmoid(x real) real {
	return 1 / (1 + math.Exp(-x))
}
