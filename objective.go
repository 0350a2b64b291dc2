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

	"gonum.org/v1/gonum/floats"
)

// Table identifies one of the collaborator model's two embedding tables.
// Skip-gram keeps distinct input and output parameter spaces; collapsing
// them into one table breaks the objective.
type Table int

const (
	// TableInput holds the center-word embeddings.
	TableInput Table = iota
	// TableOutput holds the context-word embeddings.
	TableOutput
)

// ParamSource is the lookup surface of the trainable numeric model. The
// objectives only read through it; gradient application stays inside
// the model.
type ParamSource interface {
	// Lookup returns the embedding row of idx in table t. The returned
	// slice aliases model memory and must not be retained.
	Lookup(t Table, idx idxUint) ([]real, error)
	// Bias returns the output-table scalar bias of idx.
	Bias(idx idxUint) (real, error)
	// VocabSize returns the row count of both tables.
	VocabSize() idxUint
}

// An Objective computes the scalar training loss of one batch. Losses
// are finite and non-negative for well-formed inputs.
type Objective interface {
	Loss(b *Batch) (real, error)
}

// NegSampling is the noise-contrastive skip-gram objective: the true
// (center, context) pair is scored against k negative context words
// drawn from the distorted unigram distribution. One negative draw is
// shared by every example in the batch, trading statistical
// independence for speed.
type NegSampling struct {
	params ParamSource
	dist   *UnigramDist
	k      int
	rng    *rand.Rand
}

// NewNegSampling returns the objective with k negative samples per
// batch. k may be zero, degenerating to plain sigmoid loss on the true
// pairs; k at or above the vocabulary size is invalid.
func NewNegSampling(params ParamSource, dist *UnigramDist, k int, rng *rand.Rand) (*NegSampling, error) {
	if k < 0 || k > 0 && idxUint(k) >= params.VocabSize() {
		return nil, fmt.Errorf("%w: %d negative samples with vocabulary size %d",
			ErrInvalidConfig, k, params.VocabSize())
	}
	return &NegSampling{params: params, dist: dist, k: k, rng: rng}, nil
}

// Loss returns the mean over the batch of the true-pair sigmoid
// cross-entropy plus the summed negative-pair cross-entropies.
func (o *NegSampling) Loss(b *Batch) (real, error) {
	if b.Size() == 0 {
		return 0, nil
	}
	negs, err := o.dist.SampleUnique(o.rng, o.k)
	if err != nil {
		return 0, err
	}

	var loss real
	for i, in := range b.Inputs {
		embed, err := o.params.Lookup(TableInput, in)
		if err != nil {
			return 0, err
		}
		logit, err := o.outputLogit(embed, b.Labels[i])
		if err != nil {
			return 0, err
		}
		loss -= logSigmoid(logit)
		for _, neg := range negs {
			logit, err := o.outputLogit(embed, neg)
			if err != nil {
				return 0, err
			}
			loss -= logSigmoid(-logit)
		}
	}
	return loss / real(b.Size()), nil
}

func (o *NegSampling) outputLogit(embed []real, idx idxUint) (real, error) {
	out, err := o.params.Lookup(TableOutput, idx)
	if err != nil {
		return 0, err
	}
	bias, err := o.params.Bias(idx)
	if err != nil {
		return 0, err
	}
	return floats.Dot(embed, out) + bias, nil
}

// FullSoftmax is the exact skip-gram objective: categorical
// cross-entropy of the true label against logits over the entire output
// table. Costs O(vocab) per example; it exists as the correctness
// reference for when negative sampling is disabled.
type FullSoftmax struct {
	params ParamSource
}

func NewFullSoftmax(params ParamSource) *FullSoftmax {
	return &FullSoftmax{params: params}
}

func (o *FullSoftmax) Loss(b *Batch) (real, error) {
	if b.Size() == 0 {
		return 0, nil
	}
	vsize := o.params.VocabSize()
	logits := make([]real, vsize)
	var loss real
	for i, in := range b.Inputs {
		label := b.Labels[i]
		if label >= vsize {
			return 0, fmt.Errorf("%w: label %d with vocabulary size %d", ErrIndexOutOfRange, label, vsize)
		}
		embed, err := o.params.Lookup(TableInput, in)
		if err != nil {
			return 0, err
		}
		for v := idxUint(0); v < vsize; v++ {
			out, err := o.params.Lookup(TableOutput, v)
			if err != nil {
				return 0, err
			}
			bias, err := o.params.Bias(v)
			if err != nil {
				return 0, err
			}
			logits[v] = floats.Dot(embed, out) + bias
		}
		loss += logSumExp(logits) - logits[label]
	}
	return loss / real(b.Size()), nil
}

// logSigmoid computes log(sigmoid(x)) without overflow for large |x|.
func logSigmoid(x real) real {
	if x >= 0 {
		return -math.Log1p(math.Exp(-x))
	}
	return x - math.Log1p(math.Exp(x))
}

// logSumExp computes log(sum(exp(xs))) shifted by the max for
// stability.
func logSumExp(xs []real) real {
	m := floats.Max(xs)
	var sum real
	for _, x := range xs {
		sum += math.Exp(x - m)
	}
	return m + math.Log(sum)
}
