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

// A Batch holds encoded training pairs as parallel slices: Inputs are
// center-word indices, Labels the matching context-word indices.
type Batch struct {
	Inputs []idxUint
	Labels []idxUint
}

// Size returns the actual number of pairs in the batch. Only the final
// batch of a stream may be smaller than the configured batch size.
func (b *Batch) Size() int { return len(b.Inputs) }

// Batches encodes the pair stream against v and groups it into batches
// of size pairs, preserving stream order. Pairs containing a word
// outside the vocabulary are skipped. The final short batch of a finite
// stream is passed through as-is rather than padded or dropped; callers
// use Size to avoid shape mismatches. size must be at least 1;
// Config.Validate enforces that for the training pipeline.
func Batches(pairs iter.Seq[Pair], v *Vocab, size int) iter.Seq[*Batch] {
	return func(yield func(*Batch) bool) {
		b := &Batch{
			Inputs: make([]idxUint, 0, size),
			Labels: make([]idxUint, 0, size),
		}
		for p := range pairs {
			in, ok := v.Index(p.Center)
			if !ok {
				continue
			}
			label, ok := v.Index(p.Context)
			if !ok {
				continue
			}
			b.Inputs = append(b.Inputs, in)
			b.Labels = append(b.Labels, label)
			if b.Size() == size {
				if !yield(b) {
					return
				}
				b = &Batch{
					Inputs: make([]idxUint, 0, size),
					Labels: make([]idxUint, 0, size),
				}
			}
		}
		if b.Size() > 0 {
			yield(b)
		}
	}
}
