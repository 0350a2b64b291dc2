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

	"github.com/sirupsen/logrus"
)

// A Stepper consumes one batch, applies a model update, and returns the
// realized loss. SGDModel is the in-tree implementation; any trainable
// numeric model can stand in.
type Stepper interface {
	Step(b *Batch) (real, error)
}

// Loop drives training: per epoch it streams the subsampled corpus
// through the pair generator and batch assembler, feeding each batch to
// the stepper strictly sequentially. There is no retry and no
// cancellation; a step failure aborts the epoch and surfaces to the
// caller.
type Loop struct {
	cfg     Config
	reader  *SampledReader
	stepper Stepper
	log     logrus.FieldLogger
}

// NewLoop validates cfg and assembles the driver. log may be nil, which
// silences progress reporting.
func NewLoop(cfg Config, reader *SampledReader, stepper Stepper, log logrus.FieldLogger) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.ErrorLevel)
		log = logger
	}
	return &Loop{cfg: cfg, reader: reader, stepper: stepper, log: log}, nil
}

// Run performs cfg.Epochs full passes over c. With zero epochs it
// returns immediately without touching the model.
func (l *Loop) Run(c Corpus) error {
	var iters uint64
	for epoch := 1; epoch <= l.cfg.Epochs; epoch++ {
		docs, err := l.reader.Read(c)
		if err != nil {
			return err
		}
		pairs := Pairs(docs, l.cfg.WindowSize)

		var epochLoss real
		var epochBatches uint64
		for b := range Batches(pairs, l.reader.Vocab(), l.cfg.BatchSize) {
			loss, err := l.stepper.Step(b)
			if err != nil {
				return fmt.Errorf("skipgram: epoch %d iter %d: %w", epoch, iters+1, err)
			}
			iters++
			epochBatches++
			epochLoss += loss
			if l.cfg.ReportEvery > 0 && iters%uint64(l.cfg.ReportEvery) == 0 {
				l.log.WithFields(logrus.Fields{
					"epoch": epoch,
					"iter":  iters,
					"loss":  epochLoss / real(epochBatches),
				}).Info("training")
			}
		}
		if err := c.Err(); err != nil {
			return fmt.Errorf("skipgram: epoch %d: reading corpus: %w", epoch, err)
		}
		mean := real(0)
		if epochBatches > 0 {
			mean = epochLoss / real(epochBatches)
		}
		l.log.WithFields(logrus.Fields{
			"epoch":   epoch,
			"batches": epochBatches,
			"loss":    mean,
		}).Info("epoch done")
	}
	return nil
}
