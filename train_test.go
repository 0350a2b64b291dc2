package skipgram

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStepper struct {
	steps int
	sizes []int
}

func (s *countingStepper) Step(b *Batch) (real, error) {
	s.steps++
	s.sizes = append(s.sizes, b.Size())
	return 0.5, nil
}

type failingStepper struct {
	after int
	calls int
	err   error
}

func (s *failingStepper) Step(b *Batch) (real, error) {
	s.calls++
	if s.calls > s.after {
		return 0, s.err
	}
	return 0.1, nil
}

func trainerConfig() Config {
	cfg := DefaultConfig()
	cfg.WindowSize = 2
	cfg.BatchSize = 4
	cfg.Epochs = 2
	cfg.Subsample = 0
	return cfg
}

func fittedReader(t *testing.T, c Corpus) *SampledReader {
	t.Helper()
	r := NewSampledReader(0, rand.New(rand.NewSource(1)))
	require.NoError(t, r.CountWords(c))
	return r
}

func TestLoopRunsEpochs(t *testing.T) {
	corpus := SliceCorpus{{"a", "b", "c", "d", "e"}}
	stepper := &countingStepper{}
	loop, err := NewLoop(trainerConfig(), fittedReader(t, corpus), stepper, nil)
	require.NoError(t, err)
	require.NoError(t, loop.Run(corpus))

	// 14 pairs per pass in batches of 4, over two epochs.
	assert.Equal(t, 8, stepper.steps)
	assert.Equal(t, []int{4, 4, 4, 2, 4, 4, 4, 2}, stepper.sizes)
}

func TestLoopZeroEpochs(t *testing.T) {
	corpus := SliceCorpus{{"a", "b", "c"}}
	cfg := trainerConfig()
	cfg.Epochs = 0
	stepper := &countingStepper{}
	loop, err := NewLoop(cfg, fittedReader(t, corpus), stepper, nil)
	require.NoError(t, err)
	require.NoError(t, loop.Run(corpus))
	assert.Zero(t, stepper.steps)
}

func TestLoopStepErrorAborts(t *testing.T) {
	corpus := SliceCorpus{{"a", "b", "c", "d", "e"}}
	boom := errors.New("boom")
	stepper := &failingStepper{after: 2, err: boom}
	loop, err := NewLoop(trainerConfig(), fittedReader(t, corpus), stepper, nil)
	require.NoError(t, err)

	err = loop.Run(corpus)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, stepper.calls, "no batches after the failing one")
}

func TestLoopUnfittedReader(t *testing.T) {
	corpus := SliceCorpus{{"a", "b"}}
	loop, err := NewLoop(trainerConfig(), NewSampledReader(0, rand.New(rand.NewSource(1))), &countingStepper{}, nil)
	require.NoError(t, err)
	require.ErrorIs(t, loop.Run(corpus), ErrNotFitted)
}

func TestLoopCorpusError(t *testing.T) {
	boom := errors.New("disk gone")
	corpus := errCorpus{docs: [][]string{{"a", "b", "c"}}, err: boom}
	reader := fittedReader(t, SliceCorpus(corpus.docs))
	loop, err := NewLoop(trainerConfig(), reader, &countingStepper{}, nil)
	require.NoError(t, err)
	require.ErrorIs(t, loop.Run(corpus), boom)
}

func TestNewLoopInvalidConfig(t *testing.T) {
	cfg := trainerConfig()
	cfg.Alpha = 0
	_, err := NewLoop(cfg, fittedReader(t, SliceCorpus{{"a"}}), &countingStepper{}, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
