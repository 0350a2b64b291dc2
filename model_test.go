package skipgram

import (
	"bytes"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.HiddenDim = 8
	cfg.NegSample = 2
	cfg.Alpha = 0.05
	return cfg
}

func TestNewSGDModelValidatesConfig(t *testing.T) {
	v := testVocab(t, []string{"a", "b", "c"})
	cfg := smallConfig()
	cfg.WindowSize = 0
	_, err := NewSGDModel(v, cfg, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewSGDModelRejectsLargeK(t *testing.T) {
	v := testVocab(t, []string{"a", "b", "c"})
	cfg := smallConfig()
	cfg.NegSample = 3
	_, err := NewSGDModel(v, cfg, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSGDModelParamSource(t *testing.T) {
	v := testVocab(t, []string{"a", "b", "c"})
	m, err := NewSGDModel(v, smallConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, idxUint(3), m.VocabSize())
	for _, table := range []Table{TableInput, TableOutput} {
		row, err := m.Lookup(table, 2)
		require.NoError(t, err)
		assert.Len(t, row, 8)
	}
	bias, err := m.Bias(0)
	require.NoError(t, err)
	assert.Zero(t, bias)

	_, err = m.Lookup(TableInput, 3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = m.Bias(3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSGDModelStepReducesLoss(t *testing.T) {
	doc := []string{"a", "b", "c", "d", "e", "f"}
	v := testVocab(t, doc)
	m, err := NewSGDModel(v, smallConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	var b Batch
	for b1 := range Batches(Pairs(SliceCorpus{doc}.Documents(), 2), v, 100) {
		b = *b1
	}
	require.Greater(t, b.Size(), 0)

	var first, last real
	const steps = 200
	for i := 0; i < steps; i++ {
		loss, err := m.Step(&b)
		require.NoError(t, err)
		if i < 5 {
			first += loss
		}
		if i >= steps-5 {
			last += loss
		}
	}
	assert.Less(t, last, first, "repeated steps on one batch must drive its loss down")
}

func TestSGDModelStepAgreesWithObjective(t *testing.T) {
	// A zero-negative step realizes exactly the k=0 sampled loss on the
	// pre-update parameters.
	v := testVocab(t, []string{"a", "b", "c"})
	cfg := smallConfig()
	cfg.NegSample = 0
	m, err := NewSGDModel(v, cfg, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	b := &Batch{Inputs: []idxUint{0, 1}, Labels: []idxUint{1, 2}}
	o, err := NewNegSampling(m, m.dist, 0, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	want, err := o.Loss(b)
	require.NoError(t, err)
	got, err := m.Step(b)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-12)
}

func TestSGDModelStepOutOfRange(t *testing.T) {
	v := testVocab(t, []string{"a", "b", "c"})
	m, err := NewSGDModel(v, smallConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	_, err = m.Step(&Batch{Inputs: []idxUint{99}, Labels: []idxUint{0}})
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSGDModelStepEmptyBatch(t *testing.T) {
	v := testVocab(t, []string{"a", "b", "c"})
	m, err := NewSGDModel(v, smallConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	loss, err := m.Step(&Batch{})
	require.NoError(t, err)
	assert.Zero(t, loss)
}

func TestSaveVectors(t *testing.T) {
	v := testVocab(t, []string{"a", "a", "b", "c"})
	m, err := NewSGDModel(v, smallConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.SaveVectors(&buf, v, TableInput))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "3 8", lines[0])
	for i, line := range lines[1:] {
		fields := strings.Fields(line)
		require.Len(t, fields, 9)
		w, ok := v.Word(idxUint(i))
		require.True(t, ok)
		assert.Equal(t, w, fields[0])
		for _, f := range fields[1:] {
			_, err := strconv.ParseFloat(f, 64)
			require.NoError(t, err)
		}
	}
}
