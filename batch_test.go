package skipgram

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchesRoundTrip(t *testing.T) {
	doc := []string{"a", "b", "c", "d", "e"}
	v := testVocab(t, doc)
	want := collectPairs([][]string{doc}, 2)
	require.Len(t, want, 14)

	for _, size := range []int{1, 3, 5, 14, 100} {
		var got []Pair
		var batches []*Batch
		for b := range Batches(Pairs(SliceCorpus{doc}.Documents(), 2), v, size) {
			batches = append(batches, b)
			require.Equal(t, len(b.Inputs), len(b.Labels))
			for i := range b.Inputs {
				in, _ := v.Word(b.Inputs[i])
				label, _ := v.Word(b.Labels[i])
				got = append(got, Pair{in, label})
			}
		}
		// Concatenating all batches reconstructs the pair stream.
		assert.Equal(t, want, got, "batch size %d", size)

		// Only the final batch may be short, and it is passed through.
		for i, b := range batches {
			if i < len(batches)-1 {
				assert.Equal(t, size, b.Size())
			} else {
				assert.LessOrEqual(t, b.Size(), size)
				assert.Greater(t, b.Size(), 0)
			}
		}
	}
}

func TestBatchesSkipOutOfVocabulary(t *testing.T) {
	v := testVocab(t, []string{"a", "b"})
	pairs := slices.Values([]Pair{
		{"a", "b"},
		{"a", "zz"},
		{"zz", "b"},
		{"b", "a"},
	})
	var got []Pair
	for b := range Batches(pairs, v, 10) {
		for i := range b.Inputs {
			in, _ := v.Word(b.Inputs[i])
			label, _ := v.Word(b.Labels[i])
			got = append(got, Pair{in, label})
		}
	}
	assert.Equal(t, []Pair{{"a", "b"}, {"b", "a"}}, got)
}

func TestBatchesEmptyStream(t *testing.T) {
	v := testVocab(t, []string{"a"})
	var n int
	for range Batches(Pairs(SliceCorpus{}.Documents(), 2), v, 4) {
		n++
	}
	assert.Zero(t, n)
}

func TestBatchesEarlyStop(t *testing.T) {
	doc := []string{"a", "b", "c", "d", "e"}
	v := testVocab(t, doc)
	var n int
	for range Batches(Pairs(SliceCorpus{doc}.Documents(), 2), v, 2) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}
