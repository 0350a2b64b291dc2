package skipgram

import (
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oneShotCorpus yields its documents on the first pass only, the way a
// pipe or stdin would.
type oneShotCorpus struct {
	docs [][]string
	used bool
}

func (c *oneShotCorpus) Documents() iter.Seq[Document] {
	return func(yield func(Document) bool) {
		if c.used {
			return
		}
		c.used = true
		for _, d := range c.docs {
			if !yield(sliceDoc(d)) {
				return
			}
		}
	}
}

func (c *oneShotCorpus) Err() error { return nil }

// errCorpus reports err after yielding its documents.
type errCorpus struct {
	docs [][]string
	err  error
}

func (c errCorpus) Documents() iter.Seq[Document] {
	return func(yield func(Document) bool) {
		for _, d := range c.docs {
			if !yield(sliceDoc(d)) {
				return
			}
		}
	}
}

func (c errCorpus) Err() error { return c.err }

func TestSpooledCorpusReplays(t *testing.T) {
	docs := [][]string{{"a", "b"}, {"c"}, {"d", "e", "f"}}
	spooled, err := NewSpooledCorpus(&oneShotCorpus{docs: docs}, t.TempDir())
	require.NoError(t, err)
	defer spooled.Close()

	first := collectDocs(t, spooled)
	require.NoError(t, spooled.Err())
	second := collectDocs(t, spooled)
	require.NoError(t, spooled.Err())

	assert.Equal(t, docs, first)
	assert.Equal(t, docs, second, "replay must not depend on the exhausted source")
}

func TestSpooledCorpusDropsEmptyDocuments(t *testing.T) {
	docs := [][]string{{"a"}, {}, {"b"}}
	spooled, err := NewSpooledCorpus(&oneShotCorpus{docs: docs}, t.TempDir())
	require.NoError(t, err)
	defer spooled.Close()

	assert.Equal(t, [][]string{{"a"}, {"b"}}, collectDocs(t, spooled))
	require.NoError(t, spooled.Err())
}

func TestSpooledCorpusSourceError(t *testing.T) {
	boom := errors.New("read failed")
	spooled, err := NewSpooledCorpus(errCorpus{docs: [][]string{{"a"}}, err: boom}, t.TempDir())
	require.NoError(t, err)
	defer spooled.Close()

	assert.Empty(t, collectDocs(t, spooled))
	require.ErrorIs(t, spooled.Err(), boom)
}

func TestDocCodecRoundTrip(t *testing.T) {
	docs := [][]string{
		{"plain", "words"},
		{"with space", "tab\there", "ünïcödé", ""},
		{},
	}
	for _, doc := range docs {
		got := decodeDoc(encodeDoc(doc))
		if len(doc) == 0 {
			assert.Empty(t, got)
			continue
		}
		assert.Equal(t, doc, got)
	}
}

func TestLevelDBStoreIteratesInKeyOrder(t *testing.T) {
	store, err := NewLevelDBStore(t.TempDir())
	require.NoError(t, err)
	defer store.Cleanup()

	for _, k := range []string{"b", "c", "a"} {
		require.NoError(t, store.Put([]byte(k), []byte("v"+k)))
	}
	var keys []string
	require.NoError(t, store.Iterate(func(key, val []byte) bool {
		keys = append(keys, string(key))
		assert.Equal(t, "v"+string(key), string(val))
		return true
	}))
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestLevelDBStoreIterateEarlyStop(t *testing.T) {
	store, err := NewLevelDBStore(t.TempDir())
	require.NoError(t, err)
	defer store.Cleanup()

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, store.Put([]byte(k), nil))
	}
	var n int
	require.NoError(t, store.Iterate(func(key, val []byte) bool {
		n++
		return n < 2
	}))
	assert.Equal(t, 2, n)
}
