package skipgram

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectDocs(t *testing.T, c Corpus) [][]string {
	t.Helper()
	var docs [][]string
	for doc := range c.Documents() {
		var words []string
		for w := range doc {
			words = append(words, w)
		}
		docs = append(docs, words)
	}
	return docs
}

func writeCorpusFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTextCorpusSplitsDocuments(t *testing.T) {
	c := &TextCorpus{Path: writeCorpusFile(t, "the quick fox. jumps over\nlazy dog")}
	docs := collectDocs(t, c)
	require.NoError(t, c.Err())
	want := [][]string{
		{"the", "quick", "fox"},
		{"jumps", "over"},
		{"lazy", "dog"},
	}
	assert.Equal(t, want, docs)
}

func TestTextCorpusPeriodIsSpace(t *testing.T) {
	c := &TextCorpus{
		Path:          writeCorpusFile(t, "a.b c\nd"),
		PeriodIsSpace: true,
	}
	docs := collectDocs(t, c)
	require.NoError(t, c.Err())
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d"}}, docs)
}

func TestTextCorpusReiterable(t *testing.T) {
	c := &TextCorpus{Path: writeCorpusFile(t, "a b\nc d")}
	first := collectDocs(t, c)
	second := collectDocs(t, c)
	require.NoError(t, c.Err())
	assert.Equal(t, first, second)
}

func TestTextCorpusMissingFile(t *testing.T) {
	c := &TextCorpus{Path: filepath.Join(t.TempDir(), "nope.txt")}
	docs := collectDocs(t, c)
	assert.Empty(t, docs)
	assert.Error(t, c.Err())
}

func TestTextCorpusEmptyDocumentsDropped(t *testing.T) {
	c := &TextCorpus{Path: writeCorpusFile(t, "\n\n a b \n\n")}
	docs := collectDocs(t, c)
	require.NoError(t, c.Err())
	assert.Equal(t, [][]string{{"a", "b"}}, docs)
}

func TestSliceCorpus(t *testing.T) {
	c := SliceCorpus{{"x", "y"}, {"z"}}
	assert.Equal(t, [][]string{{"x", "y"}, {"z"}}, collectDocs(t, c))
	assert.NoError(t, c.Err())
}
