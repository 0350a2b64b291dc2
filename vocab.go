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
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const vocabProgressInterval = 100000

type word struct {
	w    string
	idx  idxUint
	freq countUint
}

// byFreq sorts words by descending frequency.
type byFreq []*word

func (a byFreq) Len() int           { return len(a) }
func (a byFreq) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byFreq) Less(i, j int) bool { return a[i].freq > a[j].freq }

// A Vocab is the bijective word <-> dense index mapping plus observed
// counts, built in one pass over the corpus. Indices are contiguous in
// [0, Size()) and assigned in descending frequency order. A Vocab is
// immutable after construction and safe for concurrent reads.
type Vocab struct {
	list   []*word
	byWord map[string]*word
	total  uint64
}

// BuildVocab counts every token in one pass over c. Words occurring
// fewer than minFreq times are discarded; if maxVocab is nonzero the
// vocabulary is capped to the maxVocab most frequent words.
func BuildVocab(c Corpus, minFreq countUint, maxVocab idxUint) (*Vocab, error) {
	byWord := make(map[string]*word)
	var list []*word
	var seen uint64
	for doc := range c.Documents() {
		for tok := range doc {
			w, ok := byWord[tok]
			if !ok {
				w = &word{w: tok, idx: idxUint(len(list))}
				list = append(list, w)
				byWord[tok] = w
			}
			w.freq++
			if w.freq == 0 {
				return nil, fmt.Errorf("skipgram: count overflow for word %q, change countUint to uint64", tok)
			}
			seen++
			if seen%vocabProgressInterval == 0 {
				logrus.Debugf("vocab build: %dK tokens", seen/1000)
			}
		}
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("skipgram: building vocab: %w", err)
	}

	// Sort by frequency, then cut rare words and cap the size.
	sort.Sort(byFreq(list))
	var cut idxUint
	var total uint64
	for ; cut < idxUint(len(list)) && list[cut].freq >= max(minFreq, 1); cut++ {
		total += uint64(list[cut].freq)
	}
	if maxVocab > 0 && maxVocab < cut {
		for _, w := range list[maxVocab:cut] {
			total -= uint64(w.freq)
		}
		cut = maxVocab
	}
	list = list[:cut]

	// Reindex and build the definitive mapping.
	byWord = make(map[string]*word, len(list))
	for i, w := range list {
		w.idx = idxUint(i)
		byWord[w.w] = w
	}
	return &Vocab{list: list, byWord: byWord, total: total}, nil
}

// Size returns the number of words in the vocabulary.
func (v *Vocab) Size() idxUint { return idxUint(len(v.list)) }

// Total returns the summed occurrence count of all vocabulary words.
func (v *Vocab) Total() uint64 { return v.total }

// Index returns the dense index of w.
func (v *Vocab) Index(w string) (idxUint, bool) {
	mapw, ok := v.byWord[w]
	if !ok {
		return 0, false
	}
	return mapw.idx, true
}

// Word returns the word at index i.
func (v *Vocab) Word(i idxUint) (string, bool) {
	if i >= v.Size() {
		return "", false
	}
	return v.list[i].w, true
}

// Count returns the occurrence count of the word at index i, zero for
// out-of-range indices.
func (v *Vocab) Count(i idxUint) countUint {
	if i >= v.Size() {
		return 0
	}
	return v.list[i].freq
}

// CountOf returns the occurrence count of w, reporting whether w is in
// the vocabulary.
func (v *Vocab) CountOf(w string) (countUint, bool) {
	mapw, ok := v.byWord[w]
	if !ok {
		return 0, false
	}
	return mapw.freq, true
}

// Save writes the vocabulary as "word count" lines, most frequent first.
func (v *Vocab) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("skipgram: saving vocab: %w", err)
	}
	defer f.Close()
	out := bufio.NewWriter(f)
	for _, w := range v.list {
		fmt.Fprintf(out, "%s %d\n", w.w, w.freq)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("skipgram: saving vocab: %w", err)
	}
	return nil
}

// LoadVocab reads a vocabulary saved by Save. Indices follow file order.
func LoadVocab(path string) (*Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("skipgram: loading vocab: %w", err)
	}
	defer f.Close()

	v := &Vocab{byWord: make(map[string]*word)}
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := s.Text()
		i := strings.LastIndexByte(line, ' ')
		if i < 0 {
			return nil, fmt.Errorf("skipgram: bad vocab line %q", line)
		}
		freq, err := strconv.ParseUint(line[i+1:], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("skipgram: bad vocab line %q: %w", line, err)
		}
		w := &word{w: line[:i], idx: idxUint(len(v.list)), freq: countUint(freq)}
		v.list = append(v.list, w)
		v.byWord[w.w] = w
		v.total += freq
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("skipgram: loading vocab: %w", err)
	}
	return v, nil
}
