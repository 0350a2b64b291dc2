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
	"encoding/binary"
	"fmt"
	"iter"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbopt "github.com/syndtr/goleveldb/leveldb/opt"
)

// IterateFunc visits one record; returning false stops the iteration.
type IterateFunc func(key, val []byte) bool

// KVStore is the minimal ordered key-value surface the corpus spool
// needs.
type KVStore interface {
	Put(key, val []byte) error
	Iterate(f IterateFunc) error
	Cleanup()
}

// LevelDBStore is a disposable on-disk KV store. Sync and compression
// are off: the data is a scratch cache that is rebuilt on loss.
type LevelDBStore struct {
	dbPath string
	db     *leveldb.DB
}

// NewLevelDBStore creates a store in a fresh temp directory under dir.
func NewLevelDBStore(dir string) (*LevelDBStore, error) {
	dbPath, err := os.MkdirTemp(dir, "corpusdb")
	if err != nil {
		return nil, fmt.Errorf("skipgram: creating spool dir: %w", err)
	}
	opts := leveldbopt.Options{
		NoSync:      true,
		Compression: leveldbopt.NoCompression,
	}
	db, err := leveldb.OpenFile(dbPath, &opts)
	if err != nil {
		return nil, fmt.Errorf("skipgram: opening spool store: %w", err)
	}
	return &LevelDBStore{dbPath: dbPath, db: db}, nil
}

func (ldb *LevelDBStore) Put(key, val []byte) error {
	return ldb.db.Put(key, val, nil)
}

// Iterate visits all records in key order.
func (ldb *LevelDBStore) Iterate(f IterateFunc) error {
	it := ldb.db.NewIterator(nil, nil)
	defer it.Release()
	for it.Next() {
		if !f(it.Key(), it.Value()) {
			break
		}
	}
	return it.Error()
}

// Cleanup closes the store and removes its directory.
func (ldb *LevelDBStore) Cleanup() {
	ldb.db.Close()
	os.RemoveAll(ldb.dbPath)
}

// SpooledCorpus makes a one-shot document stream re-iterable by copying
// it into an on-disk store on the first pass and replaying it from
// there afterwards. This is how stdin or any other single-use stream
// satisfies the multiple passes an epoch loop and a vocabulary build
// need.
type SpooledCorpus struct {
	src     Corpus
	store   KVStore
	spooled bool
	err     error
}

// NewSpooledCorpus wraps src. dir is the scratch location for the
// store; empty means the system temp directory. Call Close when done.
func NewSpooledCorpus(src Corpus, dir string) (*SpooledCorpus, error) {
	store, err := NewLevelDBStore(dir)
	if err != nil {
		return nil, err
	}
	return &SpooledCorpus{src: src, store: store}, nil
}

func (c *SpooledCorpus) Documents() iter.Seq[Document] {
	return func(yield func(Document) bool) {
		c.err = nil
		if !c.spooled {
			if c.err = c.spool(); c.err != nil {
				return
			}
			c.spooled = true
		}
		c.err = c.store.Iterate(func(key, val []byte) bool {
			return yield(sliceDoc(decodeDoc(val)))
		})
	}
}

func (c *SpooledCorpus) Err() error { return c.err }

// Close releases the spool store and its disk space.
func (c *SpooledCorpus) Close() { c.store.Cleanup() }

func (c *SpooledCorpus) spool() error {
	var seq uint64
	var key [8]byte
	for doc := range c.src.Documents() {
		var words []string
		for w := range doc {
			words = append(words, w)
		}
		if len(words) == 0 {
			continue
		}
		// Big-endian keys keep replay in document order.
		binary.BigEndian.PutUint64(key[:], seq)
		if err := c.store.Put(key[:], encodeDoc(words)); err != nil {
			return fmt.Errorf("skipgram: spooling document %d: %w", seq, err)
		}
		seq++
	}
	if err := c.src.Err(); err != nil {
		return fmt.Errorf("skipgram: spooling corpus: %w", err)
	}
	return nil
}

// Documents are packed as uvarint-length-prefixed tokens, so any token
// bytes round-trip.
func encodeDoc(words []string) []byte {
	var buf []byte
	for _, w := range words {
		buf = binary.AppendUvarint(buf, uint64(len(w)))
		buf = append(buf, w...)
	}
	return buf
}

func decodeDoc(buf []byte) []string {
	var words []string
	for len(buf) > 0 {
		n, read := binary.Uvarint(buf)
		if read <= 0 || uint64(len(buf)-read) < n {
			break
		}
		words = append(words, string(buf[read:read+int(n)]))
		buf = buf[read+int(n):]
	}
	return words
}
