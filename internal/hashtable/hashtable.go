// Package hashtable implements a string-keyed hash table with separate
// chaining. A bucket holding one entry stores it inline; a second entry
// landing in the same bucket turns the bucket into a chain.
package hashtable

import (
	"fmt"
	"io"
	"iter"

	"go.uber.org/zap"

	"github.com/lojhan/chainkv/internal/chain"
)

const (
	DefaultCapacity = 16
	MaxLoadFactor   = 0.75
)

type Entry[V any] struct {
	Key   string
	Value V
}

type slotKind uint8

const (
	slotEmpty slotKind = iota
	slotSingle
	slotChain
)

// slot is Empty, Single(entry) or Chain(chain). A chain slot stays a chain
// while it has entries and goes back to Empty once its last entry is deleted.
type slot[V any] struct {
	kind  slotKind
	entry Entry[V]
	chain *chain.Chain[Entry[V]]
}

type Table[V any] struct {
	buckets []slot[V]
	count   int
	cfg     Config
}

func New[V any](options ...func(*Config)) *Table[V] {
	var cfg Config
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	return &Table[V]{
		buckets: make([]slot[V], DefaultCapacity),
		cfg:     cfg,
	}
}

func (t *Table[V]) Len() int {
	return t.count
}

func (t *Table[V]) Capacity() int {
	return len(t.buckets)
}

func (t *Table[V]) LoadFactor() float64 {
	return float64(t.count) / float64(len(t.buckets))
}

func (t *Table[V]) DuplicatePolicy() DuplicatePolicy {
	return t.cfg.duplicates
}

// Insert stores value under key. The entry count is bumped before the load
// factor check, so the table grows ahead of placing the new entry and the
// 0.75 bound holds when Insert returns.
func (t *Table[V]) Insert(key string, value V) {
	if t.cfg.duplicates == DuplicateOverwrite && t.overwrite(key, value) {
		return
	}

	t.count++
	if float64(t.count)/float64(len(t.buckets)) > MaxLoadFactor {
		t.resize()
	}

	place(t.buckets, Entry[V]{Key: key, Value: value})
}

func (t *Table[V]) overwrite(key string, value V) bool {
	s := &t.buckets[Hash(key, len(t.buckets))]
	switch s.kind {
	case slotSingle:
		if s.entry.Key == key {
			s.entry.Value = value
			return true
		}
	case slotChain:
		if node := s.chain.FindFunc(matchKey[V](key)); node != nil {
			node.Value.Value = value
			return true
		}
	}
	return false
}

func (t *Table[V]) resize() {
	from := len(t.buckets)
	buckets := make([]slot[V], from*2)
	for e := range t.entries() {
		place(buckets, e)
	}
	t.buckets = buckets

	t.cfg.logger.Debug("hash table resized",
		zap.Int("from", from),
		zap.Int("to", len(buckets)),
		zap.Int("entries", t.count))
}

func place[V any](buckets []slot[V], e Entry[V]) {
	s := &buckets[Hash(e.Key, len(buckets))]
	switch s.kind {
	case slotEmpty:
		s.kind = slotSingle
		s.entry = e
	case slotSingle:
		s.chain = chain.New(s.entry).Append(e)
		s.kind = slotChain
		s.entry = Entry[V]{}
	case slotChain:
		s.chain.Append(e)
	}
}

func matchKey[V any](key string) func(Entry[V]) bool {
	return func(e Entry[V]) bool {
		return e.Key == key
	}
}

func (t *Table[V]) Get(key string) (V, bool) {
	var zero V
	s := &t.buckets[Hash(key, len(t.buckets))]
	switch s.kind {
	case slotSingle:
		if t.cfg.strictLookup && s.entry.Key != key {
			return zero, false
		}
		return s.entry.Value, true
	case slotChain:
		if node := s.chain.FindFunc(matchKey[V](key)); node != nil {
			return node.Value.Value, true
		}
	}
	return zero, false
}

func (t *Table[V]) Delete(key string) bool {
	s := &t.buckets[Hash(key, len(t.buckets))]
	switch s.kind {
	case slotChain:
		// A miss inside a chain still decrements the count unless lookups
		// are strict.
		removed := s.chain.DeleteFunc(matchKey[V](key))
		if removed || !t.cfg.strictLookup {
			t.count--
		}
		if s.chain.Len() == 0 {
			*s = slot[V]{}
		}
		return removed
	case slotSingle:
		if t.cfg.strictLookup && s.entry.Key != key {
			return false
		}
		t.count--
		*s = slot[V]{}
		return true
	default:
		return false
	}
}

func (t *Table[V]) entries() iter.Seq[Entry[V]] {
	return func(yield func(Entry[V]) bool) {
		for i := range t.buckets {
			s := &t.buckets[i]
			switch s.kind {
			case slotSingle:
				if !yield(s.entry) {
					return
				}
			case slotChain:
				for e := range s.chain.All() {
					if !yield(e) {
						return
					}
				}
			}
		}
	}
}

// All yields every stored pair in bucket order, chained buckets from head
// to tail. Order across buckets carries no meaning.
func (t *Table[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for e := range t.entries() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

func (t *Table[V]) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for e := range t.entries() {
			if !yield(e.Key) {
				return
			}
		}
	}
}

// Dump writes every pair as "key = value", for debugging.
func (t *Table[V]) Dump(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Key Value Pairs:"); err != nil {
		return err
	}
	for key, value := range t.All() {
		if _, err := fmt.Fprintf(w, "%s = %v\n", key, value); err != nil {
			return err
		}
	}
	return nil
}
