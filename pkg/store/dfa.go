package store

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/ianloic/llvm-fnmatch/pkg/dfa"
	"github.com/ianloic/llvm-fnmatch/pkg/fsm"
	"github.com/ianloic/llvm-fnmatch/pkg/nfa"
)

// Get returns the cached DFA of a pattern. The bool result is false if the
// pattern is not cached.
func (s *Store) Get(pattern string) (*fsm.Graph, bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketDFA)).Get(key(pattern))
		if v != nil {
			// v is only valid during the transaction.
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, false, err
	}
	g, err := fsm.Decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("decode cached DFA of %q: %w", pattern, err)
	}
	return g, true, nil
}

// Put caches the DFA of a pattern, replacing any existing entry.
func (s *Store) Put(pattern string, g *fsm.Graph) error {
	data, err := fsm.Encode(g)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDFA)).Put(key(pattern), data)
	})
}

// Delete removes the cached DFA of a pattern, if any.
func (s *Store) Delete(pattern string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDFA)).Delete(key(pattern))
	})
}

// Compile returns the DFA of a pattern, from the cache if possible. Otherwise
// the pattern is compiled and the result is cached.
func (s *Store) Compile(pattern string) (*fsm.Graph, error) {
	g, ok, err := s.Get(pattern)
	if err != nil {
		return nil, err
	}
	if ok {
		logger.Printf("hit: %q", pattern)
		return g, nil
	}
	logger.Printf("miss: %q", pattern)
	n, err := nfa.Compile(pattern)
	if err != nil {
		return nil, err
	}
	g = dfa.FromNFA(n)
	if err := s.Put(pattern, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Patterns returns all cached patterns, in byte order.
func (s *Store) Patterns() ([]string, error) {
	var patterns []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDFA)).ForEach(func(k, _ []byte) error {
			patterns = append(patterns, string(k[1:]))
			return nil
		})
	})
	return patterns, err
}

// Keys carry a one-byte prefix, since bbolt rejects empty keys and the empty
// pattern is valid.
func key(pattern string) []byte {
	return append([]byte{'p'}, pattern...)
}
