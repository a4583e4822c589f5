// Package wrongset persists the set of question IDs the learner has missed.
package wrongset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/store"
)

// Key is the namespaced storage key holding the serialized set.
const Key = "qc_wrong_questions_v1"

// Set is a set of question identifiers.
type Set map[string]struct{}

// New returns a set containing ids.
func New(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id. Returns true if the set changed.
func (s Set) Add(id string) bool {
	if s.Has(id) {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Remove deletes id. Returns true if the set changed.
func (s Set) Remove(id string) bool {
	if !s.Has(id) {
		return false
	}
	delete(s, id)
	return true
}

// Clear empties the set in place.
func (s Set) Clear() {
	for id := range s {
		delete(s, id)
	}
}

// Len returns the number of IDs.
func (s Set) Len() int {
	return len(s)
}

// IDs returns the members in sorted order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	return New(s.IDs()...)
}

// Store reads and writes the set through a key-value repository.
type Store struct {
	kv  store.KVRepo
	key string
	log zerolog.Logger
}

// NewStore creates a Store on kv using the default Key.
func NewStore(kv store.KVRepo, log zerolog.Logger) *Store {
	return &Store{kv: kv, key: Key, log: log}
}

// Load reads the persisted set. A missing key yields an empty set; an
// unreadable or malformed value is logged and also yields an empty set.
func (s *Store) Load(ctx context.Context) Set {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn().Err(err).Str("key", s.key).Msg("read wrong-answer set")
		}
		return New()
	}
	if raw == "" {
		return New()
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("discard malformed wrong-answer set")
		return New()
	}
	return New(ids...)
}

// Save overwrites the persisted set with set.
func (s *Store) Save(ctx context.Context, set Set) error {
	b, err := json.Marshal(set.IDs())
	if err != nil {
		return fmt.Errorf("marshal wrong-answer set: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("save wrong-answer set: %w", err)
	}
	s.log.Debug().Int("size", set.Len()).Msg("wrong-answer set saved")
	return nil
}
