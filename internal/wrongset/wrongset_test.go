package wrongset

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/store"
)

// memKV is an in-memory store.KVRepo.
type memKV struct {
	values map[string]string
	getErr error
	puts   int
}

func newMemKV() *memKV {
	return &memKV{values: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	m.puts++
	m.values[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func TestSetOperations(t *testing.T) {
	s := New("1")

	assert.True(t, s.Has("1"))
	assert.False(t, s.Add("1"), "adding an existing id is not a change")
	assert.True(t, s.Add("2"))
	assert.Equal(t, []string{"1", "2"}, s.IDs())

	assert.True(t, s.Remove("1"))
	assert.False(t, s.Remove("1"), "removing an absent id is not a change")
	assert.Equal(t, 1, s.Len())

	c := s.Clone()
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.True(t, c.Has("2"), "clone is independent")
}

func TestLoadMissingKey(t *testing.T) {
	st := NewStore(newMemKV(), zerolog.Nop())
	got := st.Load(context.Background())
	assert.Equal(t, 0, got.Len())
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{oops"},
		{"object", `{"1": true}`},
		{"numbers", `[1, 2]`},
		{"string", `"1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMemKV()
			kv.values[Key] = tt.raw
			got := NewStore(kv, zerolog.Nop()).Load(context.Background())
			assert.Equal(t, 0, got.Len())
		})
	}
}

func TestLoadReadError(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk on fire")
	got := NewStore(kv, zerolog.Nop()).Load(context.Background())
	assert.Equal(t, 0, got.Len())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	kv := newMemKV()
	st := NewStore(kv, zerolog.Nop())
	ctx := context.Background()

	want := New("12", "3", "abc")
	require.NoError(t, st.Save(ctx, want))

	got := st.Load(ctx)
	assert.Equal(t, want, got)
	assert.JSONEq(t, `["12","3","abc"]`, kv.values[Key])
}

func TestSaveOverwrites(t *testing.T) {
	kv := newMemKV()
	st := NewStore(kv, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, New("1", "2")))
	require.NoError(t, st.Save(ctx, New("3")))

	assert.Equal(t, New("3"), st.Load(ctx))
	assert.Equal(t, 2, kv.puts)
}

func TestSaveEmpty(t *testing.T) {
	kv := newMemKV()
	st := NewStore(kv, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, New("1")))
	require.NoError(t, st.Save(ctx, New()))

	assert.Equal(t, "[]", kv.values[Key])
	assert.Equal(t, 0, st.Load(ctx).Len())
}
