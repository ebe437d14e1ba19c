package store

import (
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/freecell"
)

func dealOne(t *testing.T) freecell.State {
	t.Helper()
	state, err := freecell.Deal(1, freecell.Standard)
	require.NoError(t, err)
	return state
}

func sampleRecord(t *testing.T) *Record {
	t.Helper()
	state := dealOne(t)
	return &Record{
		Digest:     Digest(Params{Strategy: search.KindBestFirst, Weights: freecell.DefaultWeights}, state),
		Strategy:   search.KindBestFirst,
		Moves:      state.Actions()[:2],
		Expanded:   120,
		Discovered: 800,
		Elapsed:    1500 * time.Millisecond,
		SolvedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// runContract exercises the behaviour every Store must share.
func runContract(t *testing.T, s Store) {
	ctx := t.Context()
	record := sampleRecord(t)

	_, err := s.Get(ctx, record.Digest)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, record))
	got, err := s.Get(ctx, record.Digest)
	require.NoError(t, err)
	assert.Equal(t, record, got)

	replacement := *record
	replacement.Expanded = 7
	require.NoError(t, s.Put(ctx, &replacement))
	got, err = s.Get(ctx, record.Digest)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Expanded)

	require.NoError(t, s.Delete(ctx, record.Digest))
	_, err = s.Get(ctx, record.Digest)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryContract(t *testing.T) {
	runContract(t, NewMemory())
}

func TestRedisContract(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	s := NewRedisFromClient(client)
	defer s.Close()

	require.NoError(t, s.Ping(t.Context()))
	runContract(t, s)
}

func TestRedisPrefixAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedis(mr.Addr(), "", 0, WithPrefix("test:"), WithTTL(time.Hour))
	defer s.Close()

	record := sampleRecord(t)
	require.NoError(t, s.Put(t.Context(), record))

	key := "test:" + record.Digest
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(2 * time.Hour)
	_, err := s.Get(t.Context(), record.Digest)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisCorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedis(mr.Addr(), "", 0)
	defer s.Close()

	require.NoError(t, mr.Set(defaultPrefix+"broken", "not json"))
	_, err := s.Get(t.Context(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDigest(t *testing.T) {
	state := dealOne(t)
	moved := state.Apply(state.Actions()[0])
	best := Params{Strategy: search.KindBestFirst, Weights: freecell.DefaultWeights}

	assert.Len(t, Digest(best, state), 64)
	assert.Equal(t, Digest(best, state), Digest(best, state))
	assert.NotEqual(t, Digest(best, state), Digest(Params{Strategy: search.KindBreadthFirst}, state))
	assert.NotEqual(t, Digest(best, state), Digest(best, moved))
}

func TestDigestKeepsColumnOrder(t *testing.T) {
	parse := func(text string) freecell.State {
		state, err := freecell.Parse(strings.NewReader(text))
		require.NoError(t, err)
		return state
	}
	left := parse("home: 3C KD KH KS\ncolumn: 5C 4C\ncolumn:\n")
	right := parse("home: 3C KD KH KS\ncolumn:\ncolumn: 5C 4C\n")
	require.Equal(t, left.Key(), right.Key(), "one search node")

	params := Params{Strategy: search.KindBreadthFirst}
	assert.NotEqual(t, Digest(params, left), Digest(params, right))
}

func TestDigestCoversStrategySettings(t *testing.T) {
	state := dealOne(t)

	dfs := Params{Strategy: search.KindDepthFirst, DepthLimit: 200}
	shallow := dfs
	shallow.DepthLimit = 5
	assert.NotEqual(t, Digest(dfs, state), Digest(shallow, state))

	best := Params{Strategy: search.KindBestFirst, Weights: freecell.DefaultWeights}
	reopened := best
	reopened.Reopen = true
	weighted := best
	weighted.Weights.Cell = 9
	assert.NotEqual(t, Digest(best, state), Digest(reopened, state))
	assert.NotEqual(t, Digest(best, state), Digest(weighted, state))

	// settings a strategy ignores leave its digest alone
	bfs := Params{Strategy: search.KindBreadthFirst}
	assert.Equal(t, Digest(bfs, state), Digest(Params{Strategy: search.KindBreadthFirst, DepthLimit: 5, Reopen: true}, state))
}
