package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAsideMissFetchesAndStores(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	fetches := 0
	var out payload
	err := Aside(ctx, "k", &out, time.Minute, func() error {
		fetches++
		out = payload{Name: "a", Count: 1}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.True(t, mr.Exists("k"))

	// Second read is served from Redis without calling fetch.
	var again payload
	err = Aside(ctx, "k", &again, time.Minute, func() error {
		fetches++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, out, again)
}

func TestAsideFetchErrorNotCached(t *testing.T) {
	mr := setupCache(t)

	var out payload
	boom := errors.New("boom")
	err := Aside(context.Background(), "k", &out, time.Minute, func() error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestAsideNilClientAlwaysFetches(t *testing.T) {
	SetClient(nil)

	fetches := 0
	var out payload
	for i := 0; i < 2; i++ {
		err := Aside(context.Background(), "k", &out, time.Minute, func() error {
			fetches++
			out = payload{Name: "b"}
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, fetches)
}

func TestInvalidateCardDropsBothKeys(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, CardKey(7, 3), payload{Name: "c"}, time.Minute))
	require.NoError(t, SetJSON(ctx, CardListKey(3), []payload{{Name: "c"}}, time.Minute))

	InvalidateCard(ctx, 7, 3)
	assert.False(t, mr.Exists(CardKey(7, 3)))
	assert.False(t, mr.Exists(CardListKey(3)))
}
