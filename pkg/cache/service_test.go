package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

func newTestCache(t *testing.T) (Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(client), mr
}

func TestGetSetDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got item
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", item{Name: "Nile cruise", Price: "120.00"}, time.Minute))
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "Nile cruise", got.Name)

	require.NoError(t, c.Delete(ctx, "k"))
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestSetHonoursTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", item{Name: "x"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var got item
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestDeletePattern(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 150; i++ {
		require.NoError(t, mr.Set(fmt.Sprintf("voyago:listings:list:kind:all:page:%d:limit:10", i), "1"))
	}
	require.NoError(t, mr.Set("voyago:listings:detail:uuid:1", "1"))

	require.NoError(t, c.DeletePattern(ctx, "voyago:listings:list:*"))
	assert.Equal(t, []string{"voyago:listings:detail:uuid:1"}, mr.Keys())
}

func TestGetOrSet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return item{Name: "Desert safari", Price: "80.00"}, nil
	}

	var first, second item
	require.NoError(t, c.GetOrSet(ctx, "detail", time.Minute, fetch, &first))
	require.NoError(t, c.GetOrSet(ctx, "detail", time.Minute, fetch, &second))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestGetOrSet_FetcherError(t *testing.T) {
	c, _ := newTestCache(t)
	boom := errors.New("db down")

	var got item
	err := c.GetOrSet(context.Background(), "detail", time.Minute, func() (interface{}, error) {
		return nil, boom
	}, &got)
	assert.ErrorIs(t, err, boom)
}
