package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

type countingLoader struct {
	calls atomic.Int32
	value int64
	delay time.Duration
}

func (l *countingLoader) load(ctx context.Context) (int64, error) {
	l.calls.Add(1)
	time.Sleep(l.delay)
	return l.value, nil
}

func TestRedisCountCache_GetOrLoad(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisCountCache(client, 30*time.Second, logger.NewNopLogger())
	ctx := context.Background()
	loader := &countingLoader{value: 42}

	n, err := c.GetOrLoad(ctx, "count:tickets:status=all", loader.load)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	loader.value = 43
	n, err = c.GetOrLoad(ctx, "count:tickets:status=all", loader.load)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n, "served from redis")
	assert.Equal(t, int32(1), loader.calls.Load())

	mr.FastForward(31 * time.Second)
	n, err = c.GetOrLoad(ctx, "count:tickets:status=all", loader.load)
	require.NoError(t, err)
	assert.Equal(t, int64(43), n, "expired and reloaded")
}

func TestRedisCountCache_Set(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisCountCache(client, time.Minute, logger.NewNopLogger())

	require.NoError(t, c.Set(context.Background(), "k", 7))
	got, err := mr.Get(countKeyPrefix + "k")
	require.NoError(t, err)
	assert.Equal(t, "7", got)
	assert.Equal(t, time.Minute, mr.TTL(countKeyPrefix+"k"))
}

func TestRedisCountCache_RedisDownFallsBackToLoad(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisCountCache(client, time.Minute, logger.NewNopLogger())
	mr.Close()

	n, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int64, error) { return 5, nil })
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestRedisCountCache_LoadErrorNotCached(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisCountCache(client, time.Minute, logger.NewNopLogger())

	_, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int64, error) {
		return 0, errors.New("db down")
	})
	assert.EqualError(t, err, "db down")
	assert.False(t, mr.Exists(countKeyPrefix+"k"))
}

func TestLocalCountCache_SingleflightOnMiss(t *testing.T) {
	c := NewLocalCountCache(16, time.Minute)
	loader := &countingLoader{value: 9, delay: 50 * time.Millisecond}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := c.GetOrLoad(context.Background(), "k", loader.load)
			assert.NoError(t, err)
			assert.Equal(t, int64(9), n)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestLocalCountCache_Expiry(t *testing.T) {
	c := NewLocalCountCache(16, 20*time.Millisecond)
	loader := &countingLoader{value: 1}

	_, err := c.GetOrLoad(context.Background(), "k", loader.load)
	require.NoError(t, err)
	require.NoError(t, c.Set(context.Background(), "k", 2))

	n, err := c.GetOrLoad(context.Background(), "k", loader.load)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	time.Sleep(60 * time.Millisecond)
	_, err = c.GetOrLoad(context.Background(), "k", loader.load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), loader.calls.Load())
}

// ctxAwareLoader fails when its context is cancelled before it is released.
type ctxAwareLoader struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (l *ctxAwareLoader) load(ctx context.Context) (int64, error) {
	l.once.Do(func() { close(l.started) })
	<-l.release
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return 5, nil
}

func TestLocalCountCache_CancelledCallerDoesNotFailWaiters(t *testing.T) {
	c := NewLocalCountCache(16, time.Minute)
	loader := &ctxAwareLoader{started: make(chan struct{}), release: make(chan struct{})}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	type result struct {
		n   int64
		err error
	}
	first := make(chan result, 1)
	go func() {
		n, err := c.GetOrLoad(firstCtx, "k", loader.load)
		first <- result{n, err}
	}()
	<-loader.started

	second := make(chan result, 1)
	go func() {
		n, err := c.GetOrLoad(context.Background(), "k", loader.load)
		second <- result{n, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	close(loader.release)

	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, int64(5), got.n)
	got = <-first
	require.NoError(t, got.err)
	assert.Equal(t, int64(5), got.n)
}

func TestRedisCountCache_LoadOutlivesCancelledCaller(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisCountCache(client, 30*time.Second, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := c.GetOrLoad(ctx, "k", func(ctx context.Context) (int64, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 11, nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	assert.True(t, mr.Exists(countKeyPrefix+"k"))
}
