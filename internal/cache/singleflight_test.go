package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlightGroup_SingleCaller(t *testing.T) {
	g := NewFlightGroup()
	v, err := g.Do("k", func() (any, error) { return 42, nil })
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestFlightGroup_PropagatesError(t *testing.T) {
	g := NewFlightGroup()
	want := errors.New("load failed")
	_, err := g.Do("k", func() (any, error) { return nil, want })
	assert.ErrorIs(t, err, want)
}

func TestFlightGroup_ConcurrentCallersShareOneLoad(t *testing.T) {
	g := NewFlightGroup()
	var loads int32
	release := make(chan struct{})

	const callers = 16
	var wg sync.WaitGroup
	results := make([]any, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := g.Do("catalog", func() (any, error) {
				atomic.AddInt32(&loads, 1)
				<-release
				return "listing", nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let every goroutine reach Do before the load completes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
	for _, v := range results {
		assert.Equal(t, "listing", v)
	}
}

func TestFlightGroup_DistinctKeysLoadIndependently(t *testing.T) {
	g := NewFlightGroup()
	var loads int32
	for _, key := range []string{"a", "b"} {
		_, err := g.Do(key, func() (any, error) {
			atomic.AddInt32(&loads, 1)
			return key, nil
		})
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
}

func TestFlightGroup_NewLoadAfterCompletion(t *testing.T) {
	g := NewFlightGroup()
	var loads int32
	for i := 0; i < 3; i++ {
		_, err := g.Do("k", func() (any, error) {
			atomic.AddInt32(&loads, 1)
			return nil, nil
		})
		assert.NoError(t, err)
	}
	// Sequential calls each get a fresh load; only concurrent ones share.
	assert.Equal(t, int32(3), atomic.LoadInt32(&loads))
}
