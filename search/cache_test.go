package search

import (
	"sync"
	"testing"

	"gomoku-local/eval"
	"gomoku-local/types"
)

func TestNewCacheRoundsStripes(t *testing.T) {
	tests := []struct {
		stripes, want int
	}{
		{0, DefaultStripes},
		{1, 1},
		{3, 4},
		{64, 64},
		{100, 128},
	}
	for _, tt := range tests {
		if got := len(NewCache(tt.stripes).stripes); got != tt.want {
			t.Errorf("NewCache(%d) has %d stripes, want %d", tt.stripes, got, tt.want)
		}
	}
}

func TestCacheGetPut(t *testing.T) {
	c := NewCache(4)
	key := CacheKey{Hash: 0xdeadbeef, Side: types.Black}

	if _, ok := c.Get(key); ok {
		t.Fatal("empty cache reported a hit")
	}
	c.Put(key, eval.Score(42))
	got, ok := c.Get(key)
	if !ok || got != eval.Score(42) {
		t.Fatalf("Get = %v, %v; want 42, true", got, ok)
	}

	// Same hash, other side is a different entry.
	if _, ok := c.Get(CacheKey{Hash: key.Hash, Side: types.White}); ok {
		t.Fatal("cache mixed up sides")
	}

	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}

func TestCacheGetOrCompute(t *testing.T) {
	c := NewCache(0)
	key := CacheKey{Hash: 7, Side: types.White}
	calls := 0
	compute := func() eval.Eval {
		calls++
		return eval.Eval{Outcome: eval.Won}
	}
	for i := 0; i < 3; i++ {
		if got := c.GetOrCompute(key, compute); got.Outcome != eval.Won {
			t.Fatalf("GetOrCompute = %v", got)
		}
	}
	if calls != 1 {
		t.Fatalf("compute called %d times, want 1", calls)
	}
	if st := c.Stats(); st.Entries != 1 || st.Hits != 2 || st.Misses != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache(8)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				key := CacheKey{Hash: uint64(i), Side: types.Black}
				got := c.GetOrCompute(key, func() eval.Eval { return eval.Score(i) })
				if got.Score != i {
					t.Errorf("worker %d: key %d holds %d", w, i, got.Score)
					return
				}
			}
		}(w)
	}
	wg.Wait()
	if c.Len() != 1000 {
		t.Fatalf("Len = %d, want 1000", c.Len())
	}
}
