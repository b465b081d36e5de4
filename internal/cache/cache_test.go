package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCache(t *testing.T) {
	t.Run("PutAndGet", func(t *testing.T) {
		c := New[string](time.Minute, time.Minute)
		defer c.Stop()

		c.Put("k", "v")

		got, ok := c.Get("k")
		if !ok || got != "v" {
			t.Errorf("expected (v, true), got (%q, %v)", got, ok)
		}
	})

	t.Run("MissingKey", func(t *testing.T) {
		c := New[int](time.Minute, time.Minute)
		defer c.Stop()

		if _, ok := c.Get("absent"); ok {
			t.Error("expected miss for absent key")
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		c := New[int](time.Minute, time.Minute)
		defer c.Stop()

		c.Put("k", 1)
		c.Put("k", 2)

		if got, _ := c.Get("k"); got != 2 {
			t.Errorf("expected overwrite to win, got %d", got)
		}
	})

	t.Run("ExpiredEntryIsAbsent", func(t *testing.T) {
		c := New[string](10*time.Millisecond, time.Hour)
		defer c.Stop()

		c.Put("k", "v")
		time.Sleep(30 * time.Millisecond)

		if _, ok := c.Get("k"); ok {
			t.Error("expected expired entry to read as absent")
		}
		// Sweep has not run (hour interval), so the entry still occupies the map.
		if c.Len() != 1 {
			t.Errorf("expected unswept entry to remain, len = %d", c.Len())
		}
	})

	t.Run("SweepRemovesExpired", func(t *testing.T) {
		c := New[string](5*time.Millisecond, 10*time.Millisecond)
		defer c.Stop()

		c.Put("k", "v")

		deadline := time.Now().Add(time.Second)
		for c.Len() != 0 {
			if time.Now().After(deadline) {
				t.Fatal("sweep did not remove expired entry")
			}
			time.Sleep(5 * time.Millisecond)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		c := New[string](time.Minute, time.Minute)
		defer c.Stop()

		c.Put("k", "v")
		c.Delete("k")

		if _, ok := c.Get("k"); ok {
			t.Error("expected key to be gone after delete")
		}
	})
}

func TestCacheConcurrency(t *testing.T) {
	c := New[int](time.Minute, time.Minute)
	defer c.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			c.Put(fmt.Sprintf("key-%d", n), n)
		}(i)
		go func(n int) {
			defer wg.Done()
			c.Get(fmt.Sprintf("key-%d", n))
		}(i)
	}
	wg.Wait()

	if c.Len() != 50 {
		t.Errorf("expected 50 entries, got %d", c.Len())
	}
}
