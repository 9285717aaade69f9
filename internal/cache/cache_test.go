package cache

import "testing"

func TestPutUpdatesExistingEntryWithoutGrowingSize(t *testing.T) {
	c := NewLRU[string, string](2)
	c.Put("alpha", "x")
	c.Put("beta", "value")
	c.Put("alpha", "y")

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	if v, ok := c.Get("alpha"); !ok || v != "y" {
		t.Fatalf("expected updated alpha, got %q ok=%v", v, ok)
	}
	if v, ok := c.Get("beta"); !ok || v != "value" {
		t.Fatalf("expected beta to remain, got %q ok=%v", v, ok)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	type key struct {
		id    int
		width int
	}
	c := NewLRU[key, string](2)
	c.Put(key{1, 80}, "one")
	c.Put(key{2, 80}, "two")

	c.Get(key{1, 80})
	c.Put(key{3, 80}, "three")

	if _, ok := c.Get(key{2, 80}); ok {
		t.Fatalf("expected least recently used entry to be evicted")
	}
	if _, ok := c.Get(key{1, 80}); !ok {
		t.Fatalf("expected recently read entry to survive")
	}
}

func TestPurge(t *testing.T) {
	c := NewLRU[int, int](4)
	for i := 0; i < 4; i++ {
		c.Put(i, i)
	}
	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Fatalf("expected purged entry to be gone")
	}
}
