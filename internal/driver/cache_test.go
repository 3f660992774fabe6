package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := virtual(t, "ex.txt", example)
	key := KeyFor(f, Options{})

	if _, ok, err := c.Get(key); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	in := &Answer{Path: "ex.txt", Part1: 13, Part2: 140, Pairs: 8, Packets: 16, Ranks: []int{10, 14}}
	if err := c.Put(key, answerToCache(in)); err != nil {
		t.Fatal(err)
	}
	got, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Part1 != 13 || got.Part2 != 140 || len(got.Ranks) != 2 {
		t.Errorf("cached = %+v", got)
	}
}

func TestKeyForSeparatesInputs(t *testing.T) {
	f := virtual(t, "ex.txt", example)
	g := virtual(t, "ex.txt", example+"\n[1]\n[2]\n")
	base := KeyFor(f, Options{})
	if base == KeyFor(g, Options{}) {
		t.Error("different content, same key")
	}
	if base == KeyFor(f, Options{Part: 1}) {
		t.Error("different part, same key")
	}
	if base == KeyFor(f, Options{Dividers: []string{"[[2]]", "[[7]]"}}) {
		t.Error("different dividers, same key")
	}
	if base != KeyFor(f, Options{Alloc: AllocArena, Jobs: 7}) {
		t.Error("alloc and jobs must not change the key")
	}
}

func TestSolveUsesCache(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenDiskCacheAt(dir)
	if err != nil {
		t.Fatal(err)
	}
	f := virtual(t, "ex.txt", example)
	first, err := Solve(context.Background(), f, Options{Cache: c})
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first solve cannot be cached")
	}
	second, err := Solve(context.Background(), f, Options{Cache: c})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.Part1 != 13 || second.Part2 != 140 {
		t.Errorf("second = %+v", second)
	}

	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "answers")); !os.IsNotExist(err) {
		t.Errorf("answers survived DropAll: %v", err)
	}
	third, err := Solve(context.Background(), f, Options{Cache: c})
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Error("cache hit after DropAll")
	}
}

func TestNilCache(t *testing.T) {
	var c *DiskCache
	if err := c.Put(CacheKey{}, &CachedAnswer{}); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(CacheKey{}); ok || err != nil {
		t.Fatalf("nil cache Get: %v %v", ok, err)
	}
}
