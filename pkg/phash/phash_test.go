package phash

import (
	"bytes"
	"fmt"
	"testing"
)

func makeKeys(n int) [][]byte {
	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("key-%d", i))
	}
	return keys
}

// every key from the input set must land on its own bucket
func TestInitNoCollisions(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100, 5000} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			keys := makeKeys(n)
			ph := New()
			if err := ph.Init(keys); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			if ph.BucketsNumber() != uint32(n) {
				t.Fatalf("BucketsNumber = %d, want %d", ph.BucketsNumber(), n)
			}
			seen := make(map[uint32]string, n)
			for _, k := range keys {
				b := ph.Hash(k)
				if b >= ph.BucketsNumber() {
					t.Fatalf("Hash(%q) = %d, out of range", k, b)
				}
				if prev, dup := seen[b]; dup {
					t.Fatalf("bucket %d assigned to both %q and %q", b, prev, k)
				}
				seen[b] = string(k)
			}
		})
	}
}

// pilot selection must not depend on the order keys are handed in
func TestInitDeterministic(t *testing.T) {
	keys := makeKeys(500)
	ph1 := New()
	if err := ph1.Init(keys); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	reversed := make([][]byte, len(keys))
	for i, k := range keys {
		reversed[len(keys)-1-i] = k
	}
	ph2 := New()
	if err := ph2.Init(reversed); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, k := range keys {
		if ph1.Hash(k) != ph2.Hash(k) {
			t.Fatalf("Hash(%q) differs across insertion orders: %d vs %d",
				k, ph1.Hash(k), ph2.Hash(k))
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	keys := makeKeys(300)
	ph := New()
	if err := ph.Init(keys); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	var buf bytes.Buffer
	if err := ph.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := New()
	if err := loaded.Load(&buf); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.BucketsNumber() != ph.BucketsNumber() {
		t.Fatalf("BucketsNumber = %d after load, want %d", loaded.BucketsNumber(), ph.BucketsNumber())
	}
	for _, k := range keys {
		if loaded.Hash(k) != ph.Hash(k) {
			t.Fatalf("Hash(%q) = %d after load, want %d", k, loaded.Hash(k), ph.Hash(k))
		}
	}
}

func TestInitRejectsDuplicates(t *testing.T) {
	keys := [][]byte{[]byte("a"), []byte("b"), []byte("a")}
	if err := New().Init(keys); err == nil {
		t.Fatal("Init accepted duplicate keys")
	}
}

func TestEmptyKeySet(t *testing.T) {
	ph := New()
	if err := ph.Init(nil); err != nil {
		t.Fatalf("Init(nil) failed: %v", err)
	}
	if ph.BucketsNumber() != 0 {
		t.Fatalf("BucketsNumber = %d for empty set, want 0", ph.BucketsNumber())
	}
}

func BenchmarkHash(b *testing.B) {
	keys := makeKeys(10000)
	ph := New()
	if err := ph.Init(keys); err != nil {
		b.Fatalf("Init failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ph.Hash(keys[i%len(keys)])
	}
}
