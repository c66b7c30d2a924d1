package model

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/spellserve/pkg/phash"
)

// bucket is one slot of the compact store: a 32-bit fingerprint of the
// serialized key plus its trained count. Slots never claimed by a trained
// key stay zeroed and therefore always miss on lookup.
type bucket struct {
	fp    uint32
	count uint32
}

// compactStore packs every trained n-gram count into a flat bucket array
// addressed by a minimal perfect hash. The hash alone is trusted only for
// keys from the training set; every lookup is re-verified against the
// stored fingerprint, so foreign keys read as zero instead of borrowing an
// unrelated key's count.
type compactStore struct {
	ph      *phash.PerfectHash
	buckets []bucket
}

func newCompactStore() compactStore {
	return compactStore{ph: phash.New()}
}

// build serializes every key across the three count maps, constructs the
// perfect hash over the full set and fills the bucket array. Training-time
// only; the counter is discardable afterwards.
func (s *compactStore) build(c *counter) error {
	keys := make([][]byte, 0, c.keyCount())
	for w := range c.grams1 {
		keys = append(keys, encodeKey1(nil, w))
	}
	for k := range c.grams2 {
		keys = append(keys, encodeKey2(nil, k[0], k[1]))
	}
	for k := range c.grams3 {
		keys = append(keys, encodeKey3(nil, k[0], k[1], k[2]))
	}

	log.Debugf("building perfect hash over %d keys", len(keys))
	if err := s.ph.Init(keys); err != nil {
		return fmt.Errorf("perfect hash construction: %w", err)
	}

	s.buckets = make([]bucket, s.ph.BucketsNumber())
	var buf []byte
	for w, n := range c.grams1 {
		buf = encodeKey1(buf, w)
		s.insert(buf, n)
	}
	for k, n := range c.grams2 {
		buf = encodeKey2(buf, k[0], k[1])
		s.insert(buf, n)
	}
	for k, n := range c.grams3 {
		buf = encodeKey3(buf, k[0], k[1], k[2])
		s.insert(buf, n)
	}
	log.Debugf("bucket array filled: %d slots", len(s.buckets))
	return nil
}

func (s *compactStore) insert(key []byte, count uint32) {
	b := s.ph.Hash(key)
	if int(b) >= len(s.buckets) {
		// The key set given to the store disagrees with the key set given
		// to the hash builder. Not recoverable.
		panic(fmt.Sprintf("phash bucket %d out of range (%d buckets)", b, len(s.buckets)))
	}
	s.buckets[b] = bucket{fp: fingerprint(key), count: count}
}

// lookup returns the trained count for a serialized key, or zero when the
// bucket's fingerprint does not match. Zero is deliberately ambiguous
// between a genuinely unseen n-gram and a 1-in-2^32 fingerprint coincidence;
// the estimator's clamp absorbs the latter.
func (s *compactStore) lookup(key []byte) uint32 {
	if len(s.buckets) == 0 {
		return 0
	}
	b := s.ph.Hash(key)
	if int(b) >= len(s.buckets) {
		panic(fmt.Sprintf("phash bucket %d out of range (%d buckets)", b, len(s.buckets)))
	}
	data := s.buckets[b]
	if data.fp == fingerprint(key) {
		return data.count
	}
	return 0
}

func (s *compactStore) reset() {
	s.ph.Clear()
	s.buckets = nil
}

// fpSalt keeps the fingerprint stream distinct from the unsalted hashing the
// perfect hash uses for addressing, so the two functions are independent.
var fpSalt = []byte{0x73, 0x70, 0x66, 0x70}

// fingerprint is the collision-verification tag stored next to each count.
// It is used purely for verification, never for addressing.
func fingerprint(key []byte) uint32 {
	var d xxhash.Digest
	d.Reset()
	d.Write(fpSalt)
	d.Write(key)
	return uint32(d.Sum64() >> 32)
}
