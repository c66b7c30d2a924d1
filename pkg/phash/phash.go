/*
Package phash builds minimal perfect hash functions over fixed byte-string
key sets using hash-and-displace construction.

The builder is batch and one-shot: Init consumes the complete key set and
finds, for each pilot group of keys, a displacement seed under which every
key in the group lands on a distinct free slot. After Init, Hash maps every
key from the input set to a unique bucket below BucketsNumber. Keys outside
the input set map to arbitrary buckets; callers that need membership must
verify matches themselves (e.g. with a stored fingerprint).

Construction is fully deterministic for a given key set, and the resulting
function state round-trips through Save and Load, so a persisted hash
reproduces the exact same bucket assignment.
*/
package phash

import (
	"fmt"
	"io"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// pilotsPerKey controls the pilot table density. One pilot group per three
// keys keeps the serialized overhead small while displacement search stays
// cheap at full load.
const pilotsPerKey = 3

// maxPilot bounds the displacement search per group. With distinct keys the
// search terminates long before this; hitting it means the input violated
// the distinct-keys contract.
const maxPilot = 1 << 24

// PerfectHash maps a fixed set of byte-string keys onto len(keys) buckets
// with no collisions inside that set. The zero value is an empty hash;
// call Init before Hash.
type PerfectHash struct {
	buckets uint32
	pilots  []uint32
}

// New returns an empty perfect hash.
func New() *PerfectHash {
	return &PerfectHash{}
}

// BucketsNumber returns the number of output buckets, which equals the size
// of the key set given to Init.
func (p *PerfectHash) BucketsNumber() uint32 {
	return p.buckets
}

// Init builds the hash function over keys. Keys must be distinct; duplicates
// are rejected with an error. Init replaces any previously built state.
func (p *PerfectHash) Init(keys [][]byte) error {
	n := len(keys)
	p.buckets = uint32(n)
	p.pilots = nil
	if n == 0 {
		return nil
	}

	seen := make(map[string]struct{}, n)
	for _, k := range keys {
		if _, dup := seen[string(k)]; dup {
			return fmt.Errorf("duplicate key in input set: %q", k)
		}
		seen[string(k)] = struct{}{}
	}

	groups := n/pilotsPerKey + 1
	p.pilots = make([]uint32, groups)

	// Group keys by their pilot slot and resolve the largest groups first;
	// they have the fewest free slots left and the longest expected search.
	grouped := make([][]uint64, groups)
	for _, k := range keys {
		h := xxhash.Sum64(k)
		g := h % uint64(groups)
		grouped[g] = append(grouped[g], h)
	}

	order := make([]int, groups)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ga, gb := order[a], order[b]
		if len(grouped[ga]) != len(grouped[gb]) {
			return len(grouped[ga]) > len(grouped[gb])
		}
		return ga < gb
	})

	occupied := make([]bool, n)
	claimed := make([]uint32, 0, pilotsPerKey*4)
	for _, g := range order {
		hs := grouped[g]
		if len(hs) == 0 {
			continue
		}
	search:
		for pilot := uint32(0); ; pilot++ {
			if pilot >= maxPilot {
				return fmt.Errorf("displacement search exhausted for pilot group %d", g)
			}
			claimed = claimed[:0]
			for _, h := range hs {
				slot := slotFor(h, pilot, uint64(n))
				if occupied[slot] {
					continue search
				}
				for _, c := range claimed {
					if c == slot {
						continue search
					}
				}
				claimed = append(claimed, slot)
			}
			for _, slot := range claimed {
				occupied[slot] = true
			}
			p.pilots[g] = pilot
			break
		}
	}
	return nil
}

// Hash returns the bucket index for key. For keys from the Init set the
// result is unique and below BucketsNumber; for any other key it is an
// arbitrary in-range bucket.
func (p *PerfectHash) Hash(key []byte) uint32 {
	if len(p.pilots) == 0 {
		return 0
	}
	h := xxhash.Sum64(key)
	g := h % uint64(len(p.pilots))
	return slotFor(h, p.pilots[g], uint64(p.buckets))
}

// Clear resets the hash to its empty state.
func (p *PerfectHash) Clear() {
	p.buckets = 0
	p.pilots = nil
}

// Save writes the function state so Load can reconstruct the exact same
// bucket assignment.
func (p *PerfectHash) Save(w io.Writer) error {
	if err := writeUint32(w, p.buckets); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(p.pilots))); err != nil {
		return err
	}
	for _, pilot := range p.pilots {
		if err := writeUint32(w, pilot); err != nil {
			return err
		}
	}
	return nil
}

// Load replaces the function state with one previously written by Save.
func (p *PerfectHash) Load(r io.Reader) error {
	buckets, err := readUint32(r)
	if err != nil {
		return fmt.Errorf("reading bucket count: %w", err)
	}
	groups, err := readUint32(r)
	if err != nil {
		return fmt.Errorf("reading pilot count: %w", err)
	}
	pilots := make([]uint32, groups)
	for i := range pilots {
		if pilots[i], err = readUint32(r); err != nil {
			return fmt.Errorf("reading pilot %d: %w", i, err)
		}
	}
	p.buckets = buckets
	p.pilots = pilots
	return nil
}

// slotFor folds the key hash and the pilot through a splitmix-style mixer.
// The mixer keeps the pilot's influence independent of the raw hash so each
// displacement attempt behaves like a fresh hash function.
func slotFor(h uint64, pilot uint32, n uint64) uint32 {
	x := h + 0x9E3779B97F4A7C15*uint64(pilot+1)
	x ^= x >> 33
	x *= 0xFF51AFD7ED558CCD
	x ^= x >> 33
	x *= 0xC4CEB9FE1A85EC53
	x ^= x >> 33
	return uint32(x % n)
}
