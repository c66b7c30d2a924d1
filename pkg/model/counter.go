package model

// gram2Key and gram3Key identify bigrams and trigrams by word id tuple.
// Order matters: these are sequences, not sets.
type gram2Key [2]WordID

type gram3Key [3]WordID

// counter accumulates raw n-gram frequencies during a single training pass.
// It is a transient session object: once the compact store is built from it,
// the maps are dropped and never persisted.
type counter struct {
	grams1     map[WordID]uint32
	grams2     map[gram2Key]uint32
	grams3     map[gram3Key]uint32
	totalWords uint64
}

func newCounter() *counter {
	return &counter{
		grams1: make(map[WordID]uint32),
		grams2: make(map[gram2Key]uint32),
		grams3: make(map[gram3Key]uint32),
	}
}

// addSentence counts every unigram, adjacent pair and adjacent triple in one
// interned sentence. Windows never cross sentence boundaries and no padding
// is applied here; padding is a scoring-time concern.
func (c *counter) addSentence(ids []WordID) {
	for _, w := range ids {
		c.grams1[w]++
		c.totalWords++
	}
	for i := 0; i+1 < len(ids); i++ {
		c.grams2[gram2Key{ids[i], ids[i+1]}]++
	}
	for i := 0; i+2 < len(ids); i++ {
		c.grams3[gram3Key{ids[i], ids[i+1], ids[i+2]}]++
	}
}

func (c *counter) keyCount() int {
	return len(c.grams1) + len(c.grams2) + len(c.grams3)
}
