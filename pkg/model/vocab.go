package model

import "fmt"

// WordID is a dense integer handle for a unique word string.
// IDs are assigned in first-sighting order during training and stay stable
// for the lifetime of a trained or loaded model.
type WordID uint32

// UnknownWordID is the reserved sentinel for any word absent from the
// trained vocabulary. N-gram lookups containing it short-circuit to zero.
const UnknownWordID = ^WordID(0)

// maxWordLen is a sanity bound on interned word length, in bytes.
// Anything longer is a tokenizer bug, not a word.
const maxWordLen = 10000

// vocabulary is the bidirectional word <-> id table. The forward map owns
// the string data; the backward table is index-based (id -> string), so no
// entry ever references memory it does not own.
type vocabulary struct {
	wordToID map[string]WordID
	idToWord []string
}

func newVocabulary() vocabulary {
	return vocabulary{wordToID: make(map[string]WordID)}
}

// getOrCreateID returns the id for word, interning it on first sighting.
// Only the training path calls this; scoring never mutates the vocabulary.
func (v *vocabulary) getOrCreateID(word string) WordID {
	if len(word) == 0 || len(word) >= maxWordLen {
		panic(fmt.Sprintf("interning invalid word of length %d", len(word)))
	}
	if id, ok := v.wordToID[word]; ok {
		return id
	}
	id := WordID(len(v.idToWord))
	v.wordToID[word] = id
	v.idToWord = append(v.idToWord, word)
	return id
}

// lookupID is the read-only variant; unknown words map to UnknownWordID.
func (v *vocabulary) lookupID(word string) WordID {
	if id, ok := v.wordToID[word]; ok {
		return id
	}
	return UnknownWordID
}

// wordByID returns the empty string for ids outside the table.
func (v *vocabulary) wordByID(id WordID) string {
	if uint64(id) >= uint64(len(v.idToWord)) {
		return ""
	}
	return v.idToWord[id]
}

func (v *vocabulary) size() int {
	return len(v.idToWord)
}

func (v *vocabulary) reset() {
	v.wordToID = make(map[string]WordID)
	v.idToWord = nil
}
