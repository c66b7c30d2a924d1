/*
Package tokenizer splits raw text into sentences of words, driven by a
loadable alphabet of valid word characters.

The alphabet file simply lists every rune that can appear inside a word;
whitespace in the file is ignored. Any rune outside the alphabet separates
words, and sentence-ending punctuation additionally closes the current
sentence, so n-gram windows never span a sentence break.
*/
package tokenizer

import (
	"fmt"
	"os"
	"unicode"

	"github.com/charmbracelet/log"
)

// Tokenizer holds the active alphabet. Load an alphabet once, then Process
// is safe for concurrent use; LoadAlphabet and Clear require exclusive
// access like every other mutator in this module.
type Tokenizer struct {
	alphabet map[rune]struct{}
}

// New returns a tokenizer with an empty alphabet.
func New() *Tokenizer {
	return &Tokenizer{alphabet: make(map[rune]struct{})}
}

// LoadAlphabet reads the set of word characters from path. The previous
// alphabet is replaced only on success.
func (t *Tokenizer) LoadAlphabet(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading alphabet file: %w", err)
	}
	alphabet := make(map[rune]struct{})
	for _, r := range string(data) {
		// Sentence-break punctuation is a separator even when the alphabet
		// file lists it; otherwise "." would intern as a vocabulary word and
		// n-gram windows would run across sentence boundaries.
		if unicode.IsSpace(r) || isSentenceBreak(r) {
			continue
		}
		alphabet[unicode.ToLower(r)] = struct{}{}
	}
	if len(alphabet) == 0 {
		return fmt.Errorf("alphabet file %s contains no characters", path)
	}
	t.alphabet = alphabet
	log.Debugf("alphabet loaded: %d characters", len(alphabet))
	return nil
}

// Process splits text into sentences, each a sequence of words. Words are
// maximal runs of alphabet runes; empty sentences are dropped.
func (t *Tokenizer) Process(text string) [][]string {
	var sentences [][]string
	var sentence []string
	var word []rune

	flushWord := func() {
		if len(word) > 0 {
			sentence = append(sentence, string(word))
			word = word[:0]
		}
	}
	flushSentence := func() {
		flushWord()
		if len(sentence) > 0 {
			sentences = append(sentences, sentence)
			sentence = nil
		}
	}

	for _, r := range text {
		if _, ok := t.alphabet[r]; ok {
			word = append(word, r)
			continue
		}
		if isSentenceBreak(r) {
			flushSentence()
		} else {
			flushWord()
		}
	}
	flushSentence()
	return sentences
}

// GetAlphabet returns the set of recognized word characters. The returned
// map is the live set; callers must not mutate it.
func (t *Tokenizer) GetAlphabet() map[rune]struct{} {
	return t.alphabet
}

// SetAlphabet replaces the alphabet with the given runes. Used when
// restoring a tokenizer persisted alongside a trained model. Sentence-break
// runes are excluded the same way LoadAlphabet excludes them.
func (t *Tokenizer) SetAlphabet(runes []rune) {
	alphabet := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		if unicode.IsSpace(r) || isSentenceBreak(r) {
			continue
		}
		alphabet[r] = struct{}{}
	}
	t.alphabet = alphabet
}

// Clear drops the loaded alphabet.
func (t *Tokenizer) Clear() {
	t.alphabet = make(map[rune]struct{})
}

func isSentenceBreak(r rune) bool {
	switch r {
	case '.', '!', '?', ';', '\n':
		return true
	}
	return false
}
