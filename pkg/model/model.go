/*
Package model implements a compact trigram language model for ranking
spell-correction candidates by how well they fit their context.

A trained model holds every observed 1-, 2- and 3-gram count in a single
flat bucket array addressed by a minimal perfect hash. Instead of keeping
the n-gram keys around, each bucket stores a 32-bit fingerprint of its key;
lookups re-verify the fingerprint, so an unseen n-gram reads as zero rather
than stealing an unrelated bucket's count. Conditional probabilities use
additive smoothing with a single constant K, and sentence scores are summed
log-probabilities over a sliding trigram window.

Training is strictly single-threaded: word ids are assigned in
first-sighting order. A model is read-only after Train or Load and can then
be shared by any number of concurrent readers without locking. Train, Load
and Clear require exclusive access; callers that need to swap models under
readers should build a fresh instance and publish it whole.
*/
package model

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/spellserve/pkg/tokenizer"
)

// DefaultK is the additive smoothing constant fixed at model creation.
// It is persisted with the model so scores stay comparable across loads.
const DefaultK = 0.05

// ScoreEmpty is the designated "unscorable" result for empty input.
const ScoreEmpty = -math.MaxFloat64

// LangModel is the whole trained artifact: vocabulary, compact n-gram
// store, smoothing constant and corpus-level totals.
type LangModel struct {
	tok        *tokenizer.Tokenizer
	vocab      vocabulary
	store      compactStore
	k          float64
	totalWords uint64
	vocabSize  uint64
}

// New returns an empty model with the default smoothing constant.
func New() *LangModel {
	return &LangModel{
		tok:   tokenizer.New(),
		vocab: newVocabulary(),
		store: newCompactStore(),
		k:     DefaultK,
	}
}

// Train builds the model from a raw-text corpus and an alphabet definition
// file in one batch pass. On any setup failure (bad alphabet, corpus empty
// after tokenization) it returns an error and leaves no partial model.
func (m *LangModel) Train(corpusPath, alphabetPath string) error {
	if err := m.tok.LoadAlphabet(alphabetPath); err != nil {
		return fmt.Errorf("loading alphabet: %w", err)
	}
	raw, err := os.ReadFile(corpusPath)
	if err != nil {
		return fmt.Errorf("reading corpus: %w", err)
	}

	log.Debugf("tokenizing corpus: %d bytes", len(raw))
	sentences := m.tok.Process(strings.ToLower(string(raw)))
	if len(sentences) == 0 {
		return fmt.Errorf("corpus %s produced no sentences", corpusPath)
	}

	log.Debugf("interning %d sentences", len(sentences))
	counts := newCounter()
	for _, sentence := range sentences {
		ids := make([]WordID, len(sentence))
		for i, w := range sentence {
			ids[i] = m.vocab.getOrCreateID(w)
		}
		counts.addSentence(ids)
	}

	log.Debugf("ngrams1=%d ngrams2=%d ngrams3=%d total=%d",
		len(counts.grams1), len(counts.grams2), len(counts.grams3), counts.keyCount())

	m.totalWords = counts.totalWords
	m.vocabSize = uint64(len(counts.grams1))

	if err := m.store.build(counts); err != nil {
		m.Clear()
		return err
	}
	// counts goes out of scope here; the compact store is all that survives.
	return nil
}

// Score returns the log-likelihood of a word sequence. Unknown words map to
// the sentinel id and degrade to the smoothing floor. Empty input returns
// ScoreEmpty. Longer sentences trend more negative on purpose: scores are
// for comparative ranking within fixed-length candidate sets, not absolute
// probabilities.
func (m *LangModel) Score(words []string) float64 {
	ids := make([]WordID, 0, len(words)+2)
	for _, w := range words {
		ids = append(ids, m.vocab.lookupID(w))
	}
	if len(ids) == 0 {
		return ScoreEmpty
	}
	// Two sentinel pads model the implicit end-of-sequence context, so the
	// trigram window runs once per original token.
	ids = append(ids, UnknownWordID, UnknownWordID)

	var result float64
	for i := 0; i+2 < len(ids); i++ {
		result += math.Log(m.gram1Prob(ids[i]))
		result += math.Log(m.gram2Prob(ids[i], ids[i+1]))
		result += math.Log(m.gram3Prob(ids[i], ids[i+1], ids[i+2]))
	}
	return result
}

// ScoreText tokenizes raw text, flattens its sentence structure and scores
// the resulting word sequence.
func (m *LangModel) ScoreText(text string) float64 {
	var words []string
	for _, sentence := range m.tok.Process(strings.ToLower(text)) {
		words = append(words, sentence...)
	}
	return m.Score(words)
}

// Clear resets the model to its freshly constructed state.
func (m *LangModel) Clear() {
	m.k = DefaultK
	m.totalWords = 0
	m.vocabSize = 0
	m.vocab.reset()
	m.store.reset()
	m.tok.Clear()
}

// LookupID maps a word to its id without mutating the vocabulary.
func (m *LangModel) LookupID(word string) WordID {
	return m.vocab.lookupID(word)
}

// WordByID returns the word for id, or "" when id is out of range.
func (m *LangModel) WordByID(id WordID) string {
	return m.vocab.wordByID(id)
}

// WordCount returns the trained unigram count for id.
func (m *LangModel) WordCount(id WordID) uint32 {
	return m.gram1Count(id)
}

// VocabSize returns the number of distinct words seen during training.
func (m *LangModel) VocabSize() uint64 {
	return m.vocabSize
}

// TotalWords returns the total token count of the training corpus.
func (m *LangModel) TotalWords() uint64 {
	return m.totalWords
}

// SmoothingK returns the additive smoothing constant.
func (m *LangModel) SmoothingK() float64 {
	return m.k
}

// GetAlphabet exposes the tokenizer's character set.
func (m *LangModel) GetAlphabet() map[rune]struct{} {
	return m.tok.GetAlphabet()
}

// Tokenize splits text with the model's alphabet.
func (m *LangModel) Tokenize(text string) [][]string {
	return m.tok.Process(strings.ToLower(text))
}

// gram1Prob is the smoothed unigram probability.
func (m *LangModel) gram1Prob(w WordID) float64 {
	c1 := float64(m.gram1Count(w)) + m.k
	return c1 / (float64(m.totalWords) + float64(m.vocabSize))
}

// gram2Prob is the smoothed conditional bigram probability. A bigram can
// never legitimately outnumber its own first-word unigram, so a larger c2
// is a detected fingerprint collision and is forced to zero. Load-bearing:
// this is what caps the 32-bit fingerprint's false-positive damage.
func (m *LangModel) gram2Prob(w1, w2 WordID) float64 {
	c1 := float64(m.gram1Count(w1))
	c2 := float64(m.gram2Count(w1, w2))
	if c2 > c1 {
		c2 = 0
	}
	return (c2 + m.k) / (c1 + float64(m.totalWords))
}

// gram3Prob mirrors gram2Prob one order up, clamping against the bigram.
func (m *LangModel) gram3Prob(w1, w2, w3 WordID) float64 {
	c2 := float64(m.gram2Count(w1, w2))
	c3 := float64(m.gram3Count(w1, w2, w3))
	if c3 > c2 {
		c3 = 0
	}
	return (c3 + m.k) / (c2 + float64(m.totalWords))
}

// Queries containing the unknown sentinel never touch the store.

func (m *LangModel) gram1Count(w WordID) uint32 {
	if w == UnknownWordID {
		return 0
	}
	return m.store.lookup(encodeKey1(nil, w))
}

func (m *LangModel) gram2Count(w1, w2 WordID) uint32 {
	if w1 == UnknownWordID || w2 == UnknownWordID {
		return 0
	}
	return m.store.lookup(encodeKey2(nil, w1, w2))
}

func (m *LangModel) gram3Count(w1, w2, w3 WordID) uint32 {
	if w1 == UnknownWordID || w2 == UnknownWordID || w3 == UnknownWordID {
		return 0
	}
	return m.store.lookup(encodeKey3(nil, w1, w2, w3))
}
