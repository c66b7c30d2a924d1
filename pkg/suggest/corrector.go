// Package suggest builds spelling corrections and prefix completions on
// top of a trained language model. A Corrector ranks edit-distance-1
// variants of a word by the score of the surrounding sentence; a
// Completer serves vocabulary words by prefix.
package suggest

import (
	"sort"

	"github.com/bastiangx/spellserve/pkg/model"
)

// Candidate is one ranked correction for a word position.
type Candidate struct {
	Word  string
	Score float64
}

// Corrector generates and ranks in-vocabulary corrections. It reads the
// model but never mutates it, so one Corrector is safe to share across
// goroutines.
type Corrector struct {
	model    *model.LangModel
	maxCands int
}

// NewCorrector wraps a trained model. maxCands caps the candidate list;
// zero or negative means unlimited.
func NewCorrector(m *model.LangModel, maxCands int) *Corrector {
	return &Corrector{model: m, maxCands: maxCands}
}

// Candidates ranks replacements for words[pos] by the full sentence score
// with the replacement substituted in. The original word is always among
// the candidates, so a correct word naturally ranks itself first. Returns
// nil when pos is out of range.
func (c *Corrector) Candidates(words []string, pos int) []Candidate {
	if pos < 0 || pos >= len(words) {
		return nil
	}

	seen := map[string]struct{}{words[pos]: {}}
	variants := []string{words[pos]}
	for _, v := range edits1(words[pos], c.model.GetAlphabet()) {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		// only trained words can improve the sentence
		if c.model.LookupID(v) == model.UnknownWordID {
			continue
		}
		variants = append(variants, v)
	}

	scratch := make([]string, len(words))
	copy(scratch, words)

	cands := make([]Candidate, 0, len(variants))
	for _, v := range variants {
		scratch[pos] = v
		cands = append(cands, Candidate{Word: v, Score: c.model.Score(scratch)})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
	if c.maxCands > 0 && len(cands) > c.maxCands {
		cands = cands[:c.maxCands]
	}
	return cands
}

// Correct returns a copy of words with every out-of-vocabulary word
// replaced by its best-ranked candidate. Words with no in-vocabulary
// candidate are kept as-is.
func (c *Corrector) Correct(words []string) []string {
	out := make([]string, len(words))
	copy(out, words)
	for i, w := range words {
		if c.model.LookupID(w) != model.UnknownWordID {
			continue
		}
		cands := c.Candidates(out, i)
		if len(cands) == 0 {
			continue
		}
		out[i] = cands[0].Word
	}
	return out
}

// CorrectText tokenizes text and corrects each sentence independently.
func (c *Corrector) CorrectText(text string) [][]string {
	sentences := c.model.Tokenize(text)
	out := make([][]string, len(sentences))
	for i, s := range sentences {
		out[i] = c.Correct(s)
	}
	return out
}

// edits1 returns every string one edit away from word: deletes,
// adjacent transpositions, substitutions and insertions over the
// model's alphabet. Operates on runes so multi-byte alphabets work.
func edits1(word string, alphabet map[rune]struct{}) []string {
	runes := []rune(word)
	edits := make([]string, 0, (2*len(alphabet)+2)*(len(runes)+1))

	// deletes
	for i := range runes {
		edits = append(edits, string(runes[:i])+string(runes[i+1:]))
	}
	// transpositions
	for i := 0; i+1 < len(runes); i++ {
		t := make([]rune, len(runes))
		copy(t, runes)
		t[i], t[i+1] = t[i+1], t[i]
		edits = append(edits, string(t))
	}
	// substitutions
	for i := range runes {
		for r := range alphabet {
			if r == runes[i] {
				continue
			}
			edits = append(edits, string(runes[:i])+string(r)+string(runes[i+1:]))
		}
	}
	// insertions
	for i := 0; i <= len(runes); i++ {
		for r := range alphabet {
			edits = append(edits, string(runes[:i])+string(r)+string(runes[i:]))
		}
	}
	return edits
}
