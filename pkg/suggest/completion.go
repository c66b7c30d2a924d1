package suggest

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/spellserve/pkg/model"
)

// Suggestion is one prefix completion, ranked by trained unigram count.
type Suggestion struct {
	Word      string
	Frequency int
}

// Completer serves prefix completions over a trained model's vocabulary.
// The trie is built once from the immutable model, so Complete is safe for
// concurrent use.
type Completer struct {
	trie       *patricia.Trie
	totalWords int
}

// NewCompleter indexes the model's vocabulary into a patricia trie, with
// each word's unigram count as its rank.
func NewCompleter(m *model.LangModel) *Completer {
	c := &Completer{trie: patricia.NewTrie()}
	for id := model.WordID(0); uint64(id) < m.VocabSize(); id++ {
		word := m.WordByID(id)
		if word == "" {
			continue
		}
		c.trie.Insert(patricia.Prefix(word), int(m.WordCount(id)))
		c.totalWords++
	}
	log.Debugf("completion trie built: %d words", c.totalWords)
	return c
}

// Complete returns up to limit vocabulary words starting with prefix,
// most frequent first. The exact prefix itself is skipped.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	var suggestions []Suggestion
	err := c.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == prefix {
			return nil
		}
		freq, ok := item.(int)
		if !ok {
			log.Errorf("unexpected trie item type %T for word %s", item, word)
			return nil
		}
		suggestions = append(suggestions, Suggestion{Word: word, Frequency: freq})
		return nil
	})
	if err != nil {
		log.Errorf("visiting trie subtree: %v", err)
		return nil
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Frequency > suggestions[j].Frequency
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// Size returns the number of indexed words.
func (c *Completer) Size() int {
	return c.totalWords
}
