package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
)

// modelMagic frames the persisted blob at both ends. The trailing copy
// catches truncated files that a leading check alone would accept.
const modelMagic uint64 = 0x73_70_6C_6C_6D_64_6C_31 // "spllmdl1"

// modelVersion is the persisted format version. Load refuses anything else.
const modelVersion uint16 = 1

// Save writes the trained model to path. Training twice on the same corpus
// and alphabet produces byte-identical output: the vocabulary is written in
// id order and the perfect hash state is deterministic.
func (m *LangModel) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating model file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := m.SaveTo(w); err != nil {
		return err
	}
	return w.Flush()
}

// SaveTo writes the model blob to w: leading magic, version, body,
// trailing magic.
func (m *LangModel) SaveTo(w io.Writer) error {
	if err := writeUint64(w, modelMagic); err != nil {
		return err
	}
	if err := writeUint16(w, modelVersion); err != nil {
		return err
	}
	if err := m.saveBody(w); err != nil {
		return err
	}
	return writeUint64(w, modelMagic)
}

func (m *LangModel) saveBody(w io.Writer) error {
	if err := writeFloat64(w, m.k); err != nil {
		return err
	}
	if err := writeUint64(w, m.totalWords); err != nil {
		return err
	}
	if err := writeUint64(w, m.vocabSize); err != nil {
		return err
	}

	// The alphabet travels with the model so a loaded model can tokenize
	// and generate correction candidates without the original alphabet file.
	// Sorted for byte-identical output across saves.
	runes := make([]rune, 0, len(m.tok.GetAlphabet()))
	for r := range m.tok.GetAlphabet() {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	if err := writeUint32(w, uint32(len(runes))); err != nil {
		return err
	}
	for _, r := range runes {
		if err := writeUint32(w, uint32(r)); err != nil {
			return err
		}
	}

	// Vocabulary in id order; the position of each word is its id, which
	// reconstructs both directions of the table.
	if err := writeUint32(w, uint32(m.vocab.size())); err != nil {
		return err
	}
	for _, word := range m.vocab.idToWord {
		if err := writeString(w, word); err != nil {
			return err
		}
	}

	if err := writeUint32(w, uint32(len(m.store.buckets))); err != nil {
		return err
	}
	for _, b := range m.store.buckets {
		if err := writeUint32(w, b.fp); err != nil {
			return err
		}
		if err := writeUint32(w, b.count); err != nil {
			return err
		}
	}

	return m.store.ph.Save(w)
}

// Load reads a model previously written by Save. A leading magic or version
// mismatch fails before any state is touched; a trailing magic mismatch
// clears the half-populated model before returning.
func (m *LangModel) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening model file: %w", err)
	}
	defer file.Close()
	return m.LoadFrom(bufio.NewReader(file))
}

// LoadFrom reads the model blob from r.
func (m *LangModel) LoadFrom(r io.Reader) error {
	magic, err := readUint64(r)
	if err != nil {
		return fmt.Errorf("reading magic: %w", err)
	}
	if magic != modelMagic {
		return fmt.Errorf("bad magic %#x: not a model file", magic)
	}
	version, err := readUint16(r)
	if err != nil {
		return fmt.Errorf("reading version: %w", err)
	}
	if version != modelVersion {
		return fmt.Errorf("unsupported model version %d (want %d)", version, modelVersion)
	}

	if err := m.loadBody(r); err != nil {
		m.Clear()
		return err
	}

	magic, err = readUint64(r)
	if err != nil || magic != modelMagic {
		m.Clear()
		return fmt.Errorf("trailing magic check failed: model file truncated or corrupt")
	}

	log.Debugf("model loaded: vocab=%d buckets=%d totalWords=%d",
		m.vocab.size(), len(m.store.buckets), m.totalWords)
	return nil
}

func (m *LangModel) loadBody(r io.Reader) error {
	var err error
	if m.k, err = readFloat64(r); err != nil {
		return fmt.Errorf("reading smoothing constant: %w", err)
	}
	if m.totalWords, err = readUint64(r); err != nil {
		return fmt.Errorf("reading total words: %w", err)
	}
	if m.vocabSize, err = readUint64(r); err != nil {
		return fmt.Errorf("reading vocab size: %w", err)
	}

	runeCount, err := readUint32(r)
	if err != nil {
		return fmt.Errorf("reading alphabet size: %w", err)
	}
	runes := make([]rune, runeCount)
	for i := range runes {
		v, err := readUint32(r)
		if err != nil {
			return fmt.Errorf("reading alphabet rune %d: %w", i, err)
		}
		runes[i] = rune(v)
	}
	m.tok.SetAlphabet(runes)

	wordCount, err := readUint32(r)
	if err != nil {
		return fmt.Errorf("reading vocabulary count: %w", err)
	}
	m.vocab.reset()
	m.vocab.idToWord = make([]string, 0, wordCount)
	for i := uint32(0); i < wordCount; i++ {
		word, err := readString(r)
		if err != nil {
			return fmt.Errorf("reading vocabulary word %d: %w", i, err)
		}
		m.vocab.wordToID[word] = WordID(i)
		m.vocab.idToWord = append(m.vocab.idToWord, word)
	}

	bucketCount, err := readUint32(r)
	if err != nil {
		return fmt.Errorf("reading bucket count: %w", err)
	}
	m.store.buckets = make([]bucket, bucketCount)
	for i := range m.store.buckets {
		if m.store.buckets[i].fp, err = readUint32(r); err != nil {
			return fmt.Errorf("reading bucket %d: %w", i, err)
		}
		if m.store.buckets[i].count, err = readUint32(r); err != nil {
			return fmt.Errorf("reading bucket %d: %w", i, err)
		}
	}

	if err := m.store.ph.Load(r); err != nil {
		return fmt.Errorf("reading perfect hash state: %w", err)
	}
	return nil
}
