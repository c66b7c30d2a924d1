package tokenizer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func loadTestAlphabet(t *testing.T, chars string) *Tokenizer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alphabet.txt")
	if err := os.WriteFile(path, []byte(chars), 0644); err != nil {
		t.Fatalf("writing alphabet file: %v", err)
	}
	tok := New()
	if err := tok.LoadAlphabet(path); err != nil {
		t.Fatalf("LoadAlphabet failed: %v", err)
	}
	return tok
}

func TestProcess(t *testing.T) {
	tok := loadTestAlphabet(t, "abcdefghijklmnopqrstuvwxyz")

	testCases := []struct {
		input       string
		expected    [][]string
		description string
	}{
		{"the cat sat", [][]string{{"the", "cat", "sat"}}, "single sentence"},
		{"the cat sat . the dog sat .", [][]string{{"the", "cat", "sat"}, {"the", "dog", "sat"}}, "period splits sentences"},
		{"look! a dog? yes", [][]string{{"look"}, {"a", "dog"}, {"yes"}}, "exclamation and question marks"},
		{"one\ntwo", [][]string{{"one"}, {"two"}}, "newline splits sentences"},
		{"it's fine", [][]string{{"it", "s", "fine"}}, "non-alphabet rune splits words"},
		{"  ...  ", nil, "no words at all"},
		{"", nil, "empty input"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := tok.Process(tc.input)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Process(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestLoadAlphabetEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alphabet.txt")
	if err := os.WriteFile(path, []byte(" \n\t"), 0644); err != nil {
		t.Fatalf("writing alphabet file: %v", err)
	}
	if err := New().LoadAlphabet(path); err == nil {
		t.Fatal("LoadAlphabet accepted a whitespace-only alphabet")
	}
}

func TestLoadAlphabetMissing(t *testing.T) {
	if err := New().LoadAlphabet(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("LoadAlphabet accepted a missing file")
	}
}

func TestSetAlphabet(t *testing.T) {
	tok := New()
	tok.SetAlphabet([]rune("abc"))
	want := [][]string{{"ab", "ca"}}
	if got := tok.Process("ab ca"); !reflect.DeepEqual(got, want) {
		t.Errorf("Process after SetAlphabet = %v, want %v", got, want)
	}
}

// An alphabet file that lists separators (space, period) must not turn
// them into word characters: punctuation still closes the sentence and
// never becomes a token.
func TestAlphabetExcludesSeparators(t *testing.T) {
	tok := loadTestAlphabet(t, "abcdefghijklmnopqrstuvwxyz .")

	got := tok.Process("the cat sat . the dog sat .")
	want := [][]string{{"the", "cat", "sat"}, {"the", "dog", "sat"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Process = %v, want %v", got, want)
	}
	for _, sentence := range got {
		for _, w := range sentence {
			if w == "." {
				t.Fatal("sentence punctuation interned as a word token")
			}
		}
	}

	tok2 := New()
	tok2.SetAlphabet([]rune("ab.!\n "))
	if got := tok2.Process("ab.ba"); !reflect.DeepEqual(got, [][]string{{"ab"}, {"ba"}}) {
		t.Errorf("SetAlphabet kept a sentence break as a word character: %v", got)
	}
}

func TestClear(t *testing.T) {
	tok := loadTestAlphabet(t, "abc")
	if len(tok.GetAlphabet()) != 3 {
		t.Fatalf("alphabet size = %d, want 3", len(tok.GetAlphabet()))
	}
	tok.Clear()
	if len(tok.GetAlphabet()) != 0 {
		t.Fatalf("alphabet not empty after Clear: %d entries", len(tok.GetAlphabet()))
	}
	if got := tok.Process("abc"); got != nil {
		t.Errorf("Process after Clear = %v, want nil", got)
	}
}
