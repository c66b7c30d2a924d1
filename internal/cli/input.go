// Package cli handles cmd line input for DBG and testing the corrector and scorer
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/spellserve/internal/logger"
	"github.com/bastiangx/spellserve/pkg/model"
	"github.com/bastiangx/spellserve/pkg/suggest"
)

// InputHandler processes sentences from stdin, printing their score and
// ranked corrections for every word the model does not recognize.
type InputHandler struct {
	model        *model.LangModel
	corrector    *suggest.Corrector
	suggestLimit int
	maxBytes     int
	out          *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(m *model.LangModel, limit, maxBytes int) *InputHandler {
	return &InputHandler{
		model:        m,
		corrector:    suggest.NewCorrector(m, limit),
		suggestLimit: limit,
		maxBytes:     maxBytes,
		out:          logger.NewPlain(),
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin, and scores it.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	h.out.Print("SpellServe CLI")
	h.out.Print("type a sentence and press Enter to score and correct it (Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput scores one line of text and prints corrections for unknown words.
func (h *InputHandler) handleInput(line string) {
	if len(line) > h.maxBytes {
		log.Errorf("Input too long: %d bytes", len(line))
		return
	}

	var words []string
	for _, sentence := range h.model.Tokenize(line) {
		words = append(words, sentence...)
	}
	if len(words) == 0 {
		log.Warnf("No words found in input: '%s'", line)
		return
	}

	h.out.Printf("score: %.4f", h.model.Score(words))

	for i, w := range words {
		if h.model.LookupID(w) != model.UnknownWordID {
			continue
		}
		cands := h.corrector.Candidates(words, i)
		if len(cands) == 0 {
			continue
		}
		h.out.Printf("unknown word '%s', candidates:", w)
		for j, c := range cands {
			clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", c.Word)
			h.out.Printf("%2d. %-30s (score: %10.4f)", j+1, clWord, c.Score)
		}
	}
}
