package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/spellserve/pkg/config"
	"github.com/bastiangx/spellserve/pkg/model"
	"github.com/bastiangx/spellserve/pkg/suggest"
)

// Server handles the IPC for scoring and correction ranking. The model is
// immutable for the server's lifetime, so request handling never locks.
type Server struct {
	model     *model.LangModel
	corrector *suggest.Corrector
	completer *suggest.Completer
	cfg       *config.Config
	dec       *msgpack.Decoder
	enc       *msgpack.Encoder
}

// NewServer creates a scoring server over stdin/stdout.
func NewServer(m *model.LangModel, cfg *config.Config) *Server {
	return newServer(m, cfg, os.Stdin, os.Stdout)
}

func newServer(m *model.LangModel, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		model:     m,
		corrector: suggest.NewCorrector(m, cfg.Server.MaxLimit),
		completer: suggest.NewCompleter(m),
		cfg:       cfg,
		dec:       msgpack.NewDecoder(r),
		enc:       msgpack.NewEncoder(w),
	}
}

// Start begins the request loop. Returns nil when the client closes stdin.
func (s *Server) Start() error {
	log.Debug("starting msgpack IPC")
	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if err == io.EOF {
				log.Debug("client disconnected")
				return nil
			}
			log.Errorf("decoding request: %v", err)
			s.send(ErrorResponse{Error: "malformed request", Code: 400})
			continue
		}
		s.handle(req)
	}
}

func (s *Server) handle(req Request) {
	switch req.Op {
	case "score":
		s.handleScore(req)
	case "rank":
		s.handleRank(req)
	case "complete":
		s.handleComplete(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.send(ErrorResponse{ID: req.ID, Error: fmt.Sprintf("unknown op: %s", req.Op), Code: 400})
	}
}

func (s *Server) handleScore(req Request) {
	if len(req.Words) == 0 && req.Text == "" {
		s.send(ErrorResponse{ID: req.ID, Error: "missing 'w' or 'x'", Code: 400})
		return
	}
	if len(req.Words) > s.cfg.Server.MaxSentenceLen {
		s.send(ErrorResponse{ID: req.ID, Error: "sentence too long", Code: 400})
		return
	}

	start := time.Now()
	var score float64
	if len(req.Words) > 0 {
		score = s.model.Score(req.Words)
	} else {
		// The raw-text path honors the same sentence cap as the word path.
		var words []string
		for _, sentence := range s.model.Tokenize(req.Text) {
			words = append(words, sentence...)
		}
		if len(words) > s.cfg.Server.MaxSentenceLen {
			s.send(ErrorResponse{ID: req.ID, Error: "sentence too long", Code: 400})
			return
		}
		score = s.model.Score(words)
	}
	s.send(ScoreResponse{
		ID:        req.ID,
		Score:     score,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleRank(req Request) {
	if len(req.Words) == 0 {
		s.send(ErrorResponse{ID: req.ID, Error: "missing 'w'", Code: 400})
		return
	}
	if req.Pos < 0 || req.Pos >= len(req.Words) {
		s.send(ErrorResponse{ID: req.ID, Error: "position out of range", Code: 400})
		return
	}
	limit := req.Limit
	if limit < 1 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	cands := s.corrector.Candidates(req.Words, req.Pos)
	if len(cands) > limit {
		cands = cands[:limit]
	}

	out := make([]RankCandidate, len(cands))
	for i, c := range cands {
		out[i] = RankCandidate{Word: c.Word, Score: c.Score}
	}
	s.send(RankResponse{
		ID:         req.ID,
		Candidates: out,
		Count:      len(out),
		TimeTaken:  time.Since(start).Microseconds(),
	})
}

func (s *Server) handleComplete(req Request) {
	if req.Text == "" {
		s.send(ErrorResponse{ID: req.ID, Error: "missing 'x'", Code: 400})
		return
	}
	limit := req.Limit
	if limit < 1 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	found := s.completer.Complete(req.Text, limit)
	out := make([]CompleteSuggestion, len(found))
	for i, f := range found {
		out[i] = CompleteSuggestion{Word: f.Word, Freq: f.Frequency}
	}
	s.send(CompleteResponse{
		ID:          req.ID,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}
