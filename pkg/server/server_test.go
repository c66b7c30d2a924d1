package server

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/spellserve/pkg/config"
	"github.com/bastiangx/spellserve/pkg/model"
)

const testCorpus = "the cat sat on the mat . the dog sat . a cat ran .\n"

func trainTestModel(t *testing.T) *model.LangModel {
	t.Helper()
	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "corpus.txt")
	alphabetPath := filepath.Join(dir, "alphabet.txt")
	if err := os.WriteFile(corpusPath, []byte(testCorpus), 0644); err != nil {
		t.Fatalf("writing corpus: %v", err)
	}
	if err := os.WriteFile(alphabetPath, []byte("abcdefghijklmnopqrstuvwxyz"), 0644); err != nil {
		t.Fatalf("writing alphabet: %v", err)
	}
	m := model.New()
	if err := m.Train(corpusPath, alphabetPath); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	return m
}

// runRequests drives a full server loop over in-memory pipes and returns
// the decoded responses, with the ready handshake consumed and checked.
func runRequests(t *testing.T, m *model.LangModel, cfg *config.Config, reqs []Request) []map[string]interface{} {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range reqs {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}

	srv := newServer(m, cfg, &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start returned %v, want nil on EOF", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready map[string]interface{}
	if err := dec.Decode(&ready); err != nil {
		t.Fatalf("decoding ready handshake: %v", err)
	}
	if ready["status"] != "ready" {
		t.Fatalf("handshake status = %v, want ready", ready["status"])
	}

	var resps []map[string]interface{}
	for {
		var r map[string]interface{}
		if err := dec.Decode(&r); err != nil {
			break
		}
		resps = append(resps, r)
	}
	if len(resps) != len(reqs) {
		t.Fatalf("got %d responses for %d requests", len(resps), len(reqs))
	}
	return resps
}

func TestScoreOp(t *testing.T) {
	m := trainTestModel(t)
	resps := runRequests(t, m, config.DefaultConfig(), []Request{
		{ID: "r1", Op: "score", Words: []string{"the", "cat", "sat"}},
		{ID: "r2", Op: "score", Text: "the cat sat"},
	})

	want := m.Score([]string{"the", "cat", "sat"})
	for i, r := range resps {
		if _, failed := r["e"]; failed {
			t.Fatalf("response %d is an error: %v", i, r["e"])
		}
		if got, ok := r["sc"].(float64); !ok || got != want {
			t.Errorf("response %d score = %v, want %v", i, r["sc"], want)
		}
	}
}

// both input forms honor the configured sentence cap
func TestScoreSentenceCap(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxSentenceLen = 4

	m := trainTestModel(t)
	resps := runRequests(t, m, cfg, []Request{
		{ID: "r1", Op: "score", Words: []string{"the", "cat", "sat", "on", "the", "mat"}},
		{ID: "r2", Op: "score", Text: "the cat sat on the mat"},
		{ID: "r3", Op: "score", Text: "the cat sat"},
	})

	for i, r := range resps[:2] {
		if r["e"] != "sentence too long" {
			t.Errorf("response %d = %v, want sentence-too-long error", i, r)
		}
	}
	if _, failed := resps[2]["e"]; failed {
		t.Errorf("in-cap text rejected: %v", resps[2])
	}
}

func TestRankOp(t *testing.T) {
	m := trainTestModel(t)
	resps := runRequests(t, m, config.DefaultConfig(), []Request{
		{ID: "r1", Op: "rank", Words: []string{"the", "zat", "sat"}, Pos: 1, Limit: 4},
		{ID: "r2", Op: "rank", Words: []string{"the"}, Pos: 5},
	})

	cands, ok := resps[0]["cn"].([]interface{})
	if !ok || len(cands) == 0 {
		t.Fatalf("rank returned no candidates: %v", resps[0])
	}
	if len(cands) > 4 {
		t.Errorf("limit ignored: %d candidates", len(cands))
	}
	if resps[1]["e"] != "position out of range" {
		t.Errorf("out-of-range pos = %v, want error", resps[1])
	}
}

func TestUnknownOpAndHealth(t *testing.T) {
	m := trainTestModel(t)
	resps := runRequests(t, m, config.DefaultConfig(), []Request{
		{ID: "r1", Op: "health"},
		{ID: "r2", Op: "frobnicate"},
	})

	if resps[0]["status"] != "ok" {
		t.Errorf("health = %v, want ok", resps[0])
	}
	if _, failed := resps[1]["e"]; !failed {
		t.Errorf("unknown op accepted: %v", resps[1])
	}
}
