/*
Package server implements msgpack IPC for sentence scoring and
spell-correction ranking.

The protocol is request/response over stdin/stdout. Each message carries an
ID the client chooses and an op selecting the operation. Messages are
processed synchronously with timing info included in responses.

Score a word sequence:

	{"id": "req1", "op": "score", "w": ["the", "cat", "sat"]}
	{"id": "req1", "sc": -12.48, "t": 110}

Rank correction candidates for the word at position p:

	{"id": "req2", "op": "rank", "w": ["the", "zat", "sat"], "p": 1, "l": 8}
	{"id": "req2", "cn": [{"w": "cat", "sc": -12.48}, ...], "c": 8, "t": 310}

Complete a prefix against the trained vocabulary:

	{"id": "req3", "op": "complete", "x": "ca", "l": 10}

Health checks use op "health" and echo a status response. Unknown ops and
malformed requests produce an error response carrying the request ID.
*/
package server

// Request is the single incoming message shape; op selects the operation.
type Request struct {
	ID    string   `msgpack:"id"`
	Op    string   `msgpack:"op"`           // "score", "rank", "complete", "health"
	Words []string `msgpack:"w,omitempty"`  // score, rank
	Text  string   `msgpack:"x,omitempty"`  // score (raw text), complete (prefix)
	Pos   int      `msgpack:"p,omitempty"`  // rank: index of the word to correct
	Limit int      `msgpack:"l,omitempty"`  // rank, complete: max results
}

// ScoreResponse returns the log-likelihood of the scored sequence.
type ScoreResponse struct {
	ID        string  `msgpack:"id"`
	Score     float64 `msgpack:"sc"`
	TimeTaken int64   `msgpack:"t"`
}

// RankCandidate is one ranked correction hypothesis.
type RankCandidate struct {
	Word  string  `msgpack:"w"`
	Score float64 `msgpack:"sc"`
}

// RankResponse returns correction candidates, best first.
type RankResponse struct {
	ID         string          `msgpack:"id"`
	Candidates []RankCandidate `msgpack:"cn"`
	Count      int             `msgpack:"c"`
	TimeTaken  int64           `msgpack:"t"`
}

// CompleteSuggestion is one prefix completion with its unigram frequency.
type CompleteSuggestion struct {
	Word string `msgpack:"w"`
	Freq int    `msgpack:"f"`
}

// CompleteResponse returns prefix completions, most frequent first.
type CompleteResponse struct {
	ID          string               `msgpack:"id"`
	Suggestions []CompleteSuggestion `msgpack:"s"`
	Count       int                  `msgpack:"c"`
	TimeTaken   int64                `msgpack:"t"`
}

// StatusResponse answers health checks and the ready handshake.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse carries a request failure back to the client.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
