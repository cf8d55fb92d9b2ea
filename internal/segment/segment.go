// Package segment implements the Chinese word segmenter: a dictionary DAG
// scored by dynamic programming, with a BMES HMM pass that recovers words
// the dictionary does not know.
package segment

import (
	"math"

	"github.com/anath2/g2p/internal/hmm"
	"github.com/anath2/g2p/internal/textutil"
	"github.com/anath2/g2p/internal/token"
	"github.com/anath2/g2p/internal/trie"
)

// singleCharLogFreq floors the score of characters absent from the
// dictionary so a fallback edge never dominates a real word.
var singleCharLogFreq = math.Log(0.5)

// Segmenter cuts Chinese text against an immutable word trie. It is safe
// for concurrent use; all per-call state is stack-local.
type Segmenter struct {
	words  *trie.Trie
	model  *hmm.Model
	useHMM bool
}

// New returns a segmenter over words. model may be nil, which disables the
// HMM pass regardless of useHMM.
func New(words *trie.Trie, model *hmm.Model, useHMM bool) *Segmenter {
	return &Segmenter{words: words, model: model, useHMM: useHMM && model != nil}
}

// BuildDAG returns, for each character position, the set of character
// positions a dictionary word (or the single-character fallback) can reach.
// offsets must be textutil.ByteOffsets(text).
func (s *Segmenter) BuildDAG(text string, offsets []int) [][]int {
	n := len(offsets) - 1
	dag := make([][]int, n)
	for i := 0; i < n; i++ {
		for _, m := range s.words.MatchAll(text, offsets[i]) {
			dag[i] = append(dag[i], i+textutil.CharLength(m.Word))
		}
		if len(dag[i]) == 0 {
			dag[i] = append(dag[i], i+1)
		}
	}
	return dag
}

// logFreq scores the word spanning characters [i, j).
func (s *Segmenter) logFreq(text string, offsets []int, i, j int) float64 {
	word := text[offsets[i]:offsets[j]]
	if m, ok := s.words.Lookup(word); ok && m.Freq > 0 {
		return math.Log(m.Freq)
	}
	return singleCharLogFreq
}

// route runs the backward max-log-probability DP over the DAG. route[i] is
// the best next position from i; ties prefer the longer word.
func (s *Segmenter) route(text string, offsets []int, dag [][]int) ([]int, []float64) {
	n := len(dag)
	dp := make([]float64, n+1)
	route := make([]int, n)
	for i := n - 1; i >= 0; i-- {
		best := math.Inf(-1)
		bestNext := i + 1
		for _, j := range dag[i] {
			score := s.logFreq(text, offsets, i, j) + dp[j]
			if score >= best {
				best = score
				bestNext = j
			}
		}
		dp[i] = best
		route[i] = bestNext
	}
	return route, dp
}

// Cut segments text. The concatenation of the returned token texts equals
// text byte-for-byte.
func (s *Segmenter) Cut(text string) token.List {
	if text == "" {
		return nil
	}
	offsets := textutil.ByteOffsets(text)
	dag := s.BuildDAG(text, offsets)
	route, dp := s.route(text, offsets, dag)

	var out token.List
	for i := 0; i < len(route); {
		j := route[i]
		out = append(out, token.Token{
			Text:       text[offsets[i]:offsets[j]],
			ByteStart:  offsets[i],
			ByteLength: offsets[j] - offsets[i],
			Score:      dp[i] - dp[j],
		})
		i = j
	}
	if s.useHMM {
		out = s.recutUnknownRuns(out)
	}
	return out
}

// recutUnknownRuns coalesces runs of consecutive single-character Chinese
// tokens and lets the HMM re-segment them, recovering multi-character words
// the dictionary missed.
func (s *Segmenter) recutUnknownRuns(tokens token.List) token.List {
	isSingleHan := func(t token.Token) bool {
		runes := []rune(t.Text)
		return len(runes) == 1 && textutil.IsHan(runes[0])
	}

	out := make(token.List, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if !isSingleHan(tokens[i]) {
			out = append(out, tokens[i])
			i++
			continue
		}
		j := i
		run := ""
		for j < len(tokens) && isSingleHan(tokens[j]) {
			run += tokens[j].Text
			j++
		}
		if j-i < 2 {
			out = append(out, tokens[i])
		} else {
			out = append(out, s.model.Cut(run, tokens[i].ByteStart)...)
		}
		i = j
	}
	return out
}
