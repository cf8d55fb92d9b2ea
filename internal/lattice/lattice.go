// Package lattice implements the Japanese tokenizer: a position-indexed
// candidate lattice decoded by Viterbi with POS transition costs.
//
// Nodes live in a flat slice; per-position start/end lists hold indices into
// it. BOS and EOS are virtual: edges from BOS and into EOS cost nothing and
// exist implicitly for nodes touching the text boundaries.
package lattice

import (
	"math"

	"github.com/anath2/g2p/internal/textutil"
	"github.com/anath2/g2p/internal/token"
	"github.com/anath2/g2p/internal/trie"
)

// unkNodeCost penalizes single-character fallback nodes so dictionary words
// win whenever one covers the span.
const unkNodeCost = 20.0

// lengthBonus counteracts unigram scoring's tendency to over-split: each
// character beyond the first discounts the node cost.
const lengthBonus = 10.0

// defaultFreq stands in for entries loaded without a usable frequency.
const defaultFreq = 1000.0

// Node is one segmentation candidate starting at a character position.
type Node struct {
	Surface   string
	Tag       string
	Reading   string
	Pos       int // character position
	CharLen   int
	ByteStart int
	ByteLen   int
	NodeCost  float64

	total float64
	prev  int32 // node index, bosNode for BOS
}

const (
	bosNode int32 = -1
	noNode  int32 = -2
)

// Lattice holds the candidates for one text. It is per-call state and not
// safe for sharing across goroutines.
type Lattice struct {
	textLen  int // characters
	nodes    []Node
	startAt  [][]int32 // node indices by start position
	endAt    [][]int32 // node indices by end position
	eosTotal float64
	eosPrev  int32
}

// NewLattice returns an empty lattice for a text of textLen characters.
func NewLattice(textLen int) *Lattice {
	return &Lattice{
		textLen: textLen,
		startAt: make([][]int32, textLen),
		endAt:   make([][]int32, textLen+1),
		eosPrev: noNode,
	}
}

// AddNode inserts a candidate. Nodes whose span would cross the end of the
// text are rejected.
func (l *Lattice) AddNode(n Node) bool {
	if n.Pos < 0 || n.CharLen <= 0 || n.Pos+n.CharLen > l.textLen {
		return false
	}
	n.total = math.Inf(1)
	n.prev = noNode
	idx := int32(len(l.nodes))
	l.nodes = append(l.nodes, n)
	l.startAt[n.Pos] = append(l.startAt[n.Pos], idx)
	l.endAt[n.Pos+n.CharLen] = append(l.endAt[n.Pos+n.CharLen], idx)
	return true
}

// NodesAt returns the candidates starting at a character position.
func (l *Lattice) NodesAt(pos int) []Node {
	if pos < 0 || pos >= l.textLen {
		return nil
	}
	out := make([]Node, 0, len(l.startAt[pos]))
	for _, idx := range l.startAt[pos] {
		out = append(out, l.nodes[idx])
	}
	return out
}

// Viterbi relaxes every node in position order and then the EOS. Ties keep
// the earlier-inserted predecessor. Returns false when no path connects BOS
// to EOS.
func (l *Lattice) Viterbi() bool {
	for pos := 0; pos < l.textLen; pos++ {
		for _, idx := range l.startAt[pos] {
			n := &l.nodes[idx]
			if pos == 0 {
				n.total = n.NodeCost
				n.prev = bosNode
				continue
			}
			for _, prevIdx := range l.endAt[pos] {
				p := &l.nodes[prevIdx]
				if math.IsInf(p.total, 1) {
					continue
				}
				cost := p.total + n.NodeCost + TransitionCost(p.Tag, n.Tag)
				if cost < n.total {
					n.total = cost
					n.prev = prevIdx
				}
			}
		}
	}

	l.eosTotal = math.Inf(1)
	l.eosPrev = noNode
	for _, idx := range l.endAt[l.textLen] {
		n := &l.nodes[idx]
		if n.total < l.eosTotal {
			l.eosTotal = n.total
			l.eosPrev = idx
		}
	}
	return l.eosPrev != noNode
}

// TotalCost returns the cost of the best path after Viterbi.
func (l *Lattice) TotalCost() float64 { return l.eosTotal }

// Backtrack walks prev pointers from EOS to BOS and returns the path in
// source order.
func (l *Lattice) Backtrack() []Node {
	var path []Node
	for idx := l.eosPrev; idx >= 0; idx = l.nodes[idx].prev {
		path = append(path, l.nodes[idx])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Tokenizer segments Japanese text against an immutable pronunciation trie.
type Tokenizer struct {
	dict *trie.Trie
}

// NewTokenizer returns a tokenizer over dict.
func NewTokenizer(dict *trie.Trie) *Tokenizer {
	return &Tokenizer{dict: dict}
}

// Build populates a lattice for text: every dictionary match becomes a node
// costed by frequency and length; positions with no match get a single
// character UNK node.
func (t *Tokenizer) Build(text string) *Lattice {
	offsets := textutil.ByteOffsets(text)
	n := len(offsets) - 1
	l := NewLattice(n)

	for pos := 0; pos < n; pos++ {
		matches := t.dict.MatchAll(text, offsets[pos])
		for _, m := range matches {
			charLen := textutil.CharLength(m.Word)
			freq := m.Freq
			if freq <= 0 {
				freq = defaultFreq
			}
			l.AddNode(Node{
				Surface:   m.Word,
				Tag:       m.Tag,
				Reading:   m.Reading,
				Pos:       pos,
				CharLen:   charLen,
				ByteStart: offsets[pos],
				ByteLen:   m.ByteLength,
				NodeCost:  -math.Log(freq) - float64(charLen-1)*lengthBonus,
			})
		}
		if len(matches) == 0 {
			l.AddNode(Node{
				Surface:   text[offsets[pos]:offsets[pos+1]],
				Tag:       "UNK",
				Pos:       pos,
				CharLen:   1,
				ByteStart: offsets[pos],
				ByteLen:   offsets[pos+1] - offsets[pos],
				NodeCost:  unkNodeCost,
			})
		}
	}
	return l
}

// Tokenize runs Build, Viterbi, and Backtrack, returning the best
// segmentation. An empty text or an unreachable EOS yields an empty list.
func (t *Tokenizer) Tokenize(text string) token.List {
	if text == "" {
		return nil
	}
	l := t.Build(text)
	if !l.Viterbi() {
		return nil
	}
	path := l.Backtrack()
	out := make(token.List, 0, len(path))
	for _, n := range path {
		out = append(out, token.Token{
			Text:       n.Surface,
			Tag:        n.Tag,
			ByteStart:  n.ByteStart,
			ByteLength: n.ByteLen,
			Score:      n.total,
		})
	}
	return out
}
