// Package trie implements the rune-keyed prefix tree backing dictionary
// lookup and segmentation.
//
// Nodes live in one flat slice and refer to each other by index, so a
// dictionary of millions of entries is a single allocation ladder rather
// than a pointer graph. Child lookup is a linear scan of a small slice;
// fan-out stays low in practice and the scan is cache-friendly.
package trie

import (
	"github.com/anath2/g2p/internal/textutil"
)

type nodeIndex int32

const nilNode nodeIndex = -1

type child struct {
	r   rune
	idx nodeIndex
}

type node struct {
	children []child
	isWord   bool
	freq     float64
	tag      string
	reading  string
	word     string
}

// Trie is a prefix tree over code points. The zero value is not usable;
// call New.
type Trie struct {
	nodes []node
	words int
}

// Match describes one dictionary hit produced by MatchAll or MatchLongest.
type Match struct {
	Word       string
	ByteLength int
	Freq       float64
	Tag        string
	Reading    string
}

// New returns an empty trie containing only the root node.
func New() *Trie {
	t := &Trie{nodes: make([]node, 1, 64)}
	return t
}

// Len reports the number of stored words.
func (t *Trie) Len() int { return t.words }

func (t *Trie) childOf(n nodeIndex, r rune) nodeIndex {
	for _, c := range t.nodes[n].children {
		if c.r == r {
			return c.idx
		}
	}
	return nilNode
}

func (t *Trie) ensureChild(n nodeIndex, r rune) nodeIndex {
	if idx := t.childOf(n, r); idx != nilNode {
		return idx
	}
	t.nodes = append(t.nodes, node{})
	idx := nodeIndex(len(t.nodes) - 1)
	t.nodes[n].children = append(t.nodes[n].children, child{r: r, idx: idx})
	return idx
}

// Insert stores word with its payload, creating the path as needed.
// Inserting an existing word replaces its payload.
func (t *Trie) Insert(word string, freq float64, tag, reading string) {
	if word == "" {
		return
	}
	cur := nodeIndex(0)
	for _, r := range word {
		cur = t.ensureChild(cur, r)
	}
	n := &t.nodes[cur]
	if !n.isWord {
		t.words++
	}
	n.isWord = true
	n.freq = freq
	n.tag = tag
	n.reading = reading
	n.word = word
}

// Lookup walks the full word and reports a hit only if the terminal node is
// a stored entry.
func (t *Trie) Lookup(word string) (Match, bool) {
	cur := nodeIndex(0)
	for _, r := range word {
		cur = t.childOf(cur, r)
		if cur == nilNode {
			return Match{}, false
		}
	}
	n := &t.nodes[cur]
	if !n.isWord {
		return Match{}, false
	}
	return Match{Word: n.word, ByteLength: len(word), Freq: n.freq, Tag: n.tag, Reading: n.reading}, true
}

// Remove unmarks word as an entry. Nodes are left in place; the arena only
// grows, which keeps indices stable for concurrent readers created after
// load. Returns whether the word was present.
func (t *Trie) Remove(word string) bool {
	cur := nodeIndex(0)
	for _, r := range word {
		cur = t.childOf(cur, r)
		if cur == nilNode {
			return false
		}
	}
	n := &t.nodes[cur]
	if !n.isWord {
		return false
	}
	n.isWord = false
	n.freq = 0
	n.tag = ""
	n.reading = ""
	n.word = ""
	t.words--
	return true
}

// MatchAll returns every stored entry that is a prefix of text[start:], in
// order of increasing length.
func (t *Trie) MatchAll(text string, start int) []Match {
	var out []Match
	cur := nodeIndex(0)
	i := start
	for i < len(text) {
		r, size := textutil.DecodeChar(text[i:])
		if size == 0 {
			break
		}
		cur = t.childOf(cur, r)
		if cur == nilNode {
			break
		}
		i += size
		n := &t.nodes[cur]
		if n.isWord {
			out = append(out, Match{
				Word:       n.word,
				ByteLength: i - start,
				Freq:       n.freq,
				Tag:        n.tag,
				Reading:    n.reading,
			})
		}
	}
	return out
}

// MatchLongest returns the longest entry that prefixes text[start:].
func (t *Trie) MatchLongest(text string, start int) (Match, bool) {
	matches := t.MatchAll(text, start)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[len(matches)-1], true
}
