package lattice

import (
	"math"
	"reflect"
	"testing"

	"github.com/anath2/g2p/internal/textutil"
	"github.com/anath2/g2p/internal/trie"
)

func jaDict(t *testing.T) *trie.Trie {
	t.Helper()
	tr := trie.New()
	tr.Insert("私", 5000, "代名詞", "ワタクシ")
	tr.Insert("は", 8000, "助詞", "ワ")
	tr.Insert("学生", 4000, "名詞", "ガクセー")
	tr.Insert("です", 9000, "助動詞", "デス")
	tr.Insert("学", 100, "名詞", "ガク")
	tr.Insert("生", 100, "名詞", "セー")
	return tr
}

func TestTokenizeBasicSentence(t *testing.T) {
	tok := NewTokenizer(jaDict(t))
	got := tok.Tokenize("私は学生です")
	want := []string{"私", "は", "学生", "です"}
	if !reflect.DeepEqual(got.Texts(), want) {
		t.Fatalf("tokens = %v, want %v", got.Texts(), want)
	}
	tags := []string{"代名詞", "助詞", "名詞", "助動詞"}
	for i, tok := range got {
		if tok.Tag != tags[i] {
			t.Errorf("token %d tag = %q, want %q", i, tok.Tag, tags[i])
		}
	}
}

func TestTokenizeOffsetsAreContiguous(t *testing.T) {
	tok := NewTokenizer(jaDict(t))
	text := "私は学生です"
	got := tok.Tokenize(text)

	at := 0
	chars := 0
	for _, tk := range got {
		if tk.ByteStart != at {
			t.Fatalf("token %q starts at %d, want %d", tk.Text, tk.ByteStart, at)
		}
		at += tk.ByteLength
		chars += textutil.CharLength(tk.Text)
	}
	if at != len(text) {
		t.Fatalf("tokens cover %d bytes, want %d", at, len(text))
	}
	if chars != textutil.CharLength(text) {
		t.Fatalf("tokens cover %d chars, want %d", chars, textutil.CharLength(text))
	}
}

func TestTokenizeUnknownRunSplitsPerChar(t *testing.T) {
	tok := NewTokenizer(jaDict(t))
	got := tok.Tokenize("ヴァイオリン")
	joined := ""
	for _, tk := range got {
		if tk.Tag != "UNK" {
			t.Errorf("token %q tag = %q, want UNK", tk.Text, tk.Tag)
		}
		joined += tk.Text
	}
	if joined != "ヴァイオリン" {
		t.Fatalf("unk tokens reassemble to %q", joined)
	}
}

func TestViterbiOptimality(t *testing.T) {
	tok := NewTokenizer(jaDict(t))
	text := "私は学生です"
	l := tok.Build(text)
	if !l.Viterbi() {
		t.Fatal("no path")
	}
	best := l.TotalCost()

	// Exhaustively enumerate every BOS→EOS path and confirm Viterbi's cost
	// is the minimum.
	min := math.Inf(1)
	var walk func(pos int, prevTag string, cost float64)
	walk = func(pos int, prevTag string, cost float64) {
		if pos == l.textLen {
			if cost < min {
				min = cost
			}
			return
		}
		for _, n := range l.NodesAt(pos) {
			edge := 0.0
			if prevTag != "" {
				edge = TransitionCost(prevTag, n.Tag)
			}
			walk(pos+n.CharLen, n.Tag, cost+n.NodeCost+edge)
		}
	}
	walk(0, "", 0)

	if math.Abs(best-min) > 1e-9 {
		t.Fatalf("viterbi cost %v != exhaustive minimum %v", best, min)
	}

	// Round trip: decoding again yields the same cost.
	l2 := tok.Build(text)
	if !l2.Viterbi() {
		t.Fatal("no path on second build")
	}
	if math.Abs(l2.TotalCost()-best) > 1e-9 {
		t.Fatalf("second run cost %v != %v", l2.TotalCost(), best)
	}
}

func TestLatticeRejectsOverlongNode(t *testing.T) {
	l := NewLattice(2)
	if l.AddNode(Node{Surface: "xxx", Pos: 1, CharLen: 2}) {
		t.Fatal("node crossing the end of the text must be rejected")
	}
	if !l.AddNode(Node{Surface: "x", Pos: 1, CharLen: 1}) {
		t.Fatal("in-range node rejected")
	}
}

func TestTransitionCostTable(t *testing.T) {
	cases := []struct {
		left, right string
		want        float64
	}{
		{"動詞", "助動詞", -10},
		{"動詞", "助詞", -8},
		{"助動詞", "助動詞", -12},
		{"助動詞", "助詞", -9},
		{"名詞", "助詞", -3},
		{"形容詞", "名詞", -4},
		{"接頭辞", "名詞", -2},
		{"名詞", "接尾辞", -2},
		{"接尾辞", "助動詞", -7},
		{"名詞", "名詞", 3},
		{"UNK", "名詞", 0},
		{"", "名詞", 0},
		{"感動詞", "感動詞", 0},
	}
	for _, c := range cases {
		if got := TransitionCost(c.left, c.right); got != c.want {
			t.Errorf("TransitionCost(%q, %q) = %v, want %v", c.left, c.right, got, c.want)
		}
	}
}
