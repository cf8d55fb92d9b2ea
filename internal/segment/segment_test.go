package segment

import (
	"reflect"
	"testing"

	"github.com/anath2/g2p/internal/hmm"
	"github.com/anath2/g2p/internal/trie"
)

func zhWords(t *testing.T, entries map[string]float64) *trie.Trie {
	t.Helper()
	tr := trie.New()
	for word, freq := range entries {
		tr.Insert(word, freq, "", "")
	}
	return tr
}

func TestCutPrefersDictionaryWords(t *testing.T) {
	words := zhWords(t, map[string]float64{
		"你好": 5000, "世界": 8000, "你": 20, "好": 30, "世": 5, "界": 5,
	})
	seg := New(words, nil, false)

	got := seg.Cut("你好世界").Texts()
	want := []string{"你好", "世界"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Cut = %v, want %v", got, want)
	}
}

func TestCutFallsBackToSingleChars(t *testing.T) {
	words := zhWords(t, map[string]float64{"你好": 50})
	seg := New(words, nil, false)

	got := seg.Cut("你好吗").Texts()
	want := []string{"你好", "吗"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Cut = %v, want %v", got, want)
	}
}

func TestCutConcatenationInvariant(t *testing.T) {
	words := zhWords(t, map[string]float64{"今天": 10, "天气": 8, "很好": 6})
	seg := New(words, nil, false)
	for _, text := range []string{"今天天气很好", "abc今天", "今abc天气", "", "标点。测试"} {
		tokens := seg.Cut(text)
		joined := ""
		at := 0
		for _, tok := range tokens {
			if tok.ByteStart != at {
				t.Fatalf("%q: token %q at %d, want %d", text, tok.Text, tok.ByteStart, at)
			}
			at += tok.ByteLength
			joined += tok.Text
		}
		if joined != text {
			t.Fatalf("%q reassembles to %q", text, joined)
		}
	}
}

func TestCutTiePrefersLongerWord(t *testing.T) {
	// Equal scores: the longer word must win the tie.
	words := zhWords(t, map[string]float64{"中国": 1, "中": 1, "国": 1})
	seg := New(words, nil, false)
	got := seg.Cut("中国").Texts()
	if !reflect.DeepEqual(got, []string{"中国"}) {
		t.Fatalf("Cut = %v, want [中国]", got)
	}
}

func TestBuildDAGShape(t *testing.T) {
	words := zhWords(t, map[string]float64{"今天": 10, "今": 3, "天气": 8})
	seg := New(words, nil, false)
	text := "今天气"
	dag := seg.BuildDAG(text, offsetsOf(text))
	want := [][]int{
		{1, 2}, // 今, 今天
		{3},    // 天气
		{3},    // fallback 气
	}
	if !reflect.DeepEqual(dag, want) {
		t.Fatalf("dag = %v, want %v", dag, want)
	}
}

func offsetsOf(text string) []int {
	offsets := []int{}
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

func TestHMMRecutsUnknownRuns(t *testing.T) {
	words := zhWords(t, map[string]float64{"去": 10})
	model := hmm.Jieba()
	model.Emit[hmm.B]['深'] = -1
	model.Emit[hmm.E]['圳'] = -1
	seg := New(words, model, true)

	got := seg.Cut("去深圳").Texts()
	want := []string{"去", "深圳"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Cut = %v, want %v", got, want)
	}
}

func TestHMMDisabledKeepsSingles(t *testing.T) {
	words := zhWords(t, map[string]float64{"去": 10})
	seg := New(words, nil, false)
	got := seg.Cut("去深圳").Texts()
	want := []string{"去", "深", "圳"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Cut = %v, want %v", got, want)
	}
}

func TestEnglishTokens(t *testing.T) {
	got := EnglishTokens("hello, world", false)
	if !reflect.DeepEqual(got.Texts(), []string{"hello", "world"}) {
		t.Fatalf("tokens = %v", got.Texts())
	}
	if got[0].ByteStart != 0 || got[1].ByteStart != 7 {
		t.Fatalf("offsets = %d, %d", got[0].ByteStart, got[1].ByteStart)
	}

	withPunct := EnglishTokens("hello, world", true)
	if !reflect.DeepEqual(withPunct.Texts(), []string{"hello", ",", "world"}) {
		t.Fatalf("tokens with punct = %v", withPunct.Texts())
	}
}

func TestQuenyaTokens(t *testing.T) {
	got := QuenyaTokens("Ai! laurië lantar 3 lassi.")
	texts := got.Texts()
	want := []string{"Ai", "!", "laurië", "lantar", "3", "lassi", "."}
	if !reflect.DeepEqual(texts, want) {
		t.Fatalf("tokens = %v, want %v", texts, want)
	}
	if got[0].Tag != QyaWord || got[1].Tag != QyaPunct || got[4].Tag != QyaNum {
		t.Fatalf("tags = %v %v %v", got[0].Tag, got[1].Tag, got[4].Tag)
	}
}
