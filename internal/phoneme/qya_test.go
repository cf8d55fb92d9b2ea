package phoneme

import (
	"strings"
	"testing"

	"github.com/anath2/g2p/internal/segment"
)

func TestQuenyaSyllables(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"Elen", 2},
		{"síla", 2},
		{"lúmenn", 2},
		{"omentielvo", 5},
		{"Silmarillion", 5},
		{"ai", 1},
		{"aurë", 2},
		{"", 0},
		{"hl", 0},
	}
	for _, c := range cases {
		if got := QuenyaSyllables(c.word); got != c.want {
			t.Errorf("QuenyaSyllables(%q) = %d, want %d", c.word, got, c.want)
		}
	}
}

func TestQuenyaStressIndex(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"Elen", 0},         // 2 syllables: first
		{"omentielvo", 2},   // 5 syllables: antepenult
		{"Silmarillion", 2}, // 5 syllables: antepenult
		{"ai", 0},
		{"hl", -1},
	}
	for _, c := range cases {
		if got := QuenyaStressIndex(c.word); got != c.want {
			t.Errorf("QuenyaStressIndex(%q) = %d, want %d", c.word, got, c.want)
		}
	}
}

func TestQuenyaWordToIPA(t *testing.T) {
	cases := []struct{ word, want string }{
		{"qu", "kw"},
		{"th", "θ"},
		{"hw", "ʍ"},
		{"ñ", "ŋ"},
		{"á", "ˈaː"},
		{"ai", "ˈaj"},
		{"Elen", "ˈɛ l ɛ n"},
		{"aurë", "ˈau r ɛ"},
	}
	for _, c := range cases {
		if got := QuenyaWordToIPA(c.word); got != c.want {
			t.Errorf("QuenyaWordToIPA(%q) = %q, want %q", c.word, got, c.want)
		}
	}
}

func TestQuenyaStressOnAntepenultOnset(t *testing.T) {
	// Silmarillion: Sil-ma-ri-lli-on, stress before the antepenult's onset r.
	got := QuenyaWordToIPA("Silmarillion")
	if !strings.Contains(got, "ˈr i") {
		t.Fatalf("stress not on the ri syllable onset: %q", got)
	}
	if strings.Count(got, "ˈ") != 1 {
		t.Fatalf("expected exactly one stress marker: %q", got)
	}
}

func TestQuenyaClusterPriority(t *testing.T) {
	// ty must map as a palatalized unit, not t + y.
	got := QuenyaWordToIPA("tyelpe")
	if !strings.HasPrefix(got, "ˈtj") {
		t.Fatalf("tyelpe = %q, want tj onset", got)
	}
	// hl is the voiceless lateral; stress lands in front of it.
	if got := QuenyaWordToIPA("hlócë"); !strings.HasPrefix(got, "ˈl̥") {
		t.Fatalf("hlócë = %q, want stressed l̥ onset", got)
	}
}

func TestQuenyaConvertSkipsNonWords(t *testing.T) {
	tokens := segment.QuenyaTokens("Elen síla 3 !")
	Quenya{}.Convert(tokens)
	if tokens[0].Phonemes == "" || tokens[1].Phonemes == "" {
		t.Fatal("word tokens must get phonemes")
	}
	for _, tok := range tokens[2:] {
		if tok.Phonemes != "" {
			t.Fatalf("non-word token %q got phonemes %q", tok.Text, tok.Phonemes)
		}
	}
}
