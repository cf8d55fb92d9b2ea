package phoneme

import (
	"strings"
	"unicode"

	"github.com/anath2/g2p/internal/textutil"
	"github.com/anath2/g2p/internal/token"
)

// Quenya orthography is regular enough for pure letter-cluster rules: no
// dictionary, longest match first, stress computed from the syllable count.

var qyaDiphthongs = []struct{ grapheme, ipa string }{
	{"ai", "aj"}, {"au", "au"}, {"iu", "iu"},
	{"eu", "ɛu"}, {"oi", "ɔj"}, {"ui", "uj"},
}

var qyaLongVowels = []struct{ grapheme, ipa string }{
	{"á", "aː"}, {"é", "eː"}, {"í", "iː"}, {"ó", "oː"}, {"ú", "uː"},
}

var qyaShortVowels = []struct{ grapheme, ipa string }{
	{"a", "a"}, {"e", "ɛ"}, {"ë", "ɛ"}, {"i", "i"}, {"o", "ɔ"}, {"u", "u"},
}

// Clusters before single consonants: voiceless sonorants, ht/pt, the
// palatalized series, then qu/ng/th.
var qyaClusters = []struct{ grapheme, ipa string }{
	{"hl", "l̥"}, {"hr", "r̥"}, {"hw", "ʍ"}, {"hy", "j̊"},
	{"ht", "xt"}, {"pt", "φt"},
	{"ty", "tj"}, {"ny", "nj"}, {"ly", "lj"}, {"ry", "rj"}, {"sy", "sj"},
	{"qu", "kw"}, {"ng", "ŋɡ"}, {"th", "θ"},
}

var qyaConsonants = []struct{ grapheme, ipa string }{
	{"ñ", "ŋ"}, {"þ", "θ"},
	{"r", "r"}, {"z", "z"}, {"c", "k"}, {"k", "k"}, {"s", "s"},
	{"b", "b"}, {"d", "d"}, {"f", "f"}, {"g", "ɡ"}, {"h", "h"},
	{"j", "j"}, {"l", "l"}, {"m", "m"}, {"n", "n"}, {"p", "p"},
	{"t", "t"}, {"v", "v"}, {"w", "w"}, {"y", "j"},
}

func matchPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}

func matchTable(s string, table []struct{ grapheme, ipa string }) (string, int) {
	for _, e := range table {
		if matchPrefixFold(s, e.grapheme) {
			return e.ipa, len(e.grapheme)
		}
	}
	return "", 0
}

// QuenyaSyllables counts the vowel and diphthong matches of a word, which is
// its syllable count.
func QuenyaSyllables(word string) int {
	n := 0
	for i := 0; i < len(word); {
		if _, size := matchTable(word[i:], qyaDiphthongs); size > 0 {
			n++
			i += size
			continue
		}
		if _, size := matchTable(word[i:], qyaLongVowels); size > 0 {
			n++
			i += size
			continue
		}
		if _, size := matchTable(word[i:], qyaShortVowels); size > 0 {
			n++
			i += size
			continue
		}
		if _, size := matchTable(word[i:], qyaClusters); size > 0 {
			i += size
			continue
		}
		_, size := textutil.DecodeChar(word[i:])
		if size == 0 {
			size = 1
		}
		i += size
	}
	return n
}

// QuenyaStressIndex returns the 0-based syllable carrying primary stress:
// the first syllable for words of up to three syllables, the antepenult
// otherwise. Words without vowels report -1.
func QuenyaStressIndex(word string) int {
	n := QuenyaSyllables(word)
	if n <= 0 {
		return -1
	}
	if n <= 3 {
		return 0
	}
	return n - 3
}

// QuenyaWordToIPA converts one word to space-separated IPA units with the
// stress marker placed before the stressed syllable's onset.
func QuenyaWordToIPA(word string) string {
	stressAt := QuenyaStressIndex(word)
	var units []string
	// Consonant units since the last vowel; the stress marker attaches in
	// front of them when their syllable turns out to be the stressed one.
	onsetStart := 0
	syllable := 0

	appendVowel := func(ipa string) {
		if syllable == stressAt {
			if onsetStart < len(units) {
				units[onsetStart] = "ˈ" + units[onsetStart]
			} else {
				ipa = "ˈ" + ipa
			}
		}
		units = append(units, ipa)
		syllable++
		onsetStart = len(units)
	}

	for i := 0; i < len(word); {
		r, size := textutil.DecodeChar(word[i:])
		if size == 0 {
			i++
			continue
		}
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			i += size
			continue
		}

		if ipa, n := matchTable(word[i:], qyaDiphthongs); n > 0 {
			appendVowel(ipa)
			i += n
			continue
		}
		if ipa, n := matchTable(word[i:], qyaLongVowels); n > 0 {
			appendVowel(ipa)
			i += n
			continue
		}
		if ipa, n := matchTable(word[i:], qyaShortVowels); n > 0 {
			appendVowel(ipa)
			i += n
			continue
		}
		if ipa, n := matchTable(word[i:], qyaClusters); n > 0 {
			units = append(units, ipa)
			i += n
			continue
		}
		if ipa, n := matchTable(word[i:], qyaConsonants); n > 0 {
			units = append(units, ipa)
			i += n
			continue
		}
		i += size
	}
	return strings.Join(units, " ")
}

// Quenya maps tokenized Quenya to IPA. Word tokens go through the letter
// rules; numbers and punctuation pass through unconverted.
type Quenya struct{}

// Convert fills in Phonemes for every word token in place.
func (Quenya) Convert(tokens token.List) {
	for i := range tokens {
		runes := []rune(tokens[i].Text)
		if len(runes) == 0 || !isQuenyaLetter(runes[0]) {
			continue
		}
		tokens[i].Phonemes = QuenyaWordToIPA(tokens[i].Text)
	}
}

func isQuenyaLetter(r rune) bool {
	return unicode.IsLetter(r)
}
