// Package phoneme converts segmented tokens into IPA phoneme strings for
// each supported language.
package phoneme

import (
	"strings"

	"github.com/anath2/g2p/internal/dict"
	"github.com/anath2/g2p/internal/textutil"
	"github.com/anath2/g2p/internal/token"
)

// Mandarin initials, longest first so zh/ch/sh win over z/c/s.
var zhInitials = []struct{ pinyin, ipa string }{
	{"zh", "ʈ͡ʂ"}, {"ch", "ʈ͡ʂʰ"}, {"sh", "ʂ"},
	{"b", "p"}, {"p", "pʰ"}, {"m", "m"}, {"f", "f"},
	{"d", "t"}, {"t", "tʰ"}, {"n", "n"}, {"l", "l"},
	{"g", "k"}, {"k", "kʰ"}, {"h", "x"},
	{"j", "tɕ"}, {"q", "tɕʰ"}, {"x", "ɕ"},
	{"r", "ʐ"}, {"z", "ts"}, {"c", "tsʰ"}, {"s", "s"},
}

var zhFinals = map[string]string{
	"a": "ɑ", "o": "o", "e": "ɤ", "i": "i", "u": "u", "ü": "y", "v": "y",
	"ai": "aɪ", "ei": "eɪ", "ui": "ueɪ", "ao": "ɑʊ", "ou": "oʊ", "iu": "iʊ",
	"ie": "iɛ", "üe": "yɛ", "ve": "yɛ", "er": "ɚ",
	"an": "an", "en": "ən", "in": "in", "un": "un", "ün": "yn", "vn": "yn",
	"ang": "ɑŋ", "eng": "əŋ", "ing": "iŋ", "ong": "ʊŋ",
	"ia": "iɑ", "iao": "iɑʊ", "ian": "iɛn", "iang": "iɑŋ", "iong": "iʊŋ",
	"ua": "uɑ", "uo": "uo", "uai": "uaɪ", "uan": "uan", "uang": "uɑŋ",
}

// Tone contour markers appended to each syllable; neutral tone is unmarked.
var zhToneMarks = [6]string{"", "→", "↗", "↓", "↘", ""}

// Diacritic vowels and the (base letter, tone) they encode. ü tones map to
// the v spelling so the finals table needs only one entry per nucleus.
var zhToneVowels = map[rune]struct {
	base string
	tone int
}{
	'ā': {"a", 1}, 'á': {"a", 2}, 'ǎ': {"a", 3}, 'à': {"a", 4},
	'ē': {"e", 1}, 'é': {"e", 2}, 'ě': {"e", 3}, 'è': {"e", 4},
	'ī': {"i", 1}, 'í': {"i", 2}, 'ǐ': {"i", 3}, 'ì': {"i", 4},
	'ō': {"o", 1}, 'ó': {"o", 2}, 'ǒ': {"o", 3}, 'ò': {"o", 4},
	'ū': {"u", 1}, 'ú': {"u", 2}, 'ǔ': {"u", 3}, 'ù': {"u", 4},
	'ǖ': {"v", 1}, 'ǘ': {"v", 2}, 'ǚ': {"v", 3}, 'ǜ': {"v", 4},
}

// SplitTone strips the tone from a pinyin syllable in either numeric (ni3)
// or diacritic (nǐ) form. Tone 0 means no tone was marked; 5 is neutral.
func SplitTone(pinyin string) (base string, tone int) {
	if pinyin == "" {
		return "", 0
	}
	last := pinyin[len(pinyin)-1]
	if last >= '0' && last <= '5' {
		return pinyin[:len(pinyin)-1], int(last - '0')
	}

	var sb strings.Builder
	for _, r := range pinyin {
		if tv, ok := zhToneVowels[r]; ok {
			sb.WriteString(tv.base)
			tone = tv.tone
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String(), tone
}

// SplitInitialFinal separates a toneless pinyin syllable into initial and
// final by longest initial match.
func SplitInitialFinal(base string) (initial, final string) {
	for _, in := range zhInitials {
		if strings.HasPrefix(base, in.pinyin) {
			return in.pinyin, base[len(in.pinyin):]
		}
	}
	return "", base
}

// ComposeNumeric rebuilds the numeric form of a syllable from its parts.
func ComposeNumeric(initial, final string, tone int) string {
	s := initial + final
	if tone >= 1 && tone <= 5 {
		s += string(rune('0' + tone))
	}
	return s
}

// PinyinToIPA converts one pinyin syllable to IPA with a tone marker. A
// syllable whose final has no table entry comes back unchanged, matching the
// never-fail policy for user text.
func PinyinToIPA(pinyin string) string {
	base, tone := SplitTone(pinyin)
	initial, final := SplitInitialFinal(base)

	finalIPA, ok := zhFinals[final]
	if !ok {
		return pinyin
	}
	initialIPA := ""
	if initial != "" {
		for _, in := range zhInitials {
			if in.pinyin == initial {
				initialIPA = in.ipa
				break
			}
		}
	}
	mark := ""
	if tone >= 0 && tone <= 5 {
		mark = zhToneMarks[tone]
	}
	return initialIPA + finalIPA + mark
}

// ZhOptions gates the post-processing passes. Both transformations are
// declared extension points; the reference passes leave phonemes unchanged.
type ZhOptions struct {
	ToneSandhi bool
	Erhua      bool
}

// Chinese maps segmented Chinese tokens to IPA. The phrase dictionary takes
// priority over per-character lookup so that known polyphonic phrases read
// correctly; otherwise each character falls back to its first listed reading.
type Chinese struct {
	Chars   *dict.ZhPinyin
	Phrases *dict.ZhPhrase
	Options ZhOptions
}

// Convert fills in Phonemes for every token in place.
func (c *Chinese) Convert(tokens token.List) {
	for i := range tokens {
		tokens[i].Phonemes = c.convertToken(tokens[i].Text)
	}
	if c.Options.ToneSandhi {
		applyToneSandhi(tokens)
	}
	if c.Options.Erhua {
		applyErhua(tokens)
	}
}

func (c *Chinese) convertToken(text string) string {
	syllables := c.pinyinFor(text)
	if len(syllables) == 0 {
		return ""
	}
	ipa := make([]string, 0, len(syllables))
	for _, syl := range syllables {
		ipa = append(ipa, PinyinToIPA(syl))
	}
	return strings.Join(ipa, " ")
}

// pinyinFor resolves the pinyin syllables of a token: phrase dictionary
// first, then per-character first readings.
func (c *Chinese) pinyinFor(text string) []string {
	if pinyin, ok := c.Phrases.Lookup(text); ok {
		return strings.Fields(pinyin)
	}
	var syllables []string
	for i := 0; i < len(text); {
		r, size := textutil.DecodeChar(text[i:])
		if size == 0 {
			i++
			continue
		}
		if p, ok := c.Chars.First(r); ok {
			syllables = append(syllables, p)
		}
		i += size
	}
	return syllables
}

// applyToneSandhi is the tone-sandhi rewrite hook. Whether third-third
// sequences should shift (3+3 → 2+3) is an open question in the source
// material, so the pass intentionally rewrites nothing.
func applyToneSandhi(token.List) {}

// applyErhua is the erhua-fusion rewrite hook; intentionally a no-op for the
// same reason.
func applyErhua(token.List) {}
