// Package detect identifies the language of a text with a layered strategy:
// charset scan first, then feature words, then bigrams, then a CJK fallback.
package detect

import (
	"strings"

	"github.com/anath2/g2p/internal/textutil"
)

// Language is the detector's verdict and the engine's routing key.
type Language int

const (
	Unknown Language = iota
	English
	Chinese
	Japanese
	Korean
	Vietnamese
	Quenya
)

// Code returns the BCP-ish code used at the API boundary.
func (l Language) Code() string {
	switch l {
	case English:
		return "en"
	case Chinese:
		return "zh"
	case Japanese:
		return "ja"
	case Korean:
		return "ko"
	case Vietnamese:
		return "vi"
	case Quenya:
		return "qya"
	}
	return ""
}

// ParseCode maps a boundary language code (including aliases) to a Language.
// Empty and unrecognized codes mean auto-detect.
func ParseCode(code string) Language {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "en":
		return English
	case "zh", "cn":
		return Chinese
	case "ja", "jp":
		return Japanese
	case "ko":
		return Korean
	case "vi":
		return Vietnamese
	case "qya", "quenya":
		return Quenya
	}
	return Unknown
}

// CharsetStats counts the script classes seen in a text.
type CharsetStats struct {
	Hiragana    int
	Katakana    int
	Kanji       int
	Latin       int
	Digit       int
	Hangul      int
	Punctuation int
	Total       int
}

// Result carries the verdict, a confidence in [0, 1], and the charset stats
// that produced it.
type Result struct {
	Language   Language
	Confidence float64
	Charset    CharsetStats
}

type featureWord struct {
	word   string
	weight float64
}

// High-frequency function words and affixes per language. Weights reward the
// unambiguous ones.
var jaFeatures = []featureWord{
	{"です", 10}, {"ます", 10}, {"ました", 10}, {"でした", 10}, {"ません", 9},
	{"は", 8}, {"が", 8}, {"を", 8}, {"に", 7}, {"の", 7},
	{"と", 6}, {"で", 6}, {"から", 6}, {"まで", 6}, {"より", 5},
	{"て", 6}, {"た", 5}, {"だ", 5}, {"ない", 6},
	{"都", 4}, {"道", 4}, {"府", 4}, {"県", 4},
	{"市", 3}, {"区", 3}, {"町", 3}, {"村", 3},
}

var zhFeatures = []featureWord{
	{"的", 10}, {"了", 8}, {"着", 7}, {"过", 7},
	{"和", 6}, {"与", 5}, {"或", 5}, {"但", 6}, {"而", 6}, {"且", 5},
	{"是", 9}, {"在", 7}, {"有", 7}, {"为", 6}, {"就", 6},
	{"都", 5}, {"也", 6}, {"不", 6}, {"很", 5}, {"更", 5},
	{"对", 5}, {"向", 4}, {"从", 5}, {"到", 5}, {"被", 5}, {"把", 5},
}

var enFeatures = []featureWord{
	{"the", 10}, {"and", 8}, {"of", 8}, {"to", 7}, {"in", 7},
	{"is", 6}, {"you", 6}, {"that", 6}, {"it", 5}, {"for", 5},
	{"with", 5}, {"on", 4}, {"have", 5}, {"be", 5}, {"ing", 4},
}

var jaBigrams = []string{
	"です", "ます", "した", "して", "こと", "もの", "よう", "たい",
	"ない", "れる", "られる", "という", "であ", "での", "には",
	"ており", "として", "について", "において", "による",
	"ている", "ていた", "ていく", "ていて", "でいる",
}

var zhBigrams = []string{
	"的是", "的人", "的时", "的话", "的地", "的情", "的事",
	"了一", "了解", "了吗",
	"在中", "在这", "在那", "在于", "在一",
	"有的", "有一", "有人", "有关", "有些",
	"是一", "是在", "是的", "是个", "是否",
	"而且", "而是", "而不", "但是", "可以",
	"这个", "这些", "那个", "那些", "什么",
}

var enBigrams = []string{
	"of the", "in the", "to the", "and the", "for the",
	"is a", "it is", "that is", "this is", "there is",
	"have been", "has been", "will be", "can be",
	"do not", "does not", "did not", "will not",
}

// jaSuffixes are the markers that separate Japanese from Chinese in pure
// kanji text: administrative-division suffixes and polite verb endings.
var jaSuffixes = []string{
	"都", "道", "府", "県", "市", "区", "町", "村",
	"です", "ます", "ました", "ません",
}

// AnalyzeCharset counts the script classes of text, one increment per
// character; invalid bytes advance the scan without counting a class.
func AnalyzeCharset(text string) CharsetStats {
	var stats CharsetStats
	for i := 0; i < len(text); {
		r, size := textutil.DecodeChar(text[i:])
		if size == 0 {
			i++
			continue
		}
		switch {
		case textutil.IsHiragana(r):
			stats.Hiragana++
		case textutil.IsKatakana(r):
			stats.Katakana++
		case textutil.IsHan(r):
			stats.Kanji++
		case textutil.IsLatinLetter(r):
			stats.Latin++
		case textutil.IsASCIIDigit(r):
			stats.Digit++
		case textutil.IsHangul(r):
			stats.Hangul++
		case textutil.IsPunct(r):
			stats.Punctuation++
		}
		stats.Total++
		i += size
	}
	return stats
}

// featureScore sums the weights of every non-overlapping feature-word match.
func featureScore(text string, features []featureWord) float64 {
	score := 0.0
	for _, f := range features {
		for at := 0; ; {
			idx := strings.Index(text[at:], f.word)
			if idx < 0 {
				break
			}
			score += f.weight
			at += idx + len(f.word)
		}
	}
	return score
}

// bigramScore counts how many curated bigrams occur in text.
func bigramScore(text string, bigrams []string) float64 {
	found := 0
	for _, b := range bigrams {
		if strings.Contains(text, b) {
			found++
		}
	}
	return float64(found)
}

func hasJapaneseFeatures(text string) bool {
	for _, s := range jaSuffixes {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

func countQuenyaSpecials(text string) int {
	n := 0
	for _, r := range text {
		if textutil.IsQuenyaSpecial(r) {
			n++
		}
	}
	return n
}

// Detect runs the layered detection. Inputs shorter than two characters are
// Unknown with zero confidence.
func Detect(text string) Result {
	result := Result{Language: Unknown}
	if textutil.CharLength(text) < 2 {
		return result
	}

	stats := AnalyzeCharset(text)
	result.Charset = stats
	if stats.Total == 0 {
		return result
	}

	// Layer 1: charset rules.
	if stats.Hiragana > 0 || stats.Katakana > 0 {
		result.Language = Japanese
		result.Confidence = 0.95
		return result
	}

	latinRatio := float64(stats.Latin) / float64(stats.Total)
	if countQuenyaSpecials(text) > 0 && latinRatio > 0.5 {
		result.Language = Quenya
		result.Confidence = 0.8
		return result
	}
	if latinRatio > 0.7 {
		result.Language = English
		result.Confidence = latinRatio
		return result
	}
	if stats.Hangul > 0 {
		result.Language = Korean
		result.Confidence = 0.9
		return result
	}
	if stats.Kanji > 0 {
		if hasJapaneseFeatures(text) {
			result.Language = Japanese
			result.Confidence = 0.6
		} else {
			result.Language = Chinese
			result.Confidence = 0.55
		}
		return result
	}

	// Layer 2: feature words. A tie sends the decision to the next layer.
	if lang, ok := pickBest(
		featureScore(text, jaFeatures),
		featureScore(text, zhFeatures),
		featureScore(text, enFeatures),
		1.0,
	); ok {
		result.Language = lang
		result.Confidence = 0.75
		return result
	}

	// Layer 3: bigrams.
	if lang, ok := pickBest(
		bigramScore(text, jaBigrams),
		bigramScore(text, zhBigrams),
		bigramScore(text, enBigrams),
		1.0,
	); ok {
		result.Language = lang
		result.Confidence = 0.65
		return result
	}

	return result
}

// pickBest returns the language with the strictly highest score, requiring
// at least threshold. Ties and weak scores report no decision.
func pickBest(ja, zh, en, threshold float64) (Language, bool) {
	best, lang := ja, Japanese
	tied := false
	for _, cand := range []struct {
		score float64
		lang  Language
	}{{zh, Chinese}, {en, English}} {
		switch {
		case cand.score > best:
			best, lang, tied = cand.score, cand.lang, false
		case cand.score == best:
			tied = true
		}
	}
	if best < threshold || tied {
		return Unknown, false
	}
	return lang, true
}
