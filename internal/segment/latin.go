package segment

import (
	"unicode"

	"github.com/anath2/g2p/internal/textutil"
	"github.com/anath2/g2p/internal/token"
)

func isASCIIPunct(r rune) bool {
	return (r >= 33 && r <= 47) || (r >= 58 && r <= 64) ||
		(r >= 91 && r <= 96) || (r >= 123 && r <= 126)
}

// EnglishTokens splits text on whitespace and punctuation, preserving byte
// offsets. Punctuation becomes its own token only when keepPunct is set.
func EnglishTokens(text string, keepPunct bool) token.List {
	var out token.List
	start := -1

	flush := func(end int) {
		if start >= 0 && end > start {
			out = append(out, token.Token{
				Text:       text[start:end],
				ByteStart:  start,
				ByteLength: end - start,
			})
		}
		start = -1
	}

	for i := 0; i < len(text); {
		r, size := textutil.DecodeChar(text[i:])
		if size == 0 {
			size = 1
		}
		switch {
		case unicode.IsSpace(r):
			flush(i)
		case isASCIIPunct(r):
			flush(i)
			if keepPunct {
				out = append(out, token.Token{
					Text:       text[i : i+size],
					ByteStart:  i,
					ByteLength: size,
				})
			}
		default:
			if start < 0 {
				start = i
			}
		}
		i += size
	}
	flush(len(text))
	return out
}

// Quenya token classes.
const (
	QyaWord  = "WORD"
	QyaNum   = "NUM"
	QyaPunct = "PUNCT"
)

func isQyaLetter(r rune) bool {
	return unicode.IsLetter(r)
}

// QuenyaTokens splits text into word, number, and punctuation tokens. Words
// may contain apostrophes and the marked letters of Quenya orthography.
func QuenyaTokens(text string) token.List {
	var out token.List
	for i := 0; i < len(text); {
		r, size := textutil.DecodeChar(text[i:])
		if size == 0 {
			i++
			continue
		}
		switch {
		case unicode.IsSpace(r):
			i += size
		case unicode.IsDigit(r):
			j := i
			for j < len(text) {
				r2, s2 := textutil.DecodeChar(text[j:])
				if s2 == 0 || !unicode.IsDigit(r2) {
					break
				}
				j += s2
			}
			out = append(out, token.Token{Text: text[i:j], Tag: QyaNum, ByteStart: i, ByteLength: j - i})
			i = j
		case isQyaLetter(r):
			j := i
			for j < len(text) {
				r2, s2 := textutil.DecodeChar(text[j:])
				if s2 == 0 || !(isQyaLetter(r2) || r2 == '\'') {
					break
				}
				j += s2
			}
			out = append(out, token.Token{Text: text[i:j], Tag: QyaWord, ByteStart: i, ByteLength: j - i})
			i = j
		case unicode.IsPunct(r) || isASCIIPunct(r):
			out = append(out, token.Token{Text: text[i : i+size], Tag: QyaPunct, ByteStart: i, ByteLength: size})
			i += size
		default:
			i += size
		}
	}
	return out
}
