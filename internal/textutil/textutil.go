// Package textutil provides UTF-8 iteration helpers and the character-class
// predicates shared by the segmenters and the language detector.
//
// All position indices handed around the engine are byte offsets; character
// counts are rune counts. Ill-formed input never aborts processing:
// DecodeChar reports a bad byte as utf8.RuneError with size 0, and iteration
// advances one byte to resynchronize.
package textutil

import "unicode/utf8"

// DecodeChar decodes the first character of s. For an empty string or an
// invalid sequence it returns (utf8.RuneError, 0) and the caller is expected
// to advance a single byte.
func DecodeChar(s string) (rune, int) {
	if s == "" {
		return utf8.RuneError, 0
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size == 1 {
		return utf8.RuneError, 0
	}
	return r, size
}

// CharLength counts characters, advancing one byte past any invalid sequence.
func CharLength(s string) int {
	n := 0
	for i := 0; i < len(s); {
		_, size := DecodeChar(s[i:])
		if size == 0 {
			i++
		} else {
			i += size
		}
		n++
	}
	return n
}

// Chars splits s into single-character strings, one byte per invalid sequence.
func Chars(s string) []string {
	out := make([]string, 0, len(s)/3+1)
	for i := 0; i < len(s); {
		_, size := DecodeChar(s[i:])
		if size == 0 {
			size = 1
		}
		out = append(out, s[i:i+size])
		i += size
	}
	return out
}

// ByteOffsets returns the byte offset of every character boundary plus a
// final entry equal to len(s). offsets[i] is where character i starts.
func ByteOffsets(s string) []int {
	offsets := make([]int, 0, len(s)/3+2)
	for i := 0; i < len(s); {
		offsets = append(offsets, i)
		_, size := DecodeChar(s[i:])
		if size == 0 {
			size = 1
		}
		i += size
	}
	offsets = append(offsets, len(s))
	return offsets
}

// IsHiragana reports whether r is in the hiragana block.
func IsHiragana(r rune) bool {
	return r >= 0x3040 && r <= 0x309F
}

// IsKatakana reports whether r is katakana, including the phonetic extensions.
func IsKatakana(r rune) bool {
	return (r >= 0x30A0 && r <= 0x30FF) || (r >= 0x31F0 && r <= 0x31FF)
}

// IsKana reports whether r is hiragana or katakana.
func IsKana(r rune) bool {
	return IsHiragana(r) || IsKatakana(r)
}

// IsHan reports whether r is a CJK ideograph (basic block, extensions A/B,
// and the compatibility block).
func IsHan(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2A6DF) ||
		(r >= 0xF900 && r <= 0xFAFF)
}

// IsLatinLetter reports whether r is an ASCII letter.
func IsLatinLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// IsHangul reports whether r is a Hangul syllable or jamo.
func IsHangul(r rune) bool {
	return (r >= 0xAC00 && r <= 0xD7AF) || (r >= 0x1100 && r <= 0x11FF)
}

// IsASCIIDigit reports whether r is 0-9.
func IsASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsPunct covers the general and CJK punctuation blocks plus the common
// ASCII sentence punctuation.
func IsPunct(r rune) bool {
	if (r >= 0x2000 && r <= 0x206F) || (r >= 0x3000 && r <= 0x303F) {
		return true
	}
	switch r {
	case '.', ',', '!', '?', ';', ':':
		return true
	}
	return false
}

// IsQuenyaSpecial reports whether r is one of the marked letters that only
// Quenya orthography uses among the engine's Latin-script languages.
func IsQuenyaSpecial(r rune) bool {
	switch r {
	case 'ñ', 'þ', 'á', 'é', 'í', 'ó', 'ú', 'ë':
		return true
	}
	return false
}

// KatakanaToHiragana maps katakana in the U+30A1..U+30F6 range onto the
// corresponding hiragana (offset 0x60); everything else passes through.
func KatakanaToHiragana(s string) string {
	out := make([]rune, 0, len(s)/3+1)
	for _, r := range s {
		if r >= 0x30A1 && r <= 0x30F6 {
			r -= 0x60
		}
		out = append(out, r)
	}
	return string(out)
}
