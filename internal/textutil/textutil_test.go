package textutil

import (
	"reflect"
	"testing"
)

func TestCharLength(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"你好", 2},
		{"私は", 2},
		{"a你b", 3},
		{"a\xffb", 3}, // invalid byte counts as one character
		{"\xff\xfe", 2},
	}
	for _, c := range cases {
		if got := CharLength(c.text); got != c.want {
			t.Errorf("CharLength(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestByteOffsetsCoverWholeString(t *testing.T) {
	cases := []string{"", "abc", "你好世界", "aｂ\xffc", "ニャン"}
	for _, text := range cases {
		offsets := ByteOffsets(text)
		if offsets[len(offsets)-1] != len(text) {
			t.Errorf("ByteOffsets(%q) last = %d, want %d", text, offsets[len(offsets)-1], len(text))
		}
		if len(offsets)-1 != CharLength(text) {
			t.Errorf("ByteOffsets(%q) count = %d, want %d", text, len(offsets)-1, CharLength(text))
		}
	}
}

func TestCharsRoundTrip(t *testing.T) {
	for _, text := range []string{"hello", "你好 world", "a\xff b", "長音符ー"} {
		joined := ""
		for _, c := range Chars(text) {
			joined += c
		}
		if joined != text {
			t.Errorf("Chars(%q) does not reassemble: %q", text, joined)
		}
	}
}

func TestKatakanaToHiragana(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ガクセー", "がくせー"}, // ー is outside the mapped range and passes through
		{"ワタクシ", "わたくし"},
		{"ひらがな", "ひらがな"},
		{"mixedカナ", "mixedかな"},
	}
	for _, c := range cases {
		if got := KatakanaToHiragana(c.in); got != c.want {
			t.Errorf("KatakanaToHiragana(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCharClasses(t *testing.T) {
	if !IsHiragana('あ') || IsHiragana('ア') {
		t.Error("hiragana classification wrong")
	}
	if !IsKatakana('ア') || !IsKatakana('ー') || IsKatakana('あ') {
		t.Error("katakana classification wrong")
	}
	if !IsHan('中') || IsHan('a') {
		t.Error("han classification wrong")
	}
	if !IsHangul('한') || IsHangul('中') {
		t.Error("hangul classification wrong")
	}
	if !IsQuenyaSpecial('ñ') || !IsQuenyaSpecial('á') || IsQuenyaSpecial('a') {
		t.Error("quenya special classification wrong")
	}
}

func TestCharsSliceShape(t *testing.T) {
	got := Chars("中a")
	if !reflect.DeepEqual(got, []string{"中", "a"}) {
		t.Fatalf("Chars = %v", got)
	}
}
