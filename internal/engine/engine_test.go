package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anath2/g2p/internal/config"
	"github.com/anath2/g2p/internal/detect"
	"github.com/google/go-cmp/cmp"
)

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"en/us_dict.tsv": "hello\thəˈloʊ\nworld\twˈɝld\n",
		"zh/pinyin_dict.tsv": "你\tnǐ\n好\thǎo\n世\tshì\n界\tjiè\n" +
			"长\tzhǎng,cháng\n城\tchéng\n去\tqù\n",
		"zh/phrase_pinyin.tsv": "长城\tcháng chéng\n",
		"zh/word_freq.tsv": "你好\t5000\n世界\t8000\n长城\t6000\n去\t4000\n" +
			"你\t20\n好\t30\n世\t5\n界\t5\n",
		"ja/ja_pron_dict.tsv": "私\tワタクシ\t5000\t代名詞\nは\tワ\t8000\t助詞\n" +
			"学生\tガクセー\t4000\t名詞\nです\tデス\t9000\t助動詞\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	t.Setenv("G2P_DATA_DIR", writeDataDir(t))
	t.Setenv("G2P_LEXICON_DB", "")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	res, err := Load(cfg)
	if err != nil {
		t.Fatalf("load resources: %v", err)
	}
	return New(res, Options{NumberToChinese: true})
}

func TestChineseBasic(t *testing.T) {
	eng := testEngine(t)
	tokens := eng.Phonemize("你好世界", detect.Chinese)
	if diff := cmp.Diff([]string{"你好", "世界"}, tokens.Texts()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if got := tokens.MergePhonemes(" "); got != "ni↓ xɑʊ↓ ʂi↘ tɕiɛ↘" {
		t.Fatalf("phonemes = %q", got)
	}
}

func TestChinesePolyphoneViaPhraseDict(t *testing.T) {
	eng := testEngine(t)
	tokens := eng.Phonemize("长城", detect.Chinese)
	if len(tokens) != 1 {
		t.Fatalf("tokens = %v", tokens.Texts())
	}
	// The phrase dictionary must force the cháng reading over zhǎng.
	if !strings.HasPrefix(tokens[0].Phonemes, "ʈ͡ʂʰɑŋ↗") {
		t.Fatalf("phonemes = %q, want the cháng reading", tokens[0].Phonemes)
	}
}

func TestJapaneseSentence(t *testing.T) {
	eng := testEngine(t)
	tokens := eng.Phonemize("私は学生です", detect.Unknown)
	if diff := cmp.Diff([]string{"私", "は", "学生", "です"}, tokens.Texts()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	joined := tokens.MergePhonemes(" ")
	if !strings.HasSuffix(joined, "ɡakɯseː desɨ") {
		t.Fatalf("phonemes = %q, want ... ɡakɯseː desɨ", joined)
	}
}

func TestJapaneseOOVKatakana(t *testing.T) {
	eng := testEngine(t)
	text := "ヴァイオリン"
	tokens := eng.Phonemize(text, detect.Japanese)
	joined := ""
	for _, tok := range tokens {
		joined += tok.Text
	}
	if joined != text {
		t.Fatalf("unk tokens reassemble to %q", joined)
	}
	for _, tok := range tokens {
		if tok.Tag != "UNK" {
			t.Fatalf("token %q tag = %q", tok.Text, tok.Tag)
		}
	}
}

func TestEnglishLookupAndOOV(t *testing.T) {
	eng := testEngine(t)
	tokens := eng.Phonemize("hello xyzabc world", detect.English)
	if diff := cmp.Diff([]string{"hello", "xyzabc", "world"}, tokens.Texts()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if tokens[0].Phonemes != "həˈloʊ" || tokens[2].Phonemes != "wˈɝld" {
		t.Fatalf("dict phonemes = %q, %q", tokens[0].Phonemes, tokens[2].Phonemes)
	}
	if tokens[1].Phonemes != "xyzabc" {
		t.Fatalf("oov phonemes = %q, want surface", tokens[1].Phonemes)
	}
}

func TestQuenyaStress(t *testing.T) {
	eng := testEngine(t)
	tokens := eng.Phonemize("Silmarillion", detect.Quenya)
	if len(tokens) != 1 {
		t.Fatalf("tokens = %v", tokens.Texts())
	}
	if !strings.Contains(tokens[0].Phonemes, "ˈr i") {
		t.Fatalf("phonemes = %q, want antepenult stress on ri", tokens[0].Phonemes)
	}
}

func TestDetectionCornerPureKanji(t *testing.T) {
	eng := testEngine(t)
	result := eng.Detect("東京都")
	if result.Language != detect.Japanese {
		t.Fatalf("language = %v, want Japanese", result.Language)
	}
	if result.Confidence < 0.6 {
		t.Fatalf("confidence = %v, want >= 0.6", result.Confidence)
	}
}

func TestNumbersFlowThroughChinesePipeline(t *testing.T) {
	eng := testEngine(t)
	tokens := eng.Phonemize("去42", detect.Chinese)
	joined := ""
	for _, tok := range tokens {
		joined += tok.Text
	}
	if joined != "去四十二" {
		t.Fatalf("normalized text = %q, want 去四十二", joined)
	}
}

func TestUnknownAndUnloadedLanguagesYieldEmpty(t *testing.T) {
	eng := testEngine(t)
	if got := eng.Phonemize("한국어 텍스트", detect.Unknown); len(got) != 0 {
		t.Fatalf("korean without resources = %v", got.Texts())
	}
	if got := eng.Phonemize("", detect.Chinese); len(got) != 0 {
		t.Fatalf("empty input = %v", got.Texts())
	}
	empty := New(Resources{}, Options{})
	if got := empty.Phonemize("你好", detect.Chinese); len(got) != 0 {
		t.Fatalf("unloaded chinese = %v", got.Texts())
	}
}

func TestPhonemizeBatchPreservesOrder(t *testing.T) {
	eng := testEngine(t)
	texts := []string{"hello world", "你好世界", "私は学生です"}
	results, err := eng.PhonemizeBatch(context.Background(), texts, detect.Unknown)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(results) != len(texts) {
		t.Fatalf("results = %d", len(results))
	}
	if results[1].Texts()[0] != "你好" {
		t.Fatalf("order not preserved: %v", results[1].Texts())
	}
	if results[2].Texts()[0] != "私" {
		t.Fatalf("order not preserved: %v", results[2].Texts())
	}
}

func TestPhonemizeDeterministic(t *testing.T) {
	eng := testEngine(t)
	a := eng.Phonemize("你好世界长城", detect.Chinese)
	b := eng.Phonemize("你好世界长城", detect.Chinese)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("outputs differ across runs:\n%s", diff)
	}
}
