package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"G2P_DATA_DIR", "G2P_EN_DICT", "G2P_ZH_PINYIN_DICT", "G2P_ZH_PHRASE_DICT",
		"G2P_ZH_WORD_DICT", "G2P_ZH_HMM_DIR", "G2P_JA_PRON_DICT", "G2P_JA_VOCAB",
		"G2P_LEXICON_DB", "G2P_ADDR", "PORT", "G2P_ZH_HMM", "G2P_NUM_TO_ZH",
		"G2P_ZH_TONE_SANDHI", "G2P_ZH_ERHUA", "G2P_KEEP_PUNCT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.EnDictPath != filepath.Join("data", "en", "us_dict.tsv") {
		t.Errorf("en dict path = %q", cfg.EnDictPath)
	}
	if cfg.JaPronPath != filepath.Join("data", "ja", "ja_pron_dict.tsv") {
		t.Errorf("ja dict path = %q", cfg.JaPronPath)
	}
	if !cfg.UseZhHMM || !cfg.NumberToChinese {
		t.Error("hmm and number conversion must default on")
	}
	if cfg.ToneSandhi || cfg.Erhua || cfg.KeepPunct {
		t.Error("sandhi, erhua, and punct must default off")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("G2P_DATA_DIR", "/srv/g2p")
	t.Setenv("G2P_EN_DICT", "/custom/en.tsv")
	t.Setenv("PORT", "9999")
	t.Setenv("G2P_ZH_HMM", "false")
	t.Setenv("G2P_KEEP_PUNCT", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.EnDictPath != "/custom/en.tsv" {
		t.Errorf("en dict path = %q", cfg.EnDictPath)
	}
	if cfg.ZhPinyinPath != filepath.Join("/srv/g2p", "zh", "pinyin_dict.tsv") {
		t.Errorf("zh pinyin path = %q", cfg.ZhPinyinPath)
	}
	if cfg.UseZhHMM {
		t.Error("G2P_ZH_HMM=false must disable the hmm pass")
	}
	if !cfg.KeepPunct {
		t.Error("G2P_KEEP_PUNCT=1 must enable punctuation tokens")
	}
}

func TestLoadFromDotenv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("G2P_DATA_DIR=/from/dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := godotenv.Overload(envPath); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/from/dotenv" {
		t.Fatalf("data dir = %q", cfg.DataDir)
	}
}

func TestLoadRejectsMissingLexiconDB(t *testing.T) {
	clearEnv(t)
	t.Setenv("G2P_LEXICON_DB", filepath.Join(t.TempDir(), "missing.db"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unreadable lexicon db")
	}
}
