package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultAddr = ":8080"

// Config carries every knob the front-ends need: dictionary locations,
// feature flags, and the listen address. The core packages never read the
// environment themselves; they receive explicit values.
type Config struct {
	Addr string

	DataDir       string
	EnDictPath    string
	ZhPinyinPath  string
	ZhPhrasePath  string
	ZhWordPath    string
	ZhHMMDir      string
	JaPronPath    string
	JaVocabPath   string
	LexiconDBPath string

	UseZhHMM        bool
	NumberToChinese bool
	ToneSandhi      bool
	Erhua           bool
	KeepPunct       bool
}

// Load builds a Config from the environment. Paths default into the data
// directory; every one is individually overridable.
func Load() (Config, error) {
	dataDir := envOrDefault("G2P_DATA_DIR", "data")

	cfg := Config{
		Addr:            envOrDefault("G2P_ADDR", defaultAddr),
		DataDir:         dataDir,
		EnDictPath:      envOrDefault("G2P_EN_DICT", filepath.Join(dataDir, "en", "us_dict.tsv")),
		ZhPinyinPath:    envOrDefault("G2P_ZH_PINYIN_DICT", filepath.Join(dataDir, "zh", "pinyin_dict.tsv")),
		ZhPhrasePath:    envOrDefault("G2P_ZH_PHRASE_DICT", filepath.Join(dataDir, "zh", "phrase_pinyin.tsv")),
		ZhWordPath:      envOrDefault("G2P_ZH_WORD_DICT", filepath.Join(dataDir, "zh", "word_freq.tsv")),
		ZhHMMDir:        envOrDefault("G2P_ZH_HMM_DIR", filepath.Join(dataDir, "zh")),
		JaPronPath:      envOrDefault("G2P_JA_PRON_DICT", filepath.Join(dataDir, "ja", "ja_pron_dict.tsv")),
		JaVocabPath:     envOrDefault("G2P_JA_VOCAB", filepath.Join(dataDir, "ja", "vocab.txt")),
		LexiconDBPath:   os.Getenv("G2P_LEXICON_DB"),
		UseZhHMM:        envBool("G2P_ZH_HMM", true),
		NumberToChinese: envBool("G2P_NUM_TO_ZH", true),
		ToneSandhi:      envBool("G2P_ZH_TONE_SANDHI", false),
		Erhua:           envBool("G2P_ZH_ERHUA", false),
		KeepPunct:       envBool("G2P_KEEP_PUNCT", false),
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	if cfg.LexiconDBPath != "" {
		if _, err := os.Stat(cfg.LexiconDBPath); err != nil {
			return Config{}, fmt.Errorf("G2P_LEXICON_DB points at an unreadable file: %w", err)
		}
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	return strings.EqualFold(raw, "true") || raw == "1"
}
