// Package engine wires the detector, the segmenters, and the phoneme
// mappers into the G2P entry point.
//
// An Engine is immutable after construction and safe for concurrent use:
// every G2P call works on stack-local state only, so independent texts can
// be phonemized in parallel against the same shared dictionaries.
package engine

import (
	"context"
	"log"
	"os"

	"github.com/anath2/g2p/internal/config"
	"github.com/anath2/g2p/internal/detect"
	"github.com/anath2/g2p/internal/dict"
	"github.com/anath2/g2p/internal/hmm"
	"github.com/anath2/g2p/internal/lattice"
	"github.com/anath2/g2p/internal/numcn"
	"github.com/anath2/g2p/internal/phoneme"
	"github.com/anath2/g2p/internal/segment"
	"github.com/anath2/g2p/internal/token"
	"github.com/anath2/g2p/internal/trie"
	"golang.org/x/sync/errgroup"
)

// Resources holds the immutable dictionary artifacts. Any entry may be nil;
// a language whose resources are missing phonemizes to an empty token list,
// which callers treat as a configuration error.
type Resources struct {
	EnDict    *dict.En
	ZhPinyin  *dict.ZhPinyin
	ZhPhrases *dict.ZhPhrase
	ZhWords   *trie.Trie
	ZhHMM     *hmm.Model
	JaPron    *trie.Trie
	JaVocab   *dict.JaVocab
}

// Options gates the optional passes of a G2P call.
type Options struct {
	UseZhHMM        bool
	NumberToChinese bool
	ToneSandhi      bool
	Erhua           bool
	MergeLongVowels bool
	KeepPunct       bool
}

// Engine is the G2P entry point.
type Engine struct {
	res  Resources
	opts Options

	zhSeg    *segment.Segmenter
	jaTok    *lattice.Tokenizer
	zhMapper *phoneme.Chinese
	jaMapper *phoneme.Japanese
	enMapper *phoneme.English
}

// New assembles an engine over already-loaded resources.
func New(res Resources, opts Options) *Engine {
	e := &Engine{res: res, opts: opts}
	if res.ZhWords != nil {
		e.zhSeg = segment.New(res.ZhWords, res.ZhHMM, opts.UseZhHMM)
	}
	if res.JaPron != nil {
		e.jaTok = lattice.NewTokenizer(res.JaPron)
		e.jaMapper = &phoneme.Japanese{Dict: res.JaPron, MergeLongVowels: opts.MergeLongVowels}
	}
	if res.ZhPinyin != nil {
		e.zhMapper = &phoneme.Chinese{
			Chars:   res.ZhPinyin,
			Phrases: res.ZhPhrases,
			Options: phoneme.ZhOptions{ToneSandhi: opts.ToneSandhi, Erhua: opts.Erhua},
		}
	}
	if res.EnDict != nil {
		e.enMapper = &phoneme.English{Dict: res.EnDict}
	}
	return e
}

// Load reads every configured dictionary. A configured path that does not
// exist is skipped with a notice, and HMM tables that fail to load only
// disable the HMM pass; any other failure aborts the load so a partial
// dictionary never serves traffic. When a lexicon database is configured it
// replaces the TSV dictionaries; the HMM tables are still read from their
// directory and no Japanese vocabulary list is loaded.
func Load(cfg config.Config) (Resources, error) {
	if cfg.LexiconDBPath != "" {
		return loadFromLexicon(cfg)
	}

	var res Resources
	if path, ok := usable(cfg.EnDictPath); ok {
		d, err := dict.LoadEn(path)
		if err != nil {
			return Resources{}, err
		}
		res.EnDict = d
		log.Printf("loaded en dict: %d entries", d.Len())
	}
	if path, ok := usable(cfg.ZhPinyinPath); ok {
		d, err := dict.LoadZhPinyin(path)
		if err != nil {
			return Resources{}, err
		}
		res.ZhPinyin = d
		log.Printf("loaded zh pinyin dict: %d hanzi", d.Len())
	}
	if path, ok := usable(cfg.ZhPhrasePath); ok {
		d, err := dict.LoadZhPhrase(path)
		if err != nil {
			return Resources{}, err
		}
		res.ZhPhrases = d
		log.Printf("loaded zh phrase dict: %d phrases", d.Len())
	}
	if path, ok := usable(cfg.ZhWordPath); ok {
		t, _, err := dict.LoadZhWords(path)
		if err != nil {
			return Resources{}, err
		}
		res.ZhWords = t
		log.Printf("loaded zh word dict: %d words", t.Len())
	}
	if dir, ok := usable(cfg.ZhHMMDir); ok {
		m, err := hmm.Load(dir)
		if err != nil {
			log.Printf("zh hmm tables unavailable (%v), hmm pass disabled", err)
		} else {
			res.ZhHMM = m
		}
	}
	if path, ok := usable(cfg.JaPronPath); ok {
		t, err := dict.LoadJaPron(path)
		if err != nil {
			return Resources{}, err
		}
		res.JaPron = t
		log.Printf("loaded ja pron dict: %d entries", t.Len())
	}
	if path, ok := usable(cfg.JaVocabPath); ok {
		v, err := dict.LoadJaVocab(path)
		if err != nil {
			return Resources{}, err
		}
		res.JaVocab = v
	}
	return res, nil
}

func loadFromLexicon(cfg config.Config) (Resources, error) {
	db, err := dict.OpenLexicon(cfg.LexiconDBPath)
	if err != nil {
		return Resources{}, err
	}
	defer db.Close()

	var res Resources
	if res.EnDict, err = dict.LoadEnFromDB(db); err != nil {
		return Resources{}, err
	}
	if res.ZhPinyin, err = dict.LoadZhPinyinFromDB(db); err != nil {
		return Resources{}, err
	}
	if res.ZhPhrases, err = dict.LoadZhPhraseFromDB(db); err != nil {
		return Resources{}, err
	}
	if res.ZhWords, _, err = dict.LoadZhWordsFromDB(db); err != nil {
		return Resources{}, err
	}
	if res.JaPron, err = dict.LoadJaPronFromDB(db); err != nil {
		return Resources{}, err
	}
	if dir, ok := usable(cfg.ZhHMMDir); ok {
		if m, err := hmm.Load(dir); err == nil {
			res.ZhHMM = m
		}
	}
	log.Printf("loaded lexicon db: en=%d zh=%d ja=%d",
		res.EnDict.Len(), res.ZhPinyin.Len(), res.JaPron.Len())
	return res, nil
}

func usable(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		log.Printf("skipping missing dictionary path %s", path)
		return "", false
	}
	return path, true
}

// Detect runs language detection only.
func (e *Engine) Detect(text string) detect.Result {
	return detect.Detect(text)
}

// Phonemize converts text into a token list with IPA phonemes. lang may be
// detect.Unknown to auto-detect. An unrecognized language, or one whose
// dictionaries are not loaded, yields an empty list rather than an error.
func (e *Engine) Phonemize(text string, lang detect.Language) token.List {
	if text == "" {
		return nil
	}
	if lang == detect.Unknown {
		lang = detect.Detect(text).Language
	}

	switch lang {
	case detect.Chinese:
		return e.phonemizeChinese(text)
	case detect.Japanese:
		return e.phonemizeJapanese(text)
	case detect.English:
		return e.phonemizeEnglish(text)
	case detect.Quenya:
		return e.phonemizeQuenya(text)
	}
	return nil
}

func (e *Engine) phonemizeChinese(text string) token.List {
	if e.zhSeg == nil || e.zhMapper == nil {
		return nil
	}
	if e.opts.NumberToChinese {
		text = numcn.ReplaceAll(text)
	}
	tokens := e.zhSeg.Cut(text)
	e.zhMapper.Convert(tokens)
	return tokens
}

func (e *Engine) phonemizeJapanese(text string) token.List {
	if e.jaTok == nil || e.jaMapper == nil {
		return nil
	}
	tokens := e.jaTok.Tokenize(text)
	e.jaMapper.Convert(tokens)
	return tokens
}

func (e *Engine) phonemizeEnglish(text string) token.List {
	if e.enMapper == nil {
		return nil
	}
	tokens := segment.EnglishTokens(text, e.opts.KeepPunct)
	e.enMapper.Convert(tokens)
	return tokens
}

func (e *Engine) phonemizeQuenya(text string) token.List {
	tokens := segment.QuenyaTokens(text)
	phoneme.Quenya{}.Convert(tokens)
	return tokens
}

// PhonemizeBatch converts independent texts in parallel, preserving input
// order. The shared dictionaries are read-only, so the only per-text state
// is each goroutine's own.
func (e *Engine) PhonemizeBatch(ctx context.Context, texts []string, lang detect.Language) ([]token.List, error) {
	results := make([]token.List, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Phonemize(text, lang)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
