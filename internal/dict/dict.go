// Package dict loads the dictionary artifacts the engine consumes: the
// English pronunciation dictionary, the Chinese character/phrase/word
// dictionaries, and the Japanese pronunciation dictionary.
//
// The canonical interchange format is TSV (one entry per line, UTF-8, LF or
// CRLF). Blank lines and lines with too few fields are skipped; a load either
// completes or fails as a whole. Loaders can alternatively read a compiled
// sqlite lexicon produced by cmd/lexc.
package dict

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anath2/g2p/internal/trie"
	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// scanTSV streams the fields of every well-formed line of path to fn.
// Lines with fewer than minFields fields are skipped, matching the tolerant
// TSV policy: a malformed line never poisons a load, a broken file does.
func scanTSV(path string, minFields int, fn func(fields []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < minFields {
			continue
		}
		if err := fn(fields); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan dictionary: %w", err)
	}
	return nil
}

// En maps lowercase English words to their IPA phoneme strings.
type En struct {
	entries map[string]string
}

// LoadEn reads a `word<TAB>ipa` TSV. Words are case-folded; the first entry
// for a word wins, mirroring deterministic lookup behavior.
func LoadEn(path string) (*En, error) {
	d := &En{entries: make(map[string]string, 4096)}
	err := scanTSV(path, 2, func(fields []string) error {
		word := foldCaser.String(strings.TrimSpace(fields[0]))
		if word == "" {
			return nil
		}
		if _, exists := d.entries[word]; !exists {
			d.entries[word] = strings.TrimSpace(fields[1])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Lookup is case-insensitive.
func (d *En) Lookup(word string) (string, bool) {
	if d == nil {
		return "", false
	}
	phonemes, ok := d.entries[foldCaser.String(word)]
	return phonemes, ok
}

// Len reports the entry count.
func (d *En) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// ZhPinyin maps a single hanzi to its pinyin readings. Readings keep the
// order of the source file; index 0 is the default reading.
type ZhPinyin struct {
	entries map[rune][]string
}

// LoadZhPinyin reads a `hanzi<TAB>pinyin1[,pinyin2,...]` TSV. Pinyin may be
// in diacritic (nǐ) or numeric (ni3) form; both are stored verbatim.
func LoadZhPinyin(path string) (*ZhPinyin, error) {
	d := &ZhPinyin{entries: make(map[rune][]string, 8192)}
	err := scanTSV(path, 2, func(fields []string) error {
		runes := []rune(strings.TrimSpace(fields[0]))
		if len(runes) != 1 {
			return nil
		}
		var pinyins []string
		for _, p := range strings.Split(fields[1], ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				pinyins = append(pinyins, p)
			}
		}
		if len(pinyins) > 0 {
			if _, exists := d.entries[runes[0]]; !exists {
				d.entries[runes[0]] = pinyins
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Lookup returns all readings for a hanzi.
func (d *ZhPinyin) Lookup(hanzi rune) ([]string, bool) {
	if d == nil {
		return nil, false
	}
	pinyins, ok := d.entries[hanzi]
	return pinyins, ok
}

// First returns the default reading for a hanzi.
func (d *ZhPinyin) First(hanzi rune) (string, bool) {
	pinyins, ok := d.Lookup(hanzi)
	if !ok || len(pinyins) == 0 {
		return "", false
	}
	return pinyins[0], true
}

// Len reports the number of distinct hanzi.
func (d *ZhPinyin) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// ZhPhrase is the phrase pinyin dictionary: a trie keyed on the phrase with
// the space-joined pinyin stored in the tag slot.
type ZhPhrase struct {
	trie  *trie.Trie
	count int
}

// LoadZhPhrase reads a `phrase<TAB>space-separated-pinyin` TSV.
func LoadZhPhrase(path string) (*ZhPhrase, error) {
	d := &ZhPhrase{trie: trie.New()}
	err := scanTSV(path, 2, func(fields []string) error {
		phrase := strings.TrimSpace(fields[0])
		pinyin := strings.TrimSpace(fields[1])
		if phrase == "" || pinyin == "" {
			return nil
		}
		d.trie.Insert(phrase, 1.0, pinyin, "")
		return nil
	})
	if err != nil {
		return nil, err
	}
	d.count = d.trie.Len()
	return d, nil
}

// Lookup returns the space-joined pinyin for an exact phrase.
func (d *ZhPhrase) Lookup(phrase string) (string, bool) {
	if d == nil {
		return "", false
	}
	m, ok := d.trie.Lookup(phrase)
	if !ok {
		return "", false
	}
	return m.Tag, true
}

// Len reports the phrase count.
func (d *ZhPhrase) Len() int {
	if d == nil {
		return 0
	}
	return d.count
}

// LoadZhWords reads a `word<TAB>frequency[<TAB>tag]` TSV into a trie for the
// segmenter. Returns the trie and the summed frequency mass.
func LoadZhWords(path string) (*trie.Trie, float64, error) {
	t := trie.New()
	total := 0.0
	err := scanTSV(path, 2, func(fields []string) error {
		word := strings.TrimSpace(fields[0])
		if word == "" {
			return nil
		}
		freq, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil || freq <= 0 {
			return nil
		}
		tag := ""
		if len(fields) >= 3 {
			tag = strings.TrimSpace(fields[2])
		}
		if _, exists := t.Lookup(word); !exists {
			total += freq
		}
		t.Insert(word, freq, tag, "")
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return t, total, nil
}

// LoadJaPron reads a `surface<TAB>reading<TAB>frequency<TAB>POS` TSV into a
// trie. The katakana reading lands in the reading slot and the POS tag in
// the tag slot.
func LoadJaPron(path string) (*trie.Trie, error) {
	t := trie.New()
	err := scanTSV(path, 4, func(fields []string) error {
		surface := strings.TrimSpace(fields[0])
		if surface == "" {
			return nil
		}
		freq, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil || freq <= 0 {
			freq = 1.0
		}
		t.Insert(surface, freq, strings.TrimSpace(fields[3]), strings.TrimSpace(fields[1]))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// JaVocab is a plain Japanese word list with membership lookup. The engine
// loads it into its resources; the language detector does not consult it.
type JaVocab struct {
	words map[string]struct{}
}

// LoadJaVocab reads a one-word-per-line file.
func LoadJaVocab(path string) (*JaVocab, error) {
	v := &JaVocab{words: make(map[string]struct{}, 1024)}
	err := scanTSV(path, 1, func(fields []string) error {
		word := strings.TrimSpace(fields[0])
		if word != "" {
			v.words[word] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Contains reports membership.
func (v *JaVocab) Contains(word string) bool {
	if v == nil {
		return false
	}
	_, ok := v.words[word]
	return ok
}

// Len reports the word count.
func (v *JaVocab) Len() int {
	if v == nil {
		return 0
	}
	return len(v.words)
}
