package dict

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/anath2/g2p/internal/trie"
	_ "modernc.org/sqlite"
)

// OpenLexicon opens a compiled lexicon database.
func OpenLexicon(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("lexicon db path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon db: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 3000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return db, nil
}

// LoadEnFromDB reads the English table of a compiled lexicon.
func LoadEnFromDB(db *sql.DB) (*En, error) {
	rows, err := db.Query(`SELECT word, phonemes FROM en_entries`)
	if err != nil {
		return nil, fmt.Errorf("query en_entries: %w", err)
	}
	defer rows.Close()

	d := &En{entries: make(map[string]string, 4096)}
	for rows.Next() {
		var word, phonemes string
		if err := rows.Scan(&word, &phonemes); err != nil {
			return nil, fmt.Errorf("scan en entry: %w", err)
		}
		d.entries[foldCaser.String(word)] = phonemes
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate en_entries: %w", err)
	}
	return d, nil
}

// LoadZhPinyinFromDB reads the per-character reading table. Readings are
// ordered by their source position so index 0 stays the default reading.
func LoadZhPinyinFromDB(db *sql.DB) (*ZhPinyin, error) {
	rows, err := db.Query(`SELECT hanzi, pinyin FROM zh_char_readings ORDER BY hanzi, ord`)
	if err != nil {
		return nil, fmt.Errorf("query zh_char_readings: %w", err)
	}
	defer rows.Close()

	d := &ZhPinyin{entries: make(map[rune][]string, 8192)}
	for rows.Next() {
		var hanzi, pinyin string
		if err := rows.Scan(&hanzi, &pinyin); err != nil {
			return nil, fmt.Errorf("scan zh reading: %w", err)
		}
		runes := []rune(hanzi)
		if len(runes) != 1 || strings.TrimSpace(pinyin) == "" {
			continue
		}
		d.entries[runes[0]] = append(d.entries[runes[0]], pinyin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate zh_char_readings: %w", err)
	}
	return d, nil
}

// LoadZhPhraseFromDB reads the phrase pinyin table.
func LoadZhPhraseFromDB(db *sql.DB) (*ZhPhrase, error) {
	rows, err := db.Query(`SELECT phrase, pinyin FROM zh_phrases`)
	if err != nil {
		return nil, fmt.Errorf("query zh_phrases: %w", err)
	}
	defer rows.Close()

	d := &ZhPhrase{trie: trie.New()}
	for rows.Next() {
		var phrase, pinyin string
		if err := rows.Scan(&phrase, &pinyin); err != nil {
			return nil, fmt.Errorf("scan zh phrase: %w", err)
		}
		d.trie.Insert(phrase, 1.0, pinyin, "")
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate zh_phrases: %w", err)
	}
	d.count = d.trie.Len()
	return d, nil
}

// LoadZhWordsFromDB reads the segmentation vocabulary table.
func LoadZhWordsFromDB(db *sql.DB) (*trie.Trie, float64, error) {
	rows, err := db.Query(`SELECT word, freq, tag FROM zh_words`)
	if err != nil {
		return nil, 0, fmt.Errorf("query zh_words: %w", err)
	}
	defer rows.Close()

	t := trie.New()
	total := 0.0
	for rows.Next() {
		var word, tag string
		var freq float64
		if err := rows.Scan(&word, &freq, &tag); err != nil {
			return nil, 0, fmt.Errorf("scan zh word: %w", err)
		}
		if freq <= 0 {
			continue
		}
		if _, exists := t.Lookup(word); !exists {
			total += freq
		}
		t.Insert(word, freq, tag, "")
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate zh_words: %w", err)
	}
	return t, total, nil
}

// LoadJaPronFromDB reads the Japanese pronunciation table.
func LoadJaPronFromDB(db *sql.DB) (*trie.Trie, error) {
	rows, err := db.Query(`SELECT surface, reading, freq, pos FROM ja_entries`)
	if err != nil {
		return nil, fmt.Errorf("query ja_entries: %w", err)
	}
	defer rows.Close()

	t := trie.New()
	for rows.Next() {
		var surface, reading, pos string
		var freq float64
		if err := rows.Scan(&surface, &reading, &freq, &pos); err != nil {
			return nil, fmt.Errorf("scan ja entry: %w", err)
		}
		if freq <= 0 {
			freq = 1.0
		}
		t.Insert(surface, freq, pos, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ja_entries: %w", err)
	}
	return t, nil
}
