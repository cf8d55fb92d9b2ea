// Package lexdb is the write side of the compiled lexicon: it transcribes
// the TSV dictionary set into the sqlite schema that internal/dict can load.
package lexdb

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// Sources names the TSV inputs of a compile. Empty paths are skipped so a
// deployment can compile only the languages it ships.
type Sources struct {
	EnDictPath   string
	ZhPinyinPath string
	ZhPhrasePath string
	ZhWordPath   string
	JaPronPath   string
}

// Stats reports how many rows each table received.
type Stats struct {
	EnEntries  int
	ZhReadings int
	ZhPhrases  int
	ZhWords    int
	JaEntries  int
}

func eachLine(path string, minFields int, fn func(fields []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
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
		return fmt.Errorf("scan %s: %w", path, err)
	}
	return nil
}

// Compile writes every configured source into the migrated database at
// dbPath. Each table loads inside one transaction; a failing source aborts
// the compile.
func Compile(dbPath string, src Sources) (Stats, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open lexicon db: %w", err)
	}
	defer db.Close()

	var stats Stats
	if src.EnDictPath != "" {
		stats.EnEntries, err = compileEn(db, src.EnDictPath)
		if err != nil {
			return Stats{}, err
		}
	}
	if src.ZhPinyinPath != "" {
		stats.ZhReadings, err = compileZhReadings(db, src.ZhPinyinPath)
		if err != nil {
			return Stats{}, err
		}
	}
	if src.ZhPhrasePath != "" {
		stats.ZhPhrases, err = compilePairs(db, src.ZhPhrasePath,
			`INSERT OR IGNORE INTO zh_phrases (phrase, pinyin) VALUES (?, ?)`)
		if err != nil {
			return Stats{}, err
		}
	}
	if src.ZhWordPath != "" {
		stats.ZhWords, err = compileZhWords(db, src.ZhWordPath)
		if err != nil {
			return Stats{}, err
		}
	}
	if src.JaPronPath != "" {
		stats.JaEntries, err = compileJa(db, src.JaPronPath)
		if err != nil {
			return Stats{}, err
		}
	}
	return stats, nil
}

func inTx(db *sql.DB, fn func(tx *sql.Tx) (int, error)) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	n, err := fn(tx)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return n, nil
}

func compileEn(db *sql.DB, path string) (int, error) {
	return inTx(db, func(tx *sql.Tx) (int, error) {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO en_entries (word, phonemes) VALUES (?, ?)`)
		if err != nil {
			return 0, fmt.Errorf("prepare en insert: %w", err)
		}
		defer stmt.Close()

		n := 0
		err = eachLine(path, 2, func(fields []string) error {
			word := strings.ToLower(strings.TrimSpace(fields[0]))
			if word == "" {
				return nil
			}
			if _, err := stmt.Exec(word, strings.TrimSpace(fields[1])); err != nil {
				return fmt.Errorf("insert en entry: %w", err)
			}
			n++
			return nil
		})
		return n, err
	})
}

func compileZhReadings(db *sql.DB, path string) (int, error) {
	return inTx(db, func(tx *sql.Tx) (int, error) {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO zh_char_readings (hanzi, ord, pinyin) VALUES (?, ?, ?)`)
		if err != nil {
			return 0, fmt.Errorf("prepare zh reading insert: %w", err)
		}
		defer stmt.Close()

		n := 0
		err = eachLine(path, 2, func(fields []string) error {
			hanzi := strings.TrimSpace(fields[0])
			if len([]rune(hanzi)) != 1 {
				return nil
			}
			for ord, pinyin := range strings.Split(fields[1], ",") {
				pinyin = strings.TrimSpace(pinyin)
				if pinyin == "" {
					continue
				}
				if _, err := stmt.Exec(hanzi, ord, pinyin); err != nil {
					return fmt.Errorf("insert zh reading: %w", err)
				}
				n++
			}
			return nil
		})
		return n, err
	})
}

func compilePairs(db *sql.DB, path, query string) (int, error) {
	return inTx(db, func(tx *sql.Tx) (int, error) {
		stmt, err := tx.Prepare(query)
		if err != nil {
			return 0, fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		n := 0
		err = eachLine(path, 2, func(fields []string) error {
			a := strings.TrimSpace(fields[0])
			b := strings.TrimSpace(fields[1])
			if a == "" || b == "" {
				return nil
			}
			if _, err := stmt.Exec(a, b); err != nil {
				return fmt.Errorf("insert pair: %w", err)
			}
			n++
			return nil
		})
		return n, err
	})
}

func compileZhWords(db *sql.DB, path string) (int, error) {
	return inTx(db, func(tx *sql.Tx) (int, error) {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO zh_words (word, freq, tag) VALUES (?, ?, ?)`)
		if err != nil {
			return 0, fmt.Errorf("prepare zh word insert: %w", err)
		}
		defer stmt.Close()

		n := 0
		err = eachLine(path, 2, func(fields []string) error {
			word := strings.TrimSpace(fields[0])
			freq, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
			if word == "" || err != nil || freq <= 0 {
				return nil
			}
			tag := ""
			if len(fields) >= 3 {
				tag = strings.TrimSpace(fields[2])
			}
			if _, err := stmt.Exec(word, freq, tag); err != nil {
				return fmt.Errorf("insert zh word: %w", err)
			}
			n++
			return nil
		})
		return n, err
	})
}

func compileJa(db *sql.DB, path string) (int, error) {
	return inTx(db, func(tx *sql.Tx) (int, error) {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO ja_entries (surface, reading, freq, pos) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, fmt.Errorf("prepare ja insert: %w", err)
		}
		defer stmt.Close()

		n := 0
		err = eachLine(path, 4, func(fields []string) error {
			surface := strings.TrimSpace(fields[0])
			if surface == "" {
				return nil
			}
			freq, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
			if err != nil || freq <= 0 {
				freq = 1.0
			}
			if _, err := stmt.Exec(surface, strings.TrimSpace(fields[1]), freq, strings.TrimSpace(fields[3])); err != nil {
				return fmt.Errorf("insert ja entry: %w", err)
			}
			n++
			return nil
		})
		return n, err
	})
}
