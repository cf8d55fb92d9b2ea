// Command lexc compiles the TSV dictionary set into a single sqlite lexicon
// database, migrating the schema first.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/anath2/g2p/internal/config"
	"github.com/anath2/g2p/internal/lexdb"
	"github.com/anath2/g2p/internal/migrations"
	"github.com/joho/godotenv"
)

// existing skips configured paths that are absent so a partial dictionary
// set still compiles.
func existing(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		log.Printf("skipping missing dictionary path %s", path)
		return ""
	}
	return path
}

func main() {
	_ = godotenv.Load()

	out := flag.String("o", "lexicon.db", "output database path")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := migrations.RunUp(*out); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	version, err := migrations.CurrentVersion(*out)
	if err != nil {
		log.Fatalf("failed to inspect migration version: %v", err)
	}
	log.Printf("lexicon schema at version %d", version)

	stats, err := lexdb.Compile(*out, lexdb.Sources{
		EnDictPath:   existing(cfg.EnDictPath),
		ZhPinyinPath: existing(cfg.ZhPinyinPath),
		ZhPhrasePath: existing(cfg.ZhPhrasePath),
		ZhWordPath:   existing(cfg.ZhWordPath),
		JaPronPath:   existing(cfg.JaPronPath),
	})
	if err != nil {
		log.Fatalf("failed to compile lexicon: %v", err)
	}
	log.Printf("compiled lexicon: en=%d zh_readings=%d zh_phrases=%d zh_words=%d ja=%d",
		stats.EnEntries, stats.ZhReadings, stats.ZhPhrases, stats.ZhWords, stats.JaEntries)
}
