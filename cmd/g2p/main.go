// Command g2p phonemizes text from the command line. With no positional
// arguments it reads stdin.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/anath2/g2p/internal/config"
	"github.com/anath2/g2p/internal/detect"
	"github.com/anath2/g2p/internal/engine"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	langFlag := flag.String("lang", "", "language code (en, zh, ja, qya); empty auto-detects")
	tokensFlag := flag.Bool("tokens", false, "print the per-token table instead of joined IPA")
	detectFlag := flag.Bool("detect", false, "only detect the language")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	texts := flag.Args()
	if len(texts) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				texts = append(texts, line)
			}
		}
		if err := scanner.Err(); err != nil {
			log.Fatalf("failed to read stdin: %v", err)
		}
	}
	if len(texts) == 0 {
		log.Fatal("no input text")
	}

	if *detectFlag {
		for _, text := range texts {
			result := detect.Detect(text)
			fmt.Printf("%s\t%.2f\t%s\n", result.Language.Code(), result.Confidence, text)
		}
		return
	}

	res, err := engine.Load(cfg)
	if err != nil {
		log.Fatalf("failed to load dictionaries: %v", err)
	}
	eng := engine.New(res, engine.Options{
		UseZhHMM:        cfg.UseZhHMM,
		NumberToChinese: cfg.NumberToChinese,
		ToneSandhi:      cfg.ToneSandhi,
		Erhua:           cfg.Erhua,
		KeepPunct:       cfg.KeepPunct,
	})

	lang := detect.ParseCode(*langFlag)
	results, err := eng.PhonemizeBatch(context.Background(), texts, lang)
	if err != nil {
		log.Fatalf("phonemize: %v", err)
	}

	for i, tokens := range results {
		if *tokensFlag {
			fmt.Printf("# %s\n", texts[i])
			for _, t := range tokens {
				fmt.Printf("%s\t%s\t%s\t%d\t%d\n", t.Text, t.Tag, t.Phonemes, t.ByteStart, t.ByteLength)
			}
			continue
		}
		fmt.Println(tokens.MergePhonemes(" "))
	}
}
