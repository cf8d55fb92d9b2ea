// Command server exposes the engine over HTTP. Dictionaries load once at
// startup; every request is served from the same immutable engine.
package main

import (
	"log"

	"github.com/anath2/g2p/internal/config"
	"github.com/anath2/g2p/internal/engine"
	"github.com/anath2/g2p/internal/httpapi"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
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

	log.Printf("server listening on %s", cfg.Addr)
	log.Fatal(httpapi.ListenAndServe(cfg.Addr, eng))
}
