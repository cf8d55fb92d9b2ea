// Package httpapi is the thin serving wrapper around the engine: stateless
// phonemize and detect endpoints plus health. The engine and its dictionaries
// are immutable, so sharing them across requests needs no locking.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/anath2/g2p/internal/detect"
	"github.com/anath2/g2p/internal/engine"
	"github.com/anath2/g2p/internal/token"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type phonemizeRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang,omitempty"`
}

type phonemizeResponse struct {
	Language   string     `json:"language"`
	Confidence float64    `json:"confidence,omitempty"`
	Phonemes   string     `json:"phonemes"`
	Tokens     token.List `json:"tokens"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// NewRouter builds the API router over an assembled engine.
func NewRouter(eng *engine.Engine) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/phonemize", func(w http.ResponseWriter, req *http.Request) {
		var body phonemizeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid JSON body"})
			return
		}
		if body.Text == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "text is required"})
			return
		}

		lang := detect.ParseCode(body.Lang)
		result := eng.Detect(body.Text)
		if lang == detect.Unknown {
			lang = result.Language
		}

		tokens := eng.Phonemize(body.Text, lang)
		writeJSON(w, http.StatusOK, phonemizeResponse{
			Language:   lang.Code(),
			Confidence: result.Confidence,
			Phonemes:   tokens.MergePhonemes(" "),
			Tokens:     tokens,
		})
	})

	r.Post("/api/detect", func(w http.ResponseWriter, req *http.Request) {
		var body phonemizeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid JSON body"})
			return
		}
		result := eng.Detect(body.Text)
		writeJSON(w, http.StatusOK, map[string]any{
			"language":   result.Language.Code(),
			"confidence": result.Confidence,
		})
	})

	return r
}

// ListenAndServe starts the server on addr.
func ListenAndServe(addr string, eng *engine.Engine) error {
	return http.ListenAndServe(addr, NewRouter(eng))
}
