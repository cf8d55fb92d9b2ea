package phoneme

import (
	"github.com/anath2/g2p/internal/dict"
	"github.com/anath2/g2p/internal/token"
)

// English maps tokens to IPA through a CMUdict-style pronunciation
// dictionary. Out-of-vocabulary words keep their surface form so the output
// stream never loses a token.
type English struct {
	Dict *dict.En
}

// Convert fills in Phonemes for every token in place.
func (e *English) Convert(tokens token.List) {
	for i := range tokens {
		if phonemes, ok := e.Dict.Lookup(tokens[i].Text); ok {
			tokens[i].Phonemes = phonemes
		} else {
			tokens[i].Phonemes = tokens[i].Text
		}
	}
}
