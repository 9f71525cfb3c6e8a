// Package traits derives base stats from collectible token metadata. The
// trait dataset is an explicitly constructed, injected source with a
// load/refresh lifecycle; nothing is lazily loaded process-wide.
//
// Parsing is deliberately lenient: one malformed token yields a nil result
// and must never break derivation for the rest of the collection.
package traits

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/paddocklabs/chainderby/internal/stats"
)

// Attribute is a single trait on a token, as published in its metadata.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// TokenMetadata is the published metadata for one token.
type TokenMetadata struct {
	TokenID    string      `json:"token_id"`
	Attributes []Attribute `json:"attributes"`
}

// Source holds the trait dataset. Construct it explicitly, load it from a
// file or a slice, and refresh it with Replace when the collection updates.
type Source struct {
	mu     sync.RWMutex
	tokens map[string]TokenMetadata
}

// NewSource returns an empty trait source.
func NewSource() *Source {
	return &Source{tokens: make(map[string]TokenMetadata)}
}

// LoadFile replaces the dataset with the contents of a JSON metadata file
// (an array of token metadata objects).
func (s *Source) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var tokens []TokenMetadata
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}

	s.Replace(tokens)
	return nil
}

// Replace swaps in a new dataset atomically.
func (s *Source) Replace(tokens []TokenMetadata) {
	next := make(map[string]TokenMetadata, len(tokens))
	for _, t := range tokens {
		if t.TokenID != "" {
			next[t.TokenID] = t
		}
	}

	s.mu.Lock()
	s.tokens = next
	s.mu.Unlock()
}

// Token returns the metadata for a token id.
func (s *Source) Token(id string) (TokenMetadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[id]
	return t, ok
}

// BaseStats derives the base stat block for a token, or nil if the token is
// unknown or its stat traits are malformed.
func (s *Source) BaseStats(tokenID string) *stats.Block {
	meta, ok := s.Token(tokenID)
	if !ok {
		return nil
	}
	return DeriveBase(meta)
}

// DeriveBase reads the six stat traits from token metadata. All six must be
// present and numeric; otherwise the token has no derivable base stats and
// the result is nil.
func DeriveBase(meta TokenMetadata) *stats.Block {
	var block stats.Block
	seen := map[string]bool{}

	for _, attr := range meta.Attributes {
		name := strings.ToLower(strings.TrimSpace(attr.TraitType))
		if !stats.IsKnown(name) {
			continue
		}
		v, ok := numericValue(attr.Value)
		if !ok || v < 0 {
			return nil
		}
		block.Set(name, v)
		seen[name] = true
	}

	if len(seen) != len(stats.Names) {
		return nil
	}
	return &block
}

// DeriveAll derives base stats for every token in the source, skipping
// tokens that fail derivation.
func (s *Source) DeriveAll() map[string]stats.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]stats.Block, len(s.tokens))
	for id, meta := range s.tokens {
		if b := DeriveBase(meta); b != nil {
			out[id] = *b
		}
	}
	return out
}

func numericValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

// RarityClass groups token rarities for class-restricted competition.
type RarityClass string

const (
	RarityCommon    RarityClass = "common"
	RarityRare      RarityClass = "rare"
	RarityEpic      RarityClass = "epic"
	RarityLegendary RarityClass = "legendary"
)

// Rarity reads the token's rarity class from its "rarity" trait. Unknown or
// missing rarities report false rather than defaulting, so a caller can
// exclude the token from class-restricted races.
func Rarity(meta TokenMetadata) (RarityClass, bool) {
	for _, attr := range meta.Attributes {
		if !strings.EqualFold(strings.TrimSpace(attr.TraitType), "rarity") {
			continue
		}
		if s, ok := attr.Value.(string); ok {
			switch RarityClass(strings.ToLower(strings.TrimSpace(s))) {
			case RarityCommon:
				return RarityCommon, true
			case RarityRare:
				return RarityRare, true
			case RarityEpic:
				return RarityEpic, true
			case RarityLegendary:
				return RarityLegendary, true
			}
		}
		return "", false
	}
	return "", false
}
