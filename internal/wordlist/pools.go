// Package wordlist provides the token pools used for text generation.
package wordlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Tier ranks words by how hard they are to type.
type Tier int

// Word tiers.
const (
	TierEasy Tier = iota
	TierMedium
	TierHard
	tierCount
)

func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Pools holds the ranked word tiers and the single-character symbol sets.
type Pools struct {
	Words       [tierCount][]string
	Digits      []string
	Punctuation []string
}

var (
	easyWords = []string{
		"the", "and", "to", "of", "is", "you", "it", "in", "for", "on", "as", "are", "but",
		"be", "not", "by", "at", "or", "an", "if", "we", "they", "he", "she", "can", "will",
		"do", "did", "make", "see", "go", "say", "get", "give", "find", "think", "know",
	}
	mediumWords = []string{
		"people", "system", "process", "support", "develop", "control", "important",
		"experience", "understand", "information", "community", "education", "business",
		"creative", "analysis", "performance", "solution", "design",
	}
	hardWords = []string{
		"phenomenon", "ubiquitous", "meticulous", "paradigmatic", "idiosyncratic",
		"juxtaposition", "conscientious", "counterintuitive", "sustainability",
		"epistemology", "cryptographic", "multidimensional",
	}
	digits      = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	punctuation = []string{",", ".", "?", "!", ";"}
)

// Default returns a fresh copy of the built-in pools.
func Default() Pools {
	return Pools{
		Words: [tierCount][]string{
			clone(easyWords),
			clone(mediumWords),
			clone(hardWords),
		},
		Digits:      clone(digits),
		Punctuation: clone(punctuation),
	}
}

// Tier returns the words of the given tier.
func (p Pools) Tier(t Tier) []string {
	if t < 0 || t >= tierCount {
		return nil
	}
	return p.Words[t]
}

// LoadPools starts from the built-in pools and replaces each tier for which
// dir holds an override file (easy.txt, medium.txt, hard.txt). An empty dir
// returns the defaults.
func LoadPools(dir string) (Pools, error) {
	pools := Default()
	if dir == "" {
		return pools, nil
	}
	for t := TierEasy; t < tierCount; t++ {
		path := filepath.Join(dir, t.String()+".txt")
		words, err := LoadWords(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return Pools{}, fmt.Errorf("failed to load %s words: %w", t, err)
		}
		pools.Words[t] = words
	}
	return pools, nil
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
