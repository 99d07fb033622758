// Package generator builds typing text tokens.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/wordlist"
)

var (
	// ErrEmptyPool is returned when a token must be drawn from an empty pool.
	ErrEmptyPool = errors.New("token pool is empty")
	// ErrInvalidWeights is returned for a difficulty without usable weights.
	ErrInvalidWeights = errors.New("invalid generator weights")
)

// TierWeights are the relative chances of drawing from the easy, medium and
// hard word tiers.
type TierWeights [3]float64

// Table maps each difficulty to its tier weights and symbol substitution rate.
type Table struct {
	Tiers      map[model.Difficulty]TierWeights
	SymbolRate map[model.Difficulty]float64
}

// DefaultTable returns the stock difficulty table.
func DefaultTable() Table {
	return Table{
		Tiers: map[model.Difficulty]TierWeights{
			model.DifficultyEasy:   {0.85, 0.15, 0},
			model.DifficultyMedium: {0.4, 0.4, 0.2},
			model.DifficultyHard:   {0, 0.3, 0.7},
		},
		SymbolRate: map[model.Difficulty]float64{
			model.DifficultyEasy:   0.1,
			model.DifficultyMedium: 0.15,
			model.DifficultyHard:   0.25,
		},
	}
}

// Validate checks that every entry has non-negative weights with a positive
// sum and a rate within [0, 1].
func (t Table) Validate() error {
	for diff, w := range t.Tiers {
		total := 0.0
		for _, v := range w {
			if v < 0 {
				return fmt.Errorf("%w: negative tier weight for %s", ErrInvalidWeights, diff)
			}
			total += v
		}
		if total <= 0 {
			return fmt.Errorf("%w: tier weights for %s sum to zero", ErrInvalidWeights, diff)
		}
	}
	for diff, rate := range t.SymbolRate {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%w: symbol rate for %s must be between 0 and 1", ErrInvalidWeights, diff)
		}
	}
	return nil
}

// Generator produces randomized tokens. Output depends only on the random
// source, so a seeded source gives a reproducible sequence.
type Generator struct {
	rnd   *rand.Rand
	pools wordlist.Pools
	table Table
}

// New returns a Generator drawing from pools with the given random source.
func New(rnd *rand.Rand, pools wordlist.Pools, table Table) *Generator {
	return &Generator{rnd: rnd, pools: pools, table: table}
}

// NewSeeded returns a Generator seeded with seed, or with the current time
// when seed is zero.
func NewSeeded(seed int64, pools wordlist.Pools, table Table) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return New(rand.New(rand.NewSource(seed)), pools, table)
}

// Next returns one token: a whole word, or a single digit or punctuation mark
// when the text type substitutes a symbol.
func (g *Generator) Next(cfg model.Config) (string, error) {
	rate := g.table.SymbolRate[cfg.Difficulty]
	switch cfg.TextType {
	case model.TextWords:
		return g.word(cfg.Difficulty)
	case model.TextNumbers:
		if g.rnd.Float64() < rate {
			return pick(g.rnd, g.pools.Digits, "digit")
		}
	case model.TextPunctuation:
		if g.rnd.Float64() < rate {
			return pick(g.rnd, g.pools.Punctuation, "punctuation")
		}
	case model.TextMixed:
		if g.rnd.Float64() < rate {
			if g.rnd.Float64() < 0.5 {
				return pick(g.rnd, g.pools.Digits, "digit")
			}
			return pick(g.rnd, g.pools.Punctuation, "punctuation")
		}
	default:
		return "", fmt.Errorf("unknown text type %q", cfg.TextType)
	}
	return g.word(cfg.Difficulty)
}

// Generate returns count tokens.
func (g *Generator) Generate(cfg model.Config, count int) ([]string, error) {
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		token, err := g.Next(cfg)
		if err != nil {
			return nil, err
		}
		result = append(result, token)
	}
	return result, nil
}

func (g *Generator) word(diff model.Difficulty) (string, error) {
	weights, ok := g.table.Tiers[diff]
	if !ok {
		return "", fmt.Errorf("%w: no tier weights for difficulty %q", ErrInvalidWeights, diff)
	}
	tier, err := pickTier(g.rnd, weights)
	if err != nil {
		return "", err
	}
	return pick(g.rnd, g.pools.Tier(tier), tier.String()+" word")
}

func pickTier(rnd *rand.Rand, weights TierWeights) (wordlist.Tier, error) {
	total := 0.0
	last := -1
	for i, w := range weights {
		if w > 0 {
			total += w
			last = i
		}
	}
	if last < 0 {
		return 0, fmt.Errorf("%w: tier weights sum to zero", ErrInvalidWeights)
	}
	r := rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if r < acc {
			return wordlist.Tier(i), nil
		}
	}
	return wordlist.Tier(last), nil
}

func pick(rnd *rand.Rand, pool []string, name string) (string, error) {
	if len(pool) == 0 {
		return "", fmt.Errorf("%w: %s pool", ErrEmptyPool, name)
	}
	token := pool[rnd.Intn(len(pool))]
	if token == "" {
		return "", fmt.Errorf("%w: empty %s token", ErrEmptyPool, name)
	}
	return token, nil
}
