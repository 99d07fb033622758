package config

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/typetest/internal/model"
)

// ErrOutOfRange reports a setting outside its enumerated option set.
var ErrOutOfRange = errors.New("setting out of range")

// Enumerated option sets offered to the user.
var (
	DurationOptions   = []int{15, 30, 60, 120}
	WordCountOptions  = []int{10, 25, 50, 100}
	TextTypeOptions   = []model.TextType{model.TextWords, model.TextPunctuation, model.TextNumbers, model.TextMixed}
	DifficultyOptions = []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}
)

// Default returns the settings used when neither flags nor file set a value.
func Default() model.Config {
	return model.Config{
		Mode:       model.ModeTime,
		TextType:   model.TextWords,
		Difficulty: model.DifficultyEasy,
		Duration:   60,
		WordCount:  25,
		Backspace:  model.BackspaceUndo,
		LineTokens: model.DefaultLineTokens,
	}
}

// ValidateOptions rejects durations and word counts outside their option sets.
func ValidateOptions(cfg model.Config) error {
	if indexOf(DurationOptions, cfg.Duration) < 0 {
		return fmt.Errorf("%w: --time must be one of %v", ErrOutOfRange, DurationOptions)
	}
	if indexOf(WordCountOptions, cfg.WordCount) < 0 {
		return fmt.Errorf("%w: --words must be one of %v", ErrOutOfRange, WordCountOptions)
	}
	if cfg.LineTokens <= 0 {
		return fmt.Errorf("%w: --line-tokens must be > 0", ErrOutOfRange)
	}
	return nil
}

// NextOption returns the option following current, wrapping around.
// An unknown current value yields the first option.
func NextOption[T comparable](options []T, current T) T {
	idx := indexOf(options, current)
	return options[(idx+1)%len(options)]
}

func indexOf[T comparable](options []T, v T) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return -1
}
