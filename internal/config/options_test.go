package config

import (
	"errors"
	"testing"

	"github.com/verte-zerg/typetest/internal/model"
)

func TestDefaultIsValid(t *testing.T) {
	if err := ValidateOptions(Default()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateOptionsRejectsUnlisted(t *testing.T) {
	cfg := Default()
	cfg.Duration = 45
	if err := ValidateOptions(cfg); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for duration, got %v", err)
	}
	cfg = Default()
	cfg.WordCount = 7
	if err := ValidateOptions(cfg); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for word count, got %v", err)
	}
}

func TestNextOptionWraps(t *testing.T) {
	if got := NextOption(DurationOptions, 30); got != 60 {
		t.Fatalf("expected 60, got %d", got)
	}
	if got := NextOption(DurationOptions, 120); got != 15 {
		t.Fatalf("expected wrap to 15, got %d", got)
	}
	if got := NextOption(DurationOptions, 45); got != 15 {
		t.Fatalf("expected unknown value to yield first option, got %d", got)
	}
	if got := NextOption(DifficultyOptions, model.DifficultyHard); got != model.DifficultyEasy {
		t.Fatalf("expected easy, got %s", got)
	}
}
