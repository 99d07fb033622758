package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPoolsNonEmpty(t *testing.T) {
	pools := Default()
	for tier := TierEasy; tier <= TierHard; tier++ {
		if len(pools.Tier(tier)) == 0 {
			t.Fatalf("expected %s tier to be populated", tier)
		}
	}
	if len(pools.Digits) != 10 {
		t.Fatalf("expected 10 digits, got %d", len(pools.Digits))
	}
	if len(pools.Punctuation) == 0 {
		t.Fatalf("expected punctuation set")
	}
}

func TestDefaultReturnsCopy(t *testing.T) {
	a := Default()
	a.Words[TierEasy][0] = "mutated"
	b := Default()
	if b.Words[TierEasy][0] == "mutated" {
		t.Fatalf("default pools share backing arrays")
	}
}

func TestLoadPoolsOverridesTier(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hard.txt"), []byte("onomatopoeia\n\n  rhythm \n"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	pools, err := LoadPools(dir)
	if err != nil {
		t.Fatalf("load pools: %v", err)
	}
	hard := pools.Tier(TierHard)
	if len(hard) != 2 || hard[0] != "onomatopoeia" || hard[1] != "rhythm" {
		t.Fatalf("unexpected hard tier: %v", hard)
	}
	if len(pools.Tier(TierEasy)) != len(Default().Tier(TierEasy)) {
		t.Fatalf("easy tier should keep defaults")
	}
}

func TestLoadPoolsRejectsEmptyOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "easy.txt"), []byte("\n \n"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	if _, err := LoadPools(dir); err == nil {
		t.Fatalf("expected error for empty override")
	}
}

func TestLoadPoolsRejectsInvalidWord(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "medium.txt"), []byte("fine\nnot fine\n"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	if _, err := LoadPools(dir); err == nil {
		t.Fatalf("expected error for word with whitespace")
	}
}

func TestLoadPoolsRejectsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hard.txt"), []byte("fine\ncaf\xe9\n"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	if _, err := LoadPools(dir); err == nil {
		t.Fatalf("expected error for word with invalid UTF-8")
	}
}
