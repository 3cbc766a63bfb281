package risk

import (
	"strings"
	"testing"

	"github.com/akolanti/LegalDocAPI/internal/config"
)

func newDefaultScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(config.DefaultTunables().Risk.Patterns)
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	return s
}

func TestScore(t *testing.T) {
	s := newDefaultScorer(t)
	tests := []struct {
		name     string
		sentence string
		want     float64
	}{
		{"plain short", "Rent is due.", 0.01},
		{"one pattern", "At its Sole Discretion.", 0.28},
		{"two patterns", "The tenant shall indemnify the landlord without liability.", 0.57},
		{"saturated length", strings.Repeat("a", 600), 0.35},
		{"capped", "Sole discretion, without liability, indemnify, liquidated damages, termination for convenience.", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Score(tt.sentence); got != tt.want {
				t.Errorf("Score(%q) got %v, want %v", tt.sentence, got, tt.want)
			}
		})
	}
}

func TestRank_FiltersAndSorts(t *testing.T) {
	s := newDefaultScorer(t)
	sentences := []string{
		"Rent is due.",
		"The tenant shall indemnify the landlord without liability.",
		"At its Sole Discretion.",
	}
	got := s.Rank(sentences, 0.2)
	if len(got) != 2 {
		t.Fatalf("expected 2 clauses, got %+v", got)
	}
	if got[0].Index != 1 || got[1].Index != 2 {
		t.Errorf("unexpected order %+v", got)
	}

	if all := s.Rank(sentences, 0); len(all) != 3 {
		t.Errorf("threshold 0 keeps every sentence, got %d", len(all))
	}
}

func TestNewScorer_BadPattern(t *testing.T) {
	if _, err := NewScorer([]string{"("}); err == nil {
		t.Error("expected a compile error")
	}
}
