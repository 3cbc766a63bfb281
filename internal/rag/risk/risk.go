package risk

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
)

const (
	perPatternWeight = 0.25
	lengthWeight     = 0.35
	// sentences this long get the full length contribution
	lengthSaturation = 300.0
)

// Scorer flags clauses that shift liability or allow one-sided termination.
type Scorer struct {
	patterns []*regexp.Regexp
}

func NewScorer(patterns []string) (*Scorer, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile risk pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &Scorer{patterns: compiled}, nil
}

// Score is min(1, 0.25*matched patterns + 0.35*min(len/300, 1)) rounded to two decimals.
func (s *Scorer) Score(sentence string) float64 {
	hits := 0
	for _, re := range s.patterns {
		if re.MatchString(sentence) {
			hits++
		}
	}
	lengthFactor := math.Min(float64(utf8.RuneCountInString(sentence))/lengthSaturation, 1)
	score := math.Min(1, perPatternWeight*float64(hits)+lengthWeight*lengthFactor)
	return math.Round(score*100) / 100
}

// Rank scores every sentence and keeps those at or above threshold, riskiest first.
func (s *Scorer) Rank(sentences []string, threshold float64) []documentModel.RiskClause {
	clauses := []documentModel.RiskClause{}
	for i, sentence := range sentences {
		r := s.Score(sentence)
		if r < threshold {
			continue
		}
		clauses = append(clauses, documentModel.RiskClause{Index: i, Text: sentence, Risk: r})
	}
	sort.SliceStable(clauses, func(i, j int) bool {
		return clauses[i].Risk > clauses[j].Risk
	})
	return clauses
}
