package summarize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/rag/ingest"
)

var wordPattern = regexp.MustCompile(`[A-Za-z]{3,}`)

type scoredSentence struct {
	score    int
	sentence string
}

// Extractive returns the highest scoring sentences of text, best first. A sentence scores one
// point per word of three or more letters and two more for every legal keyword among them.
func Extractive(text string, tunables config.ExtractiveTunables) []string {
	keywords := make(map[string]struct{}, len(tunables.Keywords))
	for _, k := range tunables.Keywords {
		keywords[strings.ToLower(k)] = struct{}{}
	}
	limit := tunables.MaxSentences
	if limit <= 0 {
		limit = config.DefaultExtractiveSentences
	}

	sentences := ingest.SplitSentences(text)
	scored := make([]scoredSentence, 0, len(sentences))
	for _, s := range sentences {
		scored = append(scored, scoredSentence{score: scoreSentence(s, keywords), sentence: s})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]string, 0, min(limit, len(scored)))
	for _, s := range scored[:min(limit, len(scored))] {
		out = append(out, s.sentence)
	}
	return out
}

func scoreSentence(sentence string, keywords map[string]struct{}) int {
	tokens := wordPattern.FindAllString(strings.ToLower(sentence), -1)
	score := len(tokens)
	for _, t := range tokens {
		if _, ok := keywords[t]; ok {
			score += 2
		}
	}
	return score
}
