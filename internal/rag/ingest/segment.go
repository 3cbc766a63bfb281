package ingest

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// a sentence ends at . ! or ? when the next word starts with a capital or an opening parenthesis
var sentenceBoundary = regexp.MustCompile(`[.!?](\s+)[A-Z(]`)

// SplitSentences is a heuristic for English legal prose. Abbreviations and numbered
// clauses ("No. 5", "s. 12(3)") will produce extra breaks.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, m := range sentenceBoundary.FindAllStringSubmatchIndex(text, -1) {
		gapStart, gapEnd := m[2], m[3]
		sentences = appendTrimmed(sentences, text[start:gapStart])
		start = gapEnd
	}
	return appendTrimmed(sentences, text[start:])
}

func appendTrimmed(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}

// ChunkByWords groups whitespace separated words into batches of maxWords.
func ChunkByWords(text string, maxWords int) []string {
	if maxWords <= 0 {
		maxWords = 1
	}
	words := strings.Fields(text)
	chunks := make([]string, 0, len(words)/maxWords+1)
	for i := 0; i < len(words); i += maxWords {
		end := min(i+maxWords, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// EstimateTokens approximates a subword token count at four characters per token.
func EstimateTokens(s string) int {
	return max(1, utf8.RuneCountInString(s)/4)
}

// ChunkByTokens packs whole sentences into chunks whose estimated token count stays within
// maxTokens. A single sentence larger than the budget becomes its own chunk.
func ChunkByTokens(text string, maxTokens int) []string {
	var (
		chunks  []string
		current []string
		used    int
	)
	for _, s := range SplitSentences(text) {
		est := EstimateTokens(s)
		if len(current) > 0 && used+est > maxTokens {
			chunks = append(chunks, strings.Join(current, " "))
			current, used = nil, 0
		}
		current = append(current, s)
		used += est
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
