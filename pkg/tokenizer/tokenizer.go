// Package tokenizer estimates model token counts for mixed Arabic and
// English text.
package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// EstimateTokens provides a rough token count estimate.
// Uses the average of ~1.3 tokens per word and ~4 characters per token.
// Characters are counted as runes so Arabic text is not over-counted.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	chars := utf8.RuneCountInString(text)

	wordEstimate := int(float64(words) * 1.3)
	charEstimate := chars / 4

	return (wordEstimate + charEstimate) / 2
}

// TruncateToTokenBudget truncates text so that its estimate, including the
// trailing ellipsis, fits within budget. The cut falls on a rune and
// preferably on a word boundary.
func TruncateToTokenBudget(text string, budget int) string {
	if budget <= 0 {
		return ""
	}
	if EstimateTokens(text) <= budget {
		return text
	}

	// The estimate of a prefix never decreases as the prefix grows, so the
	// longest fitting prefix can be found by bisection.
	runes := []rune(text)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if EstimateTokens(string(runes[:mid])+"...") <= budget {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	truncated := string(runes[:lo])
	if lastSpace := strings.LastIndexAny(truncated, " \n\t"); lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}

	return truncated + "..."
}
