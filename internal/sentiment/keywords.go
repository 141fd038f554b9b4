package sentiment

import "strings"

var (
	positiveKeywords = []string{"excellent", "great", "amazing", "wonderful", "good", "helpful", "love", "best"}
	negativeKeywords = []string{"terrible", "awful", "bad", "hate", "worst", "horrible", "disappointed"}
)

// Keyword classifies a comment by case-insensitive substring match.
// The positive set is checked first, so a comment matching both sets is Positive.
func Keyword(comment string) Sentiment {
	lower := strings.ToLower(comment)

	if containsAny(lower, positiveKeywords) {
		return Positive
	}
	if containsAny(lower, negativeKeywords) {
		return Negative
	}
	return Neutral
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
