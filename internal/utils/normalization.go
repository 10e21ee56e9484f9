package utils

import "strings"

func NormalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

func NormalizeDifficulty(difficulty string) string {
	return strings.ToLower(strings.TrimSpace(difficulty))
}

func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
