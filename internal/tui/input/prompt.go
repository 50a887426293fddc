// Package input implements completion for the go-to prompt.
package input

import "strings"

// PromptKeyword describes a keyword suggestion entry.
type PromptKeyword struct {
	Name        string
	Description string
}

// MatchingKeywords returns keywords that start with the current input.
// Empty input and input containing a space match nothing.
func MatchingKeywords(input string, keywords []PromptKeyword) []PromptKeyword {
	prefix := strings.ToLower(strings.TrimSpace(input))
	if prefix == "" || strings.Contains(prefix, " ") {
		return nil
	}

	matches := make([]PromptKeyword, 0, len(keywords))
	for _, kw := range keywords {
		if strings.HasPrefix(strings.ToLower(kw.Name), prefix) {
			matches = append(matches, kw)
		}
	}
	return matches
}

// Autocomplete returns the first matching keyword and whether it exists.
func Autocomplete(input string, keywords []PromptKeyword) (string, bool) {
	matches := MatchingKeywords(input, keywords)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name, true
}
