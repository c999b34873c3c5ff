package services

import "strings"

// Tokenize splits text into lowercase tokens.
// A token is a maximal run of ASCII letters or digits; every other
// character, including non-ASCII letters, separates tokens.
func Tokenize(text string) []string {
	tokens := make([]string, 0, len(text)/5+1)
	start := -1
	for i := 0; i < len(text); i++ {
		if isTokenByte(text[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, strings.ToLower(text[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, strings.ToLower(text[start:]))
	}
	return tokens
}

// Normalize returns the tokens of text joined by single spaces.
func Normalize(text string) string {
	return strings.Join(Tokenize(text), " ")
}

// TokenSet returns the distinct tokens of text.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func isTokenByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
