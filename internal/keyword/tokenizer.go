// Package keyword provides tokenization, edit-distance metrics, the BK-tree
// vocabulary index, and the inverted index used for fuzzy keyword search.
package keyword

import (
	"iter"
	"strings"
	"unicode"
)

// Tokens returns a lazy sequence of the tokens in text. A token is a maximal run
// of letters and digits, lowercased. Every other rune is a delimiter. The
// sequence is restartable: ranging over it twice yields the same tokens.
func Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := -1
		for i, r := range text {
			if isTokenRune(r) {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 {
				if !yield(strings.ToLower(text[start:i])) {
					return
				}
				start = -1
			}
		}
		if start >= 0 {
			yield(strings.ToLower(text[start:]))
		}
	}
}

// Tokenize collects Tokens(text) into a slice.
func Tokenize(text string) []string {
	var tokens []string
	for tok := range Tokens(text) {
		tokens = append(tokens, tok)
	}
	return tokens
}

// NormalizeTitle reduces text to its tokens joined by single spaces, so that
// "Clean  Code!" and "clean code" compare equal.
func NormalizeTitle(text string) string {
	return strings.Join(Tokenize(text), " ")
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
