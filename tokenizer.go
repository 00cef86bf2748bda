package fenc

import (
	"regexp"
	"sort"
	"unicode/utf8"
)

// wordPattern matches maximal runs of code points in the Letter,
// Nonspacing Mark, Decimal Number, or Connector Punctuation Unicode
// categories, the same shape as the regex [\p{L}\p{Mn}\p{Nd}\p{Pc}]+.
var wordPattern = regexp.MustCompile(`[\p{L}\p{Mn}\p{Nd}\p{Pc}]+`)

// ExtractWords returns the maximal token runs in text whose code-point
// length is between MinTokenLen and MaxTokenLen inclusive, sorted in
// lexicographic (code-point) order. Byte-wise comparison of valid
// UTF-8 strings already yields code-point order, so sort.Strings is
// sufficient.
func ExtractWords(text string) []string {
	matches := wordPattern.FindAllString(text, -1)

	words := make([]string, 0, len(matches))
	for _, m := range matches {
		n := utf8.RuneCountInString(m)
		if n >= MinTokenLen && n <= MaxTokenLen {
			words = append(words, m)
		}
	}

	sort.Strings(words)
	return words
}

// ExpandPrefixes emits, for a word w of rune length n (4 <= n <= 12):
// for i from 3 to n-2, the prefix of rune-length i+1 followed by "*",
// then finally w itself with no asterisk. A word of length exactly 4
// produces no prefix variant, only the word.
func ExpandPrefixes(w string) []string {
	runes := []rune(w)
	n := len(runes)

	var out []string
	for i := 3; i <= n-2; i++ {
		out = append(out, string(runes[:i+1])+"*")
	}
	out = append(out, w)
	return out
}

// ExtractVariants runs ExtractWords followed by ExpandPrefixes on each
// retained word, concatenating the per-word lists in extraction order.
func ExtractVariants(text string) []string {
	words := ExtractWords(text)

	var variants []string
	for _, w := range words {
		variants = append(variants, ExpandPrefixes(w)...)
	}
	return variants
}
