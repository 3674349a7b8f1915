package simhash

import (
	"strings"

	"golang.org/x/net/html"
)

// FingerprintMarkup computes a SimHash over an HTML fragment's tag sequence
// and visible text, ignoring attributes. Listing pages rotate class names
// and tracking attributes between renders, so two sightings of the same
// listing element still fingerprint identically while two different
// listings sharing a template do not.
func FingerprintMarkup(htmlStr string) uint64 {
	tokens := markupTokens(htmlStr)
	if len(tokens) == 0 {
		return 0
	}

	shingles := makeShingles(tokens, 3)
	if len(shingles) == 0 {
		// Too few tokens for shingling; hash the token sequence directly.
		return Fingerprint(strings.Join(tokens, " "))
	}
	return Fingerprint(strings.Join(shingles, " "))
}

// markupTokens walks the fragment with the tokenizer and collects open tag
// names and text words in document order.
func markupTokens(htmlStr string) []string {
	tokenizer := html.NewTokenizer(strings.NewReader(htmlStr))
	var tokens []string

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return tokens
		case html.StartTagToken, html.SelfClosingTagToken:
			tn, _ := tokenizer.TagName()
			tokens = append(tokens, "<"+string(tn)+">")
		case html.TextToken:
			tokens = append(tokens, strings.Fields(string(tokenizer.Text()))...)
		}
	}
}

// makeShingles creates n-gram shingles from a slice of tokens.
func makeShingles(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}
	shingles := make([]string, 0, len(tokens)-n+1)
	for i := 0; i <= len(tokens)-n; i++ {
		shingles = append(shingles, strings.Join(tokens[i:i+n], "_"))
	}
	return shingles
}
