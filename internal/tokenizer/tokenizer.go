package tokenizer

import (
	"regexp"
	"strings"

	"github.com/gcbaptista/go-ats-score/internal/stopwords"
)

// Punctuation is the ASCII punctuation set stripped during preprocessing.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// digitRegex matches runs of decimal digits in any script.
var digitRegex = regexp.MustCompile(`\p{Nd}+`)

// wordRegex matches analyzer terms: runs of at least two word characters.
var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// quoteRunes are the typographic quotes split off as tokens of their own.
const quoteRunes = "«“‘„»”’"

// contractions maps fused words to the parts the Treebank rules split them
// into. Forms containing an apostrophe cannot survive punctuation stripping.
var contractions = map[string][]string{
	"cannot": {"can", "not"},
	"gimme":  {"gim", "me"},
	"gonna":  {"gon", "na"},
	"gotta":  {"got", "ta"},
	"lemme":  {"lem", "me"},
	"wanna":  {"wan", "na"},
}

// Preprocess turns raw text into keyword tokens.
// It lowercases the text, removes digits and ASCII punctuation, splits it into
// words with Treebank rules and drops English stopwords. Order and duplicates
// are preserved.
func Preprocess(text string) []string {
	// 1. Lowercase
	lowerText := strings.ToLower(text)

	// 2. Remove digits
	noDigits := digitRegex.ReplaceAllString(lowerText, "")

	// 3. Remove punctuation
	cleaned := StripPunctuation(noDigits)

	// 4. Split into words and filter stopwords
	tokens := make([]string, 0) // Initialize as empty slice, not nil
	for _, word := range WordTokenize(cleaned) {
		if stopwords.English.Contains(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// WordTokenize splits text into words.
// Typographic quotes become separate tokens and fused forms such as "cannot"
// or "gonna" are split in two, as the Penn Treebank tokenizer does.
func WordTokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(quoteRunes, r) {
			b.WriteRune(' ')
			b.WriteRune(r)
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}

	fields := strings.Fields(b.String())
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		if parts, ok := contractions[strings.ToLower(field)]; ok {
			// keep the original casing of each half
			words = append(words, field[:len(parts[0])], field[len(parts[0]):])
			continue
		}
		words = append(words, field)
	}
	return words
}

// StripPunctuation removes every character of Punctuation from text.
func StripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(Punctuation, r) {
			return -1
		}
		return r
	}, text)
}

// Analyze splits a document into TF-IDF terms.
// Terms are lowercase runs of two or more word characters; the given stopword
// set is removed. A nil set disables stopword filtering.
func Analyze(text string, stop stopwords.Set) []string {
	matches := wordRegex.FindAllString(strings.ToLower(text), -1)

	terms := make([]string, 0, len(matches))
	for _, m := range matches {
		if stop != nil && stop.Contains(m) {
			continue
		}
		terms = append(terms, m)
	}
	return terms
}

// Counts builds a term frequency table from a token sequence.
func Counts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}

// Unique returns the distinct tokens as a set.
func Unique(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
