// Package tokenlib converts raw chapter text into word tokens
package tokenlib

import (
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"

	"github.com/mlombera94/harry-potter-text-analysis-part1/corpuslib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/stringlib"
)

/***************************************************************************************************************
****************************************************************************************************************
* TOKENIZER ****************************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

// Token is one word occurrence attributed to its book and 1-based chapter
type Token struct {
	Book    string
	Chapter int
	Word    string
}

// Tokenize splits text on word boundaries and removes punctuation marks.
// Apostrophes inside a word survive ("don't" stays whole); surrounding ones
// are stripped. Case is untouched, see LowercaseFilter.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		// Split on any character that is not a letter, a number or an apostrophe.
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f == "" {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// CountWords returns the number of tokens in the text
func CountWords(text string) int {
	return len(Tokenize(text))
}

// LowercaseFilter lowercases every token
func LowercaseFilter(tokens []string) []string {
	r := make([]string, len(tokens))
	for i, token := range tokens {
		r[i] = strings.ToLower(token)
	}
	return r
}

// StemmerFilter reduces every token to its snowball stem
func StemmerFilter(tokens []string) []string {
	r := make([]string, len(tokens))
	for i, token := range tokens {
		r[i] = snowballeng.Stem(token, false)
	}
	return r
}

// NumberFilter drops purely numeric tokens
func NumberFilter(tokens []string) []string {
	r := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if stringlib.IsNumeric(token) {
			continue
		}
		r = append(r, token)
	}
	return r
}

// StemTokens reduces every token word to its snowball stem, attribution and
// order preserved. The input slice is untouched.
func StemTokens(tokens []Token) []Token {
	r := make([]Token, len(tokens))
	for i, token := range tokens {
		r[i] = Token{Book: token.Book, Chapter: token.Chapter, Word: snowballeng.Stem(token.Word, false)}
	}
	return r
}

// Words is the analysis chain for a block of raw text: tokenized and
// lowercased, in reading order
func Words(text string) []string {
	return LowercaseFilter(Tokenize(text))
}

// FromBook emits one Token per word occurrence across the book's chapters,
// in reading order. Empty chapters contribute nothing.
func FromBook(b corpuslib.Book) []Token {
	var tokens []Token
	for ci, chapter := range b.Chapters {
		for _, w := range Words(chapter) {
			tokens = append(tokens, Token{Book: b.Name, Chapter: ci + 1, Word: w})
		}
	}
	return tokens
}

// FromCorpus tokenizes every book, corpus order preserved
func FromCorpus(c corpuslib.Corpus) []Token {
	var tokens []Token
	for _, b := range c.Books {
		tokens = append(tokens, FromBook(b)...)
	}
	return tokens
}
