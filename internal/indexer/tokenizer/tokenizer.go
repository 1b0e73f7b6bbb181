// Package tokenizer turns free text into the normalised word tokens used as
// index keys. Text is composed (NFKC), transliterated rune by rune to ASCII,
// lower-cased and split on every run of characters that is neither a letter,
// a digit nor a combining mark.
// Transliteration keeps the marks of abugidas and kana as letters
// ("किताब" -> "kitaab", "が" -> "ga"), so a word is never split or merged
// with another. Indexing and querying must go through the same functions
// here, otherwise the token sets diverge.
package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Slug normalises text and joins the resulting words with separator.
//
//	Slug("Crème Brûlée!", " ") == "creme brulee"
//	Slug("two THREE four?", "-") == "two-three-four"
func Slug(text string, separator string) string {
	return strings.Join(words(text), separator)
}

// Tokenize returns the normalised tokens of text in order, duplicates kept.
func Tokenize(text string) []string {
	return strings.Fields(Slug(text, " "))
}

func words(text string) []string {
	if text == "" {
		return nil
	}
	var b strings.Builder
	for _, r := range norm.NFKC.String(text) {
		switch {
		case !isWordRune(r):
			b.WriteByte(' ')
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		default:
			transliterate(&b, r)
		}
	}
	// Casers carry state, so one is built per call.
	return strings.Fields(cases.Lower(language.Und).String(b.String()))
}

// transliterate writes the ASCII letters and digits of r's transliteration.
// Punctuation in a transliteration would split the word, so it is dropped; a
// rune with no alphanumeric transliteration is kept as is so that two words
// differing only in that rune stay distinct.
func transliterate(b *strings.Builder, r rune) {
	kept := false
	for _, t := range unidecode.Unidecode(string(r)) {
		if t < utf8.RuneSelf && (unicode.IsLetter(t) || unicode.IsDigit(t)) {
			b.WriteRune(t)
			kept = true
		}
	}
	if !kept {
		b.WriteRune(r)
	}
}

// isWordRune reports whether r belongs to a word. Marks count: vowel signs
// and viramas are part of the word they attach to.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
