/*
Package normalize brings Vietnamese text into the canonical form expected by
the segmenters.

Text is composed to NFC, lower-cased with Vietnamese casing rules, and
stripped of every rune which is neither a letter of the Vietnamese alphabet
nor a space. Digits, punctuation and other whitespace (tabs, line breaks)
are dropped without replacement.
*/
package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Alphabet lists the lower-case letters of Vietnamese in NFC, tone-marked
// vowels included.
const Alphabet = "aàảãáạăằẳẵắặâầẩẫấậbcdđeèẻẽéẹêềểễếệfghiìỉĩíịjklmnoòỏõóọôồổỗốộơờởỡớợpqrstuùủũúụưừửữứựvwxyỳỷỹýỵz"

var letters = func() map[rune]struct{} {
	m := make(map[rune]struct{}, utf8.RuneCountInString(Alphabet))
	for _, r := range Alphabet {
		m[r] = struct{}{}
	}
	return m
}()

// IsLetter is a predicate: is r a lower-case letter of the alphabet?
func IsLetter(r rune) bool {
	_, ok := letters[r]
	return ok
}

// Text returns the normalized form of text. Runs of spaces are kept as they
// are.
func Text(text string) string {
	lower := cases.Lower(language.Vietnamese).String(norm.NFC.String(text))
	return strings.Map(func(r rune) rune {
		if r == ' ' || IsLetter(r) {
			return r
		}
		return -1
	}, lower)
}

// Syllables normalizes text and splits it into syllables.
func Syllables(text string) []string {
	return strings.Fields(Text(text))
}

// Word returns the canonical form of a word: its normalized syllables joined
// by single spaces.
func Word(text string) string {
	return strings.Join(Syllables(text), " ")
}
