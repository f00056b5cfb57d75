/*
Package wordlist reads dictionaries in plain-text form, one word per line.

Words are normalized (see package normalize); syllables of a word are
separated by whitespace. Lines which are empty after normalization are
skipped.
*/
package wordlist

import (
	"bufio"
	"io"

	"github.com/npillmayer/wordseg"
	"github.com/npillmayer/wordseg/normalize"
)

// Reader streams dictionary words.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader creates a reader for a word list.
func NewReader(reader io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(reader),
	}
}

// Next is part of interface wordseg.WordReader. It returns words in
// canonical form and io.EOF when exhausted.
func (r *Reader) Next() (string, error) {
	for r.scanner.Scan() {
		if word := normalize.Word(r.scanner.Text()); word != "" {
			return word, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// LoadVocabulary reads a word list and returns it as a frozen vocabulary.
func LoadVocabulary(name string, reader io.Reader) (*wordseg.Vocabulary, error) {
	return wordseg.LoadVocabulary(name, NewReader(reader))
}
