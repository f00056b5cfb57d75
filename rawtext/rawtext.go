/*
Package rawtext reads unlabeled text, one sentence per line, as syllables.

Corpora like the Leipzig news collections prefix every line with a running
number and a tab; such a prefix consists of digits only and vanishes under
normalization.
*/
package rawtext

import (
	"bufio"
	"io"

	"github.com/npillmayer/wordseg"
	"github.com/npillmayer/wordseg/normalize"
)

// maxLine is the longest line accepted, in bytes.
const maxLine = 1 << 20

// Reader streams normalized sentences.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader creates a reader for raw text.
func NewReader(reader io.Reader) *Reader {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &Reader{scanner: scanner}
}

// Next is part of interface wordseg.SyllableReader. Lines without any
// syllable are skipped.
func (r *Reader) Next() ([]string, error) {
	for r.scanner.Scan() {
		if syllables := normalize.Syllables(r.scanner.Text()); len(syllables) > 0 {
			return syllables, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// LoadTransitionTable counts the syllable transitions of raw text.
func LoadTransitionTable(reader io.Reader) (*wordseg.TransitionTable, error) {
	return wordseg.BuildTransitionTable(NewReader(reader))
}
