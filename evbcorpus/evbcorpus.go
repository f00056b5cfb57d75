/*
Package evbcorpus reads word-segmented Vietnamese sentences from the SGML
files of the EVBCorpus (English-Vietnamese bilingual corpus).

A sentence pair looks like this:

	<spair id="12">
	<s id="en12">The pupil is good .</s>
	<s id="vn12">Học sinh giỏi .</s>
	<a>1-1,2;4-3;</a>
	</spair>

The line after the opening <spair> holds the English sentence and is
ignored. The Vietnamese sentence follows, then the word alignment. Each
alignment entry "e-v1,v2,..." lists the 1-based positions of the Vietnamese
syllables aligned to one English word. Syllables with consecutive positions
in one entry belong to the same word; every other syllable pair is separated
by a word boundary.
*/
package evbcorpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/wordseg"
	"github.com/npillmayer/wordseg/normalize"
)

// tracer writes to trace with key 'corpus'
func tracer() tracing.Trace {
	return tracing.Select("corpus")
}

var (
	sentenceMarkup   = regexp.MustCompile(`<.*?>|</s>`)
	alignmentMarkup  = regexp.MustCompile(`<.*?>|;</a>$`)
	recordIdentifier = regexp.MustCompile(`\d+`)
)

// Reader streams sentences from a single SGML source.
type Reader struct {
	scanner *bufio.Scanner
	name    string
	line    int
}

// NewReader creates a reader for SGML data. name is used in error messages.
func NewReader(name string, reader io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(reader),
		name:    name,
	}
}

func (r *Reader) scan() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	r.line++
	return r.scanner.Text(), true
}

// Next is part of interface wordseg.SentenceReader.
// A record which cannot be interpreted results in an error wrapping
// wordseg.ErrMalformedRecord; reading may continue after it.
func (r *Reader) Next() (wordseg.Sentence, error) {
	for {
		line, ok := r.scan()
		if !ok {
			break
		}
		if !strings.HasPrefix(line, "<spair") {
			continue
		}
		id := recordIdentifier.FindString(line)
		start := r.line
		var lines [3]string // English, Vietnamese, alignment
		for i := range lines {
			if lines[i], ok = r.scan(); !ok {
				if err := r.scanner.Err(); err != nil {
					return wordseg.Sentence{}, err
				}
				return wordseg.Sentence{}, fmt.Errorf("%w: %s:%d: record %s is truncated",
					wordseg.ErrMalformedRecord, r.name, start, id)
			}
		}
		s, err := ParseRecord(lines[1], lines[2])
		if err != nil {
			return s, fmt.Errorf("%s:%d: record %s: %w", r.name, start, id, err)
		}
		return s, nil
	}
	if err := r.scanner.Err(); err != nil {
		return wordseg.Sentence{}, err
	}
	return wordseg.Sentence{}, io.EOF
}

// ParseRecord interprets the Vietnamese sentence line and the alignment line
// of a sentence pair.
func ParseRecord(sentence, alignment string) (wordseg.Sentence, error) {
	syllables := normalize.Syllables(sentenceMarkup.ReplaceAllString(sentence, ""))
	if len(syllables) == 0 {
		return wordseg.Sentence{}, fmt.Errorf("%w: empty sentence", wordseg.ErrMalformedRecord)
	}
	boundaries := make(wordseg.Boundaries, len(syllables)-1)
	for i := range boundaries {
		boundaries[i] = true
	}
	for _, entry := range strings.Split(alignmentMarkup.ReplaceAllString(alignment, ""), ";") {
		_, targets, found := strings.Cut(entry, "-")
		if !found {
			return wordseg.Sentence{}, fmt.Errorf("%w: alignment entry %q", wordseg.ErrMalformedRecord, entry)
		}
		if i := strings.IndexByte(targets, '-'); i >= 0 {
			targets = targets[:i]
		}
		prev := -1
		for k, field := range strings.Split(targets, ",") {
			pos, err := strconv.Atoi(field)
			if err != nil {
				return wordseg.Sentence{}, fmt.Errorf("%w: alignment entry %q", wordseg.ErrMalformedRecord, entry)
			}
			pos-- // 0-based
			if k > 0 && prev+1 == pos {
				if prev < 0 || prev >= len(boundaries) {
					return wordseg.Sentence{}, fmt.Errorf("%w: syllable position %d out of range in %q",
						wordseg.ErrMalformedRecord, pos, entry)
				}
				boundaries[prev] = false
			}
			prev = pos
		}
	}
	return wordseg.Sentence{Syllables: syllables, Boundaries: boundaries}, nil
}

// MultiReader reads sentences from a sequence of files, one after the other.
type MultiReader struct {
	paths   []string
	file    *os.File
	current *Reader
}

// NewMultiReader creates a reader over the SGML files at paths. Files are
// opened one at a time, when reading reaches them.
func NewMultiReader(paths []string) *MultiReader {
	return &MultiReader{paths: paths}
}

// Next is part of interface wordseg.SentenceReader.
func (m *MultiReader) Next() (wordseg.Sentence, error) {
	for {
		if m.current == nil {
			if len(m.paths) == 0 {
				return wordseg.Sentence{}, io.EOF
			}
			f, err := os.Open(m.paths[0])
			if err != nil {
				return wordseg.Sentence{}, err
			}
			tracer().Debugf("reading corpus file %s", m.paths[0])
			m.file, m.current = f, NewReader(m.paths[0], f)
			m.paths = m.paths[1:]
		}
		s, err := m.current.Next()
		if err != io.EOF {
			return s, err
		}
		if err = m.Close(); err != nil {
			return wordseg.Sentence{}, err
		}
	}
}

// Close closes the file currently being read. Files not yet reached are
// never opened.
func (m *MultiReader) Close() error {
	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file, m.current = nil, nil
	return err
}
