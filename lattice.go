package wordseg

// Edge is a candidate word spanning the syllables [From, To).
// Word is the vocabulary identifier of the span, or NoWord for a single
// syllable which is not a vocabulary member.
type Edge struct {
	From, To int
	Word     WordID
}

// Span returns the syllable range covered by e.
func (e Edge) Span() Span {
	return Span{Start: e.From, End: e.To}
}

// Lattice is a DAG over the boundary positions 0..N of a syllable sequence.
// Edges are stored flat, ordered by (From, To); the outgoing edges of vertex i
// are Edges[First[i]:First[i+1]]. Vertex 0 has an implicit predecessor BOS,
// vertex N an implicit successor EOS.
type Lattice struct {
	N     int
	Edges []Edge
	First []int
}

// Out returns the outgoing edges of vertex i, ordered by ascending end.
func (l *Lattice) Out(i int) []Edge {
	if i < 0 || i >= l.N {
		return nil
	}
	return l.Edges[l.First[i]:l.First[i+1]]
}

// BuildLattice enumerates the candidate words of syllables.
//
// For every start position the candidate is extended one syllable at a time.
// A span of length 1 is always an edge. A longer span is an edge if it is a
// member of vocab; extension for this start stops at the first longer span
// which is not, even if a longer word starting there would exist.
func BuildLattice(syllables []string, vocab *Vocabulary) *Lattice {
	n := len(syllables)
	l := &Lattice{
		N:     n,
		Edges: make([]Edge, 0, 2*n),
		First: make([]int, n+1),
	}
	w := vocab.Walker()
	for i := 0; i < n; i++ {
		l.First[i] = len(l.Edges)
		w.Reset()
		for j := i; j < n; j++ {
			id, ok := w.Next(syllables[j])
			if j > i && !ok {
				break
			}
			if !ok {
				id = NoWord
			}
			l.Edges = append(l.Edges, Edge{From: i, To: j + 1, Word: id})
		}
	}
	l.First[n] = len(l.Edges)
	tracer().Debugf("lattice for %d syllables has %d edges", n, len(l.Edges))
	return l
}
