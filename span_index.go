package wordseg

import (
	"fmt"
	"sort"

	"github.com/npillmayer/wordseg/dat"
)

// spanIterator advances through successive syllable prefixes of one
// candidate word. Next returns the word spelled so far, if any.
type spanIterator interface {
	Next(symbol uint32) (WordID, bool)
}

type spanIndexStats struct {
	Backend    string
	UsedSlots  int
	TotalSlots int
	MaxStateID int
}

func (s spanIndexStats) FillRatio() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.UsedSlots) / float64(s.TotalSlots)
}

// spanIndex is the internal backend abstraction for syllable-keyed words.
type spanIndex interface {
	Insert(key []uint32, id WordID)
	Freeze()
	Frozen() bool
	Iterator() spanIterator
	Stats() spanIndexStats
}

type datBuildNode struct {
	word     WordID // -1 if not terminal
	state    uint32
	children map[uint32]*datBuildNode
}

func newBuildNode() *datBuildNode {
	return &datBuildNode{word: -1, children: make(map[uint32]*datBuildNode)}
}

// datIndex collects words in a pointer tree while the vocabulary is open and
// compiles them into a double-array trie on Freeze.
type datIndex struct {
	frozen   bool
	root     *datBuildNode
	nodes    int
	compiled *dat.DAT
}

func newDATIndex() *datIndex {
	return &datIndex{
		root:     newBuildNode(),
		nodes:    1,
		compiled: &dat.DAT{Root: 1},
	}
}

func (di *datIndex) Frozen() bool {
	return di.frozen
}

func (di *datIndex) Insert(key []uint32, id WordID) {
	assert(!di.frozen, "insert into frozen span index")
	n := di.root
	for _, c := range key {
		assert(c != 0, "span index key contains unknown symbol")
		child := n.children[c]
		if child == nil {
			child = newBuildNode()
			di.nodes++
			n.children[c] = child
		}
		n = child
	}
	n.word = id
}

func (di *datIndex) Freeze() {
	if di.frozen {
		return
	}
	d := di.compiled
	d.Grow(int(d.Root))
	di.root.state = d.Root
	queue := []*datBuildNode{di.root}
	for q := 0; q < len(queue); q++ {
		n := queue[q]
		if n.word >= 0 {
			d.Terminal[n.state] = int32(n.word) + 1
		}
		if len(n.children) == 0 {
			continue
		}
		labels := sortedLabels(n.children)
		if top := labels[len(labels)-1]; top > d.Sigma {
			d.Sigma = top
		}
		base := findDATBase(d.Check, labels, int(d.Root))
		d.Grow(base + int(labels[len(labels)-1]))
		d.Base[n.state] = int32(base)
		for _, label := range labels {
			t := base + int(label)
			child := n.children[label]
			child.state = uint32(t)
			d.Check[t] = int32(n.state)
			queue = append(queue, child)
		}
	}
	di.root = nil
	di.frozen = true
}

func (di *datIndex) Iterator() spanIterator {
	if di.frozen {
		return &datIterator{
			d:     di.compiled,
			state: di.compiled.Root,
		}
	}
	return &datBuildIterator{
		node: di.root,
	}
}

type datBuildIterator struct {
	node *datBuildNode
	dead bool
}

func (it *datBuildIterator) Next(symbol uint32) (WordID, bool) {
	if it.dead || it.node == nil || symbol == 0 {
		it.dead = true
		return 0, false
	}
	next := it.node.children[symbol]
	if next == nil {
		it.dead = true
		return 0, false
	}
	it.node = next
	return next.word, next.word >= 0
}

type datIterator struct {
	d     *dat.DAT
	state uint32
	dead  bool
}

func (it *datIterator) Next(symbol uint32) (WordID, bool) {
	if it.dead || it.d == nil || symbol == 0 {
		it.dead = true
		return 0, false
	}
	next, ok := it.d.Transition(it.state, symbol)
	if !ok {
		it.dead = true
		return 0, false
	}
	it.state = next
	w, ok := it.d.Word(next)
	return WordID(w), ok
}

func sortedLabels(children map[uint32]*datBuildNode) []uint32 {
	labels := make([]uint32, 0, len(children))
	for label := range children {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	})
	return labels
}

// findDATBase searches the smallest base at which all labels land on free
// slots. Slots at or below root are never handed out.
func findDATBase(check []int32, labels []uint32, root int) int {
	for base := 1; ; base++ {
		ok := true
		for _, label := range labels {
			t := base + int(label)
			if t <= root || (t < len(check) && check[t] != 0) {
				ok = false
				break
			}
		}
		if ok {
			return base
		}
	}
}

func (di *datIndex) String() string {
	return fmt.Sprintf("DAT(states=%d,sigma=%d,frozen=%v)", di.compiled.NStates(), di.compiled.Sigma, di.frozen)
}

func (di *datIndex) Stats() spanIndexStats {
	if !di.frozen {
		return spanIndexStats{Backend: "tree", UsedSlots: di.nodes, TotalSlots: di.nodes, MaxStateID: di.nodes}
	}
	d := di.compiled
	stats := spanIndexStats{
		Backend:    "dat",
		TotalSlots: d.NStates(),
		MaxStateID: int(d.Root),
	}
	used := 0
	for i := range d.Check {
		if i == int(d.Root) || d.Check[i] != 0 {
			used++
			if i > stats.MaxStateID {
				stats.MaxStateID = i
			}
		}
	}
	stats.UsedSlots = used
	return stats
}
