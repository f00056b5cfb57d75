package dat

// DAT is a frozen double-array trie over dense syllable symbols.
// - Nodes/states are indices into Base/Check (0 is unused; Root is typically 1).
// - Transition: t := Base[s] + c; valid if Check[t] == s; next state is t.
// - c is a dense symbol ID in [1..Sigma]. c==0 means "unknown symbol".
//
// Terminals:
//   - If Terminal[s] != 0, the path from Root to s spells a complete word,
//     and Terminal[s]-1 is the word's identifier.
type DAT struct {
	// Root state index (commonly 1).
	Root uint32

	// Sigma is the size of the dense alphabet (maximum dense ID).
	Sigma uint32

	// Base and Check are the classic double-array.
	Base  []int32 // len == N
	Check []int32 // len == N

	// Terminal holds word identifiers + 1 for terminal states, 0 otherwise.
	Terminal []int32 // len == N
}

// NStates returns number of allocated slots/states in the arrays.
func (d *DAT) NStates() int { return len(d.Base) }

// Transition returns (nextState, ok). dense must be in [1..Sigma].
func (d *DAT) Transition(state uint32, dense uint32) (uint32, bool) {
	if dense == 0 || int(state) >= len(d.Base) || int(state) >= len(d.Check) {
		return 0, false
	}
	t := int64(d.Base[state]) + int64(dense)
	if t <= 0 || int(t) >= len(d.Check) {
		return 0, false
	}
	if d.Check[t] != int32(state) {
		return 0, false
	}
	return uint32(t), true
}

// Word returns the word identifier stored at state, if state is terminal.
func (d *DAT) Word(state uint32) (int32, bool) {
	if int(state) >= len(d.Terminal) || d.Terminal[state] == 0 {
		return 0, false
	}
	return d.Terminal[state] - 1, true
}

// Grow makes sure idx is a valid index into all state arrays.
func (d *DAT) Grow(idx int) {
	if idx < len(d.Base) {
		return
	}
	grow := idx + 1 - len(d.Base)
	d.Base = append(d.Base, make([]int32, grow)...)
	d.Check = append(d.Check, make([]int32, grow)...)
	d.Terminal = append(d.Terminal, make([]int32, grow)...)
}
