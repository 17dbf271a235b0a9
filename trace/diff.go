package trace

import (
	"fmt"
)

// Mismatch is one word that differs between two traces.
type Mismatch struct {
	Block   int    // position of the block in the trace
	Section string // "count", "final", "t", "h", "m", "init", "round" or "out"
	Round   int    // round number for Section "round", -1 otherwise
	Word    int
	Want    uint32
	Have    uint32
}

func (m Mismatch) String() string {
	switch m.Section {
	case "count":
		return fmt.Sprintf("trace has %d blocks, want %d", m.Have, m.Want)
	case "final":
		return fmt.Sprintf("block %d: final flag %d, want %d", m.Block, m.Have, m.Want)
	case "round":
		return fmt.Sprintf("block %d round %d: v[%d] = 0x%08x, want 0x%08x", m.Block, m.Round, m.Word, m.Have, m.Want)
	}
	return fmt.Sprintf("block %d %s: word %d = 0x%08x, want 0x%08x", m.Block, m.Section, m.Word, m.Have, m.Want)
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Diff compares have against want and returns every differing word, ordered
// by block, then by position in the compression: inputs first, then the
// working vector before and after each round, then the output state. The
// first element is therefore the earliest divergence.
func Diff(want, have []Block) []Mismatch {
	var out []Mismatch

	n := len(want)
	if len(have) < n {
		n = len(have)
	}
	for i := 0; i < n; i++ {
		w, h := &want[i], &have[i]
		add := func(section string, round int, ws, hs []uint32) {
			for j := range ws {
				if ws[j] != hs[j] {
					out = append(out, Mismatch{Block: i, Section: section, Round: round, Word: j, Want: ws[j], Have: hs[j]})
				}
			}
		}
		if w.Final != h.Final {
			out = append(out, Mismatch{Block: i, Section: "final", Round: -1, Want: boolWord(w.Final), Have: boolWord(h.Final)})
		}
		add("t", -1, w.T[:], h.T[:])
		add("h", -1, w.H[:], h.H[:])
		add("m", -1, w.M[:], h.M[:])
		add("init", -1, w.V[:], h.V[:])
		for r := range w.Rounds {
			add("round", r, w.Rounds[r][:], h.Rounds[r][:])
		}
		add("out", -1, w.Out[:], h.Out[:])
	}
	if len(want) != len(have) {
		out = append(out, Mismatch{Block: n, Section: "count", Round: -1, Want: uint32(len(want)), Have: uint32(len(have))})
	}
	return out
}
