// Package trace records, renders, parses and compares the compression traces
// of a BLAKE2s session. A trace holds, for every compressed block, the inputs
// of F, the working vector before the first round and after each round, and
// the resulting hash state, so that an independent implementation can be
// checked word by word.
package trace

import (
	"github.com/b2model/blake2/blake2s"
)

// Block is the trace of one compression.
type Block struct {
	Index int
	Final bool
	T     [2]uint32
	H     [8]uint32  // hash state before compression
	M     [16]uint32 // message words
	V     [16]uint32 // working vector before round 0

	// Rounds[r] is the working vector at the end of round r.
	Rounds [blake2s.RoundCount][16]uint32

	Out [8]uint32 // hash state after compression

	// G holds every mixing step when the recorder was asked for them.
	G []GRecord
}

// GRecord is one G evaluation inside a round.
type GRecord struct {
	Round int
	Index int
	State blake2s.GState
}

// Recorder is a blake2s.Tracer that keeps a copy of every compression.
type Recorder struct {
	Blocks []Block

	withG bool
}

// NewRecorder returns an empty recorder. If withG is set, the recorder also
// keeps the intermediate values of every G call.
func NewRecorder(withG bool) *Recorder {
	return &Recorder{withG: withG}
}

func (r *Recorder) current() *Block {
	return &r.Blocks[len(r.Blocks)-1]
}

func (r *Recorder) CaptureCompressStart(block int, h *[8]uint32, m *[16]uint32, t [2]uint32, final bool, v *[16]uint32) {
	r.Blocks = append(r.Blocks, Block{
		Index: block,
		Final: final,
		T:     t,
		H:     *h,
		M:     *m,
		V:     *v,
	})
}

func (r *Recorder) CaptureG(block, round, index int, st *blake2s.GState) {
	if !r.withG {
		return
	}
	b := r.current()
	b.G = append(b.G, GRecord{Round: round, Index: index, State: *st})
}

func (r *Recorder) CaptureRound(block, round int, v *[16]uint32) {
	r.current().Rounds[round] = *v
}

func (r *Recorder) CaptureCompressEnd(block int, v *[16]uint32, h *[8]uint32) {
	r.current().Out = *h
}

// Capture hashes message under cfg and returns the digest along with the
// trace of every compression. cfg.Tracer, if set, keeps receiving events.
func Capture(cfg blake2s.Config, message []byte, withG bool) ([]Block, []byte, error) {
	rec := NewRecorder(withG)
	if cfg.Tracer != nil {
		cfg.Tracer = Mux{rec, cfg.Tracer}
	} else {
		cfg.Tracer = rec
	}

	d, err := blake2s.New(&cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := d.Absorb(message); err != nil {
		return nil, nil, err
	}
	sum, err := d.Sum()
	if err != nil {
		return nil, nil, err
	}
	return rec.Blocks, sum, nil
}
