package trace

import (
	"github.com/b2model/blake2/blake2s"
)

// Mux fans every event out to a list of tracers, in order.
type Mux []blake2s.Tracer

func (m Mux) CaptureCompressStart(block int, h *[8]uint32, msg *[16]uint32, t [2]uint32, final bool, v *[16]uint32) {
	for _, tr := range m {
		tr.CaptureCompressStart(block, h, msg, t, final, v)
	}
}

func (m Mux) CaptureG(block, round, index int, st *blake2s.GState) {
	for _, tr := range m {
		tr.CaptureG(block, round, index, st)
	}
}

func (m Mux) CaptureRound(block, round int, v *[16]uint32) {
	for _, tr := range m {
		tr.CaptureRound(block, round, v)
	}
}

func (m Mux) CaptureCompressEnd(block int, v *[16]uint32, h *[8]uint32) {
	for _, tr := range m {
		tr.CaptureCompressEnd(block, v, h)
	}
}
