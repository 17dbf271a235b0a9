package blake2s

// Tracer observes the compression function of a Digest. Block is the
// zero-based index of the compression within the session, counting the key
// block when the hash is keyed. Pointer arguments are only valid for the
// duration of the call; implementations must copy what they keep.
type Tracer interface {
	// CaptureCompressStart is called once the working vector has been set
	// up, before the first round.
	CaptureCompressStart(block int, h *[8]uint32, m *[16]uint32, t [2]uint32, final bool, v *[16]uint32)
	// CaptureG is called after each of the eight G calls of a round; index
	// is 0..3 for the columns and 4..7 for the diagonals.
	CaptureG(block, round, index int, st *GState)
	// CaptureRound is called with the working vector at the end of a round.
	CaptureRound(block, round int, v *[16]uint32)
	// CaptureCompressEnd is called with the final working vector and the
	// updated hash state.
	CaptureCompressEnd(block int, v *[16]uint32, h *[8]uint32)
}
