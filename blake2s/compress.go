package blake2s

// Positions in the working vector touched by the eight G calls of a round:
// four columns followed by four diagonals.
var gIndex = [8][4]int{
	{0, 4, 8, 12},
	{1, 5, 9, 13},
	{2, 6, 10, 14},
	{3, 7, 11, 15},
	{0, 5, 10, 15},
	{1, 6, 11, 12},
	{2, 7, 8, 13},
	{3, 4, 9, 14},
}

// RotateRight rotates the 32-bit word x right by n bits.
func RotateRight(x uint32, n uint) uint32 {
	n &= 31
	return (x >> n) | (x << (32 - n))
}

// RotateLeft rotates the 32-bit word x left by n bits.
func RotateLeft(x uint32, n uint) uint32 {
	n &= 31
	return (x << n) | (x >> (32 - n))
}

// G is the BLAKE2s mixing function. It mixes the message words m0 and m1 into
// the working vector words a, b, c and d.
func G(a, b, c, d, m0, m1 uint32) (uint32, uint32, uint32, uint32) {
	a = a + b + m0
	d = RotateRight(d^a, 16)
	c = c + d
	b = RotateRight(b^c, 12)
	a = a + b + m1
	d = RotateRight(d^a, 8)
	c = c + d
	b = RotateRight(b^c, 7)
	return a, b, c, d
}

// GState is a snapshot of one G evaluation: its six inputs and every
// intermediate value, named after the step that produces it.
type GState struct {
	A, B, C, D, M0, M1 uint32

	A1, A2         uint32
	B1, B2, B3, B4 uint32
	C1, C2         uint32
	D1, D2, D3, D4 uint32
}

// Out returns the four output words of the evaluation.
func (s *GState) Out() (uint32, uint32, uint32, uint32) {
	return s.A2, s.B4, s.C2, s.D4
}

// GStep evaluates G like G does but records every intermediate value.
func GStep(a, b, c, d, m0, m1 uint32) GState {
	s := GState{A: a, B: b, C: c, D: d, M0: m0, M1: m1}

	s.A1 = a + b + m0
	s.D1 = d ^ s.A1
	s.D2 = RotateRight(s.D1, 16)
	s.C1 = c + s.D2
	s.B1 = b ^ s.C1
	s.B2 = RotateRight(s.B1, 12)
	s.A2 = s.A1 + s.B2 + m1
	s.D3 = s.D2 ^ s.A2
	s.D4 = RotateRight(s.D3, 8)
	s.C2 = s.C1 + s.D4
	s.B3 = s.B2 ^ s.C2
	s.B4 = RotateRight(s.B3, 7)
	return s
}

// F is the BLAKE2s compression function. It advances h by one message block
// m, given the byte counter t and whether m is the final block.
func F(h *[8]uint32, m *[16]uint32, t [2]uint32, final bool) {
	compress(h, m, t, final, nil, 0)
}

func compress(h *[8]uint32, m *[16]uint32, t [2]uint32, final bool, tracer Tracer, block int) {
	// Create the internal round state. Copy the current hash state to the top,
	// then the tweaked IVs to the bottom.
	var v [16]uint32
	copy(v[:8], h[:])
	copy(v[8:], iv[:])
	v[12] ^= t[0]
	v[13] ^= t[1]
	if final {
		v[14] ^= 0xFFFFFFFF
	}

	if tracer != nil {
		tracer.CaptureCompressStart(block, h, m, t, final, &v)
	}

	for round := 0; round < RoundCount; round++ {
		s := &sigma[round%len(sigma)]
		for i, p := range gIndex {
			m0 := m[s[2*i]]
			m1 := m[s[2*i+1]]
			if tracer == nil {
				v[p[0]], v[p[1]], v[p[2]], v[p[3]] = G(v[p[0]], v[p[1]], v[p[2]], v[p[3]], m0, m1)
				continue
			}
			st := GStep(v[p[0]], v[p[1]], v[p[2]], v[p[3]], m0, m1)
			tracer.CaptureG(block, round, i, &st)
			v[p[0]], v[p[1]], v[p[2]], v[p[3]] = st.Out()
		}
		if tracer != nil {
			tracer.CaptureRound(block, round, &v)
		}
	}

	for i := 0; i < 8; i++ {
		h[i] = h[i] ^ v[i] ^ v[i+8]
	}

	if tracer != nil {
		tracer.CaptureCompressEnd(block, &v, h)
	}
}
