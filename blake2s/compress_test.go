package blake2s

import (
	"math/rand"
	"testing"
)

// gInverse undoes G by running its steps backwards with the rotations
// reversed.
func gInverse(a, b, c, d, m0, m1 uint32) (uint32, uint32, uint32, uint32) {
	b = RotateLeft(b, 7) ^ c
	c = c - d
	d = RotateLeft(d, 8) ^ a
	a = a - b - m1
	b = RotateLeft(b, 12) ^ c
	c = c - d
	d = RotateLeft(d, 16) ^ a
	a = a - b - m0
	return a, b, c, d
}

func TestGInvertible(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	inputs := [][6]uint32{
		{0x6b08c647, 0x510e527f, 0x6a09e667, 0x510e523f, 0x03020100, 0x07060504},
		{0, 0, 0, 0, 0, 0},
		{0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff},
	}
	for i := 0; i < 1000; i++ {
		var in [6]uint32
		for j := range in {
			in[j] = rng.Uint32()
		}
		inputs = append(inputs, in)
	}
	for _, in := range inputs {
		a, b, c, d := G(in[0], in[1], in[2], in[3], in[4], in[5])
		ra, rb, rc, rd := gInverse(a, b, c, d, in[4], in[5])
		if ra != in[0] || rb != in[1] || rc != in[2] || rd != in[3] {
			t.Fatalf("G not inverted for %#08x: got %#08x %#08x %#08x %#08x", in, ra, rb, rc, rd)
		}
	}
}

func TestGStepMatchesG(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		a, b, c, d, m0, m1 := rng.Uint32(), rng.Uint32(), rng.Uint32(), rng.Uint32(), rng.Uint32(), rng.Uint32()
		st := GStep(a, b, c, d, m0, m1)
		wa, wb, wc, wd := G(a, b, c, d, m0, m1)
		ga, gb, gc, gd := st.Out()
		if ga != wa || gb != wb || gc != wc || gd != wd {
			t.Fatalf("GStep output differs from G for %#08x %#08x %#08x %#08x", a, b, c, d)
		}
		if st.D2 != RotateRight(d^st.A1, 16) || st.B2 != RotateRight(b^st.C1, 12) {
			t.Fatalf("inconsistent intermediates: %+v", st)
		}
	}
}

func TestRotate(t *testing.T) {
	if got := RotateRight(0x80000000, 31); got != 1 {
		t.Errorf("RotateRight(0x80000000, 31) = %#x, want 1", got)
	}
	if got := RotateRight(0x12345678, 16); got != 0x56781234 {
		t.Errorf("RotateRight(0x12345678, 16) = %#x", got)
	}
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		x := rng.Uint32()
		for _, n := range []uint{7, 8, 12, 16} {
			if RotateRight(RotateLeft(x, n), n) != x {
				t.Fatalf("rotation round trip failed for %#x by %d", x, n)
			}
		}
	}
}

type countingTracer struct {
	starts, gs, rounds, ends int

	hIn   [8]uint32
	vInit [16]uint32
	t     [2]uint32
	final bool
	order []int
	hOut  [8]uint32
}

func (c *countingTracer) CaptureCompressStart(block int, h *[8]uint32, m *[16]uint32, t [2]uint32, final bool, v *[16]uint32) {
	c.starts++
	c.hIn, c.vInit, c.t, c.final = *h, *v, t, final
}

func (c *countingTracer) CaptureG(block, round, index int, st *GState) {
	c.gs++
	if round == 0 {
		c.order = append(c.order, index)
	}
}

func (c *countingTracer) CaptureRound(block, round int, v *[16]uint32) {
	c.rounds++
}

func (c *countingTracer) CaptureCompressEnd(block int, v *[16]uint32, h *[8]uint32) {
	c.ends++
	c.hOut = *h
}

func TestTracerHooks(t *testing.T) {
	tr := new(countingTracer)
	d, err := New(&Config{Size: 32, Tracer: tr})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Absorb([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if tr.starts != 1 || tr.ends != 1 || tr.rounds != RoundCount || tr.gs != 8*RoundCount {
		t.Fatalf("unexpected hook counts: %+v", tr)
	}
	for i, idx := range tr.order {
		if i != idx {
			t.Fatalf("G calls out of order: %v", tr.order)
		}
	}
	if tr.hIn[0] != 0x6b08e647 {
		t.Errorf("h[0] before compression = %#08x, want 0x6b08e647", tr.hIn[0])
	}
	if tr.vInit[12] != 0x510e527c || tr.vInit[13] != IV5 || tr.vInit[14] != 0xe07c2654 {
		t.Errorf("counter/final injection wrong: v12=%#08x v13=%#08x v14=%#08x", tr.vInit[12], tr.vInit[13], tr.vInit[14])
	}
	if tr.t != [2]uint32{3, 0} || !tr.final {
		t.Errorf("traced t=%v final=%v", tr.t, tr.final)
	}
	if tr.hOut != d.State() {
		t.Errorf("traced output state differs from digest state")
	}

	// A traced and an untraced session must agree.
	plain, _ := Hash([]byte("abc"), 32, nil, nil, nil)
	traced, _ := d.Sum()
	if string(plain) != string(traced) {
		t.Errorf("tracing changed the digest: %x vs %x", traced, plain)
	}
}
