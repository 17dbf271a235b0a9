package blake2s

import (
	"bytes"

	"github.com/pkg/errors"
)

// Grand hash of the RFC 7693 Appendix E self-test.
var selfTestResult = []byte{
	0x6a, 0x41, 0x1f, 0x08, 0xce, 0x25, 0xad, 0xcd,
	0xfb, 0x02, 0xab, 0xa6, 0x41, 0x45, 0x1c, 0xec,
	0x53, 0xc5, 0x98, 0xb2, 0x4f, 0x4f, 0xc7, 0x87,
	0xfb, 0xdc, 0x88, 0x79, 0x7f, 0x4c, 0x1d, 0xfe,
}

var (
	selfTestDigestLengths = []int{16, 20, 28, 32}
	selfTestInputLengths  = []int{0, 3, 64, 65, 255, 1024}
)

// selfTestSequence fills a buffer of the given length with the deterministic
// Fibonacci-style sequence of the RFC test harness.
func selfTestSequence(length int, seed uint32) []byte {
	out := make([]byte, length)
	a := 0xdead4bad * seed
	b := uint32(1)
	for i := range out {
		t := a + b
		a = b
		b = t
		out[i] = byte(t >> 24)
	}
	return out
}

// SelfTest runs the self-test of RFC 7693 Appendix E: keyed and unkeyed
// digests over a grid of digest and input lengths are concatenated and hashed,
// and the result is compared to the published grand hash.
func SelfTest() error {
	var transcript []byte
	for _, outlen := range selfTestDigestLengths {
		for _, inlen := range selfTestInputLengths {
			in := selfTestSequence(inlen, uint32(inlen))

			md, err := Hash(in, outlen, nil, nil, nil)
			if err != nil {
				return err
			}
			transcript = append(transcript, md...)

			key := selfTestSequence(outlen, uint32(outlen))
			md, err = Hash(in, outlen, key, nil, nil)
			if err != nil {
				return err
			}
			transcript = append(transcript, md...)
		}
	}
	sum := Sum256(transcript)
	if !bytes.Equal(sum[:], selfTestResult) {
		return errors.Errorf("blake2s: self-test grand hash %x, want %x", sum, selfTestResult)
	}
	return nil
}
