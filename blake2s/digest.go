package blake2s

import (
	"encoding/binary"
)

// Phase is the position of a Digest in its init/absorb/finalize lifecycle.
type Phase int

const (
	// PhaseInit is a fresh session; no block has been compressed.
	PhaseInit Phase = iota
	// PhaseAbsorbing means at least one non-final block was compressed.
	PhaseAbsorbing
	// PhaseFinalized means the final block was compressed; only Sum is
	// allowed from here on.
	PhaseFinalized
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseAbsorbing:
		return "absorbing"
	case PhaseFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Digest represents the internal state of the BLAKE2s algorithm. A Digest
// belongs to a single caller and must not be used concurrently.
type Digest struct {
	h [8]uint32
	t [2]uint32

	phase Phase

	// key holds the zero-padded key block until it has been compressed.
	key        [BlockSize]byte
	keyPending bool

	blocks int // compressions so far
	size   int
	tracer Tracer
}

// After this function is called, the ParameterBlock can be discarded.
func initFromParams(p *parameterBlock) *Digest {
	return &Digest{
		h:    p.initialState(),
		size: int(p.DigestSize),
	}
}

// New constructs a hashing session for the given configuration. A nil config
// selects an unkeyed 32-byte digest.
func New(c *Config) (*Digest, error) {
	if c == nil {
		c = defaultConfig
	}
	if err := verifyConfig(c); err != nil {
		return nil, err
	}

	params := &parameterBlock{
		DigestSize:      byte(c.Size),
		KeyLength:       byte(len(c.Key)),
		fanout:          1, // sequential mode
		depth:           1, // sequential mode
		Salt:            c.Salt,
		Personalization: c.Personalization,
	}

	// Initialize the internal state
	d := initFromParams(params)
	d.tracer = c.Tracer

	if len(c.Key) > 0 {
		// The key, padded to a full block, is the first block of the input.
		copy(d.key[:], c.Key)
		d.keyPending = true
	}
	return d, nil
}

// NewDigest constructs a new instance of a BLAKE2s hash with the provided
// configuration.
func NewDigest(key, salt, personalization []byte, outputBytes int) (*Digest, error) {
	return New(&Config{
		Size:            outputBytes,
		Key:             key,
		Salt:            salt,
		Personalization: personalization,
	})
}

// increment counter, preserving overflow behavior
func (d *Digest) increment(n uint32) {
	d.t[0] += n
	if d.t[0] < n {
		d.t[1]++
	}
}

func (d *Digest) compressBlock(block *[BlockSize]byte, n int, final bool) {
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(block[4*i:])
	}
	d.increment(uint32(n))
	compress(&d.h, &m, d.t, final, d.tracer, d.blocks)
	d.blocks++
}

func (d *Digest) flushKey() {
	if d.keyPending {
		d.keyPending = false
		d.compressBlock(&d.key, BlockSize, false)
		d.key = [BlockSize]byte{}
		d.phase = PhaseAbsorbing
	}
}

// Next compresses one full, non-final 64-byte block.
func (d *Digest) Next(block []byte) error {
	if d.phase == PhaseFinalized {
		return stateError("next block after finalization")
	}
	if len(block) != BlockSize {
		return stateError("next block is %d bytes, want %d", len(block), BlockSize)
	}
	d.flushKey()

	var buf [BlockSize]byte
	copy(buf[:], block)
	d.compressBlock(&buf, BlockSize, false)
	d.phase = PhaseAbsorbing
	return nil
}

// Finalize compresses the last block of the message, which may hold anywhere
// from 0 to 64 bytes. The counter advances by the real length of the block
// and the block is zero-padded before compression.
func (d *Digest) Finalize(block []byte) error {
	if d.phase == PhaseFinalized {
		return stateError("finalize called twice")
	}
	if len(block) > BlockSize {
		return stateError("final block is %d bytes, want at most %d", len(block), BlockSize)
	}

	if d.keyPending && len(block) == 0 {
		// A keyed hash of the empty message has the key block as its
		// only, and therefore final, block.
		d.keyPending = false
		d.compressBlock(&d.key, BlockSize, true)
		d.key = [BlockSize]byte{}
	} else {
		d.flushKey()

		var buf [BlockSize]byte
		copy(buf[:], block)
		d.compressBlock(&buf, len(block), true)
	}
	d.phase = PhaseFinalized
	return nil
}

// Absorb hashes a whole message: every complete block except the last goes
// through Next, the remainder (possibly empty, possibly a full block) through
// Finalize.
func (d *Digest) Absorb(message []byte) error {
	if d.phase == PhaseFinalized {
		return stateError("absorb after finalization")
	}
	for len(message) > BlockSize {
		if err := d.Next(message[:BlockSize]); err != nil {
			return err
		}
		message = message[BlockSize:]
	}
	return d.Finalize(message)
}

// Sum returns the digest, truncated to the configured size. It fails unless
// the final block has been compressed.
func (d *Digest) Sum() ([]byte, error) {
	if d.phase != PhaseFinalized {
		return nil, stateError("digest requested in phase %s", d.phase)
	}
	var buf [MaxOutput]byte
	for i, w := range d.h {
		binary.LittleEndian.PutUint32(buf[4*i:], w)
	}
	out := make([]byte, d.size)
	copy(out, buf[:d.size])
	return out, nil
}

// Phase reports the lifecycle phase of the session.
func (d *Digest) Phase() Phase { return d.phase }

// State returns a copy of the current hash state h.
func (d *Digest) State() [8]uint32 { return d.h }

// Counter returns the byte counter t as (low, high) words.
func (d *Digest) Counter() [2]uint32 { return d.t }

// Blocks returns the number of compressions performed so far.
func (d *Digest) Blocks() int { return d.blocks }

// Size returns the digest output size in bytes.
func (d *Digest) Size() int { return d.size }

// BlockSize returns the hash's underlying block size.
func (d *Digest) BlockSize() int { return BlockSize }
