package blake2s

import (
	"encoding/binary"
)

// The constant values will be different for other BLAKE2 variants. These are
// appropriate for BLAKE2s.
const (
	// The length of the key field.
	KeyLength = 32
	// The maximum number of bytes to produce.
	MaxOutput = 32
	// Max size of the salt, in bytes
	SaltLength = 8
	// Max size of the personalization string, in bytes
	SeparatorLength = 8
	// Number of G function rounds for BLAKE2s.
	RoundCount = 10
	// Size of a block buffer in bytes
	BlockSize = 64
	// Size of the packed parameter block in bytes
	ParamSize = 32

	// Initialization vector for BLAKE2s
	IV0 uint32 = 0x6a09e667
	IV1 uint32 = 0xbb67ae85
	IV2 uint32 = 0x3c6ef372
	IV3 uint32 = 0xa54ff53a
	IV4 uint32 = 0x510e527f
	IV5 uint32 = 0x9b05688c
	IV6 uint32 = 0x1f83d9ab
	IV7 uint32 = 0x5be0cd19
)

var iv = [8]uint32{IV0, IV1, IV2, IV3, IV4, IV5, IV6, IV7}

// Lookup table of the permutations of 0...15 used by the BLAKE2 round
// function. Row r selects the message words of round r.
var sigma = [RoundCount][16]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

// IV returns a copy of the BLAKE2s initialization vector.
func IV() [8]uint32 { return iv }

// Sigma returns a copy of the message schedule permutation table.
func Sigma() [RoundCount][16]uint8 { return sigma }

// These are the user-visible parameters of a BLAKE2 hash instance. The
// parameter block is XOR'd with the IV at the beginning of the hash.
// Currently we only support sequential mode, so many of these values will be
// hardcoded to a default. They are nevertheless defined for clarity.
type parameterBlock struct {
	DigestSize      byte   // 0
	KeyLength       byte   // 1
	fanout          byte   // 2
	depth           byte   // 3
	leafLength      uint32 // 4-7
	nodeOffset      uint64 // 8-13, 48 bits
	nodeDepth       byte   // 14
	innerLength     byte   // 15
	Salt            []byte // 16-23
	Personalization []byte // 24-31
}

// Packs a BLAKE2s parameter block.
func (p *parameterBlock) Marshal() []byte {
	buf := make([]byte, ParamSize)
	buf[0] = p.DigestSize
	buf[1] = p.KeyLength
	buf[2] = p.fanout
	buf[3] = p.depth
	binary.LittleEndian.PutUint32(buf[4:], p.leafLength)
	binary.LittleEndian.PutUint32(buf[8:], uint32(p.nodeOffset))
	binary.LittleEndian.PutUint16(buf[12:], uint16(p.nodeOffset>>32))
	buf[14] = p.nodeDepth
	buf[15] = p.innerLength
	copy(buf[16:24], p.Salt)
	copy(buf[24:32], p.Personalization)
	return buf
}

// initialState XORs the packed parameter block into the IV, word by word.
func (p *parameterBlock) initialState() [8]uint32 {
	paramBytes := p.Marshal()

	var h [8]uint32
	for i := range h {
		h[i] = iv[i] ^ binary.LittleEndian.Uint32(paramBytes[4*i:])
	}
	return h
}

// Config holds the parameters of a hashing session. Key, Salt and
// Personalization are optional; shorter salts and personalization strings are
// right-padded with zeros.
type Config struct {
	Size            int // digest size in bytes, 1..MaxOutput
	Key             []byte
	Salt            []byte
	Personalization []byte

	// Tracer, when non-nil, observes every compression of the session.
	Tracer Tracer
}

var defaultConfig = &Config{Size: MaxOutput}

func verifyConfig(c *Config) error {
	if c.Size <= 0 || c.Size > MaxOutput {
		return configError("digest size %d out of range 1..%d", c.Size, MaxOutput)
	}
	if len(c.Key) > KeyLength {
		return configError("key length %d exceeds %d", len(c.Key), KeyLength)
	}
	if len(c.Salt) > SaltLength {
		return configError("salt length %d exceeds %d", len(c.Salt), SaltLength)
	}
	if len(c.Personalization) > SeparatorLength {
		return configError("personalization length %d exceeds %d", len(c.Personalization), SeparatorLength)
	}
	return nil
}

// Hash computes the BLAKE2s digest of message in one shot. A nil or empty key
// produces an unkeyed hash.
func Hash(message []byte, size int, key, salt, personalization []byte) ([]byte, error) {
	d, err := New(&Config{
		Size:            size,
		Key:             key,
		Salt:            salt,
		Personalization: personalization,
	})
	if err != nil {
		return nil, err
	}
	if err := d.Absorb(message); err != nil {
		return nil, err
	}
	return d.Sum()
}

// Sum256 returns the unkeyed BLAKE2s-256 digest of data.
func Sum256(data []byte) [MaxOutput]byte {
	var sum [MaxOutput]byte
	d, _ := New(defaultConfig)
	d.Absorb(data)
	out, _ := d.Sum()
	copy(sum[:], out)
	return sum
}
