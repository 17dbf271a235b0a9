// Package blake2s implements a bit-exact model of the BLAKE2s hash function
// (RFC 7693) with support for keying, salting and personalization. BLAKE2s is
// optimized for 8- to 32-bit platforms and produces digests of any size
// between 1 and 32 bytes.
//
// Besides the whole-message Hash entry point, a Digest can be driven one
// 64-byte block at a time through Next and Finalize, and every compression
// can be observed through a Tracer. This makes the package usable as a golden
// reference when validating another implementation round by round.
package blake2s
