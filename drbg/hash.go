package drbg

import (
	"encoding/binary"

	"github.com/aerius-labs/hash-drbg-go/hashfn"
	"github.com/aerius-labs/hash-drbg-go/internal/bytemath"
)

// hash returns the digest of the concatenated blocks. The result aliases
// the Context scratch buffer and is only valid until the next call.
func (c *Context) hash(blocks ...[]byte) []byte {
	hashfn.SumWith(c.h, c.digest[:], blocks...)
	return c.digest[:c.blockSize]
}

// hashDF is the Hash_df derivation function (SP 800-90A 10.3.1). It
// fills out entirely from the concatenation of inputs.
func (c *Context) hashDF(out []byte, inputs ...[]byte) {
	n := (len(out) + c.blockSize - 1) / c.blockSize
	if n > 255 {
		panic("drbg: Hash_df output too long")
	}

	// counter || no_of_bits_to_return
	var header [5]byte
	binary.BigEndian.PutUint32(header[1:], uint32(len(out))*8)

	blocks := make([][]byte, 0, len(inputs)+1)
	blocks = append(blocks, header[:])
	blocks = append(blocks, inputs...)

	for i, off := 1, 0; i <= n; i++ {
		header[0] = byte(i)
		off += copy(out[off:], c.hash(blocks...))
	}
	bytemath.Zero(c.digest[:])
}

// hashgen is the Hashgen function (SP 800-90A 10.1.1.4), filling out from
// successive digests of V, V+1, V+2, ...
func (c *Context) hashgen(out []byte) {
	var data [MaxSeedLen]byte
	d := data[:c.seedLen]
	copy(d, c.v[:c.seedLen])

	for off := 0; off < len(out); off += c.blockSize {
		copy(out[off:], c.hash(d))
		bytemath.Increment(d, 1)
	}
	bytemath.Zero(d)
}

// deriveC sets C = Hash_df(0x00 || V, seedlen).
func (c *Context) deriveC() {
	c.hashDF(c.c[:c.seedLen], prefixC, c.v[:c.seedLen])
}
