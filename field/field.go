// Package field samples uniform BabyBear field elements from a random
// byte stream using gnark-crypto
package field

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/field/babybear"
)

// BabyBear prime: 2^31 - 2^27 + 1 = 2013265921
const P uint64 = 2013265921

// Element represents a field element in BabyBear
type Element = babybear.Element

// maxAttempts bounds rejection sampling. Each 31-bit draw is accepted with
// probability P/2^31 > 0.93, so hitting the bound means a broken source.
const maxAttempts = 128

// NewElement creates a new field element
func NewElement(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

// ToBytes converts element to bytes
func ToBytes(e Element) []byte {
	b := e.Bytes()
	return b[:]
}

// Sample draws a uniformly distributed element from r by rejection
// sampling 31-bit big-endian words.
func Sample(r io.Reader) (Element, error) {
	var buf [4]byte
	for i := 0; i < maxAttempts; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Element{}, fmt.Errorf("field: failed to read randomness: %w", err)
		}
		v := uint64(binary.BigEndian.Uint32(buf[:]) & 0x7fffffff)
		if v < P {
			return NewElement(v), nil
		}
	}
	return Element{}, fmt.Errorf("field: no element accepted after %d attempts", maxAttempts)
}

// SampleN draws n independent uniform elements from r.
func SampleN(r io.Reader, n int) ([]Element, error) {
	out := make([]Element, n)
	for i := range out {
		e, err := Sample(r)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}
