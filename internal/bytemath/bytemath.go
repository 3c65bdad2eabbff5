// Package bytemath implements arithmetic on fixed-length big-endian byte
// arrays. All operations wrap silently modulo 2^(8*len(a)).
package bytemath

import "math/bits"

// Increment adds value to the big-endian integer a in place.
// Overflow past the most significant byte is discarded.
func Increment(a []byte, value uint8) {
	carry := uint16(value)
	for i := len(a) - 1; i >= 0 && carry != 0; i-- {
		sum := uint16(a[i]) + carry
		a[i] = byte(sum)
		carry = sum >> 8
	}
}

// Add adds the big-endian integer b into a in place, right-aligned.
// b must not be longer than a.
func Add(a, b []byte) {
	if len(b) > len(a) {
		panic("bytemath: addend longer than accumulator")
	}

	offset := len(a) - len(b)
	var carry uint16
	for i := len(b) - 1; i >= 0; i-- {
		sum := uint16(a[offset+i]) + uint16(b[i]) + carry
		a[offset+i] = byte(sum)
		carry = sum >> 8
	}
	for i := offset - 1; i >= 0 && carry != 0; i-- {
		sum := uint16(a[i]) + carry
		a[i] = byte(sum)
		carry = sum >> 8
	}
}

// NBits returns the bit length of the big-endian integer a.
// The zero value has a bit length of 0.
func NBits(a []byte) int {
	for i, b := range a {
		if b != 0 {
			return (len(a)-i-1)*8 + bits.Len8(b)
		}
	}
	return 0
}

// IsNotZero reports whether any byte of a is set.
func IsNotZero(a []byte) bool {
	var acc byte
	for _, b := range a {
		acc |= b
	}
	return acc != 0
}

// Zero wipes a.
func Zero(a []byte) {
	for i := range a {
		a[i] = 0
	}
}
