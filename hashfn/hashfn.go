// Package hashfn selects and applies the hash primitive backing a Hash_DRBG.
package hashfn

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/sha3"

	simd "github.com/minio/sha256-simd"
)

// ErrUnsupportedStrength is returned for a security strength with no
// matching hash function.
var ErrUnsupportedStrength = errors.New("hashfn: unsupported security strength")

var _ pflag.Value = (*Family)(nil)

// Family is a hash function family.
type Family uint8

const (
	// SHA2 is the SHA-2 family (FIPS 180-4).
	SHA2 Family = iota
	// SHA3 is the SHA-3 family (FIPS 202).
	SHA3
)

// String returns the string representation of a Family.
func (f *Family) String() string {
	switch *f {
	case SHA2:
		return "sha2"
	case SHA3:
		return "sha3"
	default:
		panic("hashfn: unsupported family")
	}
}

// Set sets the Family to the value specified by the provided string.
func (f *Family) Set(s string) error {
	switch strings.ToLower(s) {
	case "sha2":
		*f = SHA2
	case "sha3":
		*f = SHA3
	default:
		return fmt.Errorf("hashfn: invalid hash family: '%s'", s)
	}
	return nil
}

// Type returns the list of supported Families.
func (f *Family) Type() string {
	return "[sha2,sha3]"
}

// Algorithm identifies a concrete hash function.
type Algorithm uint8

const (
	SHA224 Algorithm = iota + 1
	SHA256
	SHA384
	SHA512
	SHA3_224
	SHA3_256
	SHA3_384
	SHA3_512
)

var algorithmNames = map[Algorithm]string{
	SHA224:   "SHA-224",
	SHA256:   "SHA-256",
	SHA384:   "SHA-384",
	SHA512:   "SHA-512",
	SHA3_224: "SHA3-224",
	SHA3_256: "SHA3-256",
	SHA3_384: "SHA3-384",
	SHA3_512: "SHA3-512",
}

// String returns the standard name of the algorithm.
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", uint8(a))
}

// Size returns the digest size in bytes.
func (a Algorithm) Size() int {
	switch a {
	case SHA224, SHA3_224:
		return 28
	case SHA256, SHA3_256:
		return 32
	case SHA384, SHA3_384:
		return 48
	case SHA512, SHA3_512:
		return 64
	default:
		panic("hashfn: unknown algorithm")
	}
}

// New returns a fresh hash.Hash computing the algorithm.
func (a Algorithm) New() hash.Hash {
	switch a {
	case SHA224:
		return sha256.New224()
	case SHA256:
		return simd.New()
	case SHA384:
		return sha512.New384()
	case SHA512:
		return sha512.New()
	case SHA3_224:
		return sha3.New224()
	case SHA3_256:
		return sha3.New256()
	case SHA3_384:
		return sha3.New384()
	case SHA3_512:
		return sha3.New512()
	default:
		panic("hashfn: unknown algorithm")
	}
}

// ForStrength returns the hash function of the given family whose
// output provides the requested security strength (in bits).
func ForStrength(strength int, family Family) (Algorithm, error) {
	var table [4]Algorithm
	switch family {
	case SHA2:
		table = [4]Algorithm{SHA224, SHA256, SHA384, SHA512}
	case SHA3:
		table = [4]Algorithm{SHA3_224, SHA3_256, SHA3_384, SHA3_512}
	default:
		return 0, fmt.Errorf("hashfn: unknown family %d", family)
	}

	switch strength {
	case 112:
		return table[0], nil
	case 128:
		return table[1], nil
	case 192:
		return table[2], nil
	case 256:
		return table[3], nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedStrength, strength)
	}
}

// Sum writes the digest of the concatenation of blocks into out, which
// must hold at least a.Size() bytes.
func Sum(a Algorithm, out []byte, blocks ...[]byte) {
	SumWith(a.New(), out, blocks...)
}

// SumWith is Sum using a caller-owned hasher, which is reset first.
func SumWith(h hash.Hash, out []byte, blocks ...[]byte) {
	if len(out) < h.Size() {
		panic("hashfn: output buffer too small")
	}
	h.Reset()
	for _, b := range blocks {
		if len(b) > 0 {
			h.Write(b)
		}
	}
	h.Sum(out[:0])
}
