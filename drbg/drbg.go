// Package drbg implements the Hash_DRBG deterministic random bit generator
// of NIST SP 800-90A (section 10.1.1).
//
// A Context is a single generator instance. Its zero value is
// uninstantiated; Instantiate seeds it, Generate and Reseed advance it and
// Uninstantiate wipes it. A Context performs no locking; callers that
// share one between goroutines must serialize all calls, see Reader.
package drbg

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"

	"github.com/aerius-labs/hash-drbg-go/hashfn"
	"github.com/aerius-labs/hash-drbg-go/internal/bytemath"
	"github.com/aerius-labs/hash-drbg-go/logging"
)

const (
	// MaxSeedLen is the largest seed length in bytes (888 bits, SHA-384/512).
	MaxSeedLen = 111
	// MaxRequestBytes is the largest output of a single Generate call
	// (2^19 bits).
	MaxRequestBytes = 1 << 16
	// DefaultReseedInterval is the number of Generate calls allowed between
	// reseeds. SP 800-90A permits 2^48; this generator keeps to 2^32-1.
	DefaultReseedInterval uint64 = 0xFFFFFFFF

	maxDigestSize = 64
)

var (
	// ErrInvalidParameter is returned when an operation is called in the
	// wrong state or with unacceptable arguments.
	ErrInvalidParameter = errors.New("drbg: invalid parameter")
	// ErrReseedRequired is returned by Generate once the reseed interval
	// has been used up. The state is left untouched; reseed and retry.
	ErrReseedRequired = errors.New("drbg: reseed required")
)

// Hash input prefixes of SP 800-90A section 10.1.1.
var (
	prefixC       = []byte{0x00}
	prefixReseed  = []byte{0x01}
	prefixAddInfo = []byte{0x02}
	prefixUpdate  = []byte{0x03}
)

var logger = logging.GetLogger("drbg")

type options struct {
	family         hashfn.Family
	reseedInterval uint64
}

// Option configures a Context at instantiation time.
type Option func(*options)

// WithHashFamily selects the hash family. SHA-2 is the default.
func WithHashFamily(family hashfn.Family) Option {
	return func(o *options) {
		o.family = family
	}
}

// WithReseedInterval overrides the number of Generate calls allowed
// between reseeds.
func WithReseedInterval(n uint64) Option {
	return func(o *options) {
		o.reseedInterval = n
	}
}

// Context is the working state of one Hash_DRBG instance.
type Context struct {
	instantiated bool
	strength     int
	alg          hashfn.Algorithm
	blockSize    int
	seedLen      int

	v [MaxSeedLen]byte
	c [MaxSeedLen]byte

	reseedCounter  uint64
	reseedInterval uint64

	h      hash.Hash
	digest [maxDigestSize]byte
}

func seedLenFor(alg hashfn.Algorithm) int {
	if alg.Size() <= 32 {
		return 55
	}
	return 111
}

// Instantiate seeds the generator. strength is the security strength in
// bits (112, 128, 192 or 256) and selects the hash function and seed
// length. entropyInput must hold at least strength/8 bytes; the
// personalization string and nonce are optional.
func (c *Context) Instantiate(strength int, entropyInput, personalization, nonce []byte, opts ...Option) error {
	if c.instantiated {
		return fmt.Errorf("%w: already instantiated", ErrInvalidParameter)
	}

	o := options{
		family:         hashfn.SHA2,
		reseedInterval: DefaultReseedInterval,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.reseedInterval == 0 {
		return fmt.Errorf("%w: zero reseed interval", ErrInvalidParameter)
	}

	alg, err := hashfn.ForStrength(strength, o.family)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	if len(entropyInput) < strength/8 {
		return fmt.Errorf("%w: %d bytes of entropy, need %d", ErrInvalidParameter, len(entropyInput), strength/8)
	}

	c.strength = strength
	c.alg = alg
	c.blockSize = alg.Size()
	c.seedLen = seedLenFor(alg)
	c.reseedInterval = o.reseedInterval
	c.h = alg.New()

	c.hashDF(c.v[:c.seedLen], entropyInput, nonce, personalization)
	c.deriveC()
	c.reseedCounter = 1
	c.instantiated = true

	logger.Debug("instantiated",
		"strength", strength,
		"hash", alg.String(),
		"seed_len", c.seedLen,
	)

	return nil
}

// Reseed mixes fresh entropy into the state and resets the reseed counter.
// entropyInput must carry at least the instantiated security strength.
func (c *Context) Reseed(entropyInput []byte) error {
	return c.ReseedWithAdditionalInput(entropyInput, nil)
}

// ReseedWithAdditionalInput is Reseed with an optional additional input
// string appended to the seed material.
func (c *Context) ReseedWithAdditionalInput(entropyInput, additionalInput []byte) error {
	if !c.instantiated {
		return fmt.Errorf("%w: not instantiated", ErrInvalidParameter)
	}
	if len(entropyInput)*8 < c.strength {
		return fmt.Errorf("%w: %d bits of entropy, need %d", ErrInvalidParameter, len(entropyInput)*8, c.strength)
	}

	var seed [MaxSeedLen]byte
	c.hashDF(seed[:c.seedLen], prefixReseed, c.v[:c.seedLen], entropyInput, additionalInput)
	copy(c.v[:c.seedLen], seed[:c.seedLen])
	bytemath.Zero(seed[:])

	c.deriveC()
	c.reseedCounter = 1

	logger.Debug("reseeded", "strength", c.strength)

	return nil
}

// Generate fills out with pseudorandom bytes. len(out) must not exceed
// MaxRequestBytes.
func (c *Context) Generate(out []byte) error {
	return c.GenerateWithAdditionalInput(out, nil)
}

// GenerateWithAdditionalInput is Generate with an optional additional
// input string mixed into the state before output is produced.
func (c *Context) GenerateWithAdditionalInput(out, additionalInput []byte) error {
	if !c.instantiated {
		return fmt.Errorf("%w: not instantiated", ErrInvalidParameter)
	}
	if c.reseedCounter > c.reseedInterval {
		logger.Warn("reseed interval exhausted",
			"strength", c.strength,
			"reseed_interval", c.reseedInterval,
		)
		return ErrReseedRequired
	}
	if len(out) > MaxRequestBytes {
		return fmt.Errorf("%w: %d bytes requested, limit is %d", ErrInvalidParameter, len(out), MaxRequestBytes)
	}

	v := c.v[:c.seedLen]
	if len(additionalInput) > 0 {
		bytemath.Add(v, c.hash(prefixAddInfo, v, additionalInput))
	}

	c.hashgen(out)

	// V = (V + Hash(0x03 || V) + C + reseed_counter) mod 2^seedlen
	bytemath.Add(v, c.hash(prefixUpdate, v))
	bytemath.Add(v, c.c[:c.seedLen])
	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], c.reseedCounter)
	bytemath.Add(v, counter[:])

	c.reseedCounter++

	return nil
}

// Uninstantiate wipes the whole state, returning the Context to its zero
// value.
func (c *Context) Uninstantiate() error {
	if !c.instantiated {
		return fmt.Errorf("%w: not instantiated", ErrInvalidParameter)
	}

	if c.h != nil {
		c.h.Reset()
	}
	*c = Context{}

	logger.Debug("uninstantiated")

	return nil
}

// IsInstantiated reports whether the Context has been seeded.
func (c *Context) IsInstantiated() bool {
	return c.instantiated
}

// SecurityStrength returns the instantiated security strength in bits.
func (c *Context) SecurityStrength() int {
	return c.strength
}

// Algorithm returns the hash function bound at instantiation.
func (c *Context) Algorithm() hashfn.Algorithm {
	return c.alg
}

// SeedLen returns the seed length in bytes.
func (c *Context) SeedLen() int {
	return c.seedLen
}

// ReseedCounter returns the number of the next Generate call since the
// last (re)seed, starting at 1.
func (c *Context) ReseedCounter() uint64 {
	return c.reseedCounter
}
