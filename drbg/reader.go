package drbg

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/aerius-labs/hash-drbg-go/entropy"
	"github.com/aerius-labs/hash-drbg-go/internal/bytemath"
	"github.com/aerius-labs/hash-drbg-go/logging"
)

// Reader is an io.Reader over a Context that is safe for concurrent use.
// It reseeds itself from its entropy source once the reseed interval is
// used up.
type Reader struct {
	sync.Mutex

	ctx    Context
	src    entropy.Source
	label  string
	logger *logging.Logger
}

// NewReader instantiates a Reader at the given security strength, taking
// strength/8 bytes of entropy and a strength/16 byte nonce from src. A nil
// src selects entropy.System.
func NewReader(strength int, src entropy.Source, personalization []byte, opts ...Option) (*Reader, error) {
	if src == nil {
		src = entropy.System
	}
	if strength <= 0 {
		return nil, fmt.Errorf("%w: security strength %d", ErrInvalidParameter, strength)
	}

	seed, err := entropy.Read(src, strength/8+strength/16)
	if err != nil {
		return nil, fmt.Errorf("drbg: failed to gather seed entropy: %w", err)
	}
	defer bytemath.Zero(seed)

	r := &Reader{
		src:    src,
		label:  strconv.Itoa(strength),
		logger: logging.GetLogger("drbg/reader").With("strength", strength),
	}
	if err = r.ctx.Instantiate(strength, seed[:strength/8], personalization, seed[strength/8:], opts...); err != nil {
		return nil, err
	}

	initMetrics()

	return r, nil
}

// NewReaderWithExternalEntropy instantiates a Reader from caller supplied
// entropy input and nonce. src, if not nil, is used for later reseeds;
// without it reads fail with ErrReseedRequired once the reseed interval is
// used up.
func NewReaderWithExternalEntropy(strength int, entropyInput, nonce, personalization []byte, src entropy.Source, opts ...Option) (*Reader, error) {
	r := &Reader{
		src:    src,
		label:  strconv.Itoa(strength),
		logger: logging.GetLogger("drbg/reader").With("strength", strength),
	}
	if err := r.ctx.Instantiate(strength, entropyInput, personalization, nonce, opts...); err != nil {
		return nil, err
	}

	initMetrics()

	return r, nil
}

// Read fills p with pseudorandom bytes, splitting large reads into
// requests of at most MaxRequestBytes.
func (r *Reader) Read(p []byte) (int, error) {
	r.Lock()
	defer r.Unlock()

	var total int
	for len(p) > 0 {
		chunk := p
		if len(chunk) > MaxRequestBytes {
			chunk = chunk[:MaxRequestBytes]
		}
		if err := r.generateLocked(chunk); err != nil {
			return total, err
		}
		total += len(chunk)
		p = p[len(chunk):]
	}

	return total, nil
}

// Reseed pulls fresh entropy from the source and reseeds.
func (r *Reader) Reseed() error {
	r.Lock()
	defer r.Unlock()

	return r.reseedLocked()
}

// Close uninstantiates the underlying Context. Subsequent reads fail.
func (r *Reader) Close() error {
	r.Lock()
	defer r.Unlock()

	return r.ctx.Uninstantiate()
}

func (r *Reader) generateLocked(out []byte) error {
	err := r.ctx.Generate(out)
	if errors.Is(err, ErrReseedRequired) {
		if err = r.reseedLocked(); err != nil {
			return err
		}
		err = r.ctx.Generate(out)
	}
	if err != nil {
		return err
	}

	generateRequests.WithLabelValues(r.label).Inc()
	generatedBytes.WithLabelValues(r.label).Add(float64(len(out)))

	return nil
}

func (r *Reader) reseedLocked() error {
	if !r.ctx.IsInstantiated() {
		return fmt.Errorf("%w: not instantiated", ErrInvalidParameter)
	}
	if r.src == nil {
		return ErrReseedRequired
	}

	entropyInput, err := entropy.Read(r.src, r.ctx.SecurityStrength()/8)
	if err != nil {
		r.logger.Error("failed to gather reseed entropy", "err", err)
		return fmt.Errorf("drbg: failed to gather reseed entropy: %w", err)
	}
	defer bytemath.Zero(entropyInput)

	if err = r.ctx.Reseed(entropyInput); err != nil {
		return err
	}
	reseeds.WithLabelValues(r.label).Inc()
	r.logger.Info("reseeded from entropy source")

	return nil
}
