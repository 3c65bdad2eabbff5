// Package entropy provides the entropy sources used to seed and reseed
// a DRBG.
package entropy

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrExhausted is returned by a Fixed source once all of its bytes have
// been handed out.
var ErrExhausted = errors.New("entropy: source exhausted")

// Source fills buffers with entropy. Implementations are assumed to be
// cryptographically strong unless documented otherwise.
type Source interface {
	// Fill fills buf completely or returns an error.
	Fill(buf []byte) error
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(buf []byte) error

// Fill calls f(buf).
func (f SourceFunc) Fill(buf []byte) error {
	return f(buf)
}

// System is the operating system CSPRNG.
var System Source = FromReader(rand.Reader)

type readerSource struct {
	r io.Reader
}

func (s *readerSource) Fill(buf []byte) error {
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return fmt.Errorf("entropy: failed to read %d bytes: %w", len(buf), err)
	}
	return nil
}

// FromReader returns a Source that fills buffers from r.
func FromReader(r io.Reader) Source {
	return &readerSource{r: r}
}

// FixedSource hands out a predetermined byte string. It is meant for
// known-answer tests and reproducible output, never for production seeding.
type FixedSource struct {
	sync.Mutex

	data []byte
	off  int
}

// Fixed returns a FixedSource over a copy of data.
func Fixed(data []byte) *FixedSource {
	return &FixedSource{data: append([]byte{}, data...)}
}

// Fill implements Source.
func (s *FixedSource) Fill(buf []byte) error {
	s.Lock()
	defer s.Unlock()

	if len(s.data)-s.off < len(buf) {
		return fmt.Errorf("%w: want %d bytes, %d left", ErrExhausted, len(buf), len(s.data)-s.off)
	}
	s.off += copy(buf, s.data[s.off:])
	return nil
}

// Remaining returns the number of bytes not yet handed out.
func (s *FixedSource) Remaining() int {
	s.Lock()
	defer s.Unlock()

	return len(s.data) - s.off
}

// Read returns a new n byte buffer filled from src.
func Read(src Source, n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := src.Fill(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
