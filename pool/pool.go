// Package pool implements a size-class buffer allocator with per-component
// accounting, used to carve scratch and output buffers for generator
// consumers.
//
// Buffers are drawn from power-of-two size classes and are always zeroed
// when handed out and when returned.
package pool

import (
	"errors"
	"fmt"
	"sync"

	bufpool "github.com/libp2p/go-buffer-pool"

	"github.com/aerius-labs/hash-drbg-go/internal/bytemath"
	"github.com/aerius-labs/hash-drbg-go/logging"
)

var (
	// ErrOutOfMemory is returned when an allocation that is allowed to fail
	// would exceed the allocator limit.
	ErrOutOfMemory = errors.New("pool: out of memory")
	// ErrInvalidSize is returned for non-positive allocation sizes.
	ErrInvalidSize = errors.New("pool: invalid allocation size")
)

// ComponentID identifies the owner of an allocation.
type ComponentID uint8

type allocation struct {
	component ComponentID
	size      int
}

// Allocator hands out buffers bounded by a total byte limit.
type Allocator struct {
	sync.Mutex

	buffers bufpool.BufferPool
	limit   int

	outstanding int
	inUse       map[ComponentID]int
	live        map[*byte]allocation

	logger *logging.Logger
}

// New creates an Allocator. A limit of 0 disables the byte limit.
func New(limit int) *Allocator {
	return &Allocator{
		limit:  limit,
		inUse:  make(map[ComponentID]int),
		live:   make(map[*byte]allocation),
		logger: logging.GetLogger("pool"),
	}
}

// Allocate returns a zeroed buffer of size bytes owned by component. If
// the limit would be exceeded, Allocate returns ErrOutOfMemory when
// allowFailure is set and panics otherwise.
func (a *Allocator) Allocate(component ComponentID, size int, allowFailure bool) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	a.Lock()
	defer a.Unlock()

	if a.limit > 0 && a.outstanding+size > a.limit {
		a.logger.Warn("allocation exceeds limit",
			"component", component,
			"size", size,
			"outstanding", a.outstanding,
			"limit", a.limit,
		)
		if !allowFailure {
			panic(fmt.Sprintf("pool: component %d: allocation of %d bytes failed", component, size))
		}
		return nil, ErrOutOfMemory
	}

	buf := a.buffers.Get(size)
	bytemath.Zero(buf)

	a.live[&buf[0]] = allocation{component: component, size: size}
	a.outstanding += size
	a.inUse[component] += size

	a.logger.Debug("allocated", "component", component, "size", size)

	return buf, nil
}

// Free wipes buf and returns it to its size class. buf must be a buffer
// returned by Allocate that has not been freed yet.
func (a *Allocator) Free(buf []byte) {
	if len(buf) == 0 {
		panic("pool: free of empty buffer")
	}

	a.Lock()
	defer a.Unlock()

	key := &buf[0]
	alloc, ok := a.live[key]
	if !ok {
		panic("pool: free of unknown buffer")
	}
	delete(a.live, key)

	a.outstanding -= alloc.size
	a.inUse[alloc.component] -= alloc.size
	if a.inUse[alloc.component] == 0 {
		delete(a.inUse, alloc.component)
	}

	bytemath.Zero(buf[:cap(buf)])
	a.buffers.Put(buf)

	a.logger.Debug("freed", "component", alloc.component, "size", alloc.size)
}

// InUse returns the number of bytes currently held by component.
func (a *Allocator) InUse(component ComponentID) int {
	a.Lock()
	defer a.Unlock()

	return a.inUse[component]
}

// Outstanding returns the number of bytes currently allocated.
func (a *Allocator) Outstanding() int {
	a.Lock()
	defer a.Unlock()

	return a.outstanding
}
