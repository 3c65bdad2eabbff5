package drbg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aerius-labs/hash-drbg-go/drbg/testvectors"
	"github.com/aerius-labs/hash-drbg-go/hashfn"
)

func counting(start byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = start + byte(i)
	}
	return b
}

func mustInstantiate(t *testing.T, strength int, entropyInput []byte, opts ...Option) *Context {
	var c Context
	require.NoError(t, c.Instantiate(strength, entropyInput, nil, nil, opts...), "Instantiate")
	return &c
}

func generate(t *testing.T, c *Context, n int) []byte {
	out := make([]byte, n)
	require.NoError(t, c.Generate(out), "Generate")
	return out
}

type snapshot struct {
	v, c    []byte
	counter uint64
}

func snapshotOf(c *Context) snapshot {
	return snapshot{
		v:       append([]byte{}, c.v[:c.seedLen]...),
		c:       append([]byte{}, c.c[:c.seedLen]...),
		counter: c.reseedCounter,
	}
}

func TestKnownAnswers(t *testing.T) {
	for _, v := range testvectors.Vectors {
		t.Run(v.Name, func(t *testing.T) {
			require.NoError(t, CheckVector(v))
		})
	}
}

func TestCheckVectorDetectsMismatch(t *testing.T) {
	v := testvectors.Vectors[2]
	v.Steps = []testvectors.Step{{Length: 16, Expected: make([]byte, 16)}}
	require.Error(t, CheckVector(v))
}

func TestEndToEndSHA512(t *testing.T) {
	c := mustInstantiate(t, 256, counting(0x00, 32))

	require.Equal(t, hashfn.SHA512, c.Algorithm())
	require.Equal(t, 111, c.SeedLen())
	require.Equal(t, 256, c.SecurityStrength())

	expected := testvectors.Vectors[1].Steps[0].Expected
	require.Equal(t, expected, generate(t, c, 64))
}

func TestParameterTable(t *testing.T) {
	testCases := []struct {
		strength int
		family   hashfn.Family
		alg      hashfn.Algorithm
		seedLen  int
	}{
		{112, hashfn.SHA2, hashfn.SHA224, 55},
		{128, hashfn.SHA2, hashfn.SHA256, 55},
		{192, hashfn.SHA2, hashfn.SHA384, 111},
		{256, hashfn.SHA2, hashfn.SHA512, 111},
		{128, hashfn.SHA3, hashfn.SHA3_256, 55},
		{256, hashfn.SHA3, hashfn.SHA3_512, 111},
	}

	for _, tc := range testCases {
		c := mustInstantiate(t, tc.strength, make([]byte, 32), WithHashFamily(tc.family))
		require.Equal(t, tc.alg, c.Algorithm(), "algorithm for strength %d", tc.strength)
		require.Equal(t, tc.seedLen, c.SeedLen(), "seed length for strength %d", tc.strength)
		require.Equal(t, uint64(1), c.ReseedCounter())
	}
}

func TestDeterminism(t *testing.T) {
	var a, b Context
	require.NoError(t, a.Instantiate(192, counting(1, 24), []byte("pers"), []byte("nonce")))
	require.NoError(t, b.Instantiate(192, counting(1, 24), []byte("pers"), []byte("nonce")))

	for _, n := range []int{1, 47, 48, 49, 1000} {
		require.Equal(t, generate(t, &a, n), generate(t, &b, n), "outputs of %d bytes", n)
	}
}

func TestStateIsolation(t *testing.T) {
	a := mustInstantiate(t, 128, counting(0x00, 16))
	b := mustInstantiate(t, 128, counting(0x01, 16))

	require.NotEqual(t, generate(t, a, 64), generate(t, b, 64))
}

func TestPersonalizationAndNonceMatter(t *testing.T) {
	var plain, personalized, nonced Context
	require.NoError(t, plain.Instantiate(128, counting(0, 16), nil, nil))
	require.NoError(t, personalized.Instantiate(128, counting(0, 16), []byte("device-a"), nil))
	require.NoError(t, nonced.Instantiate(128, counting(0, 16), nil, []byte{1}))

	out := generate(t, &plain, 32)
	require.NotEqual(t, out, generate(t, &personalized, 32))
	require.NotEqual(t, out, generate(t, &nonced, 32))
}

func TestReseedChangesOutput(t *testing.T) {
	a := mustInstantiate(t, 256, counting(0x00, 32))
	b := mustInstantiate(t, 256, counting(0x00, 32))
	require.Equal(t, snapshotOf(a), snapshotOf(b))

	require.NoError(t, b.Reseed(counting(0x40, 32)), "Reseed")
	require.Equal(t, uint64(1), b.ReseedCounter())
	require.NotEqual(t, snapshotOf(a).c, snapshotOf(b).c, "reseed must derive a new C")

	require.NotEqual(t, generate(t, a, 64), generate(t, b, 64))
}

func TestAdditionalInputChangesOutput(t *testing.T) {
	a := mustInstantiate(t, 128, counting(0x00, 16))
	b := mustInstantiate(t, 128, counting(0x00, 16))

	outA := generate(t, a, 32)
	outB := make([]byte, 32)
	require.NoError(t, b.GenerateWithAdditionalInput(outB, []byte("additional")))
	require.NotEqual(t, outA, outB)
}

func TestReseedCounterMonotonic(t *testing.T) {
	c := mustInstantiate(t, 128, counting(0x00, 16))

	for i := uint64(1); i <= 10; i++ {
		require.Equal(t, i, c.ReseedCounter())
		generate(t, c, 16)
	}
	require.Equal(t, uint64(11), c.ReseedCounter())

	require.NoError(t, c.Reseed(counting(0x10, 16)))
	require.Equal(t, uint64(1), c.ReseedCounter())
	generate(t, c, 16)
	require.Equal(t, uint64(2), c.ReseedCounter())
}

func TestOversizedRequest(t *testing.T) {
	c := mustInstantiate(t, 256, counting(0x00, 32))
	before := snapshotOf(c)

	err := c.Generate(make([]byte, MaxRequestBytes+1))
	require.True(t, errors.Is(err, ErrInvalidParameter), "oversized request: %v", err)
	require.Equal(t, before, snapshotOf(c), "state must not change")

	generate(t, c, MaxRequestBytes)
	require.Equal(t, uint64(2), c.ReseedCounter())
}

func TestEmptyRequest(t *testing.T) {
	c := mustInstantiate(t, 128, counting(0x00, 16))
	require.NoError(t, c.Generate(nil))
	require.Equal(t, uint64(2), c.ReseedCounter(), "an empty request still advances the state")
}

func TestInsufficientEntropy(t *testing.T) {
	for _, strength := range []int{112, 128, 192, 256} {
		var c Context
		err := c.Instantiate(strength, make([]byte, strength/8-1), nil, nil)
		require.True(t, errors.Is(err, ErrInvalidParameter), "strength %d: %v", strength, err)
		require.False(t, c.IsInstantiated())
		require.Equal(t, Context{}, c, "failed instantiate must not touch the context")
	}

	c := mustInstantiate(t, 192, make([]byte, 24))
	before := snapshotOf(c)
	err := c.Reseed(make([]byte, 23))
	require.True(t, errors.Is(err, ErrInvalidParameter), "short reseed entropy: %v", err)
	require.Equal(t, before, snapshotOf(c))
}

func TestUnsupportedStrength(t *testing.T) {
	var c Context
	for _, strength := range []int{0, 64, 160, 512} {
		err := c.Instantiate(strength, make([]byte, 64), nil, nil)
		require.True(t, errors.Is(err, ErrInvalidParameter), "strength %d: %v", strength, err)
		require.False(t, c.IsInstantiated())
	}
}

func TestZeroReseedInterval(t *testing.T) {
	var c Context
	err := c.Instantiate(128, make([]byte, 16), nil, nil, WithReseedInterval(0))
	require.True(t, errors.Is(err, ErrInvalidParameter))
	require.False(t, c.IsInstantiated())
}

func TestDoubleInstantiate(t *testing.T) {
	c := mustInstantiate(t, 128, counting(0x00, 16))
	generate(t, c, 16)
	before := snapshotOf(c)

	err := c.Instantiate(256, counting(0x80, 32), nil, nil)
	require.True(t, errors.Is(err, ErrInvalidParameter), "second instantiate: %v", err)
	require.Equal(t, before, snapshotOf(c))
	require.Equal(t, 128, c.SecurityStrength())
	require.Equal(t, hashfn.SHA256, c.Algorithm())
}

func TestUninstantiateClearsState(t *testing.T) {
	c := mustInstantiate(t, 256, counting(0x00, 32))
	generate(t, c, 100)

	require.NoError(t, c.Uninstantiate())
	require.Equal(t, Context{}, *c, "context must be all zero")

	require.True(t, errors.Is(c.Generate(make([]byte, 8)), ErrInvalidParameter))
	require.True(t, errors.Is(c.Reseed(make([]byte, 32)), ErrInvalidParameter))
	require.True(t, errors.Is(c.Uninstantiate(), ErrInvalidParameter))

	// The zero context can be instantiated again.
	require.NoError(t, c.Instantiate(256, counting(0x00, 32), nil, nil))
	require.Equal(t, testvectors.Vectors[1].Steps[0].Expected, generate(t, c, 64))
}

func TestReseedInterval(t *testing.T) {
	c := mustInstantiate(t, 128, counting(0x00, 16), WithReseedInterval(3))

	for i := 0; i < 3; i++ {
		generate(t, c, 16)
	}
	before := snapshotOf(c)

	err := c.Generate(make([]byte, 16))
	require.True(t, errors.Is(err, ErrReseedRequired), "fourth generate: %v", err)
	require.Equal(t, before, snapshotOf(c), "refused generate must not change the state")

	require.NoError(t, c.Reseed(counting(0x20, 16)))
	for i := 0; i < 3; i++ {
		generate(t, c, 16)
	}
	require.True(t, errors.Is(c.Generate(make([]byte, 16)), ErrReseedRequired))
}

func TestGenerateNotInstantiated(t *testing.T) {
	var c Context
	require.True(t, errors.Is(c.Generate(make([]byte, 1)), ErrInvalidParameter))
	require.True(t, errors.Is(c.Reseed(make([]byte, 32)), ErrInvalidParameter))
}

func BenchmarkGenerate(b *testing.B) {
	for _, strength := range []int{128, 256} {
		var c Context
		if err := c.Instantiate(strength, make([]byte, 32), nil, nil); err != nil {
			b.Fatalf("Instantiate failed: %v", err)
		}
		out := make([]byte, 1024)

		b.Run(c.Algorithm().String(), func(b *testing.B) {
			b.SetBytes(int64(len(out)))
			for i := 0; i < b.N; i++ {
				if err := c.Generate(out); err != nil {
					b.Fatalf("Generate failed: %v", err)
				}
			}
		})
	}
}
