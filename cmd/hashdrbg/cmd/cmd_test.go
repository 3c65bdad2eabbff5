package cmd

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aerius-labs/hash-drbg-go/drbg/testvectors"
)

// execute runs the root command with the global flags reset to their
// defaults, since flag values persist across executions.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{
		args[0],
		"--strength", "256",
		"--hash_family", "sha2",
		"--reseed_interval", "4294967295",
		"--personalization", "",
	}, args[1:]...))

	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestKAT(t *testing.T) {
	out, err := execute(t, "kat")
	require.NoError(t, err, "kat")
	require.NotContains(t, out, "FAIL")
	require.Equal(t, len(testvectors.Vectors), strings.Count(out, "ok "))
}

func TestGenerateDeterministic(t *testing.T) {
	v := testvectors.Vectors[1]

	out, err := execute(t, "generate",
		"--entropy", hex.EncodeToString(v.Entropy),
		"--nonce", "",
		"--bytes", "64",
		"--encoding", "hex",
	)
	require.NoError(t, err, "generate")
	require.Equal(t, hex.EncodeToString(v.Steps[0].Expected), strings.TrimSpace(out))
}

func TestGenerateBase64(t *testing.T) {
	v := testvectors.Vectors[2]

	out, err := execute(t, "generate",
		"--strength", "128",
		"--entropy", hex.EncodeToString(v.Entropy),
		"--nonce", "",
		"--bytes", "16",
		"--encoding", "base64",
	)
	require.NoError(t, err, "generate")
	require.Equal(t, base64.StdEncoding.EncodeToString(v.Steps[0].Expected), strings.TrimSpace(out))
}

func TestGeneratePersonalization(t *testing.T) {
	v := testvectors.Vectors[3]

	out, err := execute(t, "generate",
		"--strength", "112",
		"--personalization", hex.EncodeToString(v.Personalization),
		"--entropy", hex.EncodeToString(v.Entropy),
		"--nonce", hex.EncodeToString(v.Nonce),
		"--bytes", "28",
		"--encoding", "hex",
	)
	require.NoError(t, err, "generate")
	require.Equal(t, hex.EncodeToString(v.Steps[0].Expected), strings.TrimSpace(out))
}

func TestGenerateSystemEntropy(t *testing.T) {
	out, err := execute(t, "generate",
		"--entropy", "",
		"--bytes", "100000",
		"--encoding", "hex",
	)
	require.NoError(t, err, "generate")
	require.Len(t, strings.TrimSpace(out), 200000)
}

func TestGenerateReseedRequired(t *testing.T) {
	// The second request of a two request output needs a reseed that
	// externally seeded generators cannot perform.
	_, err := execute(t, "generate",
		"--reseed_interval", "1",
		"--entropy", hex.EncodeToString(testvectors.Vectors[1].Entropy),
		"--nonce", "",
		"--bytes", "65537",
		"--encoding", "hex",
	)
	require.Error(t, err, "generate past the reseed interval")
	require.Contains(t, err.Error(), "reseed required")
}

func TestGenerateInvalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
	}{
		{"ZeroBytes", []string{"--entropy", "", "--bytes", "0", "--encoding", "hex"}},
		{"BadEncoding", []string{"--entropy", "", "--bytes", "8", "--encoding", "base32"}},
		{"BadEntropy", []string{"--entropy", "zz", "--bytes", "8", "--encoding", "hex"}},
		{"ShortEntropy", []string{"--entropy", "00", "--bytes", "8", "--encoding", "hex"}},
		{"BadStrength", []string{"--strength", "100", "--entropy", "", "--bytes", "8", "--encoding", "hex"}},
		{"BadFamily", []string{"--hash_family", "md5", "--entropy", "", "--bytes", "8", "--encoding", "hex"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"generate"}, tc.args...)...)
			require.Error(t, err)
		})
	}
}

func TestField(t *testing.T) {
	out, err := execute(t, "field", "--count", "5")
	require.NoError(t, err, "field")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	for _, l := range lines {
		require.NotEmpty(t, l)
	}
}
