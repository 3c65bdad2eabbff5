package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/aerius-labs/hash-drbg-go/config"
	"github.com/aerius-labs/hash-drbg-go/drbg"
	"github.com/aerius-labs/hash-drbg-go/pool"
)

const (
	cfgGenerateBytes    = "bytes"
	cfgGenerateEntropy  = "entropy"
	cfgGenerateNonce    = "nonce"
	cfgGenerateEncoding = "encoding"

	encodingHex    = "hex"
	encodingBase64 = "base64"
)

const componentGenerate pool.ComponentID = 1

var (
	generateFlags = flag.NewFlagSet("", flag.ContinueOnError)

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate pseudorandom bytes",
		Long: `Generate pseudorandom bytes and write them encoded to stdout.

When --entropy is given the generator is instantiated from it (and --nonce)
and the output is deterministic. No further entropy is available in that
mode, so the request fails once the reseed interval is used up.`,
		Args: cobra.NoArgs,
		RunE: doGenerate,
	}
)

func doGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	n, _ := generateFlags.GetInt(cfgGenerateBytes)
	if n <= 0 {
		return fmt.Errorf("--%s must be positive", cfgGenerateBytes)
	}

	w, err := newEncoder(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	var r *drbg.Reader
	entropyHex, _ := generateFlags.GetString(cfgGenerateEntropy)
	switch entropyHex {
	case "":
		r, err = newReader(cfg)
	default:
		r, err = newExternalReader(cfg, entropyHex)
	}
	if err != nil {
		return err
	}
	defer r.Close() // nolint: errcheck

	alloc := pool.New(cfg.Pool.Limit)
	for remaining := n; remaining > 0; {
		chunk := min(remaining, drbg.MaxRequestBytes)
		buf, err := alloc.Allocate(componentGenerate, chunk, true)
		if err != nil {
			return err
		}
		if _, err = io.ReadFull(r, buf); err != nil {
			alloc.Free(buf)
			return fmt.Errorf("failed to generate: %w", err)
		}
		_, err = w.Write(buf)
		alloc.Free(buf)
		if err != nil {
			return err
		}
		remaining -= chunk
	}
	if err = w.Close(); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout())

	logger.Info("generated output", "bytes", n)

	return err
}

func newExternalReader(cfg *config.Config, entropyHex string) (*drbg.Reader, error) {
	entropyInput, err := hex.DecodeString(entropyHex)
	if err != nil {
		return nil, fmt.Errorf("malformed --%s: %w", cfgGenerateEntropy, err)
	}
	nonceHex, _ := generateFlags.GetString(cfgGenerateNonce)
	nonce, err := hex.DecodeString(nonceHex)
	if err != nil {
		return nil, fmt.Errorf("malformed --%s: %w", cfgGenerateNonce, err)
	}
	pers, err := cfg.PersonalizationBytes()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return drbg.NewReaderWithExternalEntropy(cfg.Strength, entropyInput, nonce, pers, nil, opts...)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

func newEncoder(w io.Writer) (io.WriteCloser, error) {
	encoding, _ := generateFlags.GetString(cfgGenerateEncoding)
	switch encoding {
	case encodingHex:
		return nopCloser{hex.NewEncoder(w)}, nil
	case encodingBase64:
		return base64.NewEncoder(base64.StdEncoding, w), nil
	default:
		return nil, fmt.Errorf("unsupported --%s: '%s'", cfgGenerateEncoding, encoding)
	}
}

func registerGenerate(parentCmd *cobra.Command) {
	generateFlags.Int(cfgGenerateBytes, 32, "number of bytes to generate")
	generateFlags.String(cfgGenerateEntropy, "", "hex encoded entropy input (deterministic output)")
	generateFlags.String(cfgGenerateNonce, "", "hex encoded nonce, used with --entropy")
	generateFlags.String(cfgGenerateEncoding, encodingHex, "output encoding (hex, base64)")

	generateCmd.Flags().AddFlagSet(generateFlags)
	parentCmd.AddCommand(generateCmd)
}
