package drbg

import (
	"bytes"
	"fmt"

	"github.com/aerius-labs/hash-drbg-go/drbg/testvectors"
)

// CheckVector runs a known-answer vector against a fresh Context and
// reports the first mismatch.
func CheckVector(v testvectors.Vector) error {
	var c Context
	if err := c.Instantiate(v.Strength, v.Entropy, v.Personalization, v.Nonce, WithHashFamily(v.Family)); err != nil {
		return fmt.Errorf("%s: instantiate: %w", v.Name, err)
	}
	defer c.Uninstantiate() // nolint: errcheck

	for i, step := range v.Steps {
		if step.Reseed {
			if err := c.ReseedWithAdditionalInput(step.Entropy, step.AdditionalInput); err != nil {
				return fmt.Errorf("%s: step %d: reseed: %w", v.Name, i, err)
			}
			continue
		}

		out := make([]byte, step.Length)
		if err := c.GenerateWithAdditionalInput(out, step.AdditionalInput); err != nil {
			return fmt.Errorf("%s: step %d: generate: %w", v.Name, i, err)
		}
		if step.Expected != nil && !bytes.Equal(out, step.Expected) {
			return fmt.Errorf("%s: step %d: output mismatch: got %x, expected %x", v.Name, i, out, step.Expected)
		}
	}

	return nil
}
