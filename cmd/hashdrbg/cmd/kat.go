package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aerius-labs/hash-drbg-go/drbg"
	"github.com/aerius-labs/hash-drbg-go/drbg/testvectors"
)

var katCmd = &cobra.Command{
	Use:   "kat",
	Short: "run the built-in known-answer tests",
	Args:  cobra.NoArgs,
	RunE:  doKAT,
}

func doKAT(cmd *cobra.Command, _ []string) error {
	var failed int
	for _, v := range testvectors.Vectors {
		if err := drbg.CheckVector(v); err != nil {
			logger.Error("known-answer test failed", "vector", v.Name, "err", err)
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", v.Name, err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", v.Name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d known-answer tests failed", failed, len(testvectors.Vectors))
	}
	return nil
}

func registerKAT(parentCmd *cobra.Command) {
	parentCmd.AddCommand(katCmd)
}
