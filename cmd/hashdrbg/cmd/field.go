package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/aerius-labs/hash-drbg-go/field"
)

const cfgFieldCount = "count"

var (
	fieldFlags = flag.NewFlagSet("", flag.ContinueOnError)

	fieldCmd = &cobra.Command{
		Use:   "field",
		Short: "sample uniform BabyBear field elements",
		Args:  cobra.NoArgs,
		RunE:  doField,
	}
)

func doField(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	count, _ := fieldFlags.GetInt(cfgFieldCount)
	if count <= 0 {
		return fmt.Errorf("--%s must be positive", cfgFieldCount)
	}

	r, err := newReader(cfg)
	if err != nil {
		return err
	}
	defer r.Close() // nolint: errcheck

	elements, err := field.SampleN(r, count)
	if err != nil {
		return fmt.Errorf("failed to sample field elements: %w", err)
	}
	for i := range elements {
		if _, err = fmt.Fprintln(cmd.OutOrStdout(), elements[i].String()); err != nil {
			return err
		}
	}

	return nil
}

func registerField(parentCmd *cobra.Command) {
	fieldFlags.Int(cfgFieldCount, 1, "number of elements to sample")

	fieldCmd.Flags().AddFlagSet(fieldFlags)
	parentCmd.AddCommand(fieldCmd)
}
