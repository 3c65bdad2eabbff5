// Package cmd implements the commands for the hashdrbg executable.
package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aerius-labs/hash-drbg-go/config"
	"github.com/aerius-labs/hash-drbg-go/drbg"
	"github.com/aerius-labs/hash-drbg-go/logging"
)

const (
	cfgConfigFile      = "config"
	cfgStrength        = "strength"
	cfgHashFamily      = "hash_family"
	cfgReseedInterval  = "reseed_interval"
	cfgPersonalization = "personalization"
	cfgPoolLimit       = "pool.limit"
	cfgLogLevel        = "log.level"
	cfgLogFormat       = "log.format"
)

var (
	rootCmd = &cobra.Command{
		Use:               "hashdrbg",
		Short:             "Hash_DRBG pseudorandom bit generator",
		SilenceUsage:      true,
		PersistentPreRunE: initRoot,
	}

	// rootFlags has the global configuration flags.
	rootFlags = flag.NewFlagSet("", flag.ContinueOnError)

	logInit sync.Once
	logger  = logging.GetLogger("cmd")
)

// RootCommand returns the root (top level) cobra.Command.
func RootCommand() *cobra.Command {
	return rootCmd
}

// Execute spawns the main entry point after handling the config file
// and command line arguments.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig builds the configuration from the defaults, the config file
// and the command line, in increasing order of precedence.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func initRoot(cmd *cobra.Command, _ []string) error {
	if cfgFile := viper.GetString(cfgConfigFile); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logInit.Do(func() {
		var (
			lvl    logging.Level
			format logging.Format
		)
		// Both were checked by Validate.
		_ = lvl.Set(cfg.Log.Level)
		_ = format.Set(cfg.Log.Format)
		err = logging.Initialize(cmd.ErrOrStderr(), format, lvl, nil)
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	logger.Debug("configuration loaded",
		"strength", cfg.Strength,
		"hash_family", cfg.HashFamily,
		"reseed_interval", cfg.ReseedInterval,
	)

	return nil
}

// newReader creates a generator from the configuration, seeded by the
// operating system.
func newReader(cfg *config.Config) (*drbg.Reader, error) {
	pers, err := cfg.PersonalizationBytes()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return drbg.NewReader(cfg.Strength, nil, pers, opts...)
}

func init() {
	defaults := config.DefaultConfig()

	rootFlags.String(cfgConfigFile, "", "config file")
	rootFlags.Int(cfgStrength, defaults.Strength, "security strength in bits (112, 128, 192, 256)")
	rootFlags.String(cfgHashFamily, defaults.HashFamily, "hash function family (sha2, sha3)")
	rootFlags.Uint64(cfgReseedInterval, defaults.ReseedInterval, "generate requests between reseeds")
	rootFlags.String(cfgPersonalization, defaults.Personalization, "hex encoded personalization string")
	rootFlags.Int(cfgPoolLimit, defaults.Pool.Limit, "maximum outstanding output buffer bytes (0 is unlimited)")
	rootFlags.String(cfgLogLevel, defaults.Log.Level, "log level")
	rootFlags.String(cfgLogFormat, defaults.Log.Format, "log format")
	_ = viper.BindPFlags(rootFlags)

	rootCmd.PersistentFlags().AddFlagSet(rootFlags)

	for _, v := range []func(*cobra.Command){
		registerGenerate,
		registerField,
		registerKAT,
	} {
		v(rootCmd)
	}
}
