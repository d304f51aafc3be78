// Package cli is for command line interactions with the perplexity
// tools. Each command reads its settings through viper, so flags,
// PERPLEX_ environment variables and a config file can all set them.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/andrew-torda/seqperplex/pkg/config"
	"github.com/andrew-torda/seqperplex/pkg/seq/common"
)

// usageError is a mistake on the command line, rather than a failure
// while working.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// usageArgs marks argument count errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// app is shared by the commands of one root.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// bind connects flags to config keys. Flags the user did not set do not
// hide values from the environment or the config file.
func (a *app) bind(flags *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// config reads the settings once the flags are parsed.
func (a *app) config() (*config.Config, error) {
	return config.New(a.v, a.cfgFile)
}

// NewRootCmd builds the complete command tree, with its own settings.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	// rootCmd represents the base command when called without any subcommands.
	rootCmd := &cobra.Command{
		Use:   "perplex",
		Short: "Positional perplexity of aligned DNA sequences",
		Long: `Calculate the perplexity at each position of a set of aligned
DNA sequences. Perplexity is 2 to the power of the Shannon entropy (bits)
of the bases seen at a position. A conserved position has perplexity 1,
four bases in equal amounts give 4.`,
		Version:       "0.1.0",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{fmt.Errorf("%w\n%s", err, c.UsageString())}
	})

	rootCmd.AddCommand(
		newCalcCmd(a),
		newServeCmd(a),
		newKindsCmd(a),
		newRandSeqCmd(a),
	)
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var uErr usageError
		if errors.As(err, &uErr) {
			os.Exit(common.ExitUsageError)
		}
		os.Exit(common.ExitFailure)
	}
	os.Exit(common.ExitSuccess)
}
