// Command tzgroups groups people across timezones from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/tzgroups/internal/config"
	"github.com/mmynk/tzgroups/pkg/logging"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "tzgroups",
		Short:         "Split people into groups that share meeting hours across timezones",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logging.SetupWithLevel(level)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", os.Getenv("LOG_LEVEL"), "debug, info, warn or error")

	// Add subcommands
	rootCmd.AddCommand(groupCmd())
	rootCmd.AddCommand(encodeCmd())
	rootCmd.AddCommand(decodeCmd())
	rootCmd.AddCommand(randomCmd())
	rootCmd.AddCommand(timezonesCmd())

	return rootCmd
}

// loadConfig reads .env and the environment for defaults flags can override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
