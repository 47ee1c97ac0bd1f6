// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"

	"bujichang/spending/internal/config"
	"bujichang/spending/internal/container"
	"bujichang/spending/internal/loader"
	"bujichang/spending/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands. It is replaced by the
	// configured logger once a command builds its container.
	Log = logging.NewLogrusAdapter("info", "text")

	// ConfigFile is an explicit config file path; empty means the default
	// search locations.
	ConfigFile string

	// Policy overrides load.policy when set.
	Policy string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "spending",
		Short: "Normalize and classify household spending from ledger and bank sheets.",
		Long: `spending fetches the cash ledger, bank statement and credit card sheets,
normalizes every row into one canonical table and classifies it by tag,
class, payment method and frequency.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadEnv(); err != nil {
				return fmt.Errorf("loading .env: %w", err)
			}
			return nil
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.spending, .spending or .)")
	Cmd.PersistentFlags().StringVar(&Policy, "policy", "", "What to do when a source fails: abort or partial (overrides load.policy)")
}

// NewContainer reads the configuration, applies command-line overrides and
// wires the application.
func NewContainer(ctx context.Context) (*container.Container, error) {
	cfg, err := config.InitializeConfig(ConfigFile)
	if err != nil {
		return nil, err
	}
	if Policy != "" {
		if _, err := loader.ParsePolicy(Policy); err != nil {
			return nil, err
		}
		cfg.Load.Policy = Policy
	}

	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	Log = c.GetLogger()
	return c, nil
}
