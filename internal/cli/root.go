// SPDX-License-Identifier: Apache-2.0

// Package cli implements the clinrank command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcgenomics/clinrank/internal/config"
)

type rootOptions struct {
	profileName string
	profilePath string
	logLevel    string
}

// NewRootCommand builds the clinrank command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "clinrank",
		Short:         "Consolidate and clinically prioritize variant/CNV annotation tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogging(opts.logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.profileName, "profile", "cnv", "built-in profile: cnv or snv")
	cmd.PersistentFlags().StringVar(&opts.profilePath, "profile-file", "", "YAML profile file (overrides --profile)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newRunCommand(opts),
		newNormalizeCommand(opts),
		newJoinCommand(opts),
		newRankCommand(opts),
		newServeCommand(),
	)
	return cmd
}

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "clinrank:", err)
		return 1
	}
	return 0
}

func initLogging(level string) error {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// loadProfile resolves the profile from the persistent flags. Called before
// any input row is read so that configuration failures abort with no
// partial output.
func (o *rootOptions) loadProfile() (config.Profile, error) {
	if o.profilePath != "" {
		return config.LoadFile(o.profilePath)
	}
	return config.Builtin(o.profileName)
}
