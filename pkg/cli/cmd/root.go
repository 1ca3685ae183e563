package cmd

import (
	"fmt"

	"github.com/ffcarrasco/astrogaia-setup/pkg/cli/setup"
	"github.com/ffcarrasco/astrogaia-setup/pkg/cli/ui/asciiart"
	"github.com/ffcarrasco/astrogaia-setup/pkg/cli/ui/errorhandler"
	"github.com/ffcarrasco/astrogaia-setup/pkg/di"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := di.NewRuntime()

	cmd := &cobra.Command{
		Use:   "astrogaia-setup",
		Short: "astrogaia-setup bootstraps the astrogaia Python application",
		Long: "astrogaia-setup clones the astrogaia application, provisions a Python " +
			"virtual environment for it, installs its dependencies, and verifies the result.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().Bool(
		setup.TimingFlagName,
		false,
		"Show per-stage timing output",
	)

	cmd.AddCommand(NewInstallCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	err := errorhandler.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// handleRootRunE prints the banner and the help text when no subcommand is given.
func handleRootRunE(cmd *cobra.Command, _ []string) error {
	asciiart.PrintAstrogaiaLogo(cmd.OutOrStdout())

	// Help can only fail for misconfigured templates, which we do not use.
	_ = cmd.Help()

	return nil
}
