package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/landxfer/internal/cli"
	"github.com/example/landxfer/internal/version"
	"github.com/example/landxfer/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "xfer",
		Short:   "xfer - property transfer case workflow",
		Version: version.String(),
		Long: `xfer moves property-transfer cases through intake, section clearances,
accounts, approval and deed execution. Every move is checked by a guard
and written to the case's audit trail.`,
		SilenceUsage: true,
	}
	cli.RegisterGlobalFlags(rootCmd)

	// Case work
	rootCmd.AddCommand(cli.CaseCmd())
	rootCmd.AddCommand(cli.TransitionCmd())
	rootCmd.AddCommand(cli.ClearanceCmd())
	rootCmd.AddCommand(cli.ReviewCmd())
	rootCmd.AddCommand(cli.AccountsCmd())
	rootCmd.AddCommand(cli.DeedCmd())
	rootCmd.AddCommand(cli.AuditCmd())

	// Admin tools
	rootCmd.AddCommand(cli.WorkflowCmd())
	rootCmd.AddCommand(cli.DBCmd())

	err := rootCmd.Execute()
	if cerr := wire.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
