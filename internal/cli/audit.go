package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/landxfer/internal/wire"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Read a case's audit trail",
}

var auditListCmd = &cobra.Command{
	Use:   "list [case-id]",
	Short: "List audit entries in order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AuditAdapter().List(NewContext(globalActor), args[0])
	},
}

var auditExportCmd = &cobra.Command{
	Use:   "export [case-id]",
	Short: "Export the audit trail as an .xlsx workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = fmt.Sprintf("%s-audit.xlsx", args[0])
		}
		return wire.AuditAdapter().Export(NewContext(globalActor), args[0], out)
	},
}

// AuditCmd returns the audit command
func AuditCmd() *cobra.Command {
	auditExportCmd.Flags().StringP("output", "o", "", "Output path (default: <case-id>-audit.xlsx)")

	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditExportCmd)

	return auditCmd
}
