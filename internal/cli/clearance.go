package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/wire"
)

var clearanceCmd = &cobra.Command{
	Use:   "clearance",
	Short: "Record BCA, HOUSING and ACCOUNTS section clearances",
}

var clearanceRecordCmd = &cobra.Command{
	Use:   "record [case-id] [section] [status]",
	Short: "Set a section clearance (PENDING, CLEAR, OBJECTION)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		remarks, _ := cmd.Flags().GetString("remarks")

		return wire.ClearanceAdapter().Record(ctx, primary.RecordClearanceRequest{
			CaseID:  args[0],
			Section: args[1],
			Status:  args[2],
			Remarks: remarks,
			Actor:   actor,
		})
	},
}

var clearanceObjectCmd = &cobra.Command{
	Use:   "object [case-id] [section]",
	Short: "Raise an objection on a section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		remarks, _ := cmd.Flags().GetString("remarks")
		return wire.ClearanceAdapter().Object(ctx, args[0], args[1], remarks, actor)
	},
}

var clearanceResolveCmd = &cobra.Command{
	Use:   "resolve [case-id] [section]",
	Short: "Resolve a section objection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		remarks, _ := cmd.Flags().GetString("remarks")
		return wire.ClearanceAdapter().Resolve(ctx, args[0], args[1], remarks, actor)
	},
}

var clearanceListCmd = &cobra.Command{
	Use:   "list [case-id]",
	Short: "List a case's clearances and reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ClearanceAdapter().List(NewContext(globalActor), args[0])
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Submit reviewer verdicts",
}

var reviewSubmitCmd = &cobra.Command{
	Use:   "submit [case-id] [section] [status]",
	Short: "Record a verdict (PENDING, APPROVED, REJECTED) for a review section",
	Long: `Record a verdict for one of OWO, OWO_CLEARANCES, OWO_ACCOUNTS or APPROVAL.
An approval moves the case on when the follow-up guard is satisfied.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		remarks, _ := cmd.Flags().GetString("remarks")

		return wire.ClearanceAdapter().SubmitReview(ctx, primary.SubmitReviewRequest{
			CaseID:  args[0],
			Section: args[1],
			Status:  args[2],
			Remarks: remarks,
			Actor:   actor,
		})
	},
}

// ClearanceCmd returns the clearance command
func ClearanceCmd() *cobra.Command {
	clearanceRecordCmd.Flags().StringP("remarks", "r", "", "Remarks")
	clearanceObjectCmd.Flags().StringP("remarks", "r", "", "Objection remarks (required)")
	clearanceObjectCmd.MarkFlagRequired("remarks")
	clearanceResolveCmd.Flags().StringP("remarks", "r", "", "Resolution remarks")

	clearanceCmd.AddCommand(clearanceRecordCmd)
	clearanceCmd.AddCommand(clearanceObjectCmd)
	clearanceCmd.AddCommand(clearanceResolveCmd)
	clearanceCmd.AddCommand(clearanceListCmd)

	return clearanceCmd
}

// ReviewCmd returns the review command
func ReviewCmd() *cobra.Command {
	reviewSubmitCmd.Flags().StringP("remarks", "r", "", "Reviewer remarks")

	reviewCmd.AddCommand(reviewSubmitCmd)

	return reviewCmd
}
