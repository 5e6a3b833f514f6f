package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/wire"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Calculate fees and verify payment",
}

var accountsCalculateCmd = &cobra.Command{
	Use:   "calculate [case-id]",
	Short: "Set the fee heads of a case's breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		f := cmd.Flags()
		var fees primary.FeeHeads
		fees.TransferFee, _ = f.GetInt64("transfer-fee")
		fees.StampDuty, _ = f.GetInt64("stamp-duty")
		fees.RegistrationFee, _ = f.GetInt64("registration-fee")
		fees.MutationFee, _ = f.GetInt64("mutation-fee")
		fees.ProcessingFee, _ = f.GetInt64("processing-fee")
		fees.DevelopmentCharges, _ = f.GetInt64("development-charges")
		fees.Arrears, _ = f.GetInt64("arrears")
		fees.Penalty, _ = f.GetInt64("penalty")

		return wire.AccountsAdapter().Calculate(ctx, primary.CalculateBreakdownRequest{
			CaseID: args[0],
			Fees:   fees,
			Actor:  actor,
		})
	},
}

var accountsVerifyPaymentCmd = &cobra.Command{
	Use:   "verify-payment [case-id] [paid-amount]",
	Short: "Record the amount paid so far",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		paid, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return err
		}
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		return wire.AccountsAdapter().VerifyPayment(ctx, args[0], paid, actor)
	},
}

var accountsObjectCmd = &cobra.Command{
	Use:   "object [case-id] [reason]",
	Short: "Put a case's accounts on hold",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		return wire.AccountsAdapter().Object(ctx, args[0], args[1], actor)
	},
}

var accountsResolveCmd = &cobra.Command{
	Use:   "resolve [case-id]",
	Short: "Lift an accounts hold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		return wire.AccountsAdapter().Resolve(ctx, args[0], actor)
	},
}

var accountsShowCmd = &cobra.Command{
	Use:   "show [case-id]",
	Short: "Show a case's breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AccountsAdapter().Show(NewContext(globalActor), args[0])
	},
}

// AccountsCmd returns the accounts command
func AccountsCmd() *cobra.Command {
	f := accountsCalculateCmd.Flags()
	f.Int64("transfer-fee", 0, "Transfer fee")
	f.Int64("stamp-duty", 0, "Stamp duty")
	f.Int64("registration-fee", 0, "Registration fee")
	f.Int64("mutation-fee", 0, "Mutation fee")
	f.Int64("processing-fee", 0, "Processing fee")
	f.Int64("development-charges", 0, "Development charges")
	f.Int64("arrears", 0, "Arrears")
	f.Int64("penalty", 0, "Penalty")

	accountsCmd.AddCommand(accountsCalculateCmd)
	accountsCmd.AddCommand(accountsVerifyPaymentCmd)
	accountsCmd.AddCommand(accountsObjectCmd)
	accountsCmd.AddCommand(accountsResolveCmd)
	accountsCmd.AddCommand(accountsShowCmd)

	return accountsCmd
}
