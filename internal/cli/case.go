package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/wire"
)

var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Manage transfer cases",
	Long:  "Open cases, record intake documents and inspect case state",
}

var caseCreateCmd = &cobra.Command{
	Use:   "create [applicant-name]",
	Short: "Open a new case at SUBMITTED",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		seller, _ := cmd.Flags().GetString("seller")
		buyer, _ := cmd.Flags().GetString("buyer")
		plot, _ := cmd.Flags().GetString("plot")

		return wire.CaseAdapter().Create(ctx, primary.CreateCaseRequest{
			ApplicantName: args[0],
			SellerRef:     seller,
			BuyerRef:      buyer,
			PlotRef:       plot,
			Actor:         actor,
		})
	},
}

var caseShowCmd = &cobra.Command{
	Use:   "show [case-id]",
	Short: "Show case details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.CaseAdapter().Show(NewContext(globalActor), args[0])
		return err
	},
}

var caseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		stage, _ := cmd.Flags().GetString("stage")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		return wire.CaseAdapter().List(NewContext(globalActor), primary.CaseFilters{
			Stage:  stage,
			Status: status,
			Limit:  limit,
		})
	},
}

var caseDocCmd = &cobra.Command{
	Use:   "doc",
	Short: "Record intake documents",
}

var caseDocAddCmd = &cobra.Command{
	Use:   "add [case-id] [doc-type]",
	Short: "Record that a required document was submitted",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		return wire.CaseAdapter().AddDocument(ctx, args[0], args[1], actor)
	},
}

var caseDocSeenCmd = &cobra.Command{
	Use:   "seen [case-id] [doc-type]",
	Short: "Flag that a document's original was inspected",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		return wire.CaseAdapter().MarkSeen(ctx, args[0], args[1], actor)
	},
}

var caseDocsCmd = &cobra.Command{
	Use:   "docs [case-id]",
	Short: "List a case's documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CaseAdapter().Documents(NewContext(globalActor), args[0])
	},
}

var caseTransferOwnershipCmd = &cobra.Command{
	Use:   "transfer-ownership [case-id]",
	Short: "Switch the plot owner to the buyer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		return wire.CaseAdapter().TransferOwnership(ctx, args[0], actor)
	},
}

// CaseCmd returns the case command
func CaseCmd() *cobra.Command {
	caseCreateCmd.Flags().String("seller", "", "Seller reference (required)")
	caseCreateCmd.Flags().String("buyer", "", "Buyer reference (required)")
	caseCreateCmd.Flags().String("plot", "", "Plot reference (required)")
	caseCreateCmd.MarkFlagRequired("seller")
	caseCreateCmd.MarkFlagRequired("buyer")
	caseCreateCmd.MarkFlagRequired("plot")

	caseListCmd.Flags().String("stage", "", "Filter by stage code")
	caseListCmd.Flags().StringP("status", "s", "", "Filter by status (active, closed)")
	caseListCmd.Flags().IntP("limit", "n", 0, "Maximum number of cases")

	caseDocCmd.AddCommand(caseDocAddCmd)
	caseDocCmd.AddCommand(caseDocSeenCmd)

	caseCmd.AddCommand(caseCreateCmd)
	caseCmd.AddCommand(caseShowCmd)
	caseCmd.AddCommand(caseListCmd)
	caseCmd.AddCommand(caseDocCmd)
	caseCmd.AddCommand(caseDocsCmd)
	caseCmd.AddCommand(caseTransferOwnershipCmd)

	return caseCmd
}
