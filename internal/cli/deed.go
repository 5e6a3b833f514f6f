package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/wire"
)

var deedCmd = &cobra.Command{
	Use:   "deed",
	Short: "Draft and finalize transfer deeds",
}

var deedDraftCmd = &cobra.Command{
	Use:   "draft [case-id]",
	Short: "Create or replace the deed draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		witness1, _ := cmd.Flags().GetString("witness1")
		witness2, _ := cmd.Flags().GetString("witness2")
		content, _ := cmd.Flags().GetString("content")
		contentFile, _ := cmd.Flags().GetString("content-file")
		photo, _ := cmd.Flags().GetString("photo-url")
		signature, _ := cmd.Flags().GetString("signature-url")

		if contentFile != "" {
			data, err := os.ReadFile(contentFile)
			if err != nil {
				return fmt.Errorf("failed to read deed content: %w", err)
			}
			content = string(data)
		}

		return wire.DeedAdapter().Draft(ctx, primary.DraftDeedRequest{
			CaseID:       args[0],
			Witness1:     witness1,
			Witness2:     witness2,
			Content:      content,
			PhotoURL:     photo,
			SignatureURL: signature,
			Actor:        actor,
		})
	},
}

var deedFinalizeCmd = &cobra.Command{
	Use:   "finalize [case-id]",
	Short: "Freeze the deed and stamp its content hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		return wire.DeedAdapter().Finalize(ctx, args[0], actor)
	},
}

var deedShowCmd = &cobra.Command{
	Use:   "show [case-id]",
	Short: "Show a case's deed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.DeedAdapter().Show(NewContext(globalActor), args[0])
	},
}

// DeedCmd returns the deed command
func DeedCmd() *cobra.Command {
	deedDraftCmd.Flags().String("witness1", "", "First witness (required)")
	deedDraftCmd.Flags().String("witness2", "", "Second witness (required)")
	deedDraftCmd.Flags().StringP("content", "c", "", "Deed text")
	deedDraftCmd.Flags().String("content-file", "", "Read deed text from a file")
	deedDraftCmd.Flags().String("photo-url", "", "Photo URL")
	deedDraftCmd.Flags().String("signature-url", "", "Signature URL")
	deedDraftCmd.MarkFlagRequired("witness1")
	deedDraftCmd.MarkFlagRequired("witness2")

	deedCmd.AddCommand(deedDraftCmd)
	deedCmd.AddCommand(deedFinalizeCmd)
	deedCmd.AddCommand(deedShowCmd)

	return deedCmd
}
