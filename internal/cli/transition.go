package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/wire"
)

var transitionCmd = &cobra.Command{
	Use:   "transition",
	Short: "Move cases between stages",
}

// parseExtra turns repeated --extra key=value flags into guard context.
func parseExtra(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	extra := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --extra %q: expected key=value", p)
		}
		extra[k] = v
	}
	return extra, nil
}

func transitionRequest(cmd *cobra.Command, args []string, actor primary.Actor) (primary.TransitionRequest, error) {
	from, _ := cmd.Flags().GetString("from")
	remarks, _ := cmd.Flags().GetString("remarks")
	pairs, _ := cmd.Flags().GetStringArray("extra")

	extra, err := parseExtra(pairs)
	if err != nil {
		return primary.TransitionRequest{}, err
	}
	return primary.TransitionRequest{
		CaseID:    args[0],
		ToStage:   args[1],
		FromStage: from,
		Actor:     actor,
		Remarks:   remarks,
		Extra:     extra,
	}, nil
}

var transitionRequestCmd = &cobra.Command{
	Use:   "request [case-id] [to-stage]",
	Short: "Move a case if its guard allows",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		req, err := transitionRequest(cmd, args, actor)
		if err != nil {
			return err
		}
		return wire.WorkflowAdapter().Request(ctx, req)
	},
}

var transitionCheckCmd = &cobra.Command{
	Use:   "check [case-id] [to-stage]",
	Short: "Evaluate a move without performing it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		req, err := transitionRequest(cmd, args, actor)
		if err != nil {
			return err
		}
		return wire.WorkflowAdapter().Check(ctx, req)
	},
}

var transitionAvailableCmd = &cobra.Command{
	Use:   "available [case-id]",
	Short: "List the moves out of a case's current stage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, actor, err := actorContext()
		if err != nil {
			return err
		}
		return wire.WorkflowAdapter().Available(ctx, args[0], actor)
	},
}

// TransitionCmd returns the transition command
func TransitionCmd() *cobra.Command {
	for _, c := range []*cobra.Command{transitionRequestCmd, transitionCheckCmd} {
		c.Flags().String("from", "", "Expected current stage; fails if the case has moved")
		c.Flags().StringArray("extra", nil, "Extra guard context as key=value (repeatable)")
	}
	transitionRequestCmd.Flags().StringP("remarks", "r", "", "Remarks recorded on the audit entry")

	transitionCmd.AddCommand(transitionRequestCmd)
	transitionCmd.AddCommand(transitionCheckCmd)
	transitionCmd.AddCommand(transitionAvailableCmd)

	return transitionCmd
}
