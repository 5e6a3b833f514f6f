package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/landxfer/internal/app"
	"github.com/example/landxfer/internal/core/guards"
	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/wire"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Inspect the stage graph",
}

var workflowStagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List every stage",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCODE\tNAME\tTERMINAL")
		for _, s := range workflow.Stages() {
			terminal := ""
			if len(workflow.EdgesFrom(s.Code)) == 0 {
				terminal = "yes"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.Code, s.Name, terminal)
		}
		return w.Flush()
	},
}

var workflowEdgesCmd = &cobra.Command{
	Use:   "edges",
	Short: "List every permitted move and its guard",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")

		edges := workflow.Edges()
		if from != "" {
			stage, ok := workflow.ParseStageRef(from)
			if !ok {
				return fmt.Errorf("unknown stage %q", from)
			}
			edges = workflow.EdgesFrom(stage.Code)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tFROM\tTO\tGUARD")
		for _, e := range edges {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.SortOrder, e.From, e.To, e.Guard)
		}
		return w.Flush()
	},
}

func needNames(n guards.Need) string {
	kinds := []struct {
		need guards.Need
		name string
	}{
		{guards.NeedDocuments, "documents"},
		{guards.NeedClearances, "clearances"},
		{guards.NeedReviews, "reviews"},
		{guards.NeedAccounts, "accounts"},
		{guards.NeedDeed, "deed"},
	}
	var names []string
	for _, k := range kinds {
		if n.Has(k.need) {
			names = append(names, k.name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

var workflowGuardsCmd = &cobra.Command{
	Use:   "guards",
	Short: "List the guard table",
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := guards.Definitions()
		uses := make(map[workflow.GuardName]int)
		for _, e := range workflow.Edges() {
			uses[e.Guard]++
		}

		names := make([]string, 0, len(defs))
		for name := range defs {
			names = append(names, string(name))
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "GUARD\tREADS\tPROVISIONS\tEDGES")
		for _, name := range names {
			def := defs[workflow.GuardName(name)]
			provisions := ""
			if def.Provision != nil {
				provisions = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", name, needNames(def.Needs), provisions, uses[def.Name])
		}
		return w.Flush()
	},
}

var workflowVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every edge has a guard and the seeded tables match the graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		ok := color.New(color.FgGreen).Sprint("OK")
		failed := false

		if _, err := app.NewGuardRegistry(guards.Definitions(), workflow.Edges(), wire.Logger()); err != nil {
			fmt.Printf("  guards:         %s\n", color.New(color.FgRed).Sprint(err.Error()))
			failed = true
		} else {
			fmt.Printf("  guards:         %s (%d edges)\n", ok, len(workflow.Edges()))
		}

		drift, err := app.VerifyReferenceData(NewContext(globalActor), wire.ReferenceData())
		if err != nil {
			return err
		}
		if len(drift) == 0 {
			fmt.Printf("  reference data: %s\n", ok)
		} else {
			fmt.Printf("  reference data: %s\n", color.New(color.FgRed).Sprint("DRIFT"))
			for _, d := range drift {
				fmt.Printf("    - %s\n", d)
			}
			failed = true
		}

		if failed {
			return fmt.Errorf("workflow verification failed")
		}
		return nil
	},
}

// WorkflowCmd returns the workflow command
func WorkflowCmd() *cobra.Command {
	workflowEdgesCmd.Flags().String("from", "", "Only edges out of this stage (code or id)")

	workflowCmd.AddCommand(workflowStagesCmd)
	workflowCmd.AddCommand(workflowEdgesCmd)
	workflowCmd.AddCommand(workflowGuardsCmd)
	workflowCmd.AddCommand(workflowVerifyCmd)

	return workflowCmd
}
