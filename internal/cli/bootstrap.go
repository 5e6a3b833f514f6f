// Package cli provides CLI commands for the xfer application.
package cli

import (
	gocontext "context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/landxfer/internal/ctxutil"
	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/version"
	"github.com/example/landxfer/internal/wire"
)

// globalActor holds the --actor and --role flags for the current invocation.
// Set once at startup by StoreGlobalFlags.
var globalActor primary.Actor

// RegisterGlobalFlags adds --actor, --role and --config to the root command
// and stores them before any subcommand runs.
func RegisterGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().String("actor", "", "Acting user id (default: actor.id from config)")
	root.PersistentFlags().String("role", "", "Acting user role (default: actor.role from config)")
	root.PersistentFlags().String("config", "", "Config file or directory holding xfer.yaml")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		StoreGlobalFlags(cmd)
	}
}

// StoreGlobalFlags reads the persistent flags off cmd.
func StoreGlobalFlags(cmd *cobra.Command) {
	actorID, _ := cmd.Flags().GetString("actor")
	role, _ := cmd.Flags().GetString("role")
	configPath, _ := cmd.Flags().GetString("config")

	globalActor = primary.Actor{ID: actorID, Role: strings.ToUpper(role)}
	if configPath != "" {
		wire.SetConfigPath(configPath)
	}
}

// CurrentActor returns the acting user, falling back to the configured default.
func CurrentActor() (primary.Actor, error) {
	actor := globalActor
	if actor.ID == "" || actor.Role == "" {
		cfg := wire.Config().Actor
		if actor.ID == "" {
			actor.ID = cfg.ID
		}
		if actor.Role == "" {
			actor.Role = strings.ToUpper(cfg.Role)
		}
	}
	if actor.ID == "" {
		return primary.Actor{}, fmt.Errorf("no actor given\nHint: use --actor and --role, or set actor.id in xfer.yaml")
	}
	return actor, nil
}

// NewContext creates a context.Background() with the actor and the CLI's
// provenance embedded. CLI commands should use this instead of
// context.Background() directly.
func NewContext(actor primary.Actor) gocontext.Context {
	ctx := gocontext.Background()
	if actor.ID != "" {
		ctx = ctxutil.WithActorID(ctx, actor.ID)
	}
	return ctxutil.WithProvenance(ctx, ctxutil.Provenance{UserAgent: version.UserAgent()})
}

// actorContext resolves the actor and builds its context in one step.
func actorContext() (gocontext.Context, primary.Actor, error) {
	actor, err := CurrentActor()
	if err != nil {
		return nil, primary.Actor{}, err
	}
	return NewContext(actor), actor, nil
}
