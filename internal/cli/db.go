package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/landxfer/internal/db"
	"github.com/example/landxfer/internal/wire"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the case database",
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the schema and seed the stage graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext(globalActor)
		database, dialect := wire.DB()

		// Opening the pool already applied the schema; this reports where it landed
		if err := db.InitSchema(ctx, database, dialect); err != nil {
			return err
		}
		version, err := db.CurrentVersion(ctx, database)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Database ready (%s, schema version %d of %d)\n", wire.Config().Database.Driver, version, db.LatestVersion())
		return nil
	},
}

var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load development fixtures (three cases at intake)",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, dialect := wire.DB()
		if err := db.SeedFixtures(NewContext(globalActor), database, dialect); err != nil {
			return fmt.Errorf("failed to seed fixtures: %w", err)
		}

		fmt.Println("✓ Seeded APP-0001, APP-0002 and APP-0003")
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("   xfer transition available APP-0001 --actor clerk-01 --role CLERK")
		return nil
	},
}

// DBCmd returns the db command
func DBCmd() *cobra.Command {
	dbCmd.AddCommand(dbInitCmd)
	dbCmd.AddCommand(dbSeedCmd)

	return dbCmd
}
