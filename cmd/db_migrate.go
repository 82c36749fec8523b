package cmd

import (
	"fmt"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

// migrateCmd creates or alters the tables registered by the bank, user and transaction stores
var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "create or update the lending pool tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			return fmt.Errorf("migrate lending tables: %w", err)
		}

		cmd.Println("lending tables are up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
