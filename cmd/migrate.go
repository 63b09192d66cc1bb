package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lajournal/lajournal/internal/config"
	"github.com/lajournal/lajournal/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		db, err := database.InitDB(cmd.Context(), cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Printf("database ready at %s\n", cfg.Database.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
