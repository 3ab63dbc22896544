package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/escalate/internal/config"
	"github.com/example/escalate/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a config file and initialize the database",
		Long: `Write a default escalate.yaml (unless one exists) and create the
database at ~/.escalate/escalate.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := config.WriteDefault(configPath)
			if err != nil {
				return err
			}
			if written {
				fmt.Printf("✓ Wrote default config to %s\n", configPath)
			} else {
				fmt.Printf("Config %s already exists, leaving it alone\n", configPath)
			}

			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing database at %s\n", dbPath)
			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			fmt.Println("✓ Database initialized successfully")

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Printf("  set token in %s (or export %s)\n", configPath, config.TokenEnv)
			fmt.Println("  escalate serve")

			return nil
		},
	}
}
