// Command budget-api serves the budget API and runs its migrations.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/budget-api/config"
	"github.com/finance-tracker/budget-api/internal/infra/db"
	"github.com/finance-tracker/budget-api/internal/infra/logging"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:          "budget-api",
	Short:        "Budget tracking API",
	Long:         "Serves the budget and expense API and the alert email worker.",
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "TOML config file (environment variables take precedence)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// loadConfig reads the configuration and installs the logger.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if flagConfig != "" {
		loaded, err := config.LoadFile(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Load()
	}

	logging.Setup(cfg.Log)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openDatabase connects and migrates the schema.
func openDatabase(cfg *config.Config) (*db.Database, error) {
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(); err != nil {
		_ = database.Close()
		return nil, err
	}
	slog.Info("Database migrations completed successfully")
	return database, nil
}
