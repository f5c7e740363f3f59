package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/AdamBeresnev/pitwall/internal/config"
	"github.com/AdamBeresnev/pitwall/internal/db"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var (
	envFile  string
	cfg      *config.Config
	database *sqlx.DB
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a dotenv file")
	rootCmd.AddCommand(migrateCmd, scoreEventCmd, recomputeStandingsCmd, verifyResultsCmd, serveCmd)
}

var rootCmd = &cobra.Command{
	Use:           "pitwall",
	Short:         "Season prediction pool",
	Long:          `Scores race predictions against verified results and maintains competition standings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		slog.SetDefault(cfg.Logger(os.Stderr))

		database, err = db.Connect(cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if database != nil {
			database.Close()
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
