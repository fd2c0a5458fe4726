package command

// root.go defines the root command for the bookswap admin CLI.
// Subcommands talk to the database directly using the server's config.

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"bookswap/database"
	"bookswap/internal/config"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	envFile string // optional .env file to load before the environment
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bookswap-admin",
	Short: "bookswap-admin - administration tool for the book exchange API",
	Long: `bookswap-admin manages the book exchange database outside the HTTP API:
- apply schema migrations
- create user accounts
- import books from CSV
- inspect books, exchanges, ratings and recommendations

Configuration is read from the same environment variables as the API server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load variables from this file first")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// openDB loads config and connects; the returned func closes the pool.
func openDB(ctx context.Context) (*gorm.DB, *config.Config, func(), error) {
	if envFile != "" {
		if err := config.LoadEnvFile(envFile); err != nil {
			return nil, nil, nil, err
		}
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	db, closeDB, err := database.OpenGorm(connectCtx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return db, cfg, closeDB, nil
}
