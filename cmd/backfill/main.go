// Command backfill migrates remaining legacy-provider games in bulk instead
// of waiting for users to view them one at a time.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/config"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/database"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/logger"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/migration"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/models"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/provider"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	limit  int
	dryRun bool
)

var rootCmd = &cobra.Command{
	Use:           "backfill",
	Short:         "Backlog Explorer migration backfill",
	Long:          `Backfill walks games still stored under the legacy RAWG provider and migrates them to IGDB-backed records, one at a time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Migrate all remaining legacy games",
	Long: `Migrate all remaining legacy games to the current provider.

Each game is resolved, reconciled and re-linked independently; a failure on
one game is reported and does not stop the rest.

Examples:
  # Report what would be migrated
  backfill run --dry-run

  # Migrate at most 50 games
  backfill run --limit 50`,
	RunE: runBackfill,
}

func init() {
	runCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of games to process (0 = all)")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve only, write nothing")
	rootCmd.AddCommand(runCmd)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	config.LoadConfig()
	cfg := config.AppConfig

	l, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	database.Connect(cfg.DatabaseURL)

	igdb := provider.NewIGDBClient(cfg.IGDBClientID, cfg.IGDBToken, cfg.SearchLimit)
	svc := migration.NewService(database.DB, igdb, l,
		migration.MatchOptions{MinExactLength: cfg.MatchMinExactLength})

	query := database.DB.Where("provider = ?", models.ProviderRAWG).Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var games []models.Game
	if err := query.Find(&games).Error; err != nil {
		return fmt.Errorf("failed to list legacy games: %w", err)
	}

	fmt.Printf("Found %d legacy games\n\n", len(games))

	var migrated, noMatch, failed int
	for _, game := range games {
		if dryRun {
			fmt.Printf("  would migrate: %s (id %d)\n", game.Title, game.ID)
			continue
		}

		out, err := svc.MigrateToIGDB(ctx, game)
		switch {
		case err != nil:
			failed++
			l.Warn("backfill: migration failed",
				zap.String("title", game.Title),
				zap.String("stage", out.Stage.String()),
				zap.Error(err))
		case out.Game == nil:
			noMatch++
			fmt.Printf("  no match:  %s\n", game.Title)
		default:
			migrated++
			fmt.Printf("  migrated:  %s -> igdb/%s\n", game.Title, out.Game.ExternalID)
		}
	}

	if !dryRun {
		fmt.Printf("\nDone: %d migrated, %d no-match, %d failed\n", migrated, noMatch, failed)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
