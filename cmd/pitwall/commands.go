package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamBeresnev/pitwall/internal/db"
	"github.com/AdamBeresnev/pitwall/internal/service"
	"github.com/AdamBeresnev/pitwall/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.RunMigrations(database); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
		return nil
	},
}

var scoreEventCmd = &cobra.Command{
	Use:   "score-event <event-id>",
	Short: "Score all unscored predictions of an event and rebuild standings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid event ID %q: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Scoring event %s\n", eventID)

		scoring := service.NewScoringService(database, store.New(database))
		report, err := scoring.ScoreEvent(cmd.Context(), eventID)
		if err != nil {
			return err
		}

		if report.NothingToScore {
			fmt.Fprintf(out, "No unscored predictions found for %s\n", report.EventName)
			return nil
		}
		fmt.Fprintf(out, "Scored %d predictions for %s\n", report.Scored, report.EventName)
		fmt.Fprintf(out, "  Points awarded:    %d\n", report.PointsAwarded)
		fmt.Fprintf(out, "  Exact matches:     %d\n", report.ExactMatches)
		fmt.Fprintf(out, "  Partial matches:   %d\n", report.PartialMatches)
		fmt.Fprintf(out, "  Standings updated: %d\n", report.StandingsUpdated)
		return nil
	},
}

var recomputeStandingsCmd = &cobra.Command{
	Use:   "recompute-standings <competition-id>",
	Short: "Rebuild the standings of a competition from its scored predictions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		competitionID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid competition ID %q: %w", args[0], err)
		}

		scoring := service.NewScoringService(database, store.New(database))
		updated, err := scoring.RecomputeStandings(cmd.Context(), competitionID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Standings updated: %d\n", updated)
		return nil
	},
}

var verifyResultsCmd = &cobra.Command{
	Use:   "verify-results <event-id>",
	Short: "Mark every recorded result of an event as verified",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid event ID %q: %w", args[0], err)
		}

		results := service.NewResultService(database, store.New(database))
		count, err := results.Verify(cmd.Context(), eventID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Results verified: %d\n", count)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.RunMigrations(database); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           newRouter(database, cfg),
			ReadHeaderTimeout: 5 * time.Second,
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			slog.Info("server starting", "addr", cfg.HTTPAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			slog.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}
