package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swnations/api/web"
	"swnations/database"
	"swnations/nations"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rankings page and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				source = a.cfg.DatasetSource
			}

			// Wait for Ctrl+C or kill.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx, source)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Dataset path or URL (defaults to DATASET_SOURCE)")
	return cmd
}

func (a *app) serve(ctx context.Context, source string) error {
	db, err := database.New(source, nations.DefaultGroups(), a.load)
	if err != nil {
		return err
	}

	log.WithField("source", db.Source()).Info("Loading dataset")
	db.Reload(ctx)
	if a.cfg.ReloadInterval > 0 {
		scheduleTask(ctx, func() { db.Reload(ctx) }, a.cfg.ReloadInterval)
	}

	router := web.NewRouter(db, web.Options{
		RankingsRPM: a.cfg.RankingsRPM,
		ReloadRPM:   a.cfg.ReloadRPM,
		LoadTimeout: a.cfg.LoadTimeout,
	})

	return web.Serve(ctx, a.cfg.ListenAddr, router)
}

// Runs task every interval until ctx is done.
func scheduleTask(ctx context.Context, task func(), interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Debug("Running scheduled dataset reload")
				task()
			}
		}
	}()
}
