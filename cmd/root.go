package cmd

import (
	"context"
	"fmt"
	"os"

	"swnations/api/dataset"
	"swnations/nations"
	"swnations/utils/config"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type app struct {
	envFile string
	cfg     *config.Config
}

// Builds the CLI. Running it without a subcommand starts the rankings server.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "swnations",
		Short: "Stoneworks nation rankings",
		Long: `Ranks the nations of the Stoneworks server by wealth, claimed land and population.

Nations belonging to the same empire are merged before ranking. Without a subcommand,
the rankings are served over HTTP.

` + config.Usage(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", config.DEFAULT_ENV_FILE, "Optional .env file loaded before reading the environment")

	serve := newServeCmd(a)
	root.RunE = serve.RunE

	root.AddCommand(serve, newRankCmd(a), newScrapeCmd(a), newReportCmd(a))

	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}

	level, _ := cfg.Level() // validated by Load
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	a.cfg = cfg
	return nil
}

// Loads the dataset, bounded by the configured timeout. Failures degrade to no nations.
func (a *app) load(ctx context.Context, source string) []nations.RawNation {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.LoadTimeout)
	defer cancel()

	return dataset.LoadOrEmpty(ctx, source)
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
