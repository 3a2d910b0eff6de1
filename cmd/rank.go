package cmd

import (
	"fmt"

	"swnations/api/web"
	"swnations/nations"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newRankCmd(a *app) *cobra.Command {
	var source string
	var all bool

	cmd := &cobra.Command{
		Use:       "rank [view]",
		Short:     "Print a ranking as a text table",
		Long:      "Prints the ranking for the given view (richest, largest or populous). Defaults to richest.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: lo.Map(nations.Views(), func(v nations.View, _ int) string { return v.String() }),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return fmt.Errorf("view %q cannot be combined with --all", args[0])
			}

			views := []nations.View{nations.DefaultView}
			if all {
				views = nations.Views()
			} else if len(args) == 1 {
				v, err := nations.ParseView(args[0])
				if err != nil {
					return err
				}
				views = []nations.View{v}
			}

			if source == "" {
				source = a.cfg.DatasetSource
			}

			if err := nations.DefaultGroups().Validate(); err != nil {
				return err
			}

			merged := nations.Merge(a.load(cmd.Context(), source), nations.DefaultGroups())

			out := cmd.OutOrStdout()
			for i, v := range views {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if err := web.WriteTable(out, v, nations.RankView(merged, v)); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Dataset path or URL (defaults to DATASET_SOURCE)")
	cmd.Flags().BoolVar(&all, "all", false, "Print every view")
	return cmd
}
