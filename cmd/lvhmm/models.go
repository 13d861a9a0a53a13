package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvhmm/store"
)

func modelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "list stored models",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lc, _, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, err := openStore(ctx, lc)
			if err != nil {
				return err
			}
			defer func() { _ = store.CloseIfSupported(s) }()

			list, err := s.ListModels(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "id\tdataset\tcreated")
			for _, m := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.Dataset, m.CreatedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
	attachFlags(cmd, []string{"config"})

	return cmd
}
