package main

import (
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "print dataset statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadDataset(dataFlag)
			if err != nil {
				return err
			}
			_, err = ds.Stats().WriteTo(cmd.OutOrStdout())
			return err
		},
	}
	attachFlags(cmd, []string{"data"})

	return cmd
}
