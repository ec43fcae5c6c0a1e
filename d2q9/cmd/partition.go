package cmd

import (
	"fmt"
	"strconv"

	"github.com/sarchlab/d2q9/partition"
	"github.com/spf13/cobra"
)

var partitionCmd = &cobra.Command{
	Use:   "partition <ny> <workers>",
	Short: "Print how the rows are split between workers.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ny, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("ny: %w", err)
		}

		workers, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("workers: %w", err)
		}

		ranges, err := partition.Split(ny, workers)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for rank, r := range ranges {
			south, north, err := partition.Neighbors(ny, workers, rank)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "rank %d: rows %s (%d), south %d, north %d\n",
				rank, r, r.Rows(), south, north)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(partitionCmd)
}
