package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sarchlab/d2q9/datarecording"
	"github.com/spf13/cobra"
)

type summaryRow struct {
	NX           int
	NY           int
	MaxIters     int
	Workers      int
	Reynolds     float64
	TotalDensity float64
	ElapsedSec   float64
}

type avVelsRow struct {
	Iteration  int
	AvVelocity float64
}

type trafficRow struct {
	Src      int
	Dst      int
	Tag      string
	Messages int
	Bytes    int
}

var reportCmd = &cobra.Command{
	Use:   "report <database.sqlite3>",
	Short: "Summarize a run recorded with --record.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		last, _ := cmd.Flags().GetInt("last")

		reader, err := datarecording.NewReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		reader.MapTable("summary", summaryRow{})
		reader.MapTable("av_vels", avVelsRow{})
		reader.MapTable("traffic", trafficRow{})

		return report(cmd.Context(), cmd.OutOrStdout(), reader, last)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().Int("last", 5, "number of final average velocities to print")
}

func report(
	ctx context.Context,
	out io.Writer,
	reader datarecording.DataReader,
	last int,
) error {
	summaries, _, err := reader.Query(ctx, "summary", datarecording.QueryParams{})
	if err != nil {
		return err
	}

	for _, s := range summaries {
		s := s.(*summaryRow)
		fmt.Fprintf(out, "grid %dx%d, %d iterations on %d workers\n",
			s.NX, s.NY, s.MaxIters, s.Workers)
		fmt.Fprintf(out, "Reynolds number %.12E, total density %.6E, %.3fs\n",
			s.Reynolds, s.TotalDensity, s.ElapsedSec)
	}

	vels, total, err := reader.Query(ctx, "av_vels", datarecording.QueryParams{
		OrderBy: "Iteration DESC",
		Limit:   last,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "last %d of %d average velocities:\n", len(vels), total)
	for i := len(vels) - 1; i >= 0; i-- {
		v := vels[i].(*avVelsRow)
		fmt.Fprintf(out, "%d:\t%.12E\n", v.Iteration, v.AvVelocity)
	}

	traffic, _, err := reader.Query(ctx, "traffic", datarecording.QueryParams{
		OrderBy: "Src, Dst",
	})
	if err != nil {
		// The traffic table is optional.
		return nil
	}

	for _, t := range traffic {
		t := t.(*trafficRow)
		fmt.Fprintf(out, "rank %d -> %d %-10s %6d msgs %10d bytes\n",
			t.Src, t.Dst, t.Tag, t.Messages, t.Bytes)
	}

	return nil
}
