// Package cmd provides the command-line interface of the d2q9 solver.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "d2q9",
	Short: "d2q9 simulates 2-D channel flow with a parallel D2Q9 LBM solver.",
	Long: `d2q9 simulates 2-D flow over an obstacle field with the D2Q9 ` +
		`lattice-Boltzmann method and a BGK collision operator. The lattice ` +
		`is split into row blocks that run on cooperating workers.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	atexit.Exit(1)
}
