package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sarchlab/d2q9/config"
	"github.com/sarchlab/d2q9/datarecording"
	"github.com/sarchlab/d2q9/id"
	"github.com/sarchlab/d2q9/monitoring"
	"github.com/sarchlab/d2q9/output"
	"github.com/sarchlab/d2q9/simulation"
	"github.com/sarchlab/d2q9/tracing"
	"github.com/spf13/cobra"
)

var phaseKinds = []string{"halo", "stream", "rebound", "collide", "reduce"}

type runOptions struct {
	workers     int
	threads     int
	outputDir   string
	inletRow    int
	monitor     bool
	monitorPort int
	openBrowser bool
	record      bool
	trace       bool
	plot        bool
}

var runCmd = &cobra.Command{
	Use:   "run <paramfile> <obstaclefile>",
	Short: "Run a simulation and write final_state.dat and av_vels.dat.",
	Long: `Run a simulation described by a parameter file and an obstacle ` +
		`file. Flags that are not given take their defaults from the ` +
		`D2Q9_* environment variables, which can also be set in a .env file.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := readRunOptions(cmd)
		if err != nil {
			fail(err)
		}

		err = runSimulation(cmd.Context(), args[0], args[1], opts)
		if err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.Int("workers", 0, "number of workers, 0 for one per CPU")
	f.Int("threads", 1, "goroutines stepping the rows of each worker")
	f.String("output-dir", ".", "directory the result files are written to")
	f.Int("inlet-row", 0, "row that receives the inflow forcing")
	f.Bool("monitor", false, "serve a monitoring page while running")
	f.Int("monitor-port", 0, "port of the monitoring page, 0 for random")
	f.Bool("open-browser", false, "open the monitoring page in a browser")
	f.Bool("record", false, "record the results into an SQLite database")
	f.Bool("trace", false, "trace the time spent in each phase")
	f.Bool("plot", false, "plot av_vels.png and velocity.png")
}

func readRunOptions(cmd *cobra.Command) (runOptions, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return runOptions{}, err
	}

	f := cmd.Flags()
	opts := runOptions{
		workers:     env.Workers,
		threads:     env.Threads,
		outputDir:   env.OutputDir,
		monitorPort: env.MonitorPort,
		record:      env.Record,
	}

	if f.Changed("workers") {
		opts.workers, _ = f.GetInt("workers")
	}

	if f.Changed("threads") {
		opts.threads, _ = f.GetInt("threads")
	}

	if f.Changed("output-dir") {
		opts.outputDir, _ = f.GetString("output-dir")
	}

	if f.Changed("monitor-port") {
		opts.monitorPort, _ = f.GetInt("monitor-port")
	}

	if f.Changed("record") {
		opts.record, _ = f.GetBool("record")
	}

	opts.inletRow, _ = f.GetInt("inlet-row")
	opts.monitor, _ = f.GetBool("monitor")
	opts.openBrowser, _ = f.GetBool("open-browser")
	opts.trace, _ = f.GetBool("trace")
	opts.plot, _ = f.GetBool("plot")

	return opts, nil
}

func runSimulation(
	ctx context.Context,
	paramFile, obstacleFile string,
	opts runOptions,
) error {
	params, err := config.LoadParams(paramFile)
	if err != nil {
		return err
	}

	params.InletRow = opts.inletRow
	if err := params.Validate(); err != nil {
		return err
	}

	mask, err := config.LoadObstacles(obstacleFile, params.NX, params.NY)
	if err != nil {
		return err
	}

	builder := simulation.MakeBuilder().
		WithParams(params).
		WithObstacles(mask).
		WithWorkers(opts.workers).
		WithThreads(opts.threads)

	var recorder datarecording.DataRecorder
	if opts.record {
		if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
			return err
		}

		recorder = datarecording.New(
			filepath.Join(opts.outputDir, "d2q9_"+id.RunID()))
		defer recorder.Close()

		builder = builder.WithDataRecorder(recorder)
	}

	clock := tracing.NewWallClock()
	phaseTracers := make(map[string]*tracing.PhaseTimer)
	if opts.trace {
		for _, kind := range phaseKinds {
			t := tracing.NewPhaseTimer(clock, tracing.KindIs(kind))
			phaseTracers[kind] = t
			builder = builder.WithTracer(t)
		}

		if recorder != nil {
			builder = builder.WithTracer(tracing.NewDBTracer(clock, recorder))
		}
	}

	var traffic *tracing.TrafficCounter
	if recorder != nil {
		traffic = tracing.NewTrafficCounter()
		builder = builder.WithEndpointHook(traffic)
	}

	var monitor *monitoring.Monitor
	if opts.monitor {
		monitor = monitoring.NewMonitor().WithPortNumber(opts.monitorPort)
		builder = builder.WithMonitor(monitor)
	}

	sim, err := builder.Build("D2Q9")
	if err != nil {
		return err
	}

	if monitor != nil {
		monitor.StartServer()
		defer monitor.StopServer(context.Background())

		if opts.openBrowser {
			if err := monitor.OpenBrowser(); err != nil {
				fmt.Fprintf(os.Stderr, "Cannot open browser: %v\n", err)
			}
		}
	}

	result, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	if traffic != nil {
		traffic.Record(recorder)
	}

	if err := writeOutputs(opts, result); err != nil {
		return err
	}

	return printSummary(result, phaseTracers)
}

func writeOutputs(opts runOptions, result *simulation.Result) error {
	if _, err := output.SaveFinalState(opts.outputDir, result.FinalCells()); err != nil {
		return err
	}

	if _, err := output.SaveAvVels(opts.outputDir, result.AverageVelocities()); err != nil {
		return err
	}

	if !opts.plot {
		return nil
	}

	p := result.Params
	if _, err := output.SaveSpeedImage(opts.outputDir, result.FinalCells(), p.NX, p.NY); err != nil {
		return err
	}

	_, err := output.SaveAvVelsPlot(opts.outputDir, result.AverageVelocities())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Skipping av_vels plot: %v\n", err)
	}

	return nil
}

func printSummary(
	result *simulation.Result,
	phaseTracers map[string]*tracing.PhaseTimer,
) error {
	reynolds, err := result.Reynolds()
	if err != nil {
		return err
	}

	fmt.Println("==done==")
	fmt.Printf("Reynolds number:\t\t%.12E\n", reynolds)
	fmt.Printf("Elapsed time:\t\t\t%.6f (s)\n", result.Elapsed.Seconds())
	fmt.Printf("Workers:\t\t\t%d\n", result.Workers)

	if len(phaseTracers) == 0 {
		return nil
	}

	for _, kind := range phaseKinds {
		t := phaseTracers[kind]
		fmt.Printf("Mean %s time:\t\t%.9f (s) over %d tasks, longest %.9f (s)\n",
			kind, float64(t.Mean()), t.Count(), float64(t.Longest()))
	}

	return nil
}
