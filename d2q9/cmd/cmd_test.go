package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/d2q9/datarecording"
	"github.com/sarchlab/d2q9/output"
)

const paramFile = `12
8
20
12
0.1
0.005
1.7
`

const obstacleFile = `4 3 1
4 4 1
5 3 1
`

var _ = Describe("partition", func() {
	It("should print the split", func() {
		out := &bytes.Buffer{}
		rootCmd.SetOut(out)
		rootCmd.SetArgs([]string{"partition", "10", "3"})
		DeferCleanup(func() { rootCmd.SetOut(nil) })

		Expect(rootCmd.Execute()).To(Succeed())
		Expect(out.String()).To(Equal(
			"rank 0: rows [0, 4) (4), south 2, north 1\n" +
				"rank 1: rows [4, 7) (3), south 0, north 2\n" +
				"rank 2: rows [7, 10) (3), south 1, north 0\n"))
	})

	It("should refuse more workers than rows", func() {
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetErr(&bytes.Buffer{})
		rootCmd.SetArgs([]string{"partition", "2", "3"})
		DeferCleanup(func() {
			rootCmd.SetOut(nil)
			rootCmd.SetErr(nil)
		})

		Expect(rootCmd.Execute()).NotTo(Succeed())
	})
})

var _ = Describe("run", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()

		Expect(os.WriteFile(filepath.Join(dir, "input.params"),
			[]byte(paramFile), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "obstacles.dat"),
			[]byte(obstacleFile), 0o644)).To(Succeed())
	})

	run := func(opts runOptions) {
		err := runSimulation(context.Background(),
			filepath.Join(dir, "input.params"),
			filepath.Join(dir, "obstacles.dat"),
			opts)
		Expect(err).NotTo(HaveOccurred())
	}

	It("should write the same files for any number of workers", func() {
		serial := filepath.Join(dir, "serial")
		parallel := filepath.Join(dir, "parallel")

		run(runOptions{workers: 1, threads: 1, outputDir: serial})
		run(runOptions{workers: 3, threads: 2, outputDir: parallel})

		for _, name := range []string{output.FinalStateFile, output.AvVelsFile} {
			want, err := os.ReadFile(filepath.Join(serial, name))
			Expect(err).NotTo(HaveOccurred())

			got, err := os.ReadFile(filepath.Join(parallel, name))
			Expect(err).NotTo(HaveOccurred())

			Expect(got).To(Equal(want))
		}
	})

	It("should plot and record", func() {
		out := filepath.Join(dir, "out")

		run(runOptions{
			workers:   2,
			threads:   1,
			outputDir: out,
			record:    true,
			trace:     true,
			plot:      true,
		})

		Expect(filepath.Join(out, output.AvVelsPlotFile)).To(BeAnExistingFile())
		Expect(filepath.Join(out, output.SpeedImageFile)).To(BeAnExistingFile())

		dbs, err := filepath.Glob(filepath.Join(out, "d2q9_*.sqlite3"))
		Expect(err).NotTo(HaveOccurred())
		Expect(dbs).To(HaveLen(1))

		reader, err := datarecording.NewReader(dbs[0])
		Expect(err).NotTo(HaveOccurred())
		defer reader.Close()

		reader.MapTable("summary", summaryRow{})
		reader.MapTable("av_vels", avVelsRow{})
		reader.MapTable("traffic", trafficRow{})

		text := &bytes.Buffer{}
		Expect(report(context.Background(), text, reader, 2)).To(Succeed())

		Expect(text.String()).To(ContainSubstring("grid 12x8, 20 iterations on 2 workers"))
		Expect(text.String()).To(ContainSubstring("last 2 of 20 average velocities"))
		Expect(text.String()).To(ContainSubstring("19:\t"))
		Expect(text.String()).To(ContainSubstring("northbound"))
	})

	It("should fail on a missing obstacle file", func() {
		err := runSimulation(context.Background(),
			filepath.Join(dir, "input.params"),
			filepath.Join(dir, "missing.dat"),
			runOptions{workers: 1, threads: 1, outputDir: dir})

		Expect(err).To(HaveOccurred())
	})
})
