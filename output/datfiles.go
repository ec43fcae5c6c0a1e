// Package output writes the results of a run: the final state and average
// velocity files, and their plots.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sarchlab/d2q9/lattice"
)

// File names written into the output directory.
const (
	FinalStateFile = "final_state.dat"
	AvVelsFile     = "av_vels.dat"
	AvVelsPlotFile = "av_vels.png"
	SpeedImageFile = "velocity.png"
)

// WriteFinalState writes one "row col u_x u_y pressure obstacle" line per
// site.
func WriteFinalState(w io.Writer, records []lattice.CellRecord) error {
	bw := bufio.NewWriter(w)

	for _, r := range records {
		obstacle := 0
		if r.IsObstacle {
			obstacle = 1
		}

		_, err := fmt.Fprintf(bw, "%d %d %.12E %.12E %.12E %d\n",
			r.Row, r.Col, r.UX, r.UY, r.Pressure, obstacle)
		if err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteAvVels writes one "iteration:\tvalue" line per iteration.
func WriteAvVels(w io.Writer, avVels []float64) error {
	bw := bufio.NewWriter(w)

	for i, v := range avVels {
		if _, err := fmt.Fprintf(bw, "%d:\t%.12E\n", i, v); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// SaveFinalState writes the final state file into dir.
func SaveFinalState(dir string, records []lattice.CellRecord) (string, error) {
	return saveFile(dir, FinalStateFile, func(w io.Writer) error {
		return WriteFinalState(w, records)
	})
}

// SaveAvVels writes the average velocity file into dir.
func SaveAvVels(dir string, avVels []float64) (string, error) {
	return saveFile(dir, AvVelsFile, func(w io.Writer) error {
		return WriteAvVels(w, avVels)
	})
}

func saveFile(
	dir, name string,
	write func(w io.Writer) error,
) (path string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path = filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not open output file %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := write(f); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, nil
}
