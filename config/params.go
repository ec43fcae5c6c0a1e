// Package config loads the inputs of a run: the parameter file, the obstacle
// file and the environment defaults of the command line.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/d2q9/lattice"
)

var (
	// ErrParamFile marks a parameter file that cannot be read or parsed.
	ErrParamFile = errors.New("bad parameter file")

	// ErrObstacleFile marks an obstacle file that cannot be read or parsed.
	ErrObstacleFile = errors.New("bad obstacle file")
)

var paramNames = []string{
	"nx", "ny", "maxIters", "reynolds_dim", "density", "accel", "omega",
}

// LoadParams reads a parameter file.
func LoadParams(path string) (lattice.Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return lattice.Params{}, fmt.Errorf("%w: %w", ErrParamFile, err)
	}
	defer f.Close()

	p, err := ParseParams(f)
	if err != nil {
		return lattice.Params{}, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// ParseParams reads the seven parameter lines nx, ny, maxIters,
// reynolds_dim, density, accel and omega, one value per line.
func ParseParams(r io.Reader) (lattice.Params, error) {
	values := make([]string, 0, len(paramNames))

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if len(fields) != 1 {
			return lattice.Params{}, fmt.Errorf(
				"%w: line %d: expected one value, got %q",
				ErrParamFile, lineNo, scanner.Text())
		}

		if len(values) == len(paramNames) {
			return lattice.Params{}, fmt.Errorf(
				"%w: line %d: unexpected value after %s",
				ErrParamFile, lineNo, paramNames[len(paramNames)-1])
		}

		values = append(values, fields[0])
	}

	if err := scanner.Err(); err != nil {
		return lattice.Params{}, fmt.Errorf("%w: %w", ErrParamFile, err)
	}

	if len(values) != len(paramNames) {
		return lattice.Params{}, fmt.Errorf("%w: missing value for %s",
			ErrParamFile, paramNames[len(values)])
	}

	var (
		p    lattice.Params
		ints = []*int{&p.NX, &p.NY, &p.MaxIters, &p.ReynoldsDim}
		fs   = []*float32{&p.Density, &p.Accel, &p.Omega}
	)

	for i, dst := range ints {
		v, err := strconv.Atoi(values[i])
		if err != nil {
			return lattice.Params{}, fmt.Errorf("%w: %s: %w",
				ErrParamFile, paramNames[i], err)
		}

		*dst = v
	}

	for i, dst := range fs {
		name := paramNames[len(ints)+i]

		v, err := strconv.ParseFloat(values[len(ints)+i], 32)
		if err != nil {
			return lattice.Params{}, fmt.Errorf("%w: %s: %w",
				ErrParamFile, name, err)
		}

		*dst = float32(v)
	}

	return p, nil
}
