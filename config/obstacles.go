package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/d2q9/lattice"
)

// LoadObstacles reads an obstacle file for a lattice of nx by ny cells.
func LoadObstacles(path string, nx, ny int) (*lattice.ObstacleMask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrObstacleFile, err)
	}
	defer f.Close()

	mask, err := ParseObstacles(f, nx, ny)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return mask, nil
}

// ParseObstacles reads lines of "x y blocked". Every site must be inside the
// lattice and blocked must be 1. Blank lines are skipped.
func ParseObstacles(r io.Reader, nx, ny int) (*lattice.ObstacleMask, error) {
	var sites []lattice.Coord

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		site, err := parseObstacleLine(fields, nx, ny)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w",
				ErrObstacleFile, lineNo, err)
		}

		sites = append(sites, site)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrObstacleFile, err)
	}

	mask, err := lattice.NewObstacleMask(nx, ny, sites)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrObstacleFile, err)
	}

	return mask, nil
}

func parseObstacleLine(fields []string, nx, ny int) (lattice.Coord, error) {
	if len(fields) != 3 {
		return lattice.Coord{}, fmt.Errorf("expected 3 values, got %d",
			len(fields))
	}

	var v [3]int
	for i, s := range fields {
		n, err := strconv.Atoi(s)
		if err != nil {
			return lattice.Coord{}, err
		}

		v[i] = n
	}

	x, y, blocked := v[0], v[1], v[2]

	if x < 0 || x >= nx {
		return lattice.Coord{}, fmt.Errorf("x %d out of range [0, %d)", x, nx)
	}

	if y < 0 || y >= ny {
		return lattice.Coord{}, fmt.Errorf("y %d out of range [0, %d)", y, ny)
	}

	if blocked != 1 {
		return lattice.Coord{}, fmt.Errorf("blocked value %d is not 1", blocked)
	}

	return lattice.Coord{X: x, Y: y}, nil
}
