package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Names of the environment variables that set command line defaults.
const (
	EnvWorkers     = "D2Q9_WORKERS"
	EnvThreads     = "D2Q9_THREADS"
	EnvOutputDir   = "D2Q9_OUTPUT_DIR"
	EnvMonitorPort = "D2Q9_MONITOR_PORT"
	EnvRecord      = "D2Q9_RECORD"
)

// Env holds the defaults taken from the environment. Workers of zero means
// one worker per available CPU, capped by the number of rows.
type Env struct {
	Workers     int
	Threads     int
	OutputDir   string
	MonitorPort int
	Record      bool
}

// DefaultEnv returns the defaults used when nothing is set.
func DefaultEnv() Env {
	return Env{
		Workers:   0,
		Threads:   1,
		OutputDir: ".",
	}
}

// LoadEnv loads the given env files into the process environment and reads
// the defaults from it. Variables already set in the environment win over
// the files. With no files, an optional .env in the working directory is
// used.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			files = []string{".env"}
		}
	}

	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("loading env files: %w", err)
		}
	}

	return ReadEnv(os.LookupEnv)
}

// ReadEnv reads the defaults through a lookup function.
func ReadEnv(lookup func(string) (string, bool)) (Env, error) {
	env := DefaultEnv()

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvWorkers, &env.Workers},
		{EnvThreads, &env.Threads},
		{EnvMonitorPort, &env.MonitorPort},
	}

	for _, v := range ints {
		s, ok := lookup(v.name)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			return Env{}, fmt.Errorf("%s: invalid value %q", v.name, s)
		}

		*v.dst = n
	}

	if env.Threads == 0 {
		env.Threads = 1
	}

	if s, ok := lookup(EnvOutputDir); ok && s != "" {
		env.OutputDir = s
	}

	if s, ok := lookup(EnvRecord); ok && s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Env{}, fmt.Errorf("%s: invalid value %q", EnvRecord, s)
		}

		env.Record = b
	}

	return env, nil
}
