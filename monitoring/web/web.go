// Package web holds the page served by the run monitor.
package web

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// DevEnv names the variable that makes the monitor serve the page from the
// source tree instead of the copy built into the binary.
const DevEnv = "D2Q9_MONITOR_DEV"

//go:embed dist/*
var dist embed.FS

// GetAssets returns the file system the monitor page is served from.
func GetAssets() http.FileSystem {
	if devMode() {
		dir := sourceDir()
		log.Printf("monitor: serving page from %s", dir)

		return http.Dir(dir)
	}

	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		panic(err)
	}

	return http.FS(sub)
}

func devMode() bool {
	on, err := strconv.ParseBool(os.Getenv(DevEnv))
	return err == nil && on
}

func sourceDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("cannot locate the monitor page sources")
	}

	return filepath.Join(filepath.Dir(file), "dist")
}
