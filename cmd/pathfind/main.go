// Command pathfind runs a single A* search without a window and prints the
// marked grid.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"pathviz/internal/app"
	"pathviz/internal/core"
	"pathviz/internal/layouts"
	"pathviz/internal/search"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	exitOK          = 0
	exitUnreachable = 1
	exitError       = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	envErr := app.LoadDotEnv()
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(nil); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	fs := flag.NewFlagSet("pathfind", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.Bind(fs)
	mapFile := fs.String("map", "", "text grid to search instead of a layout")
	timeout := fs.Duration("timeout", 0, "abort the search after this long (0 disables)")
	trace := fs.Bool("trace", false, "log every expansion")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	log := app.NewLogger(stderr, cfg.Verbose || *trace)
	if envErr != nil {
		log.WithError(envErr).Debug(".env file not loaded")
	}

	grid, err := loadGrid(cfg, *mapFile)
	if err != nil {
		log.WithError(err).Error("cannot build grid")
		return exitError
	}
	start, okStart := grid.Start()
	end, okEnd := grid.End()
	if !okStart || !okEnd {
		log.Error(app.ErrNoEndpoints)
		return exitError
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	runLog := log.WithField("run", uuid.NewString())
	var calls int
	var observe search.Observer
	if *trace {
		observe = func() search.Signal {
			runLog.WithField("expanded", calls).Debug("expanded")
			return search.Continue
		}
	}
	observe = search.WithContext(ctx, search.Counting(&calls, observe))

	runLog.WithFields(logrus.Fields{"start": start.String(), "end": end.String()}).Debug("search started")
	began := time.Now()
	res, err := search.Search(grid, start, end, observe)
	if err != nil {
		runLog.WithError(err).Error("search rejected")
		return exitError
	}

	fmt.Fprint(stdout, grid.Text())
	fmt.Fprintf(stdout, "outcome=%s expanded=%d cost=%d\n", res.Outcome, res.Expanded, res.Cost())

	runLog.WithFields(logrus.Fields{
		"outcome":  res.Outcome.String(),
		"expanded": res.Expanded,
		"cost":     res.Cost(),
		"elapsed":  time.Since(began).String(),
	}).Info("search finished")

	switch res.Outcome {
	case search.Succeeded:
		return exitOK
	case search.Failed:
		return exitUnreachable
	default:
		return exitError
	}
}

func loadGrid(cfg *app.Config, mapFile string) (*core.Grid, error) {
	if mapFile != "" {
		src, err := os.ReadFile(mapFile)
		if err != nil {
			return nil, err
		}
		return core.ParseText(string(src))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := core.NewGrid(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, err
	}
	if err := layouts.Apply(cfg.Layout, grid, cfg.LayoutConfig()); err != nil {
		return nil, err
	}
	return grid, nil
}
