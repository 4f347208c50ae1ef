// Command scatter-sweep measures how often scattered barrier layouts stay
// solvable, and at what cost, across a range of densities.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"pathviz/internal/app"
	"pathviz/internal/core"
	"pathviz/internal/layouts"
	"pathviz/internal/search"

	"github.com/sirupsen/logrus"
)

type scenario struct {
	density float64
	seed    int64
}

type scenarioResult struct {
	scenario
	outcome  search.Outcome
	cost     int
	expanded int
	err      error
}

type densitySummary struct {
	density     float64
	runs        int
	solved      int
	meanCost    float64
	meanExpand  float64
	maxExpanded int
}

func (s densitySummary) String() string {
	rate := 0.0
	if s.runs > 0 {
		rate = float64(s.solved) / float64(s.runs)
	}
	return fmt.Sprintf("density=%.2f solved=%d/%d (%.0f%%) meanCost=%.1f meanExpanded=%.1f maxExpanded=%d",
		s.density, s.solved, s.runs, rate*100, s.meanCost, s.meanExpand, s.maxExpanded)
}

func main() {
	rows := flag.Int("rows", 30, "grid rows")
	cols := flag.Int("cols", 50, "grid columns")
	seeds := flag.Int("seeds", 50, "layouts generated per density")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	densities := flag.String("densities", "0.1,0.2,0.3,0.4,0.5", "comma-separated barrier densities")
	verbose := flag.Bool("v", false, "log every scenario")
	flag.Parse()

	log := app.NewLogger(os.Stderr, *verbose)
	levels, err := parseDensities(*densities)
	if err != nil {
		log.Fatal(err)
	}

	var sets []scenario
	for _, d := range levels {
		for s := 0; s < *seeds; s++ {
			sets = append(sets, scenario{density: d, seed: int64(s + 1)})
		}
	}

	fmt.Printf("Sweeping %d layouts on %dx%d (%d workers)\n", len(sets), *rows, *cols, *workers)
	start := time.Now()
	summaries := sweep(*rows, *cols, sets, *workers, log)
	report(os.Stdout, summaries, time.Since(start))
}

func parseDensities(raw string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 || v > 1 {
			return nil, fmt.Errorf("density %q must be a number in [0,1]", part)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no densities given")
	}
	return out, nil
}

func sweep(rows, cols int, sets []scenario, workers int, log logrus.FieldLogger) []densitySummary {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(rows, cols, sc)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	byDensity := map[float64]*densitySummary{}
	costSums := map[float64]int{}
	expandSums := map[float64]int{}
	for res := range results {
		entry := log.WithFields(logrus.Fields{"density": res.density, "seed": res.seed})
		if res.err != nil {
			entry.WithError(res.err).Warn("scenario skipped")
			continue
		}
		entry.WithFields(logrus.Fields{
			"outcome":  res.outcome.String(),
			"expanded": res.expanded,
			"cost":     res.cost,
		}).Debug("scenario finished")

		sum, ok := byDensity[res.density]
		if !ok {
			sum = &densitySummary{density: res.density}
			byDensity[res.density] = sum
		}
		sum.runs++
		expandSums[res.density] += res.expanded
		if res.expanded > sum.maxExpanded {
			sum.maxExpanded = res.expanded
		}
		if res.outcome == search.Succeeded {
			sum.solved++
			costSums[res.density] += res.cost
		}
	}

	out := make([]densitySummary, 0, len(byDensity))
	for d, sum := range byDensity {
		if sum.solved > 0 {
			sum.meanCost = float64(costSums[d]) / float64(sum.solved)
		}
		if sum.runs > 0 {
			sum.meanExpand = float64(expandSums[d]) / float64(sum.runs)
		}
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].density < out[j].density })
	return out
}

func runScenario(rows, cols int, sc scenario) scenarioResult {
	res := scenarioResult{scenario: sc}
	grid, err := core.NewGrid(rows, cols)
	if err != nil {
		res.err = err
		return res
	}
	cfg := map[string]string{
		"density": strconv.FormatFloat(sc.density, 'f', -1, 64),
		"seed":    strconv.FormatInt(sc.seed, 10),
	}
	if err := layouts.Apply("scatter", grid, cfg); err != nil {
		res.err = err
		return res
	}
	start, _ := grid.Start()
	end, _ := grid.End()
	out, err := search.Search(grid, start, end, nil)
	if err != nil {
		res.err = err
		return res
	}
	res.outcome = out.Outcome
	res.cost = out.Cost()
	res.expanded = out.Expanded
	return res
}

func report(w io.Writer, summaries []densitySummary, elapsed time.Duration) {
	fmt.Fprintf(w, "\nResults (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for _, s := range summaries {
		fmt.Fprintln(w, s)
	}
}
