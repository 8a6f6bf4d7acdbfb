// pizza-scenarios runs declarative YAML flows against a running twin-pizza
// simulator and reports per-step results. Exit status is non-zero when any
// scenario fails, so it slots into CI next to the browser suites.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jwt-pizza/twin-pizza/internal/scenario"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:12180", "Simulator base URL")
	dir := flag.String("dir", "", "Directory of scenario YAML files")
	file := flag.String("file", "", "Single scenario YAML file (overrides -dir)")
	flag.Parse()

	scenarios, err := load(*file, *dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(scenarios) == 0 {
		fmt.Fprintln(os.Stderr, "no scenarios to run; pass -file or -dir")
		os.Exit(1)
	}

	runner := scenario.NewRunner(*baseURL)
	failed := 0
	for _, s := range scenarios {
		result := runner.Run(s)
		status := "PASS"
		if !result.Passed {
			status = "FAIL"
			failed++
		}
		fmt.Printf("%s %s (%d steps, %s)\n", status, result.ScenarioName, len(result.Steps), result.Duration.Round(time.Millisecond))
		for _, step := range result.Steps {
			if !step.Passed {
				fmt.Printf("  step %q: %s\n", step.Name, step.Error)
			}
		}
	}

	if failed > 0 {
		fmt.Printf("%d of %d scenarios failed\n", failed, len(scenarios))
		os.Exit(1)
	}
}

func load(file, dir string) ([]*scenario.Scenario, error) {
	if file != "" {
		s, err := scenario.Load(file)
		if err != nil {
			return nil, err
		}
		return []*scenario.Scenario{s}, nil
	}
	if dir != "" {
		return scenario.LoadDir(dir)
	}
	return nil, nil
}
