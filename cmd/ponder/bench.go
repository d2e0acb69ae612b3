package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pondlabs/ponder/internal/bench"
	"github.com/pondlabs/ponder/internal/config"
)

func runBench(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	out := fs.String("out", "", "Results file path (overrides PONDER_RESULTS_PATH)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Load()
	if *out != "" {
		cfg.ResultsPath = *out
	}

	rt, err := newRuntime(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	fmt.Printf("Running benchmark suite: %d easy + %d tricky cases\n",
		len(bench.EasyCases), len(bench.TrickyCases))

	runner := bench.NewRunner(rt.agent, log.Logger)
	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("=", 50))
	for _, res := range summary.Results {
		mark := "PASS"
		if !res.AnswerCorrect {
			mark = "FAIL"
		}
		fmt.Printf("  [%s] (%s) %s -> %s\n", mark, res.Category, res.Description, res.Answer)
	}
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Easy:    %d/%d correct\n", summary.EasyCorrect, summary.EasyTotal)
	fmt.Printf("Tricky:  %d/%d correct\n", summary.TrickCorrect, summary.TrickTotal)
	fmt.Printf("Overall: %d/%d correct\n", summary.Correct(), summary.Total())

	if err := bench.WriteResults(cfg.ResultsPath, summary); err != nil {
		return err
	}
	fmt.Printf("\nResults written to %s\n", cfg.ResultsPath)
	return nil
}
