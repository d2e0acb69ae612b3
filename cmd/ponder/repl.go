package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pondlabs/ponder/internal/config"
	"github.com/pondlabs/ponder/internal/history"
)

func runREPL(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	noHistory := fs.Bool("no-history", false, "Do not persist solves to the history store")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Load()
	rt, err := newRuntime(ctx, cfg, !*noHistory)
	if err != nil {
		return err
	}
	defer rt.Close()

	fmt.Println("Multi-Step Reasoning Agent")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("Type your question or 'quit' to exit.")
	fmt.Println()

	s := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nQuestion: ")
		if !s.Scan() {
			break
		}

		question := strings.TrimSpace(s.Text())
		switch strings.ToLower(question) {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return nil
		case "":
			continue
		}

		fmt.Println("\nProcessing...")
		resp := rt.agent.Solve(ctx, question)

		fmt.Println(strings.Repeat("=", 50))
		fmt.Printf("ANSWER: %s\n", resp.Answer)
		fmt.Printf("STATUS: %s\n", resp.Status)
		fmt.Printf("\nREASONING: %s\n", resp.ReasoningVisibleToUser)
		fmt.Println(strings.Repeat("=", 50))

		for _, check := range resp.Metadata.Checks {
			mark := "PASS"
			if !check.Passed {
				mark = "FAIL"
			}
			fmt.Printf("  [%s] %s: %s\n", mark, check.CheckName, check.Details)
		}
		fmt.Printf("\n[Metadata: %d retries, %d checks performed]\n",
			resp.Metadata.Retries, len(resp.Metadata.Checks))

		if rt.store != nil {
			rec := history.NewRecord(question, resp)
			if err := rt.store.Save(ctx, rec); err != nil {
				log.Warn().Err(err).Msg("failed to save solve record")
			}
		}

		fmt.Print("\nShow full JSON? (y/n): ")
		if !s.Scan() {
			break
		}
		if strings.EqualFold(strings.TrimSpace(s.Text()), "y") {
			data, err := json.MarshalIndent(resp.ToRecord(), "", "  ")
			if err != nil {
				log.Error().Err(err).Msg("failed to marshal response")
				continue
			}
			fmt.Println(string(data))
		}
	}

	return s.Err()
}
