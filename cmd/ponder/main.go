package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/pondlabs/ponder/internal/agent"
	"github.com/pondlabs/ponder/internal/config"
	"github.com/pondlabs/ponder/internal/gateway"
	"github.com/pondlabs/ponder/internal/history"
	"github.com/pondlabs/ponder/internal/logging"
	"github.com/pondlabs/ponder/internal/providers"
)

func main() {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	ctx := context.Background()

	args := os.Args[1:]
	cmd := "repl"
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	var err error
	switch cmd {
	case "repl":
		err = runREPL(ctx, args)
	case "serve":
		err = runServe(ctx, args)
	case "bench":
		err = runBench(ctx, args)
	case "help", "-h", "--help":
		usage()
	default:
		// Bare invocation with flags still means the REPL.
		err = runREPL(ctx, append([]string{cmd}, args...))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ponder: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`ponder - multi-step reasoning agent with self-checking

Usage:
  ponder            interactive question loop
  ponder serve      dashboard HTTP API
  ponder bench      run the fixed benchmark suite`)
}

// runtime bundles the pieces every subcommand needs.
type runtime struct {
	cfg   *config.Config
	agent *agent.Agent
	store *history.Store
}

func (r *runtime) Close() {
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close history store")
		}
	}
}

// newRuntime validates configuration, wires the provider, gateway and agent,
// and opens the history store. A missing credential aborts startup; a broken
// history store only disables persistence.
func newRuntime(ctx context.Context, cfg *config.Config, needHistory bool) (*runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logging.Setup(cfg.LogLevel, true); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	client, err := providers.New(providers.Settings{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	gw := gateway.New(client, log.Logger)
	ag := agent.New(gw, cfg.MaxRetries, log.Logger)

	rt := &runtime{cfg: cfg, agent: ag}

	if needHistory {
		store, err := history.Open(ctx, cfg.HistoryPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.HistoryPath).Msg("history disabled")
		} else {
			rt.store = store
		}
	}

	return rt, nil
}
