package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pondlabs/ponder/internal/config"
	"github.com/pondlabs/ponder/internal/web"
)

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "Listen address (overrides PONDER_LISTEN_ADDR)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Load()
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	rt, err := newRuntime(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	app := web.New(cfg.ListenAddr, rt.agent, rt.store)

	go func() {
		if err := app.Start(); err != nil {
			log.Panic().Err(err).Msg("server crash")
		}
	}()
	log.Info().Str("addr", cfg.ListenAddr).Msg("dashboard API listening")

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	log.Info().Msg("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server exiting")
	return nil
}
