package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"gomoku-local/api"
	"gomoku-local/engine"
	"gomoku-local/gomoku"
	"gomoku-local/search"
	"gomoku-local/types"
)

// runServer serves one game over HTTP until interrupted.
func runServer(addr string, gameCfg engine.GameConfig) error {
	game, err := gomoku.New(gomoku.Options{
		Computer: types.Side(gameCfg.PlayerColor).Opponent(),
		Depth:    gameCfg.SearchDepth,
		Search: search.Options{
			Radius:       gameCfg.Radius,
			Workers:      gameCfg.Workers,
			CacheStripes: gameCfg.CacheStripes,
		},
	})
	if err != nil {
		return err
	}

	srv := api.NewServer(game)
	if err := srv.OpenIfComputerFirst(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.Hub().Run(ctx.Done())

	server := &http.Server{
		Addr:    addr,
		Handler: srv.Routes(),
	}
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	log.Info().Str("addr", addr).Int("depth", gameCfg.SearchDepth).Msg("listening")
	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err, ok := <-serverErr:
		if ok {
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("graceful shutdown failed")
		_ = server.Close()
	}
	return runErr
}
