package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/retardedwizard/muxamp/internal/cache"
	"github.com/retardedwizard/muxamp/internal/models"
	"github.com/retardedwizard/muxamp/internal/repositories"
	"github.com/retardedwizard/muxamp/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve starts the playlist service HTTP server and blocks until
// interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if port := cmd.Int("port"); port > 0 {
		r.config.Server.Port = int(port)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	res, hits := r.newResolver()
	defer hits.Stop()

	fetches := cache.New[[]models.Track](r.config.Cache.PlaylistTTL(), r.config.Cache.PlaylistSweep())
	defer fetches.Stop()

	repo := repositories.NewPlaylistRepository(db)

	router := server.NewMuxRouter()
	router.Use(server.Logging(r.logger))
	server.Mount(router,
		server.NewSearchHandler(res, r.logger),
		server.NewPlaylistHandler(repo, res, fetches, r.logger),
		server.NewSaveHandler(repo, r.logger),
		server.NewStatusHandler(repo),
	)

	srv := server.NewServer(r.config, router, r.logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the playlist service HTTP server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
		},
		Action: r.Serve,
	}
}
