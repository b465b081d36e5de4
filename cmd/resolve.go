package main

import (
	"context"
	"fmt"

	"github.com/retardedwizard/muxamp/internal/codec"
	"github.com/retardedwizard/muxamp/internal/repositories"
	"github.com/retardedwizard/muxamp/internal/shared"
	"github.com/urfave/cli/v3"
)

// Resolve decodes an encoded playlist, resolves every entry, and prints the
// result. With --save the contents are persisted and the shareable link
// printed; --open additionally opens that link in the browser.
func (r *Runner) Resolve(ctx context.Context, cmd *cli.Command) error {
	queryString := cmd.StringArg("playlist")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	save := cmd.Bool("save")
	open := cmd.Bool("open")

	pairs := codec.DecodeOrdered(queryString)
	if len(pairs) == 0 {
		return fmt.Errorf("%w: playlist contents, e.g. \"ytv=dQw4w9WgXcQ&sct=13158665\"", shared.ErrMissingArgument)
	}

	res, hits := r.newResolver()
	defer hits.Stop()

	result := res.ResolveAll(ctx, pairs)
	r.logger.Info("resolved playlist", "tracks", len(result.Tracks), "failed", result.Failed)

	if useJSON {
		if err := r.writeJSON(result, pretty); err != nil {
			return err
		}
	} else {
		for _, track := range result.Tracks {
			r.writePlain("%d. %s - %s [%s]\n", track.Ordinal, track.Author, track.Title, track.Provider)
		}
		if result.Failed > 0 {
			r.writePlainln("%d entries could not be resolved.", result.Failed)
		}
	}

	if !save && !open {
		return nil
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewPlaylistRepository(db)
	id, err := repo.Save(codec.DecodeGrouped(queryString))
	if err != nil {
		return fmt.Errorf("failed to save playlist: %w", err)
	}

	shareURL := fmt.Sprintf("http://%s/playlists/%s", r.config.Server.Address(), id)
	r.writePlainln("Saved. Share link: %s", shareURL)

	if open {
		if err := shared.OpenBrowser(shareURL); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}
	return nil
}

func resolveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve an encoded playlist into typed tracks",
		ArgsUsage: "<playlist>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.BoolFlag{
				Name:    "save",
				Aliases: []string{"s"},
				Usage:   "Persist the playlist and print its share link",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Save and open the share link in the browser",
			},
		},
		Action: r.Resolve,
	}
}
