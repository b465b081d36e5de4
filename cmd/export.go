package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/retardedwizard/muxamp/internal/codec"
	"github.com/retardedwizard/muxamp/internal/formatter"
	"github.com/retardedwizard/muxamp/internal/repositories"
	"github.com/retardedwizard/muxamp/internal/shared"
	"github.com/urfave/cli/v3"
)

// Export resolves a playlist, given either a saved id or encoded contents,
// and writes it to a file in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	target := cmd.StringArg("playlist")
	format := cmd.String("format")
	output := cmd.String("output")

	if target == "" {
		return fmt.Errorf("%w: a playlist id or encoded contents", shared.ErrMissingArgument)
	}

	export := &formatter.Export{QueryString: target}

	// A bare token with no '=' is a saved id; look its contents up.
	if !strings.Contains(target, "=") {
		db, err := r.openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		queryString, found, err := repositories.NewPlaylistRepository(db).GetString(target)
		if err != nil {
			return fmt.Errorf("failed to look up playlist: %w", err)
		}
		if !found {
			return fmt.Errorf("no playlist with id %q", target)
		}
		export.ID = target
		export.QueryString = queryString
	}

	pairs := codec.DecodeOrdered(export.QueryString)
	if len(pairs) == 0 {
		return fmt.Errorf("%w: playlist %q has no entries", shared.ErrInvalidArgument, target)
	}

	res, hits := r.newResolver()
	defer hits.Stop()

	result := res.ResolveAll(ctx, pairs)
	if result.Failed > 0 {
		r.logger.Warn("some entries could not be resolved", "failed", result.Failed)
	}
	export.Tracks = result.Tracks

	written, err := formatter.WriteExport(export, format, output)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("Exported %d tracks to %s\n", len(export.Tracks), written)
	return nil
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a resolved playlist to JSON, CSV, or Markdown",
		ArgsUsage: "<id|playlist>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, csv, or markdown",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
		},
		Action: r.Export,
	}
}
