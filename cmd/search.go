package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/retardedwizard/muxamp/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries a provider and prints the typed results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	provider := cmd.StringArg("provider")
	query := strings.Join(cmd.Args().Slice(), " ")
	page := int(cmd.Int("page"))
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	res, hits := r.newResolver()
	defer hits.Stop()

	tracks, err := res.Search(ctx, provider, query, page)
	if err != nil {
		if errors.Is(err, shared.ErrUnknownProvider) {
			return fmt.Errorf("%w (known providers: %s)", err, strings.Join(r.registry.Codes(), ", "))
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(tracks, pretty)
	}

	r.writePlainln("Results for %q on %s (page %d):", query, provider, page)
	for _, track := range tracks {
		r.writePlain("%d. %s - %s (%s)\n", track.Ordinal, track.Author, track.Title, track.MediaID)
	}
	if len(tracks) == 0 {
		r.writePlain("No results.\n")
	}
	return nil
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search a provider for tracks",
		ArgsUsage: "<provider> <query>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "provider"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Result page, starting at 0",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Search,
	}
}
