package main

import (
	"context"
	"fmt"

	"github.com/retardedwizard/muxamp/internal/navigator"
	"github.com/retardedwizard/muxamp/internal/shared"
	"github.com/retardedwizard/muxamp/internal/ui"
	"github.com/urfave/cli/v3"
)

// Play launches the interactive terminal player. An encoded playlist or a
// saved id may be passed to load immediately.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	fragment := cmd.StringArg("playlist")

	// Logs go to a file so they do not interfere with TUI rendering.
	fileLogger, err := shared.NewFileLogger("./tmp/muxamp-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	res, hits := r.newResolver()
	defer hits.Stop()

	bridge := ui.NewBridge(fragment)
	sync := navigator.New(res, bridge, bridge, bridge, r.logger)

	if err := ui.Run(ctx, sync, bridge); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Open the interactive terminal player",
		ArgsUsage: "[playlist]",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
		},
		Action: r.Play,
	}
}
