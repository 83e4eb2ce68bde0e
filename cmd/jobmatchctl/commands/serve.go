package commands

import (
	"context"

	"github.com/urfave/cli/v3"
)

// ServeSweeperAction runs the scheduled sweep and the notification relay
// without the HTTP server.
func ServeSweeperAction(ctx context.Context, c *cli.Command) error {
	appCtx, err := NewAppContext(ctx, c.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	listener, err := appCtx.Root.CreateNotificationListener()
	if err != nil {
		return err
	}
	defer func() { _ = listener.Close() }()

	jobManager := appCtx.Root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	appCtx.Logger.InfoContext(ctx, "sweeper running", "schedule", appCtx.Config.SweepSchedule)
	return listener.Run(ctx)
}
