package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobmatch/cmd/jobmatchctl/commands"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envFlag := &cli.StringFlag{
		Name:  "env",
		Usage: "path to an optional .env file",
		Value: ".env",
	}

	app := &cli.Command{
		Name:  "jobmatchctl",
		Usage: "operate the job matching engine",
		Commands: []*cli.Command{
			{
				Name:  "sweep",
				Usage: "expire stale offers once and re-offer their jobs",
				Flags: []cli.Flag{
					envFlag,
					&cli.StringFlag{
						Name:  "at",
						Usage: "sweep as of this earlier RFC 3339 instant instead of now",
					},
				},
				Action: commands.SweepAction,
			},
			{
				Name:  "matches",
				Usage: "rank the workers who could take a job",
				Flags: []cli.Flag{
					envFlag,
					&cli.StringFlag{
						Name:     "job",
						Usage:    "job id",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "maximum number of candidates (0 for all)",
						Value: 10,
					},
				},
				Action: commands.MatchesAction,
			},
			{
				Name:  "serve-sweeper",
				Usage: "run the scheduled sweep and relay notifications until interrupted",
				Flags: []cli.Flag{
					envFlag,
				},
				Action: commands.ServeSweeperAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
