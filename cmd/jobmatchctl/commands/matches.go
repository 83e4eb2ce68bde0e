package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"jobmatch/internal/core/application/usecases/queries"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/services"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

// MatchesAction prints the ranked candidates of a job with their score breakdown.
func MatchesAction(ctx context.Context, c *cli.Command) error {
	jobID, err := kernel.UUIDFromString(c.String("job"))
	if err != nil {
		return fmt.Errorf("--job: %w", err)
	}

	query, err := queries.NewFindMatchesQuery(jobID, nil, c.Int("limit"))
	if err != nil {
		return err
	}

	appCtx, err := NewAppContext(ctx, c.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	candidates, err := appCtx.Root.CreateFindMatchesQueryHandler().Handle(ctx, query)
	if err != nil {
		return fmt.Errorf("find matches for job %s: %w", jobID, err)
	}

	if len(candidates) == 0 {
		_, err = fmt.Fprintln(os.Stdout, "No eligible workers")
		return err
	}
	return renderMatches(os.Stdout, candidates)
}

func renderMatches(w io.Writer, candidates []services.Candidate) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Worker", "Name", "Km", "Rating", "Distance", "Acceptance", "Punctuality", "Score")

	for i, c := range candidates {
		if err := table.Append(
			fmt.Sprintf("%d", i+1),
			c.Worker.ID().String(),
			c.Worker.Name(),
			fmt.Sprintf("%.2f", c.DistanceKm),
			fmt.Sprintf("%.3f", c.Score.Rating),
			fmt.Sprintf("%.3f", c.Score.Distance),
			fmt.Sprintf("%.3f", c.Score.Acceptance),
			fmt.Sprintf("%.3f", c.Score.Punctuality),
			fmt.Sprintf("%.3f", c.Score.Final),
		); err != nil {
			return err
		}
	}
	return table.Render()
}
