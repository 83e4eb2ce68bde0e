package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	usecases "jobmatch/internal/core/application/usecases/commands"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

// SweepAction runs one expiration sweep and prints its report.
func SweepAction(ctx context.Context, c *cli.Command) error {
	appCtx, err := NewAppContext(ctx, c.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	at, err := sweepInstant(c.String("at"), appCtx.Root.Clock().Now())
	if err != nil {
		return err
	}

	sweep, err := usecases.NewSweepExpiredOffersCommand(at)
	if err != nil {
		return err
	}

	report, err := appCtx.Root.CreateSweepExpiredOffersCommandHandler().Handle(ctx, sweep)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	return renderSweepReport(os.Stdout, at, report)
}

// sweepInstant parses --at. Instants after now are refused.
func sweepInstant(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return now, nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at %q: %w", raw, err)
	}
	if at.After(now) {
		return time.Time{}, fmt.Errorf("--at %q is after the current time %s", raw, now.UTC().Format(time.RFC3339))
	}
	return at, nil
}

func renderSweepReport(w io.Writer, at time.Time, report usecases.SweepReport) error {
	if _, err := fmt.Fprintf(w, "Sweep as of %s\n", at.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Scanned", "Expired", "Cancelled", "Skipped", "Reoffered", "Unmatched", "Failed")
	if err := table.Append(
		fmt.Sprintf("%d", report.Scanned),
		fmt.Sprintf("%d", report.Expired),
		fmt.Sprintf("%d", report.Cancelled),
		fmt.Sprintf("%d", report.Skipped),
		fmt.Sprintf("%d", report.Reoffered),
		fmt.Sprintf("%d", report.Unmatched),
		fmt.Sprintf("%d", report.Failed),
	); err != nil {
		return err
	}
	return table.Render()
}
