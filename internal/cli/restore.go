package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/babarot/nctrash/internal/ui/table"
	"github.com/babarot/nctrash/internal/utils/log"
	"github.com/dustin/go-humanize"
)

func (c CLI) Restore(ctx context.Context) error {
	c.logger.Debug("cli.restore started")
	defer c.logger.Debug("cli.restore finished")

	result, err := c.manager.RestoreAll(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.logger.Log(ctx, slog.Level(log.ImportantLevel), "restore interrupted, remaining items left in trash",
			"restored", result.Restored, "total", result.Total)
		table.PrintSummary(c.stdout, result)
		return fmt.Errorf("interrupted: %w", err)
	default:
		return err
	}

	table.PrintSummary(c.stdout, result)
	if !result.OK() {
		return fmt.Errorf("%s of %s items could not be restored",
			humanize.Comma(int64(len(result.Failures))),
			humanize.Comma(int64(result.Total)),
		)
	}

	if msg := c.config.UI.ExitMessage; msg != "" {
		fmt.Fprintln(c.stdout, msg)
	}
	return nil
}

// DryRun prints what a restore would do without moving anything
func (c CLI) DryRun(ctx context.Context) error {
	items, skipped, err := c.manager.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(c.stdout, "Nothing to restore")
	} else {
		table.PrintItems(c.stdout, items)
	}
	fmt.Fprintf(c.stdout, "%s items would be restored", humanize.Comma(int64(len(items))))
	if len(skipped) > 0 {
		fmt.Fprintf(c.stdout, ", %s excluded", humanize.Comma(int64(len(skipped))))
	}
	fmt.Fprintln(c.stdout)
	return nil
}
