package table

import (
	"fmt"
	"io"
	"sort"

	"github.com/babarot/nctrash/internal/trash"
	"github.com/babarot/nctrash/internal/trash/core"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// PrintItems prints the items that a run would restore
func PrintItems(w io.Writer, items []core.Item) {
	sorted := make([]core.Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Href < sorted[j].Href
	})

	green := color.New(color.FgHiGreen).SprintfFunc()
	white := color.New(color.FgWhite).SprintfFunc()

	fmt.Fprintf(w, "%s %s\n",
		green("%-40s", "Name"),
		green("%s", "Path"),
	)
	for _, item := range sorted {
		fmt.Fprintf(w, "%s %s\n",
			white("%-40s", item.Name()),
			white("%s", item.Href),
		)
	}
	fmt.Fprintln(w)
}

// PrintSummary prints the outcome of a restore run, listing every failure
func PrintSummary(w io.Writer, result trash.Result) {
	green := color.New(color.FgHiGreen).SprintfFunc()
	red := color.New(color.FgHiRed).SprintfFunc()
	white := color.New(color.FgWhite).SprintfFunc()

	fmt.Fprintf(w, "%s %s of %s items in %s",
		green("Restored"),
		humanize.Comma(int64(result.Restored)),
		humanize.Comma(int64(result.Total)),
		result.Elapsed.Round(1e6),
	)
	if n := len(result.Skipped); n > 0 {
		fmt.Fprintf(w, " (%s excluded)", humanize.Comma(int64(n)))
	}
	fmt.Fprintln(w)

	if len(result.Failures) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s %s %s\n",
		red("%-40s", "Failed"),
		red("%-9s", "Attempts"),
		red("%s", "Error"),
	)
	for _, f := range result.Failures {
		fmt.Fprintf(w, "%s %s %s\n",
			white("%-40s", f.Item.Name()),
			white("%-9s", humanize.Comma(int64(f.Attempts))),
			white("%v", f.Err),
		)
	}
	fmt.Fprintln(w)
}
