package upgrade

import (
	"fmt"
	"io"

	"github.com/crateup/crateup/pkg/constants"
	"github.com/crateup/crateup/pkg/output"
)

// PrintResults writes the per-dependency outcome table for a finished run.
//
// One row per attempted upgrade: status, declared name, dependency kind,
// the version upgraded from, and the version upgraded to. Column widths
// adapt to the content.
func PrintResults(w io.Writer, results []Result) {
	if len(results) == 0 {
		return
	}

	table := output.NewTable().
		AddColumn("Status").
		AddColumn("Crate").
		AddColumn("Kind").
		AddColumn("From").
		AddColumn("To")

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{
			statusCell(r.Status),
			r.Entry.Dependency.Name,
			r.Entry.Dependency.Kind.String(),
			valueOrNA(r.Entry.Installed()),
			valueOrNA(r.Target),
		}
		table.UpdateWidths(row...)
		rows = append(rows, row)
	}

	fmt.Fprintln(w, table.HeaderRow())
	fmt.Fprintln(w, table.SeparatorRow())
	for _, row := range rows {
		fmt.Fprintln(w, table.FormatRow(row...))
	}
}

// PrintSummary writes the closing count lines and the guidance for skipped
// upgrades.
func PrintSummary(w io.Writer, results []Result, dryRun bool) {
	counts := Tally(results)

	fmt.Fprintf(w, "\nTotal crates: %d\n", len(results))
	if dryRun {
		fmt.Fprintf(w, "%s Planned: %d (dry-run, nothing executed)\n", constants.IconPending, counts.Planned)
		for _, r := range results {
			if r.Status == constants.StatusPlanned {
				fmt.Fprintf(w, "   $ %s\n", r.Command)
			}
		}
	} else if counts.Updated > 0 {
		fmt.Fprintf(w, "%s Updated: %d\n", constants.IconCheckmarkBox, counts.Updated)
	}
	if counts.Failed > 0 {
		fmt.Fprintf(w, "%s Failed: %d\n", constants.IconError, counts.Failed)
	}
	if counts.Skipped > 0 {
		fmt.Fprintf(w, "%s Skipped: %d\n", constants.IconWarn, counts.Skipped)
		for _, r := range results {
			if r.Status == constants.StatusSkipped {
				fmt.Fprintf(w, "   - %s: %s\n", r.Entry.Dependency.Name, r.Reason)
			}
		}
	}
}

// statusCell pairs a status with its display icon.
func statusCell(status string) string {
	switch status {
	case constants.StatusUpdated:
		return constants.IconSuccess + " " + status
	case constants.StatusFailed:
		return constants.IconError + " " + status
	case constants.StatusPlanned:
		return constants.IconPending + " " + status
	case constants.StatusSkipped:
		return constants.IconWarning + " " + status
	default:
		return status
	}
}

// valueOrNA substitutes the not-available placeholder for empty values.
func valueOrNA(value string) string {
	if value == "" {
		return constants.PlaceholderNA
	}
	return value
}
