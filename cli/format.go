package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/warp/shift-engine/roster"
)

// Color definitions for consistent styling across commands.
var (
	colorHeader  = color.New(color.Bold)
	colorStats   = color.New(color.FgGreen)
	colorWarning = color.New(color.FgYellow)
	colorError   = color.New(color.FgRed, color.Bold)
	colorMuted   = color.New(color.FgWhite, color.Faint)
)

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatHeader(s string) string  { return colorHeader.Sprint(s) }
func formatStats(s string) string   { return colorStats.Sprint(s) }
func formatWarning(s string) string { return colorWarning.Sprint(s) }
func formatError(s string) string   { return colorError.Sprint(s) }
func formatMuted(s string) string   { return colorMuted.Sprint(s) }

func formatOK(s string) string {
	return colorStats.Sprint("✓ ") + s
}

type summaryRow struct {
	Employee roster.EmployeeID
	Stats    roster.EmployeeStats
}

// printSummary writes one line per employee. Hours stay uncolored so
// tabwriter can align them.
func printSummary(out io.Writer, rows []summaryRow) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EMPLOYEE\tDAYS\tTRABAJO\tLICENCIA\tM.FRANCO\tDESCANSO\tEXTRA\tNOTES")
	for _, r := range rows {
		h := r.Stats.Hours
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Employee, r.Stats.Days,
			h.Trabajo, h.Licencia, h.MedioFranco, h.RestDays,
			r.Stats.ExtraHours, notes(r.Stats))
	}
	tw.Flush()
}

func notes(s roster.EmployeeStats) string {
	var parts []string
	if s.Hours.Incomplete > 0 {
		parts = append(parts, fmt.Sprintf("%d incomplete", s.Hours.Incomplete))
	}
	if len(s.SkippedShifts) > 0 {
		ids := make([]string, len(s.SkippedShifts))
		for i, id := range s.SkippedShifts {
			ids[i] = string(id)
		}
		parts = append(parts, "no template: "+strings.Join(ids, ","))
	}
	if len(s.OverMaxDays) > 0 {
		parts = append(parts, fmt.Sprintf("%d days over max", len(s.OverMaxDays)))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "; ")
}
