/*
app.go - rosterctl command-line interface

PURPOSE:
  Offline access to the engine for operators: check a week file before
  importing it, print hour totals, and try leave splits without running the
  server.

COMMANDS:
  validate <week.json>                    Cell violations and shift overlaps
  summary  <week.json> [--employee id]    Hours per employee
  catalog                                 Templates and their hours
  presets  <start> <end> [<start2> <end2>] Quick leave splits of a span
  split    <start> <end> <leaveStart> <leaveEnd> [--type t]

GLOBAL FLAGS:
  --turnos    TOML template catalog (working hours come from it too)
  --lang      Message language (es, en)
  --no-color  Plain output

SEE ALSO:
  - format.go: Colors and table helpers
  - factory/turno.go: Catalog file format
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/warp/shift-engine/factory"
	"github.com/warp/shift-engine/i18n"
	"github.com/warp/shift-engine/roster"
)

var (
	// Version is set at build time
	Version = "dev"
)

// ErrProblemsFound is returned by validate when the week has violations, so
// scripts can fail on it.
var ErrProblemsFound = errors.New("problems found")

// App holds the CLI application state.
type App struct {
	root *cobra.Command

	catalogPath string
	lang        string
	noColor     bool

	catalog factory.Catalog
	tr      *i18n.Translator
	ctx     context.Context
}

// NewApp creates the command tree.
func NewApp() *App {
	a := &App{}

	a.root = &cobra.Command{
		Use:           "rosterctl",
		Short:         "Offline tools for the shift engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := a.root.PersistentFlags()
	flags.StringVar(&a.catalogPath, "turnos", os.Getenv("ROSTER_CATALOG_FILE"), "TOML template catalog")
	flags.StringVar(&a.lang, "lang", "es", "Message language (es, en)")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.validateCmd())
	a.root.AddCommand(a.summaryCmd())
	a.root.AddCommand(a.catalogCmd())
	a.root.AddCommand(a.presetsCmd())
	a.root.AddCommand(a.splitCmd())

	return a
}

// Execute runs the CLI with os.Args.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Run executes the CLI with the given arguments and output, for tests.
func (a *App) Run(args []string, out io.Writer) error {
	a.root.SetArgs(args)
	a.root.SetOut(out)
	a.root.SetErr(out)
	return a.root.Execute()
}

func (a *App) setup(cmd *cobra.Command) error {
	if a.noColor {
		DisableColor()
	}

	tr, err := i18n.New(a.lang)
	if err != nil {
		return err
	}
	a.tr = tr
	a.ctx = i18n.WithLocale(cmd.Context(), tr.Match(a.lang))

	a.catalog = factory.Catalog{WorkingHours: roster.DefaultWorkingHoursConfig()}
	if a.catalogPath != "" {
		cat, err := factory.LoadCatalog(a.catalogPath)
		if err != nil {
			return err
		}
		a.catalog = cat
	}
	return nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rosterctl %s\n", Version)
		},
	}
}

// =============================================================================
// WEEK COMMANDS
// =============================================================================

func (a *App) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <week.json>",
		Short: "Check every cell of a week file",
		Long: `Checks every (date, employee) cell of a stored week file.

Cell violations (two francos, a franco with other entries, overlapping
entries) and schedule overlaps between shifts are listed. The command
fails when anything is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := readWeek(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			problems := 0
			for _, date := range week.Dates() {
				for _, emp := range week.Employees() {
					cell, ok := week.Assignments[date][emp]
					if !ok {
						continue
					}
					res := roster.ValidateCell(cell)
					for _, v := range res.Violations {
						problems++
						fmt.Fprintf(out, "%s %s %s\n", formatHeader(string(date)), emp, formatError(a.tr.Violation(a.ctx, v, cell)))
					}
				}
			}
			for _, o := range roster.ValidateScheduleAssignments(week) {
				problems++
				fmt.Fprintln(out, formatWarning(a.tr.Overlap(a.ctx, o)))
			}

			if problems > 0 {
				return fmt.Errorf("%w: %d", ErrProblemsFound, problems)
			}
			fmt.Fprintln(out, formatOK(fmt.Sprintf("%d cells checked, no problems", countCells(week))))
			return nil
		},
	}
}

func (a *App) summaryCmd() *cobra.Command {
	var employee string

	cmd := &cobra.Command{
		Use:   "summary <week.json>",
		Short: "Hours per employee over a week file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := readWeek(args[0])
			if err != nil {
				return err
			}

			employees := week.Employees()
			if employee != "" {
				employees = []roster.EmployeeID{roster.EmployeeID(employee)}
			}

			templates := a.catalog.Templates()
			rows := make([]summaryRow, 0, len(employees))
			for _, emp := range employees {
				rows = append(rows, summaryRow{
					Employee: emp,
					Stats:    roster.Summarize(week.DaysOf(emp), templates, a.catalog.WorkingHours),
				})
			}
			printSummary(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&employee, "employee", "e", "", "Only this employee")
	return cmd
}

// =============================================================================
// CATALOG AND SPLIT COMMANDS
// =============================================================================

func (a *App) catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the templates of the catalog with their hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cfg := a.catalog.WorkingHours
			fmt.Fprintln(out, formatMuted(fmt.Sprintf("break %dm from %dh, max %dh/day",
				cfg.BreakMinutes, cfg.MinHoursForBreak, cfg.MaxRegularHoursPerDay)))

			for _, t := range a.catalog.Turnos {
				fmt.Fprintf(out, "%-4s %-20s %-13s %s\n",
					formatHeader(string(t.ID)), t.Name, t.Span.String(), formatStats(t.Hours(cfg).String()+"h"))
			}
			return nil
		},
	}
}

func (a *App) presetsCmd() *cobra.Command {
	var workMinutes int

	cmd := &cobra.Command{
		Use:   "presets <start> <end> [<start2> <end2>]",
		Short: "Quick leave splits of a shift",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 && len(args) != 4 {
				return fmt.Errorf("expected 2 or 4 times, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			span, err := parseSpan(args)
			if err != nil {
				return err
			}
			presets := roster.LeavePresets(span, workMinutes)
			out := cmd.OutOrStdout()
			if len(presets) == 0 {
				fmt.Fprintln(out, formatMuted("no presets: every segment is too short"))
				return nil
			}
			for _, p := range presets {
				fmt.Fprintf(out, "%-12s seg %d  work %s  leave %s\n",
					p.Kind, p.Segment, formatStats(p.Work.String()), formatWarning(p.Leave.String()))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workMinutes, "work", roster.DefaultPresetWorkMinutes, "Minutes of work to keep")
	return cmd
}

func (a *App) splitCmd() *cobra.Command {
	var leaveType, shiftID string

	cmd := &cobra.Command{
		Use:   "split <start> <end> <leaveStart> <leaveEnd>",
		Short: "Carve a leave out of a continuous shift",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			span, err := parseSpan(args[:2])
			if err != nil {
				return err
			}
			leave, err := roster.NewSegment(args[2], args[3])
			if err != nil {
				return err
			}

			cell := []roster.Assignment{roster.NewShift(roster.ShiftID(shiftID), span)}
			session := roster.NewSplitSession(cell, roster.LicenciaType(leaveType))
			if err := session.Select(0); err != nil {
				return err
			}
			if err := session.SetRange(leave); err != nil {
				return err
			}
			if err := session.Validate(); err != nil {
				return errors.New(a.tr.Error(a.ctx, err) + ": " + err.Error())
			}
			result, err := session.Commit()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range result {
				fmt.Fprintln(out, a.tr.Describe(a.ctx, entry))
			}
			b := roster.Breakdown(result, a.catalog.WorkingHours)
			fmt.Fprintln(out, formatMuted(fmt.Sprintf("trabajo %sh, licencia %sh", b.Trabajo, b.Licencia)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&leaveType, "type", "t", "licencia", "Leave type")
	cmd.Flags().StringVar(&shiftID, "shift", "M", "Shift ID of the split shift")
	return cmd
}

// =============================================================================
// HELPERS
// =============================================================================

func readWeek(path string) (roster.Week, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return roster.Week{}, fmt.Errorf("reading week: %w", err)
	}
	return roster.ParseWeekJSON(data)
}

func parseSpan(args []string) (roster.Span, error) {
	first, err := roster.NewSegment(args[0], args[1])
	if err != nil {
		return roster.Span{}, err
	}
	span := roster.Span{First: first}
	if len(args) == 4 {
		second, err := roster.NewSegment(args[2], args[3])
		if err != nil {
			return roster.Span{}, err
		}
		span.Second = &second
	}
	return span, nil
}

func countCells(w roster.Week) int {
	n := 0
	for _, cells := range w.Assignments {
		n += len(cells)
	}
	return n
}
