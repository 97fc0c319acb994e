package report

import (
	"errors"
	"fmt"
	"io"
	"landing-sequencer-service/internal/domain"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

var (
	bold      = color.New(color.Bold).SprintFunc()
	boldCyan  = color.New(color.Bold, color.FgCyan).SprintFunc()
	boldRed   = color.New(color.Bold, color.FgRed).SprintFunc()
	boldGreen = color.New(color.Bold, color.FgGreen).SprintFunc()
	dim       = color.New(color.Faint).SprintFunc()
	green     = color.New(color.FgGreen).SprintFunc()
	yellow    = color.New(color.FgYellow).SprintFunc()
)

// WriteSchedule renders the schedule, the diverted flights and the total
// cost as plain text tables.
func WriteSchedule(w io.Writer, dataset string, result *domain.SchedulingResult) error {
	if result == nil {
		return errors.New("write schedule: result is nil")
	}

	if dataset != "" {
		fmt.Fprintf(w, "%s %s (%d aircraft)\n", dim("dataset"), dataset, len(result.Decisions))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, boldCyan("--- FINAL SCHEDULE ---"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, bold("FlightID\tIndex\tELT\tTLT\tLLT\tEarly\tLate\tLanding\tCost"))
	for _, e := range result.Schedule {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f\t%.2f\t%s\t%s\n",
			e.FlightID, e.OriginalIndex, e.ELT, e.TLT, e.LLT, e.EarlyPenalty, e.LatePenalty,
			landingCell(e), costCell(e.DeviationCost),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, boldRed("--- DIVERTED FLIGHTS ---"))
	if len(result.Diverted) == 0 {
		fmt.Fprintln(w, dim("none"))
	} else {
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, bold("FlightID\tIndex\tELT\tTLT\tLLT\tEarly\tLate"))
		for _, a := range result.Diverted {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f\t%.2f\n",
				a.FlightID, a.OriginalIndex, a.ELT, a.TLT, a.LLT, a.EarlyPenalty, a.LatePenalty,
			)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("write schedule: %w", err)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s  %s %d  %s %d\n",
		bold("Total Cost:"), boldGreen("$"+FormatMoney(result.TotalCost)),
		dim("scheduled"), result.TotalScheduled(),
		dim("diverted"), result.TotalDiverted(),
	)

	return nil
}

func landingCell(e domain.ScheduleEntry) string {
	t := strconv.Itoa(e.ActualLandingTime)
	switch {
	case e.ActualLandingTime < e.TLT:
		return yellow(t + "-")
	case e.ActualLandingTime > e.TLT:
		return yellow(t + "+")
	default:
		return green(t)
	}
}

func costCell(c float64) string {
	if c == 0 {
		return green("0.00")
	}
	return strconv.FormatFloat(c, 'f', 2, 64)
}

// FormatMoney formats v with two decimals and thousands separators,
// e.g. 1234567.891 -> "1,234,567.89".
func FormatMoney(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + b.String() + "." + frac
}
