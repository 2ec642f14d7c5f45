package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rafiki18/archviz/pkg/pipeline"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failure messages.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"

	markOK     = "✅"
	markFailed = "❌"

	ruleWidth = 50
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints each line of msg indented and dimmed.
func printDetail(w io.Writer, msg string) {
	for _, line := range strings.Split(strings.TrimRight(msg, "\n"), "\n") {
		fmt.Fprintln(w, "    "+StyleDim.Render(line))
	}
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printRule(w io.Writer) {
	fmt.Fprintln(w, StyleDim.Render(strings.Repeat("=", ruleWidth)))
}

func printBanner(w io.Writer) {
	fmt.Fprintln(w, StyleTitle.Render("🎨 Generating DivTracker Architecture Diagrams"))
	fmt.Fprintln(w)
	printRule(w)
}

// printReport prints the per-diagram table, failure diagnostics and the
// "Generated k/n diagrams" line.
func printReport(w io.Writer, report pipeline.Report, outDir string) {
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		mark := markOK
		if !res.OK() {
			mark = markFailed
		}
		rows = append(rows, []string{mark, res.Name, res.Output, formatDuration(res.Duration)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Diagram", "Output", "Time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if row < len(report.Results) && !report.Results[row].OK() && col == 1 {
				return styleTableCell.Foreground(colorRed)
			}
			if col == 2 || col == 3 {
				return styleTableCell.Foreground(colorGray)
			}
			return styleTableCell
		})
	fmt.Fprintln(w, t.Render())

	if failures := report.Failures(); len(failures) > 0 {
		fmt.Fprintln(w)
		for _, res := range failures {
			printError(w, "%s %s", res.Name, StyleError.Render(res.State.String()))
			if res.Message != "" {
				printDetail(w, res.Message)
			}
		}
	}

	printRule(w)
	fmt.Fprintf(w, "\n✨ Generated %s diagrams\n",
		StyleNumber.Render(fmt.Sprintf("%d/%d", report.Succeeded(), report.Attempted())))
	if report.Succeeded() > 0 {
		fmt.Fprintf(w, "\n📁 Output files are in: %s\n", StyleValue.Render(outDir))
	}
}

// printKeptIR lists intermediate DOT files left behind by failed renders.
func printKeptIR(w io.Writer, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintln(w)
	printWarning(w, "Kept %d intermediate file(s) for inspection:", len(paths))
	for _, p := range paths {
		printFile(w, p)
	}
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
