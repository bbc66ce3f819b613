package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	GainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	LossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Table renders a bordered grid. Numeric columns read better right-aligned,
// but the grid mixes text and numbers so everything stays left-aligned.
func Table(headers []string, rows [][]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("┼")
	table.SetColumnSeparator("│")
	table.SetRowSeparator("─")
	table.AppendBulk(rows)
	table.Render()
}

// KeyValue prints aligned label/value pairs, one per line.
func KeyValue(pairs [][]string) {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		fmt.Printf("%s  %s\n",
			MutedStyle.Render(fmt.Sprintf("%-*s", width, p[0])),
			ValueStyle.Render(p[1]))
	}
}

func Success(msg string) {
	fmt.Println(SuccessStyle.Render("✓ ") + msg)
}

func Error(msg string) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+msg)
}

func Warning(msg string) {
	fmt.Println(WarningStyle.Render("⚠ ") + msg)
}

func Info(msg string) {
	fmt.Println(MutedStyle.Render(msg))
}

func Header(msg string) {
	fmt.Println(HeaderStyle.Render(msg))
}

// Amount formats a currency value.
func Amount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// SignedAmount colors gains green and losses red.
func SignedAmount(v float64) string {
	s := fmt.Sprintf("%+.2f", v)
	if v < 0 {
		return LossStyle.Render(s)
	}
	return GainStyle.Render(s)
}

// Percent colors a signed percentage.
func Percent(v float64) string {
	s := fmt.Sprintf("%+.2f%%", v)
	if v < 0 {
		return LossStyle.Render(s)
	}
	return GainStyle.Render(s)
}

// DegradedNotice flags output built from generated data after the API
// could not serve the request.
func DegradedNotice(msg string) {
	if msg == "" {
		msg = "showing generated data"
	}
	Warning("degraded: " + msg)
}
