package render

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/guptarohit/asciigraph"

	"github.com/tejusbharadwaj/weatherboard/internal/formatter"
)

const graphHeight = 8

// Console prints the report as plain text.
type Console struct {
	Out   io.Writer
	Graph bool // append an ascii chart of the hourly temperatures
}

func NewConsole(out io.Writer, graph bool) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{Out: out, Graph: graph}
}

func (c *Console) Name() string {
	return "console"
}

func (c *Console) Render(report *formatter.Report) (string, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "📍 %s\n", report.Location)
	fmt.Fprintf(&buf, "Current Temp: %.0f°F\n", report.CurrentTemp)
	if report.Sunrise != "" {
		fmt.Fprintf(&buf, "Sunrise: %s\n", report.Sunrise)
	}
	if report.Sunset != "" {
		fmt.Fprintf(&buf, "Sunset: %s\n", report.Sunset)
	}

	buf.WriteString("\nDaily Forecasts:\n")
	for _, day := range report.Daily {
		writeLabel(&buf, day.Date)
		fmt.Fprintf(&buf, "%.0f°F - %.0f°F, %s\n", day.Min, day.Max, day.Description)
	}

	buf.WriteString("\nHourly Forecasts:\n")
	for _, hour := range report.Hourly {
		writeLabel(&buf, hour.Time)
		fmt.Fprintf(&buf, "%.0f°F, %s\n", hour.Temp, hour.Description)
	}

	if c.Graph && len(report.Hourly) > 1 {
		temps := make([]float64, len(report.Hourly))
		for i, h := range report.Hourly {
			temps[i] = h.Temp
		}
		buf.WriteString("\n")
		buf.WriteString(asciigraph.Plot(temps,
			asciigraph.Height(graphHeight),
			asciigraph.Caption("Hourly temperature (°F)"),
		))
		buf.WriteString("\n")
	}

	if _, err := c.Out.Write(buf.Bytes()); err != nil {
		return "", fmt.Errorf("%w: console: %v", ErrWrite, err)
	}
	return "stdout", nil
}

// writeLabel prefixes a line with its time label; omitted labels are skipped.
func writeLabel(buf *bytes.Buffer, label string) {
	if label != "" {
		buf.WriteString(label)
		buf.WriteString(": ")
	}
}
