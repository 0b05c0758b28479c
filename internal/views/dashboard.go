package views

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

const (
	histogramHeight   = 6
	histogramBarWidth = 3
)

type DashboardData struct {
	Buckets   []int
	Ratios    []float64
	Labels    []string
	Observed  int
	Collapsed int
}

var barShades = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("98")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
}

func RenderDashboard(data DashboardData) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("QUANTUM PROBABILITY DASHBOARD") + "\n")
	b.WriteString(RenderHistogram(data.Ratios, data.Labels) + "\n")
	b.WriteString(fmt.Sprintf("%s observed | %s collapsed\n", plural(data.Observed), plural(data.Collapsed)))
	b.WriteString(fmt.Sprintf("Ψ %d  %s", data.Collapsed, dimStyle.Render("[r] reset")))
	return b.String()
}

// RenderHistogram draws one vertical bar per ratio. Bars with a non-zero
// ratio are always at least one cell tall.
func RenderHistogram(ratios []float64, labels []string) string {
	data := make([]barchart.BarData, len(ratios))
	for i, r := range ratios {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		v := min(r, 1)
		if r > 0 && v < 1.0/histogramHeight {
			v = 1.0 / histogramHeight
		}
		data[i] = barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: label, Value: v, Style: barShade(r)}},
		}
	}

	width := max(len(ratios), 1) * (histogramBarWidth + 1)
	chart := barchart.New(width, histogramHeight+2,
		barchart.WithMaxValue(1),
		barchart.WithBarWidth(histogramBarWidth),
		barchart.WithBarGap(1),
		barchart.WithNoAutoBarWidth(),
		barchart.WithDataSet(data),
	)
	chart.Draw()
	return chart.View()
}

func barShade(ratio float64) lipgloss.Style {
	idx := int(ratio * float64(len(barShades)))
	if idx >= len(barShades) {
		idx = len(barShades) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return barShades[idx]
}

func plural(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
