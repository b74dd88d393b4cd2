package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

const yAxisWidth = 9

// DataSeries is one plotted line.
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart plots one or more series against the simulated years.
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // x-axis labels, one per point
	Width      int
	Height     int
	ShowLegend bool
}

// NewASCIIChart creates an empty chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// TrajectoryChart builds the savings, investments and total balance chart
// for a projection, with the fund target as a dashed reference line.
func TrajectoryChart(series []domain.TimeSeriesRow) *ASCIIChart {
	var savings, investments, total, target []float64
	labels := make([]string, 0, len(series))
	for _, row := range series {
		savings = append(savings, row.NetSavings.InexactFloat64())
		investments = append(investments, row.NetInvestments.InexactFloat64())
		total = append(total, row.TotalBalance.InexactFloat64())
		target = append(target, row.RetirementFundTarget.InexactFloat64())
		labels = append(labels, fmt.Sprintf("%d", row.Age))
	}

	return NewASCIIChart("Balance by age").
		AddSeries("Savings", savings, tuistyles.ColorChartSavings).
		AddSeries("Investments", investments, tuistyles.ColorChartInvestments).
		AddSeries("Total", total, tuistyles.ColorChartTotal).
		AddSeries("Target", target, tuistyles.ColorMuted).
		WithLabels(labels)
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the x-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

func (c *ASCIIChart) empty() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if c.empty() {
		return tuistyles.InfoStyle.Render("No years to plot: the target is already met.")
	}

	var out strings.Builder
	if c.Title != "" {
		out.WriteString(tuistyles.TitleStyle.Render(c.Title))
		out.WriteString("\n")
	}
	out.WriteString(c.renderGrid())
	if c.ShowLegend && len(c.Series) > 1 {
		out.WriteString("\n")
		out.WriteString(c.renderLegend())
	}
	return out.String()
}

func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if lo > 0 {
		lo = 0
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

type cell struct {
	ch     rune
	series int
}

func (c *ASCIIChart) renderGrid() string {
	width := c.Width - yAxisWidth - 3
	if width < 10 {
		width = 10
	}
	height := c.Height
	if height < 3 {
		height = 3
	}
	lo, hi := c.bounds()

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
		for j := range grid[i] {
			grid[i][j] = cell{ch: ' ', series: -1}
		}
	}

	col := func(i, n int) int {
		if n <= 1 {
			return 0
		}
		return int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
	}
	row := func(v float64) int {
		return height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(height-1)))
	}

	for idx, s := range c.Series {
		ch := seriesRune(idx)
		for i, p := range s.Points {
			x, y := col(i, len(s.Points)), row(p)
			if i > 0 {
				px, py := col(i-1, len(s.Points)), row(s.Points[i-1])
				drawLine(grid, px, py, x, y, cell{ch: '·', series: idx})
			}
			grid[y][x] = cell{ch: ch, series: idx}
		}
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	var out strings.Builder
	for i, line := range grid {
		label := ""
		if i == 0 || i == height-1 || i == height/2 {
			label = formatChartValue(hi - float64(i)/float64(height-1)*(hi-lo))
		}
		out.WriteString(axis.Render(label))
		out.WriteString(" │ ")
		for _, cl := range line {
			if cl.series < 0 {
				out.WriteRune(' ')
				continue
			}
			out.WriteString(lipgloss.NewStyle().Foreground(c.Series[cl.series].Color).Render(string(cl.ch)))
		}
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth+1))
	out.WriteString("└")
	out.WriteString(strings.Repeat("─", width+1))
	out.WriteString("\n")
	out.WriteString(c.renderXAxisLabels(width))
	return out.String()
}

// renderXAxisLabels prints the first and last labels, plus the middle one
// when there is room.
func (c *ASCIIChart) renderXAxisLabels(width int) string {
	if len(c.Labels) == 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", width))
	place := func(pos int, s string) {
		r := []rune(s)
		if pos+len(r) > len(line) {
			pos = len(line) - len(r)
		}
		if pos < 0 {
			return
		}
		copy(line[pos:], r)
	}
	first, last := c.Labels[0], c.Labels[len(c.Labels)-1]
	place(0, first)
	if len(c.Labels) > 2 && width > 20 {
		mid := c.Labels[len(c.Labels)/2]
		place(width/2-len(mid)/2, mid)
	}
	if len(c.Labels) > 1 {
		place(width-len(last), last)
	}
	style := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return strings.Repeat(" ", yAxisWidth+3) + style.Render(string(line))
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesRune(i)))
		items = append(items, symbol+" "+s.Name)
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.Join(items, "   "))
}

func seriesRune(index int) rune {
	runes := []rune{'●', '■', '▲', '-'}
	return runes[index%len(runes)]
}

// drawLine connects two grid points using Bresenham's algorithm without
// overwriting plotted points.
func drawLine(grid [][]cell, x0, y0, x1, y1 int, c cell) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) && grid[y0][x0].series < 0 {
			grid[y0][x0] = c
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// formatChartValue abbreviates an axis value; the currency is shown elsewhere.
func formatChartValue(value float64) string {
	v := decimal.NewFromFloat(value)
	switch a := math.Abs(value); {
	case a >= 1e6:
		return v.Div(decimal.NewFromInt(1e6)).StringFixed(1) + "M"
	case a >= 1e3:
		return v.Div(decimal.NewFromInt(1e3)).StringFixed(0) + "K"
	}
	return v.StringFixed(0)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
