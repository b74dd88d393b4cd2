package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
)

const metricCardWidth = 22

// MetricCard is a small bordered box showing one headline number of a run.
type MetricCard struct {
	Label     string
	Value     string
	Note      string
	Highlight bool

	trend *trend
}

type trend struct {
	good   bool
	change string
}

func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value}
}

// WithTrend shows the change since the previous run; good picks the color.
func (m *MetricCard) WithTrend(good bool, change string) *MetricCard {
	m.trend = &trend{good: good, change: change}
	return m
}

func (m *MetricCard) WithDescription(note string) *MetricCard {
	m.Note = note
	return m
}

func (m *MetricCard) WithHighlight(on bool) *MetricCard {
	m.Highlight = on
	return m
}

func (m *MetricCard) Render() string {
	lines := []string{
		tuistyles.MetricLabelStyle.Render(m.Label),
		tuistyles.MetricValueStyle.Render(m.Value),
	}
	if t := m.trend; t != nil {
		lines = append(lines, tuistyles.MetricTrendStyle(t.good).Render(tuistyles.TrendIndicator(t.good)+" "+t.change))
	}
	if m.Note != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render(m.Note))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(metricCardWidth)
	if m.Highlight {
		box = box.BorderForeground(tuistyles.ColorPrimary)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// MetricGrid lays cards out left to right, wrapping after columns cards.
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	columns = max(columns, 1)

	rows := make([]string, 0, (len(cards)+columns-1)/columns)
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		rendered := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			rendered = append(rendered, c.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
