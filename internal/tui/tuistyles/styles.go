// Package tuistyles holds the lipgloss palette and styles shared by the TUI
// root model, its scenes and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary   = lipgloss.Color("#4C9AFF")
	ColorSecondary = lipgloss.Color("#7E57C2")
	ColorAccent    = lipgloss.Color("#FFB020")
	ColorSuccess   = lipgloss.Color("#36B37E")
	ColorDanger    = lipgloss.Color("#FF5630")
	ColorWarning   = lipgloss.Color("#FFAB00")
	ColorInfo      = lipgloss.Color("#00B8D9")

	ColorBackground = lipgloss.Color("#1E1E2E")
	ColorForeground = lipgloss.Color("#E6E6E6")
	ColorMuted      = lipgloss.Color("#8A8F98")
	ColorBorder     = lipgloss.Color("#44475A")

	ColorChartSavings     = lipgloss.Color("#36B37E")
	ColorChartInvestments = lipgloss.Color("#4C9AFF")
	ColorChartTotal       = lipgloss.Color("#FFB020")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorBorder).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Background(ColorBorder)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	ParameterValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorAccent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	InfoStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorInfo)

	// WarningBannerStyle is used for the allocation mismatch banner.
	WarningBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1E1E2E")).
				Background(ColorWarning).
				Padding(0, 1)

	TableHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)

// MetricTrendStyle colors a change by whether it is good news.
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the direction of a change.
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// FormatAmount renders a rounded amount with thousands separators and an
// optional currency code suffix.
func FormatAmount(d decimal.Decimal, currency string) string {
	s := d.Abs().Round(0).String()
	out := make([]byte, 0, len(s)+len(s)/3+1)
	if d.Round(0).IsNegative() {
		out = append(out, '-')
	}
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if currency != "" {
		return string(out) + " " + currency
	}
	return string(out)
}
