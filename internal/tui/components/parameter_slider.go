package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ParameterSlider displays one adjustable input with a visual slider. Values
// are decimals so stepping never drifts.
type ParameterSlider struct {
	Field       string // parameter name the slider edits
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Unit        string // e.g. "%", " yrs"
	Places      int32  // decimals shown
	Width       int    // slider bar width
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider. A value above max widens the range so
// loading a plan never changes its inputs.
func NewParameterSlider(field, label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	if value.GreaterThan(max) {
		max = value
	}
	if value.LessThan(min) {
		min = value
	}
	return &ParameterSlider{
		Field: field,
		Label: label,
		Value: value,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 24,
	}
}

// WithUnit sets the unit suffix
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithPlaces sets how many decimals are displayed
func (p *ParameterSlider) WithPlaces(places int32) *ParameterSlider {
	p.Places = places
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment increases the value by step, stopping at Max.
func (p *ParameterSlider) Increment() bool {
	return p.SetValue(p.Value.Add(p.Step))
}

// Decrement decreases the value by step, stopping at Min.
func (p *ParameterSlider) Decrement() bool {
	return p.SetValue(p.Value.Sub(p.Step))
}

// SetValue clamps value into range and reports whether it changed.
func (p *ParameterSlider) SetValue(value decimal.Decimal) bool {
	value = decimal.Min(p.Max, decimal.Max(p.Min, value))
	if value.Equal(p.Value) {
		return false
	}
	p.Value = value
	return true
}

// Percentage returns the value's position in the range, 0 to 1.
func (p *ParameterSlider) Percentage() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

// FormattedValue is the value with its unit.
func (p *ParameterSlider) FormattedValue() string {
	if p.Unit == "" && p.Places == 0 {
		return tuistyles.FormatAmount(p.Value, "")
	}
	return p.Value.StringFixed(p.Places) + p.Unit
}

// Render returns the label, value and slider bar on two lines.
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	marker := "  "
	if p.IsFocused {
		marker = "› "
	}
	line := marker + labelStyle.Render(p.Label) + " " + valueStyle.Render(p.FormattedValue())
	bar := "  " + p.renderBar()

	if p.IsFocused && p.Description != "" {
		desc := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true)
		return line + "\n" + bar + "\n  " + desc.Render(p.Description)
	}
	return line + "\n" + bar
}

func (p *ParameterSlider) renderBar() string {
	filled := int(float64(p.Width)*p.Percentage() + 0.5)
	if filled > p.Width {
		filled = p.Width
	}
	if filled < 0 {
		filled = 0
	}

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < p.Width; i++ {
		switch {
		case i == filled || (filled == p.Width && i == p.Width-1):
			bar.WriteString(thumbStyle.Render("●"))
		case i < filled:
			bar.WriteString(thumbStyle.Render("━"))
		default:
			bar.WriteString(tuistyles.SliderTrackStyle.Render("─"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}

// RenderCompact returns a single-line version
func (p *ParameterSlider) RenderCompact() string {
	return tuistyles.ParameterLabelStyle.Render(p.Label+":") + " " + tuistyles.ParameterValueStyle.Render(p.FormattedValue())
}
