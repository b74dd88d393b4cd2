package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a self-contained HTML report with inline SVG charts.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"amount":  FormatAmount,
	"pct":     FormatPercentage,
	"outcome": Outcome,
}).Parse(htmlTemplateSource))

const (
	chartWidth  = 720
	chartHeight = 280
	chartPad    = 40
)

type trajectoryChart struct {
	Width, Height int
	Balance       string // SVG polyline points
	Target        string
	MaxLabel      string
	FirstAge      int
	LastAge       int
}

type pieSlice struct {
	Label     string
	Color     string
	Percent   string
	DashArray string
	Offset    string
}

type htmlScenario struct {
	*domain.SimulationResult
	Currency    string
	Label       string
	Assumptions []string
	Chart       trajectoryChart
	Pie         []pieSlice
}

func (h HTMLFormatter) Format(projection *domain.PlanProjection) ([]byte, error) {
	scenarios := make([]htmlScenario, 0, len(projection.Results))
	for i := range projection.Results {
		r := &projection.Results[i]
		scenarios = append(scenarios, htmlScenario{
			SimulationResult: r,
			Currency:         projection.Currency,
			Label:            r.Inputs.Frequency.Label(),
			Assumptions:      Assumptions(r.Inputs),
			Chart:            buildTrajectory(r),
			Pie:              buildPie(r.Summary),
		})
	}

	data := struct {
		Projection *domain.PlanProjection
		Scenarios  []htmlScenario
		Fastest    *domain.SimulationResult
	}{projection, scenarios, projection.Fastest()}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildTrajectory scales the balance and target series into the chart box.
func buildTrajectory(r *domain.SimulationResult) trajectoryChart {
	c := trajectoryChart{Width: chartWidth, Height: chartHeight, FirstAge: r.Summary.CurrentAge, LastAge: r.Summary.RetirementAge}

	p := r.Inputs
	startBalance := p.CurrentSavings
	spending := p.RetirementSpending()
	if r.Summary.Mode != domain.ModeSplit {
		startBalance = p.CurrentSavings.Sub(p.TotalDebt)
		spending = p.CostOfLiving
	}
	startTarget := spending.Mul(p.Frequency.Periods()).Mul(domain.NewRates(p).TargetMultiple)

	balances := []decimal.Decimal{startBalance}
	targets := []decimal.Decimal{startTarget}
	for _, row := range r.Series {
		balances = append(balances, row.TotalBalance)
		targets = append(targets, row.RetirementFundTarget)
	}

	maxV := decimal.NewFromInt(1)
	for i := range balances {
		maxV = decimal.Max(maxV, balances[i], targets[i])
	}
	c.MaxLabel = FormatShort(maxV)

	c.Balance = polyline(balances, maxV)
	c.Target = polyline(targets, maxV)
	return c
}

func polyline(values []decimal.Decimal, maxV decimal.Decimal) string {
	plotW := float64(chartWidth - 2*chartPad)
	plotH := float64(chartHeight - 2*chartPad)
	steps := len(values) - 1
	if steps < 1 {
		steps = 1
	}

	points := make([]string, 0, len(values))
	for i, v := range values {
		x := float64(chartPad) + plotW*float64(i)/float64(steps)
		ratio := decimal.Max(v, decimal.Zero).Div(maxV).InexactFloat64()
		y := float64(chartHeight-chartPad) - plotH*ratio
		points = append(points, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	return strings.Join(points, " ")
}

// buildPie splits the larger of target and balance into savings, investments
// and whatever is still missing. The circle has circumference 100.
func buildPie(s domain.ResultSummary) []pieSlice {
	whole := decimal.Max(s.RetirementFundTarget, s.TotalBalance())
	if !whole.IsPositive() {
		return nil
	}

	parts := []struct {
		label, color string
		v            decimal.Decimal
	}{
		{"Net savings", "#2b8a3e", decimal.Max(s.NetSavings, decimal.Zero)},
		{"Net investments", "#1c7ed6", s.NetInvestments},
		{"Still needed", "#e9ecef", s.Shortfall()},
	}

	slices := make([]pieSlice, 0, len(parts))
	offset := decimal.NewFromInt(25)
	for _, part := range parts {
		if !part.v.IsPositive() {
			continue
		}
		share := part.v.Div(whole).Mul(decimal.NewFromInt(100)).Round(2)
		slices = append(slices, pieSlice{
			Label:     part.label,
			Color:     part.color,
			Percent:   share.StringFixed(1) + "%",
			DashArray: share.String() + " " + decimal.NewFromInt(100).Sub(share).String(),
			Offset:    offset.String(),
		})
		offset = offset.Sub(share)
	}
	return slices
}
