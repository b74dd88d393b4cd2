package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// CSVDetailedExporter writes one row per scenario and simulated year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(projection *domain.PlanProjection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "Age", "Salary", "SavingsContribution", "InvestmentGrowth", "DebtRemaining", "NetSavings", "NetInvestments", "TotalBalance", "RetirementFundTarget"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range projection.Results {
		for _, row := range r.Series {
			rec := []string{
				r.Name,
				strconv.Itoa(row.Year),
				strconv.Itoa(row.Age),
				row.Salary.StringFixed(2),
				row.SavingsContribution.StringFixed(2),
				row.InvestmentGrowth.StringFixed(2),
				row.DebtRemaining.StringFixed(2),
				row.NetSavings.StringFixed(2),
				row.NetInvestments.StringFixed(2),
				row.TotalBalance.StringFixed(2),
				row.RetirementFundTarget.StringFixed(2),
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
