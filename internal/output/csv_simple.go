package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(projection *domain.PlanProjection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Mode", "YearsNeeded", "RetirementAge", "ReachedTarget", "RetirementFundTarget", "NetSavings", "NetInvestments", "DebtRemaining", "TargetFrozen", "Advisory"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	results := append([]domain.SimulationResult(nil), projection.Results...)
	sort.SliceStable(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	for _, r := range results {
		s := r.Summary
		row := []string{
			r.Name,
			string(s.Mode),
			strconv.Itoa(s.YearsNeeded),
			strconv.Itoa(s.RetirementAge),
			strconv.FormatBool(s.ReachedTarget),
			s.RetirementFundTarget.StringFixed(2),
			s.NetSavings.StringFixed(2),
			s.NetInvestments.StringFixed(2),
			s.DebtRemaining.StringFixed(2),
			strconv.FormatBool(s.TargetFrozen),
			strconv.FormatBool(s.Advisory),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
