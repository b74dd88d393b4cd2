package compare

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// CSVFormatter writes one record per scenario, base first.
type CSVFormatter struct{}

var csvColumns = []string{
	"Scenario", "Type", "Mode",
	"Years Needed", "Retirement Age", "Reached Target",
	"Fund Target", "Final Balance", "Surplus",
	"Years Diff from Base", "Balance Diff from Base", "Balance % Change",
}

func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	records := [][]string{csvColumns}
	if compSet.BaseResult != nil {
		records = append(records, csvRecord(compSet.BaseResult, "base"))
	}
	for i := range compSet.AlternativeResults {
		records = append(records, csvRecord(&compSet.AlternativeResults[i], "alternative"))
	}

	var sb strings.Builder
	if err := csv.NewWriter(&sb).WriteAll(records); err != nil {
		return "", fmt.Errorf("writing comparison csv: %w", err)
	}
	return sb.String(), nil
}

func csvRecord(r *ComparisonResult, kind string) []string {
	money := func(v interface{ StringFixed(int32) string }) string { return v.StringFixed(2) }
	return []string{
		r.ScenarioName, kind, string(r.Mode),
		strconv.Itoa(r.YearsNeeded), strconv.Itoa(r.RetirementAge), strconv.FormatBool(r.ReachedTarget),
		money(r.RetirementFundTarget), money(r.FinalBalance), money(r.Surplus),
		strconv.Itoa(r.YearsDiffFromBase), money(r.BalanceDiffFromBase), money(r.BalancePctFromBase),
	}
}

// JSONFormatter encodes the whole comparison set.
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var (
		data []byte
		err  error
	)
	if jf.Pretty {
		data, err = json.MarshalIndent(compSet, "", "  ")
	} else {
		data, err = json.Marshal(compSet)
	}
	if err != nil {
		return "", fmt.Errorf("encoding comparison: %w", err)
	}
	return string(data), nil
}
