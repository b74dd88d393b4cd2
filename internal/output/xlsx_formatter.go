package output

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXFormatter writes a workbook with a Summary sheet (one row per scenario)
// and a Series sheet (one row per scenario and year).
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

const (
	summarySheet = "Summary"
	seriesSheet  = "Series"
)

func (x XLSXFormatter) Format(projection *domain.PlanProjection) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	runID := uuid.New().String()
	if err := wb.SetDocProps(&excelize.DocProperties{
		Title:       "Retirement Projection",
		Identifier:  runID,
		Created:     time.Now().UTC().Format(time.RFC3339),
		Description: fmt.Sprintf("%d scenario(s), amounts %s in %s", len(projection.Results), projection.Frequency.Label(), projection.Currency),
	}); err != nil {
		return nil, err
	}

	if err := wb.SetSheetName(wb.GetSheetName(0), summarySheet); err != nil {
		return nil, err
	}
	if _, err := wb.NewSheet(seriesSheet); err != nil {
		return nil, err
	}

	headerStyle, err := wb.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"003366"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	summaryHeader := []interface{}{"Scenario", "Mode", "Years Needed", "Retirement Age", "Reached Target",
		"Fund Target", "Net Savings", "Net Investments", "Debt Remaining", "Target Frozen", "Advisory", "Currency"}
	if err := writeRow(wb, summarySheet, 1, summaryHeader); err != nil {
		return nil, err
	}
	for i, r := range projection.Results {
		s := r.Summary
		row := []interface{}{r.Name, string(s.Mode), s.YearsNeeded, s.RetirementAge, s.ReachedTarget,
			s.RetirementFundTarget.InexactFloat64(), s.NetSavings.InexactFloat64(), s.NetInvestments.InexactFloat64(),
			s.DebtRemaining.InexactFloat64(), s.TargetFrozen, s.Advisory, projection.Currency}
		if err := writeRow(wb, summarySheet, i+2, row); err != nil {
			return nil, err
		}
	}
	footer := len(projection.Results) + 3
	if err := wb.SetCellValue(summarySheet, fmt.Sprintf("A%d", footer), "Run ID"); err != nil {
		return nil, err
	}
	if err := wb.SetCellValue(summarySheet, fmt.Sprintf("B%d", footer), runID); err != nil {
		return nil, err
	}

	seriesHeader := []interface{}{"Scenario", "Year", "Age", "Salary", "Savings Contribution", "Investment Growth",
		"Debt Remaining", "Net Savings", "Net Investments", "Total Balance", "Fund Target"}
	if err := writeRow(wb, seriesSheet, 1, seriesHeader); err != nil {
		return nil, err
	}
	line := 2
	for _, r := range projection.Results {
		for _, row := range r.Series {
			values := []interface{}{r.Name, row.Year, row.Age, row.Salary.InexactFloat64(),
				row.SavingsContribution.InexactFloat64(), row.InvestmentGrowth.InexactFloat64(),
				row.DebtRemaining.InexactFloat64(), row.NetSavings.InexactFloat64(),
				row.NetInvestments.InexactFloat64(), row.TotalBalance.InexactFloat64(),
				row.RetirementFundTarget.InexactFloat64()}
			if err := writeRow(wb, seriesSheet, line, values); err != nil {
				return nil, err
			}
			line++
		}
	}

	for _, sheet := range []string{summarySheet, seriesSheet} {
		if err := wb.SetCellStyle(sheet, "A1", "L1", headerStyle); err != nil {
			return nil, err
		}
		if err := wb.SetColWidth(sheet, "A", "A", 28); err != nil {
			return nil, err
		}
		if err := wb.SetColWidth(sheet, "B", "L", 16); err != nil {
			return nil, err
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(wb *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return wb.SetSheetRow(sheet, cell, &values)
}
