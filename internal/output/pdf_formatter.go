package output

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/fireplan/internal/domain"
)

// PDFFormatter renders a printable A4 report: one section per scenario with
// the summary, assumptions and the year-by-year table.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

const (
	pdfMargin       = 15.0
	pdfContentWidth = 210.0 - 2*pdfMargin
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Year", 14}, {"Age", 12}, {"Contribution", 28}, {"Growth", 26},
	{"Debt", 26}, {"Balance", 37}, {"Target", 37},
}

func (p PDFFormatter) Format(projection *domain.PlanProjection) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle("Retirement Projection", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 12, "Retirement Projection", "", 1, "C", false, 0, "")
	if best := projection.Fastest(); best != nil && len(projection.Results) > 1 {
		pdf.SetFont("Arial", "", 11)
		pdf.SetTextColor(80, 80, 80)
		pdf.CellFormat(pdfContentWidth, 8,
			tr(fmt.Sprintf("Fastest scenario: %s (age %d)", best.Name, best.Summary.RetirementAge)),
			"", 1, "C", false, 0, "")
	}

	for i := range projection.Results {
		r := &projection.Results[i]
		if i > 0 {
			pdf.AddPage()
		}
		writePDFResult(pdf, tr, r, projection.Currency)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePDFResult(pdf *fpdf.Fpdf, tr func(string) string, r *domain.SimulationResult, currency string) {
	s := r.Summary
	name := r.Name
	if name == "" {
		name = "Projection"
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 9, tr(fmt.Sprintf("%s (%s allocation)", name, s.Mode)), "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(r.Issues) > 0 || s.Advisory {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(255, 243, 191)
		pdf.SetTextColor(90, 60, 0)
		for _, issue := range r.Issues {
			pdf.MultiCell(pdfContentWidth, 6, tr(issue.Message), "", "L", true)
		}
		if s.Advisory {
			pdf.MultiCell(pdfContentWidth, 6, "Results are advisory until the inputs are corrected.", "", "L", true)
		}
		pdf.Ln(2)
	}

	rows := [][2]string{
		{"Outcome", Outcome(s)},
		{"Years needed", itoa(s.YearsNeeded)},
		{"Retirement age", itoa(s.RetirementAge)},
		{"Retirement fund target", FormatCurrency(s.RetirementFundTarget, currency)},
		{"Net savings", FormatCurrency(s.NetSavings, currency)},
		{"Net investments", FormatCurrency(s.NetInvestments, currency)},
		{"Debt remaining", FormatCurrency(s.DebtRemaining, currency)},
		{"Salary", FormatCurrency(r.Inputs.CurrentSalary, currency) + " " + r.Inputs.Frequency.Label()},
	}
	pdf.SetFillColor(245, 247, 250)
	pdf.SetTextColor(50, 50, 50)
	for i, row := range rows {
		fill := i%2 == 0
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 7, row[0], "", 0, "L", fill, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(pdfContentWidth-60, 7, tr(row[1]), "", 1, "L", fill, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 7, "Assumptions", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(50, 50, 50)
	for _, a := range Assumptions(r.Inputs) {
		pdf.MultiCell(pdfContentWidth, 5, tr("- "+a), "", "L", false)
	}

	if len(r.Series) == 0 {
		return
	}

	pdf.Ln(4)
	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(0, 51, 102)
		pdf.SetTextColor(255, 255, 255)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(50, 50, 50)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	for i, row := range r.Series {
		if pdf.GetY()+6 > pageHeight-pdfMargin-6 {
			pdf.AddPage()
			header()
		}
		values := []string{
			itoa(row.Year), itoa(row.Age),
			FormatAmount(row.SavingsContribution), FormatAmount(row.InvestmentGrowth),
			FormatAmount(row.DebtRemaining), FormatAmount(row.TotalBalance),
			FormatAmount(row.RetirementFundTarget),
		}
		fill := i%2 == 1
		pdf.SetFillColor(245, 247, 250)
		for j, col := range pdfColumns {
			align := "R"
			if j < 2 {
				align = "C"
			}
			pdf.CellFormat(col.width, 6, values[j], "LR", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.CellFormat(pdfContentWidth, 0, "", "T", 1, "", false, 0, "")
}
