package stats

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// BuildStatementPDF renders a one-page monthly statement.
func BuildStatementPDF(st *Statement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Expense Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Expense Statement")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", st.Month))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Account: %s", st.Username))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Total Spent: %.2f (%d expenses)", st.TotalSpent, st.TotalCount))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Category Breakdown")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(70, 7, "Category")
	pdf.Cell(50, 7, "Amount")
	pdf.Cell(30, 7, "Count")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	for _, ct := range st.ByCategory {
		pdf.Cell(70, 7, ct.Category)
		pdf.Cell(50, 7, fmt.Sprintf("%.2f", ct.Total))
		pdf.Cell(30, 7, fmt.Sprintf("%d", ct.Count))
		pdf.Ln(7)
	}

	if len(st.ByCategory) == 0 {
		pdf.Cell(0, 7, "No expenses recorded this month.")
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
