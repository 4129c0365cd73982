package service

import (
	"fmt"
	"io"
	"time"

	"mcq-platform/internal/domain"

	"github.com/jung-kurt/gofpdf"
)

func writeResultReport(w io.Writer, paper *domain.TestPaper, summary *domain.ResultSummary, results []*domain.Result) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(paper.Name+" results", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, paper.Name)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	lines := []string{
		fmt.Sprintf("Test paper: %s", paper.ID),
		fmt.Sprintf("Attempts: %d (%d accounts)", summary.Attempts, summary.DistinctAccounts),
		fmt.Sprintf("Average score: %.2f / %.2f (%.2f%%)", summary.AverageScore, summary.MaxPossibleScore, summary.AveragePercent),
		fmt.Sprintf("Highest: %.2f  Lowest: %.2f", summary.HighestScore, summary.LowestScore),
		fmt.Sprintf("Generated: %s", time.Now().UTC().Format(time.RFC3339)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(5)

	widths := []float64{62, 62, 26, 30}
	pdf.SetFont("Arial", "B", 10)
	for i, header := range []string{"Result", "Account", "Score", "Submitted"} {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range results {
		pdf.CellFormat(widths[0], 7, r.ID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, r.AccountID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%.2f", r.FinalScore), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, r.CreatedAt.UTC().Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
