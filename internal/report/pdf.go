package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"decision-matrix/internal/matrix"
)

// Render builds the summary document: one bordered row per option,
// best total first, scores at display precision.
func Render(ranked []matrix.Ranked) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Decision Matrix Summary", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(140, 10, "Option", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 10, "Total Score", "1", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, row := range ranked {
		pdf.CellFormat(140, 10, row.Label, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 10, fmt.Sprintf("%.2f", row.Score), "1", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}
	return buf.Bytes(), nil
}
