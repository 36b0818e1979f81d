package infra

// pdf.go — Redemption voucher generation using go-pdf/fpdf.
// Generates an A7-size voucher the user presents at pickup:
//   - Program name header
//   - Movement number and timestamp
//   - Redeemed item, quantity and points spent
//   - Pickup instructions footer
//
// The output file is saved to storagePath/voucher_{movId}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"simplifique/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateVoucherPDF generates the pickup voucher for a confirmed redemption.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateVoucherPDF(mov *model.Movimentacao, nomeUsuario, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("voucher_%d.pdf", mov.MovID)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — voucher-sized (custom size, "A7" is not in fpdf's named list)
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Simplifique", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Voucher de Resgate", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Voucher info ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Resgate N° %d", mov.MovID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, mov.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if nomeUsuario != "" {
		pdf.CellFormat(contentW, 4, nomeUsuario, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Item ──────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // item name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // points

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Brinde", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Pontos", "B", 1, "R", false, 0, "")

	nome := mov.SKU
	if mov.Brinde != nil {
		nome = mov.Brinde.Nome
	}
	// Truncate long names
	if len(nome) > 22 {
		nome = nome[:21] + "…"
	}
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1, 5, nome, "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", mov.Qtd), "", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, fmt.Sprintf("%d", mov.PontosTotal), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Total ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, fmt.Sprintf("%d pts", mov.PontosTotal), "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Apresente este voucher na retirada.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
