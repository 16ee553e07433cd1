package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/parse"
)

// ExportReceiptsXLSX produces an XLSX workbook (as bytes) with one row per
// processed receipt, error entries included so a run can be audited in full.
func ExportReceiptsXLSX(logger *slog.Logger, receipts []entity.Receipt) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Comprovantes"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"Arquivo",
		"Layout",
		"Tipo",
		"Valor",
		"Data",
		"Hora",
		"Pagador",
		"Recebedor",
		"Confiança",
		"Alertas",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range receipts {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.Source.SourceFile)
		write(2, string(r.Layout))
		write(3, string(r.Type))
		if r.Amount.IsPositive() {
			write(4, parse.FormatCurrency(r.Amount))
		} else {
			write(4, "")
		}
		write(5, r.Date)
		write(6, r.Time)
		write(7, r.Payer.FullName)
		write(8, r.Payee.FullName)
		write(9, r.Confidence)

		alertas := r.Warnings
		if r.IsError() {
			alertas = append([]string{r.Err}, alertas...)
		}
		write(10, truncate(strings.Join(alertas, "; "), 140))

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 32) // arquivo
	_ = f.SetColWidth(sheet, "B", "C", 14) // layout, tipo
	_ = f.SetColWidth(sheet, "D", "D", 14) // valor
	_ = f.SetColWidth(sheet, "E", "F", 12) // data, hora
	_ = f.SetColWidth(sheet, "G", "H", 30) // participantes
	_ = f.SetColWidth(sheet, "J", "J", 48) // alertas

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("export.xlsx.ok",
		"rows", len(receipts),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// truncate cuts on rune boundaries; warning text is accented Portuguese
// and a byte cut could split a UTF-8 sequence.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
