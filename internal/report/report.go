// Package report renders store offers into an XLSX workbook for sending to
// the end user.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"lentabot/internal/models"
)

const (
	maxSheetNameLen = 31
	maxColumnWidth  = 50
)

var headers = []string{"Магазин", "Адрес", "Цена", "Дата"}

// Build renders one sheet named after the product, a bold header row, and
// one row per offer sorted ascending by price. The price column carries a
// two-decimal number format, the date column the generation timestamp.
func Build(title string, offers []models.StoreOffer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	sorted := make([]models.StoreOffer, len(offers))
	copy(sorted, offers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price < sorted[j].Price
	})

	generatedAt := time.Now().Format("02.01.2006 15:04")

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", boldStyle); err != nil {
		return nil, fmt.Errorf("failed to apply header style: %w", err)
	}

	// Built-in number format 2 is "0.00".
	priceStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, fmt.Errorf("failed to create price style: %w", err)
	}

	for i, offer := range sorted {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), offer.Store); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), offer.Address)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), offer.Price)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), generatedAt)
		f.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), priceStyle)
	}

	autoFitColumns(f, sheet, sorted, generatedAt)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func autoFitColumns(f *excelize.File, sheet string, offers []models.StoreOffer, generatedAt string) {
	widths := make([]int, len(headers))
	for col, header := range headers {
		widths[col] = len([]rune(header))
	}

	for _, offer := range offers {
		cells := []string{
			offer.Store,
			offer.Address,
			fmt.Sprintf("%.2f", offer.Price),
			generatedAt,
		}
		for col, value := range cells {
			if n := len([]rune(value)); n > widths[col] {
				widths[col] = n
			}
		}
	}

	for col, width := range widths {
		adjusted := width + 2
		if adjusted > maxColumnWidth {
			adjusted = maxColumnWidth
		}
		name, _ := excelize.ColumnNumberToName(col + 1)
		f.SetColWidth(sheet, name, name, float64(adjusted))
	}
}

// sheetName squeezes a product title into a legal sheet name: the
// characters excel rejects are dropped and the result is truncated to 31
// runes.
func sheetName(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, strings.TrimSpace(title))

	if cleaned == "" {
		cleaned = "Товар"
	}

	runes := []rune(cleaned)
	if len(runes) > maxSheetNameLen {
		runes = runes[:maxSheetNameLen]
	}

	return string(runes)
}
