// Package report renders balance reports as spreadsheet files.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"splitbook/internal/ledger"
	"splitbook/internal/models"
)

// BalancesXLSX renders every group's member balances and suggested transfers
// into a single-sheet workbook and returns the file bytes.
func BalancesXLSX(groups []models.Group) ([]byte, error) {
	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "splitbook",
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	_ = xlsx.SetSheetName(sheet, "Balances")
	sheet = "Balances"

	_ = xlsx.SetColWidth(sheet, "A", "A", 30)
	_ = xlsx.SetColWidth(sheet, "B", "C", 15)

	bold, err := xlsx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	money, err := xlsx.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	row := 1
	for i := range groups {
		group := &groups[i]
		balances := ledger.GroupBalances(group)

		_ = xlsx.SetCellValue(sheet, cell('A', row), group.Name)
		_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('C', row), bold)
		row++

		_ = xlsx.SetCellValue(sheet, cell('A', row), "Member")
		_ = xlsx.SetCellValue(sheet, cell('B', row), "Balance")
		_ = xlsx.SetCellValue(sheet, cell('C', row), "Status")
		_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('C', row), bold)
		row++

		for _, member := range group.Members {
			balance := balances[member]
			_ = xlsx.SetCellValue(sheet, cell('A', row), member)
			_ = xlsx.SetCellValue(sheet, cell('B', row), balance)
			_ = xlsx.SetCellStyle(sheet, cell('B', row), cell('B', row), money)
			_ = xlsx.SetCellValue(sheet, cell('C', row), status(balance))
			row++
		}

		for _, transfer := range ledger.SuggestSettlements(balances) {
			_ = xlsx.SetCellValue(sheet, cell('A', row),
				fmt.Sprintf("%s pays %s", transfer.From, transfer.To))
			_ = xlsx.SetCellValue(sheet, cell('B', row), transfer.Amount)
			_ = xlsx.SetCellStyle(sheet, cell('B', row), cell('B', row), money)
			row++
		}

		row++ // spacer between groups
	}

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func status(balance float64) string {
	switch {
	case balance > 0.005:
		return "owes"
	case balance < -0.005:
		return "is owed"
	default:
		return "settled"
	}
}

func cell(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}
