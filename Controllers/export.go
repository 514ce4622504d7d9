package Controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"SpeedWatch/Models"
)

const violationsSheet = "Violations"

var violationHeaders = []string{
	"Plate", "Owner", "Address", "Phone", "Speed", "Speed Limit", "Time", "Image",
}

// ExportViolations downloads the rendered violation table as xlsx
func (d *DashboardController) ExportViolations(c *fiber.Ctx) error {
	buf, err := violationsWorkbook(d.Board.Rows())
	if err != nil {
		d.Logger.Error("failed to build violations workbook", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export violations"})
	}

	filename := fmt.Sprintf("violations_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// violationsWorkbook writes rows in render order, one sheet row per table row.
func violationsWorkbook(rows []Models.ViolationRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", violationsSheet); err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}

	header := make([]interface{}, len(violationHeaders))
	for i, h := range violationHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(violationsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("error writing header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(violationsSheet, 1, 1, headerStyle)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			row.Plate, row.OwnerName, row.Address, row.Phone,
			row.Speed, row.SpeedLimit, row.Time, row.ImageURL,
		}
		if err := f.SetSheetRow(violationsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", i+1, err)
		}
	}
	f.SetColWidth(violationsSheet, "A", "H", 18)

	return f.WriteToBuffer()
}
