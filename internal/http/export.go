package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/voltview/voltview/internal/service"
)

var reportExportHeader = []string{
	"Date",
	"Summary",
	"Type",
	"Status",
	"File",
	"Created At",
}

// exportReports streams the report register as an XLSX attachment.
func exportReports(c *fiber.Ctx, svcs *service.Services) error {
	reports, err := svcs.Reports.List()
	if err != nil {
		return fail(c, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reports"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fail(c, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fail(c, err)
	}

	for i, h := range reportExportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, rp := range reports {
		filePath := ""
		if rp.FilePath != nil {
			filePath = *rp.FilePath
		}
		values := []any{rp.Date, rp.Summary, rp.ReportType, rp.Status, filePath, rp.CreatedAt}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "reports.xlsx"))
	return c.Send(buf.Bytes())
}
