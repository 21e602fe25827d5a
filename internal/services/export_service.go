package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/you/hrmportal/domain"
)

// DirectoryExporterImpl implements domain.DirectoryExporter using an
// xlsx workbook, one row per directory record.
type DirectoryExporterImpl struct{}

// NewDirectoryExporter creates a new directory exporter.
func NewDirectoryExporter() domain.DirectoryExporter {
	return &DirectoryExporterImpl{}
}

const exportSheet = "Employees"

var exportHeaders = []string{"Employee ID", "Name", "Email", "Role", "Verification", "Active"}

// EmployeeWorkbook implements domain.DirectoryExporter
func (e *DirectoryExporterImpl) EmployeeWorkbook(employees []domain.Employee) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to create export sheet: %w", err)
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write export header: %w", err)
		}
	}

	for row, emp := range employees {
		active := "NO"
		if emp.IsActive {
			active = "YES"
		}
		values := []interface{}{
			emp.EmployeeID,
			emp.Name,
			emp.Email,
			string(emp.Role),
			string(emp.VerificationStatus),
			active,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write export row %d: %w", row+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export workbook: %w", err)
	}
	return buf.Bytes(), nil
}
