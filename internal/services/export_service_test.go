package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/you/hrmportal/domain"
)

func TestDirectoryExporterImpl_EmployeeWorkbook(t *testing.T) {
	exporter := NewDirectoryExporter()

	data, err := exporter.EmployeeWorkbook([]domain.Employee{
		{
			EmployeeID:         "EMP001",
			Name:               "Asha",
			Email:              "asha@example.com",
			Role:               domain.RoleEmployee,
			VerificationStatus: domain.VerificationApproved,
			IsActive:           true,
		},
		{
			EmployeeID:         "ADM001",
			Name:               "Ravi",
			Email:              "ravi@example.com",
			Role:               domain.RoleAdmin,
			VerificationStatus: domain.VerificationApproved,
			IsActive:           false,
		},
	})
	if err != nil {
		t.Fatalf("unexpected export error: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("expected readable workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Employees")
	if err != nil {
		t.Fatalf("expected Employees sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}

	header := rows[0]
	expected := []string{"Employee ID", "Name", "Email", "Role", "Verification", "Active"}
	for i, want := range expected {
		if i >= len(header) || header[i] != want {
			t.Errorf("header column %d: expected %q, got %v", i, want, header)
			break
		}
	}

	if rows[1][0] != "EMP001" || rows[1][5] != "YES" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
	if rows[2][0] != "ADM001" || rows[2][5] != "NO" {
		t.Errorf("unexpected second row: %v", rows[2])
	}
}

func TestDirectoryExporterImpl_EmptyDirectory(t *testing.T) {
	exporter := NewDirectoryExporter()

	data, err := exporter.EmployeeWorkbook(nil)
	if err != nil {
		t.Fatalf("unexpected export error: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("expected readable workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Employees")
	if err != nil {
		t.Fatalf("expected Employees sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected header only, got %d rows", len(rows))
	}
}
