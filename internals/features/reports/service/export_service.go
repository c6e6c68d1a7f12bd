package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"kioskhr_backend/internals/features/reports/dto"
)

const summarySheet = "Summary"

var payrollHeader = []any{"Employee Code", "Name", "Hours", "Rate", "Amount"}

// PayrollXLSX renders the payroll rollup as a workbook: a summary sheet plus
// one sheet per period.
func (s *Service) PayrollXLSX(ctx context.Context, periods int) ([]byte, error) {
	rollup, err := s.Payroll(ctx, periods)
	if err != nil {
		return nil, err
	}
	return RenderPayrollXLSX(rollup)
}

func RenderPayrollXLSX(rollup []dto.PayrollPeriod) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(summarySheet, "A1", &[]any{"Period", "Start", "End", "Employees", "Total Hours", "Total Amount"}); err != nil {
		return nil, err
	}
	for i, p := range rollup {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{p.Period, p.Start, p.End, len(p.Employees), p.TotalHours, p.TotalAmount}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	for i, p := range rollup {
		name := fmt.Sprintf("P%d %s", i+1, p.Start)
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(name, "A1", &payrollHeader); err != nil {
			return nil, err
		}
		for j, line := range p.Employees {
			cell, _ := excelize.CoordinatesToCellName(1, j+2)
			row := []any{line.EmployeeCode, line.Name, line.Hours, line.Rate, line.Amount}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return nil, err
			}
		}
		totalCell, _ := excelize.CoordinatesToCellName(1, len(p.Employees)+2)
		totals := []any{"TOTAL", "", p.TotalHours, "", p.TotalAmount}
		if err := f.SetSheetRow(name, totalCell, &totals); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
