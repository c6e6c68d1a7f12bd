package employees

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kioskhr_backend/internals/features/employees/directory/model"
)

//go:embed data_employees.json
var defaultEmployees []byte

type EmployeeSeed struct {
	EmployeeCode    string  `json:"employee_code"`
	Name            string  `json:"name"`
	Role            string  `json:"role"`
	HourlyRate      float64 `json:"hourly_rate"`
	MaxHoursPerWeek int     `json:"max_hours_per_week"`
	Location        string  `json:"location"`
}

func SeedEmployees(ctx context.Context, db *gorm.DB) error {
	return SeedEmployeesFromJSON(ctx, db, defaultEmployees)
}

// SeedEmployeesFromJSON inserts by employee_code; existing codes are left untouched.
func SeedEmployeesFromJSON(ctx context.Context, db *gorm.DB, raw []byte) error {
	var inputs []EmployeeSeed
	if err := sonic.Unmarshal(raw, &inputs); err != nil {
		return fmt.Errorf("decode employee seeds: %w", err)
	}

	for _, in := range inputs {
		row := model.EmployeeModel{
			EmployeeCode:    strings.TrimSpace(in.EmployeeCode),
			Name:            strings.TrimSpace(in.Name),
			HourlyRate:      in.HourlyRate,
			MaxHoursPerWeek: in.MaxHoursPerWeek,
		}
		if in.Role != "" {
			role := in.Role
			row.Role = &role
		}
		if in.Location != "" {
			loc := in.Location
			row.Location = &loc
		}

		res := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "employee_code"}}, DoNothing: true}).
			Create(&row)
		if res.Error != nil {
			return fmt.Errorf("seed employee %s: %w", in.EmployeeCode, res.Error)
		}
		if res.RowsAffected > 0 {
			log.Printf("[SEED] employee %s (%s) created", row.EmployeeCode, row.Name)
		}
	}
	return nil
}
