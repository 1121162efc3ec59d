package models

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"gorm.io/gorm"
)

/*
Column Mismatch Report Usage:

The portfolio tables usually predate this service, so the report lists database
columns that no Go model field maps to, plus model columns the table lacks.

To generate the report:

1. Set the environment variable: SCHEMA_REPORT=true
2. Run the application: go run .

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: users ---
Found 1 columns not accounted for in model:
  - created_at

--- Table: videos ---
All columns are accounted for in the model.

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// All returns every model owned by the service, parents before children.
func All() []interface{} {
	return []interface{}{
		&Project{},
		&ProjectImage{},
		&ScrollImage{},
		&Video{},
		&User{},
	}
}

// Migrate creates missing tables, columns and indexes. Existing columns are never dropped.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto-migrate models: %w", err)
	}
	return nil
}

// TableReport describes drift between one table and its model.
type TableReport struct {
	Table         string
	Exists        bool
	Unmapped      []string // in the database, not in the model
	MissingInBase []string // in the model, not in the database
}

// ColumnMismatchReport compares every model against the live schema.
func ColumnMismatchReport(db *gorm.DB) ([]TableReport, error) {
	var reports []TableReport

	for _, model := range All() {
		tableName, err := tableNameOf(db, model)
		if err != nil {
			return nil, err
		}

		report := TableReport{Table: tableName}
		if !db.Migrator().HasTable(model) {
			reports = append(reports, report)
			continue
		}
		report.Exists = true

		dbColumns, err := getTableColumns(db, model)
		if err != nil {
			return nil, fmt.Errorf("error getting columns for table %s: %w", tableName, err)
		}

		modelFields := getModelFields(model)
		report.Unmapped = findColumnMismatches(dbColumns, modelFields)
		report.MissingInBase = findColumnMismatches(modelFields, dbColumns)
		reports = append(reports, report)
	}

	return reports, nil
}

// PrintColumnMismatchReport writes the report and returns the number of mismatched columns.
func PrintColumnMismatchReport(db *gorm.DB, w io.Writer) (int, error) {
	reports, err := ColumnMismatchReport(db)
	if err != nil {
		return 0, err
	}

	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")
	totalMismatches := 0
	for _, report := range reports {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", report.Table)
		if !report.Exists {
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
			continue
		}

		if len(report.Unmapped) == 0 && len(report.MissingInBase) == 0 {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
			continue
		}
		if len(report.Unmapped) > 0 {
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(report.Unmapped))
			for _, col := range report.Unmapped {
				fmt.Fprintf(w, "  - %s\n", col)
			}
		}
		if len(report.MissingInBase) > 0 {
			fmt.Fprintf(w, "Found %d model columns missing from the table:\n", len(report.MissingInBase))
			for _, col := range report.MissingInBase {
				fmt.Fprintf(w, "  - %s\n", col)
			}
		}
		totalMismatches += len(report.Unmapped) + len(report.MissingInBase)
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", totalMismatches)
	return totalMismatches, nil
}

func tableNameOf(db *gorm.DB, model interface{}) (string, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "", fmt.Errorf("parse model %T: %w", model, err)
	}
	return stmt.Schema.Table, nil
}

// getTableColumns retrieves column names through the dialect's migrator
func getTableColumns(db *gorm.DB, model interface{}) ([]string, error) {
	columnTypes, err := db.Migrator().ColumnTypes(model)
	if err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(columnTypes))
	for _, ct := range columnTypes {
		columns = append(columns, ct.Name())
	}
	return columns, nil
}

// getModelFields extracts column names from a Go struct using reflection
func getModelFields(model interface{}) []string {
	var fields []string
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Skip embedded structs (foreign key relationships)
		if field.Anonymous {
			continue
		}

		// Get the GORM column name from the tag
		gormTag := field.Tag.Get("gorm")
		if gormTag != "" {
			columnName := extractColumnNameFromGormTag(gormTag)
			if columnName != "" {
				fields = append(fields, columnName)
			}
		}
	}

	return fields
}

// extractColumnNameFromGormTag extracts the column name from a GORM tag
func extractColumnNameFromGormTag(gormTag string) string {
	parts := strings.Split(gormTag, ";")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

// findColumnMismatches returns the entries of have that are absent from known, sorted
func findColumnMismatches(have, known []string) []string {
	knownSet := make(map[string]bool, len(known))
	for _, field := range known {
		knownSet[field] = true
	}

	var mismatches []string
	for _, col := range have {
		if !knownSet[col] {
			mismatches = append(mismatches, col)
		}
	}

	sort.Strings(mismatches)
	return mismatches
}
