package models

import (
	"fmt"
	"io"
	"sort"

	"gorm.io/gorm"
)

/*
Column mismatch report

Lists columns that exist in the database but are not mapped by a model
struct, which usually means a manual migration drifted from the code.

Run it with GENERATE_COLUMN_REPORT=true. Example output:

	=== COLUMN MISMATCH REPORT ===
	--- Table: posts ---
	Found 1 columns not accounted for in model:
	  - legacy_tags

	--- Table: categories ---
	All columns are accounted for in the model.

	=== SUMMARY ===
	Total mismatched columns across all tables: 1
*/

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Post{},
		&PostTag{},
		&Comment{},
		&Like{},
	}
}

// Migrate creates or updates the tables for every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := backfillSearchText(db); err != nil {
		return fmt.Errorf("backfill search text: %w", err)
	}
	return nil
}

// backfillSearchText fills the search column for rows written before it existed.
func backfillSearchText(db *gorm.DB) error {
	var posts []Post
	err := db.Preload("Tags").
		Where("search_text = '' OR search_text IS NULL").
		Find(&posts).Error
	if err != nil {
		return err
	}
	for _, p := range posts {
		if err := db.Model(&Post{}).Where("id = ?", p.ID).UpdateColumn("search_text", p.searchText()).Error; err != nil {
			return err
		}
	}
	return nil
}

// GenerateColumnMismatchReport writes the report described above to w and
// returns the number of unmapped columns.
func GenerateColumnMismatchReport(db *gorm.DB, w io.Writer) (int, error) {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	totalMismatches := 0
	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return totalMismatches, fmt.Errorf("parse model %T: %w", model, err)
		}
		tableName := stmt.Schema.Table

		fmt.Fprintf(w, "\n--- Table: %s ---\n", tableName)

		if !db.Migrator().HasTable(tableName) {
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
			continue
		}

		dbColumns, err := getTableColumns(db, model)
		if err != nil {
			return totalMismatches, err
		}

		mismatches := findColumnMismatches(dbColumns, stmt.Schema.DBNames)
		if len(mismatches) == 0 {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
			continue
		}

		fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(mismatches))
		for _, col := range mismatches {
			fmt.Fprintf(w, "  - %s\n", col)
		}
		totalMismatches += len(mismatches)
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", totalMismatches)
	return totalMismatches, nil
}

func getTableColumns(db *gorm.DB, model interface{}) ([]string, error) {
	columnTypes, err := db.Migrator().ColumnTypes(model)
	if err != nil {
		return nil, fmt.Errorf("read columns for %T: %w", model, err)
	}

	columns := make([]string, 0, len(columnTypes))
	for _, ct := range columnTypes {
		columns = append(columns, ct.Name())
	}
	return columns, nil
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	sort.Strings(mismatches)
	return mismatches
}
