package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteCSV mirrors the table into a CSV file at path.
func (t Table) WriteCSV(path string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		padded := row
		if len(padded) < len(t.Headers) {
			padded = append(append([]string(nil), row...), make([]string, len(t.Headers)-len(row))...)
		}
		if err := writer.Write(padded); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
