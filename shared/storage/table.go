package storage

import (
	"encoding/csv"
	"fmt"
	"os"

	"adlens/internal/models"
)

// LoadTable reads a CSV snapshot into memory. A missing file is not an
// error: it returns (nil, nil) so the caller can degrade to an empty
// stage result, per the pipeline's missing-input policy.
func LoadTable(path string) (*models.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open table %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse table %s: %w", path, err)
	}
	if len(rows) == 0 {
		return &models.Table{}, nil
	}

	return &models.Table{Headers: rows[0], Rows: rows[1:]}, nil
}
