// Package storage persists extracted listing records. The only format is a
// flat UTF-8 CSV with a header row; column order matches
// models.Columns and is a stable contract with downstream consumers.
package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/use-agent/rfqharvest/models"
)

// WriteCSV writes the records to path, header first, one row per record in
// extraction order. An existing file is truncated.
func WriteCSV(path string, records []models.ListingRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return models.NewScrapeError(
			models.ErrCodeOutputWrite,
			fmt.Sprintf("create %s", path),
			err,
		)
	}
	defer file.Close()

	if err := writeRows(file, records); err != nil {
		return models.NewScrapeError(
			models.ErrCodeOutputWrite,
			fmt.Sprintf("write %s", path),
			err,
		)
	}
	return nil
}

func writeRows(w io.Writer, records []models.ListingRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(models.Columns()); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rec.Row()); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
