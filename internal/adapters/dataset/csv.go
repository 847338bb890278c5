package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/podium/internal/domain/medal"
)

// LoadCSVFile reads a medal dataset from the CSV file at path.
func LoadCSVFile(ctx context.Context, path string) (*medal.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(ctx, f)
}

// ReadCSV parses a medal dataset. Header names are matched
// case-insensitively and extra columns are ignored. Rows without a medal are
// dropped; a medal row with an unparseable year fails the whole load.
func ReadCSV(ctx context.Context, r io.Reader) (*medal.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []medal.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load cancelled: %w", err)
		}

		line, _ := reader.FieldPos(0)
		cell := func(col string) string {
			i := idx[col]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}
		rec, ok, err := parseRecord(cell(ColYear), cell(ColSport), cell(ColTeam), cell(ColSex), cell(ColMedal),
			fmt.Sprintf("line %d", line))
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, rec)
		}
	}
	return medal.NewDataset(records), nil
}

// columnIndex maps each required column to its position in header.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(RequiredColumns()))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		for _, col := range RequiredColumns() {
			if strings.EqualFold(h, col) {
				if _, dup := idx[col]; !dup {
					idx[col] = i
				}
			}
		}
	}
	var missing []string
	for _, col := range RequiredColumns() {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}
