package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/podium/internal/domain/medal"
)

// WriteCSV writes rows with the required header. Rows with an empty Medal are
// written with the NA marker.
func WriteCSV(w io.Writer, rows []medal.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RequiredColumns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		m := r.Medal
		if m == "" {
			m = "NA"
		}
		if err := cw.Write([]string{strconv.Itoa(r.Year), r.Sport, r.Team, r.Sex, m}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
