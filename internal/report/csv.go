package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/dbmapper/dbmapper/internal/types"
)

var csvHeader = []string{"id", "type", "file", "line", "detector", "provider", "framework", "sql_type", "confidence", "fingerprint", "evidence", "description"}

// WriteCSV writes findings as RFC 4180 CSV with a header row. Evidence
// snippets are joined with "; " inside a single column.
func WriteCSV(w io.Writer, findings []types.Finding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range findings {
		row := []string{
			f.ID,
			string(f.Type),
			f.Path,
			strconv.Itoa(f.Line),
			f.Detector,
			f.Provider,
			f.Framework,
			f.SQLType,
			strconv.FormatFloat(f.Confidence, 'f', 2, 64),
			f.Fingerprint,
			strings.Join(f.Evidence, "; "),
			f.Description,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
