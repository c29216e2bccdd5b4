package sheets

import "context"

// Worksheet names. The column shapes are fixed: see the snapshot
// builders in internal/matrix.
const (
	Options  = "options"
	Setup    = "setup"
	Comments = "comments"
	Overview = "Overview"
	Scores   = "Full Scores"
)

// Store is a worksheet-style row store. Rows are plain cell lists with
// the header in row zero. WriteAll has full-overwrite semantics: the
// previous contents of the sheet are gone after a successful call.
type Store interface {
	ReadAll(ctx context.Context, sheet string) ([][]string, error)
	WriteAll(ctx context.Context, sheet string, rows [][]string) error
}

// Records returns the rows below the header keyed by header cell, the
// way a spreadsheet client reads a worksheet. Cells missing from a
// short row come back empty rather than failing.
func Records(rows [][]string) []map[string]string {
	if len(rows) < 2 {
		return nil
	}
	header := rows[0]
	recs := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		recs = append(recs, rec)
	}
	return recs
}
