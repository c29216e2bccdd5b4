package sheets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"decision-matrix/internal/db"
)

// PG stores worksheet rows in the sheet_rows table, one jsonb cell
// array per row.
type PG struct {
	DB *sqlx.DB
}

func NewPG(dbx *sqlx.DB) *PG {
	return &PG{DB: dbx}
}

func (p *PG) ReadAll(ctx context.Context, sheet string) ([][]string, error) {
	var raw [][]byte
	if err := p.DB.SelectContext(ctx, &raw, `select cells from sheet_rows where sheet=$1 order by seq`, sheet); err != nil {
		return nil, fmt.Errorf("read %s: %w", sheet, err)
	}
	rows := make([][]string, 0, len(raw))
	for _, b := range raw {
		var cells []string
		if err := json.Unmarshal(b, &cells); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", sheet, err)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (p *PG) WriteAll(ctx context.Context, sheet string, rows [][]string) error {
	err := db.WithTx(ctx, p.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `delete from sheet_rows where sheet=$1`, sheet); err != nil {
			return err
		}
		for i, cells := range rows {
			b, err := json.Marshal(cells)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `insert into sheet_rows(sheet, seq, cells) values($1,$2,$3)`, sheet, i, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", sheet, err)
	}
	return nil
}
