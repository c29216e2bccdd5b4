package matrix

import (
	"context"
	"log"

	"decision-matrix/internal/changeguard"
	"decision-matrix/internal/sheets"
)

// TableStatus reports the outcome of one worksheet in a save pass.
type TableStatus struct {
	Table  string `json:"table"`
	Status string `json:"status"`
}

// Saver writes the complete snapshot of every worksheet, but only when
// the guard says its content changed since the last confirmed write.
// A failed table is reported and the pass moves on; the next save will
// retry it because the digest was never committed.
type Saver struct {
	Store sheets.Store
	Guard *changeguard.Guard
}

func NewSaver(store sheets.Store) *Saver {
	return &Saver{Store: store, Guard: changeguard.New()}
}

func (sv *Saver) SaveAll(ctx context.Context, s *Session) []TableStatus {
	snaps := []struct {
		label  string
		rows   [][]string
		sparse bool // skip entirely when only the header remains
	}{
		{sheets.Options, s.OptionRows(), false},
		{sheets.Setup, s.SetupRows(), false},
		{sheets.Comments, s.CommentRows(), true},
		{sheets.Overview, s.OverviewRows(), true},
		{sheets.Scores, s.ScoreRows(), true},
	}
	out := make([]TableStatus, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, sv.save(ctx, snap.label, snap.rows, snap.sparse))
	}
	return out
}

func (sv *Saver) save(ctx context.Context, label string, rows [][]string, sparse bool) TableStatus {
	if sparse && len(rows) <= 1 {
		return TableStatus{Table: label, Status: "empty"}
	}
	ok, digest, err := sv.Guard.ShouldPersist(label, rows)
	if err != nil {
		return TableStatus{Table: label, Status: "error: " + err.Error()}
	}
	if !ok {
		return TableStatus{Table: label, Status: "skipped"}
	}
	if err := sv.Store.WriteAll(ctx, label, rows); err != nil {
		log.Printf("save %s failed: %v", label, err)
		return TableStatus{Table: label, Status: "error: " + err.Error()}
	}
	sv.Guard.Commit(label, digest)
	return TableStatus{Table: label, Status: "saved"}
}
