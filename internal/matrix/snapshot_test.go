package matrix

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decision-matrix/internal/sheets"
)

// memStore is an in-memory sheets.Store for tests.
type memStore struct {
	mu     sync.Mutex
	tables map[string][][]string
	writes int
	fail   bool
}

func newMemStore() *memStore {
	return &memStore{tables: make(map[string][][]string)}
}

func (m *memStore) ReadAll(ctx context.Context, sheet string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errors.New("store unavailable")
	}
	rows := make([][]string, len(m.tables[sheet]))
	copy(rows, m.tables[sheet])
	return rows, nil
}

func (m *memStore) WriteAll(ctx context.Context, sheet string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("store unavailable")
	}
	m.tables[sheet] = rows
	m.writes++
	return nil
}

func ratedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(reviewers)
	require.NoError(t, s.SetOptionCount(2))
	require.NoError(t, s.SetLabel("Option A", "Beach parcel"))
	require.NoError(t, s.AddCriterion("Price"))
	require.NoError(t, s.AddCriterion("Road access"))
	require.NoError(t, s.SetWeight("Price", 2.0))
	require.NoError(t, s.SetRating("Maya", "Option A", "Price", 4))
	require.NoError(t, s.SetRating("Mike", "Option A", "Price", 2))
	require.NoError(t, s.SetComment("Price", "Option A", "negotiable"))
	require.NoError(t, s.AddImageURL("Option A", "http://assets/land/a.jpg"))
	require.NoError(t, s.AddImageURL("Option A", "http://assets/land/b.jpg"))
	return s
}

func TestOptionRows(t *testing.T) {
	s := ratedSession(t)
	rows := s.OptionRows()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Key", "Label", "Image URLs"}, rows[0])
	assert.Equal(t, []string{"Option A", "Beach parcel", "http://assets/land/a.jpg, http://assets/land/b.jpg"}, rows[1])
	assert.Equal(t, []string{"Option B", "Option B", ""}, rows[2])
}

func TestSetupRows(t *testing.T) {
	s := ratedSession(t)
	rows := s.SetupRows()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Criteria", "Weight"}, rows[0])
	assert.Equal(t, []string{"Price", "2"}, rows[1])
	assert.Equal(t, []string{"Road access", "1"}, rows[2], "unset weight persists as the default")
}

func TestCommentRowsUseLabels(t *testing.T) {
	s := ratedSession(t)
	rows := s.CommentRows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Criteria", "Option", "Comment"}, rows[0])
	assert.Equal(t, []string{"Price", "Beach parcel", "negotiable"}, rows[1])
}

func TestOverviewRowsBlankWhenUnrated(t *testing.T) {
	s := ratedSession(t)
	rows := s.OverviewRows()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Criteria", "Beach parcel", "Option B"}, rows[0])
	assert.Equal(t, []string{"Price", "3.00", ""}, rows[1])
	assert.Equal(t, []string{"Road access", "", ""}, rows[2])
}

func TestScoreRows(t *testing.T) {
	s := ratedSession(t)
	rows := s.ScoreRows()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Criteria", "Person", "Option", "Score"}, rows[0])
	assert.Equal(t, []string{"Price", "Maya", "Beach parcel", "4"}, rows[1])
	assert.Equal(t, []string{"Price", "Mike", "Beach parcel", "2"}, rows[2])
}

func TestOptionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s := ratedSession(t)

	require.NoError(t, store.WriteAll(ctx, sheets.Options, s.OptionRows()))
	require.NoError(t, store.WriteAll(ctx, sheets.Setup, s.SetupRows()))
	require.NoError(t, store.WriteAll(ctx, sheets.Comments, s.CommentRows()))
	require.NoError(t, store.WriteAll(ctx, sheets.Scores, s.ScoreRows()))

	seeded, warnings := Seed(ctx, store, reviewers)
	assert.Empty(t, warnings)

	want := s.View()
	got := seeded.View()
	require.Len(t, got.Options, len(want.Options))
	for i := range want.Options {
		assert.Equal(t, want.Options[i].Key, got.Options[i].Key)
		assert.Equal(t, want.Options[i].Label, got.Options[i].Label)
		assert.ElementsMatch(t, want.Options[i].ImageURLs, got.Options[i].ImageURLs)
	}
	assert.Equal(t, want.Criteria, got.Criteria)
	assert.Equal(t, want.Ratings, got.Ratings)
	assert.Equal(t, want.Comments, got.Comments)
	assert.Equal(t, s.Ranked(), seeded.Ranked(), "a reseeded session must rank identically")
}

func TestSeedDegradesToDefaults(t *testing.T) {
	store := newMemStore()
	store.fail = true

	s, warnings := Seed(context.Background(), store, reviewers)
	require.NotNil(t, s)
	assert.Len(t, warnings, 4, "every failed worksheet load is reported")
	assert.Len(t, s.View().Options, 3, "default option count applies")
}

func TestSeedDropsMalformedRows(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	require.NoError(t, store.WriteAll(ctx, sheets.Options, [][]string{
		{"Key", "Label", "Image URLs"},
		{"Option A", "Beach parcel", ""},
	}))
	require.NoError(t, store.WriteAll(ctx, sheets.Setup, [][]string{
		{"Criteria", "Weight"},
		{"Price", "not-a-number"},
		{"", "2"},
	}))
	require.NoError(t, store.WriteAll(ctx, sheets.Scores, [][]string{
		{"Criteria", "Person", "Option", "Score"},
		{"Price", "Nobody", "Beach parcel", "4"},
		{"Price", "Maya", "Unknown parcel", "4"},
		{"Price", "Maya", "Beach parcel", "bad"},
		{"Price", "Maya", "Beach parcel", "4"},
	}))

	s, _ := Seed(ctx, store, reviewers)
	v := s.View()
	require.Len(t, v.Criteria, 1)
	assert.Equal(t, 1.0, v.Criteria[0].Weight, "unparseable weight falls back to default")
	require.Len(t, v.Ratings, 1, "only the well-formed score row survives")
	assert.Equal(t, RatingState{Reviewer: "Maya", Option: "Option A", Criterion: "Price", Score: 4}, v.Ratings[0])
}

func TestSaverSkipsUnchangedTables(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	sv := NewSaver(store)
	s := ratedSession(t)

	first := sv.SaveAll(ctx, s)
	require.Len(t, first, 5)
	for _, st := range first {
		assert.Equal(t, "saved", st.Status, st.Table)
	}
	writes := store.writes

	second := sv.SaveAll(ctx, s)
	for _, st := range second {
		assert.Equal(t, "skipped", st.Status, st.Table)
	}
	assert.Equal(t, writes, store.writes, "no store traffic for an unchanged snapshot")

	require.NoError(t, s.SetRating("Maya", "Option B", "Price", 5))
	third := sv.SaveAll(ctx, s)
	byTable := map[string]string{}
	for _, st := range third {
		byTable[st.Table] = st.Status
	}
	assert.Equal(t, "skipped", byTable[sheets.Options])
	assert.Equal(t, "skipped", byTable[sheets.Setup])
	assert.Equal(t, "saved", byTable[sheets.Overview])
	assert.Equal(t, "saved", byTable[sheets.Scores])
}

func TestSaverSkipsHeaderOnlySparseTables(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	sv := NewSaver(store)
	s := NewSession(reviewers) // no criteria, comments or scores yet

	statuses := sv.SaveAll(ctx, s)
	byTable := map[string]string{}
	for _, st := range statuses {
		byTable[st.Table] = st.Status
	}
	assert.Equal(t, "saved", byTable[sheets.Options])
	assert.Equal(t, "saved", byTable[sheets.Setup])
	assert.Equal(t, "empty", byTable[sheets.Comments])
	assert.Equal(t, "empty", byTable[sheets.Overview])
	assert.Equal(t, "empty", byTable[sheets.Scores])
}

func TestSaverRetriesAfterWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	sv := NewSaver(store)
	s := ratedSession(t)

	store.fail = true
	failed := sv.SaveAll(ctx, s)
	for _, st := range failed {
		assert.Contains(t, st.Status, "error", st.Table)
	}

	// A failed write must not poison the guard.
	store.fail = false
	retried := sv.SaveAll(ctx, s)
	for _, st := range retried {
		assert.Equal(t, "saved", st.Status, st.Table)
	}
}
