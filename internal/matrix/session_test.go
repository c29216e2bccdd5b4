package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionKeysArePositional(t *testing.T) {
	s := NewSession(reviewers)
	require.NoError(t, s.SetOptionCount(4))
	v := s.View()
	require.Len(t, v.Options, 4)
	assert.Equal(t, "Option A", v.Options[0].Key)
	assert.Equal(t, "Option D", v.Options[3].Key)
}

func TestSetOptionCountBounds(t *testing.T) {
	s := NewSession(reviewers)
	assert.Error(t, s.SetOptionCount(0))
	assert.Error(t, s.SetOptionCount(11))
	assert.NoError(t, s.SetOptionCount(1))
	assert.NoError(t, s.SetOptionCount(10))
}

func TestRelabelKeepsKeyAndRatings(t *testing.T) {
	s := NewSession(reviewers)
	require.NoError(t, s.AddCriterion("Price"))
	require.NoError(t, s.SetRating("Maya", "Option A", "Price", 4))

	require.NoError(t, s.SetLabel("Option A", "Beach parcel"))
	v := s.View()
	assert.Equal(t, "Option A", v.Options[0].Key)
	assert.Equal(t, "Beach parcel", v.Options[0].Label)
	require.Len(t, v.Ratings, 1)
	assert.Equal(t, "Option A", v.Ratings[0].Option, "rating stays keyed by option key across relabel")
}

func TestLabelFallsBackToKey(t *testing.T) {
	s := NewSession(reviewers)
	require.NoError(t, s.SetLabel("Option A", "  "))
	assert.Equal(t, "Option A", s.View().Options[0].Label)
	assert.Error(t, s.SetLabel("Option Z", "nope"))
}

func TestAddCriterionDuplicateIsNoop(t *testing.T) {
	s := NewSession(reviewers)
	require.NoError(t, s.AddCriterion("Price"))
	require.NoError(t, s.AddCriterion("Price"))
	assert.Len(t, s.View().Criteria, 1)
	assert.Error(t, s.AddCriterion("   "))
}

func TestRemoveCriterionDropsContribution(t *testing.T) {
	s := NewSession(reviewers)
	require.NoError(t, s.SetOptionCount(1))
	require.NoError(t, s.AddCriterion("Price"))
	require.NoError(t, s.AddCriterion("View"))
	require.NoError(t, s.SetRating("Maya", "Option A", "Price", 5))
	require.NoError(t, s.SetRating("Mike", "Option A", "Price", 5))
	require.NoError(t, s.SetRating("Maya", "Option A", "View", 1))
	require.NoError(t, s.SetRating("Mike", "Option A", "View", 1))

	require.NoError(t, s.RemoveCriterion("View"))
	ranked := s.Ranked()
	require.Len(t, ranked, 1)
	assert.Equal(t, 5.0, ranked[0].Score, "removed criterion must contribute nothing")

	assert.Error(t, s.RemoveCriterion("View"))
}

func TestSetWeightValidation(t *testing.T) {
	s := NewSession(reviewers)
	require.NoError(t, s.AddCriterion("Price"))
	assert.NoError(t, s.SetWeight("Price", 0))
	assert.NoError(t, s.SetWeight("Price", 5))
	assert.Error(t, s.SetWeight("Price", -0.1))
	assert.Error(t, s.SetWeight("Price", 5.1))
	assert.Error(t, s.SetWeight("Acreage", 1))
}

func TestSetRatingValidation(t *testing.T) {
	s := NewSession(reviewers)
	require.NoError(t, s.AddCriterion("Price"))

	assert.Error(t, s.SetRating("Maya", "Option A", "Price", 0))
	assert.Error(t, s.SetRating("Maya", "Option A", "Price", 6))
	assert.Error(t, s.SetRating("Intruder", "Option A", "Price", 3))
	assert.Error(t, s.SetRating("Maya", "Option Z", "Price", 3))
	assert.Error(t, s.SetRating("Maya", "Option A", "Acreage", 3))
	assert.NoError(t, s.SetRating("Maya", "Option A", "Price", 1))
	assert.NoError(t, s.SetRating("Maya", "Option A", "Price", 5))
}

func TestCommentsScopedPerCriterionAndOption(t *testing.T) {
	s := NewSession(reviewers)
	require.NoError(t, s.SetOptionCount(2))
	require.NoError(t, s.AddCriterion("Price"))

	require.NoError(t, s.SetComment("Price", "Option A", "negotiable"))
	require.NoError(t, s.SetComment("Price", "Option B", "firm"))
	assert.Len(t, s.View().Comments, 2)

	// Empty comment clears the entry.
	require.NoError(t, s.SetComment("Price", "Option B", ""))
	v := s.View()
	require.Len(t, v.Comments, 1)
	assert.Equal(t, "Option A", v.Comments[0].Option)
}

func TestAddImageURLDeduplicates(t *testing.T) {
	s := NewSession(reviewers)
	require.NoError(t, s.AddImageURL("Option A", "http://assets/land/a.jpg"))
	require.NoError(t, s.AddImageURL("Option A", "http://assets/land/b.jpg"))
	require.NoError(t, s.AddImageURL("Option A", "http://assets/land/a.jpg"))

	v := s.View()
	assert.Equal(t, []string{"http://assets/land/a.jpg", "http://assets/land/b.jpg"}, v.Options[0].ImageURLs)

	assert.True(t, s.HasImageNamed("Option A", "a.jpg"))
	assert.False(t, s.HasImageNamed("Option A", "c.jpg"))
	assert.Error(t, s.AddImageURL("Option Z", "http://assets/land/z.jpg"))
}
