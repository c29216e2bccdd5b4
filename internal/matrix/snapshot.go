package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// Snapshot builders. Each returns the complete desired contents of one
// worksheet, header row first. The saver hands these to the store with
// full-overwrite semantics, so a builder never has to diff.

// OptionRows: Key, Label, Image URLs (comma-space-joined).
func (s *Session) OptionRows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := [][]string{{"Key", "Label", "Image URLs"}}
	for _, key := range s.optionKeys {
		rows = append(rows, []string{key, s.labelOf(key), strings.Join(s.images[key], ", ")})
	}
	return rows
}

// SetupRows: Criteria, Weight.
func (s *Session) SetupRows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := [][]string{{"Criteria", "Weight"}}
	for _, crit := range s.criteria {
		w, ok := s.weights[crit]
		if !ok {
			w = defaultWeight
		}
		rows = append(rows, []string{crit, strconv.FormatFloat(w, 'f', -1, 64)})
	}
	return rows
}

// CommentRows: Criteria, Option (label), Comment. Empty comments are
// not written.
func (s *Session) CommentRows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := [][]string{{"Criteria", "Option", "Comment"}}
	for _, crit := range s.criteria {
		for _, key := range s.optionKeys {
			if c, ok := s.comments[CommentKey{Criterion: crit, Option: key}]; ok {
				rows = append(rows, []string{crit, s.labelOf(key), c})
			}
		}
	}
	return rows
}

// OverviewRows: Criteria, then one column per option label with the
// 2-decimal reviewer mean. A pair with no recorded rating stays blank;
// the neutral-3 leniency applies to scoring, not to the record of what
// was observed.
func (s *Session) OverviewRows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	header := []string{"Criteria"}
	for _, key := range s.optionKeys {
		header = append(header, s.labelOf(key))
	}
	rows := [][]string{header}
	for _, crit := range s.criteria {
		row := []string{crit}
		for _, key := range s.optionKeys {
			sum, n := 0, 0
			for _, rev := range s.reviewers {
				if v, ok := s.ratings[RatingKey{Option: key, Reviewer: rev, Criterion: crit}]; ok {
					sum += v
					n++
				}
			}
			if n == 0 {
				row = append(row, "")
			} else {
				row = append(row, fmt.Sprintf("%.2f", float64(sum)/float64(n)))
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ScoreRows: Criteria, Person, Option (label), Score. One row per
// recorded rating.
func (s *Session) ScoreRows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := [][]string{{"Criteria", "Person", "Option", "Score"}}
	for _, key := range s.optionKeys {
		for _, crit := range s.criteria {
			for _, rev := range s.reviewers {
				if v, ok := s.ratings[RatingKey{Option: key, Reviewer: rev, Criterion: crit}]; ok {
					rows = append(rows, []string{crit, rev, s.labelOf(key), strconv.Itoa(v)})
				}
			}
		}
	}
	return rows
}
