// Package matrix holds the decision-matrix session state and the
// weighted scoring over it: two fixed reviewers rate up to ten land
// options against an ordered, weighted criteria list.
package matrix

import (
	"fmt"
	"strings"
	"sync"
)

const (
	MinOptions = 1
	MaxOptions = 10

	MinRating = 1
	MaxRating = 5

	MinWeight = 0.0
	MaxWeight = 5.0

	// defaultWeight applies to criteria without a recorded weight.
	defaultWeight = 1.0
	// neutralRating substitutes for a pair nobody has rated yet, so an
	// incomplete form still produces a ranking.
	neutralRating = 3.0

	defaultOptionCount = 3
)

// RatingKey addresses one reviewer's integer rating.
type RatingKey struct {
	Option    string
	Reviewer  string
	Criterion string
}

// CommentKey addresses the free text for one criterion/option pair.
type CommentKey struct {
	Criterion string
	Option    string
}

// Session is the per-process state bag behind the form. Option keys
// are positional ("Option A", "Option B", ...) and stable across label
// edits, so persisted ratings survive a relabel.
type Session struct {
	mu sync.Mutex

	reviewers  []string
	optionKeys []string
	labels     map[string]string
	images     map[string][]string
	criteria   []string
	weights    map[string]float64
	ratings    map[RatingKey]int
	comments   map[CommentKey]string
}

func NewSession(reviewers []string) *Session {
	s := &Session{
		reviewers: append([]string(nil), reviewers...),
		labels:    make(map[string]string),
		images:    make(map[string][]string),
		weights:   make(map[string]float64),
		ratings:   make(map[RatingKey]int),
		comments:  make(map[CommentKey]string),
	}
	s.setOptionCount(defaultOptionCount)
	return s
}

// OptionKey returns the positional key for index i: "Option A" for 0.
func OptionKey(i int) string {
	return fmt.Sprintf("Option %c", 'A'+i)
}

func (s *Session) SetOptionCount(n int) error {
	if n < MinOptions || n > MaxOptions {
		return fmt.Errorf("option count must be between %d and %d, got %d", MinOptions, MaxOptions, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setOptionCount(n)
	return nil
}

func (s *Session) setOptionCount(n int) {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = OptionKey(i)
	}
	s.optionKeys = keys
}

func (s *Session) SetLabel(key, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasOption(key) {
		return fmt.Errorf("unknown option %q", key)
	}
	if label = strings.TrimSpace(label); label == "" {
		delete(s.labels, key)
		return nil
	}
	s.labels[key] = label
	return nil
}

func (s *Session) AddCriterion(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("criterion name must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.criteria {
		if c == name {
			return nil
		}
	}
	s.criteria = append(s.criteria, name)
	return nil
}

// RemoveCriterion drops the criterion from the active list. Its
// contribution to every total disappears on the next computation;
// recorded ratings stay until the next snapshot overwrites them.
func (s *Session) RemoveCriterion(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.criteria {
		if c == name {
			s.criteria = append(s.criteria[:i], s.criteria[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown criterion %q", name)
}

func (s *Session) SetWeight(criterion string, w float64) error {
	if w < MinWeight || w > MaxWeight {
		return fmt.Errorf("weight must be between %.1f and %.1f, got %g", MinWeight, MaxWeight, w)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasCriterion(criterion) {
		return fmt.Errorf("unknown criterion %q", criterion)
	}
	s.weights[criterion] = w
	return nil
}

func (s *Session) SetRating(reviewer, option, criterion string, score int) error {
	if score < MinRating || score > MaxRating {
		return fmt.Errorf("rating must be between %d and %d, got %d", MinRating, MaxRating, score)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasReviewer(reviewer) {
		return fmt.Errorf("unknown reviewer %q", reviewer)
	}
	if !s.hasOption(option) {
		return fmt.Errorf("unknown option %q", option)
	}
	if !s.hasCriterion(criterion) {
		return fmt.Errorf("unknown criterion %q", criterion)
	}
	s.ratings[RatingKey{Option: option, Reviewer: reviewer, Criterion: criterion}] = score
	return nil
}

func (s *Session) SetComment(criterion, option, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasOption(option) {
		return fmt.Errorf("unknown option %q", option)
	}
	if !s.hasCriterion(criterion) {
		return fmt.Errorf("unknown criterion %q", criterion)
	}
	key := CommentKey{Criterion: criterion, Option: option}
	if comment == "" {
		delete(s.comments, key)
		return nil
	}
	s.comments[key] = comment
	return nil
}

// AddImageURL appends a stored-object URL to the option's ordered,
// de-duplicated list.
func (s *Session) AddImageURL(option, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasOption(option) {
		return fmt.Errorf("unknown option %q", option)
	}
	for _, u := range s.images[option] {
		if u == url {
			return nil
		}
	}
	s.images[option] = append(s.images[option], url)
	return nil
}

// HasImageNamed reports whether a file of that name was already
// uploaded for the option. Upload handlers use it to skip duplicates
// instead of re-uploading.
func (s *Session) HasImageNamed(option, filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.images[option] {
		if strings.Contains(u, filename) {
			return true
		}
	}
	return false
}

func (s *Session) HasOption(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasOption(key)
}

func (s *Session) hasOption(key string) bool {
	for _, k := range s.optionKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (s *Session) hasCriterion(name string) bool {
	for _, c := range s.criteria {
		if c == name {
			return true
		}
	}
	return false
}

func (s *Session) hasReviewer(name string) bool {
	for _, r := range s.reviewers {
		if r == name {
			return true
		}
	}
	return false
}

// labelOf falls back to the key itself when no label was set.
func (s *Session) labelOf(key string) string {
	if l, ok := s.labels[key]; ok {
		return l
	}
	return key
}

// keyForLabel maps a display label back to its option key. First match
// wins when labels collide.
func (s *Session) keyForLabel(label string) (string, bool) {
	for _, k := range s.optionKeys {
		if s.labelOf(k) == label {
			return k, true
		}
	}
	return "", false
}

type OptionState struct {
	Key       string
	Label     string
	ImageURLs []string
}

type CriterionState struct {
	Name   string
	Weight float64
}

type RatingState struct {
	Reviewer  string
	Option    string
	Criterion string
	Score     int
}

type CommentState struct {
	Criterion string
	Option    string
	Comment   string
}

// View is a consistent copy of the session for rendering.
type View struct {
	Reviewers []string
	Options   []OptionState
	Criteria  []CriterionState
	Ratings   []RatingState
	Comments  []CommentState
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{Reviewers: append([]string(nil), s.reviewers...)}
	for _, key := range s.optionKeys {
		v.Options = append(v.Options, OptionState{
			Key:       key,
			Label:     s.labelOf(key),
			ImageURLs: append([]string(nil), s.images[key]...),
		})
	}
	for _, crit := range s.criteria {
		w, ok := s.weights[crit]
		if !ok {
			w = defaultWeight
		}
		v.Criteria = append(v.Criteria, CriterionState{Name: crit, Weight: w})
	}
	for _, key := range s.optionKeys {
		for _, crit := range s.criteria {
			for _, rev := range s.reviewers {
				if score, ok := s.ratings[RatingKey{Option: key, Reviewer: rev, Criterion: crit}]; ok {
					v.Ratings = append(v.Ratings, RatingState{Reviewer: rev, Option: key, Criterion: crit, Score: score})
				}
			}
			if c, ok := s.comments[CommentKey{Criterion: crit, Option: key}]; ok {
				v.Comments = append(v.Comments, CommentState{Criterion: crit, Option: key, Comment: c})
			}
		}
	}
	return v
}
