package matrix

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"decision-matrix/internal/sheets"
)

// Seed rebuilds a session from the last persisted snapshot. Loading is
// total: a missing or unreadable worksheet degrades to defaults, a
// malformed row is dropped, and every such recovery comes back as a
// warning string for the caller to surface.
func Seed(ctx context.Context, store sheets.Store, reviewers []string) (*Session, []string) {
	s := NewSession(reviewers)
	var warnings []string
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		log.Println("seed:", msg)
		warnings = append(warnings, msg)
	}

	if rows, err := store.ReadAll(ctx, sheets.Options); err != nil {
		warn("could not load options: %v", err)
	} else if recs := sheets.Records(rows); len(recs) > 0 {
		n := len(recs)
		if n > MaxOptions {
			warn("options sheet has %d rows, keeping the first %d", n, MaxOptions)
			n = MaxOptions
		}
		s.mu.Lock()
		s.setOptionCount(n)
		s.mu.Unlock()
		for _, rec := range recs {
			key := rec["Key"]
			if !s.HasOption(key) {
				continue
			}
			_ = s.SetLabel(key, rec["Label"])
			for _, url := range strings.Split(rec["Image URLs"], ", ") {
				if url = strings.TrimSpace(url); url != "" {
					_ = s.AddImageURL(key, url)
				}
			}
		}
	}

	if rows, err := store.ReadAll(ctx, sheets.Setup); err != nil {
		warn("could not load setup: %v", err)
	} else {
		for _, rec := range sheets.Records(rows) {
			name := rec["Criteria"]
			if err := s.AddCriterion(name); err != nil {
				continue
			}
			if w, err := strconv.ParseFloat(rec["Weight"], 64); err == nil && w >= MinWeight && w <= MaxWeight {
				_ = s.SetWeight(name, w)
			}
		}
	}

	if rows, err := store.ReadAll(ctx, sheets.Comments); err != nil {
		warn("could not load comments: %v", err)
	} else {
		for _, rec := range sheets.Records(rows) {
			s.mu.Lock()
			key, ok := s.keyForLabel(rec["Option"])
			s.mu.Unlock()
			if !ok {
				continue
			}
			_ = s.SetComment(rec["Criteria"], key, rec["Comment"])
		}
	}

	if rows, err := store.ReadAll(ctx, sheets.Scores); err != nil {
		warn("could not load full scores: %v", err)
	} else {
		for _, rec := range sheets.Records(rows) {
			s.mu.Lock()
			key, ok := s.keyForLabel(rec["Option"])
			s.mu.Unlock()
			if !ok {
				continue
			}
			score, err := strconv.Atoi(rec["Score"])
			if err != nil {
				continue
			}
			// Rows naming unknown reviewers or criteria drop silently.
			_ = s.SetRating(rec["Person"], key, rec["Criteria"], score)
		}
	}

	return s, warnings
}
