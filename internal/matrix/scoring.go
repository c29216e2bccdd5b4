package matrix

import "sort"

// PairAverage returns the arithmetic mean of the reviewer ratings
// recorded for one option/criterion pair. A pair nobody has rated yet
// yields the neutral 3.
func PairAverage(option, criterion string, reviewers []string, ratings map[RatingKey]int) float64 {
	sum, n := 0, 0
	for _, rev := range reviewers {
		if v, ok := ratings[RatingKey{Option: option, Reviewer: rev, Criterion: criterion}]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return neutralRating
	}
	return float64(sum) / float64(n)
}

// ComputeTotals returns the weighted total per option: the reviewer
// average of each active criterion times its weight, summed. Criteria
// without a recorded weight count at 1.0. Totals are not normalized by
// the weight sum; only the ranking matters.
func ComputeTotals(options, criteria []string, weights map[string]float64, reviewers []string, ratings map[RatingKey]int) map[string]float64 {
	totals := make(map[string]float64, len(options))
	for _, opt := range options {
		total := 0.0
		for _, crit := range criteria {
			w, ok := weights[crit]
			if !ok {
				w = defaultWeight
			}
			total += PairAverage(opt, crit, reviewers, ratings) * w
		}
		totals[opt] = total
	}
	return totals
}

// Ranked is one row of the ranked summary.
type Ranked struct {
	Key   string  `json:"option"`
	Label string  `json:"label"`
	Score float64 `json:"total_score"`
}

// Rank orders options by descending total. The sort is stable over the
// original key order, so ties keep their positional order and equal
// inputs always produce the same output.
func Rank(totals map[string]float64, keyOrder []string) []Ranked {
	ranked := make([]Ranked, 0, len(keyOrder))
	for _, key := range keyOrder {
		if score, ok := totals[key]; ok {
			ranked = append(ranked, Ranked{Key: key, Score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Ranked computes the current totals and returns them best-first with
// display labels attached.
func (s *Session) Ranked() []Ranked {
	s.mu.Lock()
	defer s.mu.Unlock()
	totals := ComputeTotals(s.optionKeys, s.criteria, s.weights, s.reviewers, s.ratings)
	ranked := Rank(totals, s.optionKeys)
	for i := range ranked {
		ranked[i].Label = s.labelOf(ranked[i].Key)
	}
	return ranked
}
