package engine

import "sort"

// visitOrder computes the fixed column processing order for a run. The
// order is always a permutation of all column indices; columns without
// missing data are skipped during rounds but keep their slot so that
// ensembles and replays line up.
//
// Monotone sorts by descending missing count, revmonotone by ascending.
// The ascending sort is stable (ties keep ascending column index) and
// monotone is its exact reversal, so with no ties the two orders are
// reverses of each other.
func visitOrder(k *mask, seq VisitSequence) ([]int, error) {
	order := make([]int, k.cols)
	for i := range order {
		order[i] = i
	}

	switch seq {
	case VisitRoman:
		// ascending index, as initialized
	case VisitArabic:
		reverse(order)
	case VisitRevMonotone:
		sort.SliceStable(order, func(a, b int) bool {
			return k.missingCount(order[a]) < k.missingCount(order[b])
		})
	case VisitMonotone:
		sort.SliceStable(order, func(a, b int) bool {
			return k.missingCount(order[a]) < k.missingCount(order[b])
		})
		reverse(order)
	default:
		return nil, &ErrInvalidConfig{Param: "visit_sequence", Value: seq.String()}
	}

	return order, nil
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
