package engine

// aggregate folds the collected post-burn-in samples into the final
// completed matrix: a copy of the original input with each missing cell
// replaced by the arithmetic mean of that cell's samples. Observed cells are
// carried through untouched. Purely deterministic; all randomness happened
// upstream.
func aggregate(orig *matrix, k *mask, samples [][]float64) *matrix {
	out := orig.clone()
	if len(samples) == 0 {
		return out
	}

	n := float64(len(samples))
	for i, p := range k.positions() {
		sum := 0.0
		for _, s := range samples {
			sum += s[i]
		}
		out.set(p[0], p[1], sum/n)
	}
	return out
}
