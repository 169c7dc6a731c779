package stylist

// SelectBest returns the index of the highest score; ties go to the earliest index.
// It returns -1 for an empty slice.
func SelectBest(scores []float64) int {
	best := -1
	for i, s := range scores {
		if best < 0 || s > scores[best] {
			best = i
		}
	}
	return best
}
