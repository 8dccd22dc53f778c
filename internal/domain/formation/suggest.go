package formation

// SuggestTeamSizes returns every team size from MinTeamSize to n/2 that
// divides n with no leftover, in ascending order.
func SuggestTeamSizes(n int) []int {
	var sizes []int
	for size := MinTeamSize; size <= n/2; size++ {
		if n%size == 0 {
			sizes = append(sizes, size)
		}
	}
	return sizes
}
