package game

import "math"

// DefaultTimeLimit is the per-question time limit applied when a room or
// question does not set one.
const DefaultTimeLimit = 30

// Score computes the points awarded for a correct answer submitted after
// elapsed seconds against the given time limit. An instant answer is worth
// 1000 points, decaying linearly to a floor of 10% at the limit; an answer
// slower than the limit still earns the floor rather than zero.
func Score(elapsed, limit float64) int {
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	if elapsed < 0 {
		elapsed = 0
	}

	penalty := 900 * elapsed / limit
	if penalty > 900 {
		penalty = 900
	}
	return int(math.Floor(1000 - penalty))
}
