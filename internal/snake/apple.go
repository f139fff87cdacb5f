package snake

import "math/rand"

// maxAppleAttempts bounds rejection sampling before falling back to a scan.
const maxAppleAttempts = 64

// PlaceApple picks a uniformly random cell of the board that is not in
// occupied. It samples at random up to maxAppleAttempts times and then scans
// the free cells, so it terminates even when the snake nearly fills the board.
// It returns false only when every cell is occupied.
func PlaceApple(rng *rand.Rand, board Board, occupied map[Cell]bool) (Cell, bool) {
	if len(occupied) < board.Area() {
		for range maxAppleAttempts {
			c := Cell{X: rng.Intn(board.Width()), Y: rng.Intn(board.Height())}
			if !occupied[c] {
				return c, true
			}
		}
	}

	free := make([]Cell, 0, board.Area()-len(occupied))
	for y := range board.Height() {
		for x := range board.Width() {
			c := Cell{X: x, Y: y}
			if !occupied[c] {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return Cell{X: -1, Y: -1}, false
	}
	return free[rng.Intn(len(free))], true
}

// occupancy builds the set of cells covered by body.
func occupancy(body []Cell) map[Cell]bool {
	occupied := make(map[Cell]bool, len(body))
	for _, c := range body {
		occupied[c] = true
	}
	return occupied
}
