package toeplitz

import (
	"github.com/seakeeping/gobem/utils"
)

// PositionsMask expands the grid positions holding stored block k to entry
// resolution: the returned sparse matrix has a 1 at every entry of the
// full matrix covered by block k, given the shared block shape (br, bc).
// Rendering code uses it to lay out the rectangular regions belonging to
// one stored block.
func PositionsMask(grid [][]int, k, br, bc int) (R utils.DOK) {
	M := len(grid)
	R = utils.NewDOK(M*br, M*bc)
	for i, line := range grid {
		for j, val := range line {
			if val != k {
				continue
			}
			for p := 0; p < br; p++ {
				for q := 0; q < bc; q++ {
					R.Set(i*br+p, j*bc+q, 1)
				}
			}
		}
	}
	return
}
