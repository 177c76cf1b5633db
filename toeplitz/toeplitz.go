/*
Package toeplitz implements block symmetric Toeplitz and block symmetric
circulant matrices stored as a single row of blocks.

A block symmetric Toeplitz matrix with N stored blocks is logically an NxN
grid of blocks where grid position (i,j) holds stored block |i-j|. A block
symmetric circulant matrix is the cyclic variant, where position (i,j)
depends only on (j-i) mod M; its diagonalization by the discrete Fourier
transform gives a matrix-vector product that never materializes the full
matrix. These structures arise in boundary element problems posed on
reflection-symmetric or axi-symmetric geometries, where the influence
matrix inherits the symmetry of the mesh.

All types in this package are read-only projections over the stored block
row. Transformations such as Transpose return new views with new block
data; stored blocks are never mutated.
*/
package toeplitz

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/seakeeping/gobem/blockmat"
	"github.com/seakeeping/gobem/utils"
)

// SymmetricToeplitz is a block symmetric Toeplitz matrix determined by its
// first row of blocks.
type SymmetricToeplitz struct {
	row    []utils.Matrix
	br, bc int     // shape shared by every stored block
	grid   [][]int // cached index grid
}

// checkBlockRow verifies that a stored block row is non-empty and that all
// blocks share exactly one shape.
func checkBlockRow(row []utils.Matrix) (br, bc int, err error) {
	if len(row) == 0 {
		err = fmt.Errorf("stored block row must contain at least one block")
		return
	}
	br, bc = row[0].Dims()
	for k, B := range row[1:] {
		nr, nc := B.Dims()
		if nr != br || nc != bc {
			err = fmt.Errorf("stored block %d is %dx%d, block 0 is %dx%d: all blocks must share one shape",
				k+1, nr, nc, br, bc)
			return
		}
	}
	return
}

func NewSymmetricToeplitz(row []utils.Matrix) (t *SymmetricToeplitz, err error) {
	var (
		br, bc int
	)
	if br, bc, err = checkBlockRow(row); err != nil {
		return
	}
	t = &SymmetricToeplitz{
		row: row,
		br:  br,
		bc:  bc,
	}
	return
}

// NbBlocks returns the number of logical blocks in each direction.
func (t *SymmetricToeplitz) NbBlocks() (Nr, Nc int) {
	return len(t.row), len(t.row)
}

// BlockShape returns the shape shared by every block.
func (t *SymmetricToeplitz) BlockShape() (r, c int) {
	return t.br, t.bc
}

// Dims returns the size of the full matrix.
func (t *SymmetricToeplitz) Dims() (nr, nc int) {
	return len(t.row) * t.br, len(t.row) * t.bc
}

// FirstBlockLine returns the stored blocks, which form the first row of
// blocks of the full matrix.
func (t *SymmetricToeplitz) FirstBlockLine() []utils.Matrix {
	return t.row
}

// IndexGrid returns the NxN grid of stored-block indices, grid[i][j] = |i-j|.
func (t *SymmetricToeplitz) IndexGrid() (grid [][]int) {
	if t.grid != nil {
		return t.grid
	}
	n := len(t.row)
	grid = make([][]int, n)
	for i := 0; i < n; i++ {
		grid[i] = make([]int, n)
		for j := 0; j < n; j++ {
			k := i - j
			if k < 0 {
				k = -k
			}
			grid[i][j] = k
		}
	}
	t.grid = grid
	return
}

// AllBlocks expands the stored row into the full NxN grid of blocks.
// Entries alias the stored blocks; no block data is copied.
func (t *SymmetricToeplitz) AllBlocks() (blocks [][]utils.Matrix) {
	grid := t.IndexGrid()
	blocks = make([][]utils.Matrix, len(grid))
	for i, line := range grid {
		blocks[i] = make([]utils.Matrix, len(line))
		for j, k := range line {
			blocks[i][j] = t.row[k]
		}
	}
	return
}

// PositionsOfIndex returns every grid position holding stored block k, in
// row-major order.
func (t *SymmetricToeplitz) PositionsOfIndex(k int) (I2 utils.Index2D) {
	return positionsOfIndex(t.IndexGrid(), k)
}

func positionsOfIndex(grid [][]int, k int) (I2 utils.Index2D) {
	var (
		RI, CI utils.Index
	)
	for i, line := range grid {
		for j, val := range line {
			if val == k {
				RI = append(RI, i)
				CI = append(CI, j)
			}
		}
	}
	I2, _ = utils.NewIndex2D(RI, CI)
	return
}

// Full assembles the dense matrix. It is the verification path; MulVec
// never materializes the full matrix.
func (t *SymmetricToeplitz) Full() utils.Matrix {
	bs, err := blockmat.NewStore(t.AllBlocks())
	if err != nil {
		panic(err) // block shapes were checked at construction
	}
	return bs.Full()
}

// MulVec multiplies the matrix by a vector without materializing the full
// matrix. The Toeplitz matrix is embedded into an even circulant matrix
// over the same stored row, the vector is zero-padded to the circulant
// width, and the circulant product is truncated to the true output length.
func (t *SymmetricToeplitz) MulVec(b []float64) (x []float64, err error) {
	var (
		nr, nc = t.Dims()
	)
	if len(b) != nc {
		err = fmt.Errorf("%w: matrix is %dx%d, vector length is %d", ErrShapeMismatch, nr, nc, len(b))
		return
	}
	if len(t.row) == 1 {
		// Degenerate case: the matrix is the single stored block
		x = t.row[0].MulVec(b)
		return
	}
	A, err := NewEvenCirculant(t.row)
	if err != nil {
		return
	}
	_, ac := A.Dims()
	bb := make([]float64, ac)
	copy(bb, b)
	var y []float64
	if y, err = A.MulVec(bb); err != nil {
		return
	}
	x = y[:nr]
	return
}

// Mul multiplies the matrix by a single-column operand. Any other operand
// returns ErrUnsupportedOperand so that callers can fall back to a dense
// algorithm via Full.
func (t *SymmetricToeplitz) Mul(op mat.Matrix) (R utils.Matrix, err error) {
	var (
		nr, nc   = t.Dims()
		opr, opc = op.Dims()
	)
	if opc != 1 {
		err = fmt.Errorf("%w: expected a column vector, got a %dx%d operand", ErrUnsupportedOperand, opr, opc)
		return
	}
	if opr != nc {
		err = fmt.Errorf("%w: matrix is %dx%d, vector length is %d", ErrShapeMismatch, nr, nc, opr)
		return
	}
	b := make([]float64, opr)
	for i := range b {
		b[i] = op.At(i, 0)
	}
	var x []float64
	if x, err = t.MulVec(b); err != nil {
		return
	}
	R = utils.NewMatrix(nr, 1, x)
	return
}

// Transpose returns a new view holding the per-block transpose of each
// stored block, in the same order. The index map |i-j| is symmetric, so
// the transpose of a block symmetric Toeplitz matrix is again block
// symmetric Toeplitz.
func (t *SymmetricToeplitz) Transpose() (R *SymmetricToeplitz) {
	row := make([]utils.Matrix, len(t.row))
	for k, B := range t.row {
		row[k] = B.Transpose()
	}
	R = &SymmetricToeplitz{
		row: row,
		br:  t.bc,
		bc:  t.br,
	}
	return
}
