package toeplitz

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/seakeeping/gobem/blockmat"
	"github.com/seakeeping/gobem/utils"
)

// baselineGridder supplies the first row of a circulant index grid. The
// even and odd variants differ only in this generator and in the logical
// block count it implies.
type baselineGridder interface {
	baselineGrid() utils.Index
	nbBlocks() int
}

// circulant factors the behavior shared by the even and odd variants: the
// rotation-based index grid, block selection and the Fourier-domain
// multiply. It is always embedded in a concrete variant that provides the
// baselineGridder.
type circulant struct {
	row     []utils.Matrix
	br, bc  int
	gridder baselineGridder
	grid    [][]int // cached index grid
}

func (m *circulant) init(row []utils.Matrix, gridder baselineGridder) (err error) {
	if m.br, m.bc, err = checkBlockRow(row); err != nil {
		return
	}
	m.row = row
	m.gridder = gridder
	return
}

// NbBlocks returns the number of logical blocks in each direction.
func (m *circulant) NbBlocks() (Nr, Nc int) {
	M := m.gridder.nbBlocks()
	return M, M
}

// BlockShape returns the shape shared by every block.
func (m *circulant) BlockShape() (r, c int) {
	return m.br, m.bc
}

// Dims returns the size of the full matrix.
func (m *circulant) Dims() (nr, nc int) {
	M := m.gridder.nbBlocks()
	return M * m.br, M * m.bc
}

// IndexGrid returns the MxM grid of stored-block indices. Row 0 is the
// baseline grid; row i is row 0 rotated right by i positions, so
// grid[i][j] depends only on (j-i) mod M.
func (m *circulant) IndexGrid() (grid [][]int) {
	if m.grid != nil {
		return m.grid
	}
	var (
		line = m.gridder.baselineGrid()
		M    = m.gridder.nbBlocks()
	)
	grid = make([][]int, M)
	for i := 0; i < M; i++ {
		grid[i] = make([]int, M)
		for j := 0; j < M; j++ {
			grid[i][j] = line[((j-i)%M+M)%M]
		}
	}
	m.grid = grid
	return
}

// FirstBlockLine materializes the effective first row of blocks of the
// full matrix: the stored row indexed by the baseline grid, with repeats
// where the baseline grid repeats a stored index. Entries alias the
// stored blocks.
func (m *circulant) FirstBlockLine() (line []utils.Matrix) {
	baseline := m.gridder.baselineGrid()
	line = make([]utils.Matrix, len(baseline))
	for j, k := range baseline {
		line[j] = m.row[k]
	}
	return
}

// AllBlocks expands the stored row into the full MxM grid of blocks.
func (m *circulant) AllBlocks() (blocks [][]utils.Matrix) {
	grid := m.IndexGrid()
	blocks = make([][]utils.Matrix, len(grid))
	for i, line := range grid {
		blocks[i] = make([]utils.Matrix, len(line))
		for j, k := range line {
			blocks[i][j] = m.row[k]
		}
	}
	return
}

// PositionsOfIndex returns every grid position holding stored block k, in
// row-major order.
func (m *circulant) PositionsOfIndex(k int) (I2 utils.Index2D) {
	return positionsOfIndex(m.IndexGrid(), k)
}

// Full assembles the dense matrix. It is the verification path; MulVec
// never materializes the full matrix.
func (m *circulant) Full() utils.Matrix {
	bs, err := blockmat.NewStore(m.AllBlocks())
	if err != nil {
		panic(err) // block shapes were checked at construction
	}
	return bs.Full()
}

// Mul multiplies the matrix by a single-column operand. Any other operand
// returns ErrUnsupportedOperand so that callers can fall back to a dense
// algorithm via Full.
func (m *circulant) Mul(op mat.Matrix) (R utils.Matrix, err error) {
	var (
		nr, nc   = m.Dims()
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
	if x, err = m.MulVec(b); err != nil {
		return
	}
	R = utils.NewMatrix(nr, 1, x)
	return
}

// EvenCirculant is a block symmetric circulant matrix with an even number
// of logical blocks, M = 2(N-1) for N stored blocks:
//
//	ABCB
//	BABC
//	CBAB
//	BCBA
type EvenCirculant struct {
	circulant
}

func NewEvenCirculant(row []utils.Matrix) (m *EvenCirculant, err error) {
	if len(row) < 2 {
		err = fmt.Errorf("even circulant matrix requires at least 2 stored blocks, got %d", len(row))
		return
	}
	m = &EvenCirculant{}
	if err = m.init(row, m); err != nil {
		m = nil
	}
	return
}

func (m *EvenCirculant) nbBlocks() int {
	return 2 * (len(m.row) - 1)
}

// baselineGrid is the forward run of stored indices followed by the
// reversed run, excluding the repeats at both ends: [0..N-2] + [N-1..1].
func (m *EvenCirculant) baselineGrid() (line utils.Index) {
	n := len(m.row)
	line = append(line, utils.NewRange(0, n-2)...)
	line = append(line, utils.NewRange(1, n-1).Reversed()...)
	return
}

// OddCirculant is a block symmetric circulant matrix with an odd number of
// logical blocks, M = 2N-1 for N stored blocks:
//
//	ABCCB
//	BABCC
//	CBABC
//	CCBAB
//	BCCBA
type OddCirculant struct {
	circulant
}

func NewOddCirculant(row []utils.Matrix) (m *OddCirculant, err error) {
	m = &OddCirculant{}
	if err = m.init(row, m); err != nil {
		m = nil
	}
	return
}

func (m *OddCirculant) nbBlocks() int {
	return 2*len(m.row) - 1
}

// baselineGrid is the forward run of stored indices followed by the
// reversed run, excluding the first element: [0..N-1] + [N-1..1].
func (m *OddCirculant) baselineGrid() (line utils.Index) {
	n := len(m.row)
	line = append(line, utils.NewRange(0, n-1)...)
	line = append(line, utils.NewRange(1, n-1).Reversed()...)
	return
}
