package toeplitz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seakeeping/gobem/utils"
)

func TestBaselineGrids(t *testing.T) {
	// Even variant: M = 2(N-1), forward run then reversed run excluding
	// the repeats at both ends
	{
		m, err := NewEvenCirculant(randBlockRow(4, 1, 1, 20))
		assert.Nil(t, err)
		assert.Equal(t, utils.Index{0, 1, 2, 3, 2, 1}, m.baselineGrid())
		Nr, Nc := m.NbBlocks()
		assert.Equal(t, 6, Nr)
		assert.Equal(t, 6, Nc)
	}
	// Odd variant: M = 2N-1, forward run then reversed run excluding the
	// first element
	{
		m, err := NewOddCirculant(randBlockRow(4, 1, 1, 21))
		assert.Nil(t, err)
		assert.Equal(t, utils.Index{0, 1, 2, 3, 3, 2, 1}, m.baselineGrid())
		Nr, Nc := m.NbBlocks()
		assert.Equal(t, 7, Nr)
		assert.Equal(t, 7, Nc)
	}
	// The even variant needs at least two stored blocks
	{
		_, err := NewEvenCirculant(randBlockRow(1, 2, 2, 22))
		assert.NotNil(t, err)
	}
	// A single stored block is a valid odd circulant of one block
	{
		row := randBlockRow(1, 2, 2, 23)
		m, err := NewOddCirculant(row)
		assert.Nil(t, err)
		Nr, Nc := m.NbBlocks()
		assert.Equal(t, 1, Nr)
		assert.Equal(t, 1, Nc)
		b := randVector(2, 24)
		x, err := m.MulVec(b)
		assert.Nil(t, err)
		assert.InDeltaSlice(t, row[0].MulVec(b), x, 1e-12)
	}
}

func TestCirculantIndexGrid(t *testing.T) {
	rotationLaw := func(grid [][]int, line utils.Index) {
		M := len(line)
		for i := 0; i < M; i++ {
			for j := 0; j < M; j++ {
				// Row i is row 0 rotated right by i positions
				assert.Equal(t, line[((j-i)%M+M)%M], grid[i][j])
				// Symmetry
				assert.Equal(t, grid[j][i], grid[i][j])
			}
		}
	}
	for n := 2; n <= 5; n++ {
		{
			m, err := NewEvenCirculant(randBlockRow(n, 1, 1, int64(30+n)))
			assert.Nil(t, err)
			rotationLaw(m.IndexGrid(), m.baselineGrid())
		}
		{
			m, err := NewOddCirculant(randBlockRow(n, 1, 1, int64(40+n)))
			assert.Nil(t, err)
			rotationLaw(m.IndexGrid(), m.baselineGrid())
		}
	}
}

func TestOddCirculantScenario(t *testing.T) {
	// Stored row of three 1x1 blocks [1, 2, 3]
	row := []utils.Matrix{
		utils.NewMatrix(1, 1, []float64{1}),
		utils.NewMatrix(1, 1, []float64{2}),
		utils.NewMatrix(1, 1, []float64{3}),
	}
	m, err := NewOddCirculant(row)
	assert.Nil(t, err)
	assert.Equal(t, utils.Index{0, 1, 2, 2, 1}, m.baselineGrid())
	assert.Equal(t, []int{0, 1, 2, 2, 1}, m.IndexGrid()[0])
	F := m.Full()
	assert.Equal(t, []float64{
		1, 2, 3, 3, 2,
		2, 1, 2, 3, 3,
		3, 2, 1, 2, 3,
		3, 3, 2, 1, 2,
		2, 3, 3, 2, 1,
	}, F.Data())
	// Multiplying by e1 extracts the first column, via the Fourier domain
	x, err := m.MulVec([]float64{1, 0, 0, 0, 0})
	assert.Nil(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 3, 3, 2}, x, 1e-10)
}

func TestCirculantMulVec(t *testing.T) {
	// Fourier-domain product agrees with the dense product for both
	// variants, square and rectangular blocks
	type shape struct{ r, c int }
	shapes := []shape{{1, 1}, {2, 2}, {2, 3}}
	for _, s := range shapes {
		for n := 2; n <= 5; n++ {
			{
				m, err := NewEvenCirculant(randBlockRow(n, s.r, s.c, int64(50+n)))
				assert.Nil(t, err)
				_, nc := m.Dims()
				b := randVector(nc, int64(60+n))
				x, err := m.MulVec(b)
				assert.Nil(t, err)
				assert.InDeltaSlice(t, m.Full().MulVec(b), x, 1e-10)
			}
			{
				m, err := NewOddCirculant(randBlockRow(n, s.r, s.c, int64(70+n)))
				assert.Nil(t, err)
				_, nc := m.Dims()
				b := randVector(nc, int64(80+n))
				x, err := m.MulVec(b)
				assert.Nil(t, err)
				assert.InDeltaSlice(t, m.Full().MulVec(b), x, 1e-10)
			}
		}
	}
	// Wrong vector length is a shape mismatch
	{
		m, err := NewOddCirculant(randBlockRow(3, 2, 2, 90))
		assert.Nil(t, err)
		_, err = m.MulVec(make([]float64, 3))
		assert.ErrorIs(t, err, ErrShapeMismatch)
	}
	// A multi-column operand is unsupported
	{
		m, err := NewEvenCirculant(randBlockRow(3, 2, 2, 91))
		assert.Nil(t, err)
		_, nc := m.Dims()
		_, err = m.Mul(utils.NewMatrix(nc, 2))
		assert.ErrorIs(t, err, ErrUnsupportedOperand)
	}
}

func TestPositionsMask(t *testing.T) {
	m, err := NewOddCirculant(randBlockRow(3, 2, 2, 95))
	assert.Nil(t, err)
	grid := m.IndexGrid()
	br, bc := m.BlockShape()
	for k := 0; k < 3; k++ {
		I2 := m.PositionsOfIndex(k)
		R := PositionsMask(grid, k, br, bc)
		// One br x bc region per grid position
		assert.Equal(t, I2.Len*br*bc, R.NNZ())
		for n := 0; n < I2.Len; n++ {
			i, j := I2.RI[n], I2.CI[n]
			for p := 0; p < br; p++ {
				for q := 0; q < bc; q++ {
					assert.Equal(t, 1., R.At(i*br+p, j*bc+q))
				}
			}
		}
	}
}
