package toeplitz

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// MulVec multiplies the circulant matrix by a vector via the Fourier
// domain. A circulant block matrix is block-diagonalized by the discrete
// Fourier transform along the block-sequence axis: transform the stacked
// first block line and the vector reshaped to (M, c), multiply block-wise
// per frequency, and invert the transform. This is equivalent to the dense
// product with the full MxM block matrix at a fraction of the cost.
func (m *circulant) MulVec(b []float64) (x []float64, err error) {
	var (
		M      = m.gridder.nbBlocks()
		r, c   = m.br, m.bc
		nr, nc = m.Dims()
		line   = m.FirstBlockLine()
	)
	if len(b) != nc {
		err = fmt.Errorf("%w: matrix is %dx%d, vector length is %d", ErrShapeMismatch, nr, nc, len(b))
		return
	}
	var (
		fft = fourier.NewCmplxFFT(M)
		seq = make([]complex128, M)
		dst = make([]complex128, M)
		// Per-frequency transformed blocks (row-major r x c) and vector
		AHat = make([][]complex128, M)
		bHat = make([][]complex128, M)
	)
	for k := 0; k < M; k++ {
		AHat[k] = make([]complex128, r*c)
		bHat[k] = make([]complex128, c)
	}
	// Forward transform of the stacked blocks along the block-sequence
	// axis, one block entry (p,q) at a time
	for p := 0; p < r; p++ {
		for q := 0; q < c; q++ {
			for k := 0; k < M; k++ {
				seq[k] = complex(line[k].At(p, q), 0)
			}
			fft.Coefficients(dst, seq)
			for k := 0; k < M; k++ {
				AHat[k][p*c+q] = dst[k]
			}
		}
	}
	// Forward transform of the vector reshaped to (M, c), along the same axis
	for q := 0; q < c; q++ {
		for k := 0; k < M; k++ {
			seq[k] = complex(b[k*c+q], 0)
		}
		fft.Coefficients(dst, seq)
		for k := 0; k < M; k++ {
			bHat[k][q] = dst[k]
		}
	}
	// Block-wise product per frequency
	yHat := make([][]complex128, M)
	for k := 0; k < M; k++ {
		yHat[k] = make([]complex128, r)
		for p := 0; p < r; p++ {
			var sum complex128
			for q := 0; q < c; q++ {
				sum += AHat[k][p*c+q] * bHat[k][q]
			}
			yHat[k][p] = sum
		}
	}
	// Inverse transform along the block-sequence axis. Coefficients
	// followed by Sequence scales by M, so normalize here.
	x = make([]float64, M*r)
	for p := 0; p < r; p++ {
		for k := 0; k < M; k++ {
			seq[k] = yHat[k][p]
		}
		fft.Sequence(dst, seq)
		for k := 0; k < M; k++ {
			x[k*r+p] = real(dst[k]) / float64(M)
		}
	}
	return
}
