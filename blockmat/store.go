package blockmat

import (
	"bytes"
	"fmt"

	"github.com/seakeeping/gobem/utils"
)

// Store is a 2D container of dense blocks with per-axis shape metadata.
// Every block in block-row i has RowShapes[i] rows and every block in
// block-column j has ColShapes[j] columns, so the blocks tile a dense
// matrix without gaps. Blocks are held by reference and never copied;
// callers must treat stored blocks as immutable.
type Store struct {
	M         [][]utils.Matrix // First slice points to rows of blocks
	Nr, Nc    int              // number of block rows, block columns
	RowShapes []int            // rows of each block in block-row i
	ColShapes []int            // columns of each block in block-column j
}

func NewStore(blocks [][]utils.Matrix) (R Store, err error) {
	var (
		Nr = len(blocks)
	)
	if Nr == 0 {
		err = fmt.Errorf("block store must contain at least one block row")
		return
	}
	Nc := len(blocks[0])
	if Nc == 0 {
		err = fmt.Errorf("block store must contain at least one block column")
		return
	}
	R = Store{
		M:         blocks,
		Nr:        Nr,
		Nc:        Nc,
		RowShapes: make([]int, Nr),
		ColShapes: make([]int, Nc),
	}
	for i, row := range blocks {
		if len(row) != Nc {
			err = fmt.Errorf("ragged block rows: row 0 has %d blocks, row %d has %d", Nc, i, len(row))
			return
		}
		nr, _ := row[0].Dims()
		R.RowShapes[i] = nr
	}
	for j := 0; j < Nc; j++ {
		_, nc := blocks[0][j].Dims()
		R.ColShapes[j] = nc
	}
	// Every block must match the shape metadata of its row and column
	for i := 0; i < Nr; i++ {
		for j := 0; j < Nc; j++ {
			nr, nc := blocks[i][j].Dims()
			if nr != R.RowShapes[i] || nc != R.ColShapes[j] {
				err = fmt.Errorf("block [%d:%d] is %dx%d, expected %dx%d from row/column shapes",
					i, j, nr, nc, R.RowShapes[i], R.ColShapes[j])
				return
			}
		}
	}
	return
}

func (bs Store) Block(i, j int) utils.Matrix {
	return bs.M[i][j]
}

func (bs Store) NbBlocks() (Nr, Nc int) {
	return bs.Nr, bs.Nc
}

// Dims returns the size of the dense matrix the blocks tile.
func (bs Store) Dims() (nr, nc int) {
	for _, n := range bs.RowShapes {
		nr += n
	}
	for _, n := range bs.ColShapes {
		nc += n
	}
	return
}

// Full assembles the dense matrix from the stored blocks.
func (bs Store) Full() (R utils.Matrix) {
	var (
		nr, nc = bs.Dims()
	)
	R = utils.NewMatrix(nr, nc)
	rowOff := 0
	for i := 0; i < bs.Nr; i++ {
		colOff := 0
		for j := 0; j < bs.Nc; j++ {
			B := bs.M[i][j]
			bnr, bnc := B.Dims()
			for ii := 0; ii < bnr; ii++ {
				for jj := 0; jj < bnc; jj++ {
					R.Set(rowOff+ii, colOff+jj, B.At(ii, jj))
				}
			}
			colOff += bnc
		}
		rowOff += bs.RowShapes[i]
	}
	return
}

func (bs Store) Print() (out string) {
	var (
		output string
	)
	buf := bytes.Buffer{}
	for i, row := range bs.M {
		for j, B := range row {
			label := fmt.Sprintf("[%d:%d]", i, j)
			if B.IsEmpty() {
				output = label + " nil "
			} else {
				output = B.Print(label)
			}
			buf.WriteString(output)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
