package utils

import (
	"fmt"
)

type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

// Reversed returns a new Index with the elements in reverse order.
func (I Index) Reversed() (r Index) {
	r = make(Index, len(I))
	for i, val := range I {
		r[len(I)-1-i] = val
	}
	return
}

type Index2D struct {
	RI, CI Index
	Len    int
}

func NewIndex2D(RI, CI Index) (I2 Index2D, err error) {
	if len(RI) != len(CI) {
		err = fmt.Errorf("lengths of row and column indices must be the same: nr, nc = %v, %v\n", len(RI), len(CI))
		return
	}
	return Index2D{
		RI:  RI,
		CI:  CI,
		Len: len(RI),
	}, nil
}
