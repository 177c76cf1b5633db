package toeplitz

import "errors"

var (
	// ErrShapeMismatch is returned when a vector operand has the wrong
	// length for the matrix it is multiplied with.
	ErrShapeMismatch = errors.New("operand shape does not match matrix")

	// ErrUnsupportedOperand is returned when a multiplication operand is
	// not a plain column vector. Callers can test for it with errors.Is
	// and fall back to a dense algorithm.
	ErrUnsupportedOperand = errors.New("unsupported operand")
)
