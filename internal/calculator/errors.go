package calculator

import (
	"errors"
	"fmt"
)

// Error kinds returned by the calculator. Match them with errors.Is; the
// returned errors wrap these with the offending name or operands.
var (
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrDuplicateOperation   = errors.New("duplicate operation")
	ErrDivisionByZero       = errors.New("division by zero")
	ErrMismatchedLengths    = errors.New("operations and operands do not match")
	ErrInvalidOperand       = errors.New("invalid numeric operand")
	ErrNonFiniteResult      = errors.New("result is not a finite number")

	// ErrChainState is the kind shared by every stateful chaining misuse.
	ErrChainState      = errors.New("invalid chain state")
	ErrNoInitialState  = fmt.Errorf("%w: no initial state", ErrChainState)
	ErrStateAlreadySet = fmt.Errorf("%w: initial state already set", ErrChainState)
)
