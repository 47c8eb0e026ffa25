package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DivisionScale is the number of fractional digits kept by Divide.
const DivisionScale = 5

// Func is a binary numeric operation.
type Func func(a, b float64) (float64, error)

// Kind enumerates the built-in operations.
type Kind int

const (
	Add Kind = iota
	Subtract
	Multiply
	Divide
)

var kindNames = [...]string{
	Add:      "ADD",
	Subtract: "SUBTRACT",
	Multiply: "MULTIPLY",
	Divide:   "DIVIDE",
}

// Kinds returns every built-in operation in declaration order.
func Kinds() []Kind {
	return []Kind{Add, Subtract, Multiply, Divide}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// normalizeName is the registry key for name: trimmed and upper-cased.
func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// ParseKind resolves a case-insensitive built-in name.
func ParseKind(name string) (Kind, bool) {
	key := normalizeName(name)
	for i, n := range kindNames {
		if n == key {
			return Kind(i), true
		}
	}
	return 0, false
}

// IsBuiltin reports whether name (case-insensitive) is a built-in operation.
func IsBuiltin(name string) bool {
	_, ok := ParseKind(name)
	return ok
}

// Func returns the implementation backing the built-in.
//
// Addition and subtraction use float64 arithmetic. Multiplication and
// division are carried out in decimal on the shortest representation of each
// operand, so 0.1*0.2 yields 0.02; division keeps DivisionScale fractional
// digits rounded half away from zero.
func (k Kind) Func() Func {
	switch k {
	case Add:
		return add
	case Subtract:
		return subtract
	case Multiply:
		return multiply
	case Divide:
		return divide
	}
	return nil
}

func add(a, b float64) (float64, error) {
	return a + b, nil
}

func subtract(a, b float64) (float64, error) {
	return a - b, nil
}

func multiply(a, b float64) (float64, error) {
	x := decimal.NewFromFloat(a)
	y := decimal.NewFromFloat(b)
	result, _ := x.Mul(y).Float64()
	return result, nil
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: %g / %g", ErrDivisionByZero, a, b)
	}
	x := decimal.NewFromFloat(a)
	y := decimal.NewFromFloat(b)
	result, _ := x.DivRound(y, DivisionScale).Float64()
	return result, nil
}
