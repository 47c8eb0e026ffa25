// Package calculator applies binary arithmetic operations by name.
//
// Four built-ins (ADD, SUBTRACT, MULTIPLY, DIVIDE) are always available and
// further operations can be registered at runtime. Names are
// case-insensitive. Sequences are evaluated either as a pure left fold
// (Calculator.Chain) or step by step through a Session.
//
// Numeric policy: ADD and SUBTRACT are float64 arithmetic. MULTIPLY is exact
// decimal multiplication of the operands' shortest decimal forms. DIVIDE is
// decimal division rounded to five fractional digits, half away from zero.
// Results are returned as the nearest float64.
package calculator
