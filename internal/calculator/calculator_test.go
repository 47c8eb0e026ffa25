package calculator

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestApplyBuiltins(t *testing.T) {
	calc := New()

	tests := []struct {
		op   string
		a, b float64
		want float64
	}{
		{op: "ADD", a: 2, b: 3, want: 5},
		{op: "SUBTRACT", a: 3, b: 2, want: 1},
		{op: "MULTIPLY", a: 2, b: 3, want: 6},
		{op: "DIVIDE", a: 6, b: 3, want: 2},
		{op: "add", a: -1.5, b: 0.5, want: -1},
		{op: "Multiply", a: 0.1, b: 0.2, want: 0.02},
		{op: "multiply", a: 1.1, b: 1.1, want: 1.21},
		{op: "divide", a: 1, b: 3, want: 0.33333},
		{op: "divide", a: 2, b: 3, want: 0.66667},
		{op: "divide", a: -2, b: 3, want: -0.66667},
		{op: "divide", a: 1, b: 8, want: 0.125},
		{op: "divide", a: 0.000005, b: 1, want: 0.00001},
	}

	for _, tc := range tests {
		t.Run(tc.op, func(t *testing.T) {
			got, err := calc.Apply(tc.op, tc.a, tc.b)
			if err != nil {
				t.Fatalf("apply %s(%g, %g): %v", tc.op, tc.a, tc.b, err)
			}
			if got != tc.want {
				t.Fatalf("%s(%g, %g): expected %g, got %g", tc.op, tc.a, tc.b, tc.want, got)
			}
		})
	}
}

func TestApplyDivisionByZero(t *testing.T) {
	calc := New()

	_, err := calc.Apply("DIVIDE", 6, 0)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestApplyUnsupportedOperation(t *testing.T) {
	calc := New()

	_, err := calc.Apply("MOD", 5, 2)
	if !errors.Is(err, ErrUnsupportedOperation) {
		t.Fatalf("expected ErrUnsupportedOperation, got %v", err)
	}
}

func TestApplyRejectsNonFiniteOperands(t *testing.T) {
	calc := New()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := calc.Apply("MULTIPLY", v, 2); !errors.Is(err, ErrInvalidOperand) {
			t.Fatalf("operand %g: expected ErrInvalidOperand, got %v", v, err)
		}
		if _, err := calc.Apply("ADD", 1, v); !errors.Is(err, ErrInvalidOperand) {
			t.Fatalf("operand %g: expected ErrInvalidOperand, got %v", v, err)
		}
	}
}

func TestApplyKind(t *testing.T) {
	calc := New()

	got, err := calc.ApplyKind(Multiply, 2, 3)
	if err != nil {
		t.Fatalf("apply kind: %v", err)
	}
	if got != 6 {
		t.Fatalf("expected 6, got %g", got)
	}

	if _, err := calc.ApplyKind(Kind(42), 1, 1); !errors.Is(err, ErrUnsupportedOperation) {
		t.Fatalf("expected ErrUnsupportedOperation, got %v", err)
	}
}

func TestApplyCustomOperation(t *testing.T) {
	calc := New()

	err := calc.Register("custom", func(x, y float64) (float64, error) {
		return x + 2*y, nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := calc.Apply("custom", 1, 2)
	if err != nil {
		t.Fatalf("apply custom: %v", err)
	}
	if got != 5 {
		t.Fatalf("expected 5, got %g", got)
	}

	got, err = calc.Apply("CUSTOM", 1, 2)
	if err != nil || got != 5 {
		t.Fatalf("expected case-insensitive lookup to return 5, got %g, %v", got, err)
	}
}

func TestApplyPropagatesCustomError(t *testing.T) {
	calc := New()
	boom := errors.New("boom")

	if err := calc.Register("fail", func(x, y float64) (float64, error) { return 0, boom }); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := calc.Apply("fail", 1, 2); !errors.Is(err, boom) {
		t.Fatalf("expected custom error, got %v", err)
	}
}

func TestChain(t *testing.T) {
	calc := New()

	got, err := calc.Chain(5, []string{Add.String(), Multiply.String()}, []float64{3, 5})
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if got != 40 {
		t.Fatalf("expected 40, got %g", got)
	}

	// Evaluation is strictly left to right.
	got, err = calc.Chain(5, []string{"MULTIPLY", "ADD"}, []float64{5, 3})
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if got != 28 {
		t.Fatalf("expected 28, got %g", got)
	}
}

func TestChainEmptyReturnsInitial(t *testing.T) {
	got, err := New().Chain(7, nil, nil)
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7, got %g", got)
	}
}

func TestChainMismatchedLengths(t *testing.T) {
	_, err := New().Chain(5, []string{"ADD", "MULTIPLY"}, []float64{3})
	if !errors.Is(err, ErrMismatchedLengths) {
		t.Fatalf("expected ErrMismatchedLengths, got %v", err)
	}
}

func TestChainUsesCustomOperations(t *testing.T) {
	calc := New()
	if err := calc.Register("double_add", func(x, y float64) (float64, error) { return x + 2*y, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := calc.Chain(1, []string{"double_add", "divide"}, []float64{2, 2})
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if got != 2.5 {
		t.Fatalf("expected 2.5, got %g", got)
	}
}

func TestFoldStopsAtFailingStep(t *testing.T) {
	calc := New()

	_, err := calc.Fold(10, []Step{
		{Op: "SUBTRACT", Operand: 4},
		{Op: "DIVIDE", Operand: 0},
		{Op: "ADD", Operand: 1},
	})
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if got, want := err.Error(), "step 1: division by zero: 6 / 0"; got != want {
		t.Fatalf("expected error %q, got %q", want, got)
	}
}

func TestChainMatchesApplyPrecision(t *testing.T) {
	calc := New()

	direct, err := calc.Apply("DIVIDE", 10, 3)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	chained, err := calc.Chain(10, []string{"DIVIDE"}, []float64{3})
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if direct != chained || direct != 3.33333 {
		t.Fatalf("expected 3.33333 from both, got apply=%g chain=%g", direct, chained)
	}
}

func TestOperationsListsBuiltinsThenCustom(t *testing.T) {
	calc := New()
	for _, name := range []string{"zeta", "alpha"} {
		if err := calc.Register(name, add); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	got := calc.Operations()
	want := []string{"ADD", "SUBTRACT", "MULTIPLY", "DIVIDE", "ALPHA", "ZETA"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRegisterLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	calc := New(WithLogger(zap.New(core)))

	if err := calc.Register("custom", add); err != nil {
		t.Fatalf("register: %v", err)
	}
	_ = calc.Register("CUSTOM", add)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Message != "operation registered" {
		t.Fatalf("expected %q, got %q", "operation registered", entries[0].Message)
	}
	if entries[1].Level != zap.WarnLevel {
		t.Fatalf("expected warn level for rejected registration, got %s", entries[1].Level)
	}
}

func TestApplyRejectsNonFiniteResults(t *testing.T) {
	calc := New()
	if err := RegisterExtras(calc, []string{"power"}); err != nil {
		t.Fatalf("register extras: %v", err)
	}

	tests := []struct {
		op   string
		a, b float64
	}{
		{op: "ADD", a: 1e308, b: 1e308},
		{op: "SUBTRACT", a: -1e308, b: 1e308},
		{op: "MULTIPLY", a: 1e308, b: 1e308},
		{op: "DIVIDE", a: 1e308, b: 1e-10},
		{op: "POWER", a: -8, b: 1.0 / 3},
	}

	for _, tc := range tests {
		if _, err := calc.Apply(tc.op, tc.a, tc.b); !errors.Is(err, ErrNonFiniteResult) {
			t.Fatalf("%s(%g, %g): expected ErrNonFiniteResult, got %v", tc.op, tc.a, tc.b, err)
		}
	}
}

func TestFoldHooksSeeEveryStep(t *testing.T) {
	calc := New()

	type call struct {
		index         int
		input, result float64
		err           error
	}
	var calls []call
	hook := func(i int, step Step, input float64) func(float64, error) {
		return func(result float64, err error) {
			calls = append(calls, call{index: i, input: input, result: result, err: err})
		}
	}

	got, err := calc.Fold(5, []Step{{Op: "ADD", Operand: 3}, {Op: "MULTIPLY", Operand: 5}}, hook)
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	if got != 40 {
		t.Fatalf("expected 40, got %g", got)
	}
	if len(calls) != 2 || calls[0].input != 5 || calls[0].result != 8 || calls[1].input != 8 || calls[1].result != 40 {
		t.Fatalf("unexpected hook calls %+v", calls)
	}

	calls = nil
	_, err = calc.Fold(1, []Step{{Op: "DIVIDE", Operand: 0}, {Op: "ADD", Operand: 1}}, hook)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if len(calls) != 1 || calls[0].index != 0 || !errors.Is(calls[0].err, ErrDivisionByZero) {
		t.Fatalf("expected one failed hook call, got %+v", calls)
	}
}
