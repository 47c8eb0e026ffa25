package calculator

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Calculator applies built-in and registered operations to pairs of operands
// and folds sequences of steps. Apply, Chain and Fold hold no mutable state
// and may be called concurrently, including alongside Register.
type Calculator struct {
	registry *Registry
	logger   *zap.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger used for registration events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Calculator with an empty registry.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		registry: NewRegistry(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Step is one operation of a chain, applied to the running result.
type Step struct {
	Op      string
	Operand float64
}

// Register adds a custom operation. See Registry.Register.
func (c *Calculator) Register(name string, fn Func) error {
	if err := c.registry.Register(name, fn); err != nil {
		c.logger.Warn("operation registration rejected",
			zap.String("operation", name),
			zap.Error(err),
		)
		return err
	}
	c.logger.Info("operation registered", zap.String("operation", name))
	return nil
}

// Operations lists the built-in names followed by the custom ones.
func (c *Calculator) Operations() []string {
	names := make([]string, 0, len(kindNames))
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	return append(names, c.registry.Names()...)
}

// Apply resolves op and applies it to a and b. Errors from the registry and
// from the operation itself are returned unchanged.
func (c *Calculator) Apply(op string, a, b float64) (float64, error) {
	fn, err := c.registry.Resolve(op)
	if err != nil {
		return 0, err
	}
	return call(fn, a, b)
}

// ApplyKind applies a built-in operation directly.
func (c *Calculator) ApplyKind(kind Kind, a, b float64) (float64, error) {
	fn := kind.Func()
	if fn == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedOperation, kind)
	}
	return call(fn, a, b)
}

// Chain folds ops over operands left to right starting from initial:
// Chain(5, [ADD, MULTIPLY], [3, 5]) is (5+3)*5.
func (c *Calculator) Chain(initial float64, ops []string, operands []float64) (float64, error) {
	if len(ops) != len(operands) {
		return 0, fmt.Errorf("%w: %d operations, %d operands", ErrMismatchedLengths, len(ops), len(operands))
	}

	steps := make([]Step, len(ops))
	for i := range ops {
		steps[i] = Step{Op: ops[i], Operand: operands[i]}
	}
	return c.Fold(initial, steps)
}

// StepHook is called before step i is applied to input. The returned
// function, if any, is called with the step's outcome.
type StepHook func(i int, step Step, input float64) func(result float64, err error)

// Fold is Chain over step values. A failing step aborts the fold; the error
// names the step index and wraps the underlying cause. Hooks observe every
// step in order.
func (c *Calculator) Fold(initial float64, steps []Step, hooks ...StepHook) (float64, error) {
	result := initial
	for i, step := range steps {
		done := make([]func(float64, error), 0, len(hooks))
		for _, hook := range hooks {
			if fn := hook(i, step, result); fn != nil {
				done = append(done, fn)
			}
		}

		next, err := c.Apply(step.Op, result, step.Operand)
		if err != nil {
			err = fmt.Errorf("step %d: %w", i, err)
		}
		for _, fn := range done {
			fn(next, err)
		}
		if err != nil {
			return 0, err
		}
		result = next
	}
	return result, nil
}

func call(fn Func, a, b float64) (float64, error) {
	if !finite(a) || !finite(b) {
		return 0, fmt.Errorf("%w: a=%g b=%g", ErrInvalidOperand, a, b)
	}
	result, err := fn(a, b)
	if err != nil {
		return 0, err
	}
	if !finite(result) {
		return 0, fmt.Errorf("%w: %g", ErrNonFiniteResult, result)
	}
	return result, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
