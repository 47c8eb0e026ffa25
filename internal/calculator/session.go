package calculator

import (
	"fmt"
	"sync"
)

// Session is a stateful chain over a Calculator. Its state starts unset,
// is set exactly once by SetState and is then replaced by every
// ChainOperations step. Each step goes through Calculator.Apply, so the
// numeric policy matches Apply and Chain. A Session is safe for concurrent
// use; concurrent steps are serialized in lock order.
type Session struct {
	calc *Calculator

	mu    sync.Mutex
	set   bool
	value float64
}

// NewSession returns an unset session backed by c.
func NewSession(c *Calculator) *Session {
	return &Session{calc: c}
}

// SetState sets the initial value. It fails with ErrStateAlreadySet if the
// session already holds a value.
func (s *Session) SetState(initial float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.set {
		return ErrStateAlreadySet
	}
	if !finite(initial) {
		return fmt.Errorf("%w: %g", ErrInvalidOperand, initial)
	}
	s.value = initial
	s.set = true
	return nil
}

// ChainOperations applies op to the current value and operand and stores the
// result. On error the state is left unchanged.
func (s *Session) ChainOperations(op string, operand float64) (*Session, error) {
	_, err := s.Step(op, operand)
	return s, err
}

// Step is ChainOperations returning the value it stored.
func (s *Session) Step(op string, operand float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.set {
		return 0, ErrNoInitialState
	}
	result, err := s.calc.Apply(op, s.value, operand)
	if err != nil {
		return 0, err
	}
	s.value = result
	return result, nil
}

// Result returns the current value.
func (s *Session) Result() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.set {
		return 0, ErrNoInitialState
	}
	return s.value, nil
}

// IsSet reports whether SetState has been called successfully.
func (s *Session) IsSet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}
