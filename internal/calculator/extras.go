package calculator

import (
	"fmt"
	"math"
	"sort"
)

// extras are optional operations a deployment can enable by name.
var extras = map[string]Func{
	"POWER": func(a, b float64) (float64, error) {
		return math.Pow(a, b), nil
	},
	"MODULO": func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, fmt.Errorf("%w: %g mod %g", ErrDivisionByZero, a, b)
		}
		return math.Mod(a, b), nil
	},
	"MIN": func(a, b float64) (float64, error) {
		return math.Min(a, b), nil
	},
	"MAX": func(a, b float64) (float64, error) {
		return math.Max(a, b), nil
	},
}

// ExtraNames lists the operations RegisterExtras accepts.
func ExtraNames() []string {
	names := make([]string, 0, len(extras))
	for name := range extras {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterExtras registers each named extra operation on c. It stops at the
// first unknown or already registered name.
func RegisterExtras(c *Calculator, names []string) error {
	for _, name := range names {
		key := normalizeName(name)
		if key == "" {
			continue
		}
		fn, ok := extras[key]
		if !ok {
			return fmt.Errorf("%w: no extra operation named %s", ErrUnsupportedOperation, name)
		}
		if err := c.Register(key, fn); err != nil {
			return err
		}
	}
	return nil
}
