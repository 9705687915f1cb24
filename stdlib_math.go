// stdlib_math.go — math constants and functions. Grounded on
// daios-ai-msg/std_math.go's registry of math.* wrappers, extended with
// this language's own min/max/random.
package rox

import (
	"math"
	"math/rand"
)

// RegisterMath installs PI/E/sqrt/pow/... into env as bare globals.
func RegisterMath(env *Env) {
	env.Define("PI", NumberVal(math.Pi))
	env.Define("E", NumberVal(math.E))

	unary := func(name string, fn func(float64) float64) {
		registerNative(env, name, 1, func(ev *Evaluator, args []Value) (Value, error) {
			n, err := requireNumber(args[0])
			if err != nil {
				return Nil, err
			}
			return NumberVal(fn(n)), nil
		})
	}

	unary("sqrt", math.Sqrt)
	unary("abs", math.Abs)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("round", math.Round)

	registerNative(env, "pow", 2, func(ev *Evaluator, args []Value) (Value, error) {
		base, err := requireNumber(args[0])
		if err != nil {
			return Nil, err
		}
		exp, err := requireNumber(args[1])
		if err != nil {
			return Nil, err
		}
		return NumberVal(math.Pow(base, exp)), nil
	})

	registerNative(env, "min", 2, func(ev *Evaluator, args []Value) (Value, error) {
		a, err := requireNumber(args[0])
		if err != nil {
			return Nil, err
		}
		b, err := requireNumber(args[1])
		if err != nil {
			return Nil, err
		}
		return NumberVal(math.Min(a, b)), nil
	})

	registerNative(env, "max", 2, func(ev *Evaluator, args []Value) (Value, error) {
		a, err := requireNumber(args[0])
		if err != nil {
			return Nil, err
		}
		b, err := requireNumber(args[1])
		if err != nil {
			return Nil, err
		}
		return NumberVal(math.Max(a, b)), nil
	})

	registerNative(env, "random", 0, func(ev *Evaluator, args []Value) (Value, error) {
		return NumberVal(rand.Float64()), nil
	})
}

func requireNumber(v Value) (float64, error) {
	if v.Kind != KNumber {
		return 0, &RuntimeError{Kind: ErrTypeError, Msg: "expected a number, got " + v.TypeName()}
	}
	return v.Number, nil
}
