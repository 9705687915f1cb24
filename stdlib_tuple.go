// stdlib_tuple.go — native methods on tuple values. Tuples are otherwise
// opaque and immutable (spec.md §3), so length is the only accessor needed
// beyond indexing, which the evaluator's IndexExpr handles directly.
package rox

import "fmt"

// RegisterTupleMethods installs tupleLen into env.
func RegisterTupleMethods(env *Env) {
	registerNative(env, "tupleLen", 1, func(ev *Evaluator, args []Value) (Value, error) {
		if args[0].Kind != KTuple {
			return Nil, &RuntimeError{Kind: ErrTypeError, Msg: fmt.Sprintf("expected a tuple, got %s", args[0].TypeName())}
		}
		return NumberVal(float64(len(args[0].Tuple.Items))), nil
	})
}
