// stdlib_dict.go — native methods on dict values (spec.md §13: keys are
// always strings). Grounded on daios-ai-msg/std_map.go's MapObject
// accessor registry.
package rox

import "fmt"

// RegisterDictMethods installs dictLen/dictKeys/... into env.
func RegisterDictMethods(env *Env) {
	registerNative(env, "dictLen", 1, func(ev *Evaluator, args []Value) (Value, error) {
		d, err := requireDict(args[0])
		if err != nil {
			return Nil, err
		}
		return NumberVal(float64(len(d.Keys))), nil
	})

	registerNative(env, "dictKeys", 1, func(ev *Evaluator, args []Value) (Value, error) {
		d, err := requireDict(args[0])
		if err != nil {
			return Nil, err
		}
		out := make([]Value, len(d.Keys))
		for i, k := range d.Keys {
			out[i] = StringVal(k)
		}
		return ListVal(out), nil
	})

	registerNative(env, "dictValues", 1, func(ev *Evaluator, args []Value) (Value, error) {
		d, err := requireDict(args[0])
		if err != nil {
			return Nil, err
		}
		out := make([]Value, len(d.Keys))
		for i, k := range d.Keys {
			v, _ := d.Get(k)
			out[i] = v
		}
		return ListVal(out), nil
	})

	registerNative(env, "dictHas", 2, func(ev *Evaluator, args []Value) (Value, error) {
		d, err := requireDict(args[0])
		if err != nil {
			return Nil, err
		}
		if args[1].Kind != KString {
			return Nil, &RuntimeError{Kind: ErrTypeError, Msg: "dictHas key must be a string"}
		}
		_, ok := d.Get(args[1].Str)
		return BoolVal(ok), nil
	})

	registerNative(env, "dictRemove", 2, func(ev *Evaluator, args []Value) (Value, error) {
		d, err := requireDict(args[0])
		if err != nil {
			return Nil, err
		}
		if args[1].Kind != KString {
			return Nil, &RuntimeError{Kind: ErrTypeError, Msg: "dictRemove key must be a string"}
		}
		d.Remove(args[1].Str)
		return args[0], nil
	})

	registerNative(env, "dictMerge", 2, func(ev *Evaluator, args []Value) (Value, error) {
		a, err := requireDict(args[0])
		if err != nil {
			return Nil, err
		}
		b, err := requireDict(args[1])
		if err != nil {
			return Nil, err
		}
		out := NewDict()
		for _, k := range a.Keys {
			v, _ := a.Get(k)
			out.Set(k, v)
		}
		for _, k := range b.Keys {
			v, _ := b.Get(k)
			out.Set(k, v)
		}
		return DictVal(out), nil
	})
}

func requireDict(v Value) (*Dict, error) {
	if v.Kind != KDict {
		return nil, &RuntimeError{Kind: ErrTypeError, Msg: fmt.Sprintf("expected a dict, got %s", v.TypeName())}
	}
	return v.Dict, nil
}
