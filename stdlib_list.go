// stdlib_list.go — native methods on list values, registered as free
// functions taking the list as their first argument (this language has no
// method-call sugar on builtin types, only on class instances — spec.md §9).
// Grounded on daios-ai-msg/std_list.go's len/push/pop/map/filter registry
// shape.
package rox

import (
	"fmt"
	"sort"
)

// RegisterListMethods installs listPush/listPop/... into env.
func RegisterListMethods(env *Env) {
	registerNative(env, "listLen", 1, func(ev *Evaluator, args []Value) (Value, error) {
		l, err := requireList(args[0])
		if err != nil {
			return Nil, err
		}
		return NumberVal(float64(len(l.Items))), nil
	})

	registerNative(env, "listPush", 2, func(ev *Evaluator, args []Value) (Value, error) {
		l, err := requireList(args[0])
		if err != nil {
			return Nil, err
		}
		l.Items = append(l.Items, args[1])
		return args[0], nil
	})

	registerNative(env, "listPop", 1, func(ev *Evaluator, args []Value) (Value, error) {
		l, err := requireList(args[0])
		if err != nil {
			return Nil, err
		}
		if len(l.Items) == 0 {
			return Nil, &RuntimeError{Kind: ErrIndexOutOfBounds, Msg: "pop from an empty list"}
		}
		last := l.Items[len(l.Items)-1]
		l.Items = l.Items[:len(l.Items)-1]
		return last, nil
	})

	registerNative(env, "listMap", 2, func(ev *Evaluator, args []Value) (Value, error) {
		l, err := requireList(args[0])
		if err != nil {
			return Nil, err
		}
		out := make([]Value, len(l.Items))
		for i, item := range l.Items {
			out[i] = ev.callValue(args[1], []Value{item}, Token{})
		}
		return ListVal(out), nil
	})

	registerNative(env, "listFilter", 2, func(ev *Evaluator, args []Value) (Value, error) {
		l, err := requireList(args[0])
		if err != nil {
			return Nil, err
		}
		var out []Value
		for _, item := range l.Items {
			if ev.callValue(args[1], []Value{item}, Token{}).Truthy() {
				out = append(out, item)
			}
		}
		return ListVal(out), nil
	})

	registerNative(env, "listJoin", 2, func(ev *Evaluator, args []Value) (Value, error) {
		l, err := requireList(args[0])
		if err != nil {
			return Nil, err
		}
		if args[1].Kind != KString {
			return Nil, &RuntimeError{Kind: ErrTypeError, Msg: "listJoin separator must be a string"}
		}
		s := ""
		for i, item := range l.Items {
			if i > 0 {
				s += args[1].Str
			}
			s += stringify(item)
		}
		return StringVal(s), nil
	})

	registerNative(env, "listSlice", 3, func(ev *Evaluator, args []Value) (Value, error) {
		l, err := requireList(args[0])
		if err != nil {
			return Nil, err
		}
		if args[1].Kind != KNumber || args[2].Kind != KNumber {
			return Nil, &RuntimeError{Kind: ErrTypeError, Msg: "listSlice bounds must be numbers"}
		}
		start := clampIndex(int(args[1].Number), len(l.Items))
		end := clampIndex(int(args[2].Number), len(l.Items))
		if end < start {
			end = start
		}
		out := make([]Value, end-start)
		copy(out, l.Items[start:end])
		return ListVal(out), nil
	})

	registerNative(env, "listReverse", 1, func(ev *Evaluator, args []Value) (Value, error) {
		l, err := requireList(args[0])
		if err != nil {
			return Nil, err
		}
		out := make([]Value, len(l.Items))
		for i, item := range l.Items {
			out[len(l.Items)-1-i] = item
		}
		return ListVal(out), nil
	})

	registerNative(env, "listSort", 2, func(ev *Evaluator, args []Value) (Value, error) {
		l, err := requireList(args[0])
		if err != nil {
			return Nil, err
		}
		out := make([]Value, len(l.Items))
		copy(out, l.Items)
		sort.SliceStable(out, func(i, j int) bool {
			return ev.callValue(args[1], []Value{out[i], out[j]}, Token{}).Truthy()
		})
		return ListVal(out), nil
	})

	registerNative(env, "listContains", 2, func(ev *Evaluator, args []Value) (Value, error) {
		l, err := requireList(args[0])
		if err != nil {
			return Nil, err
		}
		for _, item := range l.Items {
			if item.Equals(args[1]) {
				return BoolVal(true), nil
			}
		}
		return BoolVal(false), nil
	})

	registerNative(env, "listIndexOf", 2, func(ev *Evaluator, args []Value) (Value, error) {
		l, err := requireList(args[0])
		if err != nil {
			return Nil, err
		}
		for i, item := range l.Items {
			if item.Equals(args[1]) {
				return NumberVal(float64(i)), nil
			}
		}
		return NumberVal(-1), nil
	})
}

func requireList(v Value) (*List, error) {
	if v.Kind != KList {
		return nil, &RuntimeError{Kind: ErrTypeError, Msg: fmt.Sprintf("expected a list, got %s", v.TypeName())}
	}
	return v.List, nil
}

func clampIndex(i, length int) int {
	if i < 0 {
		i = 0
	}
	if i > length {
		i = length
	}
	return i
}
