// stdlib_string.go — native methods on string values. Grounded on
// daios-ai-msg/std_string.go's registry of strings.* wrappers.
package rox

import (
	"fmt"
	"strconv"
	"strings"
)

// RegisterStringMethods installs strLen/strUpper/... into env.
func RegisterStringMethods(env *Env) {
	registerNative(env, "strLen", 1, func(ev *Evaluator, args []Value) (Value, error) {
		s, err := requireString(args[0])
		if err != nil {
			return Nil, err
		}
		return NumberVal(float64(len([]rune(s)))), nil
	})

	registerNative(env, "strUpper", 1, func(ev *Evaluator, args []Value) (Value, error) {
		s, err := requireString(args[0])
		if err != nil {
			return Nil, err
		}
		return StringVal(strings.ToUpper(s)), nil
	})

	registerNative(env, "strLower", 1, func(ev *Evaluator, args []Value) (Value, error) {
		s, err := requireString(args[0])
		if err != nil {
			return Nil, err
		}
		return StringVal(strings.ToLower(s)), nil
	})

	registerNative(env, "strSplit", 2, func(ev *Evaluator, args []Value) (Value, error) {
		s, err := requireString(args[0])
		if err != nil {
			return Nil, err
		}
		sep, err := requireString(args[1])
		if err != nil {
			return Nil, err
		}
		parts := strings.Split(s, sep)
		out := make([]Value, len(parts))
		for i, p := range parts {
			out[i] = StringVal(p)
		}
		return ListVal(out), nil
	})

	registerNative(env, "strTrim", 1, func(ev *Evaluator, args []Value) (Value, error) {
		s, err := requireString(args[0])
		if err != nil {
			return Nil, err
		}
		return StringVal(strings.TrimSpace(s)), nil
	})

	registerNative(env, "strContains", 2, func(ev *Evaluator, args []Value) (Value, error) {
		s, err := requireString(args[0])
		if err != nil {
			return Nil, err
		}
		sub, err := requireString(args[1])
		if err != nil {
			return Nil, err
		}
		return BoolVal(strings.Contains(s, sub)), nil
	})

	registerNative(env, "strReplace", 3, func(ev *Evaluator, args []Value) (Value, error) {
		s, err := requireString(args[0])
		if err != nil {
			return Nil, err
		}
		old, err := requireString(args[1])
		if err != nil {
			return Nil, err
		}
		new_, err := requireString(args[2])
		if err != nil {
			return Nil, err
		}
		return StringVal(strings.ReplaceAll(s, old, new_)), nil
	})

	registerNative(env, "strRepeat", 2, func(ev *Evaluator, args []Value) (Value, error) {
		s, err := requireString(args[0])
		if err != nil {
			return Nil, err
		}
		if args[1].Kind != KNumber {
			return Nil, &RuntimeError{Kind: ErrTypeError, Msg: "strRepeat count must be a number"}
		}
		n := int(args[1].Number)
		if n < 0 {
			n = 0
		}
		return StringVal(strings.Repeat(s, n)), nil
	})

	registerNative(env, "strToNumber", 1, func(ev *Evaluator, args []Value) (Value, error) {
		s, err := requireString(args[0])
		if err != nil {
			return Nil, err
		}
		n, ok := parseNumber(s)
		if !ok {
			return Nil, &RuntimeError{Kind: ErrTypeError, Msg: fmt.Sprintf("cannot convert %q to a number", s)}
		}
		return NumberVal(n), nil
	})
}

func requireString(v Value) (string, error) {
	if v.Kind != KString {
		return "", &RuntimeError{Kind: ErrTypeError, Msg: fmt.Sprintf("expected a string, got %s", v.TypeName())}
	}
	return v.Str, nil
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
