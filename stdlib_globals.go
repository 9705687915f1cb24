// stdlib_globals.go — native bindings installed directly into every
// program's global frame: clock, input, the import intrinsic, and type.
// Grounded on daios-ai-msg/std_core.go's RegisterNative convention, pared
// down to this module's simpler NativeFunction{Name,Arity,Fn} shape (no
// structural type-checking layer, since this language's arity/type errors
// are plain RuntimeErrors raised by the caller).
package rox

import (
	"bufio"
	"fmt"
	"os"
	"time"
)

// RegisterGlobals installs every builtin this module ships into ev.Globals.
// Call once per top-level Evaluator; module bodies share these through the
// native-globals root each module's own frame is parented to (modules.go).
func RegisterGlobals(ev *Evaluator) {
	registerNative(ev.Globals, "clock", 0, nativeClock)
	registerNative(ev.Globals, "input", -1, nativeInput)
	registerNative(ev.Globals, "import", 1, nativeImport)
	registerNative(ev.Globals, "type", 1, nativeType)
	registerNative(ev.Globals, "str", 1, nativeStr)
	registerNative(ev.Globals, "num", 1, nativeNum)

	RegisterListMethods(ev.Globals)
	RegisterDictMethods(ev.Globals)
	RegisterStringMethods(ev.Globals)
	RegisterTupleMethods(ev.Globals)
	RegisterMath(ev.Globals)
	RegisterFS(ev.Globals)
}

func registerNative(env *Env, name string, arity int, fn NativeFn) {
	env.Define(name, NativeVal(&NativeFunction{Name: name, Arity: arity, Fn: fn}))
}

func nativeClock(ev *Evaluator, args []Value) (Value, error) {
	return NumberVal(float64(time.Now().UnixNano()) / 1e9), nil
}

var stdinReader = bufio.NewReader(os.Stdin)

func nativeInput(ev *Evaluator, args []Value) (Value, error) {
	if len(args) > 0 {
		fmt.Fprint(ev.Out, stringify(args[0]))
	}
	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return Nil, nil
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return StringVal(line), nil
}

func nativeImport(ev *Evaluator, args []Value) (Value, error) {
	if args[0].Kind != KString {
		return Nil, &RuntimeError{Kind: ErrTypeError, Msg: "import expects a string path"}
	}
	if ev.Modules == nil {
		return Nil, &RuntimeError{Kind: ErrGeneric, Msg: "imports are not available in this context"}
	}
	return ev.Modules.Import(args[0].Str, ev.ScriptDir)
}

func nativeType(ev *Evaluator, args []Value) (Value, error) {
	return StringVal(args[0].TypeName()), nil
}

func nativeStr(ev *Evaluator, args []Value) (Value, error) {
	return StringVal(stringify(args[0])), nil
}

func nativeNum(ev *Evaluator, args []Value) (Value, error) {
	v := args[0]
	switch v.Kind {
	case KNumber:
		return v, nil
	case KString:
		n, ok := parseNumber(v.Str)
		if !ok {
			return Nil, &RuntimeError{Kind: ErrTypeError, Msg: fmt.Sprintf("cannot convert %q to a number", v.Str)}
		}
		return NumberVal(n), nil
	default:
		return Nil, &RuntimeError{Kind: ErrTypeError, Msg: fmt.Sprintf("cannot convert %s to a number", v.TypeName())}
	}
}
