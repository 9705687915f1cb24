// stdlib_fs.go — minimal filesystem access. Grounded on
// daios-ai-msg/std_io.go's readFile/writeFile natives; intentionally small
// since spec.md's Non-goals exclude a full IO/OS binding surface.
package rox

import "os"

// RegisterFS installs fsReadFile/fsWriteFile/fsExists into env.
func RegisterFS(env *Env) {
	registerNative(env, "fsReadFile", 1, func(ev *Evaluator, args []Value) (Value, error) {
		path, err := requireString(args[0])
		if err != nil {
			return Nil, err
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return Nil, &RuntimeError{Kind: ErrGeneric, Msg: readErr.Error()}
		}
		return StringVal(string(data)), nil
	})

	registerNative(env, "fsWriteFile", 2, func(ev *Evaluator, args []Value) (Value, error) {
		path, err := requireString(args[0])
		if err != nil {
			return Nil, err
		}
		content, err := requireString(args[1])
		if err != nil {
			return Nil, err
		}
		if writeErr := os.WriteFile(path, []byte(content), 0644); writeErr != nil {
			return Nil, &RuntimeError{Kind: ErrGeneric, Msg: writeErr.Error()}
		}
		return Nil, nil
	})

	registerNative(env, "fsExists", 1, func(ev *Evaluator, args []Value) (Value, error) {
		path, err := requireString(args[0])
		if err != nil {
			return Nil, err
		}
		_, statErr := os.Stat(path)
		return BoolVal(statErr == nil), nil
	})
}
