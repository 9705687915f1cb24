// printer.go — display formatting for print/REPL output. Grounded on
// daios-ai-msg/printer.go's recursive MapObject/ListObject renderer and
// cmd/msg/main.go's ANSI colorize helpers, adapted to this module's value
// set.
package rox

import (
	"strconv"
	"strings"
)

// FormatValue renders v with every string quoted, at any depth; the REPL
// echoes expression results with it. `print` goes through stringify
// instead, which writes a top-level string bare and uses FormatValue for
// containers, so strings nested in a list/dict/tuple are quoted there.
func FormatValue(v Value) string {
	switch v.Kind {
	case KNil:
		return "nil"
	case KBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KNumber:
		return formatNumber(v.Number)
	case KString:
		return strconv.Quote(v.Str)
	case KList:
		parts := make([]string, len(v.List.Items))
		for i, it := range v.List.Items {
			parts[i] = FormatValue(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KTuple:
		parts := make([]string, len(v.Tuple.Items))
		for i, it := range v.Tuple.Items {
			parts[i] = FormatValue(it)
		}
		suffix := ""
		if len(parts) == 1 {
			suffix = ","
		}
		return "(" + strings.Join(parts, ", ") + suffix + ")"
	case KDict:
		parts := make([]string, 0, len(v.Dict.Keys))
		for _, k := range v.Dict.Keys {
			val, _ := v.Dict.Get(k)
			parts = append(parts, strconv.Quote(k)+": "+FormatValue(val))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KFunction:
		return "<fun " + v.Function.Name + ">"
	case KLambda:
		return "<lambda>"
	case KNativeFunction:
		return "<native " + v.Native.Name + ">"
	case KClass:
		return "<class " + v.Class.Name + ">"
	case KInstance:
		return "<" + v.Instance.Class.Name + " instance>"
	case KModule:
		return "<module " + v.Module.Name + ">"
	default:
		return "<unknown>"
	}
}

// ANSI color codes for the REPL's echoed results, matching the subdued
// palette the teacher's CLI uses for error vs. ordinary output.
const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiGray  = "\033[90m"
)

func colorize(code, s string) string {
	return code + s + ansiReset
}

// ColorizeError renders a diagnostic string in red for the REPL and the
// one-shot file runner.
func ColorizeError(s string) string { return colorize(ansiRed, s) }

// ColorizeResult renders a successful REPL expression result in green.
func ColorizeResult(s string) string { return colorize(ansiGreen, s) }
