// Command rox is the language's CLI: run a file, or with no arguments
// start an interactive REPL. Grounded on daios-ai-msg/cmd/msg/main.go's
// REPL loop (peterh/liner for line editing and a persisted history file)
// and its exit-code discipline, trimmed to the two modes spec.md §6 calls
// for.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inblossoms/rox"
	"github.com/peterh/liner"
)

const exitOK = 0
const exitDataErr = 65  // lex/parse/resolve (static) error
const exitSoftware = 70 // uncaught runtime error
const exitIOErr = 74    // could not read the source file

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: rox [script]")
		os.Exit(exitDataErr)
	}
	if len(os.Args) == 2 {
		os.Exit(runFile(os.Args[1]))
	}
	os.Exit(runREPL())
}

func runFile(path string) int {
	if filepath.Ext(path) != ".rox" {
		fmt.Fprintf(os.Stderr, "%s: expected a .rox source file\n", path)
		return exitIOErr
	}
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOErr
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	dir := filepath.Dir(abs)

	stmts, staticErr := compile(string(src), abs)
	if staticErr != nil {
		fmt.Fprintln(os.Stderr, staticErr)
		return exitDataErr
	}

	globals := rox.NewEnv(nil)
	bootstrap := rox.NewEvaluatorForGlobals(globals)
	rox.RegisterGlobals(bootstrap)

	modules := rox.NewModuleCache(globals)
	ev := rox.NewEvaluator(stmts.sideTable, modules, dir)
	ev.Globals = rox.NewEnv(globals)

	if err := ev.Interpret(stmts.stmts); err != nil {
		fmt.Fprintln(os.Stderr, rox.ColorizeError(rox.WrapErrorWithName(err, abs, string(src)).Error()))
		return exitSoftware
	}
	return exitOK
}

type compiled struct {
	stmts     []rox.Stmt
	sideTable rox.SideTable
}

func compile(src, name string) (*compiled, error) {
	lexer := rox.NewLexer(src)
	tokens, lexErrs := lexer.ScanTokens()
	if len(lexErrs) > 0 {
		return nil, rox.WrapErrorWithName(lexErrs[0], name, src)
	}

	parser := rox.NewParser(tokens)
	stmts, parseErrs := parser.Parse()
	if len(parseErrs) > 0 {
		return nil, rox.WrapErrorWithName(parseErrs[0], name, src)
	}

	resolver := rox.NewResolver()
	sideTable, resolveErrs := resolver.Resolve(stmts)
	if len(resolveErrs) > 0 {
		return nil, rox.WrapErrorWithName(resolveErrs[0], name, src)
	}

	return &compiled{stmts: stmts, sideTable: sideTable}, nil
}

func runREPL() int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := historyFilePath()
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	globals := rox.NewEnv(nil)
	bootstrap := rox.NewEvaluatorForGlobals(globals)
	rox.RegisterGlobals(bootstrap)
	modules := rox.NewModuleCache(globals)
	replEnv := rox.NewEnv(globals) // persists across prompts so a session's bindings accumulate

	fmt.Println("rox — interactive mode. Ctrl-D to exit.")
	for {
		text, err := line.Prompt("> ")
		if err != nil {
			break
		}
		if text == "" {
			continue
		}
		line.AppendHistory(text)

		stmts, staticErr := compile(text, "<repl>")
		if staticErr != nil {
			fmt.Println(rox.ColorizeError(staticErr.Error()))
			continue
		}

		ev := rox.NewEvaluator(stmts.sideTable, modules, ".")
		ev.Globals = replEnv

		if len(stmts.stmts) == 1 {
			if exprStmt, ok := stmts.stmts[0].(*rox.ExprStmt); ok {
				v, err := ev.EvalTopExpr(exprStmt.Expression)
				if err != nil {
					fmt.Println(rox.ColorizeError(rox.WrapErrorWithName(err, "<repl>", text).Error()))
				} else {
					fmt.Println(rox.ColorizeResult(rox.FormatValue(v)))
				}
				continue
			}
		}

		if err := ev.Interpret(stmts.stmts); err != nil {
			fmt.Println(rox.ColorizeError(rox.WrapErrorWithName(err, "<repl>", text).Error()))
		}
	}

	if f, err := os.Create(historyPath); err == nil {
		line.WriteHistory(f)
		f.Close()
	}
	return exitOK
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rox_history"
	}
	return filepath.Join(home, ".rox_history")
}
