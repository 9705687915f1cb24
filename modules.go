// modules.go — module resolution, caching, and cyclic-import detection.
// Grounded on original_source/src/evaluate/interpreter.rs's import_module
// cache-then-evaluate-then-fill-exports technique, with one deliberate
// redesign: spec.md §4.3/§8 requires import of a module that is still
// mid-evaluation to be a hard CycleError, where original_source silently
// hands back the partially-filled cache entry (recorded as an explicit
// decision in SPEC_FULL.md §13 / DESIGN.md, not an oversight).
package rox

import (
	"os"
	"path/filepath"
	"strings"
)

type moduleState int

const (
	moduleLoading moduleState = iota
	moduleReady
)

type moduleEntry struct {
	state moduleState
	value Value // KModule once ready
}

// ModuleCache resolves, parses, and evaluates imported source files exactly
// once apiece, keyed by canonical filesystem path.
type ModuleCache struct {
	entries map[string]*moduleEntry
	globals *Env // native globals shared by every module's fresh Env chain
}

// NewModuleCache constructs an empty cache. globals is the native-function
// root every module's own global frame is parented to, so every module
// sees the same builtins without sharing mutable top-level state.
func NewModuleCache(globals *Env) *ModuleCache {
	return &ModuleCache{entries: map[string]*moduleEntry{}, globals: globals}
}

// Import resolves path relative to fromDir, loads and evaluates it if this
// is the first reference, and returns its exports as a KModule Value.
func (mc *ModuleCache) Import(path, fromDir string) (Value, error) {
	resolved, err := resolveModulePath(path, fromDir)
	if err != nil {
		return Nil, err
	}

	if entry, ok := mc.entries[resolved]; ok {
		switch entry.state {
		case moduleReady:
			return entry.value, nil
		case moduleLoading:
			return Nil, &RuntimeError{Kind: ErrCycleError, Msg: "cyclic import: " + resolved}
		}
	}

	entry := &moduleEntry{state: moduleLoading}
	mc.entries[resolved] = entry

	src, err := os.ReadFile(resolved)
	if err != nil {
		delete(mc.entries, resolved)
		return Nil, &RuntimeError{Kind: ErrGeneric, Msg: "cannot read module " + resolved + ": " + err.Error()}
	}

	modVal, evalErr := mc.evaluateModule(resolved, string(src))
	if evalErr != nil {
		delete(mc.entries, resolved)
		return Nil, evalErr
	}

	entry.state = moduleReady
	entry.value = modVal
	return modVal, nil
}

// evaluateModule returns raw structured errors (*LexError/*ParseError/
// *ResolveError/*RuntimeError), deliberately NOT wrapped into display text
// here: a cyclic or nested import failure must keep propagating as a typed
// error through every enclosing import() call, and WrapErrorWithName's
// string rendering would erase that type at the first module boundary.
// Only the outermost caller (the CLI, or a REPL line) renders for display.
func (mc *ModuleCache) evaluateModule(resolved, src string) (Value, error) {
	lexer := NewLexer(src)
	tokens, lexErrs := lexer.ScanTokens()
	if len(lexErrs) > 0 {
		return Nil, lexErrs[0]
	}

	parser := NewParser(tokens)
	stmts, parseErrs := parser.Parse()
	if len(parseErrs) > 0 {
		return Nil, parseErrs[0]
	}

	resolver := NewResolver()
	sideTable, resolveErrs := resolver.Resolve(stmts)
	if len(resolveErrs) > 0 {
		return Nil, resolveErrs[0]
	}

	modEv := &Evaluator{
		Globals:   NewEnv(mc.globals),
		sideTable: sideTable,
		Modules:   mc,
		ScriptDir: filepath.Dir(resolved),
		Out:       os.Stdout,
		exports:   map[string]Value{},
	}

	if err := modEv.Interpret(stmts); err != nil {
		return Nil, err
	}

	name := strings.TrimSuffix(filepath.Base(resolved), filepath.Ext(resolved))
	return ModuleVal(&Module{Name: name, Exports: modEv.exports}), nil
}

// resolveModulePath follows spec.md §4.3's lookup order: relative paths
// (./ or ../) resolve against fromDir; anything else is looked up on
// ROXPATH, then relative to fromDir as a fallback. A bare module name with
// no extension gets ".rox" appended.
func resolveModulePath(path, fromDir string) (string, error) {
	candidate := path
	if !strings.HasSuffix(candidate, ".rox") {
		candidate += ".rox"
	}

	if strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") || filepath.IsAbs(path) {
		full := candidate
		if !filepath.IsAbs(full) {
			full = filepath.Join(fromDir, candidate)
		}
		return filepath.Abs(full)
	}

	if roxpath := os.Getenv("ROXPATH"); roxpath != "" {
		for _, dir := range filepath.SplitList(roxpath) {
			full := filepath.Join(dir, candidate)
			if _, err := os.Stat(full); err == nil {
				return filepath.Abs(full)
			}
		}
	}

	return filepath.Abs(filepath.Join(fromDir, candidate))
}
