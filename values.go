// values.go — the runtime tagged union (spec.md §3). Grounded on
// daios-ai-msg/interpreter.go's Value/ValueTag/MapObject (ordered-map +
// shared-pointer discipline) and original_source/src/evaluate/value.rs for
// the exact variant set this language needs.
package rox

import (
	"fmt"
	"math"
)

// ValueKind discriminates the tagged union's active case.
type ValueKind int

const (
	KNil ValueKind = iota
	KBool
	KNumber
	KString
	KList
	KDict
	KTuple
	KFunction
	KLambda
	KNativeFunction
	KClass
	KInstance
	KModule
)

// Value is the universal runtime carrier. Exactly one of the typed fields is
// meaningful, selected by Kind; Bool/Number/Str are held inline, every
// other case is a pointer, so copying a Value shares the underlying list,
// dict, tuple, function, class, instance or module.
type Value struct {
	Kind ValueKind

	Bool   bool
	Number float64
	Str    string

	List     *List
	Dict     *Dict
	Tuple    *Tuple
	Function *Function
	Lambda   *Lambda
	Native   *NativeFunction
	Class    *Class
	Instance *Instance
	Module   *Module
}

// Nil is the singleton nil value.
var Nil = Value{Kind: KNil}

func BoolVal(b bool) Value   { return Value{Kind: KBool, Bool: b} }
func NumberVal(n float64) Value { return Value{Kind: KNumber, Number: n} }
func StringVal(s string) Value  { return Value{Kind: KString, Str: s} }

// List is a shared, mutable, ordered sequence of Value.
type List struct {
	Items []Value
}

func ListVal(items []Value) Value { return Value{Kind: KList, List: &List{Items: items}} }

// Dict is a shared, mutable, string-keyed mapping preserving insertion
// order via Keys (spec.md §13: dict keys are always strings).
type Dict struct {
	Keys    []string
	Entries map[string]Value
}

func NewDict() *Dict { return &Dict{Entries: map[string]Value{}} }

func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.Entries[key]
	return v, ok
}

func (d *Dict) Set(key string, v Value) {
	if _, exists := d.Entries[key]; !exists {
		d.Keys = append(d.Keys, key)
	}
	d.Entries[key] = v
}

func (d *Dict) Remove(key string) {
	if _, exists := d.Entries[key]; !exists {
		return
	}
	delete(d.Entries, key)
	for i, k := range d.Keys {
		if k == key {
			d.Keys = append(d.Keys[:i], d.Keys[i+1:]...)
			break
		}
	}
}

func DictVal(d *Dict) Value { return Value{Kind: KDict, Dict: d} }

// Tuple is an immutable ordered sequence of Value.
type Tuple struct {
	Items []Value
}

func TupleVal(items []Value) Value { return Value{Kind: KTuple, Tuple: &Tuple{Items: items}} }

// Function is a named, user-defined function or method.
type Function struct {
	Name          string
	Params        []Token
	Body          []Stmt
	Closure       *Env
	IsInitializer bool
}

func FunctionVal(f *Function) Value { return Value{Kind: KFunction, Function: f} }

// Lambda is semantically a Function with no name.
type Lambda struct {
	Params  []Token
	Body    []Stmt
	Closure *Env
}

func LambdaVal(l *Lambda) Value { return Value{Kind: KLambda, Lambda: l} }

// NativeFn is the implementation signature for host-provided functions.
type NativeFn func(ev *Evaluator, args []Value) (Value, error)

// NativeFunction wraps a host implementation as a callable Value.
// Arity < 0 marks a variadic native (any argument count accepted).
type NativeFunction struct {
	Name   string
	Arity  int
	Fn     NativeFn
}

func NativeVal(nf *NativeFunction) Value { return Value{Kind: KNativeFunction, Native: nf} }

// Class is a runtime class: methods map from name to Function, closing over
// the environment active at class-definition time (never over any instance
// — spec.md §9's cycle-avoidance invariant).
type Class struct {
	Name       string
	Methods    map[string]*Function
	Superclass *Class
}

// FindMethod looks up name on c or, failing that, walks the superclass
// chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

func ClassVal(c *Class) Value { return Value{Kind: KClass, Class: c} }

// Instance is a shared, mutable object: a class plus its own field map.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func NewInstance(c *Class) *Instance {
	return &Instance{Class: c, Fields: map[string]Value{}}
}

func InstanceVal(i *Instance) Value { return Value{Kind: KInstance, Instance: i} }

// Module is the payload of an imported program: its exported bindings.
type Module struct {
	Name    string
	Exports map[string]Value
}

func ModuleVal(m *Module) Value { return Value{Kind: KModule, Module: m} }

// Truthy implements this language's truthiness: false and nil are the only
// falsy values; 0, "", [], {} are all truthy (spec.md §8 property 4).
func (v Value) Truthy() bool {
	switch v.Kind {
	case KNil:
		return false
	case KBool:
		return v.Bool
	default:
		return true
	}
}

// Equals implements deep equality for numbers/booleans/strings/nil and
// reference equality otherwise (spec.md §4.3).
func (v Value) Equals(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KNil:
		return true
	case KBool:
		return v.Bool == other.Bool
	case KNumber:
		return v.Number == other.Number
	case KString:
		return v.Str == other.Str
	case KList:
		return v.List == other.List
	case KDict:
		return v.Dict == other.Dict
	case KTuple:
		return v.Tuple == other.Tuple
	case KFunction:
		return v.Function == other.Function
	case KLambda:
		return v.Lambda == other.Lambda
	case KNativeFunction:
		return v.Native == other.Native
	case KClass:
		return v.Class == other.Class
	case KInstance:
		return v.Instance == other.Instance
	case KModule:
		return v.Module == other.Module
	default:
		return false
	}
}

// TypeName returns this language's user-facing name for v's kind, used in
// TypeError messages.
func (v Value) TypeName() string {
	switch v.Kind {
	case KNil:
		return "nil"
	case KBool:
		return "bool"
	case KNumber:
		return "number"
	case KString:
		return "string"
	case KList:
		return "list"
	case KDict:
		return "dict"
	case KTuple:
		return "tuple"
	case KFunction, KLambda, KNativeFunction:
		return "function"
	case KClass:
		return "class"
	case KInstance:
		return v.Instance.Class.Name
	case KModule:
		return "module"
	default:
		return "unknown"
	}
}

// asInt64 truncates a finite Number to 64-bit two's-complement for the
// bitwise operators (spec.md §4.3).
func asInt64(n float64) int64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int64(n)
}

func stringify(v Value) string {
	switch v.Kind {
	case KNil:
		return "nil"
	case KBool:
		return fmt.Sprintf("%v", v.Bool)
	case KNumber:
		return formatNumber(v.Number)
	case KString:
		return v.Str
	default:
		return FormatValue(v)
	}
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) && !math.IsInf(n, 0) && math.Abs(n) < 1e15 {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}
