package mython

import (
	"fmt"
	"io"
)

// ValueKind tags the runtime type of a Value.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindNumber
	KindString
	KindBool
	KindClass
	KindInstance
)

// Value is a Mython runtime value. The zero Value is None. Class and
// instance payloads are held by pointer, so copies of a Value share the
// underlying object; every binding of the same instance observes field
// assignments made through any other binding.
type Value struct {
	kind ValueKind
	data any
}

func NewNone() Value            { return Value{} }
func NewNumber(n int64) Value   { return Value{kind: KindNumber, data: n} }
func NewString(s string) Value  { return Value{kind: KindString, data: s} }
func NewBool(b bool) Value      { return Value{kind: KindBool, data: b} }
func NewClassValue(c *Class) Value {
	return Value{kind: KindClass, data: c}
}
func NewInstanceValue(inst *Instance) Value {
	return Value{kind: KindInstance, data: inst}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNone() bool { return v.kind == KindNone }

func (v Value) Number() int64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.data.(int64)
}

func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.data.(string)
}

func (v Value) Bool() bool {
	if v.kind != KindBool {
		return false
	}
	return v.data.(bool)
}

// Class returns the class payload, or nil when the value is not a class.
func (v Value) Class() *Class {
	if v.kind != KindClass {
		return nil
	}
	return v.data.(*Class)
}

// Instance returns the instance payload, or nil when the value is not an
// instance.
func (v Value) Instance() *Instance {
	if v.kind != KindInstance {
		return nil
	}
	return v.data.(*Instance)
}

// Truthy implements the language truth test: None is false, booleans are
// themselves, numbers are true when nonzero, strings when non-empty, and
// everything else is false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.Bool()
	case KindNumber:
		return v.Number() != 0
	case KindString:
		return v.Str() != ""
	default:
		return false
	}
}

func (k ValueKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders the value without dispatching __str__; instances show
// an opaque identity marker. Printing through a Context honours __str__.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindNumber:
		return fmt.Sprintf("%d", v.Number())
	case KindString:
		return v.Str()
	case KindBool:
		if v.Bool() {
			return "True"
		}
		return "False"
	case KindClass:
		return "Class " + v.Class().Name()
	case KindInstance:
		inst := v.Instance()
		return fmt.Sprintf("<%s object at %p>", inst.class.Name(), inst)
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// print writes the value's printed form, dispatching __str__ on
// instances that define it with no parameters.
func (v Value) print(out io.Writer, ctx *Context) error {
	if inst := v.Instance(); inst != nil && inst.HasMethod(strMethod, 0) {
		res, err := inst.Call(strMethod, nil, ctx)
		if err != nil {
			return err
		}
		return res.print(out, ctx)
	}
	_, err := io.WriteString(out, v.String())
	return err
}
