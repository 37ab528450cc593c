package mython

const (
	initMethod = "__init__"
	strMethod  = "__str__"
	eqMethod   = "__eq__"
	ltMethod   = "__lt__"
	addMethod  = "__add__"
)

// Method is a named method body with its formal parameter names.
type Method struct {
	Name    string
	Formals []string
	Body    Statement
}

// Class describes a user-defined class: its methods plus an optional
// parent for single inheritance. Lookup consults the local method index
// first and then walks the parent chain.
type Class struct {
	name    string
	methods []Method
	byName  map[string]int
	parent  *Class
}

func NewClass(name string, methods []Method, parent *Class) *Class {
	cls := &Class{name: name, parent: parent}
	cls.defineMethods(methods)
	return cls
}

// defineMethods installs the method vector and rebuilds the name index.
// The parser registers a class before its body is parsed so methods can
// instantiate their own class.
func (c *Class) defineMethods(methods []Method) {
	c.methods = methods
	c.byName = make(map[string]int, len(methods))
	for i, m := range methods {
		c.byName[m.Name] = i
	}
}

func (c *Class) Name() string {
	return c.name
}

func (c *Class) Parent() *Class {
	return c.parent
}

// GetMethod returns the method with the given name, searching the class
// and then its ancestors; nil when no class in the chain defines it.
func (c *Class) GetMethod(name string) *Method {
	if i, ok := c.byName[name]; ok {
		return &c.methods[i]
	}
	if c.parent != nil {
		return c.parent.GetMethod(name)
	}
	return nil
}

// Instance is an object of a class. Fields spring into existence on
// first assignment; reading an unassigned field yields None.
type Instance struct {
	class  *Class
	fields Scope
}

func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: NewScope()}
}

func (in *Instance) ClassDef() *Class {
	return in.class
}

func (in *Instance) Fields() Scope {
	return in.fields
}

// HasMethod reports whether the instance's class chain defines method
// with exactly arity formal parameters.
func (in *Instance) HasMethod(method string, arity int) bool {
	m := in.class.GetMethod(method)
	return m != nil && len(m.Formals) == arity
}

// Call dispatches method on the instance. The body runs in a fresh scope
// holding self and the formals, so it cannot see the caller's locals. If
// the body rebinds self, the rebound value becomes the call's result;
// this is what lets __init__ hand the new instance back.
func (in *Instance) Call(method string, args []Value, ctx *Context) (Value, error) {
	if !in.HasMethod(method, len(args)) {
		return NewNone(), runtimeErrorf("method not found: %s", method)
	}
	m := in.class.GetMethod(method)

	callScope := make(Scope, len(args)+1)
	callScope["self"] = NewInstanceValue(in)
	for i, formal := range m.Formals {
		callScope[formal] = args[i]
	}

	result, err := m.Body.Execute(callScope, ctx)
	if err != nil {
		return NewNone(), err
	}
	if rebound := callScope["self"]; rebound.Instance() != in {
		return rebound, nil
	}
	return result, nil
}
