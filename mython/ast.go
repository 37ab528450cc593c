package mython

// Statement is an executable AST node. Execute runs the node against a
// scope and a context and yields the node's value; statements that have
// no value yield None.
type Statement interface {
	Execute(scope Scope, ctx *Context) (Value, error)
}

// Constant yields a fixed value.
type Constant struct {
	value Value
}

func NewConstant(v Value) *Constant {
	return &Constant{value: v}
}

// Assignment binds the value of rhs to a name in the current scope.
type Assignment struct {
	name string
	rhs  Statement
}

func NewAssignment(name string, rhs Statement) *Assignment {
	return &Assignment{name: name, rhs: rhs}
}

// VariableValue reads a variable, optionally following a chain of
// instance fields (a.b.c).
type VariableValue struct {
	path []string
}

func NewVariableValue(name string) *VariableValue {
	return &VariableValue{path: []string{name}}
}

func NewDottedValue(path []string) *VariableValue {
	return &VariableValue{path: path}
}

// FieldAssignment stores the value of rhs into a field of the instance
// that object evaluates to. The field is created if absent.
type FieldAssignment struct {
	object Statement
	field  string
	rhs    Statement
}

func NewFieldAssignment(object Statement, field string, rhs Statement) *FieldAssignment {
	return &FieldAssignment{object: object, field: field, rhs: rhs}
}

// Print writes its arguments' printed forms, space-separated and
// newline-terminated, to the context's output stream.
type Print struct {
	args []Statement
}

func NewPrint(args ...Statement) *Print {
	return &Print{args: args}
}

// Stringify evaluates its argument and yields its printed form as a
// string value, honouring __str__ on instances.
type Stringify struct {
	arg Statement
}

func NewStringify(arg Statement) *Stringify {
	return &Stringify{arg: arg}
}

type Add struct{ lhs, rhs Statement }

func NewAdd(lhs, rhs Statement) *Add { return &Add{lhs: lhs, rhs: rhs} }

type Sub struct{ lhs, rhs Statement }

func NewSub(lhs, rhs Statement) *Sub { return &Sub{lhs: lhs, rhs: rhs} }

type Mult struct{ lhs, rhs Statement }

func NewMult(lhs, rhs Statement) *Mult { return &Mult{lhs: lhs, rhs: rhs} }

type Div struct{ lhs, rhs Statement }

func NewDiv(lhs, rhs Statement) *Div { return &Div{lhs: lhs, rhs: rhs} }

// Comparison applies a comparator to its operands and yields a bool.
type Comparison struct {
	cmp Comparator
	lhs Statement
	rhs Statement
}

func NewComparison(cmp Comparator, lhs, rhs Statement) *Comparison {
	return &Comparison{cmp: cmp, lhs: lhs, rhs: rhs}
}

// And yields the truth of both operands, skipping the right one when the
// left is already false.
type And struct{ lhs, rhs Statement }

func NewAnd(lhs, rhs Statement) *And { return &And{lhs: lhs, rhs: rhs} }

// Or yields the truth of either operand, skipping the right one when the
// left is already true.
type Or struct{ lhs, rhs Statement }

func NewOr(lhs, rhs Statement) *Or { return &Or{lhs: lhs, rhs: rhs} }

type Not struct{ arg Statement }

func NewNot(arg Statement) *Not { return &Not{arg: arg} }

// IfElse executes the then-branch when the condition is truthy, the
// else-branch (if any) otherwise.
type IfElse struct {
	cond Statement
	then Statement
	els  Statement
}

func NewIfElse(cond, then, els Statement) *IfElse {
	return &IfElse{cond: cond, then: then, els: els}
}

// Compound executes statements in order, stopping as soon as one of them
// has recorded an early return in the scope.
type Compound struct {
	stmts []Statement
}

func NewCompound(stmts ...Statement) *Compound {
	return &Compound{stmts: stmts}
}

// Append adds a statement to the end of the compound.
func (c *Compound) Append(stmt Statement) {
	c.stmts = append(c.stmts, stmt)
}

// Return evaluates its expression and records it as the enclosing
// method's result.
type Return struct {
	expr Statement
}

func NewReturn(expr Statement) *Return {
	return &Return{expr: expr}
}

// MethodBody wraps a method's statements and converts a recorded early
// return into the call's result.
type MethodBody struct {
	body Statement
}

func NewMethodBody(body Statement) *MethodBody {
	return &MethodBody{body: body}
}

// ClassDefinition binds a class value to its own name in the scope.
type ClassDefinition struct {
	cls Value
}

func NewClassDefinition(cls Value) *ClassDefinition {
	return &ClassDefinition{cls: cls}
}

// Instantiation constructs an instance of a class, invoking __init__
// when its arity matches the supplied arguments.
type Instantiation struct {
	class *Class
	args  []Statement
}

func NewInstantiation(class *Class, args ...Statement) *Instantiation {
	return &Instantiation{class: class, args: args}
}

// MethodCall dispatches a method on the instance the receiver evaluates
// to.
type MethodCall struct {
	object Statement
	method string
	args   []Statement
}

func NewMethodCall(object Statement, method string, args ...Statement) *MethodCall {
	return &MethodCall{object: object, method: method, args: args}
}
