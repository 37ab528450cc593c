package mython

import (
	"bytes"
	"io"
)

func (s *Constant) Execute(scope Scope, ctx *Context) (Value, error) {
	return s.value, nil
}

func (s *Assignment) Execute(scope Scope, ctx *Context) (Value, error) {
	val, err := s.rhs.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	scope[s.name] = val
	return val, nil
}

func (s *VariableValue) Execute(scope Scope, ctx *Context) (Value, error) {
	val, ok := scope[s.path[0]]
	if !ok {
		return NewNone(), runtimeErrorf("unknown variable %s", s.path[0])
	}
	for _, field := range s.path[1:] {
		inst := val.Instance()
		if inst == nil {
			return NewNone(), runtimeErrorf("unknown field %s", field)
		}
		val = inst.fields[field]
	}
	return val, nil
}

func (s *FieldAssignment) Execute(scope Scope, ctx *Context) (Value, error) {
	obj, err := s.object.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	inst := obj.Instance()
	if inst == nil {
		return NewNone(), runtimeErrorf("cannot assign field %s on %s value", s.field, obj.Kind())
	}
	val, err := s.rhs.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	inst.fields[s.field] = val
	return val, nil
}

func (s *Print) Execute(scope Scope, ctx *Context) (Value, error) {
	out := ctx.Output()
	for i, arg := range s.args {
		val, err := arg.Execute(scope, ctx)
		if err != nil {
			return NewNone(), err
		}
		if i > 0 {
			if _, err := io.WriteString(out, " "); err != nil {
				return NewNone(), err
			}
		}
		if err := val.print(out, ctx); err != nil {
			return NewNone(), err
		}
	}
	if _, err := io.WriteString(out, "\n"); err != nil {
		return NewNone(), err
	}
	return NewNone(), nil
}

func (s *Stringify) Execute(scope Scope, ctx *Context) (Value, error) {
	val, err := s.arg.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	var buf bytes.Buffer
	if err := val.print(&buf, ctx); err != nil {
		return NewNone(), err
	}
	return NewString(buf.String()), nil
}

func (s *Add) Execute(scope Scope, ctx *Context) (Value, error) {
	left, err := s.lhs.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	right, err := s.rhs.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	switch {
	case left.Kind() == KindNumber && right.Kind() == KindNumber:
		return NewNumber(left.Number() + right.Number()), nil
	case left.Kind() == KindString && right.Kind() == KindString:
		return NewString(left.Str() + right.Str()), nil
	}
	if inst := left.Instance(); inst != nil && inst.HasMethod(addMethod, 1) {
		return inst.Call(addMethod, []Value{right}, ctx)
	}
	return NewNone(), runtimeErrorf("invalid add operation")
}

func (s *Sub) Execute(scope Scope, ctx *Context) (Value, error) {
	left, right, err := evalNumberPair(s.lhs, s.rhs, scope, ctx, "subtract")
	if err != nil {
		return NewNone(), err
	}
	return NewNumber(left - right), nil
}

func (s *Mult) Execute(scope Scope, ctx *Context) (Value, error) {
	left, right, err := evalNumberPair(s.lhs, s.rhs, scope, ctx, "mult")
	if err != nil {
		return NewNone(), err
	}
	return NewNumber(left * right), nil
}

func (s *Div) Execute(scope Scope, ctx *Context) (Value, error) {
	left, right, err := evalNumberPair(s.lhs, s.rhs, scope, ctx, "div")
	if err != nil {
		return NewNone(), err
	}
	if right == 0 {
		return NewNone(), runtimeErrorf("division by zero")
	}
	// Go's integer division truncates toward zero, which is the contract
	// for negative operands as well.
	return NewNumber(left / right), nil
}

func evalNumberPair(lhs, rhs Statement, scope Scope, ctx *Context, op string) (int64, int64, error) {
	left, err := lhs.Execute(scope, ctx)
	if err != nil {
		return 0, 0, err
	}
	right, err := rhs.Execute(scope, ctx)
	if err != nil {
		return 0, 0, err
	}
	if left.Kind() != KindNumber || right.Kind() != KindNumber {
		return 0, 0, runtimeErrorf("invalid %s operation", op)
	}
	return left.Number(), right.Number(), nil
}

func (s *Comparison) Execute(scope Scope, ctx *Context) (Value, error) {
	left, err := s.lhs.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	right, err := s.rhs.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	res, err := s.cmp(left, right, ctx)
	if err != nil {
		return NewNone(), err
	}
	return NewBool(res), nil
}

func (s *And) Execute(scope Scope, ctx *Context) (Value, error) {
	left, err := s.lhs.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	if !left.Truthy() {
		return NewBool(false), nil
	}
	right, err := s.rhs.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	return NewBool(right.Truthy()), nil
}

func (s *Or) Execute(scope Scope, ctx *Context) (Value, error) {
	left, err := s.lhs.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	if left.Truthy() {
		return NewBool(true), nil
	}
	right, err := s.rhs.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	return NewBool(right.Truthy()), nil
}

func (s *Not) Execute(scope Scope, ctx *Context) (Value, error) {
	val, err := s.arg.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	return NewBool(!val.Truthy()), nil
}

func (s *IfElse) Execute(scope Scope, ctx *Context) (Value, error) {
	cond, err := s.cond.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	if cond.Truthy() {
		if _, err := s.then.Execute(scope, ctx); err != nil {
			return NewNone(), err
		}
	} else if s.els != nil {
		if _, err := s.els.Execute(scope, ctx); err != nil {
			return NewNone(), err
		}
	}
	return NewNone(), nil
}

func (s *Compound) Execute(scope Scope, ctx *Context) (Value, error) {
	for _, stmt := range s.stmts {
		if _, err := stmt.Execute(scope, ctx); err != nil {
			return NewNone(), err
		}
		if _, returned := scope[returnedValue]; returned {
			return NewNone(), nil
		}
	}
	return NewNone(), nil
}

func (s *Return) Execute(scope Scope, ctx *Context) (Value, error) {
	val, err := s.expr.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	scope[returnedValue] = val
	return NewNone(), nil
}

func (s *MethodBody) Execute(scope Scope, ctx *Context) (Value, error) {
	if _, err := s.body.Execute(scope, ctx); err != nil {
		return NewNone(), err
	}
	if val, returned := scope[returnedValue]; returned {
		return val, nil
	}
	return NewNone(), nil
}

func (s *ClassDefinition) Execute(scope Scope, ctx *Context) (Value, error) {
	scope[s.cls.Class().Name()] = s.cls
	return NewNone(), nil
}

func (s *Instantiation) Execute(scope Scope, ctx *Context) (Value, error) {
	inst := NewInstance(s.class)
	obj := NewInstanceValue(inst)

	init := s.class.GetMethod(initMethod)
	if init == nil || len(init.Formals) != len(s.args) {
		return obj, nil
	}
	args, err := evalArgs(s.args, scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	afterInit, err := inst.Call(initMethod, args, ctx)
	if err != nil {
		return NewNone(), err
	}
	if !afterInit.IsNone() {
		return afterInit, nil
	}
	return obj, nil
}

func (s *MethodCall) Execute(scope Scope, ctx *Context) (Value, error) {
	obj, err := s.object.Execute(scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	inst := obj.Instance()
	if inst == nil {
		return NewNone(), runtimeErrorf("method %s called on %s value", s.method, obj.Kind())
	}
	args, err := evalArgs(s.args, scope, ctx)
	if err != nil {
		return NewNone(), err
	}
	return inst.Call(s.method, args, ctx)
}

func evalArgs(exprs []Statement, scope Scope, ctx *Context) ([]Value, error) {
	args := make([]Value, len(exprs))
	for i, expr := range exprs {
		val, err := expr.Execute(scope, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	return args, nil
}
