package mython

// Comparator decides an ordering relation between two values.
type Comparator func(lhs, rhs Value, ctx *Context) (bool, error)

// Equal compares two values: None equals None, same-typed numbers,
// strings, and booleans compare naturally, and an instance on the left
// may define __eq__ taking one argument. Anything else fails.
func Equal(lhs, rhs Value, ctx *Context) (bool, error) {
	if lhs.IsNone() && rhs.IsNone() {
		return true, nil
	}
	switch {
	case lhs.Kind() == KindNumber && rhs.Kind() == KindNumber:
		return lhs.Number() == rhs.Number(), nil
	case lhs.Kind() == KindString && rhs.Kind() == KindString:
		return lhs.Str() == rhs.Str(), nil
	case lhs.Kind() == KindBool && rhs.Kind() == KindBool:
		return lhs.Bool() == rhs.Bool(), nil
	}
	if inst := lhs.Instance(); inst != nil && inst.HasMethod(eqMethod, 1) {
		res, err := inst.Call(eqMethod, []Value{rhs}, ctx)
		if err != nil {
			return false, err
		}
		return res.Truthy(), nil
	}
	return false, runtimeErrorf("Cannot compare objects for equality")
}

// Less orders two values: numbers numerically, strings
// lexicographically, booleans with False before True, and instances via
// __lt__ taking one argument.
func Less(lhs, rhs Value, ctx *Context) (bool, error) {
	switch {
	case lhs.Kind() == KindNumber && rhs.Kind() == KindNumber:
		return lhs.Number() < rhs.Number(), nil
	case lhs.Kind() == KindString && rhs.Kind() == KindString:
		return lhs.Str() < rhs.Str(), nil
	case lhs.Kind() == KindBool && rhs.Kind() == KindBool:
		return !lhs.Bool() && rhs.Bool(), nil
	}
	if inst := lhs.Instance(); inst != nil && inst.HasMethod(ltMethod, 1) {
		res, err := inst.Call(ltMethod, []Value{rhs}, ctx)
		if err != nil {
			return false, err
		}
		return res.Truthy(), nil
	}
	return false, runtimeErrorf("Cannot compare objects for less")
}

func NotEqual(lhs, rhs Value, ctx *Context) (bool, error) {
	eq, err := Equal(lhs, rhs, ctx)
	return !eq, err
}

func Greater(lhs, rhs Value, ctx *Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	eq, err := Equal(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !less && !eq, nil
}

func LessOrEqual(lhs, rhs Value, ctx *Context) (bool, error) {
	greater, err := Greater(lhs, rhs, ctx)
	return !greater, err
}

func GreaterOrEqual(lhs, rhs Value, ctx *Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	return !less, err
}
