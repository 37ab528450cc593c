package mython

// parser assembles AST statements from the lexer's token stream. Class
// names are resolved while parsing, so a class must be defined before it
// is extended or instantiated.
type parser struct {
	tokens  []Token
	pos     int
	classes map[string]*Class

	// inMethod is true while parsing a method body; return statements
	// are only legal there, which keeps the returned-value sentinel out
	// of the global scope.
	inMethod bool
}

func parse(source string) (*Compound, error) {
	return parseWithClasses(source, make(map[string]*Class))
}

func parseWithClasses(source string, classes map[string]*Class) (*Compound, error) {
	lex, err := NewLexer(source)
	if err != nil {
		return nil, err
	}
	tokens := []Token{lex.Current()}
	for tokens[len(tokens)-1].Kind != TokenEof {
		tok, err := lex.Advance()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	for _, tok := range tokens {
		if tok.Kind == TokenId && tok.Text == returnedValue {
			return nil, syntaxErrorf("%s is a reserved name", returnedValue)
		}
	}
	p := &parser{tokens: tokens, classes: classes}
	return p.parseProgram()
}

func (p *parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *parser) isChar(c byte) bool {
	tok := p.cur()
	return tok.Kind == TokenChar && tok.Ch == c
}

func (p *parser) expectChar(c byte) error {
	if !p.isChar(c) {
		return syntaxErrorf("expected %q, got %s", c, p.cur())
	}
	p.next()
	return nil
}

func (p *parser) expectId() (string, error) {
	tok := p.cur()
	if tok.Kind != TokenId {
		return "", syntaxErrorf("expected identifier, got %s", tok)
	}
	p.next()
	return tok.Text, nil
}

func (p *parser) expectKind(kind TokenKind) error {
	if p.cur().Kind != kind {
		return syntaxErrorf("expected %s, got %s", kind, p.cur())
	}
	p.next()
	return nil
}

// endOfLine consumes the statement terminator: a Newline, or Eof which
// stays put so the program loop can see it.
func (p *parser) endOfLine() error {
	switch p.cur().Kind {
	case TokenNewline:
		p.next()
		return nil
	case TokenEof, TokenDedent:
		return nil
	default:
		return syntaxErrorf("expected end of line, got %s", p.cur())
	}
}

func (p *parser) parseProgram() (*Compound, error) {
	program := NewCompound()
	for p.cur().Kind != TokenEof {
		if p.cur().Kind == TokenNewline {
			p.next()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Append(stmt)
	}
	return program, nil
}

func (p *parser) parseStatement() (Statement, error) {
	switch p.cur().Kind {
	case TokenClass:
		return p.parseClassDefinition()
	case TokenIf:
		return p.parseIfElse()
	case TokenPrint:
		return p.parsePrint()
	case TokenReturn:
		if !p.inMethod {
			return nil, syntaxErrorf("return outside of method body")
		}
		p.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.endOfLine(); err != nil {
			return nil, err
		}
		return NewReturn(expr), nil
	default:
		return p.parseSimpleStatement()
	}
}

func (p *parser) parseClassDefinition() (Statement, error) {
	p.next() // class
	name, err := p.expectId()
	if err != nil {
		return nil, err
	}

	var parent *Class
	if p.isChar('(') {
		p.next()
		parentName, err := p.expectId()
		if err != nil {
			return nil, err
		}
		parent = p.classes[parentName]
		if parent == nil {
			return nil, syntaxErrorf("unknown parent class %s", parentName)
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
	}

	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if err := p.expectKind(TokenNewline); err != nil {
		return nil, err
	}
	if err := p.expectKind(TokenIndent); err != nil {
		return nil, err
	}

	// Register the class before its body so methods can instantiate it.
	cls := NewClass(name, nil, parent)
	p.classes[name] = cls

	var methods []Method
	for p.cur().Kind != TokenDedent {
		if p.cur().Kind == TokenNewline {
			p.next()
			continue
		}
		if p.cur().Kind != TokenDef {
			return nil, syntaxErrorf("expected method definition, got %s", p.cur())
		}
		method, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	p.next() // dedent

	cls.defineMethods(methods)
	return NewClassDefinition(NewClassValue(cls)), nil
}

func (p *parser) parseMethod() (Method, error) {
	p.next() // def
	name, err := p.expectId()
	if err != nil {
		return Method{}, err
	}
	if err := p.expectChar('('); err != nil {
		return Method{}, err
	}
	var formals []string
	if !p.isChar(')') {
		for {
			formal, err := p.expectId()
			if err != nil {
				return Method{}, err
			}
			formals = append(formals, formal)
			if !p.isChar(',') {
				break
			}
			p.next()
		}
	}
	if err := p.expectChar(')'); err != nil {
		return Method{}, err
	}
	// self is bound by dispatch, not as a formal; callers never pass it.
	if len(formals) == 0 || formals[0] != "self" {
		return Method{}, syntaxErrorf("first parameter of method %s must be self", name)
	}
	formals = formals[1:]

	outer := p.inMethod
	p.inMethod = true
	body, err := p.parseSuite()
	p.inMethod = outer
	if err != nil {
		return Method{}, err
	}
	return Method{Name: name, Formals: formals, Body: NewMethodBody(body)}, nil
}

func (p *parser) parseIfElse() (Statement, error) {
	p.next() // if
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	var els Statement
	if p.cur().Kind == TokenElse {
		p.next()
		alt, err := p.parseSuite()
		if err != nil {
			return nil, err
		}
		els = alt
	}
	return NewIfElse(cond, then, els), nil
}

// parseSuite parses `:` followed by either an indented block or a single
// inline statement on the same line.
func (p *parser) parseSuite() (Statement, error) {
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if p.cur().Kind != TokenNewline {
		return p.parseStatement()
	}
	p.next() // newline
	if err := p.expectKind(TokenIndent); err != nil {
		return nil, err
	}
	block := NewCompound()
	for p.cur().Kind != TokenDedent {
		if p.cur().Kind == TokenNewline {
			p.next()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Append(stmt)
	}
	p.next() // dedent
	return block, nil
}

func (p *parser) parsePrint() (Statement, error) {
	p.next() // print
	var args []Statement
	if p.cur().Kind != TokenNewline && p.cur().Kind != TokenEof {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.isChar(',') {
				break
			}
			p.next()
		}
	}
	if err := p.endOfLine(); err != nil {
		return nil, err
	}
	return NewPrint(args...), nil
}

func (p *parser) parseSimpleStatement() (Statement, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	stmt := expr
	if p.isChar('=') {
		target, ok := expr.(*VariableValue)
		if !ok {
			return nil, syntaxErrorf("invalid assignment target")
		}
		p.next()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if len(target.path) == 1 {
			stmt = NewAssignment(target.path[0], rhs)
		} else {
			object := NewDottedValue(target.path[:len(target.path)-1])
			stmt = NewFieldAssignment(object, target.path[len(target.path)-1], rhs)
		}
	}
	if err := p.endOfLine(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseExpr() (Statement, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (Statement, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokenOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = NewOr(left, right)
	}
	return left, nil
}

func (p *parser) parseAnd() (Statement, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokenAnd {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = NewAnd(left, right)
	}
	return left, nil
}

func (p *parser) parseNot() (Statement, error) {
	if p.cur().Kind == TokenNot {
		p.next()
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return NewNot(arg), nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Statement, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	cmp := p.comparatorFor(p.cur())
	if cmp == nil {
		return left, nil
	}
	p.next()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return NewComparison(cmp, left, right), nil
}

func (p *parser) comparatorFor(tok Token) Comparator {
	switch tok.Kind {
	case TokenEq:
		return Equal
	case TokenNotEq:
		return NotEqual
	case TokenLessOrEq:
		return LessOrEqual
	case TokenGreaterOrEq:
		return GreaterOrEqual
	case TokenChar:
		switch tok.Ch {
		case '<':
			return Less
		case '>':
			return Greater
		}
	}
	return nil
}

func (p *parser) parseAdditive() (Statement, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.isChar('+') || p.isChar('-') {
		plus := p.isChar('+')
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if plus {
			left = NewAdd(left, right)
		} else {
			left = NewSub(left, right)
		}
	}
	return left, nil
}

func (p *parser) parseTerm() (Statement, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isChar('*') || p.isChar('/') {
		mult := p.isChar('*')
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if mult {
			left = NewMult(left, right)
		} else {
			left = NewDiv(left, right)
		}
	}
	return left, nil
}

func (p *parser) parseUnary() (Statement, error) {
	if p.isChar('-') {
		p.next()
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NewSub(NewConstant(NewNumber(0)), arg), nil
	}
	if p.isChar('+') {
		p.next()
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Statement, error) {
	tok := p.cur()
	switch tok.Kind {
	case TokenNumber:
		p.next()
		return NewConstant(NewNumber(tok.Number)), nil
	case TokenString:
		p.next()
		return NewConstant(NewString(tok.Text)), nil
	case TokenTrue:
		p.next()
		return NewConstant(NewBool(true)), nil
	case TokenFalse:
		p.next()
		return NewConstant(NewBool(false)), nil
	case TokenNone:
		p.next()
		return NewConstant(NewNone()), nil
	case TokenChar:
		if tok.Ch == '(' {
			p.next()
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectChar(')'); err != nil {
				return nil, err
			}
			return p.parsePostfix(expr)
		}
	case TokenId:
		return p.parseNameExpression()
	}
	return nil, syntaxErrorf("unexpected token %s", tok)
}

func (p *parser) parseNameExpression() (Statement, error) {
	name := p.cur().Text
	p.next()

	if p.isChar('(') {
		if name == "str" {
			p.next()
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectChar(')'); err != nil {
				return nil, err
			}
			return p.parsePostfix(NewStringify(arg))
		}
		cls := p.classes[name]
		if cls == nil {
			return nil, syntaxErrorf("unknown class %s", name)
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return p.parsePostfix(NewInstantiation(cls, args...))
	}

	path := []string{name}
	for p.isChar('.') {
		p.next()
		field, err := p.expectId()
		if err != nil {
			return nil, err
		}
		if p.isChar('(') {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return p.parsePostfix(NewMethodCall(NewDottedValue(path), field, args...))
		}
		path = append(path, field)
	}
	return NewDottedValue(path), nil
}

// parsePostfix parses chained method calls on an already-parsed
// receiver, e.g. A().label().upper(). Field reads are only valid on
// identifier chains, so a dot here must introduce a call.
func (p *parser) parsePostfix(receiver Statement) (Statement, error) {
	for p.isChar('.') {
		p.next()
		method, err := p.expectId()
		if err != nil {
			return nil, err
		}
		if !p.isChar('(') {
			return nil, syntaxErrorf("expected %q after method name %s", byte('('), method)
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		receiver = NewMethodCall(receiver, method, args...)
	}
	return receiver, nil
}

func (p *parser) parseArgs() ([]Statement, error) {
	if err := p.expectChar('('); err != nil {
		return nil, err
	}
	var args []Statement
	if !p.isChar(')') {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.isChar(',') {
				break
			}
			p.next()
		}
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	return args, nil
}
