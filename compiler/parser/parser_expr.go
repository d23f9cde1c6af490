package parser

import (
	"github.com/jsonnetlang/jsonnet/compiler/lexer"
)

// Operator precedence levels, low to high. Jsonnet has no assignment or
// ternary operators; `if`/`local`/`function`/`error`/`assert`/`import*`
// are parsed as atoms so they can appear anywhere a value can, and their
// own sub-expressions are parsed at PrecNone so they extend as far right
// as possible (`local x = 1; x + 1` binds `+1` into the local's body).
const (
	PrecNone = iota
	PrecOr   // ||
	PrecAnd  // &&
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecEquality   // == !=
	PrecComparison // < <= > >= in
	PrecShift      // << >>
	PrecAdditive   // + -
	PrecMultiplicative
	PrecUnary
	PrecCall // . [] () {}
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.TOKEN_OR:      PrecOr,
	lexer.TOKEN_AND:     PrecAnd,
	lexer.TOKEN_BOR:     PrecBitOr,
	lexer.TOKEN_BXOR:    PrecBitXor,
	lexer.TOKEN_BAND:    PrecBitAnd,
	lexer.TOKEN_EQ:      PrecEquality,
	lexer.TOKEN_NE:      PrecEquality,
	lexer.TOKEN_LT:      PrecComparison,
	lexer.TOKEN_LE:      PrecComparison,
	lexer.TOKEN_GT:      PrecComparison,
	lexer.TOKEN_GE:      PrecComparison,
	lexer.TOKEN_IN:      PrecComparison,
	lexer.TOKEN_LSHIFT:  PrecShift,
	lexer.TOKEN_RSHIFT:  PrecShift,
	lexer.TOKEN_PLUS:    PrecAdditive,
	lexer.TOKEN_MINUS:   PrecAdditive,
	lexer.TOKEN_STAR:    PrecMultiplicative,
	lexer.TOKEN_SLASH:   PrecMultiplicative,
	lexer.TOKEN_PERCENT: PrecMultiplicative,
}

// parseExpr implements precedence-climbing over Jsonnet's binary operators.
// All binary operators are left-associative.
func (p *Parser) parseExpr(minPrec int) ExprNode {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for {
		prec, ok := binaryPrecedence[p.peek().Type]
		if !ok || prec < minPrec {
			break
		}

		opTok := p.advance()

		// `in super` is the one binary form whose right side is the bare
		// `super` keyword rather than a general expression.
		if opTok.Type == lexer.TOKEN_IN && p.check(lexer.TOKEN_SUPER) {
			superTok := p.advance()
			left = NewBinaryExpr(left, lexer.TOKEN_IN, NewSuperExpr(TokenToLocation(superTok, p.file)), TokenToLocation(opTok, p.file))
			continue
		}

		right := p.parseExpr(prec + 1)
		if right == nil {
			p.addError(ParseError{Message: "expected expression after operator " + opTok.Lexeme, Location: p.here()})
			return left
		}
		left = NewBinaryExpr(left, opTok.Type, right, TokenToLocation(opTok, p.file))
	}

	return left
}

// parseUnary handles prefix `- + ! ~`, which bind tighter than any binary
// operator but wrap a full postfix-expression chain.
func (p *Parser) parseUnary() ExprNode {
	if p.check(lexer.TOKEN_MINUS) || p.check(lexer.TOKEN_PLUS) ||
		p.check(lexer.TOKEN_NOT) || p.check(lexer.TOKEN_BNOT) {
		tok := p.advance()
		operand := p.parseUnary()
		if operand == nil {
			p.addError(ParseError{Message: "expected expression after unary operator " + tok.Lexeme, Location: p.here()})
			return nil
		}
		return NewUnaryExpr(tok.Type, operand, TokenToLocation(tok, p.file))
	}
	return p.parsePostfix()
}

// parsePostfix parses an atom followed by any chain of `.field`, `[index]`,
// `[begin:end:step]`, `(args)`, and `{fields}` (apply-brace sugar).
func (p *Parser) parsePostfix() ExprNode {
	expr := p.parseAtom()
	if expr == nil {
		return nil
	}

	for {
		switch {
		case p.check(lexer.TOKEN_DOT):
			dotTok := p.advance()
			name, ok := p.parseFieldName()
			if !ok {
				return expr
			}
			expr = p.wrapIndex(expr, NewStringExpr(name, TokenToLocation(dotTok, p.file)), TokenToLocation(dotTok, p.file))

		case p.check(lexer.TOKEN_LBRACKET):
			expr = p.parseIndexOrSlice(expr)

		case p.check(lexer.TOKEN_LPAREN):
			expr = p.parseCall(expr)

		case p.check(lexer.TOKEN_LBRACE):
			loc := p.here()
			obj := p.parseObjectLiteral()
			objExpr, ok := obj.(*ObjectExpr)
			if !ok {
				p.addError(ParseError{Message: "expected object literal after expression", Location: loc})
				return expr
			}
			expr = NewApplyBraceExpr(expr, objExpr, loc)

		default:
			return expr
		}
	}
}

// wrapIndex produces a SuperIndexExpr when indexing bare `super`, and a
// plain IndexExpr otherwise.
func (p *Parser) wrapIndex(target ExprNode, index ExprNode, loc SourceLocation) ExprNode {
	if _, ok := target.(*SuperExpr); ok {
		return NewSuperIndexExpr(index, loc)
	}
	return NewIndexExpr(target, index, loc)
}

// parseFieldName accepts the plain identifier that follows a '.'; a keyword
// in that position (such as `local`) is rejected.
func (p *Parser) parseFieldName() (string, bool) {
	tok, ok := p.consume(lexer.TOKEN_IDENTIFIER, "expected field name after '.'")
	if !ok {
		return "", false
	}
	return tok.Lexeme, true
}

// parseIndexOrSlice parses `target[i]` or `target[begin:end:step]`, where
// each slice component may be omitted. A slice desugars to a call of
// `std.slice`.
func (p *Parser) parseIndexOrSlice(target ExprNode) ExprNode {
	lbracket := p.advance()
	loc := TokenToLocation(lbracket, p.file)

	var begin, end, step ExprNode
	sawColon := false

	if !p.check(lexer.TOKEN_COLON) && !p.check(lexer.TOKEN_RBRACKET) {
		begin = p.parseExpr(PrecNone)
	}

	if p.match(lexer.TOKEN_COLON) {
		sawColon = true
		if !p.check(lexer.TOKEN_COLON) && !p.check(lexer.TOKEN_RBRACKET) {
			end = p.parseExpr(PrecNone)
		}
		if p.match(lexer.TOKEN_COLON) {
			if !p.check(lexer.TOKEN_RBRACKET) {
				step = p.parseExpr(PrecNone)
			}
		}
	}

	p.consume(lexer.TOKEN_RBRACKET, "expected ']'")

	if !sawColon {
		if begin == nil {
			p.addError(ParseError{Message: "expected index expression", Location: loc})
			return target
		}
		return p.wrapIndex(target, begin, loc)
	}

	nullOr := func(e ExprNode) ExprNode {
		if e == nil {
			return NewNullExpr(loc)
		}
		return e
	}
	sliceCallee := NewIndexExpr(
		NewIdentifierExpr("std", loc),
		NewStringExpr("slice", loc),
		loc,
	)
	return NewApplyExpr(sliceCallee, []Argument{
		{Value: target},
		{Value: nullOr(begin)},
		{Value: nullOr(end)},
		{Value: nullOr(step)},
	}, false, loc)
}

// parseCall parses `(args)` optionally followed by `tailstrict`.
func (p *Parser) parseCall(target ExprNode) ExprNode {
	lparen := p.advance()
	loc := TokenToLocation(lparen, p.file)

	var args []Argument
	if !p.check(lexer.TOKEN_RPAREN) {
		for {
			if p.check(lexer.TOKEN_IDENTIFIER) && p.peekAt(1).Type == lexer.TOKEN_ASSIGN {
				name := p.advance().Lexeme
				p.advance() // '='
				val := p.parseExpr(PrecNone)
				args = append(args, Argument{Name: name, Value: val})
			} else {
				val := p.parseExpr(PrecNone)
				args = append(args, Argument{Value: val})
			}
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
			if p.check(lexer.TOKEN_RPAREN) {
				break
			}
		}
	}
	p.consume(lexer.TOKEN_RPAREN, "expected ')' after arguments")

	tailstrict := p.match(lexer.TOKEN_TAILSTRICT)

	return NewApplyExpr(target, args, tailstrict, loc)
}

// parseAtom parses the innermost, non-recursive-via-precedence forms:
// literals, identifiers, self/$/super, parenthesized expressions, arrays,
// objects, and the keyword-led constructs that extend to the right.
func (p *Parser) parseAtom() ExprNode {
	tok := p.peek()
	loc := TokenToLocation(tok, p.file)

	switch tok.Type {
	case lexer.TOKEN_NUMBER:
		p.advance()
		return NewNumberExpr(tok.Literal.(float64), loc)

	case lexer.TOKEN_STRING:
		p.advance()
		lit, _ := tok.Literal.(string)
		return NewStringExpr(lit, loc)

	case lexer.TOKEN_TRUE:
		p.advance()
		return NewBoolExpr(true, loc)

	case lexer.TOKEN_FALSE:
		p.advance()
		return NewBoolExpr(false, loc)

	case lexer.TOKEN_NULL:
		p.advance()
		return NewNullExpr(loc)

	case lexer.TOKEN_SELF:
		p.advance()
		return NewSelfExpr(loc)

	case lexer.TOKEN_DOLLAR:
		p.advance()
		return NewDollarExpr(loc)

	case lexer.TOKEN_SUPER:
		p.advance()
		return NewSuperExpr(loc)

	case lexer.TOKEN_IDENTIFIER:
		p.advance()
		return NewIdentifierExpr(tok.Lexeme, loc)

	case lexer.TOKEN_LPAREN:
		p.advance()
		inner := p.parseExpr(PrecNone)
		p.consume(lexer.TOKEN_RPAREN, "expected ')'")
		return inner

	case lexer.TOKEN_LBRACKET:
		return p.parseArrayLiteral()

	case lexer.TOKEN_LBRACE:
		return p.parseObjectLiteral()

	case lexer.TOKEN_LOCAL:
		return p.parseLocal()

	case lexer.TOKEN_IF:
		return p.parseIf()

	case lexer.TOKEN_FUNCTION:
		return p.parseFunction()

	case lexer.TOKEN_IMPORT:
		p.advance()
		path, ok := p.parseStringLiteral()
		if !ok {
			return nil
		}
		return NewImportExpr(path, loc)

	case lexer.TOKEN_IMPORTSTR:
		p.advance()
		path, ok := p.parseStringLiteral()
		if !ok {
			return nil
		}
		return NewImportStrExpr(path, loc)

	case lexer.TOKEN_IMPORTBIN:
		p.advance()
		path, ok := p.parseStringLiteral()
		if !ok {
			return nil
		}
		return NewImportBinExpr(path, loc)

	case lexer.TOKEN_ERROR:
		p.advance()
		inner := p.parseExpr(PrecNone)
		return NewErrorExpr(inner, loc)

	case lexer.TOKEN_ASSERT:
		return p.parseAssertExpr()

	default:
		p.addError(ParseError{Message: "unexpected token: " + tok.Lexeme, Location: loc})
		p.synchronize()
		return nil
	}
}

func (p *Parser) parseStringLiteral() (string, bool) {
	tok, ok := p.consume(lexer.TOKEN_STRING, "expected string literal")
	if !ok {
		return "", false
	}
	lit, _ := tok.Literal.(string)
	return lit, true
}

// parseArrayLiteral parses `[]`, `[a, b, c]`, or `[body for x in it if c]`.
func (p *Parser) parseArrayLiteral() ExprNode {
	lbracket := p.advance()
	loc := TokenToLocation(lbracket, p.file)

	if p.match(lexer.TOKEN_RBRACKET) {
		return NewArrayExpr(nil, loc)
	}

	first := p.parseExpr(PrecNone)

	if p.check(lexer.TOKEN_FOR) {
		clauses := p.parseCompClauses()
		p.consume(lexer.TOKEN_RBRACKET, "expected ']' after array comprehension")
		return NewArrayCompExpr(first, clauses, loc)
	}

	elements := []ExprNode{first}
	for p.match(lexer.TOKEN_COMMA) {
		if p.check(lexer.TOKEN_RBRACKET) {
			break
		}
		elements = append(elements, p.parseExpr(PrecNone))
	}
	p.consume(lexer.TOKEN_RBRACKET, "expected ']' after array elements")
	return NewArrayExpr(elements, loc)
}

// parseCompClauses parses the `for x in e (if cond | for y in e2)*` tail of
// a comprehension. The first clause is always `for`.
func (p *Parser) parseCompClauses() []CompClause {
	var clauses []CompClause
	forTok, ok := p.consume(lexer.TOKEN_FOR, "comprehension must start with 'for'")
	if !ok {
		return clauses
	}
	_ = forTok
	name, ok := p.consume(lexer.TOKEN_IDENTIFIER, "expected loop variable name")
	if !ok {
		return clauses
	}
	p.consume(lexer.TOKEN_IN, "expected 'in' after loop variable")
	iter := p.parseExpr(PrecNone)
	clauses = append(clauses, &ForClause{Var: name.Lexeme, Iter: iter})

	for {
		if p.match(lexer.TOKEN_FOR) {
			n, ok := p.consume(lexer.TOKEN_IDENTIFIER, "expected loop variable name")
			if !ok {
				break
			}
			p.consume(lexer.TOKEN_IN, "expected 'in' after loop variable")
			it := p.parseExpr(PrecNone)
			clauses = append(clauses, &ForClause{Var: n.Lexeme, Iter: it})
		} else if p.match(lexer.TOKEN_IF) {
			cond := p.parseExpr(PrecNone)
			clauses = append(clauses, &IfClause{Cond: cond})
		} else {
			break
		}
	}
	return clauses
}

type objMember struct {
	field  *ObjectField
	local  *ObjectLocal
	assert *ObjectAssert
}

// parseObjectLiteral parses `{}`, a field/local/assert-separated object
// literal, or an object comprehension (a single computed field followed by
// `for`/`if` clauses, optionally preceded by locals).
func (p *Parser) parseObjectLiteral() ExprNode {
	lbrace := p.advance()
	loc := TokenToLocation(lbrace, p.file)

	if p.match(lexer.TOKEN_RBRACE) {
		return NewObjectExpr(nil, nil, nil, loc)
	}

	var members []objMember
	for {
		m := p.parseObjectMember()
		members = append(members, m)

		if m.field != nil && m.field.computedKey && p.check(lexer.TOKEN_FOR) {
			return p.finishObjectComp(members, loc)
		}

		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
		if p.check(lexer.TOKEN_RBRACE) {
			break
		}
	}
	p.consume(lexer.TOKEN_RBRACE, "expected '}' after object members")

	var fields []*ObjectField
	var locals []*ObjectLocal
	var asserts []*ObjectAssert
	for _, m := range members {
		switch {
		case m.field != nil:
			fields = append(fields, m.field)
		case m.local != nil:
			locals = append(locals, m.local)
		case m.assert != nil:
			asserts = append(asserts, m.assert)
		}
	}
	return NewObjectExpr(fields, locals, asserts, loc)
}

func (p *Parser) finishObjectComp(members []objMember, loc SourceLocation) ExprNode {
	var locals []*ObjectLocal
	var field *ObjectField
	for _, m := range members {
		switch {
		case m.local != nil:
			locals = append(locals, m.local)
		case m.field != nil:
			field = m.field
		}
	}
	clauses := p.parseCompClauses()
	p.consume(lexer.TOKEN_RBRACE, "expected '}' after object comprehension")
	if field == nil {
		p.addError(ParseError{Message: "object comprehension requires a computed field", Location: loc})
		return NewObjectExpr(nil, locals, nil, loc)
	}
	return NewObjectCompExpr(field.Key, field.Value, locals, clauses, loc)
}

// parseObjectMember parses one field, local, or assert member. computedKey
// on the returned field marks whether the key came from `[expr]` (required
// to distinguish it from a plain string key of the same static shape).
func (p *Parser) parseObjectMember() objMember {
	loc := p.here()

	if p.match(lexer.TOKEN_LOCAL) {
		name, _ := p.consume(lexer.TOKEN_IDENTIFIER, "expected identifier after 'local'")
		value := p.parseBindValue(name.Lexeme, loc)
		return objMember{local: &ObjectLocal{Name: name.Lexeme, Value: value, Location: loc}}
	}

	if p.match(lexer.TOKEN_ASSERT) {
		cond := p.parseExpr(PrecNone)
		var msg ExprNode
		if p.match(lexer.TOKEN_COLON) {
			msg = p.parseExpr(PrecNone)
		}
		return objMember{assert: &ObjectAssert{Cond: cond, Message: msg, Location: loc}}
	}

	var key ExprNode
	computed := false
	if p.match(lexer.TOKEN_LBRACKET) {
		computed = true
		key = p.parseExpr(PrecNone)
		p.consume(lexer.TOKEN_RBRACKET, "expected ']' after computed field key")
	} else if p.check(lexer.TOKEN_STRING) {
		tok := p.advance()
		lit, _ := tok.Literal.(string)
		key = NewStringExpr(lit, loc)
	} else {
		name, ok := p.consume(lexer.TOKEN_IDENTIFIER, "expected field name")
		if !ok {
			return objMember{}
		}
		key = NewStringExpr(name.Lexeme, loc)
	}

	var params []Param
	if p.check(lexer.TOKEN_LPAREN) {
		params = p.parseParamList()
	}

	inherit := false
	visibility := Visible
	if p.match(lexer.TOKEN_PLUS) {
		p.consume(lexer.TOKEN_COLON, "expected ':' after '+' in field")
		inherit = true
	} else if p.match(lexer.TOKEN_TCOLON) {
		visibility = ForceVisible
	} else if p.match(lexer.TOKEN_DCOLON) {
		visibility = Hidden
	} else {
		p.consume(lexer.TOKEN_COLON, "expected ':' after field key")
	}

	value := p.parseExpr(PrecNone)
	if len(params) > 0 {
		value = NewFunctionExpr(params, value, loc)
	}

	return objMember{field: &ObjectField{Key: key, Visibility: visibility, Inherit: inherit, Value: value, Location: loc, computedKey: computed}}
}

// parseBindValue parses the `(params)? = expr` tail shared by top-level
// local binds and object-local members.
func (p *Parser) parseBindValue(name string, loc SourceLocation) ExprNode {
	var params []Param
	if p.check(lexer.TOKEN_LPAREN) {
		params = p.parseParamList()
	}
	p.consume(lexer.TOKEN_ASSIGN, "expected '=' in local binding")
	value := p.parseExpr(PrecNone)
	if len(params) > 0 {
		value = NewFunctionExpr(params, value, loc)
	}
	return value
}

func (p *Parser) parseParamList() []Param {
	p.consume(lexer.TOKEN_LPAREN, "expected '('")
	var params []Param
	if !p.check(lexer.TOKEN_RPAREN) {
		for {
			name, ok := p.consume(lexer.TOKEN_IDENTIFIER, "expected parameter name")
			if !ok {
				break
			}
			var def ExprNode
			if p.match(lexer.TOKEN_ASSIGN) {
				def = p.parseExpr(PrecNone)
			}
			params = append(params, Param{Name: name.Lexeme, Default: def})
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
			if p.check(lexer.TOKEN_RPAREN) {
				break
			}
		}
	}
	p.consume(lexer.TOKEN_RPAREN, "expected ')' after parameters")
	return params
}

// parseLocal parses `local name(params)? = expr, ...; body`.
func (p *Parser) parseLocal() ExprNode {
	localTok := p.advance()
	loc := TokenToLocation(localTok, p.file)

	var binds []LocalBind
	for {
		name, ok := p.consume(lexer.TOKEN_IDENTIFIER, "expected identifier in local binding")
		if !ok {
			break
		}
		bindLoc := TokenToLocation(name, p.file)
		value := p.parseBindValue(name.Lexeme, bindLoc)
		binds = append(binds, LocalBind{Name: name.Lexeme, Value: value, Location: bindLoc})
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.consume(lexer.TOKEN_SEMI, "expected ';' after local bindings")
	body := p.parseExpr(PrecNone)
	return NewLocalExpr(binds, body, loc)
}

// parseIf parses `if cond then a (else b)?`.
func (p *Parser) parseIf() ExprNode {
	ifTok := p.advance()
	loc := TokenToLocation(ifTok, p.file)

	cond := p.parseExpr(PrecNone)
	p.consume(lexer.TOKEN_THEN, "expected 'then' after if condition")
	then := p.parseExpr(PrecNone)

	var els ExprNode
	if p.match(lexer.TOKEN_ELSE) {
		els = p.parseExpr(PrecNone)
	}
	return NewIfExpr(cond, then, els, loc)
}

// parseFunction parses `function(params) body`.
func (p *Parser) parseFunction() ExprNode {
	fnTok := p.advance()
	loc := TokenToLocation(fnTok, p.file)
	params := p.parseParamList()
	body := p.parseExpr(PrecNone)
	return NewFunctionExpr(params, body, loc)
}

// parseAssertExpr parses the top-level `assert cond (: msg)?; rest` form.
func (p *Parser) parseAssertExpr() ExprNode {
	assertTok := p.advance()
	loc := TokenToLocation(assertTok, p.file)

	cond := p.parseExpr(PrecNone)
	var msg ExprNode
	if p.match(lexer.TOKEN_COLON) {
		msg = p.parseExpr(PrecNone)
	}
	p.consume(lexer.TOKEN_SEMI, "expected ';' after assert")
	rest := p.parseExpr(PrecNone)
	return NewAssertExpr(cond, msg, rest, loc)
}
