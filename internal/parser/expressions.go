package parser

import (
	"strings"

	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/token"
)

var (
	bitOrOps  = map[token.Kind]string{token.PIPE: "|"}
	bitXorOps = map[token.Kind]string{token.CARET: "^"}
	bitAndOps = map[token.Kind]string{token.AMP: "&"}
	shiftOps  = map[token.Kind]string{token.LSHIFT: "<<", token.RSHIFT: ">>"}
	arithOps  = map[token.Kind]string{token.PLUS: "+", token.MINUS: "-"}
	termOps   = map[token.Kind]string{token.STAR: "*", token.SLASH: "/", token.DOUBLESLASH: "//", token.PERCENT: "%"}
)

func (p *Parser) parseIdentifier() *ast.Identifier {
	t := p.expect(token.NAME)
	return &ast.Identifier{Name: t.Lexeme, StartPos: t.Offset, EndPos: t.Offset + len(t.Lexeme)}
}

// parseTestListAsExpr parses a comma-separated list of expressions and
// collapses it to a single Expression: the bare expression when there is
// exactly one, or a TupleExpr otherwise (covers both `return a, b` and
// `x = a, b`).
func (p *Parser) parseTestListAsExpr() ast.Expression {
	start := p.cur.Offset
	first := p.parseNamedExprOrStar()
	if !p.at(token.COMMA) {
		return first
	}
	elts := []ast.Expression{first}
	for p.accept(token.COMMA) {
		if p.atStatementEnd() || p.at(token.ASSIGN) || p.at(token.COLON) {
			break
		}
		elts = append(elts, p.parseNamedExprOrStar())
	}
	return &ast.TupleExpr{Elts: elts, StartPos: start, EndPos: p.cur.Offset}
}

// parseTargetList parses the left side of a `for` binding (statement or
// comprehension clause): a single target, or an unparenthesized tuple of
// them.
func (p *Parser) parseTargetList() ast.Expression {
	start := p.cur.Offset
	first := p.parseTarget()
	if !p.at(token.COMMA) {
		return first
	}
	elts := []ast.Expression{first}
	for p.accept(token.COMMA) {
		if p.at(token.IN) {
			break
		}
		elts = append(elts, p.parseTarget())
	}
	return &ast.TupleExpr{Elts: elts, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseTarget() ast.Expression {
	if p.at(token.STAR) {
		start := p.cur.Offset
		p.advance()
		val := p.parseAtomTrailer()
		return &ast.Starred{Value: val, StartPos: start, EndPos: p.cur.Offset}
	}
	if p.at(token.LPAREN) || p.at(token.LBRACKET) {
		return p.parseAtom()
	}
	return p.parseAtomTrailer()
}

// parseNamedExprTest allows the walrus operator at the top of a test:
// `NAME := test`.
func (p *Parser) parseNamedExprTest() ast.Expression {
	if p.at(token.NAME) && p.next.Kind == token.WALRUS {
		start := p.cur.Offset
		target := p.parseIdentifier()
		p.expect(token.WALRUS)
		value := p.parseTest()
		return &ast.NamedExpr{Target: target, Value: value, StartPos: start, EndPos: p.cur.Offset}
	}
	return p.parseTest()
}

func (p *Parser) parseNamedExprOrStar() ast.Expression {
	if p.at(token.STAR) {
		start := p.cur.Offset
		p.advance()
		val := p.parseOrTest()
		return &ast.Starred{Value: val, StartPos: start, EndPos: p.cur.Offset}
	}
	return p.parseNamedExprTest()
}

func (p *Parser) parseTestOrStar() ast.Expression {
	if p.at(token.STAR) {
		start := p.cur.Offset
		p.advance()
		val := p.parseOrTest()
		return &ast.Starred{Value: val, StartPos: start, EndPos: p.cur.Offset}
	}
	return p.parseTest()
}

// parseTest is `lambda_form | or_test ['if' or_test 'else' test]`.
func (p *Parser) parseTest() ast.Expression {
	if p.at(token.LAMBDA) {
		return p.parseLambda()
	}
	start := p.cur.Offset
	expr := p.parseOrTest()
	if p.accept(token.IF) {
		test := p.parseOrTest()
		p.expect(token.ELSE)
		orelse := p.parseTest()
		return &ast.IfExp{Test: test, Body: expr, Orelse: orelse, StartPos: start, EndPos: p.cur.Offset}
	}
	return expr
}

func (p *Parser) parseLambda() ast.Expression {
	start := p.cur.Offset
	p.expect(token.LAMBDA)
	args := p.parseLambdaParams()
	p.expect(token.COLON)
	body := p.parseTest()
	return &ast.LambdaExpr{Args: args, Body: body, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseLambdaParams() *ast.Arguments {
	args := &ast.Arguments{}
	for !p.at(token.COLON) {
		switch {
		case p.at(token.DOUBLESTAR):
			p.advance()
			args.Kwarg = p.parseIdentifier()
		case p.at(token.STAR):
			p.advance()
			if p.at(token.NAME) {
				args.Vararg = p.parseIdentifier()
			}
		default:
			name := p.parseIdentifier()
			var def ast.Expression
			if p.accept(token.ASSIGN) {
				def = p.parseTest()
			}
			args.Params = append(args.Params, &ast.Param{Name: name, Default: def})
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	return args
}

func (p *Parser) parseOrTest() ast.Expression {
	start := p.cur.Offset
	first := p.parseAndTest()
	if !p.at(token.OR) {
		return first
	}
	values := []ast.Expression{first}
	for p.accept(token.OR) {
		values = append(values, p.parseAndTest())
	}
	return &ast.BoolOp{Op: "or", Values: values, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseAndTest() ast.Expression {
	start := p.cur.Offset
	first := p.parseNotTest()
	if !p.at(token.AND) {
		return first
	}
	values := []ast.Expression{first}
	for p.accept(token.AND) {
		values = append(values, p.parseNotTest())
	}
	return &ast.BoolOp{Op: "and", Values: values, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseNotTest() ast.Expression {
	if p.at(token.NOT) {
		start := p.cur.Offset
		p.advance()
		operand := p.parseNotTest()
		return &ast.UnaryOp{Op: "not", Operand: operand, StartPos: start, EndPos: p.cur.Offset}
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.Expression {
	start := p.cur.Offset
	left := p.parseBitOr()
	var ops []string
	var comparators []ast.Expression
	for {
		op, ok := p.tryCompOp()
		if !ok {
			break
		}
		ops = append(ops, op)
		comparators = append(comparators, p.parseBitOr())
	}
	if len(ops) == 0 {
		return left
	}
	return &ast.Compare{Left: left, Ops: ops, Comparators: comparators, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) tryCompOp() (string, bool) {
	switch p.cur.Kind {
	case token.LT:
		p.advance()
		return "<", true
	case token.GT:
		p.advance()
		return ">", true
	case token.LE:
		p.advance()
		return "<=", true
	case token.GE:
		p.advance()
		return ">=", true
	case token.EQ:
		p.advance()
		return "==", true
	case token.NE:
		p.advance()
		return "!=", true
	case token.IN:
		p.advance()
		return "in", true
	case token.IS:
		p.advance()
		if p.accept(token.NOT) {
			return "is not", true
		}
		return "is", true
	case token.NOT:
		if p.next.Kind == token.IN {
			p.advance()
			p.advance()
			return "not in", true
		}
		return "", false
	}
	return "", false
}

func (p *Parser) parseBinaryLeft(next func() ast.Expression, ops map[token.Kind]string) ast.Expression {
	start := p.cur.Offset
	left := next()
	for {
		op, ok := ops[p.cur.Kind]
		if !ok {
			return left
		}
		p.advance()
		right := next()
		left = &ast.BinOp{Left: left, Op: op, Right: right, StartPos: start, EndPos: p.cur.Offset}
	}
}

func (p *Parser) parseBitOr() ast.Expression  { return p.parseBinaryLeft(p.parseBitXor, bitOrOps) }
func (p *Parser) parseBitXor() ast.Expression { return p.parseBinaryLeft(p.parseBitAnd, bitXorOps) }
func (p *Parser) parseBitAnd() ast.Expression { return p.parseBinaryLeft(p.parseShift, bitAndOps) }
func (p *Parser) parseShift() ast.Expression  { return p.parseBinaryLeft(p.parseArith, shiftOps) }
func (p *Parser) parseArith() ast.Expression  { return p.parseBinaryLeft(p.parseTerm, arithOps) }
func (p *Parser) parseTerm() ast.Expression   { return p.parseBinaryLeft(p.parseFactor, termOps) }

func (p *Parser) parseFactor() ast.Expression {
	switch p.cur.Kind {
	case token.PLUS, token.MINUS, token.TILDE:
		start := p.cur.Offset
		op := p.cur.Lexeme
		p.advance()
		operand := p.parseFactor()
		return &ast.UnaryOp{Op: op, Operand: operand, StartPos: start, EndPos: p.cur.Offset}
	}
	return p.parsePower()
}

func (p *Parser) parsePower() ast.Expression {
	start := p.cur.Offset
	base := p.parseAtomTrailer()
	if p.accept(token.DOUBLESTAR) {
		exp := p.parseFactor()
		return &ast.BinOp{Left: base, Op: "**", Right: exp, StartPos: start, EndPos: p.cur.Offset}
	}
	return base
}

func (p *Parser) parseAtomTrailer() ast.Expression {
	start := p.cur.Offset
	expr := p.parseAtom()
	for {
		switch p.cur.Kind {
		case token.DOT:
			p.advance()
			attr := p.parseIdentifier()
			expr = &ast.AttributeExpr{Value: expr, Attr: attr, StartPos: start, EndPos: p.cur.Offset}
		case token.LPAREN:
			expr = p.parseCallTrailer(expr, start)
		case token.LBRACKET:
			expr = p.parseSubscriptTrailer(expr, start)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallTrailer(fn ast.Expression, start int) ast.Expression {
	p.expect(token.LPAREN)
	call := &ast.CallExpr{Func: fn, StartPos: start}
	for !p.at(token.RPAREN) {
		switch {
		case p.at(token.DOUBLESTAR):
			p.advance()
			call.KwArgs = p.parseTest()
		case p.at(token.STAR):
			p.advance()
			call.StarArgs = p.parseTest()
		case p.at(token.NAME) && p.next.Kind == token.ASSIGN:
			name := p.expect(token.NAME).Lexeme
			p.expect(token.ASSIGN)
			val := p.parseTest()
			call.Keywords = append(call.Keywords, &ast.Keyword{Name: name, Value: val})
		default:
			arg := p.parseTest()
			if p.at(token.FOR) {
				gens := p.parseComprehensionClauses()
				arg = &ast.GeneratorExp{Elt: arg, Generators: gens, StartPos: arg.Pos(), EndPos: p.cur.Offset}
			}
			call.Args = append(call.Args, arg)
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	call.EndPos = p.cur.Offset
	return call
}

func (p *Parser) parseComprehensionClauses() []*ast.Comprehension {
	var gens []*ast.Comprehension
	for p.at(token.FOR) {
		p.advance()
		target := p.parseTargetList()
		p.expect(token.IN)
		iter := p.parseOrTest()
		var ifs []ast.Expression
		for p.accept(token.IF) {
			ifs = append(ifs, p.parseOrTest())
		}
		gens = append(gens, &ast.Comprehension{Target: target, Iter: iter, Ifs: ifs})
	}
	return gens
}

func (p *Parser) parseSubscriptTrailer(val ast.Expression, start int) ast.Expression {
	p.expect(token.LBRACKET)
	idx := p.parseSubscriptIndex()
	p.expect(token.RBRACKET)
	return &ast.SubscriptExpr{Value: val, Index: idx, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseSubscriptIndex() ast.Expression {
	start := p.cur.Offset
	var lower, upper, step ast.Expression
	isSlice := false
	if !p.at(token.COLON) {
		lower = p.parseTest()
	}
	if p.accept(token.COLON) {
		isSlice = true
		if !p.at(token.COLON) && !p.at(token.RBRACKET) {
			upper = p.parseTest()
		}
		if p.accept(token.COLON) {
			if !p.at(token.RBRACKET) {
				step = p.parseTest()
			}
		}
	}
	if isSlice {
		return &ast.SliceExpr{Lower: lower, Upper: upper, Step: step, StartPos: start, EndPos: p.cur.Offset}
	}
	if p.at(token.COMMA) {
		elts := []ast.Expression{lower}
		for p.accept(token.COMMA) {
			if p.at(token.RBRACKET) {
				break
			}
			elts = append(elts, p.parseTest())
		}
		return &ast.TupleExpr{Elts: elts, StartPos: start, EndPos: p.cur.Offset}
	}
	return lower
}

func (p *Parser) parseAtom() ast.Expression {
	start := p.cur.Offset
	switch p.cur.Kind {
	case token.NAME:
		return p.parseIdentifier()
	case token.INT:
		lit := p.cur.Lexeme
		p.advance()
		return &ast.NumberLit{Literal: lit, IsFloat: false, StartPos: start, EndPos: p.cur.Offset}
	case token.FLOAT:
		lit := p.cur.Lexeme
		p.advance()
		return &ast.NumberLit{Literal: lit, IsFloat: true, StartPos: start, EndPos: p.cur.Offset}
	case token.STRING:
		return p.parseStringLit()
	case token.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, StartPos: start, EndPos: p.cur.Offset}
	case token.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, StartPos: start, EndPos: p.cur.Offset}
	case token.NONE:
		p.advance()
		return &ast.NoneLit{StartPos: start, EndPos: p.cur.Offset}
	case token.LPAREN:
		return p.parseParenForm()
	case token.LBRACKET:
		return p.parseListForm()
	case token.LBRACE:
		return p.parseBraceForm()
	case token.YIELD:
		return p.parseYieldExpr()
	case token.LAMBDA:
		return p.parseLambda()
	case token.ELLIPSIS:
		p.advance()
		return &ast.NoneLit{StartPos: start, EndPos: p.cur.Offset}
	default:
		p.fail("unexpected token %q in expression", p.cur.Lexeme)
		return nil
	}
}

func (p *Parser) parseStringLit() ast.Expression {
	start := p.cur.Offset
	raw := p.cur.Lexeme
	value := decodeStringLiteral(raw)
	p.advance()
	for p.at(token.STRING) {
		raw += p.cur.Lexeme
		value += decodeStringLiteral(p.cur.Lexeme)
		p.advance()
	}
	return &ast.StringLit{Value: value, Raw: raw, StartPos: start, EndPos: p.cur.Offset}
}

// decodeStringLiteral strips the lexer's prefix letters and quote
// delimiters from a raw STRING token and unescapes the common backslash
// sequences. It does not attempt full Unicode escape decoding.
func decodeStringLiteral(raw string) string {
	i := 0
	for i < len(raw) && raw[i] != '\'' && raw[i] != '"' {
		i++
	}
	if i >= len(raw) {
		return raw
	}
	quote := raw[i]
	triple := i+2 < len(raw) && raw[i+1] == quote && raw[i+2] == quote
	var body string
	if triple {
		contentStart, contentEnd := i+3, len(raw)-3
		if contentEnd < contentStart {
			contentEnd = contentStart
		}
		body = raw[contentStart:contentEnd]
	} else {
		contentStart, contentEnd := i+1, len(raw)-1
		if contentEnd < contentStart {
			contentEnd = contentStart
		}
		body = raw[contentStart:contentEnd]
	}
	return unescapeBackslashes(body)
}

func unescapeBackslashes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\':
				b.WriteByte('\\')
			case '\'':
				b.WriteByte('\'')
			case '"':
				b.WriteByte('"')
			case '0':
				b.WriteByte(0)
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func (p *Parser) parseListForm() ast.Expression {
	start := p.cur.Offset
	p.expect(token.LBRACKET)
	if p.accept(token.RBRACKET) {
		return &ast.ListExpr{StartPos: start, EndPos: p.cur.Offset}
	}
	first := p.parseTestOrStar()
	if p.at(token.FOR) {
		gens := p.parseComprehensionClauses()
		p.expect(token.RBRACKET)
		return &ast.ListComp{Elt: first, Generators: gens, StartPos: start, EndPos: p.cur.Offset}
	}
	elts := []ast.Expression{first}
	for p.accept(token.COMMA) {
		if p.at(token.RBRACKET) {
			break
		}
		elts = append(elts, p.parseTestOrStar())
	}
	p.expect(token.RBRACKET)
	return &ast.ListExpr{Elts: elts, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseParenForm() ast.Expression {
	start := p.cur.Offset
	p.expect(token.LPAREN)
	if p.accept(token.RPAREN) {
		return &ast.TupleExpr{StartPos: start, EndPos: p.cur.Offset}
	}
	if p.at(token.YIELD) {
		y := p.parseYieldExpr()
		p.expect(token.RPAREN)
		return y
	}
	first := p.parseNamedExprOrStar()
	if p.at(token.FOR) {
		gens := p.parseComprehensionClauses()
		p.expect(token.RPAREN)
		return &ast.GeneratorExp{Elt: first, Generators: gens, StartPos: start, EndPos: p.cur.Offset}
	}
	if !p.at(token.COMMA) {
		p.expect(token.RPAREN)
		return first
	}
	elts := []ast.Expression{first}
	for p.accept(token.COMMA) {
		if p.at(token.RPAREN) {
			break
		}
		elts = append(elts, p.parseNamedExprOrStar())
	}
	p.expect(token.RPAREN)
	return &ast.TupleExpr{Elts: elts, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseBraceForm() ast.Expression {
	start := p.cur.Offset
	p.expect(token.LBRACE)
	if p.accept(token.RBRACE) {
		return &ast.DictExpr{StartPos: start, EndPos: p.cur.Offset}
	}
	if p.at(token.DOUBLESTAR) {
		p.advance()
		firstVal := p.parseOrTest()
		return p.finishDictLiteral(start, nil, firstVal, true)
	}
	firstKey := p.parseTestOrStar()
	if p.accept(token.COLON) {
		firstVal := p.parseTest()
		if p.at(token.FOR) {
			gens := p.parseComprehensionClauses()
			p.expect(token.RBRACE)
			return &ast.DictComp{Key: firstKey, Value: firstVal, Generators: gens, StartPos: start, EndPos: p.cur.Offset}
		}
		return p.finishDictLiteral(start, firstKey, firstVal, false)
	}
	if p.at(token.FOR) {
		gens := p.parseComprehensionClauses()
		p.expect(token.RBRACE)
		return &ast.SetComp{Elt: firstKey, Generators: gens, StartPos: start, EndPos: p.cur.Offset}
	}
	elts := []ast.Expression{firstKey}
	for p.accept(token.COMMA) {
		if p.at(token.RBRACE) {
			break
		}
		elts = append(elts, p.parseTestOrStar())
	}
	p.expect(token.RBRACE)
	return &ast.SetExpr{Elts: elts, StartPos: start, EndPos: p.cur.Offset}
}

// finishDictLiteral parses the remainder of a dict display after its first
// key/value pair (or `**expansion`, when firstIsUnpack is true). A nil Key
// entry marks a `**expr` expansion, paired with the expanded mapping in the
// parallel Values slot.
func (p *Parser) finishDictLiteral(start int, firstKey, firstVal ast.Expression, firstIsUnpack bool) ast.Expression {
	var keys, values []ast.Expression
	if firstIsUnpack {
		keys = append(keys, nil)
	} else {
		keys = append(keys, firstKey)
	}
	values = append(values, firstVal)
	for p.accept(token.COMMA) {
		if p.at(token.RBRACE) {
			break
		}
		if p.accept(token.DOUBLESTAR) {
			keys = append(keys, nil)
			values = append(values, p.parseOrTest())
			continue
		}
		k := p.parseTest()
		p.expect(token.COLON)
		v := p.parseTest()
		keys = append(keys, k)
		values = append(values, v)
	}
	p.expect(token.RBRACE)
	return &ast.DictExpr{Keys: keys, Values: values, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseYieldExpr() ast.Expression {
	start := p.cur.Offset
	p.expect(token.YIELD)
	if p.accept(token.FROM) {
		val := p.parseTest()
		return &ast.YieldExpr{Value: val, IsFrom: true, StartPos: start, EndPos: p.cur.Offset}
	}
	if p.atStatementEnd() || p.at(token.RPAREN) {
		return &ast.YieldExpr{StartPos: start, EndPos: p.cur.Offset}
	}
	val := p.parseTestListAsExpr()
	return &ast.YieldExpr{Value: val, StartPos: start, EndPos: p.cur.Offset}
}
