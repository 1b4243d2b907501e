package parser

import (
	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/token"
)

// parseStatements collects statements until stop() reports true, skipping
// blank NEWLINE-only lines between them.
func (p *Parser) parseStatements(stop func() bool) []ast.Statement {
	var stmts []ast.Statement
	p.skipNewlines()
	for !stop() {
		stmts = append(stmts, p.parseStatement()...)
		p.skipNewlines()
	}
	return stmts
}

// parseBlock parses `: NEWLINE INDENT stmt+ DEDENT`, or a single
// simple-statement suite on the same line as the header (`if x: y = 1`).
func (p *Parser) parseBlock() []ast.Statement {
	p.expect(token.COLON)
	if p.accept(token.NEWLINE) {
		p.expect(token.INDENT)
		body := p.parseStatements(func() bool { return p.at(token.DEDENT) || p.at(token.EOF) })
		p.accept(token.DEDENT)
		return body
	}
	return p.parseSimpleStatementLine()
}

// parseStatement parses one statement and returns it (compound statements)
// or the one-or-more simple statements that share a physical line
// (`x = 1; y = 2`).
func (p *Parser) parseStatement() []ast.Statement {
	switch p.cur.Kind {
	case token.DEF:
		return []ast.Statement{p.parseFunctionDef(nil)}
	case token.CLASS:
		return []ast.Statement{p.parseClassDef(nil)}
	case token.AT:
		return []ast.Statement{p.parseDecorated()}
	case token.IF:
		return []ast.Statement{p.parseIfStatement()}
	case token.FOR:
		return []ast.Statement{p.parseForStatement()}
	case token.WHILE:
		return []ast.Statement{p.parseWhileStatement()}
	case token.TRY:
		return []ast.Statement{p.parseTryStatement()}
	case token.WITH:
		return []ast.Statement{p.parseWithStatement()}
	default:
		return p.parseSimpleStatementLine()
	}
}

// parseSimpleStatementLine parses one or more semicolon-separated simple
// statements terminated by NEWLINE or EOF.
func (p *Parser) parseSimpleStatementLine() []ast.Statement {
	var stmts []ast.Statement
	for {
		stmts = append(stmts, p.parseSimpleStatement())
		if !p.accept(token.SEMI) {
			break
		}
		if p.at(token.NEWLINE) || p.at(token.EOF) || p.at(token.DEDENT) {
			break
		}
	}
	if !p.at(token.EOF) && !p.at(token.DEDENT) {
		p.expect(token.NEWLINE)
	}
	return stmts
}

func (p *Parser) parseSimpleStatement() ast.Statement {
	start := p.cur.Offset
	switch p.cur.Kind {
	case token.IMPORT:
		return p.parseImportStatement()
	case token.FROM:
		return p.parseFromImportStatement()
	case token.PASS:
		p.advance()
		return &ast.PassStatement{StartPos: start, EndPos: p.cur.Offset}
	case token.BREAK:
		p.advance()
		return &ast.BreakStatement{StartPos: start, EndPos: p.cur.Offset}
	case token.CONTINUE:
		p.advance()
		return &ast.ContinueStatement{StartPos: start, EndPos: p.cur.Offset}
	case token.GLOBAL:
		return p.parseGlobalStatement()
	case token.NONLOCAL:
		return p.parseNonlocalStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.RAISE:
		return p.parseRaiseStatement()
	case token.ASSERT:
		return p.parseAssertStatement()
	case token.DEL:
		return p.parseDeleteStatement()
	default:
		return p.parseExprOrAssignStatement()
	}
}

func (p *Parser) parseImportStatement() ast.Statement {
	start := p.cur.Offset
	p.expect(token.IMPORT)
	var names []*ast.ImportAlias
	for {
		names = append(names, p.parseImportAlias(true))
		if !p.accept(token.COMMA) {
			break
		}
	}
	return &ast.ImportStatement{Names: names, StartPos: start, EndPos: p.cur.Offset}
}

// parseImportAlias parses `dotted.name [as alias]`. When dotted is true,
// dots are allowed in the name (plain `import` statement); the `from`
// clause's name list calls this with dotted=false.
func (p *Parser) parseImportAlias(dotted bool) *ast.ImportAlias {
	start := p.cur.Offset
	name := p.expect(token.NAME).Lexeme
	if dotted {
		for p.at(token.DOT) {
			p.advance()
			name += "." + p.expect(token.NAME).Lexeme
		}
	}
	alias := ""
	if p.accept(token.AS) {
		alias = p.expect(token.NAME).Lexeme
	}
	return &ast.ImportAlias{Name: name, AsName: alias, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseFromImportStatement() ast.Statement {
	start := p.cur.Offset
	p.expect(token.FROM)
	level := 0
	for p.at(token.DOT) || p.at(token.ELLIPSIS) {
		if p.at(token.ELLIPSIS) {
			level += 3
		} else {
			level++
		}
		p.advance()
	}
	module := ""
	if p.at(token.NAME) {
		module = p.expect(token.NAME).Lexeme
		for p.at(token.DOT) {
			p.advance()
			module += "." + p.expect(token.NAME).Lexeme
		}
	}
	p.expect(token.IMPORT)
	stmt := &ast.FromImportStatement{Level: level, Module: module, StartPos: start}
	if p.at(token.STAR) {
		p.advance()
		stmt.IsStar = true
		stmt.EndPos = p.cur.Offset
		return stmt
	}
	paren := p.accept(token.LPAREN)
	for {
		stmt.Names = append(stmt.Names, p.parseImportAlias(false))
		if !p.accept(token.COMMA) {
			break
		}
		if paren && p.at(token.RPAREN) {
			break
		}
	}
	if paren {
		p.expect(token.RPAREN)
	}
	stmt.EndPos = p.cur.Offset
	return stmt
}

func (p *Parser) parseGlobalStatement() ast.Statement {
	start := p.cur.Offset
	p.expect(token.GLOBAL)
	var names []*ast.Identifier
	for {
		names = append(names, p.parseIdentifier())
		if !p.accept(token.COMMA) {
			break
		}
	}
	return &ast.GlobalStatement{Names: names, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseNonlocalStatement() ast.Statement {
	start := p.cur.Offset
	p.expect(token.NONLOCAL)
	var names []*ast.Identifier
	for {
		names = append(names, p.parseIdentifier())
		if !p.accept(token.COMMA) {
			break
		}
	}
	return &ast.NonlocalStatement{Names: names, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	start := p.cur.Offset
	p.expect(token.RETURN)
	var val ast.Expression
	if !p.atStatementEnd() {
		val = p.parseTestListAsExpr()
	}
	return &ast.ReturnStatement{Value: val, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseRaiseStatement() ast.Statement {
	start := p.cur.Offset
	p.expect(token.RAISE)
	var exc, cause ast.Expression
	if !p.atStatementEnd() {
		exc = p.parseTest()
		if p.accept(token.FROM) {
			cause = p.parseTest()
		}
	}
	return &ast.RaiseStatement{Exc: exc, Cause: cause, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseAssertStatement() ast.Statement {
	start := p.cur.Offset
	p.expect(token.ASSERT)
	test := p.parseTest()
	var msg ast.Expression
	if p.accept(token.COMMA) {
		msg = p.parseTest()
	}
	return &ast.AssertStatement{Test: test, Msg: msg, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseDeleteStatement() ast.Statement {
	start := p.cur.Offset
	p.expect(token.DEL)
	var targets []ast.Expression
	for {
		targets = append(targets, p.parseTest())
		if !p.accept(token.COMMA) {
			break
		}
		if p.atStatementEnd() {
			break
		}
	}
	return &ast.DeleteStatement{Targets: targets, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) atStatementEnd() bool {
	return p.at(token.NEWLINE) || p.at(token.EOF) || p.at(token.SEMI) || p.at(token.DEDENT)
}

// parseExprOrAssignStatement handles everything that starts with an
// expression: plain expression statements, simple/tuple/attribute/subscript
// assignment (spec §4.C "assignments (simple, tuple, attribute,
// subscript)"), chained assignment, augmented assignment and annotated
// assignment.
func (p *Parser) parseExprOrAssignStatement() ast.Statement {
	start := p.cur.Offset
	first := p.parseTestListAsExpr()

	if p.at(token.COLON) {
		p.advance()
		annotation := p.parseTest()
		var value ast.Expression
		if p.accept(token.ASSIGN) {
			value = p.parseTestListAsExpr()
		}
		return &ast.AnnAssignStatement{Target: first, Annotation: annotation, Value: value, StartPos: start, EndPos: p.cur.Offset}
	}

	if op, ok := augAssignOp(p.cur.Kind); ok {
		p.advance()
		value := p.parseTestListAsExpr()
		return &ast.AugAssignStatement{Target: first, Op: op, Value: value, StartPos: start, EndPos: p.cur.Offset}
	}

	if p.at(token.ASSIGN) {
		targets := []ast.Expression{first}
		var value ast.Expression
		for p.accept(token.ASSIGN) {
			value = p.parseTestListAsExpr()
			targets = append(targets, value)
		}
		// last parsed value is also in targets; split it back out.
		value = targets[len(targets)-1]
		targets = targets[:len(targets)-1]
		return &ast.AssignStatement{Targets: targets, Value: value, StartPos: start, EndPos: p.cur.Offset}
	}

	return &ast.ExprStatement{X: first, StartPos: start, EndPos: p.cur.Offset}
}

func augAssignOp(k token.Kind) (string, bool) {
	switch k {
	case token.PLUS_ASSIGN:
		return "+", true
	case token.MINUS_ASSIGN:
		return "-", true
	case token.STAR_ASSIGN:
		return "*", true
	case token.SLASH_ASSIGN:
		return "/", true
	}
	return "", false
}

func (p *Parser) parseDecorated() ast.Statement {
	var decorators []ast.Expression
	for p.at(token.AT) {
		p.advance()
		decorators = append(decorators, p.parseTest())
		p.expect(token.NEWLINE)
	}
	switch p.cur.Kind {
	case token.DEF:
		return p.parseFunctionDef(decorators)
	case token.CLASS:
		return p.parseClassDef(decorators)
	default:
		p.fail("expected def or class after decorator")
		return nil
	}
}

func (p *Parser) parseFunctionDef(decorators []ast.Expression) ast.Statement {
	start := p.cur.Offset
	p.expect(token.DEF)
	name := p.parseIdentifier()
	args := p.parseParameterList()
	if p.accept(token.ARROW) {
		p.parseTest() // return annotation, not retained
	}
	body := p.parseBlock()
	return &ast.FunctionDef{Name: name, Args: args, Body: body, Decorators: decorators, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseClassDef(decorators []ast.Expression) ast.Statement {
	start := p.cur.Offset
	p.expect(token.CLASS)
	name := p.parseIdentifier()
	var bases []ast.Expression
	if p.accept(token.LPAREN) {
		for !p.at(token.RPAREN) {
			bases = append(bases, p.parseTest())
			if !p.accept(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}
	body := p.parseBlock()
	return &ast.ClassDef{Name: name, Bases: bases, Body: body, Decorators: decorators, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseParameterList() *ast.Arguments {
	p.expect(token.LPAREN)
	args := &ast.Arguments{}
	for !p.at(token.RPAREN) {
		switch {
		case p.at(token.DOUBLESTAR):
			p.advance()
			id := p.parseIdentifier()
			args.Kwarg = id
		case p.at(token.STAR):
			p.advance()
			if p.at(token.NAME) {
				args.Vararg = p.parseIdentifier()
			}
		default:
			name := p.parseIdentifier()
			var annotation, def ast.Expression
			if p.accept(token.COLON) {
				annotation = p.parseTest()
			}
			if p.accept(token.ASSIGN) {
				def = p.parseTest()
			}
			args.Params = append(args.Params, &ast.Param{Name: name, Default: def, Annotation: annotation})
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parseIfStatement() ast.Statement {
	start := p.cur.Offset
	p.expect(token.IF)
	test := p.parseNamedExprTest()
	body := p.parseBlock()
	var orelse []ast.Statement
	if p.at(token.ELIF) {
		orelse = []ast.Statement{p.parseElif()}
	} else if p.accept(token.ELSE) {
		orelse = p.parseBlock()
	}
	return &ast.IfStatement{Test: test, Body: body, Orelse: orelse, StartPos: start, EndPos: p.cur.Offset}
}

// parseElif treats `elif` as an `if` for AST purposes, so an elif chain is
// just nested IfStatements in Orelse (spec §4.C note under If).
func (p *Parser) parseElif() ast.Statement {
	start := p.cur.Offset
	p.expect(token.ELIF)
	test := p.parseNamedExprTest()
	body := p.parseBlock()
	var orelse []ast.Statement
	if p.at(token.ELIF) {
		orelse = []ast.Statement{p.parseElif()}
	} else if p.accept(token.ELSE) {
		orelse = p.parseBlock()
	}
	return &ast.IfStatement{Test: test, Body: body, Orelse: orelse, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseForStatement() ast.Statement {
	start := p.cur.Offset
	p.expect(token.FOR)
	target := p.parseTargetList()
	p.expect(token.IN)
	iter := p.parseTestListAsExpr()
	body := p.parseBlock()
	var orelse []ast.Statement
	if p.accept(token.ELSE) {
		orelse = p.parseBlock()
	}
	return &ast.ForStatement{Target: target, Iter: iter, Body: body, Orelse: orelse, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	start := p.cur.Offset
	p.expect(token.WHILE)
	test := p.parseNamedExprTest()
	body := p.parseBlock()
	var orelse []ast.Statement
	if p.accept(token.ELSE) {
		orelse = p.parseBlock()
	}
	return &ast.WhileStatement{Test: test, Body: body, Orelse: orelse, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseTryStatement() ast.Statement {
	start := p.cur.Offset
	p.expect(token.TRY)
	body := p.parseBlock()
	var handlers []*ast.ExceptHandler
	for p.at(token.EXCEPT) {
		handlers = append(handlers, p.parseExceptHandler())
	}
	var orelse, finalbody []ast.Statement
	if p.accept(token.ELSE) {
		orelse = p.parseBlock()
	}
	if p.accept(token.FINALLY) {
		finalbody = p.parseBlock()
	}
	return &ast.TryStatement{Body: body, Handlers: handlers, Orelse: orelse, Finalbody: finalbody, StartPos: start, EndPos: p.cur.Offset}
}

func (p *Parser) parseExceptHandler() *ast.ExceptHandler {
	start := p.cur.Offset
	p.expect(token.EXCEPT)
	h := &ast.ExceptHandler{StartPos: start}
	if !p.at(token.COLON) {
		h.Type = p.parseTest()
		if p.accept(token.AS) {
			h.Name = p.parseIdentifier()
		}
	}
	h.Body = p.parseBlock()
	h.EndPos = p.cur.Offset
	return h
}

func (p *Parser) parseWithStatement() ast.Statement {
	start := p.cur.Offset
	p.expect(token.WITH)
	var items []*ast.WithItem
	for {
		ctx := p.parseTest()
		item := &ast.WithItem{ContextExpr: ctx}
		if p.accept(token.AS) {
			item.OptionalVars = p.parseTarget()
		}
		items = append(items, item)
		if !p.accept(token.COMMA) {
			break
		}
	}
	body := p.parseBlock()
	return &ast.WithStatement{Items: items, Body: body, StartPos: start, EndPos: p.cur.Offset}
}
