package parser

import (
	"fmt"

	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/lexer"
	"github.com/corerope/corerope/internal/token"
)

// Parser is a recursive-descent parser over the token stream produced by
// internal/lexer. It never panics: on malformed input it either raises a
// *SyntaxError (Strict policy) or unwinds to an empty *ast.Module (Lenient
// policy) via a sentinel panic/recover pair confined to Parse.
type Parser struct {
	lex      *lexer.Lexer
	file     string
	policy   Policy
	cur      token.Token
	next     token.Token
	source   string
}

type bail struct{ err *SyntaxError }

// Parse parses src (the contents of file) and returns the resulting
// module. Under Lenient policy, a syntax error never escapes Parse: the
// returned module has SyntaxOK=false and ParseError set instead.
func Parse(file, src string, policy Policy) (mod *ast.Module, err error) {
	p := &Parser{lex: lexer.New(src), file: file, policy: policy, source: src}
	p.advance()
	p.advance()

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bail)
			if !ok {
				panic(r)
			}
			if policy == Strict {
				err = b.err
				return
			}
			mod = emptyModule(file, len(src), b.err)
			err = nil
		}
	}()

	body := p.parseStatements(func() bool { return p.cur.Kind == token.EOF })
	mod = &ast.Module{Path: file, Body: body, StartPos: 0, EndPos: len(src), SyntaxOK: true}
	return mod, nil
}

func emptyModule(file string, length int, cause *SyntaxError) *ast.Module {
	return &ast.Module{Path: file, Body: nil, StartPos: 0, EndPos: length, SyntaxOK: false, ParseError: cause}
}

func (p *Parser) advance() {
	p.cur = p.next
	p.next = p.lex.NextToken()
}

func (p *Parser) fail(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	panic(bail{&SyntaxError{File: p.file, Line: p.cur.Line, Column: p.cur.Column, Message: msg}})
}

func (p *Parser) expect(k token.Kind) token.Token {
	if p.cur.Kind != k {
		p.fail("expected %s, got %q", token.KindName(k), p.cur.Lexeme)
	}
	t := p.cur
	p.advance()
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) accept(k token.Kind) bool {
	if p.cur.Kind == k {
		p.advance()
		return true
	}
	return false
}

// skipNewlines consumes zero or more NEWLINE tokens (blank lines between
// statements).
func (p *Parser) skipNewlines() {
	for p.cur.Kind == token.NEWLINE {
		p.advance()
	}
}
