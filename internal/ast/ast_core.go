// Package ast defines the abstract syntax tree produced by internal/parser
// for the target language: module, imports, from-imports, class/function
// defs, the assignment family (simple, tuple, attribute, subscript),
// control flow, calls, attribute/subscript access, literals, comprehensions,
// lambdas, returns, yields and global declarations (spec §4.C).
package ast

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() int // byte offset of the first character
	End() int // byte offset one past the last character
	Accept(v Visitor)
}

// Statement is a Node that appears in a statement list.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Module is the root of every AST the parser produces for a single file.
type Module struct {
	Path       string // source file path, used in diagnostics
	Body       []Statement
	StartPos   int
	EndPos     int
	SyntaxOK   bool  // false when the parser demoted a syntax error to an empty module (lenient policy)
	ParseError error // non-nil when SyntaxOK is false
}

func (m *Module) Pos() int         { return m.StartPos }
func (m *Module) End() int         { return m.EndPos }
func (m *Module) Accept(v Visitor) { v.VisitModule(m) }

// Identifier is a bare name reference; used both as an expression and
// wherever the grammar asks for a plain name (class/function headers,
// import aliases, parameter names).
type Identifier struct {
	Name     string
	StartPos int
	EndPos   int
}

func (i *Identifier) Pos() int         { return i.StartPos }
func (i *Identifier) End() int         { return i.EndPos }
func (i *Identifier) Accept(v Visitor) { v.VisitIdentifier(i) }
func (*Identifier) expressionNode()    {}

// ImportAlias is one `name` or `name as asname` entry of an import list.
type ImportAlias struct {
	Name     string // dotted path for `import`, plain name for `from ... import`
	AsName   string // empty when no alias was given
	StartPos int
	EndPos   int
}

// ImportStatement is `import a.b.c [as d], ...`.
type ImportStatement struct {
	Names    []*ImportAlias
	StartPos int
	EndPos   int
}

func (s *ImportStatement) Pos() int         { return s.StartPos }
func (s *ImportStatement) End() int         { return s.EndPos }
func (s *ImportStatement) Accept(v Visitor) { v.VisitImportStatement(s) }
func (*ImportStatement) statementNode()     {}

// FromImportStatement is `from [.]*module import name [as alias], ...` or
// `from [.]*module import *`.
type FromImportStatement struct {
	Level    int // number of leading dots (relative import depth)
	Module   string
	Names    []*ImportAlias
	IsStar   bool
	StartPos int
	EndPos   int
}

func (s *FromImportStatement) Pos() int         { return s.StartPos }
func (s *FromImportStatement) End() int         { return s.EndPos }
func (s *FromImportStatement) Accept(v Visitor) { v.VisitFromImportStatement(s) }
func (*FromImportStatement) statementNode()     {}

// PassStatement, BreakStatement and ContinueStatement are no-field markers.
type PassStatement struct{ StartPos, EndPos int }

func (s *PassStatement) Pos() int         { return s.StartPos }
func (s *PassStatement) End() int         { return s.EndPos }
func (s *PassStatement) Accept(v Visitor) { v.VisitPassStatement(s) }
func (*PassStatement) statementNode()     {}

type BreakStatement struct{ StartPos, EndPos int }

func (s *BreakStatement) Pos() int         { return s.StartPos }
func (s *BreakStatement) End() int         { return s.EndPos }
func (s *BreakStatement) Accept(v Visitor) { v.VisitBreakStatement(s) }
func (*BreakStatement) statementNode()     {}

type ContinueStatement struct{ StartPos, EndPos int }

func (s *ContinueStatement) Pos() int         { return s.StartPos }
func (s *ContinueStatement) End() int         { return s.EndPos }
func (s *ContinueStatement) Accept(v Visitor) { v.VisitContinueStatement(s) }
func (*ContinueStatement) statementNode()     {}

// GlobalStatement is `global a, b`.
type GlobalStatement struct {
	Names    []*Identifier
	StartPos int
	EndPos   int
}

func (s *GlobalStatement) Pos() int         { return s.StartPos }
func (s *GlobalStatement) End() int         { return s.EndPos }
func (s *GlobalStatement) Accept(v Visitor) { v.VisitGlobalStatement(s) }
func (*GlobalStatement) statementNode()     {}

// NonlocalStatement is `nonlocal a, b`.
type NonlocalStatement struct {
	Names    []*Identifier
	StartPos int
	EndPos   int
}

func (s *NonlocalStatement) Pos() int         { return s.StartPos }
func (s *NonlocalStatement) End() int         { return s.EndPos }
func (s *NonlocalStatement) Accept(v Visitor) { v.VisitNonlocalStatement(s) }
func (*NonlocalStatement) statementNode()     {}

// ExprStatement is an expression evaluated for its side effects (a bare
// call, a yield, ...).
type ExprStatement struct {
	X        Expression
	StartPos int
	EndPos   int
}

func (s *ExprStatement) Pos() int         { return s.StartPos }
func (s *ExprStatement) End() int         { return s.EndPos }
func (s *ExprStatement) Accept(v Visitor) { v.VisitExprStatement(s) }
func (*ExprStatement) statementNode()     {}

// ReturnStatement is `return [EXPR]`.
type ReturnStatement struct {
	Value    Expression // nil for bare `return`
	StartPos int
	EndPos   int
}

func (s *ReturnStatement) Pos() int         { return s.StartPos }
func (s *ReturnStatement) End() int         { return s.EndPos }
func (s *ReturnStatement) Accept(v Visitor) { v.VisitReturnStatement(s) }
func (*ReturnStatement) statementNode()     {}

// RaiseStatement is `raise [EXC [from CAUSE]]`.
type RaiseStatement struct {
	Exc      Expression
	Cause    Expression
	StartPos int
	EndPos   int
}

func (s *RaiseStatement) Pos() int         { return s.StartPos }
func (s *RaiseStatement) End() int         { return s.EndPos }
func (s *RaiseStatement) Accept(v Visitor) { v.VisitRaiseStatement(s) }
func (*RaiseStatement) statementNode()     {}

// AssertStatement is `assert TEST [, MSG]`.
type AssertStatement struct {
	Test     Expression
	Msg      Expression
	StartPos int
	EndPos   int
}

func (s *AssertStatement) Pos() int         { return s.StartPos }
func (s *AssertStatement) End() int         { return s.EndPos }
func (s *AssertStatement) Accept(v Visitor) { v.VisitAssertStatement(s) }
func (*AssertStatement) statementNode()     {}

// DeleteStatement is `del a, b.c, d[0]`.
type DeleteStatement struct {
	Targets  []Expression
	StartPos int
	EndPos   int
}

func (s *DeleteStatement) Pos() int         { return s.StartPos }
func (s *DeleteStatement) End() int         { return s.EndPos }
func (s *DeleteStatement) Accept(v Visitor) { v.VisitDeleteStatement(s) }
func (*DeleteStatement) statementNode()     {}
