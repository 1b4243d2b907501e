package ast

// Param is a single function parameter: a name, an optional default value
// expression, and an optional type annotation (not type-checked by this
// analyzer; carried through for docstring/signature tooling built on top).
type Param struct {
	Name       *Identifier
	Default    Expression
	Annotation Expression
}

// Arguments is a function's full parameter list, split the way
// inference needs it: plain positional params, then a single `*args`
// and/or `**kwargs` catch-all (spec §4.H "special-arg handling").
type Arguments struct {
	Params  []*Param
	Vararg  *Identifier // nil if no `*args`
	Kwarg   *Identifier // nil if no `**kwargs`
}

// FunctionDef is `def name(args): body`, also used for lambdas' desugared
// body via LambdaExpr below (which carries its own Arguments).
type FunctionDef struct {
	Name       *Identifier
	Args       *Arguments
	Body       []Statement
	Decorators []Expression
	StartPos   int
	EndPos     int
}

func (s *FunctionDef) Pos() int         { return s.StartPos }
func (s *FunctionDef) End() int         { return s.EndPos }
func (s *FunctionDef) Accept(v Visitor) { v.VisitFunctionDef(s) }
func (*FunctionDef) statementNode()     {}

// ClassDef is `class name(bases): body`.
type ClassDef struct {
	Name       *Identifier
	Bases      []Expression
	Body       []Statement
	Decorators []Expression
	StartPos   int
	EndPos     int
}

func (s *ClassDef) Pos() int         { return s.StartPos }
func (s *ClassDef) End() int         { return s.EndPos }
func (s *ClassDef) Accept(v Visitor) { v.VisitClassDef(s) }
func (*ClassDef) statementNode()     {}

// AssignStatement covers simple (`x = E`), tuple (`x, y = E`), attribute
// (`o.x = E`) and subscript (`o[k] = E`) assignment uniformly: each Targets
// entry may be an *Identifier, a *TupleExpr/*ListExpr (destructuring), an
// *AttributeExpr or a *SubscriptExpr. Chained assignment (`x = y = E`)
// is multiple Targets sharing one Value.
type AssignStatement struct {
	Targets  []Expression
	Value    Expression
	StartPos int
	EndPos   int
}

func (s *AssignStatement) Pos() int         { return s.StartPos }
func (s *AssignStatement) End() int         { return s.EndPos }
func (s *AssignStatement) Accept(v Visitor) { v.VisitAssignStatement(s) }
func (*AssignStatement) statementNode()     {}

// AugAssignStatement is `target OP= value` (`+=`, `-=`, `*=`, `/=`, ...).
type AugAssignStatement struct {
	Target   Expression
	Op       string
	Value    Expression
	StartPos int
	EndPos   int
}

func (s *AugAssignStatement) Pos() int         { return s.StartPos }
func (s *AugAssignStatement) End() int         { return s.EndPos }
func (s *AugAssignStatement) Accept(v Visitor) { v.VisitAugAssignStatement(s) }
func (*AugAssignStatement) statementNode()     {}

// AnnAssignStatement is `target: annotation [= value]` (annotation-only
// declarations bind nothing at runtime unless Value is present, but the
// annotation itself is a useful type-inference hint).
type AnnAssignStatement struct {
	Target     Expression
	Annotation Expression
	Value      Expression // nil when no value is given
	StartPos   int
	EndPos     int
}

func (s *AnnAssignStatement) Pos() int         { return s.StartPos }
func (s *AnnAssignStatement) End() int         { return s.EndPos }
func (s *AnnAssignStatement) Accept(v Visitor) { v.VisitAnnAssignStatement(s) }
func (*AnnAssignStatement) statementNode()     {}

// IfStatement is `if test: body [elif test2: body2]* [else: orelse]`.
// An `elif` chain is represented as a single IfStatement nested in Orelse.
type IfStatement struct {
	Test     Expression
	Body     []Statement
	Orelse   []Statement
	StartPos int
	EndPos   int
}

func (s *IfStatement) Pos() int         { return s.StartPos }
func (s *IfStatement) End() int         { return s.EndPos }
func (s *IfStatement) Accept(v Visitor) { v.VisitIfStatement(s) }
func (*IfStatement) statementNode()     {}

// ForStatement is `for target in iter: body [else: orelse]`.
type ForStatement struct {
	Target   Expression
	Iter     Expression
	Body     []Statement
	Orelse   []Statement
	StartPos int
	EndPos   int
}

func (s *ForStatement) Pos() int         { return s.StartPos }
func (s *ForStatement) End() int         { return s.EndPos }
func (s *ForStatement) Accept(v Visitor) { v.VisitForStatement(s) }
func (*ForStatement) statementNode()     {}

// WhileStatement is `while test: body [else: orelse]`.
type WhileStatement struct {
	Test     Expression
	Body     []Statement
	Orelse   []Statement
	StartPos int
	EndPos   int
}

func (s *WhileStatement) Pos() int         { return s.StartPos }
func (s *WhileStatement) End() int         { return s.EndPos }
func (s *WhileStatement) Accept(v Visitor) { v.VisitWhileStatement(s) }
func (*WhileStatement) statementNode()     {}

// ExceptHandler is one `except [Type [as name]]: body` clause of a Try.
type ExceptHandler struct {
	Type     Expression // nil for a bare `except:`
	Name     *Identifier
	Body     []Statement
	StartPos int
	EndPos   int
}

// TryStatement is `try: body (except ...)* [else: orelse] [finally: finalbody]`.
type TryStatement struct {
	Body       []Statement
	Handlers   []*ExceptHandler
	Orelse     []Statement
	Finalbody  []Statement
	StartPos   int
	EndPos     int
}

func (s *TryStatement) Pos() int         { return s.StartPos }
func (s *TryStatement) End() int         { return s.EndPos }
func (s *TryStatement) Accept(v Visitor) { v.VisitTryStatement(s) }
func (*TryStatement) statementNode()     {}

// WithItem is one `EXPR [as TARGET]` clause of a With.
type WithItem struct {
	ContextExpr  Expression
	OptionalVars Expression // nil when no `as target`
}

// WithStatement is `with item, item2: body`.
type WithStatement struct {
	Items    []*WithItem
	Body     []Statement
	StartPos int
	EndPos   int
}

func (s *WithStatement) Pos() int         { return s.StartPos }
func (s *WithStatement) End() int         { return s.EndPos }
func (s *WithStatement) Accept(v Visitor) { v.VisitWithStatement(s) }
func (*WithStatement) statementNode()     {}
