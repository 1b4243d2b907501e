package ast

// NumberLit is an integer or float literal.
type NumberLit struct {
	Literal  string
	IsFloat  bool
	StartPos int
	EndPos   int
}

func (e *NumberLit) Pos() int         { return e.StartPos }
func (e *NumberLit) End() int         { return e.EndPos }
func (e *NumberLit) Accept(v Visitor) { v.VisitNumberLit(e) }
func (*NumberLit) expressionNode()    {}

// StringLit is a string literal, quotes and prefix stripped into Value;
// Raw keeps the original token text for round-tripping/refactoring edits.
type StringLit struct {
	Value    string
	Raw      string
	StartPos int
	EndPos   int
}

func (e *StringLit) Pos() int         { return e.StartPos }
func (e *StringLit) End() int         { return e.EndPos }
func (e *StringLit) Accept(v Visitor) { v.VisitStringLit(e) }
func (*StringLit) expressionNode()    {}

// BoolLit is `True` or `False`.
type BoolLit struct {
	Value    bool
	StartPos int
	EndPos   int
}

func (e *BoolLit) Pos() int         { return e.StartPos }
func (e *BoolLit) End() int         { return e.EndPos }
func (e *BoolLit) Accept(v Visitor) { v.VisitBoolLit(e) }
func (*BoolLit) expressionNode()    {}

// NoneLit is `None`.
type NoneLit struct{ StartPos, EndPos int }

func (e *NoneLit) Pos() int         { return e.StartPos }
func (e *NoneLit) End() int         { return e.EndPos }
func (e *NoneLit) Accept(v Visitor) { v.VisitNoneLit(e) }
func (*NoneLit) expressionNode()    {}

// ListExpr is `[e1, e2, ...]`, and doubles as a destructuring target on the
// left of an assignment (`[a, b] = pair`).
type ListExpr struct {
	Elts     []Expression
	StartPos int
	EndPos   int
}

func (e *ListExpr) Pos() int         { return e.StartPos }
func (e *ListExpr) End() int         { return e.EndPos }
func (e *ListExpr) Accept(v Visitor) { v.VisitListExpr(e) }
func (*ListExpr) expressionNode()    {}

// TupleExpr is `e1, e2` or `(e1, e2)`, and doubles as a destructuring
// target (`a, b = pair`).
type TupleExpr struct {
	Elts     []Expression
	StartPos int
	EndPos   int
}

func (e *TupleExpr) Pos() int         { return e.StartPos }
func (e *TupleExpr) End() int         { return e.EndPos }
func (e *TupleExpr) Accept(v Visitor) { v.VisitTupleExpr(e) }
func (*TupleExpr) expressionNode()    {}

// SetExpr is `{e1, e2, ...}`.
type SetExpr struct {
	Elts     []Expression
	StartPos int
	EndPos   int
}

func (e *SetExpr) Pos() int         { return e.StartPos }
func (e *SetExpr) End() int         { return e.EndPos }
func (e *SetExpr) Accept(v Visitor) { v.VisitSetExpr(e) }
func (*SetExpr) expressionNode()    {}

// DictExpr is `{k1: v1, k2: v2, ...}`.
type DictExpr struct {
	Keys     []Expression
	Values   []Expression
	StartPos int
	EndPos   int
}

func (e *DictExpr) Pos() int         { return e.StartPos }
func (e *DictExpr) End() int         { return e.EndPos }
func (e *DictExpr) Accept(v Visitor) { v.VisitDictExpr(e) }
func (*DictExpr) expressionNode()    {}

// AttributeExpr is `value.attr`, also a valid assignment/del target.
type AttributeExpr struct {
	Value    Expression
	Attr     *Identifier
	StartPos int
	EndPos   int
}

func (e *AttributeExpr) Pos() int         { return e.StartPos }
func (e *AttributeExpr) End() int         { return e.EndPos }
func (e *AttributeExpr) Accept(v Visitor) { v.VisitAttributeExpr(e) }
func (*AttributeExpr) expressionNode()    {}

// SliceExpr is the `[lower:upper:step]` form of a Subscript's Index; any of
// Lower/Upper/Step may be nil.
type SliceExpr struct {
	Lower    Expression
	Upper    Expression
	Step     Expression
	StartPos int
	EndPos   int
}

func (e *SliceExpr) Pos() int         { return e.StartPos }
func (e *SliceExpr) End() int         { return e.EndPos }
func (e *SliceExpr) Accept(v Visitor) { v.VisitSliceExpr(e) }
func (*SliceExpr) expressionNode()    {}

// SubscriptExpr is `value[index]`, also a valid assignment/del target.
// Index is a *SliceExpr for `a[1:2]` forms, any other Expression otherwise.
type SubscriptExpr struct {
	Value    Expression
	Index    Expression
	StartPos int
	EndPos   int
}

func (e *SubscriptExpr) Pos() int         { return e.StartPos }
func (e *SubscriptExpr) End() int         { return e.EndPos }
func (e *SubscriptExpr) Accept(v Visitor) { v.VisitSubscriptExpr(e) }
func (*SubscriptExpr) expressionNode()    {}

// Keyword is a `name=value` keyword argument in a Call.
type Keyword struct {
	Name  string // empty for `**kwargs` expansion, Value then holds the mapping
	Value Expression
}

// CallExpr is `func(args..., *starargs, name=value..., **kwargs)`.
type CallExpr struct {
	Func     Expression
	Args     []Expression
	Keywords []*Keyword
	StarArgs Expression // nil if no `*args` expansion
	KwArgs   Expression // nil if no `**kwargs` expansion
	StartPos int
	EndPos   int
}

func (e *CallExpr) Pos() int         { return e.StartPos }
func (e *CallExpr) End() int         { return e.EndPos }
func (e *CallExpr) Accept(v Visitor) { v.VisitCallExpr(e) }
func (*CallExpr) expressionNode()    {}

// Starred is `*value` used inside a call's argument list or an assignment
// target (`a, *rest = seq`).
type Starred struct {
	Value    Expression
	StartPos int
	EndPos   int
}

func (e *Starred) Pos() int         { return e.StartPos }
func (e *Starred) End() int         { return e.EndPos }
func (e *Starred) Accept(v Visitor) { v.VisitStarred(e) }
func (*Starred) expressionNode()    {}

// BinOp is a binary arithmetic/bitwise operator expression.
type BinOp struct {
	Left     Expression
	Op       string
	Right    Expression
	StartPos int
	EndPos   int
}

func (e *BinOp) Pos() int         { return e.StartPos }
func (e *BinOp) End() int         { return e.EndPos }
func (e *BinOp) Accept(v Visitor) { v.VisitBinOp(e) }
func (*BinOp) expressionNode()    {}

// UnaryOp is `-x`, `+x`, `~x` or `not x`.
type UnaryOp struct {
	Op       string
	Operand  Expression
	StartPos int
	EndPos   int
}

func (e *UnaryOp) Pos() int         { return e.StartPos }
func (e *UnaryOp) End() int         { return e.EndPos }
func (e *UnaryOp) Accept(v Visitor) { v.VisitUnaryOp(e) }
func (*UnaryOp) expressionNode()    {}

// BoolOp is a chain of `and`/`or` with the same operator.
type BoolOp struct {
	Op       string // "and" | "or"
	Values   []Expression
	StartPos int
	EndPos   int
}

func (e *BoolOp) Pos() int         { return e.StartPos }
func (e *BoolOp) End() int         { return e.EndPos }
func (e *BoolOp) Accept(v Visitor) { v.VisitBoolOp(e) }
func (*BoolOp) expressionNode()    {}

// Compare is a (possibly chained) comparison: `a < b <= c`.
type Compare struct {
	Left        Expression
	Ops         []string
	Comparators []Expression
	StartPos    int
	EndPos      int
}

func (e *Compare) Pos() int         { return e.StartPos }
func (e *Compare) End() int         { return e.EndPos }
func (e *Compare) Accept(v Visitor) { v.VisitCompare(e) }
func (*Compare) expressionNode()    {}

// LambdaExpr is `lambda args: body`.
type LambdaExpr struct {
	Args     *Arguments
	Body     Expression
	StartPos int
	EndPos   int
}

func (e *LambdaExpr) Pos() int         { return e.StartPos }
func (e *LambdaExpr) End() int         { return e.EndPos }
func (e *LambdaExpr) Accept(v Visitor) { v.VisitLambdaExpr(e) }
func (*LambdaExpr) expressionNode()    {}

// IfExp is the ternary `body if test else orelse`.
type IfExp struct {
	Test     Expression
	Body     Expression
	Orelse   Expression
	StartPos int
	EndPos   int
}

func (e *IfExp) Pos() int         { return e.StartPos }
func (e *IfExp) End() int         { return e.EndPos }
func (e *IfExp) Accept(v Visitor) { v.VisitIfExp(e) }
func (*IfExp) expressionNode()    {}

// Comprehension is one `for target in iter [if cond]*` clause of any
// comprehension/generator form.
type Comprehension struct {
	Target Expression
	Iter   Expression
	Ifs    []Expression
}

// ListComp, SetComp, DictComp and GeneratorExp share the same generator
// clause shape; DictComp carries a Key/Value pair instead of a single Elt.
type ListComp struct {
	Elt        Expression
	Generators []*Comprehension
	StartPos   int
	EndPos     int
}

func (e *ListComp) Pos() int         { return e.StartPos }
func (e *ListComp) End() int         { return e.EndPos }
func (e *ListComp) Accept(v Visitor) { v.VisitListComp(e) }
func (*ListComp) expressionNode()    {}

type SetComp struct {
	Elt        Expression
	Generators []*Comprehension
	StartPos   int
	EndPos     int
}

func (e *SetComp) Pos() int         { return e.StartPos }
func (e *SetComp) End() int         { return e.EndPos }
func (e *SetComp) Accept(v Visitor) { v.VisitSetComp(e) }
func (*SetComp) expressionNode()    {}

type DictComp struct {
	Key        Expression
	Value      Expression
	Generators []*Comprehension
	StartPos   int
	EndPos     int
}

func (e *DictComp) Pos() int         { return e.StartPos }
func (e *DictComp) End() int         { return e.EndPos }
func (e *DictComp) Accept(v Visitor) { v.VisitDictComp(e) }
func (*DictComp) expressionNode()    {}

type GeneratorExp struct {
	Elt        Expression
	Generators []*Comprehension
	StartPos   int
	EndPos     int
}

func (e *GeneratorExp) Pos() int         { return e.StartPos }
func (e *GeneratorExp) End() int         { return e.EndPos }
func (e *GeneratorExp) Accept(v Visitor) { v.VisitGeneratorExp(e) }
func (*GeneratorExp) expressionNode()    {}

// YieldExpr is `yield [value]` or `yield from iterable` (IsFrom true, Value
// holds the iterable).
type YieldExpr struct {
	Value    Expression // nil for bare `yield`
	IsFrom   bool
	StartPos int
	EndPos   int
}

func (e *YieldExpr) Pos() int         { return e.StartPos }
func (e *YieldExpr) End() int         { return e.EndPos }
func (e *YieldExpr) Accept(v Visitor) { v.VisitYieldExpr(e) }
func (*YieldExpr) expressionNode()    {}

// NamedExpr is the walrus operator `target := value`.
type NamedExpr struct {
	Target   *Identifier
	Value    Expression
	StartPos int
	EndPos   int
}

func (e *NamedExpr) Pos() int         { return e.StartPos }
func (e *NamedExpr) End() int         { return e.EndPos }
func (e *NamedExpr) Accept(v Visitor) { v.VisitNamedExpr(e) }
func (*NamedExpr) expressionNode()    {}
