package ast

// Visitor is implemented by anything that wants typed dispatch over the
// AST. Node.Accept calls the matching Visit method directly; callers that
// only care about a handful of node kinds should embed BaseVisitor and
// override just those methods.
type Visitor interface {
	VisitModule(*Module)
	VisitIdentifier(*Identifier)
	VisitImportStatement(*ImportStatement)
	VisitFromImportStatement(*FromImportStatement)
	VisitPassStatement(*PassStatement)
	VisitBreakStatement(*BreakStatement)
	VisitContinueStatement(*ContinueStatement)
	VisitGlobalStatement(*GlobalStatement)
	VisitNonlocalStatement(*NonlocalStatement)
	VisitExprStatement(*ExprStatement)
	VisitReturnStatement(*ReturnStatement)
	VisitRaiseStatement(*RaiseStatement)
	VisitAssertStatement(*AssertStatement)
	VisitDeleteStatement(*DeleteStatement)
	VisitFunctionDef(*FunctionDef)
	VisitClassDef(*ClassDef)
	VisitAssignStatement(*AssignStatement)
	VisitAugAssignStatement(*AugAssignStatement)
	VisitAnnAssignStatement(*AnnAssignStatement)
	VisitIfStatement(*IfStatement)
	VisitForStatement(*ForStatement)
	VisitWhileStatement(*WhileStatement)
	VisitTryStatement(*TryStatement)
	VisitWithStatement(*WithStatement)
	VisitNumberLit(*NumberLit)
	VisitStringLit(*StringLit)
	VisitBoolLit(*BoolLit)
	VisitNoneLit(*NoneLit)
	VisitListExpr(*ListExpr)
	VisitTupleExpr(*TupleExpr)
	VisitSetExpr(*SetExpr)
	VisitDictExpr(*DictExpr)
	VisitAttributeExpr(*AttributeExpr)
	VisitSliceExpr(*SliceExpr)
	VisitSubscriptExpr(*SubscriptExpr)
	VisitCallExpr(*CallExpr)
	VisitStarred(*Starred)
	VisitBinOp(*BinOp)
	VisitUnaryOp(*UnaryOp)
	VisitBoolOp(*BoolOp)
	VisitCompare(*Compare)
	VisitLambdaExpr(*LambdaExpr)
	VisitIfExp(*IfExp)
	VisitListComp(*ListComp)
	VisitSetComp(*SetComp)
	VisitDictComp(*DictComp)
	VisitGeneratorExp(*GeneratorExp)
	VisitYieldExpr(*YieldExpr)
	VisitNamedExpr(*NamedExpr)
}

// BaseVisitor implements Visitor with structural, order-preserving
// recursion into every child node. Embed it and override only the methods
// you need; call the embedded method (v.BaseVisitor.VisitX(node)) from an
// override to keep descending. This is the AST Walker of spec §4.D: "given
// a node and a visitor, calls visitor.<node-kind>(node) if defined, else
// recurses into structural children" — in Go there is no method-missing
// hook, so BaseVisitor plays that role: override what you need, inherit
// the rest.
type BaseVisitor struct {
	Self Visitor // the outermost visitor; defaults to the BaseVisitor itself
}

func (b *BaseVisitor) self() Visitor {
	if b.Self != nil {
		return b.Self
	}
	return b
}

func (b *BaseVisitor) walkStmts(stmts []Statement) {
	for _, s := range stmts {
		s.Accept(b.self())
	}
}

func (b *BaseVisitor) walkExprs(exprs []Expression) {
	for _, e := range exprs {
		if e != nil {
			e.Accept(b.self())
		}
	}
}

func (b *BaseVisitor) VisitModule(m *Module) { b.walkStmts(m.Body) }
func (b *BaseVisitor) VisitIdentifier(*Identifier) {}

func (b *BaseVisitor) VisitImportStatement(*ImportStatement)         {}
func (b *BaseVisitor) VisitFromImportStatement(*FromImportStatement) {}
func (b *BaseVisitor) VisitPassStatement(*PassStatement)             {}
func (b *BaseVisitor) VisitBreakStatement(*BreakStatement)           {}
func (b *BaseVisitor) VisitContinueStatement(*ContinueStatement)     {}
func (b *BaseVisitor) VisitGlobalStatement(*GlobalStatement)         {}
func (b *BaseVisitor) VisitNonlocalStatement(*NonlocalStatement)     {}

func (b *BaseVisitor) VisitExprStatement(s *ExprStatement) { s.X.Accept(b.self()) }

func (b *BaseVisitor) VisitReturnStatement(s *ReturnStatement) {
	if s.Value != nil {
		s.Value.Accept(b.self())
	}
}

func (b *BaseVisitor) VisitRaiseStatement(s *RaiseStatement) {
	b.walkExprs([]Expression{s.Exc, s.Cause})
}

func (b *BaseVisitor) VisitAssertStatement(s *AssertStatement) {
	b.walkExprs([]Expression{s.Test, s.Msg})
}

func (b *BaseVisitor) VisitDeleteStatement(s *DeleteStatement) { b.walkExprs(s.Targets) }

func (b *BaseVisitor) walkArguments(a *Arguments) {
	if a == nil {
		return
	}
	for _, p := range a.Params {
		if p.Default != nil {
			p.Default.Accept(b.self())
		}
		if p.Annotation != nil {
			p.Annotation.Accept(b.self())
		}
	}
}

func (b *BaseVisitor) VisitFunctionDef(s *FunctionDef) {
	b.walkExprs(s.Decorators)
	b.walkArguments(s.Args)
	b.walkStmts(s.Body)
}

func (b *BaseVisitor) VisitClassDef(s *ClassDef) {
	b.walkExprs(s.Decorators)
	b.walkExprs(s.Bases)
	b.walkStmts(s.Body)
}

func (b *BaseVisitor) VisitAssignStatement(s *AssignStatement) {
	b.walkExprs(s.Targets)
	s.Value.Accept(b.self())
}

func (b *BaseVisitor) VisitAugAssignStatement(s *AugAssignStatement) {
	s.Target.Accept(b.self())
	s.Value.Accept(b.self())
}

func (b *BaseVisitor) VisitAnnAssignStatement(s *AnnAssignStatement) {
	s.Target.Accept(b.self())
	s.Annotation.Accept(b.self())
	if s.Value != nil {
		s.Value.Accept(b.self())
	}
}

func (b *BaseVisitor) VisitIfStatement(s *IfStatement) {
	s.Test.Accept(b.self())
	b.walkStmts(s.Body)
	b.walkStmts(s.Orelse)
}

func (b *BaseVisitor) VisitForStatement(s *ForStatement) {
	s.Target.Accept(b.self())
	s.Iter.Accept(b.self())
	b.walkStmts(s.Body)
	b.walkStmts(s.Orelse)
}

func (b *BaseVisitor) VisitWhileStatement(s *WhileStatement) {
	s.Test.Accept(b.self())
	b.walkStmts(s.Body)
	b.walkStmts(s.Orelse)
}

func (b *BaseVisitor) VisitTryStatement(s *TryStatement) {
	b.walkStmts(s.Body)
	for _, h := range s.Handlers {
		if h.Type != nil {
			h.Type.Accept(b.self())
		}
		b.walkStmts(h.Body)
	}
	b.walkStmts(s.Orelse)
	b.walkStmts(s.Finalbody)
}

func (b *BaseVisitor) VisitWithStatement(s *WithStatement) {
	for _, item := range s.Items {
		item.ContextExpr.Accept(b.self())
		if item.OptionalVars != nil {
			item.OptionalVars.Accept(b.self())
		}
	}
	b.walkStmts(s.Body)
}

func (b *BaseVisitor) VisitNumberLit(*NumberLit) {}
func (b *BaseVisitor) VisitStringLit(*StringLit) {}
func (b *BaseVisitor) VisitBoolLit(*BoolLit)     {}
func (b *BaseVisitor) VisitNoneLit(*NoneLit)     {}

func (b *BaseVisitor) VisitListExpr(e *ListExpr)   { b.walkExprs(e.Elts) }
func (b *BaseVisitor) VisitTupleExpr(e *TupleExpr) { b.walkExprs(e.Elts) }
func (b *BaseVisitor) VisitSetExpr(e *SetExpr)     { b.walkExprs(e.Elts) }

func (b *BaseVisitor) VisitDictExpr(e *DictExpr) {
	b.walkExprs(e.Keys)
	b.walkExprs(e.Values)
}

func (b *BaseVisitor) VisitAttributeExpr(e *AttributeExpr) { e.Value.Accept(b.self()) }

func (b *BaseVisitor) VisitSliceExpr(e *SliceExpr) {
	b.walkExprs([]Expression{e.Lower, e.Upper, e.Step})
}

func (b *BaseVisitor) VisitSubscriptExpr(e *SubscriptExpr) {
	e.Value.Accept(b.self())
	e.Index.Accept(b.self())
}

func (b *BaseVisitor) VisitCallExpr(e *CallExpr) {
	e.Func.Accept(b.self())
	b.walkExprs(e.Args)
	for _, kw := range e.Keywords {
		kw.Value.Accept(b.self())
	}
	b.walkExprs([]Expression{e.StarArgs, e.KwArgs})
}

func (b *BaseVisitor) VisitStarred(e *Starred) { e.Value.Accept(b.self()) }

func (b *BaseVisitor) VisitBinOp(e *BinOp) {
	e.Left.Accept(b.self())
	e.Right.Accept(b.self())
}

func (b *BaseVisitor) VisitUnaryOp(e *UnaryOp) { e.Operand.Accept(b.self()) }

func (b *BaseVisitor) VisitBoolOp(e *BoolOp) { b.walkExprs(e.Values) }

func (b *BaseVisitor) VisitCompare(e *Compare) {
	e.Left.Accept(b.self())
	b.walkExprs(e.Comparators)
}

func (b *BaseVisitor) VisitLambdaExpr(e *LambdaExpr) {
	b.walkArguments(e.Args)
	e.Body.Accept(b.self())
}

func (b *BaseVisitor) VisitIfExp(e *IfExp) {
	e.Test.Accept(b.self())
	e.Body.Accept(b.self())
	e.Orelse.Accept(b.self())
}

func (b *BaseVisitor) walkComprehensions(gens []*Comprehension) {
	for _, g := range gens {
		g.Target.Accept(b.self())
		g.Iter.Accept(b.self())
		b.walkExprs(g.Ifs)
	}
}

func (b *BaseVisitor) VisitListComp(e *ListComp) {
	e.Elt.Accept(b.self())
	b.walkComprehensions(e.Generators)
}

func (b *BaseVisitor) VisitSetComp(e *SetComp) {
	e.Elt.Accept(b.self())
	b.walkComprehensions(e.Generators)
}

func (b *BaseVisitor) VisitDictComp(e *DictComp) {
	e.Key.Accept(b.self())
	e.Value.Accept(b.self())
	b.walkComprehensions(e.Generators)
}

func (b *BaseVisitor) VisitGeneratorExp(e *GeneratorExp) {
	e.Elt.Accept(b.self())
	b.walkComprehensions(e.Generators)
}

func (b *BaseVisitor) VisitYieldExpr(e *YieldExpr) {
	if e.Value != nil {
		e.Value.Accept(b.self())
	}
}

func (b *BaseVisitor) VisitNamedExpr(e *NamedExpr) { e.Value.Accept(b.self()) }
