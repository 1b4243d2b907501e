package ast

// CallForNodes walks node and every structural descendant, invoking fn on
// each one in pre-order. When fn returns true ("handled"), CallForNodes
// does not descend into that node's children — the spec §4.D
// "call_for_nodes variant [that] stops descending when the callback
// returns handled".
func CallForNodes(node Node, fn func(Node) bool) {
	if node == nil {
		return
	}
	w := &callForNodesVisitor{fn: fn}
	w.Self = w
	node.Accept(w)
}

type callForNodesVisitor struct {
	BaseVisitor
	fn func(Node) bool
}

// dispatch is called by every Visit* override before falling through to
// BaseVisitor's structural recursion.
func (w *callForNodesVisitor) dispatch(n Node, descend func()) {
	if w.fn(n) {
		return
	}
	descend()
}

func (w *callForNodesVisitor) VisitModule(n *Module) {
	w.dispatch(n, func() { w.BaseVisitor.VisitModule(n) })
}
func (w *callForNodesVisitor) VisitIdentifier(n *Identifier) {
	w.dispatch(n, func() { w.BaseVisitor.VisitIdentifier(n) })
}
func (w *callForNodesVisitor) VisitImportStatement(n *ImportStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitImportStatement(n) })
}
func (w *callForNodesVisitor) VisitFromImportStatement(n *FromImportStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitFromImportStatement(n) })
}
func (w *callForNodesVisitor) VisitPassStatement(n *PassStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitPassStatement(n) })
}
func (w *callForNodesVisitor) VisitBreakStatement(n *BreakStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitBreakStatement(n) })
}
func (w *callForNodesVisitor) VisitContinueStatement(n *ContinueStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitContinueStatement(n) })
}
func (w *callForNodesVisitor) VisitGlobalStatement(n *GlobalStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitGlobalStatement(n) })
}
func (w *callForNodesVisitor) VisitNonlocalStatement(n *NonlocalStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitNonlocalStatement(n) })
}
func (w *callForNodesVisitor) VisitExprStatement(n *ExprStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitExprStatement(n) })
}
func (w *callForNodesVisitor) VisitReturnStatement(n *ReturnStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitReturnStatement(n) })
}
func (w *callForNodesVisitor) VisitRaiseStatement(n *RaiseStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitRaiseStatement(n) })
}
func (w *callForNodesVisitor) VisitAssertStatement(n *AssertStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitAssertStatement(n) })
}
func (w *callForNodesVisitor) VisitDeleteStatement(n *DeleteStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitDeleteStatement(n) })
}
func (w *callForNodesVisitor) VisitFunctionDef(n *FunctionDef) {
	w.dispatch(n, func() { w.BaseVisitor.VisitFunctionDef(n) })
}
func (w *callForNodesVisitor) VisitClassDef(n *ClassDef) {
	w.dispatch(n, func() { w.BaseVisitor.VisitClassDef(n) })
}
func (w *callForNodesVisitor) VisitAssignStatement(n *AssignStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitAssignStatement(n) })
}
func (w *callForNodesVisitor) VisitAugAssignStatement(n *AugAssignStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitAugAssignStatement(n) })
}
func (w *callForNodesVisitor) VisitAnnAssignStatement(n *AnnAssignStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitAnnAssignStatement(n) })
}
func (w *callForNodesVisitor) VisitIfStatement(n *IfStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitIfStatement(n) })
}
func (w *callForNodesVisitor) VisitForStatement(n *ForStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitForStatement(n) })
}
func (w *callForNodesVisitor) VisitWhileStatement(n *WhileStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitWhileStatement(n) })
}
func (w *callForNodesVisitor) VisitTryStatement(n *TryStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitTryStatement(n) })
}
func (w *callForNodesVisitor) VisitWithStatement(n *WithStatement) {
	w.dispatch(n, func() { w.BaseVisitor.VisitWithStatement(n) })
}
func (w *callForNodesVisitor) VisitNumberLit(n *NumberLit) {
	w.dispatch(n, func() { w.BaseVisitor.VisitNumberLit(n) })
}
func (w *callForNodesVisitor) VisitStringLit(n *StringLit) {
	w.dispatch(n, func() { w.BaseVisitor.VisitStringLit(n) })
}
func (w *callForNodesVisitor) VisitBoolLit(n *BoolLit) {
	w.dispatch(n, func() { w.BaseVisitor.VisitBoolLit(n) })
}
func (w *callForNodesVisitor) VisitNoneLit(n *NoneLit) {
	w.dispatch(n, func() { w.BaseVisitor.VisitNoneLit(n) })
}
func (w *callForNodesVisitor) VisitListExpr(n *ListExpr) {
	w.dispatch(n, func() { w.BaseVisitor.VisitListExpr(n) })
}
func (w *callForNodesVisitor) VisitTupleExpr(n *TupleExpr) {
	w.dispatch(n, func() { w.BaseVisitor.VisitTupleExpr(n) })
}
func (w *callForNodesVisitor) VisitSetExpr(n *SetExpr) {
	w.dispatch(n, func() { w.BaseVisitor.VisitSetExpr(n) })
}
func (w *callForNodesVisitor) VisitDictExpr(n *DictExpr) {
	w.dispatch(n, func() { w.BaseVisitor.VisitDictExpr(n) })
}
func (w *callForNodesVisitor) VisitAttributeExpr(n *AttributeExpr) {
	w.dispatch(n, func() { w.BaseVisitor.VisitAttributeExpr(n) })
}
func (w *callForNodesVisitor) VisitSliceExpr(n *SliceExpr) {
	w.dispatch(n, func() { w.BaseVisitor.VisitSliceExpr(n) })
}
func (w *callForNodesVisitor) VisitSubscriptExpr(n *SubscriptExpr) {
	w.dispatch(n, func() { w.BaseVisitor.VisitSubscriptExpr(n) })
}
func (w *callForNodesVisitor) VisitCallExpr(n *CallExpr) {
	w.dispatch(n, func() { w.BaseVisitor.VisitCallExpr(n) })
}
func (w *callForNodesVisitor) VisitStarred(n *Starred) {
	w.dispatch(n, func() { w.BaseVisitor.VisitStarred(n) })
}
func (w *callForNodesVisitor) VisitBinOp(n *BinOp) {
	w.dispatch(n, func() { w.BaseVisitor.VisitBinOp(n) })
}
func (w *callForNodesVisitor) VisitUnaryOp(n *UnaryOp) {
	w.dispatch(n, func() { w.BaseVisitor.VisitUnaryOp(n) })
}
func (w *callForNodesVisitor) VisitBoolOp(n *BoolOp) {
	w.dispatch(n, func() { w.BaseVisitor.VisitBoolOp(n) })
}
func (w *callForNodesVisitor) VisitCompare(n *Compare) {
	w.dispatch(n, func() { w.BaseVisitor.VisitCompare(n) })
}
func (w *callForNodesVisitor) VisitLambdaExpr(n *LambdaExpr) {
	w.dispatch(n, func() { w.BaseVisitor.VisitLambdaExpr(n) })
}
func (w *callForNodesVisitor) VisitIfExp(n *IfExp) {
	w.dispatch(n, func() { w.BaseVisitor.VisitIfExp(n) })
}
func (w *callForNodesVisitor) VisitListComp(n *ListComp) {
	w.dispatch(n, func() { w.BaseVisitor.VisitListComp(n) })
}
func (w *callForNodesVisitor) VisitSetComp(n *SetComp) {
	w.dispatch(n, func() { w.BaseVisitor.VisitSetComp(n) })
}
func (w *callForNodesVisitor) VisitDictComp(n *DictComp) {
	w.dispatch(n, func() { w.BaseVisitor.VisitDictComp(n) })
}
func (w *callForNodesVisitor) VisitGeneratorExp(n *GeneratorExp) {
	w.dispatch(n, func() { w.BaseVisitor.VisitGeneratorExp(n) })
}
func (w *callForNodesVisitor) VisitYieldExpr(n *YieldExpr) {
	w.dispatch(n, func() { w.BaseVisitor.VisitYieldExpr(n) })
}
func (w *callForNodesVisitor) VisitNamedExpr(n *NamedExpr) {
	w.dispatch(n, func() { w.BaseVisitor.VisitNamedExpr(n) })
}
