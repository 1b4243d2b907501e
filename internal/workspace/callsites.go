package workspace

import (
	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/object"
)

// callCollector gathers every CallExpr in a module via the AST walker
// (internal/ast.BaseVisitor), the same traversal style occurrence.Finder
// uses for its own scan.
type callCollector struct {
	ast.BaseVisitor
	calls []*ast.CallExpr
}

func (c *callCollector) VisitCallExpr(e *ast.CallExpr) {
	c.calls = append(c.calls, e)
	c.BaseVisitor.VisitCallExpr(e)
}

// ScanCallSites walks every given resource's call expressions and records
// each argument's inferred entity as parameter evidence for the resolved
// callee (spec §4.H "Function parameters...inferred from every observed
// call-site across the workspace"). Intended to run once after an initial
// Enumerate, and again whenever the caller wants evidence refreshed
// against current sources; it is not kept incrementally up to date as
// individual resources change.
func (w *Workspace) ScanCallSites(resources []string) error {
	for _, res := range resources {
		mod, err := w.ResourceToModule(res)
		if err != nil {
			continue
		}
		c := &callCollector{}
		c.Self = c
		mod.AST.Accept(c)
		for _, call := range c.calls {
			w.recordCallSite(call, mod)
		}
	}
	return nil
}

func (w *Workspace) recordCallSite(call *ast.CallExpr, mod *object.Module) {
	sc := mod.Scope.FindInnerScopeForOffset(call.Pos())
	callee := w.Inferer.InferAt(call.Func, sc, mod)
	fn, ok := callee.(*object.Function)
	if !ok {
		return
	}

	// A call through an attribute (`obj.method(x)`) supplies its receiver
	// implicitly: e.Args excludes `self`, so the first textual argument
	// lines up with parameter index 1, not 0.
	offset := 0
	if _, bound := call.Func.(*ast.AttributeExpr); bound && fn.Role == object.RoleMethod {
		offset = 1
	}

	for i, a := range call.Args {
		v := w.Inferer.InferAt(a, sc, mod)
		w.evidence.addParam(fn.Scope, i+offset, v)
	}
}
