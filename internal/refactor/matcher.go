package refactor

import "github.com/corerope/corerope/internal/ast"

type patternHit struct {
	node     ast.Expression
	captures map[string]string
}

// patternCollector walks a module overriding the expression Visit methods
// a restructure pattern can realistically target (calls, attribute
// access, subscripts, names, literals), attempting a match at each one
// before recursing into children — the same "check every node, recurse
// regardless" shape as rope's patchedast.call_for_nodes(recursive=True).
type patternCollector struct {
	ast.BaseVisitor
	pattern ast.Expression
	src     string
	hits    []patternHit
}

func (c *patternCollector) tryMatch(n ast.Expression) {
	captures := map[string]string{}
	if matchNode(c.pattern, n, c.src, captures) {
		c.hits = append(c.hits, patternHit{node: n, captures: captures})
	}
}

func (c *patternCollector) VisitIdentifier(n *ast.Identifier) {
	c.tryMatch(n)
	c.BaseVisitor.VisitIdentifier(n)
}

func (c *patternCollector) VisitAttributeExpr(n *ast.AttributeExpr) {
	c.tryMatch(n)
	c.BaseVisitor.VisitAttributeExpr(n)
}

func (c *patternCollector) VisitSubscriptExpr(n *ast.SubscriptExpr) {
	c.tryMatch(n)
	c.BaseVisitor.VisitSubscriptExpr(n)
}

func (c *patternCollector) VisitCallExpr(n *ast.CallExpr) {
	c.tryMatch(n)
	c.BaseVisitor.VisitCallExpr(n)
}

func (c *patternCollector) VisitBinOp(n *ast.BinOp) {
	c.tryMatch(n)
	c.BaseVisitor.VisitBinOp(n)
}

func (c *patternCollector) VisitNumberLit(n *ast.NumberLit) {
	c.tryMatch(n)
	c.BaseVisitor.VisitNumberLit(n)
}

func (c *patternCollector) VisitStringLit(n *ast.StringLit) {
	c.tryMatch(n)
	c.BaseVisitor.VisitStringLit(n)
}

func (c *patternCollector) VisitBoolLit(n *ast.BoolLit) {
	c.tryMatch(n)
	c.BaseVisitor.VisitBoolLit(n)
}

func (c *patternCollector) VisitNoneLit(n *ast.NoneLit) {
	c.tryMatch(n)
	c.BaseVisitor.VisitNoneLit(n)
}

func (c *patternCollector) VisitListExpr(n *ast.ListExpr) {
	c.tryMatch(n)
	c.BaseVisitor.VisitListExpr(n)
}

func (c *patternCollector) VisitTupleExpr(n *ast.TupleExpr) {
	c.tryMatch(n)
	c.BaseVisitor.VisitTupleExpr(n)
}

// wildcardName returns (name, true) if id is a mangled "${name}"
// wildcard reference (see parsePattern), else ("", false).
func wildcardName(id *ast.Identifier) (string, bool) {
	if len(id.Name) > len(wildcardPrefix) && id.Name[:len(wildcardPrefix)] == wildcardPrefix {
		return id.Name[len(wildcardPrefix):], true
	}
	return "", false
}

// matchNode compares pattern against candidate structurally, recording
// each wildcard's matched source text into captures. A wildcard
// identifier always matches, consuming the whole candidate subtree; any
// other pattern node kind must match the candidate's kind and every
// child, recursively.
func matchNode(pattern, candidate ast.Expression, src string, captures map[string]string) bool {
	if id, ok := pattern.(*ast.Identifier); ok {
		if name, isWild := wildcardName(id); isWild {
			captures[name] = sliceSrc(src, candidate.Pos(), candidate.End())
			return true
		}
	}

	switch p := pattern.(type) {
	case *ast.Identifier:
		c, ok := candidate.(*ast.Identifier)
		return ok && c.Name == p.Name

	case *ast.NumberLit:
		c, ok := candidate.(*ast.NumberLit)
		return ok && c.Literal == p.Literal

	case *ast.StringLit:
		c, ok := candidate.(*ast.StringLit)
		return ok && c.Value == p.Value

	case *ast.BoolLit:
		c, ok := candidate.(*ast.BoolLit)
		return ok && c.Value == p.Value

	case *ast.NoneLit:
		_, ok := candidate.(*ast.NoneLit)
		return ok

	case *ast.AttributeExpr:
		c, ok := candidate.(*ast.AttributeExpr)
		return ok && p.Attr.Name == c.Attr.Name && matchNode(p.Value, c.Value, src, captures)

	case *ast.SubscriptExpr:
		c, ok := candidate.(*ast.SubscriptExpr)
		return ok && matchNode(p.Value, c.Value, src, captures) && matchNode(p.Index, c.Index, src, captures)

	case *ast.BinOp:
		c, ok := candidate.(*ast.BinOp)
		return ok && p.Op == c.Op && matchNode(p.Left, c.Left, src, captures) && matchNode(p.Right, c.Right, src, captures)

	case *ast.ListExpr:
		c, ok := candidate.(*ast.ListExpr)
		return ok && matchExprList(p.Elts, c.Elts, src, captures)

	case *ast.TupleExpr:
		c, ok := candidate.(*ast.TupleExpr)
		return ok && matchExprList(p.Elts, c.Elts, src, captures)

	case *ast.CallExpr:
		c, ok := candidate.(*ast.CallExpr)
		if !ok || !matchNode(p.Func, c.Func, src, captures) {
			return false
		}
		return matchExprList(p.Args, c.Args, src, captures)
	}
	return false
}

func matchExprList(pattern, candidate []ast.Expression, src string, captures map[string]string) bool {
	if len(pattern) != len(candidate) {
		return false
	}
	for i := range pattern {
		if !matchNode(pattern[i], candidate[i], src, captures) {
			return false
		}
	}
	return true
}

func sliceSrc(src string, start, end int) string {
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return src[start:end]
}
