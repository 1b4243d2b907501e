package ast

import "testing"

func TestCallForNodesStopsOnHandled(t *testing.T) {
	inner := &Identifier{Name: "x"}
	call := &CallExpr{Func: &Identifier{Name: "f"}, Args: []Expression{inner}}
	mod := &Module{Body: []Statement{&ExprStatement{X: call}}}

	var visited []string
	CallForNodes(mod, func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			visited = append(visited, id.Name)
			return true // handled: don't descend (irrelevant here, no children)
		}
		if n == call {
			visited = append(visited, "call")
			return true // stop: skip the nested identifiers "f" and "x"
		}
		return false
	})

	if len(visited) != 1 || visited[0] != "call" {
		t.Fatalf("visited = %v, want [call]", visited)
	}
}

func TestBaseVisitorWalksStructuralChildren(t *testing.T) {
	mod := &Module{Body: []Statement{
		&AssignStatement{
			Targets: []Expression{&Identifier{Name: "x"}},
			Value:   &BinOp{Left: &NumberLit{Literal: "1"}, Op: "+", Right: &NumberLit{Literal: "2"}},
		},
	}}

	var names []string
	v := &nameCollector{}
	v.Self = v
	mod.Accept(v)
	names = v.names
	if len(names) != 1 || names[0] != "x" {
		t.Fatalf("names = %v, want [x]", names)
	}
}

type nameCollector struct {
	BaseVisitor
	names []string
}

func (c *nameCollector) VisitIdentifier(n *Identifier) {
	c.names = append(c.names, n.Name)
}
