package refactor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/lines"
	"github.com/corerope/corerope/internal/scope"
	"github.com/corerope/corerope/internal/workspace"
)

// ExtractPlan is the proposed change-set for an extract-method/-variable
// refactoring: the new definition's text and the call that replaces the
// original selection. refactor never writes either to disk (spec §1
// non-goal: change-set application) — some caller applies a Plan.
type ExtractPlan struct {
	Name       string
	Parameters []string
	Definition string // the extracted def/assignment text
	CallText   string // text that replaces the original selection
}

// Extract validates that [startOffset, endOffset) sits inside a single
// enclosing scope (rejecting a selection that straddles a scope boundary,
// spec §7 RefactoringPrecondition) and plans the extraction. asFunction
// selects extract-function framing (a new `def`) vs extract-variable (a
// plain assignment above the selection). Grounded on rope's extract.py
// snapping the selection to whole statements/blocks before extracting
// (here via lines.BlockRangeFinder) and on its free-variable analysis
// deciding the new function's parameter list.
func Extract(src string, mod *ast.Module, rootScope *scope.Scope, startOffset, endOffset int, name string, asFunction bool) (*ExtractPlan, error) {
	if endOffset <= startOffset {
		return nil, &workspace.RefactoringPreconditionError{Refactoring: "extract", Message: "selection is empty"}
	}

	startScope := rootScope.FindInnerScopeForOffset(startOffset)
	endScope := rootScope.FindInnerScopeForOffset(endOffset - 1)
	if startScope != endScope {
		return nil, &workspace.RefactoringPreconditionError{
			Refactoring: "extract",
			Message:     "selection straddles a scope boundary",
		}
	}

	ix := lines.New(src)
	block := lines.NewBlockRangeFinder(ix)
	startLine := ix.LineNumber(startOffset)
	endLine := ix.LineNumber(endOffset - 1)

	snapStart := block.StatementStart(startLine)
	snapEnd := block.BlockEnd(endLine)
	selStart := ix.LineStart(snapStart)
	selEnd := ix.LineEnd(snapEnd)
	if selEnd > len(src) {
		selEnd = len(src)
	}
	body := src[selStart:selEnd]

	params := freeNames(mod, startScope, selStart, selEnd)

	var def, call string
	if asFunction {
		def = fmt.Sprintf("def %s(%s):\n%s", name, strings.Join(params, ", "), indentBody(body))
		call = fmt.Sprintf("%s(%s)", name, strings.Join(params, ", "))
	} else {
		def = fmt.Sprintf("%s = %s", name, strings.TrimRight(body, "\n"))
		call = name
	}

	return &ExtractPlan{Name: name, Parameters: params, Definition: def, CallText: call}, nil
}

// freeNames finds every identifier referenced in [start, end) that scope
// binds to startScope (a local or a parameter of the scope being
// extracted from): these must become parameters of the extracted
// function, since the new scope starts with nothing bound.
func freeNames(mod *ast.Module, startScope *scope.Scope, start, end int) []string {
	c := &rangeIdentifierCollector{start: start, end: end}
	c.BaseVisitor.Self = c
	mod.Accept(c)

	seen := map[string]bool{}
	var out []string
	for _, id := range c.names {
		if seen[id] {
			continue
		}
		n, ok := startScope.Names[id]
		if !ok {
			continue // global, builtin, or not locally bound — not a free var
		}
		switch n.Kind {
		case scope.ParameterNameKind:
			// Always bound before the selection runs.
			seen[id] = true
			out = append(out, id)
		case scope.AssignedNameKind:
			if assignedOutside(n, start) {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	sort.Strings(out)
	return out
}

// assignedOutside reports whether n has at least one assignment whose
// value starts before start — i.e. the name already held a value before
// the selection began, so the extracted body depends on it rather than
// defining it.
func assignedOutside(n *scope.Name, start int) bool {
	for _, a := range n.Assignments {
		if a.Value != nil && a.Value.Pos() < start {
			return true
		}
	}
	return false
}

type rangeIdentifierCollector struct {
	ast.BaseVisitor
	start, end int
	names      []string
}

func (c *rangeIdentifierCollector) VisitIdentifier(n *ast.Identifier) {
	if n.StartPos >= c.start && n.EndPos <= c.end {
		c.names = append(c.names, n.Name)
	}
}

func indentBody(body string) string {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
