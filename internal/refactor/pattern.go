// Package refactor implements spec §6's refactorings-as-consumers: rename,
// extract, move, inline, introduce-factory, restructure and reorganize
// imports, each expressed purely as a change-set *planner* over the core
// analyzer (workspace/scope/inference/occurrence) — never an applier.
// Applying a Plan's edits to disk is explicitly out of scope (spec §1 "change-set
// application" is a non-goal; supplemented-feature note in SPEC_FULL.md §4).
package refactor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/parser"
	"github.com/corerope/corerope/internal/workspace/config"
)

// wildcardRef recognizes a "${name}" placeholder in a ClusterRule.Pattern,
// rope's own template syntax (rope/refactor/similarfinder.py's
// _Template/_RopeVariable). Captured group 1 is the wildcard's name.
var wildcardRef = regexp.MustCompile(`\$\{(\w+)\}`)

// wildcardPrefix renames a "${name}" placeholder to a syntactically valid
// identifier before parsing, the way _RopeVariable.get_any/get_normal
// mangles wildcard names so the host parser accepts the pattern text.
const wildcardPrefix = "__corerope_wildcard_"

// Match is one occurrence of a ClusterRule's Pattern found in a module,
// with the substrings captured by its wildcards and the fully-substituted
// replacement text ready to splice in (by some future applier — refactor
// itself never writes to disk).
type Match struct {
	StartOffset int
	EndOffset   int
	Captures    map[string]string
	Replacement string
}

// PatternMatcher finds restricted structural matches of a ClusterRule's
// Pattern against a module's AST, the way rope's refactor/similarfinder.py
// drives `restructure`. Unlike rope (which compiles the pattern with the
// host language's own parser and recognizes any wildcard identifier),
// this is deliberately restricted to the expression kinds restructure
// realistically rewrites — calls, attribute access, subscripts, names and
// literals — consistent with SPEC_FULL.md framing this as a "restricted
// pattern-match", not a general AST unifier.
type PatternMatcher struct {
	policy parser.Policy
}

// NewPatternMatcher creates a matcher using policy to parse each rule's
// Pattern (which must itself be syntactically valid as a bare expression
// statement).
func NewPatternMatcher(policy parser.Policy) *PatternMatcher {
	return &PatternMatcher{policy: policy}
}

// FindMatches walks mod's AST (whose text is src) looking for every
// subexpression matching rule.Pattern, substituting captured wildcard
// text into rule.Goal for each.
func (pm *PatternMatcher) FindMatches(mod *ast.Module, src string, rule config.ClusterRule) ([]Match, error) {
	pattern, err := pm.parsePattern(rule.Pattern)
	if err != nil {
		return nil, fmt.Errorf("restructure %s: parsing pattern: %w", rule.Name, err)
	}

	c := &patternCollector{pattern: pattern, src: src}
	c.BaseVisitor.Self = c
	mod.Accept(c)

	matches := make([]Match, 0, len(c.hits))
	for _, h := range c.hits {
		matches = append(matches, Match{
			StartOffset: h.node.Pos(),
			EndOffset:   h.node.End(),
			Captures:    h.captures,
			Replacement: substitute(rule.Goal, h.captures),
		})
	}
	return matches, nil
}

// parsePattern parses a bare expression, the way rope's _create_pattern
// parses the pattern text as a throwaway module and pulls out its single
// Discard (expression-statement) node. "${name}" wildcard references are
// renamed to valid identifiers first (_replace_wildcards), then restored
// to wildcard bindings by matchNode via the wildcardPrefix they carry.
func (pm *PatternMatcher) parsePattern(pattern string) (ast.Expression, error) {
	mangled := wildcardRef.ReplaceAllString(pattern, wildcardPrefix+"$1")
	mod, err := parser.Parse("<pattern>", mangled+"\n", pm.policy)
	if err != nil {
		return nil, err
	}
	if len(mod.Body) != 1 {
		return nil, fmt.Errorf("pattern must be a single expression, got %d statements", len(mod.Body))
	}
	stmt, ok := mod.Body[0].(*ast.ExprStatement)
	if !ok {
		return nil, fmt.Errorf("pattern must be a bare expression")
	}
	return stmt.X, nil
}

func substitute(goal string, captures map[string]string) string {
	out := goal
	for name, text := range captures {
		out = strings.ReplaceAll(out, "${"+name+"}", text)
	}
	return out
}
