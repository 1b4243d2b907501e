package main

import (
	"fmt"
	"os"

	"github.com/corerope/corerope/internal/parser"
	"github.com/corerope/corerope/internal/refactor"
	"github.com/corerope/corerope/internal/workspace/config"
)

// handleRestructure implements
// `corerope restructure <file> <clusters-file> <rule-name>` (spec §6
// "restructure"), reporting every pattern match found in <file> under the
// named ClusterRule without rewriting anything.
func handleRestructure() bool {
	if len(os.Args) < 2 || os.Args[1] != "restructure" {
		return false
	}
	if len(os.Args) < 5 {
		return fail("usage: corerope restructure <file> <clusters-file> <rule-name>")
	}
	resource, err := resourcePath(os.Args[2])
	if err != nil {
		return fail("%v", err)
	}
	clustersPath := os.Args[3]
	ruleName := os.Args[4]

	cf, err := config.LoadClusters(clustersPath)
	if err != nil {
		return fail("%v", err)
	}
	rule, ok := cf.ByName(ruleName)
	if !ok {
		return fail("no cluster rule named %q", ruleName)
	}

	w, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	mod, err := w.ResourceToModule(resource)
	if err != nil {
		return fail("%v", err)
	}
	src, _ := w.Source(resource)

	matcher := refactor.NewPatternMatcher(parser.Lenient)
	matches, err := matcher.FindMatches(mod.AST, src, rule)
	if err != nil {
		return fail("%v", err)
	}

	fmt.Printf("%s match(es):\n", formatCount(len(matches)))
	for _, m := range matches {
		fmt.Printf("  [%d,%d) -> %q\n", m.StartOffset, m.EndOffset, m.Replacement)
	}
	return true
}
