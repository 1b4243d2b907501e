package main

import (
	"fmt"
	"os"

	"github.com/corerope/corerope/internal/refactor"
)

// handleReorganizeImports implements `corerope reorganize-imports <file>`
// (spec §6 "reorganize imports"), listing every import binding that has
// no use elsewhere in the module.
func handleReorganizeImports() bool {
	if len(os.Args) < 2 || os.Args[1] != "reorganize-imports" {
		return false
	}
	if len(os.Args) < 3 {
		return fail("usage: corerope reorganize-imports <file>")
	}
	resource, err := resourcePath(os.Args[2])
	if err != nil {
		return fail("%v", err)
	}

	w, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	mod, err := w.ResourceToModule(resource)
	if err != nil {
		return fail("%v", err)
	}

	imports := refactor.ImportsOf(mod.AST, w.Resolver, mod.Resource, mod.Dotted)
	unused := refactor.FindUnusedImports(mod.AST, mod.Scope, imports)

	fmt.Printf("%s unused import(s):\n", formatCount(len(unused)))
	for _, u := range unused {
		fmt.Printf("  %s (module %q, level %d)\n", u.Name, u.Info.Module, u.Info.Level)
	}
	return true
}
