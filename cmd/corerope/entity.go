package main

import (
	"fmt"
	"os"
)

// handleEntityAt implements `corerope entity-at <file> <offset>` (spec §6
// "entity_at(resource, offset) → (Name, PrimaryName)").
func handleEntityAt() bool {
	if len(os.Args) < 2 || os.Args[1] != "entity-at" {
		return false
	}
	if len(os.Args) < 4 {
		return fail("usage: corerope entity-at <file> <offset>")
	}
	resource, offset, err := parseFileOffset(os.Args[2], os.Args[3])
	if err != nil {
		return fail("%v", err)
	}

	w, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	name, primary, err := w.EntityAt(resource, offset)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("name: %s (%s)\n", name.Identifier, name.Kind)
	if primary != nil {
		fmt.Printf("primary: %s (%s)\n", primary.Identifier, primary.Kind)
	}
	return true
}

// handleDefinitionLocation implements
// `corerope definition-location <file> <offset>` (spec §6
// "definition_location(resource, offset) → (resource, lineno)").
func handleDefinitionLocation() bool {
	if len(os.Args) < 2 || os.Args[1] != "definition-location" {
		return false
	}
	if len(os.Args) < 4 {
		return fail("usage: corerope definition-location <file> <offset>")
	}
	resource, offset, err := parseFileOffset(os.Args[2], os.Args[3])
	if err != nil {
		return fail("%v", err)
	}

	w, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	res, lineno, ok, err := w.DefinitionLocation(resource, offset)
	if err != nil {
		return fail("%v", err)
	}
	if !ok {
		fmt.Println("no definition found")
		return true
	}
	fmt.Printf("%s:%d\n", res, lineno)
	return true
}

// handleDefinitions implements `corerope definitions <file> <offset>`
// (SPEC_FULL.md supplemented feature: workspace.Definitions, the
// findit-style every-assignment-site complement to DefinitionLocation).
func handleDefinitions() bool {
	if len(os.Args) < 2 || os.Args[1] != "definitions" {
		return false
	}
	if len(os.Args) < 4 {
		return fail("usage: corerope definitions <file> <offset>")
	}
	resource, offset, err := parseFileOffset(os.Args[2], os.Args[3])
	if err != nil {
		return fail("%v", err)
	}

	w, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	defs, err := w.Definitions(resource, offset)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("%s definition site(s):\n", formatCount(len(defs)))
	for _, d := range defs {
		fmt.Printf("  %s:%d\n", d.Resource, d.Lineno)
	}
	return true
}
