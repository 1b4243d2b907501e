package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/corerope/corerope/internal/refactor"
)

// handleExtract implements
// `corerope extract <file> <start> <end> <name> [--function|--variable]`
// (spec §6 "extract").
func handleExtract() bool {
	if len(os.Args) < 2 || os.Args[1] != "extract" {
		return false
	}
	if len(os.Args) < 6 {
		return fail("usage: corerope extract <file> <start> <end> <name> [--function|--variable]")
	}

	resource, err := resourcePath(os.Args[2])
	if err != nil {
		return fail("%v", err)
	}
	start, err := strconv.Atoi(os.Args[3])
	if err != nil {
		return fail("invalid start offset %q: %v", os.Args[3], err)
	}
	end, err := strconv.Atoi(os.Args[4])
	if err != nil {
		return fail("invalid end offset %q: %v", os.Args[4], err)
	}
	name := os.Args[5]

	asFunction := true
	if len(os.Args) > 6 && os.Args[6] == "--variable" {
		asFunction = false
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

	plan, err := refactor.Extract(src, mod.AST, mod.Scope, start, end, name, asFunction)
	if err != nil {
		return fail("%v", err)
	}

	fmt.Printf("parameters: %v\n", plan.Parameters)
	fmt.Printf("definition:\n%s\n", plan.Definition)
	fmt.Printf("call: %s\n", plan.CallText)
	return true
}
