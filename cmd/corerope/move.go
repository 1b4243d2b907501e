package main

import (
	"fmt"
	"os"

	"github.com/corerope/corerope/internal/refactor"
)

// handleMove implements `corerope move <file> <offset> <target-file>
// <target-dotted>` (spec §6 "move").
func handleMove() bool {
	if len(os.Args) < 2 || os.Args[1] != "move" {
		return false
	}
	if len(os.Args) < 6 {
		return fail("usage: corerope move <file> <offset> <target-file> <target-dotted>")
	}
	resource, offset, err := parseFileOffset(os.Args[2], os.Args[3])
	if err != nil {
		return fail("%v", err)
	}
	target, err := resourcePath(os.Args[4])
	if err != nil {
		return fail("%v", err)
	}
	targetDotted := os.Args[5]

	w, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	plan, err := refactor.Move(w, resource, offset, target, targetDotted)
	if err != nil {
		return fail("%v", err)
	}

	fmt.Printf("moving %s to %s\n", plan.Name, target)
	printChanges([]refactor.Change{plan.Remove, plan.Insert, plan.Import})
	return true
}
