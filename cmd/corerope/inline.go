package main

import (
	"fmt"
	"os"

	"github.com/corerope/corerope/internal/refactor"
)

// handleInline implements `corerope inline <file> <offset>` (spec §6
// "inline").
func handleInline() bool {
	if len(os.Args) < 2 || os.Args[1] != "inline" {
		return false
	}
	if len(os.Args) < 4 {
		return fail("usage: corerope inline <file> <offset>")
	}
	resource, offset, err := parseFileOffset(os.Args[2], os.Args[3])
	if err != nil {
		return fail("%v", err)
	}

	w, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	plan, err := refactor.Inline(w, resource, offset)
	if err != nil {
		return fail("%v", err)
	}

	fmt.Printf("inlining %s\n", plan.Name)
	changes := append([]refactor.Change{plan.Remove}, plan.Replace...)
	printChanges(changes)
	return true
}
