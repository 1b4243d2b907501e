package main

import (
	"fmt"
	"os"

	"github.com/corerope/corerope/internal/occurrence"
	"github.com/corerope/corerope/internal/refactor"
)

// handleRename implements `corerope rename <file> <offset> <new-name>`
// (spec §6 "restructure, reorganize imports, rename, extract, move,
// inline, introduce-factory"), printing the proposed Change set without
// applying it (refactor never writes to disk, spec §1 non-goal).
func handleRename() bool {
	if len(os.Args) < 2 || os.Args[1] != "rename" {
		return false
	}
	if len(os.Args) < 5 {
		return fail("usage: corerope rename <file> <offset> <new-name>")
	}
	resource, offset, err := parseFileOffset(os.Args[2], os.Args[3])
	if err != nil {
		return fail("%v", err)
	}
	newName := os.Args[4]

	w, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	changes, err := refactor.Rename(w, resource, offset, newName, occurrence.Options{})
	if err != nil {
		return fail("%v", err)
	}
	printChanges(changes)
	return true
}

func printChanges(changes []refactor.Change) {
	bold, reset := "", ""
	if _, noColor := os.LookupEnv("NO_COLOR"); !noColor && isColorTerminal() {
		bold, reset = "\033[1m", "\033[0m"
	}
	fmt.Printf("%s%s change(s)%s:\n", bold, formatCount(len(changes)), reset)
	for _, c := range changes {
		fmt.Printf("  %s [%d,%d) -> %q\n", c.Resource, c.StartOffset, c.EndOffset, c.Replacement)
	}
}
