package main

import (
	"fmt"
	"os"
)

// handleModule implements `corerope module <dotted-name>` (spec §6
// "module(name, folder) → Entity").
func handleModule() bool {
	if len(os.Args) < 2 || os.Args[1] != "module" {
		return false
	}
	if len(os.Args) < 3 {
		return fail("usage: corerope module <dotted-name>")
	}

	w, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	ent, err := w.Module(os.Args[2], "")
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("%s: %T\n", os.Args[2], ent)
	return true
}
