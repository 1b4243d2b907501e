package main

import (
	"fmt"
	"os"
	"strconv"
)

// handlePyNameAt implements `corerope pyname-at <file> <offset>` (spec §6
// "pyname_at(resource, offset) → Name").
func handlePyNameAt() bool {
	if len(os.Args) < 2 || os.Args[1] != "pyname-at" {
		return false
	}
	if len(os.Args) < 4 {
		return fail("usage: corerope pyname-at <file> <offset>")
	}
	resource, offset, err := parseFileOffset(os.Args[2], os.Args[3])
	if err != nil {
		return fail("%v", err)
	}

	w, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	name, err := w.PyNameAt(resource, offset)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("%s (%s)\n", name.Identifier, name.Kind)
	return true
}

func parseFileOffset(fileArg, offsetArg string) (string, int, error) {
	resource, err := resourcePath(fileArg)
	if err != nil {
		return "", 0, err
	}
	offset, err := strconv.Atoi(offsetArg)
	if err != nil {
		return "", 0, fmt.Errorf("invalid offset %q: %w", offsetArg, err)
	}
	return resource, offset, nil
}
