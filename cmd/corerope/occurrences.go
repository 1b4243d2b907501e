package main

import (
	"fmt"
	"os"

	"github.com/corerope/corerope/internal/occurrence"
)

// handleFindOccurrences implements
// `corerope find-occurrences <file> <offset> [--unsure] [--imports] [--hierarchy]`
// (spec §6 "find_occurrences(resource, offset, ...) → []Occurrence").
func handleFindOccurrences() bool {
	if len(os.Args) < 2 || os.Args[1] != "find-occurrences" {
		return false
	}
	if len(os.Args) < 4 {
		return fail("usage: corerope find-occurrences <file> <offset> [--unsure] [--imports] [--hierarchy]")
	}
	resource, offset, err := parseFileOffset(os.Args[2], os.Args[3])
	if err != nil {
		return fail("%v", err)
	}

	var opts occurrence.Options
	for _, flag := range os.Args[4:] {
		switch flag {
		case "--unsure":
			opts.Unsure = true
		case "--imports":
			opts.Imports = true
		case "--hierarchy":
			opts.InHierarchy = true
		default:
			return fail("unknown flag %q", flag)
		}
	}

	w, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	occs, err := w.FindOccurrences(resource, offset, opts, nil, nil)
	if err != nil {
		return fail("%v", err)
	}

	fmt.Printf("%s occurrence(s):\n", formatCount(len(occs)))
	for _, o := range occs {
		marker := ""
		if o.IsWritten {
			marker = " (write)"
		}
		if o.IsUnsure {
			marker += " (unsure)"
		}
		fmt.Printf("  %s:%d [%d,%d)%s\n", o.Resource, o.Lineno, o.StartOffset, o.EndOffset, marker)
	}
	return true
}
