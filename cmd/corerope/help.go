package main

import (
	"fmt"
	"os"
)

const usage = `corerope - semantic analysis and refactoring for corerope projects

Usage:
  corerope help
  corerope module <dotted-name>
  corerope pyname-at <file> <offset>
  corerope entity-at <file> <offset>
  corerope definition-location <file> <offset>
  corerope definitions <file> <offset>
  corerope find-occurrences <file> <offset> [--unsure] [--imports] [--hierarchy]
  corerope rename <file> <offset> <new-name>
  corerope extract <file> <start> <end> <name> [--function|--variable]
  corerope move <file> <offset> <target-file> <target-dotted>
  corerope inline <file> <offset>
  corerope introduce-factory <file> <offset> [factory-name]
  corerope restructure <file> <clusters-file> <rule-name>
  corerope reorganize-imports <file>

All commands operate relative to the nearest .corerope.yml (or .corerope.yaml)
found by walking up from the current directory; with none found, the current
directory is treated as a single source root.
`

func handleHelp() bool {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if os.Args[1] == "help" || os.Args[1] == "-h" || os.Args[1] == "--help" {
		fmt.Print(usage)
		return true
	}
	return false
}
