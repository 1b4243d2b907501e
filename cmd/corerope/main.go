// Command corerope is a thin driver over internal/workspace exposing the
// external interfaces of spec §6 (module/pyname_at/entity_at/
// find_occurrences/definition_location, plus the supplemented
// workspace.Definitions) as subcommands, dispatched the way the teacher's
// cmd/funxy/main.go dispatches: a chain of handleX() bool functions tried
// in order from main, each claiming os.Args[1] or falling through.
package main

import (
	"fmt"
	"os"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if handleHelp() {
		return
	}
	if handleModule() {
		return
	}
	if handlePyNameAt() {
		return
	}
	if handleEntityAt() {
		return
	}
	if handleDefinitionLocation() {
		return
	}
	if handleDefinitions() {
		return
	}
	if handleFindOccurrences() {
		return
	}
	if handleRename() {
		return
	}
	if handleExtract() {
		return
	}
	if handleMove() {
		return
	}
	if handleInline() {
		return
	}
	if handleIntroduceFactory() {
		return
	}
	if handleRestructure() {
		return
	}
	if handleReorganizeImports() {
		return
	}

	fmt.Fprintln(os.Stderr, "corerope: unknown command")
	fmt.Fprintln(os.Stderr, "Run 'corerope help' for usage.")
	os.Exit(1)
}
