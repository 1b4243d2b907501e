package main

import (
	"fmt"
	"os"

	"github.com/corerope/corerope/internal/refactor"
)

// handleIntroduceFactory implements
// `corerope introduce-factory <file> <offset> [factory-name]` (spec §6
// "introduce-factory").
func handleIntroduceFactory() bool {
	if len(os.Args) < 2 || os.Args[1] != "introduce-factory" {
		return false
	}
	if len(os.Args) < 4 {
		return fail("usage: corerope introduce-factory <file> <offset> [factory-name]")
	}
	resource, offset, err := parseFileOffset(os.Args[2], os.Args[3])
	if err != nil {
		return fail("%v", err)
	}
	factoryName := ""
	if len(os.Args) > 4 {
		factoryName = os.Args[4]
	}

	w, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	plan, err := refactor.IntroduceFactory(w, resource, offset, factoryName, nil)
	if err != nil {
		return fail("%v", err)
	}

	fmt.Printf("adding %s.%s\n", plan.ClassName, plan.FactoryName)
	changes := append([]refactor.Change{plan.InsertMethod}, plan.CallSites...)
	printChanges(changes)
	return true
}
