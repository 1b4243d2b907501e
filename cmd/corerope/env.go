package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/corerope/corerope/internal/workspace"
	"github.com/corerope/corerope/internal/workspace/config"
)

// openWorkspace loads .corerope.yml starting from the current directory
// (config.FindConfig) and constructs a Workspace rooted there, the way
// the teacher's handleX functions locate funxy.yaml before doing
// anything else. With no config file found, it falls back to a
// single-source-root Workspace rooted at the current directory.
func openWorkspace() (*workspace.Workspace, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getwd: %w", err)
	}

	path, err := config.FindConfig(cwd)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return workspace.New(&config.Config{SourceRoots: []string{"."}, SyntaxErrorPolicy: config.PolicyLenient}, cwd), nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return workspace.New(cfg, filepath.Dir(path)), nil
}

// resourcePath resolves a CLI-supplied path argument to an absolute
// resource path, relative to the current directory.
func resourcePath(arg string) (string, error) {
	return filepath.Abs(arg)
}

// isColorTerminal mirrors the teacher's builtins_term.go terminal
// detection (go-isatty, with the NO_COLOR convention respected by the
// caller before this is even consulted).
func isColorTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// formatCount renders n with go-humanize's Comma for human-facing summary
// lines ("found 1,204 occurrences") the way the teacher's CLI summarizes
// large counts.
func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

func fail(format string, args ...any) bool {
	fmt.Fprintf(os.Stderr, "corerope: "+format+"\n", args...)
	os.Exit(1)
	return true
}
