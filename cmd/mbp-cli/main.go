// Command mbp-cli is a one-shot demo surface over the projector core:
// `mbp-cli run <file.cube>` parses a .cube file with cubelang, builds
// the TermStore/Model fixture it declares, runs project_literals, and
// prints the residual cube and ProjectorFlag. `mbp-cli repl` starts an
// interactive loop over stdin. Grounded on the teacher's
// cmd/kanso-cli/main.go: the same participle.Build + caret-style parse
// error report, and color.Green/color.Red for the pass/fail summary.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"mbp/internal/cubelang"
	"mbp/internal/mbpconfig"
	"mbp/internal/mbprepl"
	"mbp/internal/projector"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "repl":
		mbprepl.Start(os.Stdin, os.Stdout)
	case "run":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		runFile(os.Args[2])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: mbp-cli run <file.cube>")
	fmt.Println("       mbp-cli repl")
}

func runFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	applyConfig()

	file, err := cubelang.Parse(path, string(source))
	if err != nil {
		reportParseError(string(source), err)
		os.Exit(1)
	}

	built, err := cubelang.Build(file)
	if err != nil {
		color.Red("❌ %s", err)
		os.Exit(1)
	}

	out, flag, err := projector.ProjectLiterals(built.Model, built.Store, built.Literals, built.Eliminate, nil)
	if err != nil {
		color.Red("❌ %s", err)
		os.Exit(1)
	}
	if !flag.OK() {
		color.Red("❌ projection failed: %s", flag.Error())
		os.Exit(1)
	}

	for _, lit := range out {
		fmt.Println(built.Store.String(lit))
	}
	color.Green("✅ projected %d literal(s), eliminating %d variable(s)", len(built.Literals), len(built.Eliminate))
}

// applyConfig loads MBP_CONFIG if set, otherwise leaves the projector
// package's built-in defaults in place.
func applyConfig() {
	path := os.Getenv("MBP_CONFIG")
	if path == "" {
		return
	}
	cfg, err := mbpconfig.Load(path)
	if err != nil {
		color.Red("failed to load config %s: %s", path, err)
		os.Exit(1)
	}
	cfg.Apply()
}

// reportParseError prints a friendly caret-style parse error message.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("Syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("❌ Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("→ %s\n", pe.Message())
}
