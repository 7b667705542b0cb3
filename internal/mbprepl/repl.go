// Package mbprepl is an interactive read-eval-print loop over the
// cubelang DSL: each line is a complete .cube document (declarations,
// an optional eliminate clause, and literal statements), projected and
// printed immediately. Grounded on the teacher's repl/repl.go, which
// re-parses one line of Kanso source per Scan and prints its AST; this
// keeps the same bufio.Scanner-driven prompt loop shape, rewritten
// against cubelang's parser instead of the Kanso lexer/parser and
// against projector.ProjectLiterals instead of an AST printer.
package mbprepl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"mbp/internal/cubelang"
	"mbp/internal/mbpconfig"
	"mbp/internal/projector"
)

const prompt = "mbp> "

// Start runs the loop, reading lines from in and writing prompts and
// results to out, until in is exhausted.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	mbpconfig.Default().Apply()

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		evalLine(out, line)
	}
}

func evalLine(out io.Writer, line string) {
	file, err := cubelang.Parse("<repl>", line)
	if err != nil {
		fmt.Fprintf(out, "parse error: %s\n", err)
		return
	}
	built, err := cubelang.Build(file)
	if err != nil {
		fmt.Fprintf(out, "build error: %s\n", err)
		return
	}
	result, flag, err := projector.ProjectLiterals(built.Model, built.Store, built.Literals, built.Eliminate, nil)
	if err != nil {
		fmt.Fprintf(out, "error: %s\n", err)
		return
	}
	if !flag.OK() {
		fmt.Fprintf(out, "projection failed: %s\n", flag.Error())
		return
	}
	if len(result) == 0 {
		fmt.Fprintln(out, "true")
		return
	}
	for _, lit := range result {
		fmt.Fprintln(out, built.Store.String(lit))
	}
}
