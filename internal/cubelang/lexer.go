package cubelang

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes .cube source. Keywords (var, eliminate, distinct,
// true, false, the type names) are plain Idents matched literally by
// the grammar, the same convention the teacher's grammar.KansoLexer
// uses.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `[0-9]+(/[0-9]+)?`},
	{Name: "Operator", Pattern: `(>=|[=+\-*!|,:;()])`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
