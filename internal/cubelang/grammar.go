// Package cubelang is a small textual DSL for authoring the cubes the
// projector core consumes: variable declarations that double as model
// assignments, an elimination set, and the literal statements forming
// the cube. It exists purely as an external test/demo surface (spec.md
// §1 places parsers out of scope for the core) so unit tests and the
// CLI can express spec.md §8's scenarios as source text instead of
// hand-built term occurrences, grounded the way the teacher repo's
// grammar package turns source text into an AST with participle/v2.
package cubelang

// File is the root of a parsed .cube document.
type File struct {
	Decls     []*VarDecl     `@@*`
	Eliminate *EliminateDecl `@@?`
	Literals  []*LiteralStmt `@@*`
}

// VarDecl declares an uninterpreted constant and its model value in
// one statement: `var x : Real = 5;`.
type VarDecl struct {
	Name  string    `"var" @Ident ":"`
	Type  string    `@("Real" | "Int" | "Bool")`
	Value *ValueLit `"=" @@ ";"`
}

// ValueLit is either a Boolean keyword or a rational-number literal.
type ValueLit struct {
	Bool   *string `  @("true" | "false")`
	Number *string `| @Number`
}

// EliminateDecl names the vars_to_elim set: `eliminate x, y;`.
type EliminateDecl struct {
	Names []string `"eliminate" @Ident { "," @Ident } ";"`
}

// LiteralStmt is one cube literal, terminated by ";".
type LiteralStmt struct {
	Disj *Disjunction `@@ ";"`
}

// Disjunction is one or more atoms joined by "|" (spec.md §8's `p | q`).
type Disjunction struct {
	Atoms []*Atom `@@ { "|" @@ }`
}

// Atom is a single literal occurrence: an optional negation in front
// of a distinct-expression, an arithmetic comparison, or a bare
// Boolean variable.
type Atom struct {
	Neg      bool          `[ @"!" ]`
	Distinct *DistinctExpr `  @@`
	Compare  *CompareExpr  `| @@`
	Var      *string       `| @Ident`
}

// DistinctExpr is spec.md §3's generic Distinct literal: `distinct(x, y, z)`.
type DistinctExpr struct {
	Names []string `"distinct" "(" @Ident { "," @Ident } ")"`
}

// CompareExpr is an arithmetic atom: `x = y + 1` or `x >= a`.
type CompareExpr struct {
	Left  Arith  `@@`
	Op    string `@("=" | ">=")`
	Right Arith  `@@`
}

// Arith is a sum of Terms, left-associative over "+"/"-".
type Arith struct {
	First *Term    `@@`
	Rest  []*AddOp `{ @@ }`
}

// AddOp is one addition or subtraction step in an Arith sum.
type AddOp struct {
	Op   string `@("+" | "-")`
	Term *Term  `@@`
}

// CoeffTerm is a coefficient applied to a variable: `2*x`.
type CoeffTerm struct {
	Number string `@Number "*"`
	Var    string `@Ident`
}

// Term is one summand: a coefficient*variable, a bare rational
// constant, or a bare unit-coefficient variable.
type Term struct {
	CoeffVar *CoeffTerm `  @@`
	Const    *string    `| @Number`
	Var      *string    `| @Ident`
}
