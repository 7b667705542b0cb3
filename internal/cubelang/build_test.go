package cubelang

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mbp/internal/projector"
)

// TestParseAndBuildPureSubstitution expresses spec.md §8 scenario 1 as
// source text instead of hand-built term occurrences.
func TestParseAndBuildPureSubstitution(t *testing.T) {
	src := `
var x : Real = 5;
var y : Real = 4;
var p : Bool = true;
eliminate x;
x = y + 1;
p;
`
	file, err := Parse("scenario1.cube", src)
	require.NoError(t, err)

	built, err := Build(file)
	require.NoError(t, err)
	require.Len(t, built.Literals, 2)
	require.Len(t, built.Eliminate, 1)

	out, flag, err := projector.ProjectLiterals(built.Model, built.Store, built.Literals, built.Eliminate, nil)
	require.NoError(t, err)
	require.True(t, flag.OK(), flag.Error())
	for _, lit := range out {
		require.NotContains(t, built.Store.String(lit), "x")
	}
}

// TestParseAndBuildValueClosure expresses spec.md §8 scenario 3.
func TestParseAndBuildValueClosure(t *testing.T) {
	src := `
var p : Bool = true;
var q : Bool = false;
eliminate p;
p | q;
`
	file, err := Parse("scenario3.cube", src)
	require.NoError(t, err)

	built, err := Build(file)
	require.NoError(t, err)

	out, flag, err := projector.ProjectLiterals(built.Model, built.Store, built.Literals, built.Eliminate, nil)
	require.NoError(t, err)
	require.True(t, flag.OK(), flag.Error())
	require.Empty(t, out)
}

// TestParseAndBuildDistinctAndNegation exercises the Distinct and
// negated-variable atom shapes.
func TestParseAndBuildDistinctAndNegation(t *testing.T) {
	src := `
var x : Real = 1;
var y : Real = 2;
var z : Real = 3;
var p : Bool = false;
distinct(x, y, z);
!p;
`
	file, err := Parse("distinct.cube", src)
	require.NoError(t, err)

	built, err := Build(file)
	require.NoError(t, err)
	require.Len(t, built.Literals, 2)
	require.Empty(t, built.Eliminate)

	for _, lit := range built.Literals {
		require.True(t, built.Model.Holds(lit), built.Store.String(lit))
	}
}

func TestParseRejectsUndeclaredVariable(t *testing.T) {
	file, err := Parse("bad.cube", "x >= 0;\n")
	require.NoError(t, err)

	_, err = Build(file)
	require.Error(t, err)
	require.Contains(t, err.Error(), "undeclared")
}

func TestParseRejectsSyntaxError(t *testing.T) {
	_, err := Parse("bad.cube", "var x : Real = ;\n")
	require.Error(t, err)
}
