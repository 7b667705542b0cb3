package subst

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"mbp/internal/term"
)

func TestApplySubstitutesIntoGenericComposite(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	y := s.NewUninterpretedConstant("y", term.RealType)
	p := s.NewUninterpretedConstant("p", term.BoolType)

	// Stand-in for an uninterpreted predicate application P(x).
	px := s.NewComposite(term.Eq, term.BoolType, []term.Occurrence{p, x})

	yPlus1 := s.NewPolynomial(term.NewPolynomial([]term.Monomial{
		{Coeff: big.NewRat(1, 1), Var: y},
		{Coeff: big.NewRat(1, 1), Var: term.NoVar},
	}))

	sub, err := New(s, []term.Occurrence{x}, []term.Occurrence{yPlus1})
	require.NoError(t, err)

	out, err := sub.Apply(px)
	require.NoError(t, err)
	require.Equal(t, "Eq(p, 1 + y)", s.String(out))
}

func TestApplyChasesReplacementChain(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	y := s.NewUninterpretedConstant("y", term.RealType)
	z := s.NewUninterpretedConstant("z", term.RealType)

	sub, err := New(s, []term.Occurrence{x, y}, []term.Occurrence{y, z})
	require.NoError(t, err)

	out, err := sub.Apply(x)
	require.NoError(t, err)
	require.Equal(t, z, out)
}

func TestApplyDetectsCycle(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	y := s.NewUninterpretedConstant("y", term.RealType)

	sub, err := New(s, []term.Occurrence{x, y}, []term.Occurrence{y, x})
	require.NoError(t, err)

	_, err = sub.Apply(x)
	require.Error(t, err)
}

func TestApplyNegatedBooleanVariable(t *testing.T) {
	s := term.NewStore()
	p := s.NewUninterpretedConstant("p", term.BoolType)

	sub, err := New(s, []term.Occurrence{p}, []term.Occurrence{term.True})
	require.NoError(t, err)

	out, err := sub.Apply(s.Complement(p))
	require.NoError(t, err)
	require.Equal(t, term.False, out)
}

func TestApplyUnmappedTermIsUnchanged(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	y := s.NewUninterpretedConstant("y", term.RealType)
	eq := s.NewArithEq(s.NewPolynomial(term.NewPolynomial([]term.Monomial{
		{Coeff: big.NewRat(1, 1), Var: y},
	})))

	sub, err := New(s, []term.Occurrence{x}, []term.Occurrence{term.True})
	require.NoError(t, err)

	out, err := sub.Apply(eq)
	require.NoError(t, err)
	require.Equal(t, eq, out)
}
