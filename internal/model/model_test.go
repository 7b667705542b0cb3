package model

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"mbp/internal/term"
)

func TestEvaluatePolynomialAndAtoms(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	y := s.NewUninterpretedConstant("y", term.RealType)

	m := NewRefModel(s)
	m.AssignRational(x, big.NewRat(5, 1))
	m.AssignRational(y, big.NewRat(4, 1))

	// x - y - 1 = 0, holds at x=5, y=4.
	poly := s.NewPolynomial(term.NewPolynomial([]term.Monomial{
		{Coeff: big.NewRat(1, 1), Var: x},
		{Coeff: big.NewRat(-1, 1), Var: y},
		{Coeff: big.NewRat(-1, 1), Var: term.NoVar},
	}))
	eq := s.NewArithEq(poly)
	require.True(t, m.Holds(eq))

	ge := s.NewArithGe(poly)
	require.True(t, m.Holds(ge))
	require.False(t, m.Holds(s.Complement(ge)))
}

func TestEvaluateGenericComposites(t *testing.T) {
	s := term.NewStore()
	p := s.NewUninterpretedConstant("p", term.BoolType)
	q := s.NewUninterpretedConstant("q", term.BoolType)

	m := NewRefModel(s)
	m.AssignBool(p, true)
	m.AssignBool(q, false)

	or := s.NewComposite(term.Or, term.BoolType, []term.Occurrence{p, q})
	require.True(t, m.Holds(or))

	xor := s.NewComposite(term.Xor, term.BoolType, []term.Occurrence{p, q})
	require.True(t, m.Holds(xor))

	distinct := s.NewComposite(term.Distinct, term.BoolType, []term.Occurrence{p, q})
	require.True(t, m.Holds(distinct))
}

func TestEvaluateMissingAssignmentErrors(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	m := NewRefModel(s)

	_, err := m.RationalValue(x)
	require.Error(t, err)
	require.False(t, m.Holds(s.NewArithEq(x)))
}
