package elim

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"mbp/internal/term"
)

func TestTryCheapMapProposesEquality(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	y := s.NewUninterpretedConstant("y", term.RealType)
	yPlus1 := s.NewPolynomial(term.NewPolynomial([]term.Monomial{
		{Coeff: big.NewRat(1, 1), Var: y},
		{Coeff: big.NewRat(1, 1), Var: term.NoVar},
	}))
	eq := s.NewComposite(term.Eq, term.BoolType, []term.Occurrence{x, yPlus1})

	e := New(s, term.NewVarSet([]term.Occurrence{x}))
	e.TryCheapMap(eq)
	e.RemoveCycles()

	u, ok := e.GetMap(x)
	require.True(t, ok)
	require.Equal(t, yPlus1, u)
}

func TestTryCheapMapRejectsSelfReference(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	xPlus1 := s.NewPolynomial(term.NewPolynomial([]term.Monomial{
		{Coeff: big.NewRat(1, 1), Var: x},
		{Coeff: big.NewRat(1, 1), Var: term.NoVar},
	}))
	eq := s.NewComposite(term.Eq, term.BoolType, []term.Occurrence{x, xPlus1})

	e := New(s, term.NewVarSet([]term.Occurrence{x}))
	e.TryCheapMap(eq)
	e.RemoveCycles()

	_, ok := e.GetMap(x)
	require.False(t, ok)
}

func TestRemoveCyclesKeepsEarliestMapping(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	y := s.NewUninterpretedConstant("y", term.RealType)

	xEqY := s.NewComposite(term.Eq, term.BoolType, []term.Occurrence{x, y})
	// y = x + 0, which simplifies to y = x at construction time.
	yEqX := s.NewComposite(term.Eq, term.BoolType, []term.Occurrence{y, x})

	e := New(s, term.NewVarSet([]term.Occurrence{x, y}))
	e.TryCheapMap(xEqY)
	e.TryCheapMap(yEqX)
	e.RemoveCycles()

	xu, xok := e.GetMap(x)
	require.True(t, xok, "the first-inserted mapping x -> y must survive")
	require.Equal(t, y, xu)

	_, yok := e.GetMap(y)
	require.False(t, yok, "the later mapping must be dropped to break the cycle")
}

func TestApplyRewritesBareBooleanVarToTrue(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.BoolType)
	e := New(s, term.NewVarSet([]term.Occurrence{x}))
	e.TryCheapMap(x)
	e.RemoveCycles()

	out, err := e.Apply(x)
	require.NoError(t, err)
	require.Equal(t, term.True, out)
}
