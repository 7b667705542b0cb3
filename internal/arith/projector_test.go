package arith

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"mbp/internal/term"
)

func TestEliminateCombinesLowerAndUpperBound(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	a := s.NewUninterpretedConstant("a", term.RealType)
	b := s.NewUninterpretedConstant("b", term.RealType)

	xMinusA := s.NewPolynomial(term.NewPolynomial([]term.Monomial{
		{Coeff: big.NewRat(1, 1), Var: x},
		{Coeff: big.NewRat(-1, 1), Var: a},
	}))
	bMinusX := s.NewPolynomial(term.NewPolynomial([]term.Monomial{
		{Coeff: big.NewRat(1, 1), Var: b},
		{Coeff: big.NewRat(-1, 1), Var: x},
	}))
	bMinusA := s.NewPolynomial(term.NewPolynomial([]term.Monomial{
		{Coeff: big.NewRat(1, 1), Var: b},
		{Coeff: big.NewRat(-1, 1), Var: a},
	}))

	xGeA := s.NewArithGe(xMinusA)   // x >= a
	bGeX := s.NewArithGe(bMinusX)   // x <= b
	bGeA := s.NewArithGe(bMinusA)   // a <= b, survives untouched

	p := New(s)
	p.AddVar(x, true, big.NewRat(2, 1))
	p.AddVar(a, false, big.NewRat(1, 1))
	p.AddVar(b, false, big.NewRat(3, 1))
	p.CloseVarSet()

	require.NoError(t, p.AddConstraint(xGeA))
	require.NoError(t, p.AddConstraint(bGeX))
	require.NoError(t, p.AddConstraint(bGeA))

	require.NoError(t, p.Eliminate())
	out := p.GetFormulaVector(nil)

	require.Len(t, out, 1)
	require.Contains(t, out, bGeA)
}

func TestEliminateSubstitutesExactEquality(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	y := s.NewUninterpretedConstant("y", term.RealType)

	xMinusYMinus1 := s.NewPolynomial(term.NewPolynomial([]term.Monomial{
		{Coeff: big.NewRat(1, 1), Var: x},
		{Coeff: big.NewRat(-1, 1), Var: y},
		{Coeff: big.NewRat(-1, 1), Var: term.NoVar},
	}))
	xEqYPlus1 := s.NewArithEq(xMinusYMinus1) // x - y - 1 = 0, i.e. x = y + 1

	xPoly := s.NewPolynomial(term.NewPolynomial([]term.Monomial{{Coeff: big.NewRat(1, 1), Var: x}}))
	xGeZero := s.NewArithGe(xPoly) // x >= 0

	p := New(s)
	p.AddVar(x, true, big.NewRat(3, 1))
	p.AddVar(y, false, big.NewRat(2, 1))
	p.CloseVarSet()

	require.NoError(t, p.AddConstraint(xEqYPlus1))
	require.NoError(t, p.AddConstraint(xGeZero))

	require.NoError(t, p.Eliminate())
	out := p.GetFormulaVector(nil)

	require.Len(t, out, 1)
	require.Equal(t, "1 + y >= 0", s.String(out[0]))
}

func TestAddConstraintRejectsNonLinearSubterm(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	nonArith := s.NewUninterpretedConstant("p", term.BoolType)

	xGeNonArith := s.NewArithGe(nonArith)

	p := New(s)
	p.AddVar(x, true, big.NewRat(0, 1))
	p.CloseVarSet()

	err := p.AddConstraint(xGeNonArith)
	require.Error(t, err)
}

func TestAddConstraintRejectsDisequalityOnEliminatedVar(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	xPoly := s.NewPolynomial(term.NewPolynomial([]term.Monomial{{Coeff: big.NewRat(1, 1), Var: x}}))
	xNeqZero := s.Complement(s.NewArithEq(xPoly))

	p := New(s)
	p.AddVar(x, true, big.NewRat(1, 1))
	p.CloseVarSet()

	err := p.AddConstraint(xNeqZero)
	require.Error(t, err)
}

func TestEliminateDropsOneSidedBound(t *testing.T) {
	s := term.NewStore()
	x := s.NewUninterpretedConstant("x", term.RealType)
	a := s.NewUninterpretedConstant("a", term.RealType)

	xMinusA := s.NewPolynomial(term.NewPolynomial([]term.Monomial{
		{Coeff: big.NewRat(1, 1), Var: x},
		{Coeff: big.NewRat(-1, 1), Var: a},
	}))
	xGeA := s.NewArithGe(xMinusA)

	p := New(s)
	p.AddVar(x, true, big.NewRat(5, 1))
	p.AddVar(a, false, big.NewRat(1, 1))
	p.CloseVarSet()

	require.NoError(t, p.AddConstraint(xGeA))
	require.NoError(t, p.Eliminate())

	out := p.GetFormulaVector(nil)
	require.Empty(t, out)
}
