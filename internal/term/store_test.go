package term

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOccurrencePolarityRoundTrip(t *testing.T) {
	s := NewStore()
	x := s.NewUninterpretedConstant("x", RealType)
	require.False(t, x.Negated())
	nx := s.Complement(x)
	require.True(t, nx.Negated())
	require.Equal(t, x, nx.Positive())
	require.Equal(t, x, s.Complement(nx))
}

func TestHashConsingDeduplicates(t *testing.T) {
	s := NewStore()
	a := s.NewUninterpretedConstant("x", RealType)
	b := s.NewUninterpretedConstant("x", RealType)
	require.Equal(t, a, b, "interning the same name/type twice must return the same occurrence")

	c1 := s.NewArithConstant(big.NewRat(1, 2))
	c2 := s.NewArithConstant(big.NewRat(2, 4))
	require.Equal(t, c1, c2, "equal rationals must hash-cons to one node")
}

func TestPolynomialCanonicalizesAndDegenerates(t *testing.T) {
	s := NewStore()
	x := s.NewUninterpretedConstant("x", RealType)
	y := s.NewUninterpretedConstant("y", RealType)

	// x + 0*y + 1 normalizes: the y term drops, constant leads.
	p := s.NewPolynomial(NewPolynomial([]Monomial{
		{Coeff: big.NewRat(1, 1), Var: x},
		{Coeff: big.NewRat(0, 1), Var: y},
		{Coeff: big.NewRat(1, 1), Var: NoVar},
	}))
	mons, ok := s.PolyMonomials(p)
	require.True(t, ok)
	require.Len(t, mons, 2)
	require.Equal(t, NoVar, mons[0].Var)
	require.Equal(t, x, mons[1].Var)

	// A bare unit-coefficient variable degenerates to the variable itself.
	bare := s.NewPolynomial(NewPolynomial([]Monomial{{Coeff: big.NewRat(1, 1), Var: x}}))
	require.Equal(t, x, bare)
	require.False(t, s.Kind(bare) == ArithmeticPolynomial)
}

func TestArithAtomAccessors(t *testing.T) {
	s := NewStore()
	x := s.NewUninterpretedConstant("x", RealType)
	eq := s.NewArithEq(x)
	arg, ok := s.ArithAtomArg(eq)
	require.True(t, ok)
	require.Equal(t, x, arg)
	require.True(t, s.IsArithmeticLiteral(eq))

	y := s.NewUninterpretedConstant("y", RealType)
	bineq := s.NewArithBinEq(x, y)
	a, b, ok := s.ArithBineqArgs(bineq)
	require.True(t, ok)
	require.Equal(t, x, a)
	require.Equal(t, y, b)
}

func TestStringRendersNegation(t *testing.T) {
	s := NewStore()
	x := s.NewUninterpretedConstant("x", BoolType)
	require.Equal(t, "x", s.String(x))
	require.Equal(t, "not(x)", s.String(s.Complement(x)))
}
