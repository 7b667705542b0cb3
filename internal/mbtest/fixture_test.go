package mbtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mbp/internal/projector"
	"mbp/internal/term"
)

// TestFixtureRoundTripsThroughProjector exercises the fixture builders
// against a full ProjectLiterals call: spec.md §8 scenario 2, built
// with mbtest instead of bare term.Store calls.
func TestFixtureRoundTripsThroughProjector(t *testing.T) {
	f := New()
	x := f.Real("x", Rat(2, 1))
	a := f.Real("a", Rat(1, 1))
	b := f.Real("b", Rat(3, 1))

	xGeA := f.Store.NewArithGe(f.Poly(
		term.Monomial{Coeff: Rat(1, 1), Var: x},
		term.Monomial{Coeff: Rat(-1, 1), Var: a},
	))
	bGeX := f.Store.NewArithGe(f.Poly(
		term.Monomial{Coeff: Rat(1, 1), Var: b},
		term.Monomial{Coeff: Rat(-1, 1), Var: x},
	))
	bGeA := f.Store.NewArithGe(f.Poly(
		term.Monomial{Coeff: Rat(1, 1), Var: b},
		term.Monomial{Coeff: Rat(-1, 1), Var: a},
	))

	out, flag, err := projector.ProjectLiterals(f.Model, f.Store, []term.Occurrence{xGeA, bGeX, bGeA}, []term.Occurrence{x}, nil)
	require.NoError(t, err)
	require.True(t, flag.OK(), flag.Error())
	require.Contains(t, out, bGeA)
	for _, lit := range out {
		require.NotContains(t, f.Store.String(lit), "x")
	}
}

func TestFixtureBoolHelper(t *testing.T) {
	f := New()
	p := f.Bool("p", true)
	require.True(t, f.Model.Holds(p))
	require.False(t, f.Model.Holds(f.Store.Complement(p)))
}
