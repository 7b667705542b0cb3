package mbperr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestFlagStickyFirstError(t *testing.T) {
	f := Flag{}
	require.True(t, f.OK())

	f = f.ErrorInEvalf(errors.New("boom"))
	require.False(t, f.OK())
	require.Equal(t, ErrorInEval, f.Kind)
	require.Equal(t, CodeErrorInEval, f.Code)
	require.False(t, f.RunID.IsNil())

	before := f
	f = f.ErrorInConvertf(errors.New("ignored"))
	require.Equal(t, before, f, "second error must not overwrite the first")
}

func TestFlagNonLinearNamesKind(t *testing.T) {
	f := Flag{}.NonLinearf(stringerFunc("POWER_PRODUCT"))
	require.Equal(t, NonLinear, f.Kind)
	require.Contains(t, f.Error(), "POWER_PRODUCT")
}

type stringerFunc string

func (s stringerFunc) String() string { return string(s) }
