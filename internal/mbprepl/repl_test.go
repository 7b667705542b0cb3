package mbprepl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartProjectsEachLine(t *testing.T) {
	in := strings.NewReader("var p : Bool = true; var q : Bool = false; eliminate p; p | q;\n")
	var out strings.Builder

	Start(in, &out)

	require.Contains(t, out.String(), "true")
}

func TestStartReportsParseErrors(t *testing.T) {
	in := strings.NewReader("var x : Real = ;\n")
	var out strings.Builder

	Start(in, &out)

	require.Contains(t, out.String(), "parse error")
}
