package scheme_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbenes-go/goscheme/scheme"
)

func TestReadEvalWriteRoundTrip(t *testing.T) {
	var out bytes.Buffer
	ctx := scheme.New(scheme.Config{Stdout: &out})
	defer ctx.Close()
	env := ctx.InstallDefaultEnv()

	datum := ctx.Read("(+ 1 2 3)")
	require.False(t, ctx.HadError())
	result := ctx.Eval(env, datum)
	require.False(t, ctx.HadError())

	ctx.Write(&out, result)
	assert.Equal(t, "6", out.String())
}

func TestReadAllRunsMultipleTopLevelForms(t *testing.T) {
	ctx := scheme.New(scheme.Config{})
	defer ctx.Close()
	env := ctx.InstallDefaultEnv()

	forms := ctx.ReadAll("(define x 10) (set! x (+ x 5)) x")
	require.Len(t, forms, 3)
	for _, f := range forms {
		ctx.Eval(env, f)
		require.False(t, ctx.HadError())
	}
}

func TestParseErrorSetsHadError(t *testing.T) {
	ctx := scheme.New(scheme.Config{})
	defer ctx.Close()
	ctx.Read(`"unterminated`)
	assert.True(t, ctx.HadError())
	ctx.ClearError()
	assert.False(t, ctx.HadError())
}
