package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbenes-go/goscheme/reader"
	"github.com/jbenes-go/goscheme/value"
)

func TestDefineProcedureShorthand(t *testing.T) {
	h, env, ev := newTestContext(t)
	ev.Eval(env, reader.New(h, `(define (square x) (* x x))`).ReadDatum())
	require.False(t, h.HadError())
	got := ev.Eval(env, reader.New(h, `(square 6)`).ReadDatum())
	assert.Equal(t, 36.0, got.Num())
}

func TestIfWithoutElseIsFalseWhenConditionFails(t *testing.T) {
	got, h := evalSource(t, `(if #f 1)`)
	require.False(t, h.HadError())
	assert.True(t, got.IsFalse())
}

func TestBeginReturnsLastForm(t *testing.T) {
	got, h := evalSource(t, `(begin 1 2 3)`)
	require.False(t, h.HadError())
	assert.Equal(t, 3.0, got.Num())
}

func TestQuoteSuppressesEvaluation(t *testing.T) {
	got, h := evalSource(t, `(quote (+ 1 2))`)
	require.False(t, h.HadError())
	require.True(t, got.IsCons())
	assert.Equal(t, "+", value.SymbolName(value.Car(got)))
}

func TestLambdaClosesOverDefiningEnvironment(t *testing.T) {
	h, env, ev := newTestContext(t)
	ev.Eval(env, reader.New(h, `(define (make-adder n) (lambda (x) (+ x n)))`).ReadDatum())
	ev.Eval(env, reader.New(h, `(define add5 (make-adder 5))`).ReadDatum())
	require.False(t, h.HadError())
	got := ev.Eval(env, reader.New(h, `(add5 10)`).ReadDatum())
	assert.Equal(t, 15.0, got.Num())
}

func TestWrongArityIsRuntimeError(t *testing.T) {
	h, env, ev := newTestContext(t)
	ev.Eval(env, reader.New(h, `(define (one-arg x) x)`).ReadDatum())
	ev.Eval(env, reader.New(h, `(one-arg 1 2)`).ReadDatum())
	assert.True(t, h.HadError())
}
