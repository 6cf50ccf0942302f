package eval_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbenes-go/goscheme/eval"
	"github.com/jbenes-go/goscheme/printer"
	"github.com/jbenes-go/goscheme/reader"
	"github.com/jbenes-go/goscheme/value"
)

// newTestContext builds a fresh heap + global environment + evaluator
// wired with both special forms and builtins, matching the wiring
// scheme.Context performs for a real host.
func newTestContext(t *testing.T) (*value.Heap, *value.Object, *eval.Evaluator) {
	t.Helper()
	h := value.NewHeap(value.Config{})
	env := h.NewEnv(nil, value.Nil)
	h.CurrentEnv = env
	eval.InstallSpecialForms(h, env)
	eval.InstallBuiltins(h, env, &bytes.Buffer{})
	return h, env, eval.New(h)
}

func evalSource(t *testing.T, src string) (value.Value, *value.Heap) {
	t.Helper()
	h, env, ev := newTestContext(t)
	r := reader.New(h, src)
	datum := r.ReadDatum()
	require.False(t, h.HadError())
	result := ev.Eval(env, datum)
	return result, h
}

func TestArithmeticVariadicAdd(t *testing.T) {
	got, h := evalSource(t, "(+ 1 2 3)")
	require.False(t, h.HadError())
	require.True(t, got.IsNumber())
	assert.Equal(t, 6.0, got.Num())
}

func TestLambdaApplication(t *testing.T) {
	got, h := evalSource(t, "((lambda (x y) (+ x y)) 3 4)")
	require.False(t, h.HadError())
	assert.Equal(t, 7.0, got.Num())
}

func TestFactorialViaDefineAndRecursion(t *testing.T) {
	h, env, ev := newTestContext(t)
	src := `(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))`
	r := reader.New(h, src)
	ev.Eval(env, r.ReadDatum())
	require.False(t, h.HadError())

	call := reader.New(h, "(fact 5)").ReadDatum()
	got := ev.Eval(env, call)
	require.False(t, h.HadError())
	assert.Equal(t, 120.0, got.Num())
}

func TestDefineMacroUnless(t *testing.T) {
	h, env, ev := newTestContext(t)
	macroSrc := `(define-macro (unless c body) (list 'if c 0 body))`
	ev.Eval(env, reader.New(h, macroSrc).ReadDatum())
	require.False(t, h.HadError())

	got := ev.Eval(env, reader.New(h, `(unless #f 42)`).ReadDatum())
	require.False(t, h.HadError())
	assert.Equal(t, 42.0, got.Num())
}

func TestLetAndWriteProduceDottedPair(t *testing.T) {
	h, env, ev := newTestContext(t)
	got := ev.Eval(env, reader.New(h, `(let ((a 1) (b 2)) (cons a b))`).ReadDatum())
	require.False(t, h.HadError())
	assert.Equal(t, "(1 . 2)", printer.FormatWrite(got))
}

func TestVectorOperations(t *testing.T) {
	h, env, ev := newTestContext(t)
	ev.Eval(env, reader.New(h, `(define v (make-vector 3 0))`).ReadDatum())
	ev.Eval(env, reader.New(h, `(vector-set! v 1 99)`).ReadDatum())
	require.False(t, h.HadError())
	got := ev.Eval(env, reader.New(h, `(vector-ref v 1)`).ReadDatum())
	assert.Equal(t, 99.0, got.Num())
}

func TestAndOrShortCircuit(t *testing.T) {
	got, h := evalSource(t, `(and 1 2 #f 3)`)
	require.False(t, h.HadError())
	assert.True(t, got.IsFalse())

	got, h = evalSource(t, `(or #f #f 7)`)
	require.False(t, h.HadError())
	assert.True(t, got.IsTrue())
}

func TestSetBangMutatesEnclosingBinding(t *testing.T) {
	h, env, ev := newTestContext(t)
	ev.Eval(env, reader.New(h, `(define x 1)`).ReadDatum())
	ev.Eval(env, reader.New(h, `(set! x 2)`).ReadDatum())
	got := ev.Eval(env, reader.New(h, `x`).ReadDatum())
	require.False(t, h.HadError())
	assert.Equal(t, 2.0, got.Num())
}

func TestApplyFlattensTrailingListArg(t *testing.T) {
	got, h := evalSource(t, `(apply + 1 2 (list 3 4))`)
	require.False(t, h.HadError())
	assert.Equal(t, 10.0, got.Num())
}

func TestApplyRejectsMacro(t *testing.T) {
	h, env, ev := newTestContext(t)
	ev.Eval(env, reader.New(h, `(define-macro (m x) x)`).ReadDatum())
	ev.Eval(env, reader.New(h, `(apply m (list 1))`).ReadDatum())
	assert.True(t, h.HadError())
}

func TestEqualAndEqPredicates(t *testing.T) {
	got, h := evalSource(t, `(equal? (list 1 2) (list 1 2))`)
	require.False(t, h.HadError())
	assert.True(t, got.IsTrue())

	got, h = evalSource(t, `(eq? (list 1 2) (list 1 2))`)
	require.False(t, h.HadError())
	assert.True(t, got.IsFalse())
}

func TestUnboundSymbolIsRuntimeError(t *testing.T) {
	_, h := evalSource(t, `nope`)
	assert.True(t, h.HadError())
}

func TestApplyingNonProcedureIsRuntimeError(t *testing.T) {
	_, h := evalSource(t, `(1 2 3)`)
	assert.True(t, h.HadError())
}
