package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbenes-go/goscheme/value"
)

func TestLookupWalksParentChain(t *testing.T) {
	h := value.NewHeap(value.Config{})
	outer := h.NewEnv(nil, value.Nil)
	x := h.Intern("x")
	h.Define(outer, x, value.Number(1))

	inner := h.NewEnv(outer, value.Nil)
	got := value.Lookup(inner, x)
	require.True(t, got.IsNumber())
	assert.Equal(t, 1.0, got.Num())
}

func TestDefineShadowsInInnerFrame(t *testing.T) {
	h := value.NewHeap(value.Config{})
	outer := h.NewEnv(nil, value.Nil)
	x := h.Intern("x")
	h.Define(outer, x, value.Number(1))

	inner := h.NewEnv(outer, value.Nil)
	h.Define(inner, x, value.Number(2))

	assert.Equal(t, 2.0, value.Lookup(inner, x).Num())
	assert.Equal(t, 1.0, value.Lookup(outer, x).Num())
}

func TestSetBangMutatesNearestBinding(t *testing.T) {
	h := value.NewHeap(value.Config{})
	outer := h.NewEnv(nil, value.Nil)
	x := h.Intern("x")
	h.Define(outer, x, value.Number(1))

	inner := h.NewEnv(outer, value.Nil)
	ok := value.SetBang(inner, x, value.Number(99))
	require.True(t, ok)
	assert.Equal(t, 99.0, value.Lookup(outer, x).Num())
}

func TestSetBangUnboundReportsFailure(t *testing.T) {
	h := value.NewHeap(value.Config{})
	env := h.NewEnv(nil, value.Nil)
	ok := value.SetBang(env, h.Intern("nope"), value.Number(1))
	assert.False(t, ok)
}

func TestPushFrameParameterShapes(t *testing.T) {
	h := value.NewHeap(value.Config{})
	global := h.NewEnv(nil, value.Nil)
	a, b, rest := h.Intern("a"), h.Intern("b"), h.Intern("rest")

	t.Run("proper list", func(t *testing.T) {
		params := h.FromSlice([]value.Value{a, b})
		args := h.FromSlice([]value.Value{value.Number(1), value.Number(2)})
		env, ok := h.PushFrame(global, params, args)
		require.True(t, ok)
		assert.Equal(t, 1.0, value.Lookup(env, a).Num())
		assert.Equal(t, 2.0, value.Lookup(env, b).Num())
	})

	t.Run("dotted list gathers a rest arg", func(t *testing.T) {
		params := h.NewCons(a, rest)
		args := h.FromSlice([]value.Value{value.Number(1), value.Number(2), value.Number(3)})
		env, ok := h.PushFrame(global, params, args)
		require.True(t, ok)
		assert.Equal(t, 1.0, value.Lookup(env, a).Num())
		restVal := value.Lookup(env, rest)
		items, ok := value.ToSlice(restVal)
		require.True(t, ok)
		assert.Len(t, items, 2)
	})

	t.Run("bare symbol gathers all args", func(t *testing.T) {
		args := h.FromSlice([]value.Value{value.Number(1), value.Number(2)})
		env, ok := h.PushFrame(global, rest, args)
		require.True(t, ok)
		items, ok := value.ToSlice(value.Lookup(env, rest))
		require.True(t, ok)
		assert.Len(t, items, 2)
	})

	t.Run("arity mismatch fails", func(t *testing.T) {
		params := h.FromSlice([]value.Value{a, b})
		args := h.FromSlice([]value.Value{value.Number(1)})
		_, ok := h.PushFrame(global, params, args)
		assert.False(t, ok)
		assert.True(t, h.HadError())
		h.ClearError()
	})
}
