// Package eval implements the tree-walking evaluator, special forms,
// closure application, and macro expansion.
package eval

import "github.com/jbenes-go/goscheme/value"

// Evaluator drives evaluation of values against an environment. It
// implements value.Evaluator so primitives (stored as value.PrimitiveFn)
// can recurse back into Eval/Apply without an import cycle.
type Evaluator struct {
	heap *value.Heap
}

func New(heap *value.Heap) *Evaluator {
	return &Evaluator{heap: heap}
}

func (ev *Evaluator) Heap() *value.Heap { return ev.heap }

func (ev *Evaluator) Errorf(format string, args ...interface{}) {
	ev.heap.RuntimeError(format, args...)
}

// Eval is the evaluator's entry point. Numbers, strings, booleans, nil,
// void, undefined, eof, vectors, and procedures are self-evaluating;
// symbols look themselves up; cons cells are applications.
func (ev *Evaluator) Eval(env *value.Object, v value.Value) value.Value {
	switch {
	case v.IsSymbol():
		result := value.Lookup(env, v)
		if result.IsUndefined() {
			return ev.heap.RuntimeError("unbound symbol: %s", value.SymbolName(v))
		}
		return result
	case v.IsCons():
		return ev.evalApplication(env, v)
	default:
		return v
	}
}

// evalApplication implements macro expansion followed by application:
// macro expansion always happens before the expanded form is evaluated.
func (ev *Evaluator) evalApplication(env *value.Object, form value.Value) value.Value {
	head := value.Car(form)
	args := value.Cdr(form)

	if head.IsSymbol() {
		bound := value.Lookup(env, head)
		if bound.IsMacro() {
			expanded := ev.applyMacro(env, bound, args)
			return ev.Eval(env, expanded)
		}
	}

	fn := ev.Eval(env, head)
	if ev.heap.HadError() {
		return value.Undefined
	}
	if fn.IsPrimitive() {
		return fn.Obj().PrimFn(ev, env, args)
	}
	if fn.IsFunction() {
		return ev.applyFunction(fn, args, env)
	}
	return ev.heap.RuntimeError("cannot apply a non-procedure value")
}

// EvalList evaluates each element of a list left to right into a new
// list.
func (ev *Evaluator) EvalList(env *value.Object, list value.Value) value.Value {
	if list.IsNil() {
		return value.Nil
	}
	if !list.IsCons() {
		return ev.heap.RuntimeError("improper argument list")
	}
	items, ok := value.ToSlice(list)
	if !ok {
		return ev.heap.RuntimeError("improper argument list")
	}
	eargs := make([]value.Value, len(items))
	for i, item := range items {
		eargs[i] = ev.Eval(env, item)
		if ev.heap.HadError() {
			return value.Undefined
		}
	}
	return ev.heap.FromSlice(eargs)
}

// Begin implements begin semantics: evaluate each form in order, return
// the last; empty body yields void.
func (ev *Evaluator) Begin(env *value.Object, body value.Value) value.Value {
	if body.IsNil() {
		return value.Void
	}
	result := value.Void
	for cur := body; cur.IsCons(); cur = value.Cdr(cur) {
		result = ev.Eval(env, value.Car(cur))
		if ev.heap.HadError() {
			return value.Undefined
		}
	}
	return result
}

// applyFunction evaluates args in callerEnv, then pushes a new frame on
// the function's captured environment and runs its body.
func (ev *Evaluator) applyFunction(fn, args value.Value, callerEnv *value.Object) value.Value {
	eargs := ev.EvalList(callerEnv, args)
	if ev.heap.HadError() {
		return value.Undefined
	}
	return ev.Apply(fn, eargs)
}

// Apply is the embeddable apply entry point used both internally and by
// the `apply` primitive. args must already be evaluated.
func (ev *Evaluator) Apply(fn, eargs value.Value) value.Value {
	// eargs is a plain Go parameter, not otherwise reachable from any
	// root: root it in ResultSlot for the duration of the call so that
	// allocation below (PushFrame, quoteEach's cons cells) can't collect
	// it or the values it still references out from under us.
	prevResult := ev.heap.ResultSlot
	ev.heap.ResultSlot = eargs
	defer func() { ev.heap.ResultSlot = prevResult }()

	if fn.IsPrimitive() {
		// Primitives normally receive unevaluated argument forms and
		// decide for themselves whether to evaluate them. eargs here is
		// already evaluated, so each element is wrapped in (quote v):
		// the primitive's own evaluation of that form yields v back
		// unchanged, whatever v's tag is.
		return fn.Obj().PrimFn(ev, ev.heap.CurrentEnv, ev.heap.FromSlice(quoteEach(ev.heap, eargs)))
	}
	if !fn.IsFunction() {
		return ev.heap.RuntimeError("apply: not a procedure")
	}
	env, ok := ev.heap.PushFrame(fn.Obj().Env, fn.Obj().Params, eargs)
	if !ok {
		return value.Undefined
	}
	prevEnv := ev.heap.CurrentEnv
	ev.heap.CurrentEnv = env
	defer func() { ev.heap.CurrentEnv = prevEnv }()
	return ev.Begin(env, fn.Obj().Body)
}

// quoteEach wraps each already-evaluated value in (quote v) so that
// re-entering a primitive's "evaluate my operands" convention through
// Apply yields back the same value rather than re-evaluating it.
func quoteEach(h *value.Heap, list value.Value) []value.Value {
	items, ok := value.ToSlice(list)
	if !ok {
		return nil
	}
	quoteSym := h.Intern("quote")
	out := make([]value.Value, len(items))
	for i, it := range items {
		out[i] = h.NewCons(quoteSym, h.NewCons(it, value.Nil))
	}
	return out
}

// applyMacro invokes a macro's body with its (unevaluated) argument forms
// bound against its parameter spec, exactly like a function application
// except args are never evaluated.
func (ev *Evaluator) applyMacro(env *value.Object, macro, args value.Value) value.Value {
	env2, ok := ev.heap.PushFrame(macro.Obj().Env, macro.Obj().Params, args)
	if !ok {
		return value.Undefined
	}
	// Expanding the macro body allocates (list/cons building the
	// expansion); root env2 as CurrentEnv across Begin so that allocation
	// can't collect the frame holding the macro's parameter bindings.
	prevEnv := ev.heap.CurrentEnv
	ev.heap.CurrentEnv = env2
	defer func() { ev.heap.CurrentEnv = prevEnv }()
	return ev.Begin(env2, macro.Obj().Body)
}
