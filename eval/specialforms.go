package eval

import "github.com/jbenes-go/goscheme/value"

// InstallSpecialForms binds every special form as a primitive that
// inspects its raw, unevaluated argument list: quote, if, define,
// define-macro, lambda, set!, let, and, or, begin.
func InstallSpecialForms(h *value.Heap, env *value.Object) {
	def := func(name string, fn value.PrimitiveFn) {
		h.Define(env, h.Intern(name), h.NewPrimitive(name, fn))
	}

	def("quote", quoteForm)
	def("if", ifForm)
	def("define", defineForm)
	def("define-macro", defineMacroForm)
	def("lambda", lambdaForm)
	def("set!", setBangForm)
	def("let", letForm)
	def("and", andForm)
	def("or", orForm)
	def("begin", beginForm)
}

func arity(ev value.Evaluator, name string, args value.Value, n int, atLeast bool) bool {
	argc := value.ConsLen(args)
	if argc < 0 {
		ev.Errorf("%s: improper argument list", name)
		return false
	}
	if atLeast {
		if argc < n {
			ev.Errorf("%s: not enough args: >= %d expected, %d given", name, n, argc)
			return false
		}
		return true
	}
	if argc != n {
		ev.Errorf("%s: wrong number of args: %d expected, %d given", name, n, argc)
		return false
	}
	return true
}

func quoteForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "quote", args, 1, false) {
		return value.Undefined
	}
	return value.Car(args)
}

// ifForm evaluates c; if truthy, eval(t); else begin(e...), where a
// missing else branch is false.
func ifForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "if", args, 2, true) {
		return value.Undefined
	}
	cond := ev.Eval(env, value.Car(args))
	rest := value.Cdr(args)
	thenForm := value.Car(rest)
	elseForms := value.Cdr(rest)
	if cond.Truthy() {
		return ev.Eval(env, thenForm)
	}
	if elseForms.IsNil() {
		return value.False
	}
	return ev.Begin(env, elseForms)
}

// defineForm implements both `(define sym expr)` and
// `(define (name p...) body...)`.
func defineForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	h := ev.Heap()
	if !arity(ev, "define", args, 1, true) {
		return value.Undefined
	}
	target := value.Car(args)
	rest := value.Cdr(args)

	if target.IsSymbol() {
		var val value.Value
		if rest.IsNil() {
			val = value.Undefined
		} else {
			val = ev.Begin(env, rest)
		}
		if h.HadError() {
			return value.Undefined
		}
		if val.IsFunction() || val.IsMacro() {
			val.Obj().SetName(value.SymbolName(target))
		}
		h.Define(env, target, val)
		return value.Void
	}

	if target.IsCons() {
		name := value.Car(target)
		if !name.IsSymbol() {
			ev.Errorf("define: procedure name must be a symbol")
			return value.Undefined
		}
		params := value.Cdr(target)
		fn := h.NewFunction(env, params, rest)
		fn.Obj().SetName(value.SymbolName(name))
		h.Define(env, name, fn)
		return value.Void
	}

	ev.Errorf("define: second argument must be a symbol or a procedure header")
	return value.Undefined
}

func defineMacroForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	h := ev.Heap()
	if !arity(ev, "define-macro", args, 1, true) {
		return value.Undefined
	}
	target := value.Car(args)
	rest := value.Cdr(args)
	if !target.IsCons() {
		ev.Errorf("define-macro: expected (define-macro (name params...) body...)")
		return value.Undefined
	}
	name := value.Car(target)
	if !name.IsSymbol() {
		ev.Errorf("define-macro: macro name must be a symbol")
		return value.Undefined
	}
	params := value.Cdr(target)
	macro := h.NewMacro(env, params, rest)
	macro.Obj().SetName(value.SymbolName(name))
	h.Define(env, name, macro)
	return value.Void
}

func lambdaForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	h := ev.Heap()
	if !arity(ev, "lambda", args, 1, true) {
		return value.Undefined
	}
	params := value.Car(args)
	body := value.Cdr(args)
	if !validParamSpec(params) {
		ev.Errorf("lambda: malformed parameter list")
		return value.Undefined
	}
	return h.NewFunction(env, params, body)
}

func validParamSpec(params value.Value) bool {
	if params.IsNil() || params.IsSymbol() {
		return true
	}
	cur := params
	for cur.IsCons() {
		if !value.Car(cur).IsSymbol() {
			return false
		}
		cur = value.Cdr(cur)
	}
	return cur.IsNil() || cur.IsSymbol()
}

func setBangForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "set!", args, 2, false) {
		return value.Undefined
	}
	sym := value.Car(args)
	if !sym.IsSymbol() {
		ev.Errorf("set!: first argument must be a symbol")
		return value.Undefined
	}
	val := ev.Eval(env, value.Car(value.Cdr(args)))
	if ev.Heap().HadError() {
		return value.Undefined
	}
	if !value.SetBang(env, sym, val) {
		ev.Errorf("set!: unbound symbol: %s", value.SymbolName(sym))
		return value.Undefined
	}
	return value.Void
}

// letForm evaluates each binding's expression in the enclosing
// environment (in order), pushes one frame binding all names at once,
// then runs begin(body).
func letForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	h := ev.Heap()
	if !arity(ev, "let", args, 1, true) {
		return value.Undefined
	}
	bindings := value.Car(args)
	body := value.Cdr(args)

	bindingList, ok := value.ToSlice(bindings)
	if !ok {
		ev.Errorf("let: malformed bindings list")
		return value.Undefined
	}

	names := make([]value.Value, len(bindingList))
	vals := make([]value.Value, len(bindingList))
	for i, b := range bindingList {
		pair, ok := value.ToSlice(b)
		if !ok || len(pair) != 2 || !pair[0].IsSymbol() {
			ev.Errorf("let: each binding must be (symbol expr)")
			return value.Undefined
		}
		names[i] = pair[0]
		vals[i] = ev.Eval(env, pair[1])
		if h.HadError() {
			return value.Undefined
		}
	}

	newEnv := h.NewEnv(env, value.Nil)
	h.Protect(value.FromObject(newEnv))
	for i := range names {
		h.Define(newEnv, names[i], vals[i])
	}
	h.Unprotect()

	// newEnv must stay rooted across the body: installing it as
	// CurrentEnv (mirroring Apply) keeps the frame reachable through any
	// collection triggered by allocation inside the body.
	prevEnv := h.CurrentEnv
	h.CurrentEnv = newEnv
	defer func() { h.CurrentEnv = prevEnv }()
	return ev.Begin(newEnv, body)
}

// andForm short-circuits left to right, returning false at the first
// falsey subform, true for an empty body.
func andForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if args.IsNil() {
		return value.True
	}
	var result value.Value = value.True
	for cur := args; cur.IsCons(); cur = value.Cdr(cur) {
		result = ev.Eval(env, value.Car(cur))
		if ev.Heap().HadError() {
			return value.Undefined
		}
		if !result.Truthy() {
			return value.False
		}
	}
	return value.True
}

// orForm short-circuits left to right, returning true at the first
// truthy subform, false for an empty body.
func orForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if args.IsNil() {
		return value.False
	}
	for cur := args; cur.IsCons(); cur = value.Cdr(cur) {
		result := ev.Eval(env, value.Car(cur))
		if ev.Heap().HadError() {
			return value.Undefined
		}
		if result.Truthy() {
			return value.True
		}
	}
	return value.False
}

func beginForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	return ev.Begin(env, args)
}
