package value

// Define inserts (sym . val) at the front of env's binding list, shadowing
// any existing binding of the same symbol in this frame.
func (h *Heap) Define(env *Object, sym, val Value) {
	pair := h.NewCons(sym, val)
	h.Protect(pair)
	env.Variables = h.NewCons(pair, env.Variables)
	h.Unprotect()
}

// Lookup walks env outward, returning the first binding's value by
// identity comparison of interned symbols; Undefined if the chain is
// exhausted.
func Lookup(env *Object, sym Value) Value {
	for e := env; e != nil; e = e.Parent {
		for v := e.Variables; v.IsCons(); v = v.obj.Cdr {
			pair := v.obj.Car
			if !pair.IsCons() {
				continue
			}
			if Eq(pair.obj.Car, sym) {
				return pair.obj.Cdr
			}
		}
	}
	return Undefined
}

// SetBang mutates the first matching binding's cdr in place, walking
// outward exactly like Lookup. Reports whether a binding was found.
func SetBang(env *Object, sym, val Value) bool {
	for e := env; e != nil; e = e.Parent {
		for v := e.Variables; v.IsCons(); v = v.obj.Cdr {
			pair := v.obj.Car
			if !pair.IsCons() {
				continue
			}
			if Eq(pair.obj.Car, sym) {
				pair.obj.Cdr = val
				return true
			}
		}
	}
	return false
}

// PushFrame builds a new child frame of parent, binding params against
// args per the usual parameter-spec matching rules (fixed arity, a single
// rest symbol, or a dotted tail). ok is false on arity mismatch or a
// malformed parameter spec, in which case a runtime error has already
// been reported.
func (h *Heap) PushFrame(parent *Object, params, args Value) (env *Object, ok bool) {
	env = h.NewEnv(parent, Nil)
	if env == nil {
		return nil, false
	}
	h.Protect(FromObject(env))
	defer h.Unprotect()

	switch {
	case params.IsNil():
		if !args.IsNil() {
			h.RuntimeError("too many arguments: expected 0, got %d", ConsLen(args))
			return env, false
		}
		return env, true
	case params.IsSymbol():
		h.Define(env, params, args)
		return env, true
	default:
		return h.bindList(env, params, args)
	}
}

// bindList handles the proper-list and dotted-list parameter-spec shapes.
func (h *Heap) bindList(env *Object, params, args Value) (*Object, bool) {
	p, a := params, args
	for p.IsCons() {
		if !a.IsCons() {
			h.RuntimeError("too few arguments: expected %d, got %d", ConsLen(params), ConsLen(args))
			return env, false
		}
		sym := p.obj.Car
		if !sym.IsSymbol() {
			h.RuntimeError("parameter list must contain only symbols")
			return env, false
		}
		h.Define(env, sym, a.obj.Car)
		p = p.obj.Cdr
		a = a.obj.Cdr
	}
	if p.IsSymbol() {
		// dotted tail: remaining args bind as a list to p.
		h.Define(env, p, a)
		return env, true
	}
	if !p.IsNil() {
		h.RuntimeError("malformed parameter list")
		return env, false
	}
	if !a.IsNil() {
		h.RuntimeError("too many arguments: expected %d, got %d", ConsLen(params), ConsLen(args))
		return env, false
	}
	return env, true
}
