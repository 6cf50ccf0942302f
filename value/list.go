package value

// FromSlice builds a proper list from vs, right to left, protecting the
// growing tail the way any multi-allocation construction must.
func (h *Heap) FromSlice(vs []Value) Value {
	result := Nil
	h.Protect(result)
	defer h.Unprotect()
	for i := len(vs) - 1; i >= 0; i-- {
		result = h.NewCons(vs[i], result)
		h.tempRoots[len(h.tempRoots)-1] = result
	}
	return result
}

// ToSlice flattens a proper list into a Go slice. ok is false if v is not
// a proper list (a dotted tail or a cycle).
func ToSlice(v Value) (out []Value, ok bool) {
	n := ConsLen(v)
	if n < 0 {
		return nil, false
	}
	out = make([]Value, 0, n)
	for cur := v; cur.IsCons(); cur = cur.obj.Cdr {
		out = append(out, cur.obj.Car)
	}
	return out, true
}

// Car/Cdr are the raw accessors; callers are expected to have already
// checked IsCons.
func Car(v Value) Value { return v.obj.Car }
func Cdr(v Value) Value { return v.obj.Cdr }

// SymbolName returns a symbol's canonical spelling.
func SymbolName(v Value) string { return v.obj.Str }

// StringText returns a string object's bytes.
func StringText(v Value) string { return v.obj.Str }

// VectorElems exposes a vector's backing slice directly for in-place
// set!-style mutation.
func VectorElems(v Value) []Value { return v.obj.Elems }
