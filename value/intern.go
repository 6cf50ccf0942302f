package value

// Intern canonicalizes name into the one symbol object sharing that
// spelling, scanning the intern chain threaded through Object.SymNext.
func (h *Heap) Intern(name string) Value {
	for s := h.symbols; s != nil; s = s.SymNext {
		if s.Str == name {
			return FromObject(s)
		}
	}
	if !h.reallocate(sizeSymbolHdr + len(name)) {
		return Undefined
	}
	o := &Object{Kind: KindSymbol, Str: name, StrHash: fnv1a(name)}
	o.SymNext = h.symbols
	h.symbols = o
	h.link(o)
	return FromObject(o)
}

// unintern splices a doomed symbol out of the intern chain during sweep.
func (h *Heap) unintern(victim *Object) {
	if h.symbols == victim {
		h.symbols = victim.SymNext
		return
	}
	for s := h.symbols; s != nil; s = s.SymNext {
		if s.SymNext == victim {
			s.SymNext = victim.SymNext
			return
		}
	}
}
