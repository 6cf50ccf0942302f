package value

// rootValues returns every value currently exposed to the collector as a
// GC root beyond the temporary-root stack: the current environment and
// the in-flight result slot.
func (h *Heap) rootValues() []Value {
	roots := make([]Value, 0, len(h.tempRoots)+2)
	if h.CurrentEnv != nil {
		roots = append(roots, FromObject(h.CurrentEnv))
	}
	roots = append(roots, h.ResultSlot)
	roots = append(roots, h.tempRoots...)
	return roots
}

// collect runs one full mark-and-sweep cycle. Neither the mark nor the
// sweep phase allocates, so collect is never re-entered mid-collection.
func (h *Heap) collect(extraRoots ...Value) {
	if h.cfg.DisableGC {
		return
	}
	for _, r := range h.rootValues() {
		h.mark(r)
	}
	for _, r := range extraRoots {
		h.mark(r)
	}
	h.sweep()
	h.gcRuns++
	newThreshold := int(float64(h.allocated) * (1 + h.cfg.GrowthFactor))
	if newThreshold < h.cfg.MinThreshold {
		newThreshold = h.cfg.MinThreshold
	}
	h.threshold = newThreshold
}

// Collect runs a collection on demand (the `gc` debug primitive, or a
// host diagnostic command), independent of the allocation-triggered path.
func (h *Heap) Collect() { h.collect() }

func (h *Heap) mark(v Value) {
	if !v.IsObject() || v.obj == nil {
		return
	}
	h.markObject(v.obj)
}

// markObject marks o and recurses through its outgoing references. A
// cons/env chain may be arbitrarily long or cyclic; the mark bit already
// checked here makes recursion terminate on cycles (an already-marked
// node is never re-entered).
func (h *Heap) markObject(o *Object) {
	if o.marked {
		return
	}
	o.marked = true
	switch o.Kind {
	case KindCons:
		h.mark(o.Car)
		h.mark(o.Cdr)
	case KindVector:
		for _, e := range o.Elems {
			h.mark(e)
		}
	case KindEnv:
		h.mark(o.Variables)
		if o.Parent != nil {
			h.markObject(o.Parent)
		}
	case KindFunction, KindMacro:
		if o.Env != nil {
			h.markObject(o.Env)
		}
		h.mark(o.Params)
		h.mark(o.Body)
	case KindPrimitive, KindString, KindSymbol:
		// no children beyond the header; symbols and strings are leaves.
	}
}

// sizeOf computes an object's footprint: base header size plus any
// flexible trailing storage.
func sizeOf(o *Object) int {
	switch o.Kind {
	case KindCons:
		return sizeCons
	case KindString:
		return sizeStringHdr + len(o.Str)
	case KindSymbol:
		return sizeSymbolHdr + len(o.Str)
	case KindPrimitive:
		return sizePrimitive
	case KindFunction, KindMacro:
		return sizeFunction
	case KindVector:
		return sizeVectorHdr + len(o.Elems)*sizeValue
	case KindEnv:
		return sizeEnv
	default:
		return 0
	}
}

// sweep walks the intrusive heap list with a pointer-to-pointer-style
// cursor: unmarked objects are unlinked and destroyed, marked objects
// have their bit cleared and their size folded into the post-sweep
// allocated total.
func (h *Heap) sweep() {
	var liveBytes int
	cursor := &h.head
	for *cursor != nil {
		o := *cursor
		if !o.marked {
			*cursor = o.next
			if o.Kind == KindSymbol {
				h.unintern(o)
			}
			h.objCount--
			continue
		}
		o.marked = false
		liveBytes += sizeOf(o)
		cursor = &o.next
	}
	h.allocated = liveBytes
}
