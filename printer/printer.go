// Package printer renders value.Value graphs back to text: write's
// machine-readable form and display's human-readable form.
package printer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jbenes-go/goscheme/value"
)

// Write renders v in machine-readable form: strings are quoted and
// escaped, symbols and numbers render as in Display.
func Write(w io.Writer, v value.Value) {
	io.WriteString(w, Format(v, true))
}

// Display renders v in human-readable form: strings print without
// quotes or escaping.
func Display(w io.Writer, v value.Value) {
	io.WriteString(w, Format(v, false))
}

// FormatWrite/FormatDisplay are the string-returning equivalents of
// Write/Display.
func FormatWrite(v value.Value) string   { return Format(v, true) }
func FormatDisplay(v value.Value) string { return Format(v, false) }

func Format(v value.Value, write bool) string {
	var b strings.Builder
	format(&b, v, write)
	return b.String()
}

func format(b *strings.Builder, v value.Value, write bool) {
	switch {
	case v.IsNil():
		b.WriteString("()")
	case v.IsTrue():
		b.WriteString("#t")
	case v.IsFalse():
		b.WriteString("#f")
	case v.IsUndefined():
		b.WriteString("#<undefined>")
	case v.IsVoid():
		b.WriteString("#<void>")
	case v.IsEOF():
		b.WriteString("#<eof>")
	case v.IsNumber():
		b.WriteString(formatNumber(v.Num()))
	case v.IsCons():
		formatCons(b, v, write)
	case v.IsString():
		formatString(b, value.StringText(v), write)
	case v.IsSymbol():
		b.WriteString(value.SymbolName(v))
	case v.IsVector():
		formatVector(b, v, write)
	case v.IsPrimitive():
		fmt.Fprintf(b, "#<primitive %s>", v.Obj().PrimName)
	case v.IsFunction():
		fmt.Fprintf(b, "#<function %s %s>", procName(v.Obj().Name), formatParams(v.Obj().Params))
	case v.IsMacro():
		fmt.Fprintf(b, "#<macro %s>", procName(v.Obj().Name))
	case v.IsEnv():
		b.WriteString("#<environment>")
	default:
		b.WriteString("#<unknown>")
	}
}

func procName(name string) string {
	if name == "" {
		return "anonymous"
	}
	return name
}

// formatNumber produces the shortest round-tripping decimal via strconv,
// with the three non-finite cases remapped to Scheme's `+nan.0` /
// `+inf.0` / `-inf.0` spellings.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "+nan.0"
	case math.IsInf(f, 1):
		return "+inf.0"
	case math.IsInf(f, -1):
		return "-inf.0"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func formatString(b *strings.Builder, s string, write bool) {
	if !write {
		b.WriteString(s)
		return
	}
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
}

// formatCons guards against circular lists before recursing; a cyclic
// cons chain renders as a single opaque token instead of looping
// forever.
func formatCons(b *strings.Builder, v value.Value, write bool) {
	if value.HasCycle(v) {
		b.WriteString("#<circular list>")
		return
	}
	b.WriteByte('(')
	cur := v
	first := true
	for cur.IsCons() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		format(b, value.Car(cur), write)
		cur = value.Cdr(cur)
	}
	if !cur.IsNil() {
		b.WriteString(" . ")
		format(b, cur, write)
	}
	b.WriteByte(')')
}

func formatVector(b *strings.Builder, v value.Value, write bool) {
	b.WriteString("#(")
	elems := value.VectorElems(v)
	for i, e := range elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		format(b, e, write)
	}
	b.WriteByte(')')
}

// formatParams renders a closure's parameter spec the way its source
// would have spelled it: (a b c), a dotted (a b . rest), or a bare rest
// symbol.
func formatParams(params value.Value) string {
	if params.IsNil() {
		return "()"
	}
	if params.IsSymbol() {
		return value.SymbolName(params)
	}
	var b strings.Builder
	b.WriteByte('(')
	cur := params
	first := true
	for cur.IsCons() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(value.SymbolName(value.Car(cur)))
		cur = value.Cdr(cur)
	}
	if !cur.IsNil() {
		b.WriteString(" . ")
		b.WriteString(value.SymbolName(cur))
	}
	b.WriteByte(')')
	return b.String()
}
