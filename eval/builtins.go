package eval

import (
	"fmt"
	"io"

	"github.com/jbenes-go/goscheme/printer"
	"github.com/jbenes-go/goscheme/value"
)

// InstallBuiltins populates env with the default environment's numeric,
// list, string, vector, predicate, equality, and I/O primitives.
func InstallBuiltins(h *value.Heap, env *value.Object, out io.Writer) {
	def := func(name string, fn value.PrimitiveFn) {
		h.Define(env, h.Intern(name), h.NewPrimitive(name, fn))
	}

	def("+", arithAdd)
	def("-", arithSub)
	def("*", arithMul)
	def("/", arithDiv)
	def(">", cmpForm(func(a, b float64) bool { return a > b }))
	def("<", cmpForm(func(a, b float64) bool { return a < b }))
	def(">=", cmpForm(func(a, b float64) bool { return a >= b }))
	def("<=", cmpForm(func(a, b float64) bool { return a <= b }))
	def("=", numEqForm)

	def("eq?", eqForm)
	def("equal?", equalForm)

	def("cons", consForm)
	def("car", carForm)
	def("cdr", cdrForm)
	def("pair?", pairPredForm)
	def("null?", nullPredForm)
	def("list", listForm)
	def("length", lengthForm)
	def("apply", applyForm)
	def("eval", evalForm)
	def("gensym", gensymForm)

	def("vector", vectorForm)
	def("make-vector", makeVectorForm)
	def("vector-ref", vectorRefForm)
	def("vector-set!", vectorSetForm)
	def("vector-length", vectorLengthForm)
	def("vector?", typePredForm(func(v value.Value) bool { return v.IsVector() }))

	def("string?", typePredForm(func(v value.Value) bool { return v.IsString() }))
	def("symbol?", typePredForm(func(v value.Value) bool { return v.IsSymbol() }))
	def("number?", typePredForm(func(v value.Value) bool { return v.IsNumber() }))
	def("procedure?", typePredForm(func(v value.Value) bool { return v.IsProcedure() }))
	def("boolean?", typePredForm(func(v value.Value) bool { return v.IsTrue() || v.IsFalse() }))
	def("not", notForm)

	def("write", writerForm(out, true))
	def("display", writerForm(out, false))
	def("newline", newlineForm(out))
	def("gc", gcForm)
}

func evalArgs(ev value.Evaluator, env *value.Object, args value.Value) ([]value.Value, bool) {
	eargs := ev.EvalList(env, args)
	if ev.Heap().HadError() {
		return nil, false
	}
	items, ok := value.ToSlice(eargs)
	if !ok {
		ev.Errorf("improper argument list")
		return nil, false
	}
	return items, true
}

func requireNumbers(ev value.Evaluator, name string, vs []value.Value) ([]float64, bool) {
	out := make([]float64, len(vs))
	for i, v := range vs {
		if !v.IsNumber() {
			ev.Errorf("%s: argument %d is not a number", name, i+1)
			return nil, false
		}
		out[i] = v.Num()
	}
	return out, true
}

func arithAdd(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	nums, ok := requireNumbers(ev, "+", items)
	if !ok {
		return value.Undefined
	}
	result := 0.0
	for _, n := range nums {
		result += n
	}
	return value.Number(result)
}

func arithMul(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	nums, ok := requireNumbers(ev, "*", items)
	if !ok {
		return value.Undefined
	}
	result := 1.0
	for _, n := range nums {
		result *= n
	}
	return value.Number(result)
}

func arithSub(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "-", args, 1, true) {
		return value.Undefined
	}
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	nums, ok := requireNumbers(ev, "-", items)
	if !ok {
		return value.Undefined
	}
	if len(nums) == 1 {
		return value.Number(-nums[0])
	}
	result := nums[0]
	for _, n := range nums[1:] {
		result -= n
	}
	return value.Number(result)
}

func arithDiv(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "/", args, 1, true) {
		return value.Undefined
	}
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	nums, ok := requireNumbers(ev, "/", items)
	if !ok {
		return value.Undefined
	}
	if len(nums) == 1 {
		return value.Number(1 / nums[0])
	}
	result := nums[0]
	for _, n := range nums[1:] {
		result /= n
	}
	return value.Number(result)
}

// cmpForm builds a variadic relational primitive: true for zero or one
// argument, otherwise the pairwise relation applied across adjacent
// arguments.
func cmpForm(rel func(a, b float64) bool) value.PrimitiveFn {
	return func(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
		items, ok := evalArgs(ev, env, args)
		if !ok {
			return value.Undefined
		}
		nums, ok := requireNumbers(ev, "comparison", items)
		if !ok {
			return value.Undefined
		}
		for i := 1; i < len(nums); i++ {
			if !rel(nums[i-1], nums[i]) {
				return value.False
			}
		}
		return value.True
	}
}

func numEqForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	nums, ok := requireNumbers(ev, "=", items)
	if !ok {
		return value.Undefined
	}
	for i := 1; i < len(nums); i++ {
		if nums[i-1] != nums[i] {
			return value.False
		}
	}
	return value.True
}

func eqForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	for i := 1; i < len(items); i++ {
		if !value.Eq(items[i-1], items[i]) {
			return value.False
		}
	}
	return value.True
}

func equalForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	for i := 1; i < len(items); i++ {
		if !value.Equal(items[i-1], items[i]) {
			return value.False
		}
	}
	return value.True
}

func consForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "cons", args, 2, false) {
		return value.Undefined
	}
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	return ev.Heap().NewCons(items[0], items[1])
}

func carForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "car", args, 1, false) {
		return value.Undefined
	}
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	if !items[0].IsCons() {
		ev.Errorf("car: argument is not a pair")
		return value.Undefined
	}
	return value.Car(items[0])
}

func cdrForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "cdr", args, 1, false) {
		return value.Undefined
	}
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	if !items[0].IsCons() {
		ev.Errorf("cdr: argument is not a pair")
		return value.Undefined
	}
	return value.Cdr(items[0])
}

func pairPredForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	if len(items) != 1 {
		ev.Errorf("pair?: expects 1 argument")
		return value.Undefined
	}
	return value.Bool(items[0].IsCons())
}

func nullPredForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	if len(items) != 1 {
		ev.Errorf("null?: expects 1 argument")
		return value.Undefined
	}
	return value.Bool(items[0].IsNil())
}

func listForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	return ev.EvalList(env, args)
}

func lengthForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "length", args, 1, false) {
		return value.Undefined
	}
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	n := value.ConsLen(items[0])
	if n < 0 {
		ev.Errorf("length: argument is not a proper list")
		return value.Undefined
	}
	return value.Number(float64(n))
}

// applyForm evaluates every argument, flattens the final (list) argument
// onto the preceding ones, and applies only to a Function or Primitive.
func applyForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "apply", args, 2, true) {
		return value.Undefined
	}
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	proc := items[0]
	if proc.IsMacro() {
		ev.Errorf("apply: cannot apply a macro")
		return value.Undefined
	}
	if !proc.IsProcedure() {
		ev.Errorf("apply: first argument is not a procedure")
		return value.Undefined
	}
	fixed := items[1 : len(items)-1]
	tail := items[len(items)-1]
	tailItems, ok := value.ToSlice(tail)
	if !ok {
		ev.Errorf("apply: last argument must be a proper list")
		return value.Undefined
	}
	all := append(append([]value.Value{}, fixed...), tailItems...)
	return ev.Apply(proc, ev.Heap().FromSlice(all))
}

// evalForm evaluates its first argument as a datum; an optional second
// argument supplies the environment to evaluate in.
func evalForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "eval", args, 1, true) {
		return value.Undefined
	}
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	targetEnv := env
	if len(items) >= 2 {
		if !items[1].IsEnv() {
			ev.Errorf("eval: second argument must be an environment")
			return value.Undefined
		}
		targetEnv = items[1].Obj()
	}
	return ev.Eval(targetEnv, items[0])
}

func gensymForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	return ev.Heap().Gensym()
}

func vectorForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	vec := ev.Heap().NewVector(len(items), value.Nil)
	copy(value.VectorElems(vec), items)
	return vec
}

func makeVectorForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "make-vector", args, 1, true) {
		return value.Undefined
	}
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	if !items[0].IsNumber() {
		ev.Errorf("make-vector: first argument must be a number")
		return value.Undefined
	}
	fill := value.Bool(false)
	if len(items) >= 2 {
		fill = items[1]
	}
	return ev.Heap().NewVector(int(items[0].Num()), fill)
}

func vectorRefForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "vector-ref", args, 2, false) {
		return value.Undefined
	}
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	if !items[0].IsVector() || !items[1].IsNumber() {
		ev.Errorf("vector-ref: expects (vector number)")
		return value.Undefined
	}
	elems := value.VectorElems(items[0])
	idx := int(items[1].Num())
	if idx < 0 || idx >= len(elems) {
		ev.Errorf("vector-ref: index %d out of bounds (length %d)", idx, len(elems))
		return value.Undefined
	}
	return elems[idx]
}

func vectorSetForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "vector-set!", args, 3, false) {
		return value.Undefined
	}
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	if !items[0].IsVector() || !items[1].IsNumber() {
		ev.Errorf("vector-set!: expects (vector number value)")
		return value.Undefined
	}
	elems := value.VectorElems(items[0])
	idx := int(items[1].Num())
	if idx < 0 || idx >= len(elems) {
		ev.Errorf("vector-set!: index %d out of bounds (length %d)", idx, len(elems))
		return value.Undefined
	}
	elems[idx] = items[2]
	return value.Void
}

func vectorLengthForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	if !arity(ev, "vector-length", args, 1, false) {
		return value.Undefined
	}
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	if !items[0].IsVector() {
		ev.Errorf("vector-length: argument is not a vector")
		return value.Undefined
	}
	return value.Number(float64(len(value.VectorElems(items[0]))))
}

func typePredForm(pred func(value.Value) bool) value.PrimitiveFn {
	return func(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
		items, ok := evalArgs(ev, env, args)
		if !ok {
			return value.Undefined
		}
		if len(items) != 1 {
			ev.Errorf("type predicate expects 1 argument")
			return value.Undefined
		}
		return value.Bool(pred(items[0]))
	}
}

func notForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	items, ok := evalArgs(ev, env, args)
	if !ok {
		return value.Undefined
	}
	if len(items) != 1 {
		ev.Errorf("not: expects 1 argument")
		return value.Undefined
	}
	return value.Bool(!items[0].Truthy())
}

func writerForm(out io.Writer, write bool) value.PrimitiveFn {
	return func(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
		if !arity(ev, "write/display", args, 1, false) {
			return value.Undefined
		}
		items, ok := evalArgs(ev, env, args)
		if !ok {
			return value.Undefined
		}
		if write {
			printer.Write(out, items[0])
		} else {
			printer.Display(out, items[0])
		}
		return value.Void
	}
}

func newlineForm(out io.Writer) value.PrimitiveFn {
	return func(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
		fmt.Fprintln(out)
		return value.Void
	}
}

func gcForm(ev value.Evaluator, env *value.Object, args value.Value) value.Value {
	ev.Heap().Collect()
	return value.Void
}
