// Package scheme wires the heap, reader, evaluator, and printer into the
// single embeddable Context a host program drives.
package scheme

import (
	"io"

	"github.com/jbenes-go/goscheme/eval"
	"github.com/jbenes-go/goscheme/printer"
	"github.com/jbenes-go/goscheme/reader"
	"github.com/jbenes-go/goscheme/value"
)

// Config configures heap sizing, error reporting, and the output stream
// the I/O primitives write to.
type Config struct {
	InitialHeapSize int
	MinHeapFloor    int
	GrowthFactor    float64
	HardCap         int
	DisableGC       bool
	ErrorFn         func(line, col int, msg string)
	Stdout          io.Writer
}

// Context is not safe for concurrent use: evaluation is single-threaded
// and cooperative, with no internal suspension points.
type Context struct {
	heap *value.Heap
	ev   *eval.Evaluator
	out  io.Writer
}

func New(cfg Config) *Context {
	h := value.NewHeap(value.Config{
		InitialThreshold: cfg.InitialHeapSize,
		MinThreshold:     cfg.MinHeapFloor,
		GrowthFactor:     cfg.GrowthFactor,
		HardCap:          cfg.HardCap,
		DisableGC:        cfg.DisableGC,
		ErrorFn:          cfg.ErrorFn,
	})
	out := cfg.Stdout
	if out == nil {
		out = io.Discard
	}
	return &Context{heap: h, ev: eval.New(h), out: out}
}

// InstallDefaultEnv creates the global frame and populates it with every
// special form (eval.InstallSpecialForms) and builtin primitive
// (eval.InstallBuiltins).
func (c *Context) InstallDefaultEnv() *value.Object {
	env := c.heap.NewEnv(nil, value.Nil)
	c.heap.CurrentEnv = env
	eval.InstallSpecialForms(c.heap, env)
	eval.InstallBuiltins(c.heap, env, c.out)
	return env
}

// Read parses and returns only the first complete datum in source; each
// call starts from the beginning of source. Use ReadAll to read every
// top-level datum.
func (c *Context) Read(source string) value.Value {
	r := reader.New(c.heap, source)
	return r.ReadDatum()
}

// ReadAll drains every top-level datum in source, used by the file-run
// host path.
func (c *Context) ReadAll(source string) []value.Value {
	r := reader.New(c.heap, source)
	return r.ReadAll()
}

func (c *Context) Eval(env *value.Object, v value.Value) value.Value {
	return c.ev.Eval(env, v)
}

func (c *Context) Write(w io.Writer, v value.Value) { printer.Write(w, v) }

func (c *Context) Display(w io.Writer, v value.Value) { printer.Display(w, v) }

// HadError reports whether any error has been recorded since the last
// ClearError. Errors accumulate; there is no unwinding.
func (c *Context) HadError() bool { return c.heap.HadError() }

func (c *Context) ClearError() { c.heap.ClearError() }

func (c *Context) Stats() value.Stats { return c.heap.Stats() }

// Close releases the context's heap. goscheme's GC is precise and
// stop-the-world; Close exists to make the context's lifetime explicit
// at the call site, not because anything below needs finalizing.
func (c *Context) Close() {
	c.heap = nil
	c.ev = nil
}
