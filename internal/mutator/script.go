package mutator

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/l2lang/gcrt/internal/word"
)

// Program drives a Collector through a textual script against a
// simulated Stack, line by line. It is the harness cmd/l2gc's "run" and
// "repl" subcommands use (SPEC_FULL.md §4.7); it carries none of
// spec.md's GC invariants itself, it just exercises them.
//
// Script grammar, one command per line, blank lines and lines starting
// with '#' ignored:
//
//	frame <numArgs> <numLocals>         push a new frame, becomes current
//	alloc local <k> <n> <mask>          local k = Alloc(n); header set to (n, mask)
//	alloc arg <k> <n> <mask>            same, into argument slot k
//	copy local <k> local <j>            local k = value currently in local j
//	copy local <k> arg <j>              local k = value currently in arg j
//	nil local <k>                       clear local k to null
//	nil arg <k>                         clear arg k to null
//	field <k> <i> local <j>             object at local k, field i := local j
//	field <k> <i> arg <j>               object at local k, field i := arg j
//	ret                                 pop back to the caller's frame
//	stats                               print the collector's Stats()
type Program struct {
	stack     *Stack
	heap      word.Memory
	collector Collector
	fp        word.Addr
	out       io.Writer

	statsFn func(io.Writer)
}

// NewProgram builds an interpreter over stack/heap/collector, starting at
// the collector's base frame. statsFn, if non-nil, implements the "stats"
// command by printing the collector's own Stats() accessor.
func NewProgram(stack *Stack, heap word.Memory, collector Collector, out io.Writer, statsFn func(io.Writer)) *Program {
	return &Program{stack: stack, heap: heap, collector: collector, fp: stack.BaseFramePtr(), out: out, statsFn: statsFn}
}

// Run executes every line of r in order.
func (p *Program) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := p.exec(line); err != nil {
			return fmt.Errorf("line %d: %q: %w", lineNo, line, err)
		}
	}
	return sc.Err()
}

func (p *Program) exec(line string) error {
	f := strings.Fields(line)
	switch f[0] {
	case "frame":
		if len(f) != 3 {
			return fmt.Errorf("frame wants 2 args")
		}
		numArgs, err := strconv.Atoi(f[1])
		if err != nil {
			return err
		}
		numLocals, err := strconv.Atoi(f[2])
		if err != nil {
			return err
		}
		p.fp = p.stack.PushFrame(p.fp, numArgs, numLocals)

	case "ret":
		p.fp = p.stack.CallerFP(p.fp)

	case "alloc":
		if len(f) != 5 {
			return fmt.Errorf("alloc wants: local|arg <slot> <numWords> <mask>")
		}
		slot, err := strconv.Atoi(f[2])
		if err != nil {
			return err
		}
		numWords, err := strconv.Atoi(f[3])
		if err != nil {
			return err
		}
		mask, err := strconv.ParseUint(f[4], 0, 32)
		if err != nil {
			return err
		}
		payload, err := p.collector.Alloc(numWords, p.fp)
		if err != nil {
			return err
		}
		WriteHeader(p.heap, payload, uint8(numWords), uint32(mask))
		switch f[1] {
		case "local":
			p.stack.SetLocal(p.fp, slot, payload)
		case "arg":
			p.stack.SetArg(p.fp, slot, payload)
		default:
			return fmt.Errorf("unknown slot kind %q", f[1])
		}

	case "copy":
		if len(f) != 5 {
			return fmt.Errorf("copy wants: local <k> local|arg <j>")
		}
		if f[1] != "local" {
			return fmt.Errorf("copy destination must be local")
		}
		k, err := strconv.Atoi(f[2])
		if err != nil {
			return err
		}
		j, err := strconv.Atoi(f[4])
		if err != nil {
			return err
		}
		v, err := p.readSlot(f[3], j)
		if err != nil {
			return err
		}
		p.stack.SetLocal(p.fp, k, v)

	case "nil":
		if len(f) != 3 {
			return fmt.Errorf("nil wants: local|arg <slot>")
		}
		slot, err := strconv.Atoi(f[2])
		if err != nil {
			return err
		}
		switch f[1] {
		case "local":
			p.stack.SetLocal(p.fp, slot, 0)
		case "arg":
			p.stack.SetArg(p.fp, slot, 0)
		default:
			return fmt.Errorf("unknown slot kind %q", f[1])
		}

	case "field":
		if len(f) != 5 {
			return fmt.Errorf("field wants: <k> <i> local|arg <j>")
		}
		k, err := strconv.Atoi(f[1])
		if err != nil {
			return err
		}
		i, err := strconv.Atoi(f[2])
		if err != nil {
			return err
		}
		j, err := strconv.Atoi(f[4])
		if err != nil {
			return err
		}
		v, err := p.readSlot(f[3], j)
		if err != nil {
			return err
		}
		obj := p.stack.ReadLocal(p.fp, k)
		WriteField(p.heap, obj, i, v)

	case "stats":
		if p.statsFn != nil {
			p.statsFn(p.out)
		}

	default:
		return fmt.Errorf("unknown command %q", f[0])
	}
	return nil
}

func (p *Program) readSlot(kind string, idx int) (word.Addr, error) {
	switch kind {
	case "local":
		return p.stack.ReadLocal(p.fp, idx), nil
	case "arg":
		return p.stack.ReadArg(p.fp, idx), nil
	default:
		return 0, fmt.Errorf("unknown slot kind %q", kind)
	}
}

// FramePtr returns the interpreter's current frame pointer, for a REPL
// that wants to report it.
func (p *Program) FramePtr() word.Addr { return p.fp }
