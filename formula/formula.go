package formula

import (
	"math"
	"sort"
)

// Formula is a parsed arithmetic expression ready for repeated evaluation.
type Formula struct {
	root node
	vars []string
}

// Parse compiles the expression into a Formula.
func Parse(input string) (*Formula, error) {
	p := &parser{lex: newLexer(input)}
	if err := p.next(); err != nil {
		return nil, err
	}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, &ErrParse{Pos: p.tok.pos, Msg: "unexpected trailing input"}
	}

	set := make(map[string]struct{})
	root.collectVars(set)
	vars := make([]string, 0, len(set))
	for v := range set {
		vars = append(vars, v)
	}
	sort.Strings(vars)

	return &Formula{root: root, vars: vars}, nil
}

// Vars returns the sorted free variables of the formula.
func (f *Formula) Vars() []string {
	return f.vars
}

// Eval computes the formula against the given variable bindings. Every free
// variable must be bound; bound values may be NaN or infinite and propagate
// through the arithmetic.
func (f *Formula) Eval(vars map[string]float64) (float64, error) {
	for _, v := range f.vars {
		if _, ok := vars[v]; !ok {
			return 0, &ErrUnboundVariable{Name: v}
		}
	}
	return f.root.eval(vars), nil
}

// node is an AST node.
type node interface {
	eval(vars map[string]float64) float64
	collectVars(set map[string]struct{})
}

type numberNode struct {
	val float64
}

func (n numberNode) eval(map[string]float64) float64  { return n.val }
func (n numberNode) collectVars(map[string]struct{}) {}

type varNode struct {
	name string
}

func (n varNode) eval(vars map[string]float64) float64 { return vars[n.name] }
func (n varNode) collectVars(set map[string]struct{})  { set[n.name] = struct{}{} }

type unaryNode struct {
	op byte // '-'
	x  node
}

func (n unaryNode) eval(vars map[string]float64) float64 { return -n.x.eval(vars) }
func (n unaryNode) collectVars(set map[string]struct{})  { n.x.collectVars(set) }

type binaryNode struct {
	op   byte // '+', '-', '*', '/', '%', '^'
	l, r node
}

func (n binaryNode) eval(vars map[string]float64) float64 {
	l, r := n.l.eval(vars), n.r.eval(vars)
	switch n.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	case '%':
		return math.Mod(l, r)
	default: // '^'
		return math.Pow(l, r)
	}
}

func (n binaryNode) collectVars(set map[string]struct{}) {
	n.l.collectVars(set)
	n.r.collectVars(set)
}

type callNode struct {
	fn  string
	arg node
}

func (n callNode) eval(vars map[string]float64) float64 {
	x := n.arg.eval(vars)
	switch n.fn {
	case "abs":
		return math.Abs(x)
	case "sqrt":
		return math.Sqrt(x)
	case "log":
		return math.Log(x)
	case "log2":
		return math.Log2(x)
	default: // "log10"
		return math.Log10(x)
	}
}

func (n callNode) collectVars(set map[string]struct{}) { n.arg.collectVars(set) }

func isFunction(name string) bool {
	switch name {
	case "abs", "sqrt", "log", "log2", "log10":
		return true
	}
	return false
}
