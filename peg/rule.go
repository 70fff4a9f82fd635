package peg

import "fmt"

// Rule is a named production. It is created empty so that it can be
// referenced before its body exists, which is how recursive grammars are
// written:
//
//	expr := peg.NewRule("Expr")
//	primary := peg.Or(number, peg.Seq(peg.Tk("("), expr, peg.Tk(")")))
//	expr.Set(...)
//
// A *Rule is itself an Expr and is used directly wherever the production is
// referenced. References observe later calls to Set.
type Rule struct {
	name string
	kind Kind
	body Expr
}

// NewRule creates an empty rule yielding a value.
func NewRule(name string) *Rule {
	return &Rule{name: name, kind: ValueKind}
}

// NewVoidRule creates an empty rule whose result is always Void.
func NewVoidRule(name string) *Rule {
	return &Rule{name: name, kind: VoidKind}
}

// Set assigns the body and returns the rule.
func (r *Rule) Set(body Expr) *Rule {
	r.body = body
	return r
}

func (r *Rule) Name() string {
	return r.name
}

func (r *Rule) Body() Expr {
	return r.body
}

func (r *Rule) Kind() Kind {
	return r.kind
}

func (r *Rule) String() string {
	return r.name
}

func (r *Rule) Parse(ctx *Context, skip Expr) (any, error) {
	if r.body == nil {
		return nil, fmt.Errorf("%w: %s", ErrUndefinedRule, r.name)
	}

	ctx.enter(r.name)
	v, err := r.body.Parse(ctx, skip)
	ctx.exit(r.name, err == nil)
	if err != nil {
		return nil, err
	}
	if r.kind == VoidKind {
		return Void{}, nil
	}
	return v, nil
}
