package ast

import "math/big"

// Expr is any expression node.
type Expr interface {
	Accept(visitor ExprVisitor) (interface{}, error)
	Position() Pos
}

// IntLiteral is an arbitrary-precision integer literal.
type IntLiteral struct {
	Pos   Pos
	Value *big.Int
}

func (n *IntLiteral) Accept(v ExprVisitor) (interface{}, error) { return v.VisitIntLiteral(n) }
func (n *IntLiteral) Position() Pos                             { return n.Pos }

// FloatLiteral is an IEEE-754 double literal.
type FloatLiteral struct {
	Pos   Pos
	Value float64
}

func (n *FloatLiteral) Accept(v ExprVisitor) (interface{}, error) { return v.VisitFloatLiteral(n) }
func (n *FloatLiteral) Position() Pos                             { return n.Pos }

// StringLiteral is a string literal.
type StringLiteral struct {
	Pos   Pos
	Value string
}

func (n *StringLiteral) Accept(v ExprVisitor) (interface{}, error) { return v.VisitStringLiteral(n) }
func (n *StringLiteral) Position() Pos                             { return n.Pos }

// BoolLiteral is `True` or `False`.
type BoolLiteral struct {
	Pos   Pos
	Value bool
}

func (n *BoolLiteral) Accept(v ExprVisitor) (interface{}, error) { return v.VisitBoolLiteral(n) }
func (n *BoolLiteral) Position() Pos                             { return n.Pos }

// NoneLiteral is `None`.
type NoneLiteral struct {
	Pos Pos
}

func (n *NoneLiteral) Accept(v ExprVisitor) (interface{}, error) { return v.VisitNoneLiteral(n) }
func (n *NoneLiteral) Position() Pos                             { return n.Pos }

// Name is a bare identifier reference: x
type Name struct {
	Pos   Pos
	Ident string
}

func (n *Name) Accept(v ExprVisitor) (interface{}, error) { return v.VisitName(n) }
func (n *Name) Position() Pos                             { return n.Pos }

// Binary is a binary arithmetic/bitwise expression: a + b
type Binary struct {
	Pos      Pos
	Left     Expr
	Operator string
	Right    Expr
}

func (n *Binary) Accept(v ExprVisitor) (interface{}, error) { return v.VisitBinary(n) }
func (n *Binary) Position() Pos                             { return n.Pos }

// Unary is a unary expression: -x, +x, ~x, not x
type Unary struct {
	Pos      Pos
	Operator string
	Operand  Expr
}

func (n *Unary) Accept(v ExprVisitor) (interface{}, error) { return v.VisitUnary(n) }
func (n *Unary) Position() Pos                             { return n.Pos }

// BoolOp is a short-circuiting `and`/`or` chain: a and b and c
type BoolOp struct {
	Pos      Pos
	Operator string // "and" | "or"
	Values   []Expr
}

func (n *BoolOp) Accept(v ExprVisitor) (interface{}, error) { return v.VisitBoolOp(n) }
func (n *BoolOp) Position() Pos                             { return n.Pos }

// Compare is a chained comparison: a < b < c, evaluating each operand once.
type Compare struct {
	Pos         Pos
	Left        Expr
	Ops         []string
	Comparators []Expr
}

func (n *Compare) Accept(v ExprVisitor) (interface{}, error) { return v.VisitCompare(n) }
func (n *Compare) Position() Pos                             { return n.Pos }

// IfExp is the conditional expression: a if cond else b
type IfExp struct {
	Pos    Pos
	Test   Expr
	Body   Expr
	Orelse Expr
}

func (n *IfExp) Accept(v ExprVisitor) (interface{}, error) { return v.VisitIfExp(n) }
func (n *IfExp) Position() Pos                             { return n.Pos }

// Call is a call expression: callee(args...)
type Call struct {
	Pos    Pos
	Callee Expr
	Args   []Expr
}

func (n *Call) Accept(v ExprVisitor) (interface{}, error) { return v.VisitCall(n) }
func (n *Call) Position() Pos                             { return n.Pos }

// Starred marks `*expr` inside a list/set/dict display or a call argument.
type Starred struct {
	Pos   Pos
	Value Expr
}

func (n *Starred) Accept(v ExprVisitor) (interface{}, error) { return v.VisitStarred(n) }
func (n *Starred) Position() Pos                             { return n.Pos }

// ListExpr is a list display: [1, 2, 3]
type ListExpr struct {
	Pos      Pos
	Elements []Expr
}

func (n *ListExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitListExpr(n) }
func (n *ListExpr) Position() Pos                             { return n.Pos }

// SetExpr is a set display: {1, 2, 3}
type SetExpr struct {
	Pos      Pos
	Elements []Expr
}

func (n *SetExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitSetExpr(n) }
func (n *SetExpr) Position() Pos                             { return n.Pos }

// DictExpr is a dict display: {k: v, ...}
type DictExpr struct {
	Pos    Pos
	Keys   []Expr
	Values []Expr
}

func (n *DictExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitDictExpr(n) }
func (n *DictExpr) Position() Pos                             { return n.Pos }

// TupleExpr is a tuple display or an unpacking assignment target: a, b
type TupleExpr struct {
	Pos      Pos
	Elements []Expr
}

func (n *TupleExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitTupleExpr(n) }
func (n *TupleExpr) Position() Pos                             { return n.Pos }

// Comprehension is one `for target in iter [if cond]*` clause.
type Comprehension struct {
	Target Expr
	Iter   Expr
	Ifs    []Expr
}

// ListComp is a list comprehension: [x for x in xs if cond]
type ListComp struct {
	Pos        Pos
	Element    Expr
	Generators []Comprehension
}

func (n *ListComp) Accept(v ExprVisitor) (interface{}, error) { return v.VisitListComp(n) }
func (n *ListComp) Position() Pos                             { return n.Pos }

// SetComp is a set comprehension: {x for x in xs}
type SetComp struct {
	Pos        Pos
	Element    Expr
	Generators []Comprehension
}

func (n *SetComp) Accept(v ExprVisitor) (interface{}, error) { return v.VisitSetComp(n) }
func (n *SetComp) Position() Pos                             { return n.Pos }

// DictComp is a dict comprehension: {k: v for k, v in items}
type DictComp struct {
	Pos        Pos
	Key        Expr
	Value      Expr
	Generators []Comprehension
}

func (n *DictComp) Accept(v ExprVisitor) (interface{}, error) { return v.VisitDictComp(n) }
func (n *DictComp) Position() Pos                             { return n.Pos }

// GeneratorExp is a parenthesized generator expression passed as a sole
// call argument: dict((i, i) for i in range(1000)). It is evaluated
// eagerly into a list of produced values, counted against max_loops/
// max_const_len exactly like a list comprehension.
type GeneratorExp struct {
	Pos        Pos
	Element    Expr
	Generators []Comprehension
}

func (n *GeneratorExp) Accept(v ExprVisitor) (interface{}, error) { return v.VisitGeneratorExp(n) }
func (n *GeneratorExp) Position() Pos                             { return n.Pos }

// Index is a subscription read: object[index]
type Index struct {
	Pos    Pos
	Object Expr
	Key    Expr
}

func (n *Index) Accept(v ExprVisitor) (interface{}, error) { return v.VisitIndex(n) }
func (n *Index) Position() Pos                             { return n.Pos }

// Slice is a slice subscription: object[lo:hi:step]
type Slice struct {
	Pos            Pos
	Object         Expr
	Lo, Hi, Step   Expr // any may be nil
}

func (n *Slice) Accept(v ExprVisitor) (interface{}, error) { return v.VisitSlice(n) }
func (n *Slice) Position() Pos                             { return n.Pos }

// Attribute is a property read: object.attr
type Attribute struct {
	Pos    Pos
	Object Expr
	Attr   string
}

func (n *Attribute) Accept(v ExprVisitor) (interface{}, error) { return v.VisitAttribute(n) }
func (n *Attribute) Position() Pos                             { return n.Pos }

// Lambda is `lambda params: body`.
type Lambda struct {
	Pos      Pos
	Params   []string
	Defaults []Expr // parallel to the trailing Params with defaults; nil entries mean no default
	Body     Expr
}

func (n *Lambda) Accept(v ExprVisitor) (interface{}, error) { return v.VisitLambda(n) }
func (n *Lambda) Position() Pos                             { return n.Pos }

// FString is a string-interpolation literal: f"hello {name}"
type FString struct {
	Pos   Pos
	Parts []Expr // mix of *StringLiteral and embedded expressions
}

func (n *FString) Accept(v ExprVisitor) (interface{}, error) { return v.VisitFString(n) }
func (n *FString) Position() Pos                             { return n.Pos }

// ExprVisitor dispatches every expression node kind.
type ExprVisitor interface {
	VisitIntLiteral(*IntLiteral) (interface{}, error)
	VisitFloatLiteral(*FloatLiteral) (interface{}, error)
	VisitStringLiteral(*StringLiteral) (interface{}, error)
	VisitBoolLiteral(*BoolLiteral) (interface{}, error)
	VisitNoneLiteral(*NoneLiteral) (interface{}, error)
	VisitName(*Name) (interface{}, error)
	VisitBinary(*Binary) (interface{}, error)
	VisitUnary(*Unary) (interface{}, error)
	VisitBoolOp(*BoolOp) (interface{}, error)
	VisitCompare(*Compare) (interface{}, error)
	VisitIfExp(*IfExp) (interface{}, error)
	VisitCall(*Call) (interface{}, error)
	VisitStarred(*Starred) (interface{}, error)
	VisitListExpr(*ListExpr) (interface{}, error)
	VisitSetExpr(*SetExpr) (interface{}, error)
	VisitDictExpr(*DictExpr) (interface{}, error)
	VisitTupleExpr(*TupleExpr) (interface{}, error)
	VisitListComp(*ListComp) (interface{}, error)
	VisitSetComp(*SetComp) (interface{}, error)
	VisitDictComp(*DictComp) (interface{}, error)
	VisitGeneratorExp(*GeneratorExp) (interface{}, error)
	VisitIndex(*Index) (interface{}, error)
	VisitSlice(*Slice) (interface{}, error)
	VisitAttribute(*Attribute) (interface{}, error)
	VisitLambda(*Lambda) (interface{}, error)
	VisitFString(*FString) (interface{}, error)
}
