// Package ast defines the syntax tree the Evaluator walks. Node types and
// their dual Expr/Stmt visitor interfaces are carried over from the
// teacher's parser package almost unchanged in shape (Binary, Literal,
// Variable/Name, Call, If, Block, Array/List, Map/Dict, Index, Unary,
// Logical, Interpolation, Lambda, Property/Attribute all have a direct
// counterpart there); what changes is the node set itself, generalized to
// the borrowed language's comprehensions, chained comparisons, and
// augmented assignment, and the visitor methods return (interface{},
// error) instead of a bare interface{} so a tree-walking Evaluator can
// propagate envelope violations without panicking across node boundaries.
package ast

// Pos is the source location of a node, used verbatim as the Location on
// any error the Evaluator raises while visiting it.
type Pos struct {
	Line   int
	Column int
}
