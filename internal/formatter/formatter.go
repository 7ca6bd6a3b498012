// Package formatter re-serializes a parsed syntax tree into canonical
// source: normalized indentation, one space around binary operators, a
// canonical string-quote style. It walks the ast package's visitor
// interfaces — the same Accept-based dispatch the Evaluator uses — rather
// than switching on concrete node types.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"draconic/internal/ast"
)

// Formatter accumulates re-serialized source into output as it walks a
// statement list.
type Formatter struct {
	indent    int
	indentStr string
	output    strings.Builder
}

// New builds a Formatter using a 4-space indent unit.
func New() *Formatter {
	return &Formatter{indentStr: "    "}
}

// Format re-serializes a parsed program into canonical source text.
func Format(stmts []ast.Stmt) (string, error) {
	f := New()
	for _, s := range stmts {
		if _, err := s.Accept(f); err != nil {
			return "", err
		}
	}
	return f.output.String(), nil
}

func (f *Formatter) writeIndent() {
	f.output.WriteString(strings.Repeat(f.indentStr, f.indent))
}

func (f *Formatter) block(stmts []ast.Stmt) error {
	f.indent++
	for _, s := range stmts {
		f.writeIndent()
		if _, err := s.Accept(f); err != nil {
			return err
		}
	}
	f.indent--
	return nil
}

func (f *Formatter) expr(e ast.Expr) (string, error) {
	raw, err := e.Accept(f)
	if err != nil {
		return "", err
	}
	s, _ := raw.(string)
	return s, nil
}

func (f *Formatter) exprList(es []ast.Expr) (string, error) {
	parts := make([]string, len(es))
	for i, e := range es {
		s, err := f.expr(e)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

func paramList(params []string, defaults []ast.Expr, f *Formatter) (string, error) {
	required := len(params) - len(defaults)
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p
		dIdx := i - required
		if dIdx >= 0 && dIdx < len(defaults) && defaults[dIdx] != nil {
			dv, err := f.expr(defaults[dIdx])
			if err != nil {
				return "", err
			}
			parts[i] = fmt.Sprintf("%s=%s", p, dv)
		}
	}
	return strings.Join(parts, ", "), nil
}

// ---- statements ----

func (f *Formatter) VisitExprStmt(n *ast.ExprStmt) (interface{}, error) {
	s, err := f.expr(n.Expr)
	if err != nil {
		return nil, err
	}
	f.output.WriteString(s)
	f.output.WriteByte('\n')
	return nil, nil
}

func (f *Formatter) VisitAssignStmt(n *ast.AssignStmt) (interface{}, error) {
	targets, err := f.exprList(n.Targets)
	if err != nil {
		return nil, err
	}
	val, err := f.expr(n.Value)
	if err != nil {
		return nil, err
	}
	f.output.WriteString(strings.ReplaceAll(targets, ", ", " = "))
	f.output.WriteString(" = ")
	f.output.WriteString(val)
	f.output.WriteByte('\n')
	return nil, nil
}

func (f *Formatter) VisitAugAssignStmt(n *ast.AugAssignStmt) (interface{}, error) {
	t, err := f.expr(n.Target)
	if err != nil {
		return nil, err
	}
	v, err := f.expr(n.Value)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&f.output, "%s %s= %s\n", t, n.Operator, v)
	return nil, nil
}

func (f *Formatter) VisitFunctionDef(n *ast.FunctionDef) (interface{}, error) {
	params, err := paramList(n.Params, n.Defaults, f)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&f.output, "def %s(%s):\n", n.Name, params)
	return nil, f.block(n.Body)
}

func (f *Formatter) VisitReturnStmt(n *ast.ReturnStmt) (interface{}, error) {
	if n.Value == nil {
		f.output.WriteString("return\n")
		return nil, nil
	}
	v, err := f.expr(n.Value)
	if err != nil {
		return nil, err
	}
	f.output.WriteString("return " + v + "\n")
	return nil, nil
}

func (f *Formatter) VisitIfStmt(n *ast.IfStmt) (interface{}, error) {
	test, err := f.expr(n.Test)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&f.output, "if %s:\n", test)
	if err := f.block(n.Body); err != nil {
		return nil, err
	}
	if len(n.Orelse) == 1 {
		if elif, ok := n.Orelse[0].(*ast.IfStmt); ok {
			f.writeIndent()
			f.output.WriteString("el")
			if _, err := f.VisitIfStmt(elif); err != nil {
				return nil, err
			}
			return nil, nil
		}
	}
	if len(n.Orelse) > 0 {
		f.writeIndent()
		f.output.WriteString("else:\n")
		if err := f.block(n.Orelse); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (f *Formatter) VisitWhileStmt(n *ast.WhileStmt) (interface{}, error) {
	test, err := f.expr(n.Test)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&f.output, "while %s:\n", test)
	return nil, f.block(n.Body)
}

func (f *Formatter) VisitForStmt(n *ast.ForStmt) (interface{}, error) {
	target, err := f.expr(n.Target)
	if err != nil {
		return nil, err
	}
	iter, err := f.expr(n.Iter)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&f.output, "for %s in %s:\n", target, iter)
	return nil, f.block(n.Body)
}

func (f *Formatter) VisitBreakStmt(*ast.BreakStmt) (interface{}, error) {
	f.output.WriteString("break\n")
	return nil, nil
}

func (f *Formatter) VisitContinueStmt(*ast.ContinueStmt) (interface{}, error) {
	f.output.WriteString("continue\n")
	return nil, nil
}

func (f *Formatter) VisitPassStmt(*ast.PassStmt) (interface{}, error) {
	f.output.WriteString("pass\n")
	return nil, nil
}

// ---- expressions ----

func (f *Formatter) VisitIntLiteral(n *ast.IntLiteral) (interface{}, error) {
	return n.Value.String(), nil
}

func (f *Formatter) VisitFloatLiteral(n *ast.FloatLiteral) (interface{}, error) {
	return strconv.FormatFloat(n.Value, 'g', -1, 64), nil
}

func (f *Formatter) VisitStringLiteral(n *ast.StringLiteral) (interface{}, error) {
	return quote(n.Value), nil
}

func (f *Formatter) VisitBoolLiteral(n *ast.BoolLiteral) (interface{}, error) {
	if n.Value {
		return "True", nil
	}
	return "False", nil
}

func (f *Formatter) VisitNoneLiteral(*ast.NoneLiteral) (interface{}, error) {
	return "None", nil
}

func (f *Formatter) VisitName(n *ast.Name) (interface{}, error) {
	return n.Ident, nil
}

func (f *Formatter) VisitBinary(n *ast.Binary) (interface{}, error) {
	l, err := f.expr(n.Left)
	if err != nil {
		return nil, err
	}
	r, err := f.expr(n.Right)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("%s %s %s", l, n.Operator, r), nil
}

func (f *Formatter) VisitUnary(n *ast.Unary) (interface{}, error) {
	o, err := f.expr(n.Operand)
	if err != nil {
		return nil, err
	}
	if n.Operator == "not" {
		return "not " + o, nil
	}
	return n.Operator + o, nil
}

func (f *Formatter) VisitBoolOp(n *ast.BoolOp) (interface{}, error) {
	parts := make([]string, len(n.Values))
	for i, v := range n.Values {
		s, err := f.expr(v)
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return strings.Join(parts, " "+n.Operator+" "), nil
}

func (f *Formatter) VisitCompare(n *ast.Compare) (interface{}, error) {
	left, err := f.expr(n.Left)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	sb.WriteString(left)
	for i, op := range n.Ops {
		c, err := f.expr(n.Comparators[i])
		if err != nil {
			return nil, err
		}
		sb.WriteString(" " + op + " " + c)
	}
	return sb.String(), nil
}

func (f *Formatter) VisitIfExp(n *ast.IfExp) (interface{}, error) {
	body, err := f.expr(n.Body)
	if err != nil {
		return nil, err
	}
	test, err := f.expr(n.Test)
	if err != nil {
		return nil, err
	}
	orelse, err := f.expr(n.Orelse)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("%s if %s else %s", body, test, orelse), nil
}

func (f *Formatter) VisitCall(n *ast.Call) (interface{}, error) {
	callee, err := f.expr(n.Callee)
	if err != nil {
		return nil, err
	}
	args, err := f.exprList(n.Args)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("%s(%s)", callee, args), nil
}

func (f *Formatter) VisitStarred(n *ast.Starred) (interface{}, error) {
	v, err := f.expr(n.Value)
	if err != nil {
		return nil, err
	}
	return "*" + v, nil
}

func (f *Formatter) VisitListExpr(n *ast.ListExpr) (interface{}, error) {
	s, err := f.exprList(n.Elements)
	if err != nil {
		return nil, err
	}
	return "[" + s + "]", nil
}

func (f *Formatter) VisitSetExpr(n *ast.SetExpr) (interface{}, error) {
	if len(n.Elements) == 0 {
		return "set()", nil
	}
	s, err := f.exprList(n.Elements)
	if err != nil {
		return nil, err
	}
	return "{" + s + "}", nil
}

func (f *Formatter) VisitDictExpr(n *ast.DictExpr) (interface{}, error) {
	parts := make([]string, len(n.Keys))
	for i := range n.Keys {
		k, err := f.expr(n.Keys[i])
		if err != nil {
			return nil, err
		}
		v, err := f.expr(n.Values[i])
		if err != nil {
			return nil, err
		}
		parts[i] = k + ": " + v
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

func (f *Formatter) VisitTupleExpr(n *ast.TupleExpr) (interface{}, error) {
	s, err := f.exprList(n.Elements)
	if err != nil {
		return nil, err
	}
	if len(n.Elements) == 1 {
		return "(" + s + ",)", nil
	}
	return "(" + s + ")", nil
}

func (f *Formatter) comprehension(element string, gens []ast.Comprehension) (string, error) {
	var sb strings.Builder
	sb.WriteString(element)
	for _, g := range gens {
		target, err := f.expr(g.Target)
		if err != nil {
			return "", err
		}
		iter, err := f.expr(g.Iter)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, " for %s in %s", target, iter)
		for _, cond := range g.Ifs {
			c, err := f.expr(cond)
			if err != nil {
				return "", err
			}
			sb.WriteString(" if " + c)
		}
	}
	return sb.String(), nil
}

func (f *Formatter) VisitListComp(n *ast.ListComp) (interface{}, error) {
	elem, err := f.expr(n.Element)
	if err != nil {
		return nil, err
	}
	body, err := f.comprehension(elem, n.Generators)
	if err != nil {
		return nil, err
	}
	return "[" + body + "]", nil
}

func (f *Formatter) VisitSetComp(n *ast.SetComp) (interface{}, error) {
	elem, err := f.expr(n.Element)
	if err != nil {
		return nil, err
	}
	body, err := f.comprehension(elem, n.Generators)
	if err != nil {
		return nil, err
	}
	return "{" + body + "}", nil
}

func (f *Formatter) VisitDictComp(n *ast.DictComp) (interface{}, error) {
	k, err := f.expr(n.Key)
	if err != nil {
		return nil, err
	}
	v, err := f.expr(n.Value)
	if err != nil {
		return nil, err
	}
	body, err := f.comprehension(k+": "+v, n.Generators)
	if err != nil {
		return nil, err
	}
	return "{" + body + "}", nil
}

func (f *Formatter) VisitGeneratorExp(n *ast.GeneratorExp) (interface{}, error) {
	elem, err := f.expr(n.Element)
	if err != nil {
		return nil, err
	}
	body, err := f.comprehension(elem, n.Generators)
	if err != nil {
		return nil, err
	}
	return "(" + body + ")", nil
}

func (f *Formatter) VisitIndex(n *ast.Index) (interface{}, error) {
	o, err := f.expr(n.Object)
	if err != nil {
		return nil, err
	}
	k, err := f.expr(n.Key)
	if err != nil {
		return nil, err
	}
	return o + "[" + k + "]", nil
}

func (f *Formatter) VisitSlice(n *ast.Slice) (interface{}, error) {
	o, err := f.expr(n.Object)
	if err != nil {
		return nil, err
	}
	part := func(e ast.Expr) (string, error) {
		if e == nil {
			return "", nil
		}
		return f.expr(e)
	}
	lo, err := part(n.Lo)
	if err != nil {
		return nil, err
	}
	hi, err := part(n.Hi)
	if err != nil {
		return nil, err
	}
	if n.Step == nil {
		return fmt.Sprintf("%s[%s:%s]", o, lo, hi), nil
	}
	step, err := part(n.Step)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("%s[%s:%s:%s]", o, lo, hi, step), nil
}

func (f *Formatter) VisitAttribute(n *ast.Attribute) (interface{}, error) {
	o, err := f.expr(n.Object)
	if err != nil {
		return nil, err
	}
	return o + "." + n.Attr, nil
}

func (f *Formatter) VisitLambda(n *ast.Lambda) (interface{}, error) {
	params, err := paramList(n.Params, n.Defaults, f)
	if err != nil {
		return nil, err
	}
	body, err := f.expr(n.Body)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("lambda %s: %s", params, body), nil
}

func (f *Formatter) VisitFString(n *ast.FString) (interface{}, error) {
	var sb strings.Builder
	sb.WriteString(`f"`)
	for _, part := range n.Parts {
		if sl, ok := part.(*ast.StringLiteral); ok {
			sb.WriteString(sl.Value)
			continue
		}
		s, err := f.expr(part)
		if err != nil {
			return nil, err
		}
		sb.WriteString("{" + s + "}")
	}
	sb.WriteString(`"`)
	return sb.String(), nil
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
