package fortransducer

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

// Parser builds a grammarProgram from source text per the grammar of
// SPEC_FULL.md §6. It targets a small family of "grammar*" structs
// rather than ast.go's types directly, the same way the teacher keeps
// its Participle-facing node types (IntegerNode, BinOpNode, ...)
// separate from what a hand-written evaluator would want; convertProgram
// reduces the parse tree into the domain AST afterwards.
var Parser = participle.MustBuild[grammarProgram](
	participle.Lexer(Lexer),
	participle.UseLookahead(2),
	participle.Unquote("String"),
)

// ParseString parses src (named filename for diagnostics) into a Program.
func ParseString(filename, src string) (*Program, error) {
	g, err := Parser.ParseString(filename, src)
	if err != nil {
		return nil, err
	}
	return convertProgram(g)
}

// ParseBytes parses data (named filename for diagnostics) into a Program.
func ParseBytes(filename string, data []byte) (*Program, error) {
	g, err := Parser.ParseBytes(filename, data)
	if err != nil {
		return nil, err
	}
	return convertProgram(g)
}

type grammarProgram struct {
	Stmts []*grammarStmt `parser:"@@*"`
}

type grammarStmt struct {
	Print *grammarPrint `parser:"(  @@"`
	For   *grammarFor   `parser:"|  @@"`
	If    *grammarIf    `parser:"|  @@ )"`
}

type grammarPrint struct {
	Expr grammarPExpr `parser:"'print' '(' @@ ')'"`
}

type grammarPExpr struct {
	Str *string `parser:"(  @String"`
	Var *string `parser:"|  @Ident '.' 'label' )"`
}

type grammarFor struct {
	Var     string         `parser:"'for' @Ident 'in' ("`
	Ascend  bool           `parser:"  @('0' '..' 'n')"`
	Descend bool           `parser:"| @('n' '..' '0') )"`
	Body    []*grammarStmt `parser:"'{' @@* '}'"`
}

type grammarIf struct {
	Cond *grammarOrExpr `parser:"'if' @@"`
	Then []*grammarStmt `parser:"'{' @@* '}'"`
	Else []*grammarStmt `parser:"( 'else' '{' @@* '}' )?"`
}

// grammarOrExpr / grammarAndExpr / grammarUnary implement the
// and/or/not precedence climb that spec.md §3's left-recursive bexpr
// grammar needs flattened into, since Participle cannot parse
// left recursion directly.
type grammarOrExpr struct {
	Left *grammarAndExpr   `parser:"@@"`
	Rest []*grammarAndExpr `parser:"( 'or' @@ )*"`
}

type grammarAndExpr struct {
	Left *grammarUnary   `parser:"@@"`
	Rest []*grammarUnary `parser:"( 'and' @@ )*"`
}

type grammarUnary struct {
	Not   *grammarUnary      `parser:"(  'not' @@"`
	Paren *grammarOrExpr     `parser:"|  '(' @@ ')'"`
	Cmp   *grammarComparison `parser:"|  @@ )"`
}

type grammarComparison struct {
	Left  *grammarAtom `parser:"@@"`
	Op    *string      `parser:"( @('=='|'!='|'<='|'>='|'<'|'>')"`
	Right *grammarAtom `parser:"  @@ )?"`
}

type grammarAtom struct {
	True    bool    `parser:"(  @'T'"`
	False   bool    `parser:"|  @'F'"`
	Str     *string `parser:"|  @String"`
	Ident   *string `parser:"|  @Ident )"`
	IsLabel bool    `parser:"( '.' 'label' )?"`
}

func convertProgram(g *grammarProgram) (*Program, error) {
	stmts, err := convertStmts(g.Stmts)
	if err != nil {
		return nil, err
	}
	return &Program{Stmts: stmts}, nil
}

func convertStmts(gs []*grammarStmt) ([]Stmt, error) {
	var out []Stmt
	for _, g := range gs {
		s, err := convertStmt(g)
		if err != nil {
			return nil, err
		}
		out = append(out, s...)
	}
	return out, nil
}

func convertStmt(g *grammarStmt) ([]Stmt, error) {
	switch {
	case g.Print != nil:
		s, err := convertPrint(g.Print)
		if err != nil {
			return nil, err
		}
		return []Stmt{s}, nil
	case g.For != nil:
		s, err := convertFor(g.For)
		if err != nil {
			return nil, err
		}
		return []Stmt{s}, nil
	case g.If != nil:
		return convertIf(g.If)
	default:
		return nil, fmt.Errorf("fortransducer: empty statement")
	}
}

func convertPrint(g *grammarPrint) (Stmt, error) {
	expr, err := convertPExpr(&g.Expr)
	if err != nil {
		return nil, err
	}
	return PrintStmt{Expr: expr}, nil
}

func convertPExpr(g *grammarPExpr) (PExpr, error) {
	switch {
	case g.Str != nil:
		return StrExpr{Value: *g.Str}, nil
	case g.Var != nil:
		return LabelExpr{Var: *g.Var}, nil
	default:
		return nil, fmt.Errorf("fortransducer: empty print argument")
	}
}

func convertFor(g *grammarFor) (Stmt, error) {
	body, err := convertStmts(g.Body)
	if err != nil {
		return nil, err
	}
	switch {
	case g.Ascend:
		return ForStmt{Var: g.Var, Dir: Asc, Body: body}, nil
	case g.Descend:
		return ForStmt{Var: g.Var, Dir: Desc, Body: body}, nil
	default:
		return nil, fmt.Errorf("fortransducer: for range must be 0..n or n..0")
	}
}

// convertIf desugars a present else-branch into a second If guarded by
// the negated condition, per ast.go's Stmt doc comment.
func convertIf(g *grammarIf) ([]Stmt, error) {
	cond, err := convertOrExpr(g.Cond)
	if err != nil {
		return nil, err
	}
	thenBody, err := convertStmts(g.Then)
	if err != nil {
		return nil, err
	}
	ifStmt := IfStmt{Cond: cond, Body: thenBody}
	if len(g.Else) == 0 {
		return []Stmt{ifStmt}, nil
	}
	elseBody, err := convertStmts(g.Else)
	if err != nil {
		return nil, err
	}
	elseStmt := IfStmt{Cond: BNot{X: cond}, Body: elseBody}
	return []Stmt{ifStmt, elseStmt}, nil
}

func convertOrExpr(g *grammarOrExpr) (BExpr, error) {
	left, err := convertAndExpr(g.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range g.Rest {
		right, err := convertAndExpr(r)
		if err != nil {
			return nil, err
		}
		left = BOr{L: left, R: right}
	}
	return left, nil
}

func convertAndExpr(g *grammarAndExpr) (BExpr, error) {
	left, err := convertUnary(g.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range g.Rest {
		right, err := convertUnary(r)
		if err != nil {
			return nil, err
		}
		left = BAnd{L: left, R: right}
	}
	return left, nil
}

func convertUnary(g *grammarUnary) (BExpr, error) {
	switch {
	case g.Not != nil:
		x, err := convertUnary(g.Not)
		if err != nil {
			return nil, err
		}
		return BNot{X: x}, nil
	case g.Paren != nil:
		return convertOrExpr(g.Paren)
	case g.Cmp != nil:
		return convertComparison(g.Cmp)
	default:
		return nil, fmt.Errorf("fortransducer: empty boolean expression")
	}
}

func convertComparison(g *grammarComparison) (BExpr, error) {
	left, err := convertAtom(g.Left)
	if err != nil {
		return nil, err
	}
	if g.Op == nil {
		return left, nil
	}
	right, err := convertAtom(g.Right)
	if err != nil {
		return nil, err
	}
	op, err := parseCmpOp(*g.Op)
	if err != nil {
		return nil, err
	}
	return BCmp{Op: op, Left: left, Right: right}, nil
}

func parseCmpOp(s string) (CmpOp, error) {
	switch s {
	case "==":
		return Eq, nil
	case "!=":
		return Ne, nil
	case "<":
		return Lt, nil
	case "<=":
		return Le, nil
	case ">":
		return Gt, nil
	case ">=":
		return Ge, nil
	default:
		return 0, fmt.Errorf("fortransducer: unknown comparison operator %q", s)
	}
}

func convertAtom(g *grammarAtom) (BExpr, error) {
	switch {
	case g.True:
		if g.IsLabel {
			return nil, fmt.Errorf("fortransducer: T cannot be followed by .label")
		}
		return BConst{Value: true}, nil
	case g.False:
		if g.IsLabel {
			return nil, fmt.Errorf("fortransducer: F cannot be followed by .label")
		}
		return BConst{Value: false}, nil
	case g.Str != nil:
		if g.IsLabel {
			return nil, fmt.Errorf("fortransducer: a string literal cannot be followed by .label")
		}
		return BStr{Value: *g.Str}, nil
	case g.Ident != nil:
		if g.IsLabel {
			return BLabel{Var: *g.Ident}, nil
		}
		return BVar{Name: *g.Ident}, nil
	default:
		return nil, fmt.Errorf("fortransducer: empty atom")
	}
}
