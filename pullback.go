package fortransducer

import (
	"fmt"
	"strings"
)

// OutputFormula is the mono-sorted first-order post-condition over the
// *output* word that callers write (spec.md §3, "Input-level FO
// post-condition"; despite the name it is phrased over output
// positions — Pullback translates it into an input-level Formula).
type OutputFormula interface {
	isOutputFormula()
}

type OTrue struct{}
type OFalse struct{}
type OAnd struct{ L, R OutputFormula }
type OOr struct{ L, R OutputFormula }
type OImplies struct{ L, R OutputFormula }
type OIff struct{ L, R OutputFormula }
type ONot struct{ X OutputFormula }
type OExists struct {
	Var  string
	Body OutputFormula
}
type OForall struct {
	Var  string
	Body OutputFormula
}
type OLessEqual struct{ L, R string }
type OLetter struct {
	Var    string
	Letter rune
}

func (OTrue) isOutputFormula()      {}
func (OFalse) isOutputFormula()     {}
func (OAnd) isOutputFormula()       {}
func (OOr) isOutputFormula()        {}
func (OImplies) isOutputFormula()   {}
func (OIff) isOutputFormula()       {}
func (ONot) isOutputFormula()       {}
func (OExists) isOutputFormula()    {}
func (OForall) isOutputFormula()    {}
func (OLessEqual) isOutputFormula() {}
func (OLetter) isOutputFormula()    {}

// Pullback folds an output-level post-condition psi into an
// input-level two-sorted Formula using qf's universe/order/letter
// formulas, per spec.md §4.G. The translation is purely structural: no
// simplification is applied to either side.
func Pullback(psi OutputFormula, qf *Interpretation) Formula {
	switch e := psi.(type) {
	case OTrue:
		return FTrue{}
	case OFalse:
		return FFalse{}
	case OAnd:
		return FAnd{L: Pullback(e.L, qf), R: Pullback(e.R, qf)}
	case OOr:
		return FOr{L: Pullback(e.L, qf), R: Pullback(e.R, qf)}
	case OImplies:
		return FImplies{L: Pullback(e.L, qf), R: Pullback(e.R, qf)}
	case OIff:
		return FIff{L: Pullback(e.L, qf), R: Pullback(e.R, qf)}
	case ONot:
		return FNot{X: Pullback(e.X, qf)}
	case OExists:
		return pullbackQuantifier(e.Var, Pullback(e.Body, qf), qf, true)
	case OForall:
		return pullbackQuantifier(e.Var, Pullback(e.Body, qf), qf, false)
	case OLessEqual:
		return pullbackOrderAtom(e.L, e.R, qf)
	case OLetter:
		return pullbackLetterAtom(e.Var, e.Letter, qf)
	default:
		panic(fmt.Sprintf("fortransducer: unhandled OutputFormula %T", psi))
	}
}

// labelVarName names the Label-sort variable accompanying the
// position-tuple introduced for outer quantifier var.
func labelVarName(outerVar string) string {
	return outerVar + "_l"
}

// positionVarName is spec.md §4.G/§9's substitution rule: canonical
// xK becomes "<outerVar>_xK" regardless of whether the per-label
// formula originally called it xK or yK — only the numeric suffix
// survives the rename.
func positionVarName(outerVar, suffix string) string {
	return fmt.Sprintf("%s_x%s", outerVar, suffix)
}

func numericSuffix(name string) string {
	i := 0
	for i < len(name) && (name[i] < '0' || name[i] > '9') {
		i++
	}
	return name[i:]
}

// substitute renames every bound BVar/BLabel reference in expr via
// rename, leaving the T/F pseudo-variables untouched. Capture-free by
// construction: every renamed-to name is freshly minted per quantifier
// occurrence.
func substitute(expr BExpr, rename func(name string) string) BExpr {
	switch e := expr.(type) {
	case BConst:
		return e
	case BVar:
		if e.Name == "T" || e.Name == "F" {
			return e
		}
		return BVar{Name: rename(e.Name)}
	case BStr:
		return e
	case BLabel:
		return BLabel{Var: rename(e.Var)}
	case BCmp:
		return BCmp{Op: e.Op, Left: substitute(e.Left, rename), Right: substitute(e.Right, rename)}
	case BNot:
		return BNot{X: substitute(e.X, rename)}
	case BAnd:
		return BAnd{L: substitute(e.L, rename), R: substitute(e.R, rename)}
	case BOr:
		return BOr{L: substitute(e.L, rename), R: substitute(e.R, rename)}
	default:
		panic(fmt.Sprintf("fortransducer: unhandled BExpr %T", expr))
	}
}

func renameSingle(outerVar string) func(string) string {
	return func(name string) string { return positionVarName(outerVar, numericSuffix(name)) }
}

// renameOrder substitutes an order(ℓ,ℓ') formula's two tuples (locally
// named x1..xk and y1..ym) for the outer quantifier variables bound to
// the x-side and y-side of a pulled-back x<=y atom.
func renameOrder(xOuter, yOuter string) func(string) string {
	return func(name string) string {
		suffix := numericSuffix(name)
		if strings.HasPrefix(name, "x") {
			return positionVarName(xOuter, suffix)
		}
		return positionVarName(yOuter, suffix)
	}
}

// universeDisj builds universe_disj(x, ℓ_x) of spec.md §4.G:
// ⋁_ℓ (ℓ_x = ℓ ∧ substitute(universe(ℓ), x -> x_i)).
func universeDisj(outerVar string, qf *Interpretation) Formula {
	lvar := labelVarName(outerVar)
	var disj Formula
	for i, l := range qf.Labels {
		clause := FAnd{
			L: FEqualConstant{Var: lvar, Label: l.ID},
			R: bexprToFormula(substitute(l.Universe, renameSingle(outerVar))),
		}
		if i == 0 {
			disj = clause
		} else {
			disj = FOr{L: disj, R: clause}
		}
	}
	if disj == nil {
		return FFalse{}
	}
	return disj
}

func pullbackQuantifier(outerVar string, body Formula, qf *Interpretation, exist bool) Formula {
	core := FAnd{L: universeDisj(outerVar, qf), R: body}
	var coreF Formula = core
	if !exist {
		coreF = FImplies{L: universeDisj(outerVar, qf), R: body}
	}

	n := qf.MaxArity()
	result := coreF
	for i := n; i >= 1; i-- {
		name := positionVarName(outerVar, fmt.Sprintf("%d", i))
		if exist {
			result = FExists{Var: name, Sort: SortPosition, Body: result}
		} else {
			result = FForall{Var: name, Sort: SortPosition, Body: result}
		}
	}
	lvar := labelVarName(outerVar)
	if exist {
		return FExists{Var: lvar, Sort: SortLabel, Body: result}
	}
	return FForall{Var: lvar, Sort: SortLabel, Body: result}
}

// pullbackOrderAtom translates an output-level x<=y atom per spec.md
// §4.G: ⋁_{ℓ1,ℓ2} (ℓ_x=ℓ1 ∧ ℓ_y=ℓ2 ∧ substitute(order(ℓ1,ℓ2), x->x_i, y->y_j)).
func pullbackOrderAtom(xVar, yVar string, qf *Interpretation) Formula {
	lx, ly := labelVarName(xVar), labelVarName(yVar)
	var disj Formula
	first := true
	for _, li := range qf.Labels {
		for _, lj := range qf.Labels {
			formula, ok := qf.Order[LabelPair{li.ID, lj.ID}]
			if !ok {
				continue
			}
			clause := FAnd{
				L: FEqualConstant{Var: lx, Label: li.ID},
				R: FAnd{
					L: FEqualConstant{Var: ly, Label: lj.ID},
					R: bexprToFormula(substitute(formula, renameOrder(xVar, yVar))),
				},
			}
			if first {
				disj, first = clause, false
			} else {
				disj = FOr{L: disj, R: clause}
			}
		}
	}
	if disj == nil {
		return FFalse{}
	}
	return disj
}

// pullbackLetterAtom translates an output-level a(x) atom per spec.md
// §4.G: ⋁_ℓ (ℓ_x=ℓ ∧ substitute(letter(ℓ,a), x->x_i)).
func pullbackLetterAtom(outerVar string, letter rune, qf *Interpretation) Formula {
	lvar := labelVarName(outerVar)
	var disj Formula
	first := true
	for _, l := range qf.Labels {
		formula, ok := l.Letters[letter]
		if !ok {
			continue
		}
		clause := FAnd{
			L: FEqualConstant{Var: lvar, Label: l.ID},
			R: bexprToFormula(substitute(formula, renameSingle(outerVar))),
		}
		if first {
			disj, first = clause, false
		} else {
			disj = FOr{L: disj, R: clause}
		}
	}
	if disj == nil {
		return FFalse{}
	}
	return disj
}

// bexprToFormula converts a (already position-substituted) BExpr into
// the two-sorted Formula IR. After substitution every BVar names a
// Position-sort variable and every BLabel/BStr equality is a letter
// predicate, so this is a total function over the BExpr shapes the
// labeler and order synthesizer ever produce.
func bexprToFormula(expr BExpr) Formula {
	switch e := expr.(type) {
	case BConst:
		if e.Value {
			return FTrue{}
		}
		return FFalse{}
	case BCmp:
		return bexprCmpToFormula(e)
	case BNot:
		return FNot{X: bexprToFormula(e.X)}
	case BAnd:
		return FAnd{L: bexprToFormula(e.L), R: bexprToFormula(e.R)}
	case BOr:
		return FOr{L: bexprToFormula(e.L), R: bexprToFormula(e.R)}
	default:
		panic(fmt.Sprintf("fortransducer: %T is not a formula on its own (bare position/letter value)", expr))
	}
}

func bexprCmpToFormula(e BCmp) Formula {
	if lbl, lit, ok := asLabelLiteral(e.Left, e.Right); ok {
		letter := rune(0)
		if len(lit.Value) > 0 {
			letter = []rune(lit.Value)[0]
		}
		atom := Formula(FLetterAtPos{Var: lbl.Var, Letter: letter})
		switch e.Op {
		case Eq:
			return atom
		case Ne:
			return FNot{X: atom}
		default:
			panic(fmt.Sprintf("fortransducer: invalid label/literal comparison operator %s", e.Op))
		}
	}

	l, lok := e.Left.(BVar)
	r, rok := e.Right.(BVar)
	if !lok || !rok {
		panic(fmt.Sprintf("fortransducer: comparison operands are not both positions: %s", FormatBExpr(e)))
	}
	switch e.Op {
	case Eq:
		return FEqual{Sort: SortPosition, L: l.Name, R: r.Name}
	case Ne:
		return FNot{X: FEqual{Sort: SortPosition, L: l.Name, R: r.Name}}
	case Le:
		return FLessEqual{L: l.Name, R: r.Name}
	case Ge:
		return FLessEqual{L: r.Name, R: l.Name}
	case Lt:
		return FNot{X: FLessEqual{L: r.Name, R: l.Name}}
	case Gt:
		return FNot{X: FLessEqual{L: l.Name, R: r.Name}}
	default:
		panic(fmt.Sprintf("fortransducer: unhandled comparison operator %s", e.Op))
	}
}

func asLabelLiteral(l, r BExpr) (BLabel, BStr, bool) {
	if lb, ok := l.(BLabel); ok {
		if st, ok2 := r.(BStr); ok2 {
			return lb, st, true
		}
	}
	if lb, ok := r.(BLabel); ok {
		if st, ok2 := l.(BStr); ok2 {
			return lb, st, true
		}
	}
	return BLabel{}, BStr{}, false
}
