package fortransducer

import "fmt"

// Label is a print site, identified by its root-to-leaf path through
// the statement tree (spec.md §3/§4.C, GLOSSARY). Labels are produced
// by Labeler.Label in program pre-order, so a Label's ID also doubles
// as its textual program order — order.go relies on that.
type Label struct {
	ID int

	// Path is the full statement-index path from the program root to
	// this Print node (including If and For ancestors). It exists for
	// diagnostics only (Describe); order synthesis does not use it.
	Path []int

	// ForIDs is the sequence of unique for-node identities enclosing
	// this label, outermost first. Two labels share the same for-loop
	// instance at depth k iff their ForIDs agree up to k — this is the
	// structural identity order.go's common-prefix computation needs.
	ForIDs []int

	// Dirs[k] is the direction of the for-loop identified by ForIDs[k].
	Dirs []Direction

	// Arity is len(ForIDs) == len(Dirs): the number of enclosing loops.
	Arity int

	// Universe is the canonicalized (x1..xArity) conjunction of every
	// if-guard on the path from root to this print. BConst{true} if none.
	Universe BExpr

	// Letters holds, for every alphabet symbol, the canonicalized
	// (x1..xArity) predicate deciding whether this label emits that
	// symbol for a given tuple.
	Letters map[rune]BExpr
}

func (l *Label) String() string {
	return fmt.Sprintf("[%v]", l.Path)
}

// forFrame tracks one currently-open for-loop during the labeling walk.
type forFrame struct {
	id        int
	sourceVar string
	dir       Direction
}

// Labeler walks a parsed Program and assigns labels, canonicalizing
// every per-label formula to x1..xArity as it goes. emitLabel builds a
// fresh canonical renaming map for each label from its enclosing
// loops; the Labeler keeps no renaming state across labels.
type Labeler struct {
	Alphabet []rune

	nextForID int
	labels    []*Label
}

// NewLabeler builds a Labeler for the given output alphabet.
func NewLabeler(alphabet []rune) *Labeler {
	return &Labeler{Alphabet: alphabet}
}

// Label walks prog and returns one Label per Print site, in program
// pre-order (so Label[i].ID == i).
func (lb *Labeler) Label(prog *Program) []*Label {
	lb.labels = nil
	lb.nextForID = 0
	lb.walk(prog.Stmts, nil, nil, BConst{Value: true})
	return lb.labels
}

func (lb *Labeler) walk(stmts []Stmt, path []int, forStack []forFrame, guard BExpr) {
	for idx, stmt := range stmts {
		childPath := append(append([]int{}, path...), idx)
		switch s := stmt.(type) {
		case PrintStmt:
			lb.emitLabel(s, childPath, forStack, guard)
		case ForStmt:
			frame := forFrame{id: lb.nextForID, sourceVar: s.Var, dir: s.Dir}
			lb.nextForID++
			lb.walk(s.Body, childPath, append(forStack, frame), guard)
		case IfStmt:
			lb.walk(s.Body, childPath, forStack, conjoin(guard, s.Cond))
		default:
			panic(fmt.Sprintf("fortransducer: unhandled Stmt %T", stmt))
		}
	}
}

// conjoin folds cond into guard, skipping the redundant "true and" when
// guard is still the initial sentinel. Deliberately does not simplify
// any further: formula optimization is an explicit non-goal.
func conjoin(guard BExpr, cond BExpr) BExpr {
	if c, ok := guard.(BConst); ok && c.Value {
		return cond
	}
	return BAnd{L: guard, R: cond}
}

func (lb *Labeler) emitLabel(print PrintStmt, path []int, forStack []forFrame, guard BExpr) {
	arity := len(forStack)
	forIDs := make([]int, arity)
	dirs := make([]Direction, arity)
	rename := make(map[string]string, arity)
	for i, f := range forStack {
		forIDs[i] = f.id
		dirs[i] = f.dir
		rename[f.sourceVar] = canonicalVarName(i + 1)
	}

	letters := make(map[rune]BExpr, len(lb.Alphabet))
	for _, a := range lb.Alphabet {
		letters[a] = canonicalize(letterFormula(print.Expr, a), rename)
	}

	lb.labels = append(lb.labels, &Label{
		ID:       len(lb.labels),
		Path:     path,
		ForIDs:   forIDs,
		Dirs:     dirs,
		Arity:    arity,
		Universe: canonicalize(guard, rename),
		Letters:  letters,
	})
}

func canonicalVarName(i int) string {
	return fmt.Sprintf("x%d", i)
}

// letterFormula builds the (pre-canonicalization) BExpr deciding
// whether print emits letter a, per spec.md §4.C:
//   - Str(s)   -> T iff a occurs in s, else F
//   - Label(v) -> the predicate "the letter at v equals a", represented
//     directly as Equal(Label(v), Str(a)) (resolving Open Question (a)
//     without a stringly-typed "a(v)" sentinel).
func letterFormula(expr PExpr, a rune) BExpr {
	switch e := expr.(type) {
	case StrExpr:
		for _, r := range e.Value {
			if r == a {
				return BConst{Value: true}
			}
		}
		return BConst{Value: false}
	case LabelExpr:
		return BCmp{Op: Eq, Left: BLabel{Var: e.Var}, Right: BStr{Value: string(a)}}
	default:
		panic(fmt.Sprintf("fortransducer: unhandled PExpr %T", expr))
	}
}

// canonicalize rewrites every BVar/BLabel reference in expr through
// rename, leaving anything not in rename (the T/F pseudo-variables)
// untouched. Bound names are freshly generated per label, so this
// substitution is capture-free by construction (spec.md §9).
func canonicalize(expr BExpr, rename map[string]string) BExpr {
	switch e := expr.(type) {
	case BConst:
		return e
	case BVar:
		if n, ok := rename[e.Name]; ok {
			return BVar{Name: n}
		}
		return e
	case BStr:
		return e
	case BLabel:
		if n, ok := rename[e.Var]; ok {
			return BLabel{Var: n}
		}
		return e
	case BCmp:
		return BCmp{Op: e.Op, Left: canonicalize(e.Left, rename), Right: canonicalize(e.Right, rename)}
	case BNot:
		return BNot{X: canonicalize(e.X, rename)}
	case BAnd:
		return BAnd{L: canonicalize(e.L, rename), R: canonicalize(e.R, rename)}
	case BOr:
		return BOr{L: canonicalize(e.L, rename), R: canonicalize(e.R, rename)}
	default:
		panic(fmt.Sprintf("fortransducer: unhandled BExpr %T", expr))
	}
}
