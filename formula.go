package fortransducer

import "fmt"

// Sort distinguishes the two sorts of the pullback target logic
// (spec.md §3/§4.F): Position (an input-word index) and Label (a
// finite enumerated tag, one value per compiled label).
type Sort int

const (
	SortPosition Sort = iota
	SortLabel
)

func (s Sort) String() string {
	if s == SortLabel {
		return "label"
	}
	return "position"
}

// Formula is the two-sorted first-order formula IR of spec.md §4.F.
type Formula interface {
	isFormula()
}

type FTrue struct{}
type FFalse struct{}
type FAnd struct{ L, R Formula }
type FOr struct{ L, R Formula }
type FImplies struct{ L, R Formula }
type FIff struct{ L, R Formula }
type FNot struct{ X Formula }
type FExists struct {
	Var  string
	Sort Sort
	Body Formula
}
type FForall struct {
	Var  string
	Sort Sort
	Body Formula
}
type FEqual struct {
	Sort Sort
	L, R string
}
type FLessEqual struct{ L, R string }
type FLetterAtPos struct {
	Var    string
	Letter rune
}
type FEqualConstant struct {
	Var   string
	Label int
}

func (FTrue) isFormula()          {}
func (FFalse) isFormula()         {}
func (FAnd) isFormula()           {}
func (FOr) isFormula()            {}
func (FImplies) isFormula()       {}
func (FIff) isFormula()           {}
func (FNot) isFormula()           {}
func (FExists) isFormula()        {}
func (FForall) isFormula()        {}
func (FEqual) isFormula()         {}
func (FLessEqual) isFormula()     {}
func (FLetterAtPos) isFormula()   {}
func (FEqualConstant) isFormula() {}

// Algebra is the leaf-operation parameter of the generic catamorphism
// Fold: one function per Formula constructor, producing a result of
// type T from its (already-folded) children. The three solver emitters
// are instances of this fold. Pullback does not use it: it recurses
// over OutputFormula and BExpr directly.
type Algebra[T any] struct {
	True          func() T
	False         func() T
	And           func(l, r T) T
	Or            func(l, r T) T
	Implies       func(l, r T) T
	Iff           func(l, r T) T
	Not           func(x T) T
	Exists        func(v string, sort Sort, body T) T
	Forall        func(v string, sort Sort, body T) T
	Equal         func(sort Sort, l, r string) T
	LessEqual     func(l, r string) T
	LetterAtPos   func(v string, letter rune) T
	EqualConstant func(v string, label int) T
}

// Fold is the single-pass bottom-up catamorphism over Formula.
func Fold[T any](f Formula, alg Algebra[T]) T {
	switch e := f.(type) {
	case FTrue:
		return alg.True()
	case FFalse:
		return alg.False()
	case FAnd:
		return alg.And(Fold(e.L, alg), Fold(e.R, alg))
	case FOr:
		return alg.Or(Fold(e.L, alg), Fold(e.R, alg))
	case FImplies:
		return alg.Implies(Fold(e.L, alg), Fold(e.R, alg))
	case FIff:
		return alg.Iff(Fold(e.L, alg), Fold(e.R, alg))
	case FNot:
		return alg.Not(Fold(e.X, alg))
	case FExists:
		return alg.Exists(e.Var, e.Sort, Fold(e.Body, alg))
	case FForall:
		return alg.Forall(e.Var, e.Sort, Fold(e.Body, alg))
	case FEqual:
		return alg.Equal(e.Sort, e.L, e.R)
	case FLessEqual:
		return alg.LessEqual(e.L, e.R)
	case FLetterAtPos:
		return alg.LetterAtPos(e.Var, e.Letter)
	case FEqualConstant:
		return alg.EqualConstant(e.Var, e.Label)
	default:
		panic(fmt.Sprintf("fortransducer: unhandled Formula %T", f))
	}
}

// letterIdent renders an alphabet symbol as a solver-safe identifier
// fragment: ASCII letters/digits pass through, anything else (e.g. the
// '#' used throughout spec.md's scenarios) becomes a codepoint escape.
func letterIdent(letter rune) string {
	if (letter >= 'a' && letter <= 'z') || (letter >= 'A' && letter <= 'Z') || (letter >= '0' && letter <= '9') {
		return string(letter)
	}
	return fmt.Sprintf("u%d", letter)
}

func labelIdent(label int) string {
	return fmt.Sprintf("l%d", label)
}

// ToAltErgo renders f in Alt-Ergo's native surface syntax (spec.md §4.H).
func ToAltErgo(f Formula) string {
	return Fold(f, Algebra[string]{
		True:  func() string { return "true" },
		False: func() string { return "false" },
		And:   func(l, r string) string { return fmt.Sprintf("(%s and %s)", l, r) },
		Or:    func(l, r string) string { return fmt.Sprintf("(%s or %s)", l, r) },
		Implies: func(l, r string) string {
			return fmt.Sprintf("(%s -> %s)", l, r)
		},
		Iff: func(l, r string) string { return fmt.Sprintf("(%s <-> %s)", l, r) },
		Not: func(x string) string { return fmt.Sprintf("(not %s)", x) },
		Exists: func(v string, sort Sort, body string) string {
			if sort == SortLabel {
				return fmt.Sprintf("(exists %s:label. %s)", v, body)
			}
			return fmt.Sprintf("(exists %s:int. (0 <= %s and %s < len and %s))", v, v, v, body)
		},
		Forall: func(v string, sort Sort, body string) string {
			if sort == SortLabel {
				return fmt.Sprintf("(forall %s:label. %s)", v, body)
			}
			return fmt.Sprintf("(forall %s:int. ((0 <= %s and %s < len) -> %s))", v, v, v, body)
		},
		Equal:       func(sort Sort, l, r string) string { return fmt.Sprintf("%s = %s", l, r) },
		LessEqual:   func(l, r string) string { return fmt.Sprintf("%s <= %s", l, r) },
		LetterAtPos: func(v string, letter rune) string { return fmt.Sprintf("is_letter_%s(%s)", letterIdent(letter), v) },
		EqualConstant: func(v string, label int) string {
			return fmt.Sprintf("%s = %s", v, labelIdent(label))
		},
	})
}

// ToSMTLib renders f as an SMT-LIB term, for Z3 and CVC5 (spec.md §4.H).
func ToSMTLib(f Formula) string {
	return Fold(f, Algebra[string]{
		True:  func() string { return "true" },
		False: func() string { return "false" },
		And:   func(l, r string) string { return fmt.Sprintf("(and %s %s)", l, r) },
		Or:    func(l, r string) string { return fmt.Sprintf("(or %s %s)", l, r) },
		Implies: func(l, r string) string {
			return fmt.Sprintf("(=> %s %s)", l, r)
		},
		Iff: func(l, r string) string { return fmt.Sprintf("(= %s %s)", l, r) },
		Not: func(x string) string { return fmt.Sprintf("(not %s)", x) },
		Exists: func(v string, sort Sort, body string) string {
			if sort == SortLabel {
				return fmt.Sprintf("(exists ((%s Label)) %s)", v, body)
			}
			return fmt.Sprintf("(exists ((%s Int)) (and (<= 0 %s) (< %s len) %s))", v, v, v, body)
		},
		Forall: func(v string, sort Sort, body string) string {
			if sort == SortLabel {
				return fmt.Sprintf("(forall ((%s Label)) %s)", v, body)
			}
			return fmt.Sprintf("(forall ((%s Int)) (=> (and (<= 0 %s) (< %s len)) %s))", v, v, v, body)
		},
		Equal:       func(sort Sort, l, r string) string { return fmt.Sprintf("(= %s %s)", l, r) },
		LessEqual:   func(l, r string) string { return fmt.Sprintf("(<= %s %s)", l, r) },
		LetterAtPos: func(v string, letter rune) string { return fmt.Sprintf("(= (word %s) letter_%s)", v, letterIdent(letter)) },
		EqualConstant: func(v string, label int) string {
			return fmt.Sprintf("(= %s %s)", v, labelIdent(label))
		},
	})
}

// ToMona renders f in MONA's M2L-Str surface syntax (spec.md §4.H).
// Positions live in the word-set W, labels in the disjoint set L.
func ToMona(f Formula) string {
	return Fold(f, Algebra[string]{
		True:  func() string { return "true" },
		False: func() string { return "false" },
		And:   func(l, r string) string { return fmt.Sprintf("(%s & %s)", l, r) },
		Or:    func(l, r string) string { return fmt.Sprintf("(%s | %s)", l, r) },
		Implies: func(l, r string) string {
			return fmt.Sprintf("(%s => %s)", l, r)
		},
		Iff: func(l, r string) string { return fmt.Sprintf("(%s <=> %s)", l, r) },
		Not: func(x string) string { return fmt.Sprintf("~(%s)", x) },
		Exists: func(v string, sort Sort, body string) string {
			set := "W"
			if sort == SortLabel {
				set = "L"
			}
			return fmt.Sprintf("ex1 %s: (%s in %s) & (%s)", v, v, set, body)
		},
		Forall: func(v string, sort Sort, body string) string {
			set := "W"
			if sort == SortLabel {
				set = "L"
			}
			return fmt.Sprintf("all1 %s: (%s in %s) => (%s)", v, v, set, body)
		},
		Equal:       func(sort Sort, l, r string) string { return fmt.Sprintf("%s = %s", l, r) },
		LessEqual:   func(l, r string) string { return fmt.Sprintf("%s <= %s", l, r) },
		LetterAtPos: func(v string, letter rune) string { return fmt.Sprintf("%s in Letter%s", v, letterIdent(letter)) },
		EqualConstant: func(v string, label int) string {
			return fmt.Sprintf("%s in %s", v, labelIdent(label))
		},
	})
}
