package fortransducer

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Interpretation is the QF interpretation bundle of spec.md §3/§4.E:
// labels (with their arities, universe, and letter formulas) plus one
// order formula per ordered pair of labels. It is built once per
// compiled program and reused across Evaluate/Pullback calls.
type Interpretation struct {
	Alphabet []rune
	Labels   []*Label
	Order    map[LabelPair]BExpr
}

// Compile runs the labeler and order synthesizer over prog and
// bundles the result into a QF interpretation (spec.md components C+D -> E).
func Compile(prog *Program, alphabet []rune) *Interpretation {
	labels := NewLabeler(alphabet).Label(prog)
	return &Interpretation{
		Alphabet: alphabet,
		Labels:   labels,
		Order:    SynthesizeOrder(labels),
	}
}

// MaxArity returns the largest arity across all labels (0 if there are
// none), used by pullback.go to size the position-variable tuple it
// introduces per output quantifier.
func (qf *Interpretation) MaxArity() int {
	max := 0
	for _, l := range qf.Labels {
		if l.Arity > max {
			max = l.Arity
		}
	}
	return max
}

// Validate checks the "missing formula" error class of spec.md §7:
// every label has a universe formula and a letter formula per alphabet
// symbol, and every ordered pair of labels has an order formula. It
// only checks that the formulas are present; it does not check which
// variables they mention.
func (qf *Interpretation) Validate() error {
	for _, l := range qf.Labels {
		if l.Universe == nil {
			return fmt.Errorf("%w: label %d", ErrMissingUniverseFormula, l.ID)
		}
		for _, a := range qf.Alphabet {
			if _, ok := l.Letters[a]; !ok {
				return fmt.Errorf("%w: label %d missing letter formula for %q", ErrNoLetter, l.ID, a)
			}
		}
	}
	for _, li := range qf.Labels {
		for _, lj := range qf.Labels {
			if _, ok := qf.Order[LabelPair{li.ID, lj.ID}]; !ok {
				return fmt.Errorf("%w: (%d,%d)", ErrMissingOrderFormula, li.ID, lj.ID)
			}
		}
	}
	return nil
}

// outputPos is one surviving (label, position-tuple) pair, about to be
// sorted and resolved to a letter.
type outputPos struct {
	label *Label
	tuple []int
}

// Evaluate runs the enumerate/filter/sort/resolve pipeline of spec.md
// §4.E over word and returns the produced output word.
func (qf *Interpretation) Evaluate(word string) (string, error) {
	var survivors []outputPos
	for _, l := range qf.Labels {
		for _, t := range cartesian(len(word), l.Arity) {
			ok, err := Eval(l.Universe, word, envFromTuple(t))
			if err != nil {
				return "", err
			}
			if ok {
				survivors = append(survivors, outputPos{label: l, tuple: t})
			}
		}
	}

	var sortErr error
	sort.SliceStable(survivors, func(i, j int) bool {
		less, err := qf.less(survivors[i], survivors[j], word)
		if err != nil {
			sortErr = err
			return false
		}
		return less
	})
	if sortErr != nil {
		return "", sortErr
	}

	var sb strings.Builder
	for _, s := range survivors {
		letter, err := qf.resolveLetter(s, word)
		if err != nil {
			return "", err
		}
		sb.WriteRune(letter)
	}
	return sb.String(), nil
}

// less implements the sort comparator of spec.md §4.E: order as the
// primary key, (label ID, lexicographic tuple) as the deterministic
// tie-break for positions the order formula leaves equivalent.
func (qf *Interpretation) less(a, b outputPos, word string) (bool, error) {
	ab, err := qf.orderHolds(a, b, word)
	if err != nil {
		return false, err
	}
	ba, err := qf.orderHolds(b, a, word)
	if err != nil {
		return false, err
	}
	if ab && !ba {
		return true, nil
	}
	if ba && !ab {
		return false, nil
	}
	if a.label.ID != b.label.ID {
		return a.label.ID < b.label.ID, nil
	}
	return lexLess(a.tuple, b.tuple), nil
}

// orderHolds evaluates order(first.label, second.label) with first's
// tuple bound to x1.. and second's tuple bound to y1...
func (qf *Interpretation) orderHolds(first, second outputPos, word string) (bool, error) {
	formula, ok := qf.Order[LabelPair{first.label.ID, second.label.ID}]
	if !ok {
		return false, fmt.Errorf("%w: (%d,%d)", ErrMissingOrderFormula, first.label.ID, second.label.ID)
	}
	env := make(Env, len(first.tuple)+len(second.tuple))
	for i, p := range first.tuple {
		env[canonicalVarName(i+1)] = p
	}
	for j, p := range second.tuple {
		env[fmt.Sprintf("y%d", j+1)] = p
	}
	return Eval(formula, word, env)
}

func (qf *Interpretation) resolveLetter(s outputPos, word string) (rune, error) {
	env := envFromTuple(s.tuple)
	var found rune
	count := 0
	for _, a := range qf.Alphabet {
		formula, ok := s.label.Letters[a]
		if !ok {
			continue
		}
		matches, err := Eval(formula, word, env)
		if err != nil {
			return 0, err
		}
		if matches {
			count++
			found = a
		}
	}
	switch {
	case count == 0:
		return 0, fmt.Errorf("%w: label %d tuple %v", ErrNoLetter, s.label.ID, s.tuple)
	case count > 1:
		return 0, fmt.Errorf("%w: label %d tuple %v", ErrTooManyLetters, s.label.ID, s.tuple)
	default:
		return found, nil
	}
}

func envFromTuple(t []int) Env {
	env := make(Env, len(t))
	for i, p := range t {
		env[canonicalVarName(i+1)] = p
	}
	return env
}

func lexLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// cartesian enumerates every tuple in {0,...,n-1}^arity in
// lexicographic order by tuple index (spec.md §4.E determinism note,
// §9 design note on laziness — this implementation materializes the
// full product, which is correct but not lazy).
func cartesian(n, arity int) [][]int {
	if arity == 0 {
		return [][]int{{}}
	}
	var out [][]int
	var rec func(prefix []int)
	rec = func(prefix []int) {
		if len(prefix) == arity {
			out = append(out, prefix)
			return
		}
		for p := 0; p < n; p++ {
			next := make([]int, len(prefix)+1)
			copy(next, prefix)
			next[len(prefix)] = p
			rec(next)
		}
	}
	rec([]int{})
	return out
}

// Describe writes a human-readable dump of qf, ported from the
// reference prototype's print_interpretation (qf_interpretation.rs).
func (qf *Interpretation) Describe(w io.Writer) {
	fmt.Fprintf(w, "Labels: %d\n", len(qf.Labels))
	for _, l := range qf.Labels {
		fmt.Fprintf(w, "  %d: path=%v arity=%d dirs=%v universe=%s\n", l.ID, l.Path, l.Arity, l.Dirs, FormatBExpr(l.Universe))
	}
	fmt.Fprintln(w, "\nLetter formulas:")
	for _, l := range qf.Labels {
		for _, a := range qf.Alphabet {
			fmt.Fprintf(w, "  label %d, %q: %s\n", l.ID, a, FormatBExpr(l.Letters[a]))
		}
	}
	fmt.Fprintln(w, "\nOrder formulas:")
	for _, li := range qf.Labels {
		for _, lj := range qf.Labels {
			fmt.Fprintf(w, "  %d <= %d: %s\n", li.ID, lj.ID, FormatBExpr(qf.Order[LabelPair{li.ID, lj.ID}]))
		}
	}
}
