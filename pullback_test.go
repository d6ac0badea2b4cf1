package fortransducer

import (
	"strings"
	"testing"
)

func TestNumericSuffix(t *testing.T) {
	cases := map[string]string{"x1": "1", "y12": "12", "x": ""}
	for in, want := range cases {
		if got := numericSuffix(in); got != want {
			t.Errorf("numericSuffix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenameSingleIgnoresOriginalPrefix(t *testing.T) {
	rename := renameSingle("outer")
	if got := rename("x3"); got != "outer_x3" {
		t.Errorf("renameSingle x3 = %q, want outer_x3", got)
	}
	if got := rename("y3"); got != "outer_x3" {
		t.Errorf("renameSingle y3 = %q, want outer_x3 (prefix letter is discarded)", got)
	}
}

func TestRenameOrderSplitsByPrefix(t *testing.T) {
	rename := renameOrder("x", "y")
	if got := rename("x1"); got != "x_x1" {
		t.Errorf("renameOrder x1 = %q, want x_x1", got)
	}
	if got := rename("y2"); got != "y_x2" {
		t.Errorf("renameOrder y2 = %q, want y_x2", got)
	}
}

func TestSubstituteRewritesAllPositionReferences(t *testing.T) {
	expr := BCmp{Op: Eq, Left: BLabel{Var: "x1"}, Right: BStr{Value: "a"}}
	got := substitute(expr, renameSingle("v"))
	want := BCmp{Op: Eq, Left: BLabel{Var: "v_x1"}, Right: BStr{Value: "a"}}
	if got != want {
		t.Errorf("substitute(letter formula) = %#v, want %#v", got, want)
	}
}

func TestBexprToFormulaPositionComparisons(t *testing.T) {
	cases := []struct {
		op   CmpOp
		want Formula
	}{
		{Eq, FEqual{Sort: SortPosition, L: "a", R: "b"}},
		{Ne, FNot{X: FEqual{Sort: SortPosition, L: "a", R: "b"}}},
		{Le, FLessEqual{L: "a", R: "b"}},
		{Ge, FLessEqual{L: "b", R: "a"}},
		{Lt, FNot{X: FLessEqual{L: "b", R: "a"}}},
		{Gt, FNot{X: FLessEqual{L: "a", R: "b"}}},
	}
	for _, c := range cases {
		got := bexprToFormula(BCmp{Op: c.op, Left: BVar{Name: "a"}, Right: BVar{Name: "b"}})
		if got != c.want {
			t.Errorf("bexprToFormula(a %s b) = %#v, want %#v", c.op, got, c.want)
		}
	}
}

func TestBexprToFormulaLetterEquality(t *testing.T) {
	got := bexprToFormula(BCmp{Op: Eq, Left: BLabel{Var: "v"}, Right: BStr{Value: "a"}})
	want := Formula(FLetterAtPos{Var: "v", Letter: 'a'})
	if got != want {
		t.Errorf("bexprToFormula(label==literal) = %#v, want %#v", got, want)
	}
	// literal == label (reversed operand order) must be recognized too.
	got = bexprToFormula(BCmp{Op: Ne, Left: BStr{Value: "a"}, Right: BLabel{Var: "v"}})
	wantNe := Formula(FNot{X: FLetterAtPos{Var: "v", Letter: 'a'}})
	if got != wantNe {
		t.Errorf("bexprToFormula(literal!=label) = %#v, want %#v", got, wantNe)
	}
}

// S6 — pullback over the identity program: the last letter is 'a'.
func TestScenarioPullbackIdentity(t *testing.T) {
	qf := compileOrFatal(t, `for i in 0..n { print(i.label) }`, "a#")
	psi, err := ParsePostCondition("s6.post", `exists x. (forall y. y <= x) and letter(x, 'a')`)
	if err != nil {
		t.Fatalf("ParsePostCondition: %v", err)
	}
	f := Pullback(psi, qf)

	rendered := ToSMTLib(f)
	for _, want := range []string{"exists", "forall", "letter_a", "Label"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("pulled-back rendering %q missing %q", rendered, want)
		}
	}
}

func TestPullbackQuantifierWrapsLabelAndPositionVars(t *testing.T) {
	qf := compileOrFatal(t, `for i in 0..n { for j in 0..n { print(i.label) } }`, "a")
	got := Pullback(OExists{Var: "x", Body: OLetter{Var: "x", Letter: 'a'}}, qf)

	outerLabel, ok := got.(FExists)
	if !ok || outerLabel.Sort != SortLabel || outerLabel.Var != "x_l" {
		t.Fatalf("outermost quantifier = %#v, want FExists{Var:x_l, Sort:Label}", got)
	}
	inner, ok := outerLabel.Body.(FExists)
	if !ok || inner.Sort != SortPosition || inner.Var != "x_x1" {
		t.Fatalf("next quantifier = %#v, want FExists{Var:x_x1, Sort:Position}", outerLabel.Body)
	}
	inner2, ok := inner.Body.(FExists)
	if !ok || inner2.Sort != SortPosition || inner2.Var != "x_x2" {
		t.Fatalf("innermost quantifier = %#v, want FExists{Var:x_x2, Sort:Position}", inner.Body)
	}
}
