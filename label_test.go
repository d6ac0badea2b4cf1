package fortransducer

import "testing"

func TestLabelerAssignsPreOrderIDs(t *testing.T) {
	prog, err := ParseString("t.ft", `
		for i in 0..n {
			print(i.label)
			if i.label == "a" {
				print("a")
			}
		}
		print("z")
	`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	labels := NewLabeler([]rune("az")).Label(prog)
	if len(labels) != 3 {
		t.Fatalf("len(labels) = %d, want 3", len(labels))
	}
	for i, l := range labels {
		if l.ID != i {
			t.Errorf("labels[%d].ID = %d, want %d", i, l.ID, i)
		}
	}
	if labels[0].Arity != 1 || labels[1].Arity != 1 {
		t.Errorf("labels[0].Arity=%d labels[1].Arity=%d, want 1,1", labels[0].Arity, labels[1].Arity)
	}
	if labels[2].Arity != 0 {
		t.Errorf("labels[2].Arity = %d, want 0", labels[2].Arity)
	}
	if labels[0].ForIDs[0] != labels[1].ForIDs[0] {
		t.Errorf("labels[0] and labels[1] should share the same for-node id, got %v and %v",
			labels[0].ForIDs, labels[1].ForIDs)
	}
}

func TestLabelerCanonicalizesUniverseAndLetters(t *testing.T) {
	prog, err := ParseString("t.ft", `
		for k in 0..n {
			if k.label == "a" {
				print(k.label)
			}
		}
	`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	labels := NewLabeler([]rune("ab")).Label(prog)
	if len(labels) != 1 {
		t.Fatalf("len(labels) = %d, want 1", len(labels))
	}
	l := labels[0]
	want := BCmp{Op: Eq, Left: BLabel{Var: "x1"}, Right: BStr{Value: "a"}}
	if l.Universe != want {
		t.Errorf("Universe = %#v, want %#v (source var %q canonicalized to x1)", l.Universe, want, "k")
	}
	wantLetterA := BCmp{Op: Eq, Left: BLabel{Var: "x1"}, Right: BStr{Value: "a"}}
	if l.Letters['a'] != wantLetterA {
		t.Errorf("Letters['a'] = %#v, want %#v", l.Letters['a'], wantLetterA)
	}
	wantLetterB := BCmp{Op: Eq, Left: BLabel{Var: "x1"}, Right: BStr{Value: "b"}}
	if l.Letters['b'] != wantLetterB {
		t.Errorf("Letters['b'] = %#v, want %#v", l.Letters['b'], wantLetterB)
	}
}

func TestLetterFormulaForStringLiteral(t *testing.T) {
	got := letterFormula(StrExpr{Value: "ab"}, 'a')
	if got != (BConst{Value: true}) {
		t.Errorf("letterFormula(Str(ab), 'a') = %#v, want BConst{true}", got)
	}
	got = letterFormula(StrExpr{Value: "ab"}, 'c')
	if got != (BConst{Value: false}) {
		t.Errorf("letterFormula(Str(ab), 'c') = %#v, want BConst{false}", got)
	}
}
