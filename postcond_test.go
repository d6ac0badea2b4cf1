package fortransducer

import "testing"

func TestParsePostConditionTrueFalse(t *testing.T) {
	got, err := ParsePostCondition("t.post", "true")
	if err != nil {
		t.Fatalf("ParsePostCondition: %v", err)
	}
	if _, ok := got.(OTrue); !ok {
		t.Errorf("got %#v, want OTrue", got)
	}

	got, err = ParsePostCondition("t.post", "false")
	if err != nil {
		t.Fatalf("ParsePostCondition: %v", err)
	}
	if _, ok := got.(OFalse); !ok {
		t.Errorf("got %#v, want OFalse", got)
	}
}

func TestParsePostConditionLessEqual(t *testing.T) {
	got, err := ParsePostCondition("t.post", "x <= y")
	if err != nil {
		t.Fatalf("ParsePostCondition: %v", err)
	}
	want := OLessEqual{L: "x", R: "y"}
	if got != OutputFormula(want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestParsePostConditionLetterAtom(t *testing.T) {
	got, err := ParsePostCondition("t.post", "letter(x, 'a')")
	if err != nil {
		t.Fatalf("ParsePostCondition: %v", err)
	}
	want := OLetter{Var: "x", Letter: 'a'}
	if got != OutputFormula(want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestParsePostConditionNotAndOr(t *testing.T) {
	got, err := ParsePostCondition("t.post", "not (x <= y) and true or false")
	if err != nil {
		t.Fatalf("ParsePostCondition: %v", err)
	}
	want := OOr{
		L: OAnd{L: ONot{X: OLessEqual{L: "x", R: "y"}}, R: OTrue{}},
		R: OFalse{},
	}
	if got != OutputFormula(want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestParsePostConditionImpliesAndIff(t *testing.T) {
	got, err := ParsePostCondition("t.post", "x <= y -> true")
	if err != nil {
		t.Fatalf("ParsePostCondition: %v", err)
	}
	want := OImplies{L: OLessEqual{L: "x", R: "y"}, R: OTrue{}}
	if got != OutputFormula(want) {
		t.Errorf("got %#v, want %#v", got, want)
	}

	got, err = ParsePostCondition("t.post", "x <= y <-> false")
	if err != nil {
		t.Fatalf("ParsePostCondition: %v", err)
	}
	wantIff := OIff{L: OLessEqual{L: "x", R: "y"}, R: OFalse{}}
	if got != OutputFormula(wantIff) {
		t.Errorf("got %#v, want %#v", got, wantIff)
	}
}

func TestParsePostConditionExistsForall(t *testing.T) {
	got, err := ParsePostCondition("t.post", "exists x. forall y. y <= x")
	if err != nil {
		t.Fatalf("ParsePostCondition: %v", err)
	}
	want := OExists{Var: "x", Body: OForall{Var: "y", Body: OLessEqual{L: "y", R: "x"}}}
	if got != OutputFormula(want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestStripCharQuotes(t *testing.T) {
	cases := map[string]rune{
		`'a'`: 'a',
		`'#'`: '#',
	}
	for lit, want := range cases {
		if got := stripCharQuotes(lit); got != want {
			t.Errorf("stripCharQuotes(%s) = %q, want %q", lit, got, want)
		}
	}
}

func TestParsePostConditionRejectsEmptyInput(t *testing.T) {
	if _, err := ParsePostCondition("t.post", ""); err == nil {
		t.Error("expected error parsing empty post-condition, got nil")
	}
}
