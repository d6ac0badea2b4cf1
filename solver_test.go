package fortransducer

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// stubRunner records the command/args it was invoked with and returns a
// canned stdout (or error), letting Solve be exercised without a real
// solver binary on PATH (CommandRunner's doc comment).
type stubRunner struct {
	gotName string
	gotArgs []string
	stdout  string
	err     error
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	s.gotName = name
	s.gotArgs = args
	return s.stdout, s.err
}

func trivialFormula() Formula {
	return FLetterAtPos{Var: "x", Letter: 'a'}
}

func TestBackendClassifyAltErgo(t *testing.T) {
	cases := map[string]Verdict{
		"Valid":               Valid,
		"I don't know: Unknown": Unknown,
		"garbage":             Invalid,
	}
	for stdout, want := range cases {
		if got := AltErgo.classify(stdout); got != want {
			t.Errorf("AltErgo.classify(%q) = %v, want %v", stdout, got, want)
		}
	}
}

func TestBackendClassifySMTLib(t *testing.T) {
	for _, b := range []Backend{Z3, CVC5} {
		cases := map[string]Verdict{
			"unsat\n":   Valid,
			"unknown\n": Unknown,
			"sat\n":     Invalid,
			"":          Unknown,
		}
		for stdout, want := range cases {
			if got := b.classify(stdout); got != want {
				t.Errorf("%v.classify(%q) = %v, want %v", b, stdout, got, want)
			}
		}
	}
}

func TestBackendClassifyMona(t *testing.T) {
	cases := map[string]Verdict{
		"Formula is valid":  Valid,
		"... unsatisfiable": Invalid,
		"???":                Unknown,
	}
	for stdout, want := range cases {
		if got := MONA.classify(stdout); got != want {
			t.Errorf("MONA.classify(%q) = %v, want %v", stdout, got, want)
		}
	}
}

func TestSolveWritesScopedTempFileWithBackendExtension(t *testing.T) {
	runner := &stubRunner{stdout: "unsat\n"}
	verdict, err := Solve(context.Background(), runner, Z3, trivialFormula())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if verdict != Valid {
		t.Errorf("verdict = %v, want Valid", verdict)
	}
	if runner.gotName != "z3" {
		t.Errorf("runner invoked with name %q, want z3", runner.gotName)
	}
	if len(runner.gotArgs) != 1 || filepath.Ext(runner.gotArgs[0]) != ".smt2" {
		t.Errorf("runner args = %v, want one .smt2 path", runner.gotArgs)
	}
}

func TestSolveMonaExtension(t *testing.T) {
	runner := &stubRunner{stdout: "Formula is valid"}
	_, err := Solve(context.Background(), runner, MONA, trivialFormula())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(runner.gotArgs) != 1 || filepath.Ext(runner.gotArgs[0]) != ".mona" {
		t.Errorf("runner args = %v, want one .mona path", runner.gotArgs)
	}
}

func TestSolveEmptyOutputIsUnparseable(t *testing.T) {
	runner := &stubRunner{stdout: "   "}
	_, err := Solve(context.Background(), runner, AltErgo, trivialFormula())
	if !errors.Is(err, ErrSolverOutputUnparseable) {
		t.Errorf("err = %v, want ErrSolverOutputUnparseable", err)
	}
}

func TestSolvePropagatesRunnerError(t *testing.T) {
	runner := &stubRunner{err: ErrSolverNotFound}
	_, err := Solve(context.Background(), runner, AltErgo, trivialFormula())
	if !errors.Is(err, ErrSolverNotFound) {
		t.Errorf("err = %v, want ErrSolverNotFound", err)
	}
}

func TestParseBackend(t *testing.T) {
	cases := map[string]Backend{
		"alt-ergo": AltErgo,
		"z3":       Z3,
		"cvc5":     CVC5,
		"mona":     MONA,
	}
	for name, want := range cases {
		got, err := ParseBackend(name)
		if err != nil {
			t.Fatalf("ParseBackend(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParseBackend(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := ParseBackend("nope"); !errors.Is(err, ErrSolverNotFound) {
		t.Errorf("ParseBackend(nope) err = %v, want ErrSolverNotFound", err)
	}
}

func TestBackendProduceOutputShapes(t *testing.T) {
	f := trivialFormula()
	if out := AltErgo.produceOutput(f); !strings.HasPrefix(out, "goal g: ") {
		t.Errorf("AltErgo.produceOutput = %q, want goal-prefixed", out)
	}
	if out := Z3.produceOutput(f); !strings.Contains(out, "(check-sat)") {
		t.Errorf("Z3.produceOutput = %q, missing check-sat", out)
	}
	if out := MONA.produceOutput(f); !strings.HasPrefix(out, "m2l-str;") {
		t.Errorf("MONA.produceOutput = %q, want m2l-str prefix", out)
	}
}
