package fortransducer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Backend names a supported external solver (spec.md §4.H/§6).
type Backend int

const (
	AltErgo Backend = iota
	Z3
	CVC5
	MONA
)

func (b Backend) String() string {
	switch b {
	case AltErgo:
		return "alt-ergo"
	case Z3:
		return "z3"
	case CVC5:
		return "cvc5"
	case MONA:
		return "mona"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

func (b Backend) command() string { return b.String() }

func (b Backend) extension() string {
	switch b {
	case AltErgo:
		return ".ae"
	case MONA:
		return ".mona"
	default:
		return ".smt2"
	}
}

// produceOutput renders the query φ in b's surface syntax per spec.md
// §4.H step 1. The SMT-LIB backends (Z3, CVC5) assert the negation of
// φ and ask for check-sat, since validity is checked by refutation.
func (b Backend) produceOutput(f Formula) string {
	switch b {
	case AltErgo:
		return fmt.Sprintf("goal g: %s", ToAltErgo(f))
	case Z3, CVC5:
		negated := ToSMTLib(FNot{X: f})
		var sb strings.Builder
		sb.WriteString("(set-logic ALL)\n")
		sb.WriteString(fmt.Sprintf("(assert %s)\n", negated))
		sb.WriteString("(check-sat)\n")
		return sb.String()
	case MONA:
		return fmt.Sprintf("m2l-str;\n%s;\n", ToMona(f))
	default:
		panic(fmt.Sprintf("fortransducer: unhandled Backend %v", b))
	}
}

// Verdict is the classified result of a solver run (spec.md §8's
// "Solver verdict" glossary entry).
type Verdict int

const (
	Unknown Verdict = iota
	Valid
	Invalid
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "Valid"
	case Invalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// classify applies b's solver-specific verdict rule (spec.md §4.H
// step 4) to raw stdout.
func (b Backend) classify(stdout string) Verdict {
	switch b {
	case AltErgo:
		switch {
		case strings.Contains(stdout, "Valid"):
			return Valid
		case strings.Contains(stdout, "Unknown"):
			return Unknown
		default:
			return Invalid
		}
	case Z3, CVC5:
		switch {
		case strings.Contains(stdout, "unsat"):
			return Valid
		case strings.Contains(stdout, "unknown"):
			return Unknown
		case strings.Contains(stdout, "sat"):
			return Invalid
		default:
			return Unknown
		}
	case MONA:
		switch {
		case strings.Contains(stdout, "Formula is valid"):
			return Valid
		case strings.Contains(stdout, "unsatisfiable"):
			return Invalid
		default:
			return Unknown
		}
	default:
		return Unknown
	}
}

// CommandRunner abstracts external process invocation so solver.go's
// driver can be exercised without a real solver binary on PATH. The
// production implementation is execCommandRunner; tests supply a
// stub, the same interface-at-the-I/O-boundary seam the teacher uses
// by writing codegen output to an io.Writer instead of a concrete file.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, err error)
}

type execCommandRunner struct{}

func (execCommandRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		if _, ok := err.(*exec.Error); ok {
			return "", fmt.Errorf("%w: %s", ErrSolverNotFound, err)
		}
		return string(out), fmt.Errorf("%w: %s", ErrSolverFailed, err)
	}
	return string(out), nil
}

// DefaultRunner invokes real solver binaries via os/exec.
var DefaultRunner CommandRunner = execCommandRunner{}

// Solve writes φ to a scoped temp directory in b's surface syntax,
// invokes b's command, and classifies the verdict, per spec.md §4.H
// and the "Shared resource: the temp directory" discipline of §5. The
// temp directory is removed on every return path.
func Solve(ctx context.Context, runner CommandRunner, b Backend, f Formula) (Verdict, error) {
	dir, err := os.MkdirTemp("", "fortransducer-"+uuid.NewString())
	if err != nil {
		return Unknown, fmt.Errorf("%w: %s", ErrSolverFailed, err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "query"+b.extension())
	if err := os.WriteFile(path, []byte(b.produceOutput(f)), 0o644); err != nil {
		return Unknown, fmt.Errorf("%w: %s", ErrSolverFailed, err)
	}

	stdout, err := runner.Run(ctx, b.command(), path)
	if err != nil {
		return Unknown, err
	}
	if strings.TrimSpace(stdout) == "" {
		return Unknown, fmt.Errorf("%w: empty output from %s", ErrSolverOutputUnparseable, b)
	}
	return b.classify(stdout), nil
}

// ParseBackend maps a CLI --backend flag value to a Backend (spec.md §6).
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "alt-ergo":
		return AltErgo, nil
	case "z3":
		return Z3, nil
	case "cvc5":
		return CVC5, nil
	case "mona":
		return MONA, nil
	default:
		return 0, fmt.Errorf("%w: unknown backend %q", ErrSolverNotFound, name)
	}
}
