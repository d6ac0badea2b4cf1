package fortransducer

import "errors"

// Error taxonomy. All of these are fatal to the compilation or
// evaluation unit that raises them (spec §7); none are recovered
// internally.
var (
	// ErrUnboundVariable is raised when a BExpr references a position
	// variable that is not bound in the current environment.
	ErrUnboundVariable = errors.New("unbound variable")

	// ErrIndexOutOfBounds is raised when a Label(v) lookup resolves to
	// a position outside [0, len(word)).
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrAmbiguousLabelComparison is raised when a BExpr compares two
	// label expressions to each other (only label-vs-literal equality
	// and position-vs-position comparisons are defined).
	ErrAmbiguousLabelComparison = errors.New("comparing two label expressions is ambiguous")

	// ErrStringInCondition is raised when a plain string literal (not
	// the sentinels T/F, and not a label/literal equality) appears
	// where a boolean is expected.
	ErrStringInCondition = errors.New("string literal in boolean position")

	// ErrInvalidComparisonTypes is raised when a comparison mixes a
	// position value with a letter value other than label-vs-literal
	// equality.
	ErrInvalidComparisonTypes = errors.New("invalid comparison types")

	// ErrNoLetter is raised when no letter formula matches a surviving
	// tuple at a label (the letter-partition invariant is violated).
	// Validate also raises it when a label has no letter formula for
	// some alphabet symbol.
	ErrNoLetter = errors.New("no letter formula matched tuple")

	// ErrTooManyLetters is raised when more than one letter formula
	// matches a surviving tuple at a label.
	ErrTooManyLetters = errors.New("more than one letter formula matched tuple")

	// ErrMissingUniverseFormula and ErrMissingOrderFormula indicate a
	// structural bug in the synthesis stage: every label must have a
	// universe formula, and every ordered pair of labels must have an
	// order formula.
	ErrMissingUniverseFormula = errors.New("missing universe formula")
	ErrMissingOrderFormula    = errors.New("missing order formula")

	// ErrSolverNotFound, ErrSolverFailed, and ErrSolverOutputUnparseable
	// are solver-driver errors (component H). They are surfaced, not
	// swallowed, and never corrupt the IR.
	ErrSolverNotFound          = errors.New("solver executable not found")
	ErrSolverFailed            = errors.New("solver invocation failed")
	ErrSolverOutputUnparseable = errors.New("solver output could not be classified")
)
