package fortransducer

import "fmt"

// FormatBExpr renders expr in a small infix notation, mirroring the
// Display impl on Bexpr in the retrieved original source (ast.rs).
// Used only for diagnostics (Describe, error messages, test failures).
func FormatBExpr(expr BExpr) string {
	switch e := expr.(type) {
	case nil:
		return "<nil>"
	case BConst:
		if e.Value {
			return "T"
		}
		return "F"
	case BVar:
		return e.Name
	case BStr:
		return fmt.Sprintf("%q", e.Value)
	case BLabel:
		return e.Var + ".label"
	case BCmp:
		return fmt.Sprintf("(%s %s %s)", FormatBExpr(e.Left), e.Op, FormatBExpr(e.Right))
	case BNot:
		return fmt.Sprintf("!(%s)", FormatBExpr(e.X))
	case BAnd:
		return fmt.Sprintf("(%s and %s)", FormatBExpr(e.L), FormatBExpr(e.R))
	case BOr:
		return fmt.Sprintf("(%s or %s)", FormatBExpr(e.L), FormatBExpr(e.R))
	default:
		return fmt.Sprintf("<%T>", expr)
	}
}
