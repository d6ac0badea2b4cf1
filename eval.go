package fortransducer

import "fmt"

// Env maps bound position variables to their current position.
type Env map[string]int

// Value is the runtime result of resolving a BExpr: either a position
// (or truth value encoded as 0/1) or a letter/string.
type Value interface {
	isValue()
}

// VNum carries both positions and booleans (0/1), matching the
// reference evaluator's Number variant.
type VNum int

// VStr carries a resolved letter or a string literal.
type VStr string

func (VNum) isValue() {}
func (VStr) isValue() {}

func boolNum(b bool) VNum {
	if b {
		return VNum(1)
	}
	return VNum(0)
}

// resolve evaluates expr to a Value under env against word, without
// interpreting it as a boolean. It is the internal helper spec.md §4.B
// calls out separately from eval.
func resolve(expr BExpr, word string, env Env) (Value, error) {
	switch e := expr.(type) {
	case BConst:
		return boolNum(e.Value), nil
	case BVar:
		if e.Name == "T" {
			return VNum(1), nil
		}
		if e.Name == "F" {
			return VNum(0), nil
		}
		pos, ok := env[e.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnboundVariable, e.Name)
		}
		return VNum(pos), nil
	case BStr:
		return VStr(e.Value), nil
	case BLabel:
		pos, ok := env[e.Var]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnboundVariable, e.Var)
		}
		if pos < 0 || pos >= len(word) {
			return nil, fmt.Errorf("%w: position %d, word length %d", ErrIndexOutOfBounds, pos, len(word))
		}
		return VStr(word[pos : pos+1]), nil
	case BCmp:
		return resolveCmp(e, word, env)
	case BNot:
		v, err := resolve(e.X, word, env)
		if err != nil {
			return nil, err
		}
		n, ok := v.(VNum)
		if !ok {
			return nil, fmt.Errorf("%w: not applied to a string", ErrStringInCondition)
		}
		return boolNum(n == 0), nil
	case BAnd:
		lv, rv, err := resolveBoth(e.L, e.R, word, env)
		if err != nil {
			return nil, err
		}
		return boolNum(lv != 0 && rv != 0), nil
	case BOr:
		lv, rv, err := resolveBoth(e.L, e.R, word, env)
		if err != nil {
			return nil, err
		}
		return boolNum(lv != 0 || rv != 0), nil
	default:
		return nil, fmt.Errorf("unhandled BExpr: %T", expr)
	}
}

func resolveBoth(left, right BExpr, word string, env Env) (VNum, VNum, error) {
	lv, err := resolve(left, word, env)
	if err != nil {
		return 0, 0, err
	}
	rv, err := resolve(right, word, env)
	if err != nil {
		return 0, 0, err
	}
	ln, ok := lv.(VNum)
	if !ok {
		return 0, 0, fmt.Errorf("%w: and/or operand is a string", ErrStringInCondition)
	}
	rn, ok := rv.(VNum)
	if !ok {
		return 0, 0, fmt.Errorf("%w: and/or operand is a string", ErrStringInCondition)
	}
	return ln, rn, nil
}

func resolveCmp(e BCmp, word string, env Env) (Value, error) {
	if isLabelExpr(e.Left) && isLabelExpr(e.Right) {
		return nil, fmt.Errorf("%w", ErrAmbiguousLabelComparison)
	}
	lv, err := resolve(e.Left, word, env)
	if err != nil {
		return nil, err
	}
	rv, err := resolve(e.Right, word, env)
	if err != nil {
		return nil, err
	}
	switch lt := lv.(type) {
	case VNum:
		rt, ok := rv.(VNum)
		if !ok {
			return nil, fmt.Errorf("%w", ErrInvalidComparisonTypes)
		}
		switch e.Op {
		case Eq:
			return boolNum(lt == rt), nil
		case Ne:
			return boolNum(lt != rt), nil
		case Lt:
			return boolNum(lt < rt), nil
		case Le:
			return boolNum(lt <= rt), nil
		case Gt:
			return boolNum(lt > rt), nil
		case Ge:
			return boolNum(lt >= rt), nil
		}
	case VStr:
		rt, ok := rv.(VStr)
		if !ok {
			return nil, fmt.Errorf("%w", ErrInvalidComparisonTypes)
		}
		switch e.Op {
		case Eq:
			return boolNum(lt == rt), nil
		case Ne:
			return boolNum(lt != rt), nil
		default:
			return nil, fmt.Errorf("%w: only equality is defined for letters", ErrInvalidComparisonTypes)
		}
	}
	return nil, fmt.Errorf("%w", ErrInvalidComparisonTypes)
}

func isLabelExpr(e BExpr) bool {
	_, ok := e.(BLabel)
	return ok
}

// Eval evaluates expr as a boolean under env against word.
func Eval(expr BExpr, word string, env Env) (bool, error) {
	v, err := resolve(expr, word, env)
	if err != nil {
		return false, err
	}
	n, ok := v.(VNum)
	if !ok {
		return false, fmt.Errorf("%w", ErrStringInCondition)
	}
	return n != 0, nil
}
