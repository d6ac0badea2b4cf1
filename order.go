package fortransducer

import "fmt"

// LabelPair keys an order formula by (first label ID, second label ID).
type LabelPair [2]int

// SynthesizeOrder builds order(ℓ,ℓ') for every ordered pair of labels,
// per spec.md §4.D. The result always has exactly len(labels)^2
// entries (every ordered pair, including ℓ == ℓ').
func SynthesizeOrder(labels []*Label) map[LabelPair]BExpr {
	order := make(map[LabelPair]BExpr, len(labels)*len(labels))
	for _, li := range labels {
		for _, lj := range labels {
			order[LabelPair{li.ID, lj.ID}] = synthesizePair(li, lj)
		}
	}
	return order
}

// synthesizePair derives order(ℓ,ℓ') over x1..x_arity(ℓ), y1..y_arity(ℓ').
func synthesizePair(li, lj *Label) BExpr {
	p := commonPrefixLen(li.ForIDs, lj.ForIDs)

	// Open Question (c): with no shared enclosing loop, order falls
	// back to textual program order. Labels are interned in pre-order,
	// so ID order is textual order.
	if p == 0 {
		return BConst{Value: li.ID < lj.ID}
	}

	for k := 0; k < p; k++ {
		if li.Dirs[k] != lj.Dirs[k] {
			// Impossible by construction: a shared for-node has one
			// direction, recorded identically in every label beneath it.
			panic(fmt.Sprintf("fortransducer: order synthesis found disagreeing directions for shared loop at depth %d", k))
		}
	}

	var phi BExpr
	for k := p - 1; k >= 0; k-- {
		xk := BVar{Name: canonicalVarName(k + 1)}
		yk := BVar{Name: fmt.Sprintf("y%d", k+1)}

		var prec, precEq func(l, r BExpr) BExpr
		if li.Dirs[k] == Asc {
			prec, precEq = ltExpr, leExpr
		} else {
			prec, precEq = gtExpr, geExpr
		}

		if k == p-1 {
			phi = precEq(xk, yk)
		} else {
			phi = BOr{L: prec(xk, yk), R: BAnd{L: eqExpr(xk, yk), R: phi}}
		}
	}
	return phi
}

func commonPrefixLen(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	k := 0
	for k < n && a[k] == b[k] {
		k++
	}
	return k
}

func ltExpr(l, r BExpr) BExpr { return BCmp{Op: Lt, Left: l, Right: r} }
func leExpr(l, r BExpr) BExpr { return BCmp{Op: Le, Left: l, Right: r} }
func gtExpr(l, r BExpr) BExpr { return BCmp{Op: Gt, Left: l, Right: r} }
func geExpr(l, r BExpr) BExpr { return BCmp{Op: Ge, Left: l, Right: r} }
func eqExpr(l, r BExpr) BExpr { return BCmp{Op: Eq, Left: l, Right: r} }
