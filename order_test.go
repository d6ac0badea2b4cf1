package fortransducer

import "testing"

func TestCommonPrefixLen(t *testing.T) {
	cases := []struct {
		a, b []int
		want int
	}{
		{[]int{1, 2, 3}, []int{1, 2, 3}, 3},
		{[]int{1, 2, 3}, []int{1, 9, 3}, 1},
		{[]int{}, []int{1}, 0},
		{[]int{1, 2}, []int{1, 2, 3}, 2},
	}
	for _, c := range cases {
		if got := commonPrefixLen(c.a, c.b); got != c.want {
			t.Errorf("commonPrefixLen(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

// Two labels sharing no enclosing loop fall back to textual (ID) order.
func TestSynthesizePairEmptyCommonPrefix(t *testing.T) {
	li := &Label{ID: 0, ForIDs: []int{}, Dirs: []Direction{}}
	lj := &Label{ID: 1, ForIDs: []int{}, Dirs: []Direction{}}

	got := synthesizePair(li, lj)
	want := BConst{Value: true}
	if got != want {
		t.Errorf("synthesizePair(0,1) = %#v, want %#v", got, want)
	}

	got = synthesizePair(lj, li)
	want = BConst{Value: false}
	if got != want {
		t.Errorf("synthesizePair(1,0) = %#v, want %#v", got, want)
	}
}

// Two labels under the same single ascending loop order by position.
func TestSynthesizePairSharedAscendingLoop(t *testing.T) {
	li := &Label{ID: 0, ForIDs: []int{7}, Dirs: []Direction{Asc}}
	lj := &Label{ID: 1, ForIDs: []int{7}, Dirs: []Direction{Asc}}

	got := synthesizePair(li, lj)
	want := leExpr(BVar{Name: "x1"}, BVar{Name: "y1"})
	if got != want {
		t.Errorf("synthesizePair shared-ascending = %#v, want %#v", got, want)
	}
}

// Two labels under the same single descending loop order inversely.
func TestSynthesizePairSharedDescendingLoop(t *testing.T) {
	li := &Label{ID: 0, ForIDs: []int{7}, Dirs: []Direction{Desc}}
	lj := &Label{ID: 1, ForIDs: []int{7}, Dirs: []Direction{Desc}}

	got := synthesizePair(li, lj)
	want := geExpr(BVar{Name: "x1"}, BVar{Name: "y1"})
	if got != want {
		t.Errorf("synthesizePair shared-descending = %#v, want %#v", got, want)
	}
}

func TestSynthesizeOrderCoversEveryOrderedPair(t *testing.T) {
	labels := []*Label{
		{ID: 0, ForIDs: []int{}, Dirs: []Direction{}},
		{ID: 1, ForIDs: []int{}, Dirs: []Direction{}},
	}
	order := SynthesizeOrder(labels)
	if len(order) != 4 {
		t.Fatalf("len(order) = %d, want 4 (2x2 ordered pairs)", len(order))
	}
	for _, li := range labels {
		for _, lj := range labels {
			if _, ok := order[LabelPair{li.ID, lj.ID}]; !ok {
				t.Errorf("missing order entry for (%d,%d)", li.ID, lj.ID)
			}
		}
	}
}
