package dice

import (
	"reflect"
	"testing"
)

// evalString is a small test helper: parse, evaluate against src, and
// return the root node for assertions.
func evalString(t *testing.T, input string, src Source) *Node {
	t.Helper()
	n, err := parseExpr(input)
	if err != nil {
		t.Fatalf("parse(%q): unexpected error: %v", input, err)
	}
	if err := evaluate(n, src); err != nil {
		t.Fatalf("evaluate(%q): unexpected error: %v", input, err)
	}
	return n
}

// TestScenarios reproduces the concrete end-to-end scenarios in spec.md §8.
func TestScenarios(t *testing.T) {
	t.Run("arithmetic only", func(t *testing.T) {
		n := evalString(t, "2+3*4", &fakeSource{})
		if n.Value != 14 {
			t.Fatalf("total = %v, want 14", n.Value)
		}
		if _, err := keptResults(n); err != ErrNoDice {
			t.Fatalf("keptResults = %v, want ErrNoDice", err)
		}
	})

	t.Run("1d1", func(t *testing.T) {
		n := evalString(t, "1d1", facesSource(1))
		if n.Value != 1 {
			t.Fatalf("total = %v, want 1", n.Value)
		}
		raw, err := rawResults(n)
		if err != nil || !reflect.DeepEqual(raw, []float64{1}) {
			t.Fatalf("raw = %v, %v, want [1]", raw, err)
		}
		kept, err := keptResults(n)
		if err != nil || !reflect.DeepEqual(kept, []float64{1}) {
			t.Fatalf("kept = %v, %v, want [1]", kept, err)
		}
	})

	t.Run("4d6kh3", func(t *testing.T) {
		n := evalString(t, "4d6kh3", facesSource(2, 5, 3, 6))
		raw, err := rawResults(n)
		if err != nil || !reflect.DeepEqual(raw, []float64{2, 3, 5, 6}) {
			t.Fatalf("raw = %v, %v, want [2 3 5 6]", raw, err)
		}
		kept, err := keptResults(n)
		if err != nil || !reflect.DeepEqual(kept, []float64{3, 5, 6}) {
			t.Fatalf("kept = %v, %v, want [3 5 6]", kept, err)
		}
		if n.Value != 14 {
			t.Fatalf("total = %v, want 14", n.Value)
		}
	})

	t.Run("6d10!>7", func(t *testing.T) {
		// Initial faces 8,3,9,2,7,10; three matches (8,9,10) each draw one
		// new face: 1,5,4 in match order. None of those satisfy >7, so no
		// chained explosions. Total is the sum of all nine reported faces:
		// 8+3+9+2+7+10+1+5+4 = 49 (spec.md's worked total of 42 for this
		// scenario does not match its own stated face list under the
		// documented addition rule; see DESIGN.md).
		src := facesSource(8, 3, 9, 2, 7, 10, 1, 5, 4)
		n := evalString(t, "6d10!>7", src)
		raw, err := rawResults(n)
		if err != nil {
			t.Fatalf("rawResults: %v", err)
		}
		if len(raw) != 9 {
			t.Fatalf("raw length = %d, want 9", len(raw))
		}
		if n.Value != 49 {
			t.Fatalf("total = %v, want 49", n.Value)
		}
	})

	t.Run("4dF", func(t *testing.T) {
		n := evalString(t, "4dF", facesSource(3, 1, 2, 3))
		raw, err := rawResults(n)
		if err != nil || !reflect.DeepEqual(raw, []float64{-1, 0, 1, 1}) {
			t.Fatalf("raw = %v, %v, want [-1 0 1 1] (sorted)", raw, err)
		}
		if n.Value != 1 {
			t.Fatalf("total = %v, want 1", n.Value)
		}
	})

	t.Run("{2d6,1d8}k1", func(t *testing.T) {
		// 2d6 sums to 7 (faces 3,4), 1d8 sums to 5.
		src := facesSource(3, 4, 5)
		n := evalString(t, "{2d6,1d8}k1", src)
		kept, err := keptResults(n)
		if err != nil || !reflect.DeepEqual(kept, []float64{7}) {
			t.Fatalf("kept = %v, %v, want [7]", kept, err)
		}
		if n.Value != 7 {
			t.Fatalf("total = %v, want 7", n.Value)
		}
	})
}

func TestEvalDivisionByZero(t *testing.T) {
	n, err := parseExpr("1/0")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := evaluate(n, &fakeSource{}); err != ErrDivZero {
		t.Fatalf("got %v, want ErrDivZero", err)
	}
}

func TestEvalMaxDiceBudget(t *testing.T) {
	n, err := parseExpr("200d6")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	draws := make([]int, 200)
	if err := evaluate(n, &fakeSource{draws: draws}); err != ErrMaxDice {
		t.Fatalf("got %v, want ErrMaxDice", err)
	}
}

func TestEvalMinDice(t *testing.T) {
	n, err := parseExpr("0d6")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := evaluate(n, &fakeSource{}); err != ErrMinDice {
		t.Fatalf("got %v, want ErrMinDice", err)
	}
}

func TestEvalMaxSides(t *testing.T) {
	n, err := parseExpr("1d20000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := evaluate(n, &fakeSource{}); err != ErrMaxSides {
		t.Fatalf("got %v, want ErrMaxSides", err)
	}
}

func TestEvalCompoundExplodeKeepsFaceCount(t *testing.T) {
	// 2d6!! with an explicit comparison of =6: first face rolls a 6 and
	// compounds with a 3 (final slot value 9, stops since 9 != 6); second
	// face rolls a 2 and never compounds.
	src := facesSource(6, 2, 3)
	n, err := parseExpr("2d6!!=6")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := evaluate(n, src); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	raw, err := rawResults(n)
	if err != nil {
		t.Fatalf("rawResults: %v", err)
	}
	if len(raw) != 2 {
		t.Fatalf("raw length = %d, want 2 (compound explosion must not grow the array)", len(raw))
	}
	if n.Value != 11 { // 9 + 2
		t.Fatalf("total = %v, want 11", n.Value)
	}
}

func TestEvalPenetrateDowngrade(t *testing.T) {
	// 1d100!p with no explicit comparison: matches on 100, downgrades to
	// d20 (threshold 20) for the chained draw, contributing (draw-1).
	src := facesSource(100, 5)
	n, err := parseExpr("1d100!p")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := evaluate(n, src); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if n.Value != 104 { // 100 + (5-1)
		t.Fatalf("total = %v, want 104", n.Value)
	}
}

func TestEvalPenetrateExplicitDisablesDowngrade(t *testing.T) {
	// Same die, but an explicit comparison disables the downgrade escape
	// hatch entirely: the chained draw stays on d100. The loop compares
	// the slot's running value (not the fresh draw) against the threshold,
	// so one extra draw of 100 brings the slot to 199, which no longer
	// equals the threshold and stops the chain.
	src := facesSource(100, 100)
	n, err := parseExpr("1d100!p=100")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := evaluate(n, src); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if n.Value != 199 { // 100 + (100-1)
		t.Fatalf("total = %v, want 199", n.Value)
	}
}

func TestEvalKeepFourModes(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"4d6kh2", 5 + 6},
		{"4d6kl2", 2 + 3},
		{"4d6dh2", 2 + 3},
		{"4d6dl2", 5 + 6},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			n := evalString(t, c.expr, facesSource(2, 5, 3, 6))
			if n.Value != c.want {
				t.Fatalf("total = %v, want %v", n.Value, c.want)
			}
		})
	}
}

func TestEvalSuccessMutualExclusion(t *testing.T) {
	// succ = >4, fail = <2: faces 1,2,5,6 -> 1 fails, 2 neither, 5 and 6
	// succeed. successes(2) - failures(1) = 1.
	n := evalString(t, "4d6>4f<2", facesSource(1, 2, 5, 6))
	if n.Value != 1 {
		t.Fatalf("total = %v, want 1", n.Value)
	}
}

func TestEvalRerollOnce(t *testing.T) {
	// 1d6ro=1: first draw is a 1 (matches, reroll once), second draw is
	// also a 1 (it matches again, but ro stops after one reroll).
	n := evalString(t, "1d6ro=1", facesSource(1, 1))
	if n.Value != 1 {
		t.Fatalf("total = %v, want 1 (ro only rerolls once)", n.Value)
	}
}

func TestEvalRerollMany(t *testing.T) {
	n := evalString(t, "1d6r=1", facesSource(1, 1, 4))
	if n.Value != 4 {
		t.Fatalf("total = %v, want 4", n.Value)
	}
}
