package dice

import (
	"reflect"
	"testing"
)

func TestTotalRejectsInvalidRoot(t *testing.T) {
	n := newNull()
	if _, err := total(n); err != ErrInvalidNode {
		t.Fatalf("got %v, want ErrInvalidNode", err)
	}
}

func TestKeptResultsNoDice(t *testing.T) {
	n := evalString(t, "2+3*4", &fakeSource{})
	if _, err := keptResults(n); err != ErrNoDice {
		t.Fatalf("got %v, want ErrNoDice", err)
	}
}

func TestRawResultsPiercesKeep(t *testing.T) {
	n := evalString(t, "4d6kh3", facesSource(2, 5, 3, 6))
	raw, err := rawResults(n)
	if err != nil {
		t.Fatalf("rawResults: %v", err)
	}
	kept, err := keptResults(n)
	if err != nil {
		t.Fatalf("keptResults: %v", err)
	}
	if len(raw) < len(kept) {
		t.Fatalf("raw length %d < kept length %d", len(raw), len(kept))
	}
	if !reflect.DeepEqual(raw, []float64{2, 3, 5, 6}) {
		t.Fatalf("raw = %v, want [2 3 5 6]", raw)
	}
}

func TestFreeSetsNullTag(t *testing.T) {
	n := evalString(t, "4d6", facesSource(1, 2, 3, 4))
	free(n)
	if n.Kind != KindNull {
		t.Fatalf("after free, Kind = %v, want Null", n.Kind)
	}
}
