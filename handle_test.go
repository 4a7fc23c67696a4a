package dice

import "testing"

func TestEvaluateWithSourceBasic(t *testing.T) {
	h, err := EvaluateWithSource("4d6kh3", facesSource(2, 5, 3, 6))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	defer h.Free()

	total, err := h.Total()
	if err != nil || total != 14 {
		t.Fatalf("Total = %v, %v, want 14", total, err)
	}
	kept, err := h.KeptResults()
	if err != nil || len(kept) != 3 {
		t.Fatalf("KeptResults = %v, %v, want 3 faces", kept, err)
	}
	raw, err := h.RawResults()
	if err != nil || len(raw) != 4 {
		t.Fatalf("RawResults = %v, %v, want 4 faces", raw, err)
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	h, err := Evaluate("4d")
	if err == nil {
		t.Fatalf("expected a syntax error")
	}
	if h != nil {
		t.Fatalf("expected a nil handle on failure")
	}
	evalErr, ok := err.(*EvalError)
	if !ok {
		t.Fatalf("error is not an *EvalError: %v", err)
	}
	if evalErr.Code != CodeSyntax {
		t.Fatalf("code = %v, want CodeSyntax", evalErr.Code)
	}
}

func TestEvaluateSemanticError(t *testing.T) {
	_, err := EvaluateWithSource("0d6", &fakeSource{})
	if err != ErrMinDice {
		t.Fatalf("got %v, want ErrMinDice", err)
	}
}

func TestHandleNoDice(t *testing.T) {
	h, err := EvaluateWithSource("2+3*4", &fakeSource{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	defer h.Free()
	if _, err := h.KeptResults(); err != ErrNoDice {
		t.Fatalf("got %v, want ErrNoDice", err)
	}
}

func TestHandleDoubleFree(t *testing.T) {
	h, err := EvaluateWithSource("1d6", facesSource(3))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	h.Free()
	h.Free() // must not panic
	if _, err := h.Total(); err != ErrInvalidNode {
		t.Fatalf("Total after Free = %v, want ErrInvalidNode", err)
	}
}

func TestNilHandle(t *testing.T) {
	var h *Handle
	if _, err := h.Total(); err != ErrNullResult {
		t.Fatalf("got %v, want ErrNullResult", err)
	}
	h.Free() // must not panic
}
