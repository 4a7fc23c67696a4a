package math

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	eval "github.com/Knetic/govaluate"
	"github.com/pkg/errors"

	"github.com/arcanedice/dice"
)

// diceIslandPattern finds dice-notation substrings embedded in a larger
// arithmetic template: an optional repeat count (a literal or a
// bracket-enclosed sub-expression), a "d"/"dF" roll or a brace-delimited
// group, followed by any chain of postfix modifiers (reroll, explode,
// keep/drop, success/failure). Nested groups are not matched, although the
// core grammar itself accepts them.
var diceIslandPattern = regexp.MustCompile(
	`(\{[^{}]*\}|\[[^\[\]]*\]d(?:F|[0-9]+)|[0-9]*d(?:F|[0-9]+))` +
		`(?:kh[0-9]+|kl[0-9]+|dh[0-9]+|dl[0-9]+|!!|!p|!(?:[=<>][0-9]+)?|ro?(?:[=<>][0-9]+)?|[<>=][0-9]+(?:f[<>=][0-9]+)?)*`,
)

// RolledDice records the outcome of one dice-notation island substituted
// out of a composed expression.
type RolledDice struct {
	// Notation is the original dice-notation substring as written.
	Notation string `json:"notation"`

	// Total is the island's evaluated total, the value substituted back
	// into the arithmetic template.
	Total float64 `json:"total"`

	// Kept and Raw mirror the island's kept_results/raw_results, empty for
	// islands with no dice (e.g. a bare math sub-expression never matches
	// this pattern, so these are always populated when present).
	Kept []float64 `json:"kept,omitempty"`
	Raw  []float64 `json:"raw,omitempty"`
}

// An ExpressionResult is a representation of a composed dice/math expression
// that has been evaluated.
type ExpressionResult struct {
	// Original is the original expression input.
	Original string `json:"original"`

	// Rolled is the original expression but with any dice islands rolled and
	// replaced by their totals.
	Rolled string `json:"rolled"`

	// Result is the expression's evaluated total.
	Result float64 `json:"result"`

	// Dice is the list of dice islands rolled as part of the expression, in
	// the order they were substituted.
	Dice []*RolledDice `json:"dice,omitempty"`
}

// String implements fmt.Stringer.
func (de *ExpressionResult) String() string {
	if de == nil {
		return ""
	}
	return fmt.Sprintf("%s = %v", de.Rolled, de.Result)
}

// GoString implements fmt.GoStringer.
func (de *ExpressionResult) GoString() string {
	return fmt.Sprintf("%#v", *de)
}

/*
EvaluateExpression evaluates a string expression combining dice notation,
arithmetic, and the DiceFunctions built-ins, following order of operations:

	All dice islands are rolled and expanded to their totals first,
	then the remaining template (parens, functions, * / , + -) is
	evaluated left to right by govaluate.

A parsable expression could be a simple roll or a more composed one:

	d20
	2d20kh1+5
	4d6-3d5+30
	min(d20,d20)+1
	floor(max(d20,2d12kh1)/2+3)

ctx is honored for cancellation between rolling dice islands and evaluating
the resulting arithmetic; it is not threaded into the core evaluator, which
has no blocking operations of its own.
*/
func EvaluateExpression(ctx context.Context, expression string) (*ExpressionResult, error) {
	return EvaluateExpressionWithSource(ctx, expression, nil)
}

// EvaluateExpressionWithSource is EvaluateExpression but draws every dice
// island from src instead of the package's default source, so a composed
// expression can be replayed deterministically in tests.
func EvaluateExpressionWithSource(ctx context.Context, expression string, src dice.Source) (*ExpressionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	de := &ExpressionResult{
		Original: expression,
		Dice:     make([]*RolledDice, 0),
	}

	var evalErrors []error

	// Systematically scan the expression for dice-notation islands, roll and
	// expand each one, and substitute its total back in place so the
	// remainder can be handed to govaluate as ordinary arithmetic.
	rolledBytes := diceIslandPattern.ReplaceAllFunc([]byte(de.Original), func(matchBytes []byte) []byte {
		notation := string(matchBytes)

		var h *dice.Handle
		var err error
		if src != nil {
			h, err = dice.EvaluateWithSource(notation, src)
		} else {
			h, err = dice.Evaluate(notation)
		}
		if err != nil {
			evalErrors = append(evalErrors, errors.Wrapf(err, "rolling %q", notation))
			return nil
		}
		defer h.Free()

		total, err := h.Total()
		if err != nil {
			evalErrors = append(evalErrors, errors.Wrapf(err, "totaling %q", notation))
			return nil
		}
		rd := &RolledDice{Notation: notation, Total: total}
		if kept, err := h.KeptResults(); err == nil {
			rd.Kept = kept
		}
		if raw, err := h.RawResults(); err == nil {
			rd.Raw = raw
		}
		de.Dice = append(de.Dice, rd)

		var buf bytes.Buffer
		buf.WriteString("(")
		buf.WriteString(strconv.FormatFloat(total, 'f', -1, 64))
		buf.WriteString(")")
		return buf.Bytes()
	})
	if len(evalErrors) != 0 {
		return nil, errors.Errorf("errors during parsing: %v", evalErrors)
	}
	de.Rolled = string(rolledBytes)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// populate the expression object with the roll totals and function data
	exp, err := eval.NewEvaluableExpressionWithFunctions(de.Rolled, DiceFunctions)
	if err != nil {
		return nil, errors.Wrap(err, "parsing composed expression")
	}

	result, err := exp.Evaluate(nil)
	if err != nil {
		return de, errors.Wrap(err, "evaluating composed expression")
	}
	var ok bool
	if de.Result, ok = result.(float64); !ok {
		return de, fmt.Errorf("result %v not a float", result)
	}

	return de, nil
}
