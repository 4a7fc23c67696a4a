/*
Package dice implements a tabletop-style dice expression language: a parser
that turns notation such as "3d6", "4d6kh3", "{2d6+1d8}k1", or "6d10>7f<3"
into an abstract syntax tree, and an evaluator that rolls the dice, applies
reroll/explode/keep/success modifiers, and reduces the tree to a single
numeric total.

# Dice Notation

Dice notation is an algebra-like system for indicating dice rolls in games.
A roll is usually written AdX, where A is the number of X-sided dice to
roll; A may be omitted if it is 1, so 1d20 can be written d20. Rolls can be
combined with ordinary arithmetic (+, -, *, /), grouped with parentheses,
and bundled into a repeated group with curly braces: {2d6,1d8}k1 rolls
2d6 and 1d8 once each and keeps the higher of the two sums. The notation
is not whitespace-tolerant.

Rolls accept postfix modifiers, written and applied in a fixed order:
reroll, then explode, then keep/drop, then success counting. Modifiers
written in any other order are a syntax error.

# Evaluating an expression

	h, err := dice.Evaluate("4d6kh3")
	if err != nil {
		// err is an *EvalError carrying one of the Err* codes
	}
	defer h.Free()

	total, _ := h.Total()
	kept, _ := h.KeptResults()
	raw, _ := h.RawResults()

The random source used for all draws is replaceable globally via SetSource,
or per call via EvaluateWithSource; the package's own tests pass a scripted
Source per evaluation to reproduce fixed scenarios deterministically.
*/
package dice
